// Package layout computes label sheet pagination: it turns a settings record
// and an ordered list of items into pages of positioned cells. All geometry
// is in millimeters; the package is pure and holds no state between calls.
package layout

import (
	"image"

	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

// Item is an opaque printable unit placed into grid cells. The engine only
// uses count and order; renderers use the visual and caption.
type Item interface {
	Visual() image.Image
	Caption() string
}

// Cell is one computed grid position on a page.
type Cell struct {
	// Item is nil for an empty placeholder (skip slots and trailing
	// filler in the last row).
	Item Item `json:"-"`

	// Index is the position of the occupying item in the input order,
	// or -1 for an empty placeholder.
	Index int `json:"index"`

	// Copy is the zero-based repetition index when Item is set.
	Copy int `json:"copy"`

	// X/Y are the cell's top-left corner on the page, in mm.
	X float64 `json:"x"`
	Y float64 `json:"y"`

	// Width/Height are the nominal cell size in mm, never negative.
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Pad is extra inner padding compensating for the printer's
	// unprintable border on page-edge cells. It shrinks the drawable
	// area, not the nominal cell size.
	Pad sheetformat.Insets `json:"pad"`
}

// Occupied reports whether the cell holds an item.
func (c *Cell) Occupied() bool { return c.Item != nil }

// Page is a row-major grid of cells with the paper's physical dimensions.
type Page struct {
	Width      float64  `json:"width"`
	Height     float64  `json:"height"`
	BorderMode string   `json:"border_mode"`
	Rows       [][]Cell `json:"rows"`
}

// Warning reports a setting that was clamped into a usable range instead of
// aborting the layout.
type Warning struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Result is the complete output of one layout computation.
type Result struct {
	Pages    []Page    `json:"pages"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// Flatten returns all cells in row-major, page-sequential order.
func (r *Result) Flatten() []Cell {
	var cells []Cell
	for _, page := range r.Pages {
		for _, row := range page.Rows {
			cells = append(cells, row...)
		}
	}
	return cells
}
