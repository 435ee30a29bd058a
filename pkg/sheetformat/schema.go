// Package sheetformat defines the types for the .sheet file format
package sheetformat

import "encoding/json"

// Sheet represents the root structure of a .sheet file
type Sheet struct {
	Version     string   `json:"version"`
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	CreatedWith string   `json:"created_with,omitempty"`
	Settings    Settings `json:"settings"`
	Labels      []Label  `json:"labels"`
}

// Label is one printable unit: a value to encode plus an optional caption
type Label struct {
	Value           string `json:"value"`
	Caption         string `json:"caption,omitempty"`
	Format          string `json:"format,omitempty"`           // qrcode, code128, code39, ean13, ean8
	ErrorCorrection string `json:"error_correction,omitempty"` // L, M, Q, H (qrcode only)
}

// UnmarshalJSON accepts the legacy array form where a label was a bare
// string instead of an object. Old editors wrote ["A001", "A002"].
func (l *Label) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*l = Label{Value: value}
		return nil
	}

	type alias Label
	var tmp alias
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*l = Label(tmp)
	return nil
}

// Size is a width/height pair in millimeters
type Size struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Insets holds per-edge distances in millimeters
type Insets struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

// Gap holds the spacing between adjacent cells in millimeters
type Gap struct {
	Horizontal float64 `json:"horizontal"`
	Vertical   float64 `json:"vertical"`
}

// Border show modes
const (
	BorderNone    = "none"   // no outlines
	BorderOutline = "border" // outline around the grid area only
	BorderGrid    = "grid"   // outline every cell
)

// Settings is the full layout configuration record. Every field is optional
// in the serialized form; missing fields take the documented defaults.
type Settings struct {
	// PaperSize is a named preset, or "custom" to use CustomPaperSize.
	PaperSize       string `json:"paper_size"`
	CustomPaperSize Size   `json:"custom_paper_size"`

	// Margin is the user-chosen inset between paper edge and grid area.
	// Negative values are allowed for bleed.
	Margin Insets `json:"margin"`

	// PrinterMargin is the unprintable border of the physical device. It
	// only adds compensating padding to edge cells, never changes the
	// nominal cell size.
	PrinterMargin Insets `json:"printer_margin"`

	Spacing Gap `json:"spacing"`

	Columns int `json:"columns"`
	Rows    int `json:"rows"`

	// SkipLabels leaves this many leading cells empty, e.g. to reuse a
	// partially used sheet.
	SkipLabels int `json:"skip_labels"`

	// Copies repeats each label this many times, consecutively.
	Copies int `json:"copies"`

	BorderMode string `json:"border_mode"`
}

// DefaultSettings returns a Settings with every field at its default.
func DefaultSettings() Settings {
	return Settings{
		PaperSize:       "A4",
		CustomPaperSize: Size{Width: 210, Height: 297},
		Margin:          Insets{Top: 10, Bottom: 10, Left: 10, Right: 10},
		PrinterMargin:   Insets{Top: 5, Bottom: 5, Left: 5, Right: 5},
		Spacing:         Gap{},
		Columns:         3,
		Rows:            8,
		SkipLabels:      0,
		Copies:          1,
		BorderMode:      BorderGrid,
	}
}

// UnmarshalJSON overlays the serialized document onto DefaultSettings, so a
// partially persisted settings record (older files, forward compatibility)
// picks up defaults for every missing field in one place.
func (s *Settings) UnmarshalJSON(data []byte) error {
	type alias Settings
	tmp := alias(DefaultSettings())
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*s = Settings(tmp)
	return nil
}
