package layout

import (
	"fmt"

	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

// Compute lays out items onto pages according to settings. It is a pure
// function: the settings value is never mutated and repeated calls with the
// same inputs produce structurally identical results.
//
// A *ConfigError is returned (with no pages) when the settings cannot
// produce a layout at all. Settings that are merely out of range are clamped
// and reported through Result.Warnings.
func Compute(settings sheetformat.Settings, items []Item) (*Result, error) {
	if settings.Columns < 1 {
		return nil, &ConfigError{Field: "columns", Reason: fmt.Sprintf("must be at least 1 (got %d)", settings.Columns)}
	}
	if settings.Rows < 1 {
		return nil, &ConfigError{Field: "rows", Reason: fmt.Sprintf("must be at least 1 (got %d)", settings.Rows)}
	}

	paper, err := resolvePaper(&settings)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	s := clampSettings(settings, paper, result)

	cellWidth, cellHeight := cellSize(&s, paper, result)

	slots := expand(items, s.SkipLabels, s.Copies)
	rows := chunkRows(slots, s.Columns)
	pages := chunkPages(rows, s.Rows)

	for _, pageRows := range pages {
		result.Pages = append(result.Pages, assemblePage(&s, paper, pageRows, cellWidth, cellHeight))
	}

	return result, nil
}

// resolvePaper turns the paper_size setting into physical dimensions.
func resolvePaper(s *sheetformat.Settings) (sheetformat.Size, error) {
	if s.PaperSize == sheetformat.PaperCustom {
		size := s.CustomPaperSize
		if size.Width <= 0 || size.Height <= 0 {
			return sheetformat.Size{}, &ConfigError{
				Field:  "custom_paper_size",
				Reason: fmt.Sprintf("dimensions must be positive (got %gx%g)", size.Width, size.Height),
			}
		}
		return size, nil
	}

	size, ok := sheetformat.PaperSize(s.PaperSize)
	if !ok {
		return sheetformat.Size{}, &ConfigError{
			Field:  "paper_size",
			Reason: fmt.Sprintf("unknown preset %q", s.PaperSize),
		}
	}
	return size, nil
}

// clampSettings normalizes every out-of-range numeric setting into a usable
// value, recording a warning for each adjustment. This is the single place
// defaults and ranges are enforced; the rest of the pipeline trusts the
// returned copy.
func clampSettings(s sheetformat.Settings, paper sheetformat.Size, result *Result) sheetformat.Settings {
	warn := func(field, format string, args ...interface{}) {
		result.Warnings = append(result.Warnings, Warning{
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if s.Spacing.Horizontal < 0 {
		warn("spacing.horizontal", "negative spacing %g clamped to 0", s.Spacing.Horizontal)
		s.Spacing.Horizontal = 0
	}
	if s.Spacing.Vertical < 0 {
		warn("spacing.vertical", "negative spacing %g clamped to 0", s.Spacing.Vertical)
		s.Spacing.Vertical = 0
	}

	// Margins may be negative (bleed) but never past half the paper.
	clampMargin := func(field string, value *float64, limit float64) {
		if *value > limit {
			warn(field, "margin %g exceeds half the paper dimension, clamped to %g", *value, limit)
			*value = limit
		}
	}
	clampMargin("margin.left", &s.Margin.Left, paper.Width/2)
	clampMargin("margin.right", &s.Margin.Right, paper.Width/2)
	clampMargin("margin.top", &s.Margin.Top, paper.Height/2)
	clampMargin("margin.bottom", &s.Margin.Bottom, paper.Height/2)

	clampZero := func(field string, value *float64) {
		if *value < 0 {
			warn(field, "negative printer margin %g clamped to 0", *value)
			*value = 0
		}
	}
	clampZero("printer_margin.top", &s.PrinterMargin.Top)
	clampZero("printer_margin.bottom", &s.PrinterMargin.Bottom)
	clampZero("printer_margin.left", &s.PrinterMargin.Left)
	clampZero("printer_margin.right", &s.PrinterMargin.Right)

	if s.SkipLabels < 0 {
		warn("skip_labels", "negative skip count %d clamped to 0", s.SkipLabels)
		s.SkipLabels = 0
	}
	if s.Copies < 1 {
		warn("copies", "copy count %d clamped to 1", s.Copies)
		s.Copies = 1
	}

	return s
}

// cellSize computes the nominal cell dimensions. The spacing term is
// subtracted once before the division and once after; historical sheets were
// produced with this exact arithmetic, so it is kept bit-for-bit even though
// it shrinks cells more than an even distribution would.
func cellSize(s *sheetformat.Settings, paper sheetformat.Size, result *Result) (float64, float64) {
	width := (paper.Width-s.Margin.Left-s.Margin.Right-s.Spacing.Horizontal)/float64(s.Columns) - s.Spacing.Horizontal
	height := (paper.Height-s.Margin.Top-s.Margin.Bottom-s.Spacing.Vertical)/float64(s.Rows) - s.Spacing.Vertical

	if width <= 0 {
		result.Warnings = append(result.Warnings, Warning{
			Field:   "columns",
			Message: fmt.Sprintf("computed cell width %.3fmm is not positive, clamped to 0", width),
		})
		width = 0
	}
	if height <= 0 {
		result.Warnings = append(result.Warnings, Warning{
			Field:   "rows",
			Message: fmt.Sprintf("computed cell height %.3fmm is not positive, clamped to 0", height),
		})
		height = 0
	}

	return width, height
}

// slot is one entry of the expanded item sequence.
type slot struct {
	item  Item
	index int
	copy  int
}

// expand builds the working sequence: skip placeholders first, then each
// item repeated copies times, preserving input order. This sequence is the
// sole source of truth for what occupies grid cells.
func expand(items []Item, skip, copies int) []slot {
	slots := make([]slot, 0, skip+len(items)*copies)
	for i := 0; i < skip; i++ {
		slots = append(slots, slot{index: -1})
	}
	for i, item := range items {
		for c := 0; c < copies; c++ {
			slots = append(slots, slot{item: item, index: i, copy: c})
		}
	}
	return slots
}

// chunkRows partitions the slot sequence into consecutive rows of size
// columns. The final row may be short.
func chunkRows(slots []slot, columns int) [][]slot {
	var rows [][]slot
	for start := 0; start < len(slots); start += columns {
		end := start + columns
		if end > len(slots) {
			end = len(slots)
		}
		rows = append(rows, slots[start:end])
	}
	return rows
}

// chunkPages partitions rows into consecutive pages of size rows. The final
// page may have fewer rows.
func chunkPages(rows [][]slot, perPage int) [][][]slot {
	var pages [][][]slot
	for start := 0; start < len(rows); start += perPage {
		end := start + perPage
		if end > len(rows) {
			end = len(rows)
		}
		pages = append(pages, rows[start:end])
	}
	return pages
}

// assemblePage builds one page grid. Short final rows are filled with empty
// cells so every row spans the full column count.
func assemblePage(s *sheetformat.Settings, paper sheetformat.Size, pageRows [][]slot, cellWidth, cellHeight float64) Page {
	page := Page{
		Width:      paper.Width,
		Height:     paper.Height,
		BorderMode: s.BorderMode,
	}

	// The grid starts one spacing unit inside the margins; cells advance
	// by the cell size plus spacing.
	originX := s.Margin.Left + s.Spacing.Horizontal
	originY := s.Margin.Top + s.Spacing.Vertical

	for rowIdx, rowSlots := range pageRows {
		row := make([]Cell, s.Columns)
		for col := 0; col < s.Columns; col++ {
			cell := Cell{
				Index:  -1,
				X:      originX + float64(col)*(cellWidth+s.Spacing.Horizontal),
				Y:      originY + float64(rowIdx)*(cellHeight+s.Spacing.Vertical),
				Width:  cellWidth,
				Height: cellHeight,
				Pad:    edgePad(s, rowIdx, col, len(pageRows)),
			}
			if col < len(rowSlots) {
				cell.Item = rowSlots[col].item
				cell.Index = rowSlots[col].index
				cell.Copy = rowSlots[col].copy
			}
			row[col] = cell
		}
		page.Rows = append(page.Rows, row)
	}

	return page
}

// edgePad compensates page-edge cells for the printer's unprintable border.
// The padding applies to the first/last column and the first/last row of
// each page, and only when the printer margin exceeds the user margin.
func edgePad(s *sheetformat.Settings, rowIdx, col, rowsOnPage int) sheetformat.Insets {
	var pad sheetformat.Insets
	if col == 0 {
		pad.Left = max(s.PrinterMargin.Left-s.Margin.Left, 0)
	}
	if col == s.Columns-1 {
		pad.Right = max(s.PrinterMargin.Right-s.Margin.Right, 0)
	}
	if rowIdx == 0 {
		pad.Top = max(s.PrinterMargin.Top-s.Margin.Top, 0)
	}
	if rowIdx == rowsOnPage-1 {
		pad.Bottom = max(s.PrinterMargin.Bottom-s.Margin.Bottom, 0)
	}
	return pad
}
