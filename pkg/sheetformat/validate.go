package sheetformat

import (
	"fmt"
)

// Validate validates a Sheet structure
func Validate(s *Sheet) error {
	// Validate version
	if s.Version == "" {
		return fmt.Errorf("version is required")
	}
	if s.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected 1.0)", s.Version)
	}

	if err := ValidateSettings(&s.Settings); err != nil {
		return err
	}

	// Validate labels
	if len(s.Labels) == 0 {
		return fmt.Errorf("at least one label is required")
	}

	for i, label := range s.Labels {
		if err := validateLabel(&label); err != nil {
			return fmt.Errorf("label[%d]: %w", i, err)
		}
	}

	return nil
}

// ValidateSettings checks the settings fields that cannot be clamped into a
// usable value. Anything rejected here would also fail the layout call.
func ValidateSettings(s *Settings) error {
	if s.Columns < 1 {
		return fmt.Errorf("columns must be at least 1 (got %d)", s.Columns)
	}
	if s.Rows < 1 {
		return fmt.Errorf("rows must be at least 1 (got %d)", s.Rows)
	}

	if s.PaperSize == PaperCustom {
		if s.CustomPaperSize.Width <= 0 || s.CustomPaperSize.Height <= 0 {
			return fmt.Errorf("custom paper size must be positive (got %gx%g)",
				s.CustomPaperSize.Width, s.CustomPaperSize.Height)
		}
	} else if _, ok := PaperSize(s.PaperSize); !ok {
		return fmt.Errorf("unknown paper_size: %s", s.PaperSize)
	}

	if s.BorderMode != "" {
		validModes := []string{BorderNone, BorderOutline, BorderGrid}
		valid := false
		for _, m := range validModes {
			if s.BorderMode == m {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid border_mode '%s' (must be none, border, or grid)", s.BorderMode)
		}
	}

	return nil
}

func validateLabel(l *Label) error {
	if l.Value == "" {
		return fmt.Errorf("label value is required")
	}

	// Validate format if present
	if l.Format != "" {
		validFormats := []string{"qrcode", "code128", "code39", "ean13", "ean8"}
		valid := false
		for _, f := range validFormats {
			if l.Format == f {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid format '%s'", l.Format)
		}
	}

	// Validate error correction if present
	if l.ErrorCorrection != "" {
		validLevels := []string{"L", "M", "Q", "H"}
		valid := false
		for _, lvl := range validLevels {
			if l.ErrorCorrection == lvl {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("invalid error_correction '%s' (must be L, M, Q, or H)", l.ErrorCorrection)
		}
	}

	return nil
}
