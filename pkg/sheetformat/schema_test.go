package sheetformat

import (
	"testing"
)

func validSheet() *Sheet {
	return &Sheet{
		Version:  "1.0",
		Name:     "Test Sheet",
		Settings: DefaultSettings(),
		Labels: []Label{
			{Value: "https://example.com/1", Caption: "One"},
			{Value: "https://example.com/2"},
		},
	}
}

func TestValidate_ValidSheet(t *testing.T) {
	if err := Validate(validSheet()); err != nil {
		t.Errorf("Expected valid sheet, got error: %v", err)
	}
}

func TestValidate_MissingVersion(t *testing.T) {
	sheet := validSheet()
	sheet.Version = ""

	if err := Validate(sheet); err == nil {
		t.Error("Expected error for missing version")
	}
}

func TestValidate_InvalidVersion(t *testing.T) {
	sheet := validSheet()
	sheet.Version = "2.0"

	if err := Validate(sheet); err == nil {
		t.Error("Expected error for invalid version")
	}
}

func TestValidate_NoLabels(t *testing.T) {
	sheet := validSheet()
	sheet.Labels = nil

	if err := Validate(sheet); err == nil {
		t.Error("Expected error for missing labels")
	}
}

func TestValidate_Labels(t *testing.T) {
	tests := []struct {
		name    string
		label   Label
		wantErr bool
	}{
		{"plain value", Label{Value: "A1"}, false},
		{"qrcode with level", Label{Value: "A1", Format: "qrcode", ErrorCorrection: "H"}, false},
		{"code128", Label{Value: "A1", Format: "code128"}, false},
		{"missing value", Label{Caption: "no value"}, true},
		{"bad format", Label{Value: "A1", Format: "pdf417"}, true},
		{"bad error correction", Label{Value: "A1", ErrorCorrection: "X"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sheet := validSheet()
			sheet.Labels = []Label{tt.label}

			err := Validate(sheet)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateSettings(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(s *Settings) {}, false},
		{"custom paper", func(s *Settings) {
			s.PaperSize = PaperCustom
			s.CustomPaperSize = Size{Width: 62, Height: 29}
		}, false},
		{"zero columns", func(s *Settings) { s.Columns = 0 }, true},
		{"negative rows", func(s *Settings) { s.Rows = -1 }, true},
		{"unknown paper", func(s *Settings) { s.PaperSize = "Tabloid" }, true},
		{"zero custom width", func(s *Settings) {
			s.PaperSize = PaperCustom
			s.CustomPaperSize = Size{Width: 0, Height: 29}
		}, true},
		{"bad border mode", func(s *Settings) { s.BorderMode = "dotted" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := DefaultSettings()
			tt.modify(&settings)

			err := ValidateSettings(&settings)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateSettings() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_ValidJSON(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"name": "Shelf Tags",
		"settings": {"columns": 4, "rows": 6},
		"labels": [
			{"value": "SKU-1", "caption": "Shelf 1"},
			{"value": "SKU-2"}
		]
	}`

	sheet, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if sheet.Name != "Shelf Tags" {
		t.Errorf("Expected name 'Shelf Tags', got %s", sheet.Name)
	}
	if len(sheet.Labels) != 2 {
		t.Errorf("Expected 2 labels, got %d", len(sheet.Labels))
	}
	if sheet.Settings.Columns != 4 || sheet.Settings.Rows != 6 {
		t.Errorf("Expected 4x6 grid, got %dx%d", sheet.Settings.Columns, sheet.Settings.Rows)
	}
}

func TestParse_PartialSettingsGetDefaults(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"settings": {"columns": 4, "margin": {"top": 0}},
		"labels": [{"value": "A1"}]
	}`

	sheet, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	s := sheet.Settings
	if s.Columns != 4 {
		t.Errorf("Expected explicit columns 4, got %d", s.Columns)
	}
	if s.Rows != 8 {
		t.Errorf("Expected default rows 8, got %d", s.Rows)
	}
	if s.PaperSize != "A4" {
		t.Errorf("Expected default paper A4, got %s", s.PaperSize)
	}
	if s.Margin.Top != 0 {
		t.Errorf("Expected explicit margin.top 0, got %g", s.Margin.Top)
	}
	if s.Margin.Left != 10 {
		t.Errorf("Expected default margin.left 10, got %g", s.Margin.Left)
	}
	if s.Copies != 1 || s.BorderMode != BorderGrid {
		t.Errorf("Expected default copies/border_mode, got %d/%s", s.Copies, s.BorderMode)
	}
}

func TestParse_MissingSettingsGetDefaults(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"labels": [{"value": "A1"}]
	}`

	sheet, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if sheet.Settings != DefaultSettings() {
		t.Errorf("Expected full default settings, got %+v", sheet.Settings)
	}
}

func TestParse_LegacyStringLabels(t *testing.T) {
	jsonData := `{
		"version": "1.0",
		"labels": ["A001", "A002", {"value": "A003", "caption": "three"}]
	}`

	sheet, err := Parse([]byte(jsonData))
	if err != nil {
		t.Fatalf("Expected successful parse, got error: %v", err)
	}

	if len(sheet.Labels) != 3 {
		t.Fatalf("Expected 3 labels, got %d", len(sheet.Labels))
	}
	if sheet.Labels[0].Value != "A001" || sheet.Labels[1].Value != "A002" {
		t.Errorf("Legacy string labels not migrated: %+v", sheet.Labels)
	}
	if sheet.Labels[2].Caption != "three" {
		t.Errorf("Object label mangled: %+v", sheet.Labels[2])
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	if _, err := Parse([]byte(`{invalid json`)); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestToJSON_RoundTrip(t *testing.T) {
	sheet := validSheet()
	sheet.Settings.PaperSize = PaperCustom
	sheet.Settings.CustomPaperSize = Size{Width: 100, Height: 150}
	sheet.Settings.SkipLabels = 3

	jsonData, err := sheet.ToJSON()
	if err != nil {
		t.Fatalf("Expected successful JSON conversion, got error: %v", err)
	}

	parsed, err := Parse(jsonData)
	if err != nil {
		t.Fatalf("Expected successful re-parse, got error: %v", err)
	}

	if parsed.Settings != sheet.Settings {
		t.Errorf("Round-trip changed settings:\n got %+v\nwant %+v", parsed.Settings, sheet.Settings)
	}
	if len(parsed.Labels) != len(sheet.Labels) {
		t.Errorf("Round-trip changed label count: %d != %d", len(parsed.Labels), len(sheet.Labels))
	}
}

func TestPaperSize(t *testing.T) {
	size, ok := PaperSize("A4")
	if !ok || size.Width != 210 || size.Height != 297 {
		t.Errorf("A4 lookup = %+v, %v", size, ok)
	}

	if _, ok := PaperSize("A17"); ok {
		t.Error("Expected unknown preset to report !ok")
	}

	for _, name := range PaperNames() {
		if _, ok := PaperSize(name); !ok {
			t.Errorf("PaperNames lists unknown preset %s", name)
		}
	}
}
