package sheetformat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Parse parses a .sheet file from a byte slice
func Parse(data []byte) (*Sheet, error) {
	var sheet Sheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("failed to parse sheet: %w", err)
	}

	// Files written before settings existed carry no settings object at
	// all; json leaves the zero value, so apply defaults here.
	if sheet.Settings == (Settings{}) {
		sheet.Settings = DefaultSettings()
	}

	if err := Validate(&sheet); err != nil {
		return nil, err
	}

	return &sheet, nil
}

// ParseFile parses a .sheet file from disk
func ParseFile(path string) (*Sheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet file: %w", err)
	}

	return Parse(data)
}

// ToJSON converts a Sheet to JSON bytes
func (s *Sheet) ToJSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// SaveToFile saves a Sheet to a file
func (s *Sheet) SaveToFile(path string) error {
	data, err := s.ToJSON()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
