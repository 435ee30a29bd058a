package sheetformat

// PaperCustom selects CustomPaperSize instead of a named preset.
const PaperCustom = "custom"

// papers maps preset names to physical dimensions in millimeters.
var papers = map[string]Size{
	"A3":       {Width: 297, Height: 420},
	"A4":       {Width: 210, Height: 297},
	"A5":       {Width: 148, Height: 210},
	"B5":       {Width: 176, Height: 250},
	"Letter":   {Width: 215.9, Height: 279.4},
	"Legal":    {Width: 215.9, Height: 355.6},
	"Postcard": {Width: 100, Height: 148},
}

// PaperSize looks up a named paper preset.
func PaperSize(name string) (Size, bool) {
	size, ok := papers[name]
	return size, ok
}

// PaperNames returns all known preset names in a stable order.
func PaperNames() []string {
	return []string{"A3", "A4", "A5", "B5", "Letter", "Legal", "Postcard"}
}
