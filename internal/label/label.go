// Package label turns label records into renderable items: a scannable code
// image plus an optional caption. It owns no layout decisions; cell geometry
// stays with the layout engine.
package label

import (
	"fmt"
	"image"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/ean"
	"github.com/skip2/go-qrcode"

	"github.com/labelforge/sheet-engine/internal/layout"
	"github.com/labelforge/sheet-engine/pkg/sheetformat"
)

// Native generation sizes in pixels. The renderer scales the visual into
// whatever cell the layout engine computed, so these only need to be large
// enough to stay crisp at print resolution.
const (
	qrNativeSize        = 512
	barcodeNativeWidth  = 512
	barcodeNativeHeight = 160
)

// Label is one generated label visual with its caption.
type Label struct {
	visual  image.Image
	caption string
}

// Visual returns the generated code image.
func (l *Label) Visual() image.Image { return l.visual }

// Caption returns the caption text, empty when none was given.
func (l *Label) Caption() string { return l.caption }

// New generates the visual for a single label record.
func New(spec sheetformat.Label) (*Label, error) {
	if spec.Value == "" {
		return nil, fmt.Errorf("label value is required")
	}

	format := spec.Format
	if format == "" {
		format = "qrcode"
	}

	var visual image.Image

	switch format {
	case "qrcode":
		errorCorrection := qrcode.Medium
		switch spec.ErrorCorrection {
		case "L":
			errorCorrection = qrcode.Low
		case "M":
			errorCorrection = qrcode.Medium
		case "Q":
			errorCorrection = qrcode.High
		case "H":
			errorCorrection = qrcode.Highest
		}

		qr, err := qrcode.New(spec.Value, errorCorrection)
		if err != nil {
			return nil, fmt.Errorf("failed to generate QR code: %w", err)
		}
		visual = qr.Image(qrNativeSize)

	case "code128", "code39", "ean13", "ean8":
		var barcodeImg barcode.Barcode
		var err error

		switch format {
		case "code128":
			barcodeImg, err = code128.Encode(spec.Value)
		case "code39":
			barcodeImg, err = code39.Encode(spec.Value, false, false)
		default:
			barcodeImg, err = ean.Encode(spec.Value)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to generate %s barcode: %w", format, err)
		}

		barcodeImg, err = barcode.Scale(barcodeImg, barcodeNativeWidth, barcodeNativeHeight)
		if err != nil {
			return nil, fmt.Errorf("failed to scale %s barcode: %w", format, err)
		}
		visual = barcodeImg

	default:
		return nil, fmt.Errorf("unsupported label format: %s", format)
	}

	return &Label{visual: visual, caption: spec.Caption}, nil
}

// Build converts label records to layout items, preserving order.
func Build(specs []sheetformat.Label) ([]layout.Item, error) {
	items := make([]layout.Item, 0, len(specs))
	for i, spec := range specs {
		item, err := New(spec)
		if err != nil {
			return nil, fmt.Errorf("label[%d]: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}
