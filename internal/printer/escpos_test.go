package printer

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestEncodeImageToESCPOS_Framing(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 16, 4))

	data := EncodeImageToESCPOS(img)

	if !bytes.HasPrefix(data, []byte{ESC, '@'}) {
		t.Error("expected output to start with the initialize command")
	}
	if !bytes.HasSuffix(data, []byte{GS, 'V', 0}) {
		t.Error("expected output to end with the cut command")
	}
}

func TestImageToBitmap_Threshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		if x < 4 {
			img.SetGray(x, 0, color.Gray{Y: 0}) // black
		} else {
			img.SetGray(x, 0, color.Gray{Y: 255}) // white
		}
	}

	bitmap := imageToBitmap(img)
	if len(bitmap) != 1 {
		t.Fatalf("expected 1 byte for an 8x1 image, got %d", len(bitmap))
	}
	if bitmap[0] != 0xF0 {
		t.Errorf("expected bitmap 0xF0, got %#02X", bitmap[0])
	}
}

func TestImageToBitmap_RowPadding(t *testing.T) {
	// 10 pixels wide: rows must be padded to 2 bytes.
	img := image.NewGray(image.Rect(0, 0, 10, 3))

	bitmap := imageToBitmap(img)
	if len(bitmap) != 6 {
		t.Errorf("expected 6 bytes for a 10x3 image, got %d", len(bitmap))
	}
}

func TestConnect_Validation(t *testing.T) {
	tests := []struct {
		name   string
		target Target
	}{
		{"unknown type", Target{Type: "carrier-pigeon"}},
		{"network without host", Target{Type: "network"}},
		{"serial without device", Target{Type: "serial"}},
		{"usb without ids", Target{Type: "usb"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Connect(tt.target); err == nil {
				t.Error("expected error")
			}
		})
	}
}
