package printer

import (
	"bytes"
	"image"
)

// ESC/POS command prefixes
const (
	ESC byte = 0x1B
	GS  byte = 0x1D
)

// ESCPOSEncoder generates ESC/POS commands from rendered page images
type ESCPOSEncoder struct {
	buffer *bytes.Buffer
}

// NewESCPOSEncoder creates a new ESC/POS encoder
func NewESCPOSEncoder() *ESCPOSEncoder {
	return &ESCPOSEncoder{
		buffer: new(bytes.Buffer),
	}
}

// Initialize sends the printer initialization command
func (e *ESCPOSEncoder) Initialize() {
	e.buffer.WriteByte(ESC)
	e.buffer.WriteByte('@')
}

// PrintImage converts an image to ESC/POS raster graphics
func (e *ESCPOSEncoder) PrintImage(img image.Image) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bitmap := imageToBitmap(img)
	bytesPerLine := (width + 7) / 8

	for y := 0; y < height; y++ {
		// ESC * m nL nH d1...dk, 24-dot double-density mode
		e.buffer.WriteByte(ESC)
		e.buffer.WriteByte('*')
		e.buffer.WriteByte(33)
		e.buffer.WriteByte(byte(bytesPerLine & 0xFF))
		e.buffer.WriteByte(byte((bytesPerLine >> 8) & 0xFF))

		e.buffer.Write(bitmap[y*bytesPerLine : (y+1)*bytesPerLine])

		e.LineFeed()
	}
}

// Cut sends the full paper cut command
func (e *ESCPOSEncoder) Cut() {
	e.buffer.WriteByte(GS)
	e.buffer.WriteByte('V')
	e.buffer.WriteByte(0)
}

// LineFeed sends a line feed
func (e *ESCPOSEncoder) LineFeed() {
	e.buffer.WriteByte(0x0A)
}

// Feed sends multiple line feeds
func (e *ESCPOSEncoder) Feed(lines int) {
	for i := 0; i < lines; i++ {
		e.LineFeed()
	}
}

// GetBytes returns the generated ESC/POS commands
func (e *ESCPOSEncoder) GetBytes() []byte {
	return e.buffer.Bytes()
}

// imageToBitmap converts an image to a 1-bit bitmap, thresholded at 50%
func imageToBitmap(img image.Image) []byte {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	bytesPerLine := (width + 7) / 8
	bitmap := make([]byte, bytesPerLine*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()

			gray := (r + g + b) / 3
			if gray < 32768 {
				byteIndex := y*bytesPerLine + x/8
				bitIndex := 7 - (x % 8)
				bitmap[byteIndex] |= 1 << bitIndex
			}
		}
	}

	return bitmap
}

// EncodeImageToESCPOS converts a rendered page into a complete print job:
// initialize, raster data, trailing feed, cut.
func EncodeImageToESCPOS(img image.Image) []byte {
	encoder := NewESCPOSEncoder()
	encoder.Initialize()
	encoder.PrintImage(img)
	encoder.Feed(3)
	encoder.Cut()
	return encoder.GetBytes()
}
