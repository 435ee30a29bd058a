// Package printer sends rendered pages to physical ESC/POS devices over
// network, serial, or USB transports.
package printer

import (
	"fmt"
	"image"
)

// Target describes a physical printer destination.
type Target struct {
	Type string `json:"type"` // network, serial, usb

	// Network
	Host string `json:"host,omitempty"`
	Port int    `json:"port,omitempty"`

	// Serial
	Device string `json:"device,omitempty"`
	Baud   int    `json:"baud,omitempty"`

	// USB
	VID uint16 `json:"vid,omitempty"`
	PID uint16 `json:"pid,omitempty"`
}

// Connection is an open link to a printer.
type Connection interface {
	// Print sends one rendered page.
	Print(img image.Image) error
	Close() error
}

// Connect opens a connection to the described target.
func Connect(t Target) (Connection, error) {
	switch t.Type {
	case "network":
		if t.Host == "" {
			return nil, fmt.Errorf("network target requires host")
		}
		port := t.Port
		if port == 0 {
			port = 9100 // Raw printing port used by most network printers
		}
		return ConnectNetwork(t.Host, port)
	case "serial":
		if t.Device == "" {
			return nil, fmt.Errorf("serial target requires device")
		}
		return ConnectSerial(t.Device, t.Baud)
	case "usb":
		if t.VID == 0 || t.PID == 0 {
			return nil, fmt.Errorf("usb target requires vid and pid")
		}
		return ConnectUSB(t.VID, t.PID)
	default:
		return nil, fmt.Errorf("unknown target type: %s", t.Type)
	}
}
