package printer

import (
	"fmt"
	"image"
	"sync"

	"github.com/google/gousb"
)

// USBConnection is a USB printer connection
type USBConnection struct {
	ctx      *gousb.Context
	device   *gousb.Device
	iface    *gousb.Interface
	done     func()
	endpoint *gousb.OutEndpoint
	mu       sync.Mutex
}

// ConnectUSB connects to a USB printer by vendor and product id.
// Returns an error if USB support is not available (libusb not installed).
func ConnectUSB(vid, pid uint16) (*USBConnection, error) {
	ctx := gousb.NewContext()

	dev, err := ctx.OpenDeviceWithVIDPID(gousb.ID(vid), gousb.ID(pid))
	if err != nil {
		ctx.Close()
		return nil, fmt.Errorf("failed to open USB device: %w", err)
	}
	if dev == nil {
		ctx.Close()
		return nil, fmt.Errorf("device not found: %04X:%04X", vid, pid)
	}

	// Interface 0, alt setting 0 works for most printers. Retry with the
	// kernel driver detached when the first claim fails.
	iface, done, err := dev.DefaultInterface()
	if err != nil {
		dev.SetAutoDetach(true)
		iface, done, err = dev.DefaultInterface()
	}
	if err != nil {
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("failed to claim USB interface: %w", err)
	}

	var endpoint *gousb.OutEndpoint
	for _, epDesc := range iface.Setting.Endpoints {
		if epDesc.Direction == gousb.EndpointDirectionOut {
			if ep, err := iface.OutEndpoint(epDesc.Number); err == nil {
				endpoint = ep
				break
			}
		}
	}
	if endpoint == nil {
		done()
		dev.Close()
		ctx.Close()
		return nil, fmt.Errorf("no OUT endpoint found for USB printer %04X:%04X", vid, pid)
	}

	return &USBConnection{
		ctx:      ctx,
		device:   dev,
		iface:    iface,
		done:     done,
		endpoint: endpoint,
	}, nil
}

// Write sends data to the USB printer
func (c *USBConnection) Write(data []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.endpoint.Write(data)
}

// Print prints a rendered page to the USB printer
func (c *USBConnection) Print(img image.Image) error {
	data := EncodeImageToESCPOS(img)

	if _, err := c.Write(data); err != nil {
		return fmt.Errorf("failed to write to USB printer: %w", err)
	}

	return nil
}

// Close releases the interface and closes the device
func (c *USBConnection) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done != nil {
		c.done()
	}
	if c.device != nil {
		c.device.Close()
	}
	if c.ctx != nil {
		return c.ctx.Close()
	}

	return nil
}
