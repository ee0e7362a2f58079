// Package printer renders and pushes day-sheet documents to ESC/POS thermal
// printers. Print jobs are a few kilobytes at most, so every transport opens
// the device per job and releases it immediately; nothing holds the printer
// between prints and a sheet can be re-run after a paper jam without
// reconnecting.
package printer

import (
	"fmt"
	"net"
	"os"
	"time"
)

// DefaultWidth is the character width of the 58mm thermal roll the shop
// counter printer takes. 80mm rolls fit 48 characters.
const DefaultWidth = 32

const (
	dialTimeout  = 5 * time.Second
	writeTimeout = 10 * time.Second
	probeTimeout = 2 * time.Second
)

// Printer pushes a rendered ESC/POS byte stream to a physical device.
type Printer interface {
	// Print sends one complete job to the printer.
	Print(data []byte) error
	// Close releases any held device handle.
	Close() error
	// IsConnected reports whether the device is currently reachable.
	IsConnected() bool
}

// usbPrinter writes jobs to a character device file, e.g. /dev/usb/lp0.
type usbPrinter struct {
	path string
}

// NewUSBPrinter creates a printer backed by a USB device file.
func NewUSBPrinter(devicePath string) Printer {
	return &usbPrinter{path: devicePath}
}

func (p *usbPrinter) Print(data []byte) error {
	f, err := os.OpenFile(p.path, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("printer: open USB device %s: %w", p.path, err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("printer: write to USB device %s: %w", p.path, err)
	}
	return nil
}

func (p *usbPrinter) Close() error {
	return nil // device is opened per job
}

func (p *usbPrinter) IsConnected() bool {
	_, err := os.Stat(p.path)
	return err == nil
}

// networkPrinter sends jobs over raw TCP, the usual port 9100 setup for
// shop LAN printers.
type networkPrinter struct {
	address string
}

// NewNetworkPrinter creates a printer reached over TCP. The address must
// include the port, e.g. "192.168.1.50:9100".
func NewNetworkPrinter(address string) Printer {
	return &networkPrinter{address: address}
}

func (p *networkPrinter) Print(data []byte) error {
	conn, err := net.DialTimeout("tcp", p.address, dialTimeout)
	if err != nil {
		return fmt.Errorf("printer: connect to %s: %w", p.address, err)
	}
	defer conn.Close()

	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("printer: write to %s: %w", p.address, err)
	}
	return nil
}

func (p *networkPrinter) Close() error {
	return nil // connection is dialed per job
}

func (p *networkPrinter) IsConnected() bool {
	conn, err := net.DialTimeout("tcp", p.address, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// nullPrinter swallows jobs so the API keeps working with no hardware
// attached; the day sheet is still returned to the caller as JSON.
type nullPrinter struct{}

// NewNullPrinter creates a no-op printer for setups without hardware.
func NewNullPrinter() Printer {
	return &nullPrinter{}
}

func (p *nullPrinter) Print(data []byte) error { return nil }
func (p *nullPrinter) Close() error            { return nil }
func (p *nullPrinter) IsConnected() bool       { return false }

// New picks the transport for the configured printer type: "usb", "network"
// or anything else for the null printer.
func New(printerType, usbPath, address string) (Printer, error) {
	switch printerType {
	case "usb":
		if usbPath == "" {
			return nil, fmt.Errorf("printer: USB printer requires a device path")
		}
		return NewUSBPrinter(usbPath), nil
	case "network":
		if address == "" {
			return nil, fmt.Errorf("printer: network printer requires an address")
		}
		return NewNetworkPrinter(address), nil
	default:
		return NewNullPrinter(), nil
	}
}
