package antdriver

import (
	"os"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// USBDevice is a (vendor, product) pair the USB transport recognizes
// (spec.md §6).
type USBDevice struct{ VendorID, ProductID uint16 }

// Known ANT USB stick (vendor, product) pairs.
var (
	USBStick2 = USBDevice{VendorID: 0x0FCF, ProductID: 0x1008}
	USBStickM = USBDevice{VendorID: 0x0FCF, ProductID: 0x1009}
)

// IsANTUSBDevice reports whether dev matches a known ANT USB stick.
func IsANTUSBDevice(dev USBDevice) bool {
	return dev == USBStick2 || dev == USBStickM
}

// usbdevfsBulkTransfer mirrors linux/usbdevice_fs.h's
// struct usbdevfs_bulktransfer, used via USBDEVFS_BULK to perform bulk
// reads/writes against a claimed interface's endpoint. There is no
// libusb/gousb binding anywhere in the example pack (see DESIGN.md), so
// the USB transport talks to the usbfs device node directly through
// golang.org/x/sys/unix ioctls, grounded on that package's appearance in
// kstaniek-go-ampio-server/go.mod and ausocean-av/go.mod's dependency
// graph.
type usbdevfsBulkTransfer struct {
	ep      uint32
	len     uint32
	timeout uint32
	_       uint32 // padding to align the data pointer on 64-bit
	data    uintptr
}

const usbdevfsBulkIoctl = 0xC0185502 // USBDEVFS_BULK, _IOWR('U', 2, struct usbdevfs_bulktransfer)

// USBConfig describes which endpoints on which usbfs node an USBDriver
// talks to. Discovered out-of-band (e.g. by walking /sys/bus/usb or
// libudev); this package only performs the transfer once the node,
// interface, and endpoint addresses are known, per spec.md §6's "selects
// the first bulk-IN and first bulk-OUT endpoints of the first interface
// of configuration 0."
type USBConfig struct {
	DevicePath string // e.g. /dev/bus/usb/001/004
	Interface  int
	InEndpoint  uint8
	OutEndpoint uint8
	MaxPacketSize int
	PayloadCap    int
	// Timeout bounds each bulk transfer; GetNextMessage issues bulk reads
	// in a tight loop until one reports a timeout, accumulating bytes
	// (spec.md §4.3's USB-style read loop).
	Timeout time.Duration
}

// USBDriver is the bulk-packet transport over a usbfs device node.
type USBDriver struct {
	f         *os.File
	cfg       USBConfig
	assembler *frameAssembler
	chunk     []byte
	sendBuf   [512]byte
}

// OpenUSB claims the configured interface on the usbfs node at
// cfg.DevicePath and returns a ready USBDriver; Close releases the
// interface again, mirroring the original driver's explicit
// claim-then-release lifecycle. No kernel driver is detached or
// reattached.
func OpenUSB(cfg USBConfig) (*USBDriver, error) {
	f, err := os.OpenFile(cfg.DevicePath, os.O_RDWR, 0)
	if err != nil {
		return nil, &ReadFailedError{Err: err}
	}
	if err := claimInterface(f, cfg.Interface); err != nil {
		f.Close()
		return nil, &ReadFailedError{Err: err}
	}
	return &USBDriver{
		f:         f,
		cfg:       cfg,
		assembler: newFrameAssembler(cfg.PayloadCap),
		chunk:     make([]byte, cfg.MaxPacketSize),
	}, nil
}

// SetMetrics installs an optional Registry; nil (the default) disables
// metrics entirely.
func (d *USBDriver) SetMetrics(m *antmetrics.Registry) { d.assembler.metrics = m }

const (
	usbdevfsClaimInterface   = 0x8004550F
	usbdevfsReleaseInterface = 0x80045510
)

func claimInterface(f *os.File, iface int) error {
	n := int32(iface)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), usbdevfsClaimInterface, uintptr(unsafe.Pointer(&n)))
	if errno != 0 {
		return errno
	}
	return nil
}

func releaseInterface(f *os.File, iface int) error {
	n := int32(iface)
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), usbdevfsReleaseInterface, uintptr(unsafe.Pointer(&n)))
	if errno != 0 {
		return errno
	}
	return nil
}

func (d *USBDriver) bulkTransfer(ep uint8, buf []byte, timeout time.Duration) (int, error) {
	xfer := usbdevfsBulkTransfer{
		ep:      uint32(ep),
		len:     uint32(len(buf)),
		timeout: uint32(timeout.Milliseconds()),
		data:    uintptr(unsafe.Pointer(&buf[0])),
	}
	n, _, errno := unix.Syscall(unix.SYS_IOCTL, d.f.Fd(), uintptr(usbdevfsBulkIoctl), uintptr(unsafe.Pointer(&xfer)))
	if errno == unix.ETIMEDOUT {
		return 0, ErrWouldBlock
	}
	if errno != 0 {
		return 0, errno
	}
	return int(n), nil
}

// GetNextMessage issues bulk-IN reads in a tight loop until the transport
// reports a timeout, accumulating bytes (spec.md §4.3's USB-style read
// loop), then attempts one decode.
func (d *USBDriver) GetNextMessage() (*antmsg.Decoded, error) {
	for {
		n, err := d.bulkTransfer(d.cfg.InEndpoint|0x80, d.chunk, d.cfg.Timeout)
		if err == ErrWouldBlock {
			break
		}
		if err != nil {
			return nil, &ReadFailedError{Err: err}
		}
		if n == 0 {
			break
		}
		d.assembler.feed(d.chunk[:n])
	}
	return d.assembler.tryDecode()
}

// SendMessage accumulates a framed buffer and flushes it in
// packet-sized bulk writes until drained (spec.md §4.3).
func (d *USBDriver) SendMessage(m antmsg.Outbound) error {
	n, err := createPackedMessage(m, d.sendBuf[:])
	if err != nil {
		return &WriteFailedError{Err: err}
	}
	for written := 0; written < n; {
		end := written + d.cfg.MaxPacketSize
		if end > n {
			end = n
		}
		k, err := d.bulkTransfer(d.cfg.OutEndpoint, d.sendBuf[written:end], d.cfg.Timeout)
		if err == ErrWouldBlock {
			continue
		}
		if err != nil {
			return &WriteFailedError{Err: err}
		}
		written += k
	}
	return nil
}

func (d *USBDriver) Close() error {
	releaseInterface(d.f, d.cfg.Interface)
	return d.f.Close()
}
