package anthost

import (
	"github.com/pkg/errors"

	"github.com/antcomm/anthost/antdriver"
	"github.com/antcomm/anthost/antrouter"
)

// OpenUARTRouter opens the UART transport described by cfg and performs
// the router construction sequence against it. Any failure opening the
// transport is wrapped with context via github.com/pkg/errors so the
// caller's logs show which boundary failed without losing the original
// error for errors.Cause/errors.Is.
func OpenUARTRouter(cfg UARTConfig) (*Router, error) {
	d, err := antdriver.OpenUART(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "anthost: open uart %s", cfg.Device)
	}
	r, err := antrouter.New(d)
	if err != nil {
		d.Close()
		return nil, errors.Wrap(err, "anthost: router construction over uart")
	}
	return r, nil
}

// OpenUSBRouter opens the USB transport described by cfg and performs the
// router construction sequence against it.
func OpenUSBRouter(cfg USBConfig) (*Router, error) {
	d, err := antdriver.OpenUSB(cfg)
	if err != nil {
		return nil, errors.Wrapf(err, "anthost: open usb %s", cfg.DevicePath)
	}
	r, err := antrouter.New(d)
	if err != nil {
		d.Close()
		return nil, errors.Wrap(err, "anthost: router construction over usb")
	}
	return r, nil
}
