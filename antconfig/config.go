// Package antconfig is the ambient configuration surface: the payload-size
// cap, transport selection, and per-transport settings a host process
// needs that spec.md's core packages deliberately know nothing about.
// Grounded on kstaniek-go-ampio-server/cmd/can-server/config.go's
// flag-then-env-override pattern (flags parsed first, environment
// variables applied only where the matching flag was not explicitly set,
// then validated as a single pass).
package antconfig

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/antcomm/anthost/antmsg"
)

// Config is the process-wide configuration for an anthost-based daemon.
type Config struct {
	PayloadCap int

	Transport  string // "uart", "usb", or "stub"
	UARTDevice string
	UARTBaud   int

	USBDevicePath string
	USBVendorID   uint16
	USBProductID  uint16

	ReadTimeout time.Duration

	LogPath      string
	LogLevel     string
	LogMaxSizeMB int

	MetricsAddr string

	// HotReloadPath, if non-empty, is watched via fsnotify for live
	// LogLevel/MetricsAddr updates without a process restart.
	HotReloadPath string
}

// ParseFlags parses command-line flags, applies ANTHOST_*  environment
// overrides for any flag not explicitly set, clamps PayloadCap to
// [antmsg.MinPayload, antmsg.AbsoluteMaxPayload], validates the result,
// and installs PayloadCap as antmsg's package-wide payload cap and
// advanced-burst data cap.
func ParseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("anthost", flag.ContinueOnError)
	payloadCap := fs.Int("payload-cap", 64, "Maximum ANT message payload length, clamped to [24,254]")
	transport := fs.String("transport", "stub", "Transport: uart|usb|stub")
	uartDevice := fs.String("uart-device", "/dev/ttyUSB0", "UART device path")
	uartBaud := fs.Int("uart-baud", 57600, "UART baud rate")
	usbDevicePath := fs.String("usb-device", "", "usbfs device node path (e.g. /dev/bus/usb/001/004)")
	readTimeout := fs.Duration("read-timeout", 50*time.Millisecond, "Transport read timeout")
	logPath := fs.String("log-path", "", "Log file path; empty logs to stderr")
	logLevel := fs.String("log-level", "info", "Log level: debug|info|warn|error")
	logMaxSizeMB := fs.Int("log-max-size-mb", 10, "Rotated log file size threshold, in megabytes")
	metricsAddr := fs.String("metrics-addr", "", "Metrics HTTP listen address (e.g. :9100); empty disables")
	hotReloadPath := fs.String("hot-reload-path", "", "Settings file watched for live log-level/metrics-addr changes; empty disables")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := &Config{
		PayloadCap:    *payloadCap,
		Transport:     *transport,
		UARTDevice:    *uartDevice,
		UARTBaud:      *uartBaud,
		USBDevicePath: *usbDevicePath,
		USBVendorID:   0x0FCF,
		USBProductID:  0x1008,
		ReadTimeout:   *readTimeout,
		LogPath:       *logPath,
		LogLevel:      *logLevel,
		LogMaxSizeMB:  *logMaxSizeMB,
		MetricsAddr:   *metricsAddr,
		HotReloadPath: *hotReloadPath,
	}

	set := map[string]struct{}{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = struct{}{} })
	if err := applyEnvOverrides(cfg, set); err != nil {
		return nil, err
	}
	if cfg.PayloadCap < antmsg.MinPayload {
		cfg.PayloadCap = antmsg.MinPayload
	} else if cfg.PayloadCap > antmsg.AbsoluteMaxPayload {
		cfg.PayloadCap = antmsg.AbsoluteMaxPayload
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	antmsg.SetMaxPayload(cfg.PayloadCap)
	antmsg.SetAdvancedBurstBufferSize(cfg.PayloadCap)
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Transport {
	case "uart", "usb", "stub":
	default:
		return fmt.Errorf("antconfig: invalid transport %q", c.Transport)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("antconfig: invalid log level %q", c.LogLevel)
	}
	if c.PayloadCap < antmsg.MinPayload || c.PayloadCap > antmsg.AbsoluteMaxPayload {
		return fmt.Errorf("antconfig: payload-cap %d out of range [%d,%d]", c.PayloadCap, antmsg.MinPayload, antmsg.AbsoluteMaxPayload)
	}
	if c.Transport == "uart" && c.UARTBaud <= 0 {
		return fmt.Errorf("antconfig: uart-baud must be > 0")
	}
	if c.Transport == "usb" && c.USBDevicePath == "" {
		return fmt.Errorf("antconfig: usb-device required when transport=usb")
	}
	return nil
}

// applyEnvOverrides maps ANTHOST_* environment variables onto cfg, unless
// the corresponding flag was explicitly set (flags win).
func applyEnvOverrides(c *Config, set map[string]struct{}) error {
	get := func(k string) (string, bool) {
		v, ok := os.LookupEnv(k)
		return strings.TrimSpace(v), ok
	}
	var firstErr error
	if _, ok := set["payload-cap"]; !ok {
		if v, ok := get("ANTHOST_PAYLOAD_CAP"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.PayloadCap = n
			} else if firstErr == nil {
				firstErr = fmt.Errorf("invalid ANTHOST_PAYLOAD_CAP: %w", err)
			}
		}
	}
	if _, ok := set["transport"]; !ok {
		if v, ok := get("ANTHOST_TRANSPORT"); ok && v != "" {
			c.Transport = v
		}
	}
	if _, ok := set["uart-device"]; !ok {
		if v, ok := get("ANTHOST_UART_DEVICE"); ok && v != "" {
			c.UARTDevice = v
		}
	}
	if _, ok := set["uart-baud"]; !ok {
		if v, ok := get("ANTHOST_UART_BAUD"); ok && v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				c.UARTBaud = n
			} else if firstErr == nil {
				firstErr = fmt.Errorf("invalid ANTHOST_UART_BAUD: %w", err)
			}
		}
	}
	if _, ok := set["usb-device"]; !ok {
		if v, ok := get("ANTHOST_USB_DEVICE"); ok && v != "" {
			c.USBDevicePath = v
		}
	}
	if _, ok := set["log-level"]; !ok {
		if v, ok := get("ANTHOST_LOG_LEVEL"); ok && v != "" {
			c.LogLevel = v
		}
	}
	if _, ok := set["metrics-addr"]; !ok {
		if v, ok := get("ANTHOST_METRICS_ADDR"); ok {
			c.MetricsAddr = v
		}
	}
	if _, ok := set["hot-reload-path"]; !ok {
		if v, ok := get("ANTHOST_HOT_RELOAD_PATH"); ok {
			c.HotReloadPath = v
		}
	}
	return firstErr
}
