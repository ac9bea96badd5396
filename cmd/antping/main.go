// Command antping opens a transport, brings up one bidirectional slave
// channel, and, at log level debug, logs every inbound message it sees — a minimal example
// binary in the teacher's examples/transmitter texture (one heartbeat-style
// background task driving a blocking loop), adapted from a fire-and-forget
// heartbeat ticker to a ticker that drives Router.Process().
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/antcomm/anthost/antchannel"
	"github.com/antcomm/anthost/antconfig"
	"github.com/antcomm/anthost/antdriver"
	"github.com/antcomm/anthost/antmsg"
	"github.com/antcomm/anthost/antrouter"
	"github.com/antcomm/anthost/internal/antmetrics"
)

// verbosity gates rx/tx observer logging; updated live by hot-reload.
var verbosity atomic.Int32

func levelRank(level string) int32 {
	switch level {
	case "debug":
		return 0
	case "warn":
		return 2
	case "error":
		return 3
	default: // "info"
		return 1
	}
}

func logAtLevel(level, format string, args ...interface{}) {
	if levelRank(level) < verbosity.Load() {
		return
	}
	log.Printf(format, args...)
}

// metricsServer holds the currently-running metrics HTTP server so a
// hot-reload can swap it to a new address without a process restart.
type metricsServer struct {
	mu  sync.Mutex
	srv *http.Server
	reg *prometheus.Registry
}

func (m *metricsServer) setAddr(addr string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		m.srv.Shutdown(ctx)
		cancel()
		m.srv = nil
	}
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	antmetrics.ServeHTTP(mux, m.reg)
	m.srv = &http.Server{Addr: addr, Handler: mux}
	go func() {
		log.Printf("[antping] metrics listening on %s", addr)
		if err := m.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("[antping] metrics server stopped: %v", err)
		}
	}()
}

func main() {
	cfg, err := antconfig.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("[antping] config: %v", err)
	}
	log.SetOutput(cfg.NewLogger().Writer())
	verbosity.Store(levelRank(cfg.LogLevel))

	reg := prometheus.NewRegistry()
	metrics := antmetrics.New(reg)
	metricsSrv := &metricsServer{reg: reg}
	metricsSrv.setAddr(cfg.MetricsAddr)

	if cfg.HotReloadPath != "" {
		watcher, err := antconfig.WatchHotReload(cfg.HotReloadPath, func(hs antconfig.HotSettings) {
			if hs.LogLevel != "" {
				log.Printf("[antping] hot-reload: log-level -> %s", hs.LogLevel)
				verbosity.Store(levelRank(hs.LogLevel))
			}
			log.Printf("[antping] hot-reload: metrics-addr -> %q", hs.MetricsAddr)
			metricsSrv.setAddr(hs.MetricsAddr)
		})
		if err != nil {
			log.Fatalf("[antping] hot reload: %v", err)
		}
		defer watcher.Close()
	}

	driver, err := openDriver(cfg, metrics)
	if err != nil {
		log.Fatalf("[antping] open driver: %v", err)
	}
	defer driver.Close()

	router, err := antrouter.NewWithMetrics(driver, metrics)
	if err != nil {
		log.Fatalf("[antping] router: %v", err)
	}
	router.SetObserver(func(msg antmsg.Inbound) {
		logAtLevel("debug", "[antping] rx: %#v", msg)
	})

	ch := antchannel.New(0, antchannel.StaticConfig{
		ChannelType:   0x00, // bidirectional slave
		Network:       0,
		DeviceNumber:  0, // wildcard search
		DeviceType:    0,
		RFFrequency:   57, // 2457 MHz, the ANT+ default
		Period:        8070,
		SearchTimeout: 30,
	})
	ch.SetMetrics(metrics)
	ch.SetRxObserver(func(msg antmsg.Inbound) {
		logAtLevel("debug", "[antping] channel 0 data: %#v", msg)
	})
	if _, err := router.AddChannel(ch); err != nil {
		log.Fatalf("[antping] add channel: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := router.Process(); err != nil {
				log.Printf("[antping] process: %v", err)
			}
		case <-stop:
			log.Printf("[antping] shutting down")
			return
		}
	}
}

func openDriver(cfg *antconfig.Config, metrics *antmetrics.Registry) (antdriver.Driver, error) {
	switch cfg.Transport {
	case "uart":
		d, err := antdriver.OpenUART(antdriver.UARTConfig{
			Device:      cfg.UARTDevice,
			Baud:        cfg.UARTBaud,
			PayloadCap:  cfg.PayloadCap,
			ReadTimeout: cfg.ReadTimeout,
		})
		if err != nil {
			return nil, err
		}
		d.SetMetrics(metrics)
		return d, nil
	case "usb":
		d, err := antdriver.OpenUSB(antdriver.USBConfig{
			DevicePath:    cfg.USBDevicePath,
			Interface:     0,
			InEndpoint:    1,
			OutEndpoint:   1,
			MaxPacketSize: 64,
			PayloadCap:    cfg.PayloadCap,
			Timeout:       cfg.ReadTimeout,
		})
		if err != nil {
			return nil, err
		}
		d.SetMetrics(metrics)
		return d, nil
	default:
		d := antdriver.NewStubDriver(cfg.PayloadCap)
		d.SetMetrics(metrics)
		return d, nil
	}
}

