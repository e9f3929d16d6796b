// Package netcheck reports whether the remote service's endpoint is reachable.
package netcheck

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"
)

// DefaultAddr is the public Gemini API endpoint.
const DefaultAddr = "generativelanguage.googleapis.com:443"

// Probe dials a TCP address to decide whether the network is up. It satisfies
// both forecast.Connectivity and the readiness checker interface.
type Probe struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
	logger  *slog.Logger
}

// NewProbe creates a probe for addr ("host:port").
func NewProbe(addr string, timeout time.Duration, logger *slog.Logger) *Probe {
	if addr == "" {
		addr = DefaultAddr
	}
	return &Probe{addr: addr, timeout: timeout, logger: logger}
}

// Online reports whether a TCP connection to the probe address succeeds
// within the timeout.
func (p *Probe) Online(ctx context.Context) bool {
	if err := p.dial(ctx); err != nil {
		p.logger.Debug("connectivity probe failed", "addr", p.addr, "error", err)
		return false
	}
	return true
}

// CheckReadiness returns an error when the probe address is unreachable.
func (p *Probe) CheckReadiness(ctx context.Context) error {
	if err := p.dial(ctx); err != nil {
		return fmt.Errorf("connectivity to %s: %w", p.addr, err)
	}
	return nil
}

func (p *Probe) dial(ctx context.Context) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}
	conn, err := p.dialer.DialContext(ctx, "tcp", p.addr)
	if err != nil {
		return err
	}
	return conn.Close()
}
