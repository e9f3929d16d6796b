package netcheck

import (
	"context"
	"io"
	"log/slog"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()
	return ln
}

func TestProbe_Reachable(t *testing.T) {
	ln := listen(t)
	defer ln.Close()

	p := NewProbe(ln.Addr().String(), time.Second, testLogger())

	assert.True(t, p.Online(context.Background()))
	assert.NoError(t, p.CheckReadiness(context.Background()))
}

func TestProbe_Unreachable(t *testing.T) {
	ln := listen(t)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	p := NewProbe(addr, time.Second, testLogger())

	assert.False(t, p.Online(context.Background()))
	err := p.CheckReadiness(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), addr)
}

func TestProbe_CancelledContext(t *testing.T) {
	ln := listen(t)
	defer ln.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProbe(ln.Addr().String(), time.Second, testLogger())
	assert.False(t, p.Online(ctx))
}

func TestNewProbe_DefaultAddr(t *testing.T) {
	p := NewProbe("", time.Second, testLogger())
	assert.Equal(t, DefaultAddr, p.addr)
}
