// Package gateway accepts TCP connections and bridges them to session
// actors: one reader loop per connection feeding input lines into the
// mailbox, one writer goroutine draining an output channel.
package gateway

import (
	"bufio"
	"context"
	"errors"
	"log"
	"net"
	"sync"

	mkerr "github.com/thornvale/mud/internal/errors"
	"github.com/thornvale/mud/internal/session"
)

// Config holds configuration for the gateway.
type Config struct {
	Addr string

	// NewSession builds a session actor for an accepted connection.
	NewSession func(transport session.Transport) *session.Session
}

// Gateway listens for player connections.
type Gateway struct {
	addr       string
	newSession func(session.Transport) *session.Session

	mu sync.Mutex
	ln net.Listener
	wg sync.WaitGroup
}

// New creates a gateway.
func New(cfg *Config) *Gateway {
	if cfg.Addr == "" {
		panic("listen address is required")
	}
	if cfg.NewSession == nil {
		panic("session factory is required")
	}
	return &Gateway{addr: cfg.Addr, newSession: cfg.NewSession}
}

// ListenAndServe accepts connections until the context is cancelled, then
// waits for per-connection readers to finish.
func (g *Gateway) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", g.addr)
	if err != nil {
		return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "failed to listen")
	}

	g.mu.Lock()
	g.ln = ln
	g.mu.Unlock()

	go func() {
		<-ctx.Done()
		_ = ln.Close()
	}()

	log.Printf("gateway: listening on %s", ln.Addr())
	for {
		conn, err := ln.Accept()
		if err != nil {
			g.wg.Wait()
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return mkerr.WrapWithCode(err, mkerr.CodeUnavailable, "accept failed")
		}

		g.wg.Add(1)
		go func() {
			defer g.wg.Done()
			g.handleConn(conn)
		}()
	}
}

// Addr returns the bound listen address, useful when Addr was ":0".
func (g *Gateway) Addr() net.Addr {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.ln == nil {
		return nil
	}
	return g.ln.Addr()
}

// handleConn runs the connection's reader loop. Input lines become mailbox
// messages; a read error or EOF becomes a Disconnect.
func (g *Gateway) handleConn(conn net.Conn) {
	transport := newLineConn(conn)
	sess := g.newSession(transport)
	sess.Start()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		sess.Post(session.ReceiveLine{Line: scanner.Text()})
	}
	if err := scanner.Err(); err != nil && !errors.Is(err, net.ErrClosed) {
		log.Printf("gateway: read from %s failed: %v", conn.RemoteAddr(), err)
	}

	sess.Post(session.Disconnect{})
	<-sess.Done()
}
