package gateway

import (
	"log"
	"net"
	"sync"
)

const outputBuffer = 256

// lineConn adapts a net.Conn to the session transport: echoes get a line
// ending, prompts do not, and all writes go through a single writer goroutine
// so the session never blocks on a slow client.
type lineConn struct {
	conn   net.Conn
	out    chan string
	closed chan struct{}
	once   sync.Once
}

func newLineConn(conn net.Conn) *lineConn {
	c := &lineConn{
		conn:   conn,
		out:    make(chan string, outputBuffer),
		closed: make(chan struct{}),
	}
	go c.writeLoop()
	return c
}

func (c *lineConn) SendEcho(text string) {
	c.enqueue(text + "\r\n")
}

func (c *lineConn) SendPrompt(text string) {
	c.enqueue(text)
}

// Close is idempotent; closing also unblocks the reader loop.
func (c *lineConn) Close() {
	c.once.Do(func() {
		close(c.closed)
		_ = c.conn.Close()
	})
}

// enqueue never blocks: a client too slow to drain its output loses lines
// rather than stalling the session.
func (c *lineConn) enqueue(text string) {
	select {
	case <-c.closed:
	case c.out <- text:
	default:
		log.Printf("gateway: output buffer full for %s, dropping line", c.conn.RemoteAddr())
	}
}

func (c *lineConn) writeLoop() {
	for {
		select {
		case <-c.closed:
			return
		case text := <-c.out:
			if _, err := c.conn.Write([]byte(text)); err != nil {
				c.Close()
				return
			}
		}
	}
}
