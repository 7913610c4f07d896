package connection

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/yndnr/redislite/internal/server/redisserver"
)

// DefaultTimeout bounds dialing and each request.
const DefaultTimeout = 5 * time.Second


// Client is a RESP client for a single server connection.
type Client struct {
	addr    string
	timeout time.Duration
	conn    net.Conn
	reader  *bufio.Reader
}

// NewClient creates a client for addr. A zero timeout uses DefaultTimeout.
func NewClient(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{addr: addr, timeout: timeout}
}

// Addr returns the server address.
func (c *Client) Addr() string {
	return c.addr
}

// Connect dials the server.
func (c *Client) Connect(ctx context.Context) error {
	d := net.Dialer{Timeout: c.timeout}
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("connect %s: %w", c.addr, err)
	}
	c.conn = conn
	c.reader = bufio.NewReader(conn)
	return nil
}

// Close closes the connection.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.reader = nil
	return err
}

// Do sends args as one command and reads the reply. It connects on first use
// and drops the connection after an I/O failure so the next call redials.
// An error reply from the server is returned as a Reply, not an error.
func (c *Client) Do(ctx context.Context, args ...string) (Reply, error) {
	if len(args) == 0 {
		return Reply{}, errors.New("connection: empty command")
	}
	if c.conn == nil {
		if err := c.Connect(ctx); err != nil {
			return Reply{}, err
		}
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetDeadline(deadline); err != nil {
		_ = c.Close()
		return Reply{}, err
	}

	items := make([][]byte, len(args))
	for i, a := range args {
		items[i] = []byte(a)
	}
	if _, err := c.conn.Write(redisserver.EncodeArray(items...)); err != nil {
		_ = c.Close()
		return Reply{}, fmt.Errorf("send: %w", err)
	}

	reply, err := ReadReply(c.reader)
	if err != nil {
		_ = c.Close()
		return Reply{}, fmt.Errorf("read reply: %w", err)
	}
	return reply, nil
}
