// Package feed connects to the ledger engine's applied-block stream. The
// stream is a sequence of CBOR-encoded applied blocks; delivery is
// at-least-once and parents normally precede children.
package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"
	"go.uber.org/zap"

	"github.com/meridianledger/explorer-backend/internal/clock"
	"github.com/meridianledger/explorer-backend/internal/model"
)

const (
	defaultDialTimeout   = 10 * time.Second
	defaultRedialBackoff = time.Second
)

// Reader decodes applied blocks from a raw stream.
type Reader struct {
	dec *cbor.Decoder
}

// NewReader wraps r in a CBOR applied-block decoder.
func NewReader(r io.Reader) *Reader {
	return &Reader{dec: cbor.NewDecoder(r)}
}

// Next decodes the next applied block. It returns io.EOF when the stream
// ends cleanly.
func (r *Reader) Next() (*model.AppliedBlock, error) {
	var ab model.AppliedBlock
	if err := r.dec.Decode(&ab); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("decode applied block: %w", err)
	}
	return &ab, nil
}

// Client is a redialing TCP client for the applied-block stream. It
// implements the ingestion source: one Next call yields one applied block,
// and a broken connection is re-established on the following call.
type Client struct {
	logger  *zap.Logger
	addr    string
	dialer  net.Dialer
	backoff time.Duration
	sleep   func(context.Context, time.Duration) error

	mu       sync.Mutex
	conn     net.Conn
	reader   *Reader
	connDone chan struct{}
}

// NewClient builds a Client for the given feed address.
func NewClient(addr string, logger *zap.Logger) *Client {
	return &Client{
		logger:  logger.Named("feed"),
		addr:    addr,
		dialer:  net.Dialer{Timeout: defaultDialTimeout},
		backoff: defaultRedialBackoff,
		sleep:   clock.SleepWithContext,
	}
}

// Next returns the next applied block from the stream, dialing or redialing
// as needed. It blocks until a block arrives, the connection fails, or the
// context is canceled.
func (c *Client) Next(ctx context.Context) (*model.AppliedBlock, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		if err := c.dial(ctx); err != nil {
			return nil, err
		}
	}

	ab, err := c.reader.Next()
	if err != nil {
		c.dropConn()
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("read feed %s: %w", c.addr, err)
	}
	return ab, nil
}

// Close terminates the current connection, unblocking a pending Next.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	close(c.connDone)
	c.conn = nil
	c.reader = nil
	c.connDone = nil
	return err
}

func (c *Client) dial(ctx context.Context) error {
	for {
		conn, err := c.dialer.DialContext(ctx, "tcp", c.addr)
		if err == nil {
			c.logger.Info("connected to block feed", zap.String("addr", c.addr))
			c.conn = conn
			c.reader = NewReader(conn)
			c.connDone = make(chan struct{})
			go c.closeOnCancel(ctx, conn, c.connDone)
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.logger.Warn("block feed dial failed, retrying",
			zap.String("addr", c.addr), zap.Error(err), zap.Duration("sleep", c.backoff))
		if sleepErr := c.sleep(ctx, c.backoff); sleepErr != nil {
			return sleepErr
		}
	}
}

// closeOnCancel unblocks the reader when the context ends; net.Conn reads do
// not observe contexts on their own.
func (c *Client) closeOnCancel(ctx context.Context, conn net.Conn, done chan struct{}) {
	select {
	case <-ctx.Done():
		_ = conn.Close()
	case <-done:
	}
}

func (c *Client) dropConn() {
	if c.conn == nil {
		return
	}
	_ = c.conn.Close()
	close(c.connDone)
	c.conn = nil
	c.reader = nil
	c.connDone = nil
}
