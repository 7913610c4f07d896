package redisserver

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/time/rate"

	"github.com/yndnr/redislite/internal/core/domain"
	"github.com/yndnr/redislite/internal/server/config"
	"github.com/yndnr/redislite/internal/storage/memory"
	"github.com/yndnr/redislite/internal/telemetry/metric"
	"github.com/yndnr/redislite/pkg/cmap"
)

// maxPending bounds the bytes a framed connection may buffer for one frame.
const maxPending = MaxBulkLen + 64*1024

// Config holds the Redis server configuration.
type Config struct {
	// Addr is the TCP listen address.
	Addr string
	// ReadChunkSize is the buffer size of one socket read (default: 1024).
	ReadChunkSize int
	// Framed buffers partial frames across reads and keeps pipelined
	// remainders. When false, each read must hold exactly one command.
	Framed bool
	// RateLimit is the per-connection command rate in commands/s. A client
	// over the limit is delayed, never rejected. 0 disables it.
	RateLimit float64
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Addr:          config.DefaultRedisAddr,
		ReadChunkSize: config.DefaultReadChunkSize,
	}
}

// ConfigFrom builds a Config from the server configuration section.
func ConfigFrom(rc config.RedisConfig) *Config {
	return &Config{
		Addr:          rc.Addr,
		ReadChunkSize: rc.ReadChunkSize,
		Framed:        rc.Framed,
		RateLimit:     rc.RateLimit,
	}
}

// Store is the key-value store the server executes commands against.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(key []byte) ([]byte, bool)
	Set(key, data []byte, opts ...memory.SetOption)
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics records server metrics into reg.
func WithMetrics(reg *metric.Registry) Option {
	return func(s *Server) {
		s.metrics = reg
	}
}

// Server represents the Redis protocol server.
type Server struct {
	cfg     *Config
	store   Store
	params  config.RDBParams
	logger  *slog.Logger
	metrics *metric.Registry

	lnMu  sync.Mutex
	ln    net.Listener
	conns *cmap.Map[string, *Conn]

	running atomic.Bool
	wg      sync.WaitGroup
}

// Conn represents a single Redis client connection.
type Conn struct {
	id      string
	netConn net.Conn

	buf     []byte // one socket read
	pending []byte // framed mode: bytes not yet decoded

	peerClosed bool
	closed     atomic.Bool
}

func newConn(c net.Conn, chunkSize int) *Conn {
	return &Conn{
		id:      ulid.Make().String(),
		netConn: c,
		buf:     make([]byte, chunkSize),
	}
}

// ID returns the connection's ULID.
func (c *Conn) ID() string {
	return c.id
}

func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}
	return c.netConn.Close()
}

func (c *Conn) RemoteAddr() net.Addr {
	return c.netConn.RemoteAddr()
}

// New creates a new Redis protocol server. params answers CONFIG GET.
func New(cfg *Config, store Store, params config.RDBParams, logger *slog.Logger, opts ...Option) *Server {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.ReadChunkSize <= 0 {
		cfg.ReadChunkSize = config.DefaultReadChunkSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:    cfg,
		store:  store,
		params: params,
		logger: logger,
		conns:  cmap.New[string, *Conn](),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metric.NewRegistry()
	}
	return s
}

// Start binds the listen address and serves connections in the background.
func (s *Server) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return domain.ErrState.WithDetails("redis server already started")
	}

	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		s.running.Store(false)
		return domain.ErrIO.Wrap(err)
	}
	s.lnMu.Lock()
	s.ln = ln
	s.lnMu.Unlock()

	s.logger.Info("redis server listening",
		"address", ln.Addr().String(),
		"framed", s.cfg.Framed,
		"read_chunk_size", s.cfg.ReadChunkSize)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ctx, ln)
	}()
	return nil
}

// Addr returns the bound listen address, or nil before Start.
func (s *Server) Addr() net.Addr {
	s.lnMu.Lock()
	defer s.lnMu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Running reports whether the server is accepting connections.
func (s *Server) Running() bool {
	return s.running.Load()
}

// ActiveConns returns the number of open client connections.
func (s *Server) ActiveConns() int {
	return s.conns.Count()
}

// Shutdown closes the listener and all client connections, then waits for
// their goroutines to finish or ctx to expire.
func (s *Server) Shutdown(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	var firstErr error

	// Close the listener to break the accept loop.
	s.lnMu.Lock()
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			firstErr = err
		}
	}
	s.lnMu.Unlock()

	s.conns.Range(func(_ string, c *Conn) bool {
		_ = c.Close()
		return true
	})

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}

	s.logger.Info("redis server stopped")
	return firstErr
}

func (s *Server) acceptLoop(ctx context.Context, ln net.Listener) {
	for {
		c, err := ln.Accept()
		if err != nil {
			if !s.running.Load() || errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
			// Accept failures never stop the server.
			s.logger.Warn("accept failed", "error", err)
			s.metrics.RecordError(domain.Kind(domain.ErrIO))
			time.Sleep(10 * time.Millisecond)
			continue
		}

		conn := newConn(c, s.cfg.ReadChunkSize)
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(ctx, conn)
		}()
	}
}

func (s *Server) serveConn(ctx context.Context, c *Conn) {
	s.conns.Set(c.id, c)
	s.metrics.ConnOpened()
	defer func() {
		_ = c.Close()
		s.conns.Delete(c.id)
		s.metrics.ConnClosed()
	}()

	log := s.logger.With("conn_id", c.id, "remote", c.RemoteAddr().String())
	log.Debug("connection accepted")

	// Shutdown may have run between Accept and registration.
	if !s.running.Load() {
		return
	}

	var limiter *rate.Limiter
	if s.cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(s.cfg.RateLimit), max(1, int(s.cfg.RateLimit)))
	}

	for {
		v, err := s.readValue(c)
		if err != nil {
			s.terminate(c, log, err)
			return
		}

		cmd, err := Interpret(v)
		if err != nil {
			s.terminate(c, log, err)
			return
		}

		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				log.Debug("rate limiter wait aborted", "error", err)
				return
			}
		}

		reply, err := s.execute(cmd)
		if err != nil {
			s.terminate(c, log, err)
			return
		}
		s.metrics.RecordCommand(cmd.Name())

		if _, err := c.netConn.Write(reply); err != nil {
			s.terminate(c, log, domain.ErrIO.Wrap(err))
			return
		}
	}
}

func (s *Server) readValue(c *Conn) (Value, error) {
	if s.cfg.Framed {
		return c.readFramed()
	}
	return c.readChunk()
}

// readChunk performs one socket read and decodes one value from it. Bytes
// after the first value are discarded. A zero-byte read decodes as an empty
// buffer and fails like any other malformed input.
func (c *Conn) readChunk() (Value, error) {
	n, err := c.netConn.Read(c.buf)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, domain.ErrIO.Wrap(err)
	}
	if n == 0 {
		c.peerClosed = true
	}
	v, _, err := Decode(c.buf[:n])
	return v, err
}

// readFramed returns the next complete value, reading more bytes while the
// buffered input ends mid-frame.
func (c *Conn) readFramed() (Value, error) {
	for {
		if len(c.pending) > 0 {
			v, rest, err := Decode(c.pending)
			if err == nil {
				c.pending = c.pending[:copy(c.pending, rest)]
				return v, nil
			}
			if !errors.Is(err, ErrIncomplete) {
				return nil, err
			}
			if len(c.pending) > maxPending {
				return nil, domain.ErrParse.Detailf("frame exceeds %d bytes", maxPending)
			}
		}

		n, err := c.netConn.Read(c.buf)
		c.pending = append(c.pending, c.buf[:n]...)
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			if n > 0 {
				continue
			}
			c.peerClosed = len(c.pending) == 0
			_, _, derr := Decode(c.pending)
			return nil, derr
		default:
			return nil, domain.ErrIO.Wrap(err)
		}
	}
}

// execute applies cmd to the store and returns the encoded reply. The store
// lock is held only inside the store call, never across socket I/O.
func (s *Server) execute(cmd Command) ([]byte, error) {
	switch c := cmd.(type) {
	case Ping:
		return []byte(ReplyPong), nil
	case Echo:
		return EncodeBulkString(c.Message), nil
	case Set:
		var opts []memory.SetOption
		if ms, ok := c.TTL(); ok {
			opts = append(opts, memory.WithTTL(millis(ms)))
		}
		s.store.Set(c.Key, c.Value, opts...)
		return []byte(ReplyOK), nil
	case Get:
		data, ok := s.store.Get(c.Key)
		if !ok {
			return []byte(ReplyNull), nil
		}
		return EncodeBulkString(data), nil
	case ConfigGet:
		val, err := s.params.Lookup(string(c.Param))
		if err != nil {
			return nil, err
		}
		return EncodeArray(c.Param, []byte(val)), nil
	default:
		return nil, domain.ErrValidation.Detailf("unsupported command %T", cmd)
	}
}

// terminate reports err, sends a best-effort error reply for protocol and
// command errors, and leaves the caller to close the connection.
func (s *Server) terminate(c *Conn, log *slog.Logger, err error) {
	if c.peerClosed {
		log.Debug("connection closed by peer")
		return
	}
	if c.closed.Load() {
		log.Debug("connection closed by server")
		return
	}

	kind := domain.Kind(err)
	s.metrics.RecordError(kind)

	switch kind {
	case "parse", "validation":
		log.Warn("closing connection", "kind", kind, "error", err)
		if _, werr := c.netConn.Write(EncodeError(errorReply(err))); werr != nil {
			log.Debug("error reply not delivered", "error", werr)
		}
	default:
		log.Debug("connection ended", "kind", kind, "error", err)
	}
}

// errorReply is the client-facing text for err.
func errorReply(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		if de.Details != "" {
			return de.Details
		}
		return de.Message
	}
	return err.Error()
}

func millis(ms uint64) time.Duration {
	if ms > math.MaxInt64/uint64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(ms) * time.Millisecond
}
