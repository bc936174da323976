package kernel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/avast/retry-go"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/five82/tablegrid/internal/comm"
	"github.com/five82/tablegrid/internal/model"
)

// Bridge is the kernel side of a grid. It is implemented by *Client.
type Bridge interface {
	FetchModel(ctx context.Context) (model.Record, error)
	Stream(ctx context.Context, handle Handler) error
	Send(msg comm.Message) error
	Close() error
}

// Ensure Client implements Bridge at compile time.
var _ Bridge = (*Client)(nil)

// Update methods.
const (
	MethodUpdate = "update"
	MethodPatch  = "patch"
)

// Update is one model change pushed by the kernel.
type Update struct {
	Method string
	Record model.Record
}

// Handler receives updates on the Stream goroutine.
type Handler func(Update)

const (
	defaultBaseURL    = "http://127.0.0.1:8888"
	defaultUserAgent  = "tablegrid/0.1"
	requestTimeout    = 5 * time.Second
	defaultAttempts   = 5
	defaultDelay      = 500 * time.Millisecond
	defaultMaxDelay   = 30 * time.Second
	sendQueueCapacity = 64
)

// Client talks to a kernel bridge.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	dialer    *websocket.Dialer
	userAgent string
	logger    *log.Logger

	attempts uint
	delay    time.Duration
	maxDelay time.Duration

	send      chan []byte
	stop      chan struct{}
	closeOnce sync.Once

	mu   sync.Mutex
	conn *websocket.Conn
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRetry sets the attempt count and initial delay for fetches and dials.
func WithRetry(attempts uint, delay time.Duration) Option {
	return func(c *Client) {
		c.attempts = max(attempts, 1)
		c.delay = delay
	}
}

// WithMaxDelay caps the backoff between attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.maxDelay = d
		}
	}
}

// NewClient builds a Client for the bridge at baseURL. A bare host:port is
// treated as http.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL:   base,
		http:      &http.Client{Timeout: requestTimeout},
		dialer:    &websocket.Dialer{HandshakeTimeout: requestTimeout},
		userAgent: defaultUserAgent,
		logger:    log.Default(),
		attempts:  defaultAttempts,
		delay:     defaultDelay,
		maxDelay:  defaultMaxDelay,
		send:      make(chan []byte, sendQueueCapacity),
		stop:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *Client) retryOptions(ctx context.Context, what string) []retry.Option {
	return []retry.Option{
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.MaxDelay(c.maxDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, ErrClosed) }),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("kernel retry", "op", what, "attempt", n+1, "error", err)
		}),
	}
}

func (c *Client) isClosed() bool {
	select {
	case <-c.stop:
		return true
	default:
		return false
	}
}

// FetchModel retrieves the current model record.
func (c *Client) FetchModel(ctx context.Context) (model.Record, error) {
	if c == nil {
		return model.Record{}, fmt.Errorf("client is nil")
	}
	var rec model.Record
	err := retry.Do(func() error {
		if c.isClosed() {
			return ErrClosed
		}
		rec = model.Record{}
		return c.getJSON(ctx, "/api/model", &rec)
	}, c.retryOptions(ctx, "fetch model")...)
	if err != nil {
		return model.Record{}, fmt.Errorf("fetch model: %w", err)
	}
	return rec, nil
}

func (c *Client) getJSON(ctx context.Context, path string, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Stream connects to the comm websocket and calls handle for every model
// update. It reconnects after a dropped connection and returns when ctx
// ends, the client is closed or every dial attempt fails.
func (c *Client) Stream(ctx context.Context, handle Handler) error {
	if c.isClosed() {
		return ErrClosed
	}
	for {
		conn, err := c.dial(ctx)
		if err != nil {
			if c.isClosed() {
				return ErrClosed
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.logger.Warn("kernel unreachable", "url", c.commURL(), "error", err)
			return fmt.Errorf("dial kernel: %w", err)
		}
		c.logger.Info("kernel connected", "url", c.commURL())

		err = c.serve(ctx, conn, handle)
		switch {
		case c.isClosed():
			return nil
		case ctx.Err() != nil:
			return ctx.Err()
		}
		c.logger.Warn("kernel disconnected, reconnecting", "error", err)
	}
}

func (c *Client) dial(ctx context.Context) (*websocket.Conn, error) {
	header := http.Header{}
	header.Set("User-Agent", c.userAgent)
	var conn *websocket.Conn
	err := retry.Do(func() error {
		if c.isClosed() {
			return ErrClosed
		}
		var err error
		var resp *http.Response
		conn, resp, err = c.dialer.DialContext(ctx, c.commURL(), header)
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return err
	}, c.retryOptions(ctx, "dial")...)
	if err != nil {
		return nil, err
	}
	return conn, nil
}

// serve runs the read and write pumps of one connection until it drops.
func (c *Client) serve(ctx context.Context, conn *websocket.Conn, handle Handler) error {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()

	done := make(chan struct{})
	defer func() {
		close(done)
		c.mu.Lock()
		c.conn = nil
		c.mu.Unlock()
		_ = conn.Close()
	}()

	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-c.stop:
		case <-done:
		}
	}()
	go c.writePump(conn, done)

	return c.readPump(conn, handle)
}

type inbound struct {
	Method string          `json:"method"`
	State  json.RawMessage `json:"state"`
}

func (c *Client) readPump(conn *websocket.Conn, handle Handler) error {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		var msg inbound
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("kernel frame ignored", "error", err)
			continue
		}
		if msg.Method != MethodUpdate && msg.Method != MethodPatch {
			c.logger.Debug("kernel frame ignored", "method", msg.Method)
			continue
		}
		rec, err := model.DecodeJSON(msg.State)
		if err != nil {
			c.logger.Warn("kernel frame ignored", "method", msg.Method, "error", err)
			continue
		}
		if handle != nil {
			handle(Update{Method: msg.Method, Record: rec})
		}
	}
}

func (c *Client) writePump(conn *websocket.Conn, done <-chan struct{}) {
	for {
		select {
		case data := <-c.send:
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				c.logger.Warn("kernel send failed", "error", err)
				_ = conn.Close()
				return
			}
		case <-c.stop:
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			_ = conn.Close()
			return
		case <-done:
			return
		}
	}
}

type envelope struct {
	MsgID   string  `json:"msg_id"`
	Content content `json:"content"`
}

type content struct {
	Data comm.Message `json:"data"`
}

// Send queues msg for the kernel. Messages sent while disconnected are
// delivered after the next connect.
func (c *Client) Send(msg comm.Message) error {
	if c.isClosed() {
		return ErrClosed
	}
	data, err := json.Marshal(envelope{MsgID: uuid.NewString(), Content: content{Data: msg}})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}
	select {
	case c.send <- data:
		c.logger.Debug("comm message queued", "event", msg.Event())
		return nil
	default:
		return fmt.Errorf("send %s: queue full", msg.Event())
	}
}

// Close stops Stream and rejects later sends. It is safe to call more than
// once.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
		c.mu.Lock()
		conn := c.conn
		c.mu.Unlock()
		if conn != nil {
			_ = conn.Close()
		}
	})
	return nil
}

func (c *Client) commURL() string {
	u := *c.baseURL
	u.Scheme = "ws"
	if c.baseURL.Scheme == "https" {
		u.Scheme = "wss"
	}
	u.Path = "/api/comm"
	return u.String()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse kernel url %q: %w", raw, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
