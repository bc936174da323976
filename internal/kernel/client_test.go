package kernel

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/five82/tablegrid/internal/comm"
)

func TestParseBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", defaultBaseURL},
		{"localhost:9000", "http://localhost:9000"},
		{"https://example.com/lab?token=x#frag", "https://example.com"},
	}
	for _, tt := range tests {
		u, err := parseBaseURL(tt.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q) error: %v", tt.in, err)
		}
		if got := u.String(); got != tt.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCommURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"http://127.0.0.1:8888", "ws://127.0.0.1:8888/api/comm"},
		{"https://example.com", "wss://example.com/api/comm"},
	}
	for _, tt := range tests {
		c, err := NewClient(tt.base)
		if err != nil {
			t.Fatalf("NewClient(%q) error: %v", tt.base, err)
		}
		if got := c.commURL(); got != tt.want {
			t.Fatalf("commURL() = %q, want %q", got, tt.want)
		}
	}
}

func TestFetchModelRetries(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/model" {
			http.NotFound(w, r)
			return
		}
		if hits.Add(1) == 1 {
			http.Error(w, "warming up", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"columnNames":["a"],"types":["double"],"values":[[1.5]]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRetry(3, time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	rec, err := c.FetchModel(ctx)
	if err != nil {
		t.Fatalf("FetchModel returned error: %v", err)
	}
	if got := hits.Load(); got != 2 {
		t.Fatalf("hits = %d, want 2", got)
	}
	if len(rec.Values) != 1 || rec.ColumnNames[0] != "a" {
		t.Fatalf("record = %+v, want one row of column a", rec)
	}
}

func TestFetchModelGivesUp(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "broken", http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	c, _ := NewClient(server.URL, WithRetry(2, time.Millisecond))
	if _, err := c.FetchModel(context.Background()); err == nil {
		t.Fatalf("FetchModel returned nil error, want failure")
	}
}

func TestStreamDeliversUpdatesAndSends(t *testing.T) {
	upgrader := websocket.Upgrader{}
	received := make(chan []byte, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/comm" {
			http.NotFound(w, r)
			return
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		frames := []string{
			`{"method":"noise"}`,
			`{"method":"update","state":{"columnNames":["a"],"types":["string"],"values":[["x"]]}}`,
			`{"method":"patch","state":{"values":[["y"]]}}`,
		}
		for _, f := range frames {
			if err := conn.WriteMessage(websocket.TextMessage, []byte(f)); err != nil {
				return
			}
		}
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		received <- data
		_, _, _ = conn.ReadMessage()
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL, WithRetry(2, time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	updates := make(chan Update, 4)
	streamErr := make(chan error, 1)
	go func() {
		streamErr <- c.Stream(context.Background(), func(u Update) { updates <- u })
	}()

	var got []Update
	for len(got) < 2 {
		select {
		case u := <-updates:
			got = append(got, u)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for updates, got %d", len(got))
		}
	}
	if got[0].Method != MethodUpdate || got[0].Record.Values[0][0] != "x" {
		t.Fatalf("first update = %+v, want update with x", got[0])
	}
	if got[1].Method != MethodPatch || got[1].Record.Values[0][0] != "y" {
		t.Fatalf("second update = %+v, want patch with y", got[1])
	}

	if err := c.Send(comm.DoubleClick{Row: 1, Col: 2}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	var frame []byte
	select {
	case frame = <-received:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for sent frame")
	}
	var env struct {
		MsgID   string `json:"msg_id"`
		Content struct {
			Data map[string]any `json:"data"`
		} `json:"content"`
	}
	if err := json.Unmarshal(frame, &env); err != nil {
		t.Fatalf("decode frame: %v", err)
	}
	if _, err := uuid.Parse(env.MsgID); err != nil {
		t.Fatalf("msg_id = %q, want uuid", env.MsgID)
	}
	if env.Content.Data["event"] != "doubleclick" || env.Content.Data["row"] != float64(1) {
		t.Fatalf("data = %v, want doubleclick row 1", env.Content.Data)
	}

	_ = c.Close()
	select {
	case err := <-streamErr:
		if err != nil {
			t.Fatalf("Stream returned %v after Close, want nil", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Stream did not return after Close")
	}
	if err := c.Send(comm.DoubleClick{}); !errors.Is(err, ErrClosed) {
		t.Fatalf("Send after Close = %v, want ErrClosed", err)
	}
	if err := c.Stream(context.Background(), nil); !errors.Is(err, ErrClosed) {
		t.Fatalf("Stream after Close = %v, want ErrClosed", err)
	}
	_ = c.Close()
}
