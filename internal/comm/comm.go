// Package comm defines the messages the grid sends to its host and the
// signal that carries them.
package comm

import (
	"encoding/json"
	"sync"
)

// Event names.
const (
	EventDoubleClick      = "doubleclick"
	EventContextMenuClick = "CONTEXT_MENU_CLICK"
	EventActionDetails    = "actiondetails"
)

// Action types carried by ActionDetails.
const (
	ActionDoubleClick      = "DOUBLE_CLICK"
	ActionContextMenuClick = "CONTEXT_MENU_CLICK"
)

// Message is one outbound host message. Messages marshal to the host's
// JSON shape.
type Message interface {
	Event() string
	json.Marshaler
}

// DoubleClick reports a double click on a body cell.
type DoubleClick struct {
	Row int
	Col int
}

func (DoubleClick) Event() string { return EventDoubleClick }

func (m DoubleClick) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Event string `json:"event"`
		Row   int    `json:"row"`
		Col   int    `json:"col"`
	}{EventDoubleClick, m.Row, m.Col})
}

// ContextMenuClick reports a click on a kernel-provided menu item.
type ContextMenuClick struct {
	Row     int
	Column  int
	ItemKey string
}

func (ContextMenuClick) Event() string { return EventContextMenuClick }

func (m ContextMenuClick) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Event   string `json:"event"`
		Row     int    `json:"row"`
		Column  int    `json:"column"`
		ItemKey string `json:"itemKey"`
	}{EventContextMenuClick, m.Row, m.Column, m.ItemKey})
}

// ActionDetails asks the host to run a tagged action.
type ActionDetails struct {
	ActionType      string
	Row             int
	Col             int
	ContextMenuItem string
}

func (ActionDetails) Event() string { return EventActionDetails }

type actionParams struct {
	ActionType      string  `json:"actionType"`
	Row             int     `json:"row"`
	Col             int     `json:"col"`
	ContextMenuItem *string `json:"contextMenuItem,omitempty"`
}

func (m ActionDetails) MarshalJSON() ([]byte, error) {
	p := actionParams{ActionType: m.ActionType, Row: m.Row, Col: m.Col}
	if m.ActionType == ActionContextMenuClick {
		item := m.ContextMenuItem
		p.ContextMenuItem = &item
	}
	return json.Marshal(struct {
		Event  string       `json:"event"`
		Params actionParams `json:"params"`
	}{EventActionDetails, p})
}

// Signal fans messages out to connected handlers. Handlers run
// synchronously, in connection order, on the emitting goroutine.
type Signal struct {
	mu       sync.Mutex
	nextID   int
	handlers map[int]func(Message)
	order    []int
}

// Connect registers fn and returns a function that removes it.
func (s *Signal) Connect(fn func(Message)) (disconnect func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handlers == nil {
		s.handlers = make(map[int]func(Message))
	}
	s.nextID++
	id := s.nextID
	s.handlers[id] = fn
	s.order = append(s.order, id)
	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.handlers, id)
			for i, v := range s.order {
				if v == id {
					s.order = append(s.order[:i], s.order[i+1:]...)
					break
				}
			}
		})
	}
}

// Emit delivers msg to every connected handler.
func (s *Signal) Emit(msg Message) {
	s.mu.Lock()
	fns := make([]func(Message), 0, len(s.order))
	for _, id := range s.order {
		fns = append(fns, s.handlers[id])
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(msg)
	}
}

// DisconnectAll removes every handler.
func (s *Signal) DisconnectAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = nil
	s.order = nil
}
