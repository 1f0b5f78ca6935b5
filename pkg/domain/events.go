package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventMatch     EventType = "match"
	EventTaskEnter EventType = "task_enter"
	EventUnmatched EventType = "unmatched"
	EventDispatch  EventType = "dispatch"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Schema    string    `json:"schema,omitempty"`
}

// MatchEvent describes a token claimed by a node.
type MatchEvent struct {
	EventBase
	Index int    `json:"index"`
	Token string `json:"token"`
	Node  string `json:"node"`
	Kind  Kind   `json:"kind"`
}

// UnmatchedEvent describes a token no reachable node claimed.
type UnmatchedEvent struct {
	EventBase
	Index    int    `json:"index"`
	Argument string `json:"argument"`
}

// DispatchEvent summarises a finished dispatch, after the host ran the implementation
// or the exception handlers.
type DispatchEvent struct {
	EventBase
	Tasks    []string      `json:"tasks"`
	Errors   int           `json:"errors"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for dispatch observability.
// Any field may be nil.
type LifecycleHooks struct {
	OnMatch     func(context.Context, *MatchEvent)
	OnTaskEnter func(context.Context, *MatchEvent)
	OnUnmatched func(context.Context, *UnmatchedEvent)
	OnDispatch  func(context.Context, *DispatchEvent)
}

// Record is the persisted summary of one dispatch.
type Record struct {
	ID       string          `json:"id"`
	Schema   string          `json:"schema,omitempty"`
	Argv     []string        `json:"argv"`
	Tasks    []string        `json:"tasks"`
	Args     Arguments       `json:"args"`
	Errors   []ArgumentError `json:"errors,omitempty"`
	ExitCode int             `json:"exit_code"`
	At       time.Time       `json:"at"`
}
