package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventExpansionStart EventType = "expansion_start"
	EventExpansionEnd   EventType = "expansion_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	RunID     string    `json:"run_id"`
}

// ExpansionEvent describes the start or the end of one expansion run.
// Counters are only meaningful on EventExpansionEnd.
type ExpansionEvent struct {
	EventBase
	Grammar    string        `json:"grammar"`
	Depth      int           `json:"depth"`
	Stochastic bool          `json:"stochastic"`
	Seed       *uint64       `json:"seed,omitempty"`
	Symbols    int64         `json:"symbols"`
	Lookups    int64         `json:"lookups"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnExpansionStart func(context.Context, *ExpansionEvent)
	OnExpansionEnd   func(context.Context, *ExpansionEvent)
}
