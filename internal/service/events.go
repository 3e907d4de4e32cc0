// Package service implements the business logic of the discussion platform.
package service

import (
	"context"

	"bookclub/internal/models"
)

// EventSink accepts the outbound notification events a mutating operation
// produced. Implementations deliver best-effort and never fail the caller;
// Emit therefore returns nothing.
type EventSink interface {
	Emit(ctx context.Context, events []models.Notification)
}

// discardSink is used when no sink is wired (tests, CLI tools).
type discardSink struct{}

func (discardSink) Emit(context.Context, []models.Notification) {}

// sinkOrDiscard lets services treat the sink as always present.
func sinkOrDiscard(sink EventSink) EventSink {
	if sink == nil {
		return discardSink{}
	}
	return sink
}
