package calendar

import (
	"context"
	"errors"
)

// ErrNotConfigured is returned by every operation when the calendar/mail
// service credentials are absent. Handlers map it to a 503 rather than
// attempting any outbound call.
var ErrNotConfigured = errors.New("calendar service is not configured")

// Service defines operations against the consultation mailbox: its calendar
// and its outbox. All operations authenticate per call with a fresh
// client-credentials token exchange.
type Service interface {
	// ListEvents returns every event on the mailbox calendar.
	ListEvents(ctx context.Context) ([]Event, error)

	// EventsBetween returns events whose start falls in [start, end).
	// A non-empty result means the slot is considered booked.
	EventsBetween(ctx context.Context, start, end string) ([]Event, error)

	// CreateEvent books a consultation on the mailbox calendar.
	CreateEvent(ctx context.Context, ev Event) (*Event, error)

	// CreateDraft creates a draft message in the mailbox and returns its id.
	CreateDraft(ctx context.Context, msg Message) (string, error)

	// SendDraft dispatches a previously created draft.
	SendDraft(ctx context.Context, draftID string) error
}
