// Package approval keeps the approve/reject decision log for invoices and
// purchase orders, and reconciles it with entity status into the single
// display state the dashboard shows per row.
//
// The log is deliberately separate from the main database: it is an
// append-only history per (entity type, id), persisted as one blob in a
// local key-value store. The current approval state is always derived from
// the last entry; entries are never rewritten.
package approval

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

// EntityType identifies which record kind a decision belongs to. The
// literal strings are part of the persisted key scheme and must not change.
type EntityType string

const (
	EntityInvoice       EntityType = "invoice"
	EntityPurchaseOrder EntityType = "purchase_order"
)

// Action is a recorded decision.
type Action string

const (
	ActionApproved Action = "approved"
	ActionRejected Action = "rejected"
)

// State is the decision state derived from the log alone, before status
// reconciliation.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

// Entry is one decision in an entity's history. The JSON shape is the
// persisted wire format.
type Entry struct {
	Action    Action    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// Log is the durable decision store. Get returns the ordered history for a
// key (empty when absent), Append adds one entry. Snapshot and Restore move
// the entire mapping for export/import.
//
//go:generate mockgen -source=approval.go -destination=log_mock.go -package=approval
type Log interface {
	Get(ctx context.Context, key string) ([]Entry, error)
	Append(ctx context.Context, key string, e Entry) error
	Snapshot(ctx context.Context) (map[string][]Entry, error)
	Restore(ctx context.Context, data map[string][]Entry) error
}

// Key builds the persisted log key for an entity instance.
func Key(entity EntityType, id int64) string {
	return fmt.Sprintf("%s:%d", entity, id)
}

type Service struct {
	log Log
}

func NewService(log Log) *Service {
	return &Service{log: log}
}

// Record appends a decision timestamped now. Storage failure degrades to a
// no-op: the decision is lost, a warning is logged, and the returned bool
// reports whether the entry was persisted. Callers that care can surface
// the degradation; none treat it as an error.
func (s *Service) Record(ctx context.Context, entity EntityType, id int64, action Action) bool {
	return s.RecordAt(ctx, entity, id, action, time.Now())
}

// RecordAt is Record with an explicit timestamp.
func (s *Service) RecordAt(ctx context.Context, entity EntityType, id int64, action Action, ts time.Time) bool {
	key := Key(entity, id)

	err := s.log.Append(ctx, key, Entry{Action: action, Timestamp: ts})
	if err != nil {
		slog.Warn("approval not persisted", "key", key, "action", action, "error", err)
		return false
	}

	return true
}

// History returns the full ordered decision sequence for an entity, oldest
// first. Absent keys and storage failures both read as empty history.
func (s *Service) History(ctx context.Context, entity EntityType, id int64) []Entry {
	entries, err := s.log.Get(ctx, Key(entity, id))
	if err != nil {
		slog.Warn("approval history unavailable", "key", Key(entity, id), "error", err)
		return nil
	}

	return entries
}

// State returns pending when the history is empty, otherwise the action of
// the last entry.
func (s *Service) State(ctx context.Context, entity EntityType, id int64) State {
	return stateOf(s.History(ctx, entity, id))
}

func stateOf(history []Entry) State {
	if len(history) == 0 {
		return StatePending
	}

	switch history[len(history)-1].Action {
	case ActionRejected:
		return StateRejected
	default:
		return StateApproved
	}
}

// Export serializes the complete decision mapping in its persisted format,
// so history can be carried between deployments.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	data, err := s.log.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshotting approvals: %w", err)
	}

	if data == nil {
		data = map[string][]Entry{}
	}

	blob, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encoding approvals: %w", err)
	}

	return blob, nil
}

// Import replaces the decision mapping with a previously exported blob.
func (s *Service) Import(ctx context.Context, blob []byte) error {
	var data map[string][]Entry
	if err := json.Unmarshal(blob, &data); err != nil {
		return fmt.Errorf("decoding approvals: %w", err)
	}

	if err := s.log.Restore(ctx, data); err != nil {
		return fmt.Errorf("restoring approvals: %w", err)
	}

	return nil
}
