package store_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/innobi/opsboard/internal/approval"
	"github.com/innobi/opsboard/internal/approval/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "approvals.db"))
	require.NoError(t, err)

	t.Cleanup(func() { s.Close() })

	return s
}

func TestStore_AppendAndGet(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	key := approval.Key(approval.EntityInvoice, 1)
	ts := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.Append(ctx, key, approval.Entry{Action: approval.ActionApproved, Timestamp: ts}))
	require.NoError(t, s.Append(ctx, key, approval.Entry{Action: approval.ActionRejected, Timestamp: ts.Add(time.Hour)}))

	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, approval.ActionApproved, got[0].Action)
	assert.Equal(t, approval.ActionRejected, got[1].Action)
	assert.True(t, got[1].Timestamp.Equal(ts.Add(time.Hour)))
}

func TestStore_KeysAreIsolated(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	ts := time.Now().UTC()

	require.NoError(t, s.Append(ctx, "invoice:1", approval.Entry{Action: approval.ActionApproved, Timestamp: ts}))
	require.NoError(t, s.Append(ctx, "purchase_order:1", approval.Entry{Action: approval.ActionRejected, Timestamp: ts}))

	inv, err := s.Get(ctx, "invoice:1")
	require.NoError(t, err)
	require.Len(t, inv, 1)
	assert.Equal(t, approval.ActionApproved, inv[0].Action)

	po, err := s.Get(ctx, "purchase_order:1")
	require.NoError(t, err)
	require.Len(t, po, 1)
	assert.Equal(t, approval.ActionRejected, po[0].Action)
}

func TestStore_SnapshotAndRestore(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	ts := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, "invoice:1", approval.Entry{Action: approval.ActionApproved, Timestamp: ts}))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 1)

	// Restore replaces the whole mapping.
	require.NoError(t, s.Restore(ctx, map[string][]approval.Entry{
		"purchase_order:2": {{Action: approval.ActionRejected, Timestamp: ts}},
	}))

	gone, err := s.Get(ctx, "invoice:1")
	require.NoError(t, err)
	assert.Empty(t, gone)

	kept, err := s.Get(ctx, "purchase_order:2")
	require.NoError(t, err)
	require.Len(t, kept, 1)
}

func TestStore_RestoreNilClears(t *testing.T) {
	s := openStore(t)
	ctx := context.Background()

	require.NoError(t, s.Append(ctx, "invoice:1", approval.Entry{Action: approval.ActionApproved, Timestamp: time.Now()}))
	require.NoError(t, s.Restore(ctx, nil))

	snap, err := s.Snapshot(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)
}
