package onboarding

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisDraftStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewRedisDraftStore(rdb, time.Hour)
}

func TestRedisDraftStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	st := State{
		Step: StepBranches,
		Draft: Draft{
			Personal:    Personal{FullName: "Jane Doe", Email: "jane@acme.test"},
			Business:    BusinessProfile{BusinessName: "Acme", Category: "retail"},
			Branches:    []BranchForm{{Name: "HQ", City: "Jakarta"}},
			BranchDraft: &BranchForm{Name: "Downtown"},
			SWOT:        SWOT{Strengths: []string{"fast"}, Threats: []string{"churn"}},
			Segments:    []SegmentForm{{Name: "Gen Z", AgeRange: "18-24"}},
		},
	}

	require.NoError(t, store.Save(ctx, "staff-1", st))

	got, err := store.Load(ctx, "staff-1")
	require.NoError(t, err)
	assert.Equal(t, st, got, "persist/restore must reproduce an identical aggregate")
}

func TestRedisDraftStoreMissingKey(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	_, err := store.Load(ctx, "nope")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestRedisDraftStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "staff-1", State{Step: 2}))
	require.NoError(t, store.Delete(ctx, "staff-1"))

	_, err := store.Load(ctx, "staff-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
