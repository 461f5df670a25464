package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

// failingClientRepo wraps the memory repository and fails selected bulk calls.
type failingClientRepo struct {
	*repository.MemoryClientRepository
	failSegments bool
}

func (r *failingClientRepo) BulkCreateSegments(ctx context.Context, clientID uuid.UUID, segments []models.Segment) error {
	if r.failSegments {
		return errors.New("segments endpoint down")
	}
	return r.MemoryClientRepository.BulkCreateSegments(ctx, clientID, segments)
}

func newTestWizard(t *testing.T) (*Wizard, *repository.MemoryClientRepository, *MemoryDraftStore) {
	t.Helper()
	store := NewMemoryDraftStore()
	repo := repository.NewMemoryClientRepository()
	return New("staff-1", store, repo, zap.NewNop()), repo, store
}

func TestAdvanceRetreatJump(t *testing.T) {
	ctx := context.Background()
	w, _, _ := newTestWizard(t)

	require.NoError(t, w.Advance(ctx, &StepData{Personal: &Personal{FullName: "Jane Doe"}}))
	assert.Equal(t, StepBusiness, w.Step())

	require.NoError(t, w.Retreat(ctx, nil))
	assert.Equal(t, StepPersonal, w.Step())

	// retreat at step 0 is a no-op
	require.NoError(t, w.Retreat(ctx, nil))
	assert.Equal(t, StepPersonal, w.Step())

	// jump never validates intermediate steps
	require.NoError(t, w.JumpTo(ctx, StepSegments))
	assert.Equal(t, StepSegments, w.Step())
	assert.True(t, w.Terminal())

	assert.Error(t, w.JumpTo(ctx, StepCount))
	assert.Error(t, w.JumpTo(ctx, -1))

	assert.Equal(t, "Jane Doe", w.Draft().Personal.FullName)
}

func TestAdvanceAtTerminalSweeps(t *testing.T) {
	ctx := context.Background()
	w, _, _ := newTestWizard(t)

	require.NoError(t, w.JumpTo(ctx, StepSegments))
	require.NoError(t, w.Advance(ctx, &StepData{
		BranchDraft: &BranchForm{Name: "HQ", Address: "123 St"},
	}))

	// terminal advance does not move past the last step
	assert.Equal(t, StepSegments, w.Step())
	require.Len(t, w.Draft().Branches, 1)
	assert.Nil(t, w.Draft().BranchDraft)
}

func TestAddRequiresName(t *testing.T) {
	ctx := context.Background()
	w, _, _ := newTestWizard(t)

	require.NoError(t, w.AddBranch(ctx, BranchForm{Name: "HQ"}))

	// empty or blank names are rejected and the list is untouched
	assert.ErrorIs(t, w.AddBranch(ctx, BranchForm{Address: "no name"}), ErrNameRequired)
	assert.ErrorIs(t, w.AddBranch(ctx, BranchForm{Name: "   "}), ErrNameRequired)
	assert.Len(t, w.Draft().Branches, 1)

	assert.ErrorIs(t, w.AddCompetitor(ctx, CompetitorForm{}), ErrNameRequired)
	assert.ErrorIs(t, w.AddSegment(ctx, SegmentForm{}), ErrNameRequired)
	assert.Empty(t, w.Draft().Competitors)
	assert.Empty(t, w.Draft().Segments)
}

func TestAddClearsSubForm(t *testing.T) {
	ctx := context.Background()
	w, _, _ := newTestWizard(t)

	require.NoError(t, w.Advance(ctx, &StepData{
		SegmentDraft: &SegmentForm{Name: "Gen Z"},
	}))
	require.NoError(t, w.AddSegment(ctx, SegmentForm{Name: "Gen Z"}))

	// once added, the sub-form is cleared so the final sweep cannot
	// append it a second time
	assert.Nil(t, w.Draft().SegmentDraft)
	require.NoError(t, w.JumpTo(ctx, StepSegments))
	require.NoError(t, w.Advance(ctx, nil))
	assert.Len(t, w.Draft().Segments, 1)
}

func TestResumeRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	repo := repository.NewMemoryClientRepository()

	w := New("staff-1", store, repo, zap.NewNop())
	require.NoError(t, w.Advance(ctx, &StepData{Personal: &Personal{FullName: "Jane Doe"}}))
	require.NoError(t, w.Advance(ctx, &StepData{Business: &BusinessProfile{BusinessName: "Acme"}}))
	require.NoError(t, w.AddBranch(ctx, BranchForm{Name: "HQ"}))

	// a reload resumes the identical aggregate and step
	w2, err := Resume(ctx, "staff-1", store, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, w.Step(), w2.Step())
	assert.Equal(t, w.Draft(), w2.Draft())

	// an unknown key starts fresh
	w3, err := Resume(ctx, "staff-2", store, repo, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, 0, w3.Step())
	assert.Equal(t, Draft{}, w3.Draft())
}

func TestSubmitWithoutSubEntities(t *testing.T) {
	ctx := context.Background()
	w, repo, store := newTestWizard(t)

	require.NoError(t, w.Advance(ctx, &StepData{Personal: &Personal{FullName: "Jane Doe"}}))
	for !w.Terminal() {
		require.NoError(t, w.Advance(ctx, nil))
	}

	res, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.False(t, res.Segments.Attempted)
	assert.False(t, res.Competitors.Attempted)
	assert.False(t, res.Branches.Attempted)

	created, err := repo.Get(ctx, res.ClientID)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", created.FullName)
	assert.Empty(t, created.Branches)
	assert.Empty(t, created.Competitors)
	assert.Empty(t, created.Segments)

	// draft is cleared on success
	_, err = store.Load(ctx, "staff-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}

func TestSubmitBulkCreatesBranches(t *testing.T) {
	ctx := context.Background()
	w, repo, _ := newTestWizard(t)

	require.NoError(t, w.JumpTo(ctx, StepBranches))
	require.NoError(t, w.AddBranch(ctx, BranchForm{Name: "Downtown", Address: "1 Main St"}))

	res, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.True(t, res.Branches.Attempted)
	assert.Equal(t, 1, res.Branches.Count)
	assert.Empty(t, res.Branches.Error)

	created, err := repo.Get(ctx, res.ClientID)
	require.NoError(t, err)
	require.Len(t, created.Branches, 1)
	assert.Equal(t, "Downtown", created.Branches[0].Name)
	assert.Equal(t, "1 Main St", created.Branches[0].Address)
	assert.Equal(t, "", created.Branches[0].Phone)
}

func TestSubmitSweepsUnaddedSubForm(t *testing.T) {
	ctx := context.Background()
	w, repo, _ := newTestWizard(t)

	// typed but never pressed "Add"
	require.NoError(t, w.Advance(ctx, &StepData{
		BranchDraft: &BranchForm{Name: "HQ", Address: "123 St"},
	}))

	res, err := w.Submit(ctx)
	require.NoError(t, err)

	created, err := repo.Get(ctx, res.ClientID)
	require.NoError(t, err)
	require.Len(t, created.Branches, 1)
	assert.Equal(t, "HQ", created.Branches[0].Name)
}

func TestSubmitPartialBulkFailure(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryDraftStore()
	repo := &failingClientRepo{
		MemoryClientRepository: repository.NewMemoryClientRepository(),
		failSegments:           true,
	}
	w := New("staff-1", store, repo, zap.NewNop())

	require.NoError(t, w.AddSegment(ctx, SegmentForm{Name: "Gen Z"}))
	require.NoError(t, w.AddBranch(ctx, BranchForm{Name: "HQ"}))
	require.NoError(t, w.AddCompetitor(ctx, CompetitorForm{Name: "Rival Co"}))

	// segments bulk call fails, the submit still succeeds and the other
	// lists are still written
	res, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.Equal(t, "segments endpoint down", res.Segments.Error)
	assert.Empty(t, res.Branches.Error)
	assert.Empty(t, res.Competitors.Error)

	created, err := repo.Get(ctx, res.ClientID)
	require.NoError(t, err)
	assert.Empty(t, created.Segments)
	assert.Len(t, created.Branches, 1)
	assert.Len(t, created.Competitors, 1)
}

func TestSubmitUpdatesExistingClient(t *testing.T) {
	ctx := context.Background()
	w, repo, _ := newTestWizard(t)

	existing := models.Client{FullName: "Old Name"}
	require.NoError(t, repo.Create(ctx, &existing))

	w.ForClient(existing.ID)
	require.NoError(t, w.Advance(ctx, &StepData{Personal: &Personal{FullName: "New Name"}}))

	res, err := w.Submit(ctx)
	require.NoError(t, err)
	assert.False(t, res.Created)
	assert.Equal(t, existing.ID, res.ClientID)

	updated, err := repo.Get(ctx, existing.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	w, _, store := newTestWizard(t)

	require.NoError(t, w.Advance(ctx, &StepData{Personal: &Personal{FullName: "Jane Doe"}}))
	require.NoError(t, w.Reset(ctx))

	assert.Equal(t, 0, w.Step())
	assert.Equal(t, Draft{}, w.Draft())
	_, err := store.Load(ctx, "staff-1")
	assert.ErrorIs(t, err, ErrDraftNotFound)
}
