package contracts

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

// countingRepo records every repository call so guard tests can assert that
// a local rejection made none.
type countingRepo struct {
	*repository.MemoryContractRepository
	gets, creates, updates int
}

func (r *countingRepo) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	r.gets++
	return r.MemoryContractRepository.Get(ctx, id)
}

func (r *countingRepo) Create(ctx context.Context, ct *models.Contract) error {
	r.creates++
	return r.MemoryContractRepository.Create(ctx, ct)
}

func (r *countingRepo) Update(ctx context.Context, ct *models.Contract) error {
	r.updates++
	return r.MemoryContractRepository.Update(ctx, ct)
}

type fakeBroadcaster struct {
	events []Event
}

func (b *fakeBroadcaster) BroadcastJSON(v interface{}) {
	if ev, ok := v.(Event); ok {
		b.events = append(b.events, ev)
	}
}

func newTestService(t *testing.T) (*Service, *countingRepo, *fakeBroadcaster) {
	t.Helper()
	repo := &countingRepo{MemoryContractRepository: repository.NewMemoryContractRepository()}
	b := &fakeBroadcaster{}
	return NewService(repo, b, zap.NewNop()), repo, b
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedContract(t *testing.T, svc *Service, status models.ContractStatus) *models.Contract {
	t.Helper()
	ct := &models.Contract{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-12-31"),
	}
	require.NoError(t, svc.Create(context.Background(), ct))
	if status != models.ContractDraft {
		ct.Status = status
		require.NoError(t, svc.repo.Update(context.Background(), ct))
	}
	return ct
}

func TestCreateRejectsInvalidPeriod(t *testing.T) {
	svc, repo, _ := newTestService(t)

	ct := &models.Contract{
		StartDate: day("2024-01-01"),
		EndDate:   day("2023-12-31"),
	}
	err := svc.Create(context.Background(), ct)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Zero(t, repo.creates, "guard failure must not reach the repository")
}

func TestCreateDefaults(t *testing.T) {
	svc, _, _ := newTestService(t)

	ct := &models.Contract{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-01"), // same-day period is allowed
	}
	require.NoError(t, svc.Create(context.Background(), ct))
	assert.Equal(t, models.ContractDraft, ct.Status)
	assert.NotEmpty(t, ct.ContractNumber)
}

func TestSign(t *testing.T) {
	svc, _, b := newTestService(t)
	ct := seedContract(t, svc, models.ContractDraft)

	signed, err := svc.Sign(context.Background(), ct.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractActive, signed.Status)
	require.NotNil(t, signed.SignedDate)

	require.Len(t, b.events, 1)
	assert.Equal(t, "contract.signed", b.events[0].Type)

	// signing twice is illegal: active does not offer sign
	_, err = svc.Sign(context.Background(), ct.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestRenewRejectsInvalidPeriodLocally(t *testing.T) {
	svc, repo, b := newTestService(t)
	ct := seedContract(t, svc, models.ContractActive)

	gets := repo.gets
	updates := repo.updates

	_, err := svc.Renew(context.Background(), ct.ID, day("2024-01-01"), day("2023-12-31"))
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	// rejected before any repository call, state untouched
	assert.Equal(t, gets, repo.gets)
	assert.Equal(t, updates, repo.updates)
	assert.Empty(t, b.events)

	// equal start and end is also invalid for renew (strictly after)
	_, err = svc.Renew(context.Background(), ct.ID, day("2024-01-01"), day("2024-01-01"))
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestRenewThenComplete(t *testing.T) {
	svc, _, b := newTestService(t)
	ct := seedContract(t, svc, models.ContractActive)

	renewed, err := svc.Renew(context.Background(), ct.ID, day("2025-01-01"), day("2025-12-31"))
	require.NoError(t, err)
	assert.Equal(t, models.ContractRenewed, renewed.Status)
	assert.Equal(t, day("2025-01-01"), renewed.StartDate)
	assert.Equal(t, day("2025-12-31"), renewed.EndDate)

	// renewed still offers complete
	completed, err := svc.Complete(context.Background(), ct.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractCompleted, completed.Status)

	require.Len(t, b.events, 2)
	assert.Equal(t, "contract.renewed", b.events[0].Type)
	assert.Equal(t, "contract.completed", b.events[1].Type)

	// completed is terminal
	_, err = svc.Cancel(context.Background(), ct.ID, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestCancelKeepsReasonOnNote(t *testing.T) {
	svc, _, _ := newTestService(t)
	ct := seedContract(t, svc, models.ContractDraft)

	cancelled, err := svc.Cancel(context.Background(), ct.ID, "client pulled out")
	require.NoError(t, err)
	assert.Equal(t, models.ContractCancelled, cancelled.Status)
	assert.Contains(t, cancelled.Note, "client pulled out")
}

func TestCompleteRequiresActiveOrRenewed(t *testing.T) {
	svc, _, _ := newTestService(t)
	ct := seedContract(t, svc, models.ContractDraft)

	_, err := svc.Complete(context.Background(), ct.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestTransitionFailureLeavesStatus(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ct := seedContract(t, svc, models.ContractCancelled)

	_, err := svc.Sign(context.Background(), ct.ID)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	stored, err := repo.Get(context.Background(), ct.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ContractCancelled, stored.Status)
}

func TestTransitionUnknownContract(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Sign(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
