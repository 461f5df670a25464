package contracts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/digitalagency-id/agency_be/internal/models"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

var (
	ErrInvalidTransition = errors.New("transition not allowed for current status")
	ErrInvalidPeriod     = errors.New("end date must be after start date")
)

// Broadcaster pushes lifecycle events to the activity feed. The realtime hub
// satisfies it; tests pass nil-safe fakes.
type Broadcaster interface {
	BroadcastJSON(v interface{})
}

type Event struct {
	Type           string    `json:"type"` // contract.signed, contract.completed, ...
	ContractID     string    `json:"contract_id"`
	ContractNumber string    `json:"contract_number"`
	Status         string    `json:"status"`
	At             time.Time `json:"at"`
}

// Service owns contract writes. Guards run before any repository call and a
// failed write leaves the stored status untouched; there is no optimistic
// update and no retry.
type Service struct {
	repo   repository.ContractRepository
	events Broadcaster
	log    *zap.Logger
}

func NewService(repo repository.ContractRepository, events Broadcaster, log *zap.Logger) *Service {
	return &Service{repo: repo, events: events, log: log}
}

func (s *Service) broadcast(eventType string, ct *models.Contract) {
	if s.events == nil {
		return
	}
	s.events.BroadcastJSON(Event{
		Type:           eventType,
		ContractID:     ct.ID.String(),
		ContractNumber: ct.ContractNumber,
		Status:         string(ct.Status),
		At:             time.Now(),
	})
}

// Create stores a new contract in draft status. The only cross-field
// invariant checked before the write: the period must not end before it
// starts.
func (s *Service) Create(ctx context.Context, ct *models.Contract) error {
	if ct.EndDate.Before(ct.StartDate) {
		return ErrInvalidPeriod
	}
	if ct.ContractNumber == "" {
		ct.ContractNumber = models.GenerateContractNumber()
	}
	ct.Status = models.ContractDraft
	return s.repo.Create(ctx, ct)
}

// Update rewrites an editable contract's terms. Status is not touched here;
// transitions go through the dedicated operations.
func (s *Service) Update(ctx context.Context, ct *models.Contract) error {
	if ct.EndDate.Before(ct.StartDate) {
		return ErrInvalidPeriod
	}
	return s.repo.Update(ctx, ct)
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, q repository.ContractQuery) ([]models.Contract, int64, error) {
	return s.repo.List(ctx, q)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, action Action, mutate func(*models.Contract)) (*models.Contract, error) {
	ct, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransition(ct.Status, action) {
		return nil, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, action, ct.Status)
	}
	mutate(ct)
	if err := s.repo.Update(ctx, ct); err != nil {
		return nil, err
	}
	return ct, nil
}

// Sign moves draft -> active and stamps the signing date.
func (s *Service) Sign(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	ct, err := s.transition(ctx, id, ActionSign, func(ct *models.Contract) {
		now := time.Now()
		ct.Status = models.ContractActive
		ct.SignedDate = &now
	})
	if err != nil {
		return nil, err
	}
	s.broadcast("contract.signed", ct)
	return ct, nil
}

// Complete moves active|renewed -> completed.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	ct, err := s.transition(ctx, id, ActionComplete, func(ct *models.Contract) {
		ct.Status = models.ContractCompleted
	})
	if err != nil {
		return nil, err
	}
	s.broadcast("contract.completed", ct)
	return ct, nil
}

// Cancel moves any non-terminal status -> cancelled. An optional free-text
// reason is kept on the contract note.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Contract, error) {
	ct, err := s.transition(ctx, id, ActionCancel, func(ct *models.Contract) {
		ct.Status = models.ContractCancelled
		if reason = strings.TrimSpace(reason); reason != "" {
			if ct.Note != "" {
				ct.Note += "\n"
			}
			ct.Note += "Cancelled: " + reason
		}
	})
	if err != nil {
		return nil, err
	}
	s.broadcast("contract.cancelled", ct)
	return ct, nil
}

// Renew moves active|renewed -> renewed with a new period. An invalid period
// is rejected before any repository call.
func (s *Service) Renew(ctx context.Context, id uuid.UUID, newStart, newEnd time.Time) (*models.Contract, error) {
	if !newEnd.After(newStart) {
		return nil, ErrInvalidPeriod
	}
	ct, err := s.transition(ctx, id, ActionRenew, func(ct *models.Contract) {
		ct.Status = models.ContractRenewed
		ct.StartDate = newStart
		ct.EndDate = newEnd
	})
	if err != nil {
		return nil, err
	}
	s.broadcast("contract.renewed", ct)
	return ct, nil
}
