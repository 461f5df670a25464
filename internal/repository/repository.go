package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/digitalagency-id/agency_be/internal/models"
)

var ErrNotFound = errors.New("record not found")

type ClientQuery struct {
	Search  string
	Page    int
	PerPage int
}

// ClientRepository owns client records and their bulk-created sub-resources.
type ClientRepository interface {
	Create(ctx context.Context, c *models.Client) error
	Update(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id uuid.UUID) (*models.Client, error)
	List(ctx context.Context, q ClientQuery) ([]models.Client, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error

	BulkCreateBranches(ctx context.Context, clientID uuid.UUID, branches []models.Branch) error
	BulkCreateCompetitors(ctx context.Context, clientID uuid.UUID, competitors []models.Competitor) error
	BulkCreateSegments(ctx context.Context, clientID uuid.UUID, segments []models.Segment) error
}

type ContractQuery struct {
	Status   models.ContractStatus
	ClientID *uuid.UUID
	Page     int
	PerPage  int
}

type ContractRepository interface {
	Create(ctx context.Context, ct *models.Contract) error
	Update(ctx context.Context, ct *models.Contract) error
	Get(ctx context.Context, id uuid.UUID) (*models.Contract, error)
	List(ctx context.Context, q ContractQuery) ([]models.Contract, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CampaignRepository interface {
	Create(ctx context.Context, cp *models.Campaign) error
	Update(ctx context.Context, cp *models.Campaign) error
	Get(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	List(ctx context.Context, clientID *uuid.UUID) ([]models.Campaign, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
