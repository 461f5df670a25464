package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/digitalagency-id/agency_be/internal/models"
)

// In-memory implementations backing tests and local development without a
// database. They satisfy the same interfaces as the gorm variants.

type MemoryClientRepository struct {
	mu          sync.RWMutex
	clients     map[uuid.UUID]models.Client
	branches    map[uuid.UUID][]models.Branch
	competitors map[uuid.UUID][]models.Competitor
	segments    map[uuid.UUID][]models.Segment
}

func NewMemoryClientRepository() *MemoryClientRepository {
	return &MemoryClientRepository{
		clients:     make(map[uuid.UUID]models.Client),
		branches:    make(map[uuid.UUID][]models.Branch),
		competitors: make(map[uuid.UUID][]models.Competitor),
		segments:    make(map[uuid.UUID][]models.Segment),
	}
}

func (r *MemoryClientRepository) Create(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *MemoryClientRepository) Update(_ context.Context, c *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.clients[c.ID]; !ok {
		return ErrNotFound
	}
	r.clients[c.ID] = *c
	return nil
}

func (r *MemoryClientRepository) Get(_ context.Context, id uuid.UUID) (*models.Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return nil, ErrNotFound
	}
	c.Branches = append([]models.Branch(nil), r.branches[id]...)
	c.Competitors = append([]models.Competitor(nil), r.competitors[id]...)
	c.Segments = append([]models.Segment(nil), r.segments[id]...)
	return &c, nil
}

func (r *MemoryClientRepository) List(_ context.Context, q ClientQuery) ([]models.Client, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Client
	for _, c := range r.clients {
		if q.Search != "" {
			s := strings.ToLower(q.Search)
			if !strings.Contains(strings.ToLower(c.BusinessName), s) &&
				!strings.Contains(strings.ToLower(c.FullName), s) {
				continue
			}
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *MemoryClientRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.clients, id)
	delete(r.branches, id)
	delete(r.competitors, id)
	delete(r.segments, id)
	return nil
}

func (r *MemoryClientRepository) BulkCreateBranches(_ context.Context, clientID uuid.UUID, branches []models.Branch) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range branches {
		branches[i].ClientID = clientID
		if branches[i].ID == uuid.Nil {
			branches[i].ID = uuid.New()
		}
	}
	r.branches[clientID] = append(r.branches[clientID], branches...)
	return nil
}

func (r *MemoryClientRepository) BulkCreateCompetitors(_ context.Context, clientID uuid.UUID, competitors []models.Competitor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range competitors {
		competitors[i].ClientID = clientID
		if competitors[i].ID == uuid.Nil {
			competitors[i].ID = uuid.New()
		}
	}
	r.competitors[clientID] = append(r.competitors[clientID], competitors...)
	return nil
}

func (r *MemoryClientRepository) BulkCreateSegments(_ context.Context, clientID uuid.UUID, segments []models.Segment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range segments {
		segments[i].ClientID = clientID
		if segments[i].ID == uuid.Nil {
			segments[i].ID = uuid.New()
		}
	}
	r.segments[clientID] = append(r.segments[clientID], segments...)
	return nil
}

type MemoryContractRepository struct {
	mu        sync.RWMutex
	contracts map[uuid.UUID]models.Contract
}

func NewMemoryContractRepository() *MemoryContractRepository {
	return &MemoryContractRepository{contracts: make(map[uuid.UUID]models.Contract)}
}

func (r *MemoryContractRepository) Create(_ context.Context, ct *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ct.ID == uuid.Nil {
		ct.ID = uuid.New()
	}
	r.contracts[ct.ID] = *ct
	return nil
}

func (r *MemoryContractRepository) Update(_ context.Context, ct *models.Contract) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.contracts[ct.ID]; !ok {
		return ErrNotFound
	}
	r.contracts[ct.ID] = *ct
	return nil
}

func (r *MemoryContractRepository) Get(_ context.Context, id uuid.UUID) (*models.Contract, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ct, ok := r.contracts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ct, nil
}

func (r *MemoryContractRepository) List(_ context.Context, q ContractQuery) ([]models.Contract, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Contract
	for _, ct := range r.contracts {
		if q.Status != "" && ct.Status != q.Status {
			continue
		}
		if q.ClientID != nil && (ct.ClientID == nil || *ct.ClientID != *q.ClientID) {
			continue
		}
		out = append(out, ct)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, int64(len(out)), nil
}

func (r *MemoryContractRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contracts, id)
	return nil
}
