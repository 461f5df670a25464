package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digitalagency-id/agency_be/internal/models"
)

type GormContractRepository struct {
	DB *gorm.DB
}

func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{DB: db}
}

func (r *GormContractRepository) Create(ctx context.Context, ct *models.Contract) error {
	return r.DB.WithContext(ctx).Create(ct).Error
}

func (r *GormContractRepository) Update(ctx context.Context, ct *models.Contract) error {
	return r.DB.WithContext(ctx).Save(ct).Error
}

func (r *GormContractRepository) Get(ctx context.Context, id uuid.UUID) (*models.Contract, error) {
	var ct models.Contract
	err := r.DB.WithContext(ctx).
		Preload("Client").
		First(&ct, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ct, nil
}

func (r *GormContractRepository) List(ctx context.Context, q ContractQuery) ([]models.Contract, int64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Contract{})
	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}
	if q.ClientID != nil {
		tx = tx.Where("client_id = ?", *q.ClientID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contracts []models.Contract
	err := tx.Preload("Client").
		Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&contracts).Error
	return contracts, total, err
}

func (r *GormContractRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Contract{}, "id = ?", id).Error
}
