package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digitalagency-id/agency_be/internal/models"
)

type GormCampaignRepository struct {
	DB *gorm.DB
}

func NewGormCampaignRepository(db *gorm.DB) *GormCampaignRepository {
	return &GormCampaignRepository{DB: db}
}

func (r *GormCampaignRepository) Create(ctx context.Context, cp *models.Campaign) error {
	return r.DB.WithContext(ctx).Create(cp).Error
}

func (r *GormCampaignRepository) Update(ctx context.Context, cp *models.Campaign) error {
	return r.DB.WithContext(ctx).Save(cp).Error
}

func (r *GormCampaignRepository) Get(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var cp models.Campaign
	err := r.DB.WithContext(ctx).Preload("Client").First(&cp, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cp, nil
}

func (r *GormCampaignRepository) List(ctx context.Context, clientID *uuid.UUID) ([]models.Campaign, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Campaign{})
	if clientID != nil {
		tx = tx.Where("client_id = ?", *clientID)
	}
	var campaigns []models.Campaign
	err := tx.Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

func (r *GormCampaignRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Delete(&models.Campaign{}, "id = ?", id).Error
}
