package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/digitalagency-id/agency_be/internal/models"
)

type GormClientRepository struct {
	DB *gorm.DB
}

func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{DB: db}
}

func (r *GormClientRepository) Create(ctx context.Context, c *models.Client) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormClientRepository) Update(ctx context.Context, c *models.Client) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormClientRepository) Get(ctx context.Context, id uuid.UUID) (*models.Client, error) {
	var c models.Client
	err := r.DB.WithContext(ctx).
		Preload("Branches").
		Preload("Competitors").
		Preload("Segments").
		First(&c, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *GormClientRepository) List(ctx context.Context, q ClientQuery) ([]models.Client, int64, error) {
	page := q.Page
	if page < 1 {
		page = 1
	}
	perPage := q.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	tx := r.DB.WithContext(ctx).Model(&models.Client{})
	if s := q.Search; s != "" {
		tx = tx.Where("business_name ILIKE ? OR full_name ILIKE ?", "%"+s+"%", "%"+s+"%")
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	err := tx.Order("created_at DESC").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&clients).Error
	return clients, total, err
}

func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Branch{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Competitor{}).Error; err != nil {
			return err
		}
		if err := tx.Where("client_id = ?", id).Delete(&models.Segment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Client{}, "id = ?", id).Error
	})
}

func (r *GormClientRepository) BulkCreateBranches(ctx context.Context, clientID uuid.UUID, branches []models.Branch) error {
	if len(branches) == 0 {
		return nil
	}
	for i := range branches {
		branches[i].ClientID = clientID
	}
	return r.DB.WithContext(ctx).Create(&branches).Error
}

func (r *GormClientRepository) BulkCreateCompetitors(ctx context.Context, clientID uuid.UUID, competitors []models.Competitor) error {
	if len(competitors) == 0 {
		return nil
	}
	for i := range competitors {
		competitors[i].ClientID = clientID
	}
	return r.DB.WithContext(ctx).Create(&competitors).Error
}

func (r *GormClientRepository) BulkCreateSegments(ctx context.Context, clientID uuid.UUID, segments []models.Segment) error {
	if len(segments) == 0 {
		return nil
	}
	for i := range segments {
		segments[i].ClientID = clientID
	}
	return r.DB.WithContext(ctx).Create(&segments).Error
}
