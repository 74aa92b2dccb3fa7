package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/everestpress/printshop-api/internal/domain/quote"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
)

type QuoteGormRepository struct {
	db *gorm.DB
}

func NewQuoteGormRepository(db *gorm.DB) *QuoteGormRepository {
	return &QuoteGormRepository{db: db}
}

func (r *QuoteGormRepository) Create(ctx context.Context, q *models.Quote) error {
	return r.db.WithContext(ctx).Create(q).Error
}

func (r *QuoteGormRepository) FindByID(ctx context.Context, id string) (*models.Quote, error) {
	var q models.Quote
	if err := r.db.WithContext(ctx).
		Preload("User").
		First(&q, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("quote_not_found", "Quote not found.")
		}
		return nil, err
	}
	return &q, nil
}

func (r *QuoteGormRepository) List(ctx context.Context, f domain.ListFilters) ([]models.Quote, error) {
	q := r.db.WithContext(ctx).Model(&models.Quote{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.OwnerID != nil {
		q = q.Where("user_id = ?", *f.OwnerID)
	}

	var quotes []models.Quote
	if err := q.Preload("User").Order("created_at DESC").Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *QuoteGormRepository) Update(ctx context.Context, q *models.Quote) error {
	return r.db.WithContext(ctx).Save(q).Error
}
