package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
)

type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, "id = ?", serviceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("service_not_found", "Service not found.")
		}
		return nil, err
	}
	return &svc, nil
}

func (r *OrderGormRepository) Create(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderGormRepository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var o models.Order
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("User").
		First(&o, "id = ?", id).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.NotFound("order_not_found", "Order not found.")
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderGormRepository) List(ctx context.Context, f domain.ListFilters) ([]models.Order, error) {
	q := r.db.WithContext(ctx).Model(&models.Order{})

	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PaymentStatus != "" {
		q = q.Where("payment_status = ?", f.PaymentStatus)
	}
	if f.OwnerID != nil {
		q = q.Where("user_id = ?", *f.OwnerID)
	}

	var orders []models.Order
	if err := q.Preload("Service").Preload("User").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *OrderGormRepository) Update(ctx context.Context, o *models.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

// AttachPaymentIntent relies on the atomicity of a single conditional UPDATE:
// the intent id lands only if the column is still NULL, so two racing
// attaches resolve to one winner and one Conflict.
func (r *OrderGormRepository) AttachPaymentIntent(ctx context.Context, orderID, intentID string) error {
	res := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ? AND payment_intent_id IS NULL", orderID).
		Update("payment_intent_id", intentID)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		// Either the order is gone or an intent is already attached.
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return httperr.NotFound("order_not_found", "Order not found.")
		}
		return httperr.Conflict("payment_intent_exists", "A payment intent is already attached to this order.")
	}
	return nil
}
