package repository

import (
	"context"
	"errors"
	"time"

	"interest-registry/internal/subscription/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormSubscriptionRepository implements SubscriptionRepository using GORM
type gormSubscriptionRepository struct {
	db *gorm.DB
}

// NewGormSubscriptionRepository creates a new GORM-based SubscriptionRepository
func NewGormSubscriptionRepository(db *gorm.DB) SubscriptionRepository {
	return &gormSubscriptionRepository{db: db}
}

func (r *gormSubscriptionRepository) DeleteAll(ctx context.Context, interest domain.Interest) (int64, error) {
	res := r.db.WithContext(ctx).Where("interest = ?", interest).Delete(&domain.Subscription{})
	return res.RowsAffected, res.Error
}

func (r *gormSubscriptionRepository) Insert(ctx context.Context, interest domain.Interest, token string) (*domain.Subscription, error) {
	sub := &domain.Subscription{
		ID:        uuid.New().String(),
		Interest:  interest,
		Token:     token,
		CreatedAt: time.Now(),
	}

	if err := r.db.WithContext(ctx).Create(sub).Error; err != nil {
		// Requires gorm.Config{TranslateError: true}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &domain.ConflictError{Interest: interest}
		}
		return nil, err
	}
	return sub, nil
}

func (r *gormSubscriptionRepository) DeleteToken(ctx context.Context, interest domain.Interest, token *string) (int64, error) {
	query := r.db.WithContext(ctx).Where("interest = ?", interest)
	if token != nil {
		query = query.Where("token = ?", *token)
	}
	res := query.Delete(&domain.Subscription{})
	return res.RowsAffected, res.Error
}

func (r *gormSubscriptionRepository) FindByInterest(ctx context.Context, interest domain.Interest) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.WithContext(ctx).Where("interest = ?", interest).Order("created_at ASC").Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *gormSubscriptionRepository) List(ctx context.Context, limit, offset int) ([]domain.Subscription, error) {
	var subs []domain.Subscription
	err := r.db.WithContext(ctx).Order("interest ASC, id ASC").Limit(limit).Offset(offset).Find(&subs).Error
	if err != nil {
		return nil, err
	}
	return subs, nil
}

func (r *gormSubscriptionRepository) Transaction(ctx context.Context, fn func(repo SubscriptionRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSubscriptionRepository{db: tx})
	})
}
