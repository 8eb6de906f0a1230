package repository

import (
	"context"
	"errors"
	"time"

	sellerdomain "interest-registry/internal/seller/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SellerRepository defines the interface for seller lookups
type SellerRepository interface {
	Create(ctx context.Context, seller *sellerdomain.Seller) error
	FindByToken(ctx context.Context, token string) (*sellerdomain.Seller, error)
	FindByID(ctx context.Context, id string) (*sellerdomain.Seller, error)
}

// sellerRepository implements SellerRepository interface
type sellerRepository struct {
	db *gorm.DB
}

// NewSellerRepository creates a new instance of sellerRepository
func NewSellerRepository(db *gorm.DB) SellerRepository {
	return &sellerRepository{
		db: db,
	}
}

func (r *sellerRepository) Create(ctx context.Context, seller *sellerdomain.Seller) error {
	if seller.ID == "" {
		seller.ID = uuid.New().String()
	}
	seller.CreatedAt = time.Now()
	seller.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Create(seller).Error
}

// FindByToken returns nil, nil when no seller holds the token
func (r *sellerRepository) FindByToken(ctx context.Context, token string) (*sellerdomain.Seller, error) {
	var seller sellerdomain.Seller
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}

func (r *sellerRepository) FindByID(ctx context.Context, id string) (*sellerdomain.Seller, error) {
	var seller sellerdomain.Seller
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&seller).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &seller, nil
}
