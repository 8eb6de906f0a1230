package domain

import "time"

// Seller is the account a client device subscribes on behalf of
type Seller struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Token     string    `json:"-" gorm:"uniqueIndex;not null"` // seller_token presented by clients
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
