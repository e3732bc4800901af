package models

import "time"

// Marketplace and donation records live in the relational database rather
// than the key-value store.

type Product struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	SellerID    string    `json:"seller_id" gorm:"not null;index"`
	SellerName  string    `json:"seller_name"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	Price       float64   `json:"price" gorm:"not null"`
	Category    string    `json:"category" gorm:"index"`
	ImageURL    string    `json:"image_url"`
	Status      string    `json:"status" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Review struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ProductID string    `json:"product_id" gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"not null"`
	UserName  string    `json:"user_name"`
	Rating    int       `json:"rating" gorm:"not null"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type DonationCampaign struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Title         string    `json:"title" gorm:"not null"`
	Description   string    `json:"description"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	ImageURL      string    `json:"image_url"`
	CreatedBy     string    `json:"created_by" gorm:"index"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
