package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"jamaah_server/models"
	"jamaah_server/utils"
)

// MarketService backs the marketplace and donation routes with the hosted
// relational database rather than the key-value store.
type MarketService struct {
	DB  *gorm.DB
	Log *zap.SugaredLogger
}

// NewMarketService opens the database and runs auto-migrations.
func NewMarketService(dsn string, log *zap.SugaredLogger) (*MarketService, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Review{}, &models.DonationCampaign{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return &MarketService{DB: db, Log: log}, nil
}

// ProductRequest is the create/update payload for a listing.
type ProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	ImageURL    string  `json:"image_url"`
}

// ListProducts returns listings, newest first.
func (s *MarketService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// CreateProduct stores a new listing for the seller.
func (s *MarketService) CreateProduct(ctx context.Context, sellerID, sellerName string, req ProductRequest) (*models.Product, error) {
	if strings.TrimSpace(req.Title) == "" || req.Price <= 0 {
		return nil, utils.Validationf("Nama produk dan harga wajib diisi")
	}

	product := models.Product{
		ID:          uuid.NewString(),
		SellerID:    sellerID,
		SellerName:  sellerName,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		Status:      "available",
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a listing. Seller-only.
func (s *MarketService) DeleteProduct(ctx context.Context, userID, productID string) error {
	var product models.Product
	if err := s.DB.WithContext(ctx).First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %s: %w", productID, utils.ErrNotFound)
		}
		return fmt.Errorf("failed to fetch product: %w", err)
	}
	if product.SellerID != userID {
		return utils.ErrForbidden
	}
	return s.DB.WithContext(ctx).Delete(&models.Product{}, "id = ?", productID).Error
}

// AddReview attaches a rating to a product. Ratings outside 1..5 are
// rejected.
func (s *MarketService) AddReview(ctx context.Context, userID, userName, productID string, rating int, text string) (*models.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, utils.Validationf("Rating harus antara 1 sampai 5")
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", productID).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("product %s: %w", productID, utils.ErrNotFound)
	}

	review := models.Review{
		ID:        uuid.NewString(),
		ProductID: productID,
		UserID:    userID,
		UserName:  userName,
		Rating:    rating,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.DB.WithContext(ctx).Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &review, nil
}

// ListReviews returns a product's reviews, newest first.
func (s *MarketService) ListReviews(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := s.DB.WithContext(ctx).Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// ListCampaigns returns donation campaigns, newest first.
func (s *MarketService) ListCampaigns(ctx context.Context) ([]models.DonationCampaign, error) {
	var campaigns []models.DonationCampaign
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&campaigns).Error; err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	return campaigns, nil
}

// CreateCampaign stores a new donation campaign.
func (s *MarketService) CreateCampaign(ctx context.Context, creatorID string, campaign models.DonationCampaign) (*models.DonationCampaign, error) {
	if strings.TrimSpace(campaign.Title) == "" {
		return nil, utils.Validationf("Judul kampanye wajib diisi")
	}

	campaign.ID = uuid.NewString()
	campaign.CreatedBy = creatorID
	campaign.CurrentAmount = 0
	campaign.CreatedAt = time.Now().UTC()
	campaign.UpdatedAt = time.Now().UTC()

	if err := s.DB.WithContext(ctx).Create(&campaign).Error; err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}
	return &campaign, nil
}

// Donate adds the amount to the campaign total. Demo flow only; there is no
// payment processing behind it.
func (s *MarketService) Donate(ctx context.Context, campaignID string, amount float64) (*models.DonationCampaign, error) {
	if amount <= 0 {
		return nil, utils.Validationf("Nominal donasi tidak valid")
	}

	result := s.DB.WithContext(ctx).Model(&models.DonationCampaign{}).
		Where("id = ?", campaignID).
		Updates(map[string]interface{}{
			"current_amount": gorm.Expr("current_amount + ?", amount),
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to record donation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("campaign %s: %w", campaignID, utils.ErrNotFound)
	}

	var campaign models.DonationCampaign
	if err := s.DB.WithContext(ctx).First(&campaign, "id = ?", campaignID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch campaign: %w", err)
	}
	return &campaign, nil
}
