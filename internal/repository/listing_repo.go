package repository

import (
	"context"
	"strings"
	"time"

	"fitlink/internal/domain"

	"gorm.io/gorm"
)

type ListingRepository struct {
	db *gorm.DB
}

func NewListingRepository(db *gorm.DB) *ListingRepository {
	return &ListingRepository{db: db}
}

type listingModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	SellerID    int64     `gorm:"column:seller_id;index"`
	Title       string    `gorm:"column:title"`
	Description *string   `gorm:"column:description"`
	Category    string    `gorm:"column:category;index"`
	Price       float64   `gorm:"column:price"`
	Currency    string    `gorm:"column:currency"`
	ImageURL    *string   `gorm:"column:image_url"`
	Status      string    `gorm:"column:status;index"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (listingModel) TableName() string { return "listings" }

func toDomainListing(m listingModel) *domain.Listing {
	var desc, image string
	if m.Description != nil {
		desc = *m.Description
	}
	if m.ImageURL != nil {
		image = *m.ImageURL
	}
	return &domain.Listing{
		ID:          m.ID,
		SellerID:    m.SellerID,
		Title:       m.Title,
		Description: desc,
		Category:    domain.ListingCategory(m.Category),
		Price:       m.Price,
		Currency:    m.Currency,
		ImageURL:    image,
		Status:      domain.ListingStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toListingModel(l *domain.Listing) listingModel {
	var desc, image *string
	if l.Description != "" {
		v := l.Description
		desc = &v
	}
	if l.ImageURL != "" {
		v := l.ImageURL
		image = &v
	}
	return listingModel{
		ID:          l.ID,
		SellerID:    l.SellerID,
		Title:       l.Title,
		Description: desc,
		Category:    string(l.Category),
		Price:       l.Price,
		Currency:    l.Currency,
		ImageURL:    image,
		Status:      string(l.Status),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

func (r *ListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainListing(m)
	return nil
}

func (r *ListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	var m listingModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainListing(m), nil
}

// ListingFilter narrows Browse results; zero values mean "no constraint".
type ListingFilter struct {
	Category domain.ListingCategory
	MinPrice float64
	MaxPrice float64
	Query    string
	SellerID int64
	Limit    int
	Offset   int
}

func (r *ListingRepository) Browse(ctx context.Context, f ListingFilter) ([]domain.Listing, error) {
	q := r.db.WithContext(ctx).Where("status = ?", string(domain.ListingActive))

	if f.Category != "" {
		q = q.Where("category = ?", string(f.Category))
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.SellerID > 0 {
		q = q.Where("seller_id = ?", f.SellerID)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 20
	}

	var rows []listingModel
	tx := q.Order("created_at DESC").Limit(f.Limit).Offset(f.Offset).Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Listing, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainListing(m))
	}
	return out, nil
}

func (r *ListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	m := toListingModel(l)
	tx := r.db.WithContext(ctx).
		Model(&listingModel{}).
		Where("id = ? AND seller_id = ?", l.ID, l.SellerID).
		Updates(map[string]interface{}{
			"title":       m.Title,
			"description": m.Description,
			"category":    m.Category,
			"price":       m.Price,
			"currency":    m.Currency,
			"image_url":   m.ImageURL,
			"status":      m.Status,
			"updated_at":  time.Now(),
		})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id, sellerID int64) error {
	tx := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		Delete(&listingModel{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
