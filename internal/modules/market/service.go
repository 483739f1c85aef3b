package market

import (
	"context"
	"errors"
	"strings"

	"fitlink/internal/domain"
	"fitlink/internal/repository"

	"gorm.io/gorm"
)

var categories = map[domain.ListingCategory]bool{
	domain.CategoryEquipment:   true,
	domain.CategoryApparel:     true,
	domain.CategorySupplements: true,
	domain.CategoryAccessories: true,
	domain.CategoryOther:       true,
}

var statuses = map[domain.ListingStatus]bool{
	domain.ListingActive: true,
	domain.ListingSold:   true,
	domain.ListingHidden: true,
}

type Service struct {
	listings ListingRepository
}

func NewService(listings ListingRepository) *Service {
	return &Service{listings: listings}
}

func (s *Service) CreateListing(ctx context.Context, sellerID int64, req CreateListingRequest) (*domain.Listing, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" || req.Price <= 0 {
		return nil, ErrValidation
	}

	category := domain.ListingCategory(req.Category)
	if !categories[category] {
		return nil, ErrValidation
	}

	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = "USD"
	}

	l := &domain.Listing{
		SellerID:    sellerID,
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Category:    category,
		Price:       req.Price,
		Currency:    currency,
		ImageURL:    req.ImageURL,
		Status:      domain.ListingActive,
	}
	if err := s.listings.Create(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Service) GetListing(ctx context.Context, id int64) (*domain.Listing, error) {
	l, err := s.listings.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) Browse(ctx context.Context, req BrowseRequest) ([]domain.Listing, error) {
	if req.Category != "" && !categories[domain.ListingCategory(req.Category)] {
		return nil, ErrValidation
	}
	if req.MinPrice > 0 && req.MaxPrice > 0 && req.MinPrice > req.MaxPrice {
		return nil, ErrValidation
	}

	return s.listings.Browse(ctx, repository.ListingFilter{
		Category: domain.ListingCategory(req.Category),
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		Query:    req.Query,
		SellerID: req.SellerID,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
}

// UpdateListing applies the non-nil fields. Only the seller may modify a
// listing; a mismatched seller surfaces as not-found so ownership is not
// leaked.
func (s *Service) UpdateListing(ctx context.Context, id, sellerID int64, req UpdateListingRequest) (*domain.Listing, error) {
	l, err := s.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}
	if l.SellerID != sellerID {
		return nil, ErrNotSeller
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return nil, ErrValidation
		}
		l.Title = title
	}
	if req.Description != nil {
		l.Description = strings.TrimSpace(*req.Description)
	}
	if req.Category != nil {
		category := domain.ListingCategory(*req.Category)
		if !categories[category] {
			return nil, ErrValidation
		}
		l.Category = category
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, ErrValidation
		}
		l.Price = *req.Price
	}
	if req.Currency != nil {
		l.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
	if req.ImageURL != nil {
		l.ImageURL = *req.ImageURL
	}
	if req.Status != nil {
		status := domain.ListingStatus(*req.Status)
		if !statuses[status] {
			return nil, ErrValidation
		}
		l.Status = status
	}

	if err := s.listings.Update(ctx, l); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *Service) DeleteListing(ctx context.Context, id, sellerID int64) error {
	err := s.listings.Delete(ctx, id, sellerID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
