package market

import (
	"context"

	"fitlink/internal/domain"
	"fitlink/internal/repository"
)

type ListingRepository interface {
	Create(ctx context.Context, l *domain.Listing) error
	GetByID(ctx context.Context, id int64) (*domain.Listing, error)
	Browse(ctx context.Context, f repository.ListingFilter) ([]domain.Listing, error)
	Update(ctx context.Context, l *domain.Listing) error
	Delete(ctx context.Context, id, sellerID int64) error
}
