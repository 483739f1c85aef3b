package market

import (
	"context"
	"testing"

	"fitlink/internal/domain"
	"fitlink/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	if args.Error(0) == nil {
		l.ID = 7
	}
	return args.Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id int64) (*domain.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Browse(ctx context.Context, f repository.ListingFilter) ([]domain.Listing, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, l *domain.Listing) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *MockListingRepository) Delete(ctx context.Context, id, sellerID int64) error {
	args := m.Called(ctx, id, sellerID)
	return args.Error(0)
}

func TestService_CreateListing_Success(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewService(repo)

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)

	l, err := service.CreateListing(context.Background(), 3, CreateListingRequest{
		Title:    "Adjustable dumbbells",
		Category: "equipment",
		Price:    120,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7), l.ID)
	assert.Equal(t, int64(3), l.SellerID)
	assert.Equal(t, domain.ListingActive, l.Status)
	assert.Equal(t, "USD", l.Currency)
	repo.AssertExpectations(t)
}

func TestService_CreateListing_RejectsBadInput(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewService(repo)

	cases := []CreateListingRequest{
		{Title: "", Category: "equipment", Price: 10},
		{Title: "Bands", Category: "equipment", Price: 0},
		{Title: "Bands", Category: "equipment", Price: -5},
		{Title: "Bands", Category: "furniture", Price: 10},
	}
	for _, req := range cases {
		_, err := service.CreateListing(context.Background(), 3, req)
		assert.ErrorIs(t, err, ErrValidation)
	}
	repo.AssertNotCalled(t, "Create")
}

func TestService_Browse_RejectsInvertedPriceRange(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewService(repo)

	_, err := service.Browse(context.Background(), BrowseRequest{MinPrice: 50, MaxPrice: 10})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Browse")
}

func TestService_UpdateListing_OnlySeller(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Listing{
		ID: 7, SellerID: 3, Title: "Bands", Category: domain.CategoryEquipment,
		Price: 10, Status: domain.ListingActive,
	}, nil)

	price := 15.0
	_, err := service.UpdateListing(context.Background(), 7, 99, UpdateListingRequest{Price: &price})

	assert.ErrorIs(t, err, ErrNotSeller)
	repo.AssertNotCalled(t, "Update")
}

func TestService_UpdateListing_AppliesFields(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewService(repo)

	repo.On("GetByID", mock.Anything, int64(7)).Return(&domain.Listing{
		ID: 7, SellerID: 3, Title: "Bands", Category: domain.CategoryEquipment,
		Price: 10, Currency: "USD", Status: domain.ListingActive,
	}, nil)
	repo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Listing")).Return(nil)

	price := 15.0
	status := "sold"
	l, err := service.UpdateListing(context.Background(), 7, 3, UpdateListingRequest{
		Price:  &price,
		Status: &status,
	})

	require.NoError(t, err)
	assert.Equal(t, 15.0, l.Price)
	assert.Equal(t, domain.ListingSold, l.Status)
	assert.Equal(t, "Bands", l.Title)
	repo.AssertExpectations(t)
}

func TestService_DeleteListing_NotFound(t *testing.T) {
	repo := new(MockListingRepository)
	service := NewService(repo)

	repo.On("Delete", mock.Anything, int64(404), int64(3)).Return(gorm.ErrRecordNotFound)

	err := service.DeleteListing(context.Background(), 404, 3)

	assert.ErrorIs(t, err, ErrNotFound)
}
