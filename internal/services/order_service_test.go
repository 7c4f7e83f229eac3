package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"storefront/internal/models"
	"storefront/internal/services"
)

type MockOrderAPI struct {
	mock.Mock
}

func (m *MockOrderAPI) GetMyOrders(ctx context.Context) ([]models.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Order), args.Error(1)
}

func orderFixture() []models.Order {
	return []models.Order{
		{
			ID:     "a1",
			Status: models.OrderStatusDelivered,
			Items: []models.OrderItem{
				{Product: models.Product{Name: "Trail Runner"}, Quantity: 2},
			},
		},
		{
			ID:     "b2",
			Status: models.OrderStatusPlaced,
			Items: []models.OrderItem{
				{Product: models.Product{Name: "Canvas Tote"}, Quantity: 1},
				{Product: models.Product{Name: "Wool Socks"}, Quantity: 3},
			},
		},
	}
}

func TestSearchMatchesProductNameCaseInsensitively(t *testing.T) {
	mockAPI := new(MockOrderAPI)
	mockAPI.On("GetMyOrders", mock.Anything).Return(orderFixture(), nil)
	orders := services.NewOrders(mockAPI)

	matched, err := orders.Search(context.Background(), "TOTE")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "b2", matched[0].ID)

	all, err := orders.Search(context.Background(), "")
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	none, err := orders.Search(context.Background(), "umbrella")
	assert.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchMatchesEachOrderAtMostOnce(t *testing.T) {
	mockAPI := new(MockOrderAPI)
	mockAPI.On("GetMyOrders", mock.Anything).Return(orderFixture(), nil)
	orders := services.NewOrders(mockAPI)

	// "o" hits both products in the second order; the order still appears once.
	matched, err := orders.Search(context.Background(), "o")
	assert.NoError(t, err)
	assert.Len(t, matched, 1)
	assert.Equal(t, "b2", matched[0].ID)
}

func TestListWrapsFetchError(t *testing.T) {
	mockAPI := new(MockOrderAPI)
	mockAPI.On("GetMyOrders", mock.Anything).Return(nil, fmt.Errorf("boom"))
	orders := services.NewOrders(mockAPI)

	_, err := orders.List(context.Background())
	assert.ErrorContains(t, err, "fetch orders")
}

func TestBuildReceiptAddsFixedFees(t *testing.T) {
	order := models.Order{
		Items: []models.OrderItem{
			{Product: models.Product{Price: 100}, Quantity: 2},
			{Product: models.Product{Price: 50}, Quantity: 1},
		},
	}

	receipt := services.BuildReceipt(order)
	assert.InDelta(t, 250.0, receipt.ItemsTotal, 0.001)
	assert.InDelta(t, services.OrderHandlingFee, receipt.HandlingFee, 0.001)
	assert.InDelta(t, services.OrderPlatformFee, receipt.PlatformFee, 0.001)
	assert.InDelta(t, services.OrderProcessingFee, receipt.ProcessingFee, 0.001)
	assert.InDelta(t, 256.0, receipt.FinalPrice, 0.001)
}

func TestStatusHeading(t *testing.T) {
	assert.Equal(t, "Order Placed", services.StatusHeading(models.OrderStatusPlaced))
	assert.Equal(t, "Shipped", services.StatusHeading(models.OrderStatusShipping))
	assert.Equal(t, "Out for Delivery", services.StatusHeading(models.OrderStatusOutForDelivery))
	assert.Equal(t, "Delivered", services.StatusHeading("DELIVERED"))
	assert.Equal(t, "Cancelled", services.StatusHeading(models.OrderStatusCancelled))
	assert.Equal(t, "Processing", services.StatusHeading("something_new"))
}

func TestReviewEligibilityFollowsStatus(t *testing.T) {
	assert.True(t, services.CanReview(models.OrderStatusDelivered))
	assert.False(t, services.CanReview(models.OrderStatusShipping))

	assert.Equal(t, "Rate this product!", services.ReviewPrompt(models.OrderStatusDelivered))
	assert.Equal(t, "You'll be able to rate this soon.", services.ReviewPrompt(models.OrderStatusOutForDelivery))
	assert.Equal(t, "You'll be able to rate this once it's delivered.", services.ReviewPrompt(models.OrderStatusPlaced))
	assert.Empty(t, services.ReviewPrompt(models.OrderStatusCancelled))
}
