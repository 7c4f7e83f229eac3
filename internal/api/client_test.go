package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/internal/api"
	"storefront/internal/models"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestClientSendsBearerAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID, gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotContentType = r.Header.Get("Content-Type")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    models.Cart{},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, staticToken("tok123"))
	_, err := client.GetUserCart(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok123", gotAuth)
	assert.NotEmpty(t, gotRequestID)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClientExtractsServerMessageOnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": false,
			"message": "Invalid credentials",
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil)
	_, err := client.Login(context.Background(), api.LoginRequest{Username: "u", Password: "p"})

	var apiErr *api.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Invalid credentials", apiErr.Message)
}

func TestClientTransportErrorIsNotAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := api.NewClient(server.URL, nil)
	_, err := client.GetUserCart(context.Background())

	assert.Error(t, err)
	var apiErr *api.APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestClientMalformedJSONSurfacesAsError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not json</html>"))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, staticToken("tok"))
	_, err := client.GetUserCart(context.Background())

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestUpdateCartItemSoftStockRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP success with the stock message: the fragile contract the
		// backend exposes for out-of-stock updates.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": api.StockInsufficientMessage,
			"data":    models.CartItem{ID: 7, Quantity: 2},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, staticToken("tok"))
	item, err := client.UpdateCartItem(context.Background(), 7, api.UpdateCartRequest{Quantity: 3})

	assert.Nil(t, item)
	assert.ErrorIs(t, err, api.ErrInsufficientStock)
}

func TestAddToCartSoftStockRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"message": api.StockInsufficientMessage,
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, staticToken("tok"))
	_, err := client.AddToCart(context.Background(), api.AddToCartRequest{ProductID: 1, Quantity: 99})

	assert.ErrorIs(t, err, api.ErrInsufficientStock)
}

func TestGetAddressesDecodesLegacyShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"addresses": []models.Address{
				{ID: 1, Nickname: "Home", IsDefault: true},
				{ID: 2, Nickname: "Work"},
			},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, staticToken("tok"))
	addresses, err := client.GetAddresses(context.Background(), 42)

	assert.NoError(t, err)
	assert.Len(t, addresses, 2)
	assert.True(t, addresses[0].IsDefault)
}

func TestGetMyOrdersDecodesLegacyShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/my-orders", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"orders": []models.Order{{ID: "ord-1", Status: models.OrderStatusPlaced}},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, staticToken("tok"))
	orders, err := client.GetMyOrders(context.Background())

	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, models.OrderStatusPlaced, orders[0].Status)
}

func TestSearchProductsEncodesQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "denim jacket", r.URL.Query().Get("query"))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"success": true,
			"data":    []models.Product{{ID: 2, Name: "Denim Jacket"}},
		})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil)
	products, err := client.SearchProducts(context.Background(), "denim jacket")

	assert.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestFilterProductsOmitsZeroParams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "Aster", q.Get("brand"))
		assert.False(t, q.Has("colour"))
		assert.False(t, q.Has("minPrice"))
		json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": []models.Product{}})
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil)
	_, err := client.FilterProducts(context.Background(), api.ProductFilter{Brand: "Aster"})
	assert.NoError(t, err)
}

func TestClientValidatesBeforeSending(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	client := api.NewClient(server.URL, nil)

	_, err := client.Register(context.Background(), api.RegisterRequest{
		Username: "ab", // below the 3-char minimum
		Email:    "not-an-email",
		Password: "pw",
	})
	assert.Error(t, err)

	_, err = client.AddToCart(context.Background(), api.AddToCartRequest{Quantity: 1})
	assert.Error(t, err)

	_, err = client.AddReview(context.Background(), api.AddReviewRequest{
		ProductID: 1, UserID: 1, Rating: 6,
	})
	assert.Error(t, err)

	assert.False(t, called, "invalid payloads should never reach the network")
}

func TestClientRespectsContextCancellation(t *testing.T) {
	blocked := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-blocked
	}))
	defer server.Close()
	defer close(blocked)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := api.NewClient(server.URL, nil)
	_, err := client.GetUserCart(ctx)

	assert.ErrorIs(t, err, context.Canceled)
}
