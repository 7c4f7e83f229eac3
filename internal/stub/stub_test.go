package stub_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"storefront/internal/api"
	"storefront/internal/models"
	"storefront/internal/stub"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

var dbSeq int

// newTestServer builds a seeded stub on its own in-memory database.
func newTestServer(t *testing.T) *stub.Server {
	dbSeq++
	server, err := stub.New(stub.Config{
		DBDSN: fmt.Sprintf("file:stubtest%d?mode=memory&cache=shared", dbSeq),
		Seed:  true,
	})
	if err != nil {
		t.Fatalf("failed to build stub server: %v", err)
	}
	return server
}

func request(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (*http.Response, envelope) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request %s %s failed: %v", method, path, err)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	resp.Body.Close()

	var env envelope
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

// registerUser registers a fresh user and returns their token and id.
func registerUser(t *testing.T, server *stub.Server, username string) (string, int64) {
	resp, env := request(t, server.App(), http.MethodPost, "/user/register", "", fiber.Map{
		"username": username,
		"email":    username + "@example.com",
		"password": "secret123",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("register returned %d: %s", resp.StatusCode, env.Message)
	}

	var data struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("failed to decode register payload: %v", err)
	}
	return data.Token, data.User.ID
}

func seededProduct(t *testing.T, server *stub.Server, name string) models.Product {
	var product models.Product
	err := server.DB().Preload("Sizes").Where("name = ?", name).First(&product).Error
	if err != nil {
		t.Fatalf("seeded product %q not found: %v", name, err)
	}
	return product
}

func TestRegisterLoginAndDuplicates(t *testing.T) {
	server := newTestServer(t)
	app := server.App()

	token, userID := registerUser(t, server, "alice")
	assert.NotEmpty(t, token)
	assert.NotZero(t, userID)

	resp, env := request(t, app, http.MethodPost, "/user/register", "", fiber.Map{
		"username": "alice",
		"email":    "other@example.com",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.False(t, env.Success)

	resp, env = request(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "alice",
		"password": "secret123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, "Login successful", env.Message)

	resp, env = request(t, app, http.MethodPost, "/user/login", "", fiber.Map{
		"username": "alice",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", env.Message)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	server := newTestServer(t)

	resp, env := request(t, server.App(), http.MethodGet, "/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.False(t, env.Success)

	resp, _ = request(t, server.App(), http.MethodGet, "/cart", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAddToCartStockSoftRejection(t *testing.T) {
	server := newTestServer(t)
	app := server.App()
	token, _ := registerUser(t, server, "bob")

	jacket := seededProduct(t, server, "Denim Jacket")
	var sizeL models.ProductSize
	for _, size := range jacket.Sizes {
		if size.Size == "L" {
			sizeL = size
		}
	}
	assert.Equal(t, 2, sizeL.Stock)

	// Over stock: HTTP success, but the fixed rejection message.
	resp, env := request(t, app, http.MethodPost, "/cart/add", token, fiber.Map{
		"productId":     jacket.ID,
		"productSizeId": sizeL.ID,
		"quantity":      3,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, api.StockInsufficientMessage, env.Message)

	// Nothing was written.
	var count int64
	server.DB().Model(&models.CartItem{}).Count(&count)
	assert.Zero(t, count)

	// Within stock succeeds.
	resp, env = request(t, app, http.MethodPost, "/cart/add", token, fiber.Map{
		"productId":     jacket.ID,
		"productSizeId": sizeL.ID,
		"quantity":      2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Added to cart", env.Message)
}

func TestUpdateCartStockRejectionLeavesQuantity(t *testing.T) {
	server := newTestServer(t)
	app := server.App()
	token, _ := registerUser(t, server, "carol")

	boots := seededProduct(t, server, "Leather Boots")
	var size10 models.ProductSize
	for _, size := range boots.Sizes {
		if size.Size == "10" {
			size10 = size
		}
	}
	assert.Equal(t, 1, size10.Stock)

	_, env := request(t, app, http.MethodPost, "/cart/add", token, fiber.Map{
		"productId":     boots.ID,
		"productSizeId": size10.ID,
		"quantity":      1,
	})
	var item models.CartItem
	assert.NoError(t, json.Unmarshal(env.Data, &item))

	resp, env := request(t, app, http.MethodPut, fmt.Sprintf("/cart/%d", item.ID), token, fiber.Map{
		"quantity": 2,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
	assert.Equal(t, api.StockInsufficientMessage, env.Message)

	var stored models.CartItem
	assert.NoError(t, server.DB().First(&stored, item.ID).Error)
	assert.Equal(t, 1, stored.Quantity)
}

func TestRepeatedAddIncrementsExistingLine(t *testing.T) {
	server := newTestServer(t)
	app := server.App()
	token, _ := registerUser(t, server, "dave")

	sneakers := seededProduct(t, server, "Running Sneakers")
	sizeID := sneakers.Sizes[0].ID

	for i := 0; i < 2; i++ {
		resp, _ := request(t, app, http.MethodPost, "/cart/add", token, fiber.Map{
			"productId":     sneakers.ID,
			"productSizeId": sizeID,
			"quantity":      1,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}

	_, env := request(t, app, http.MethodGet, "/cart", token, nil)
	var cart models.Cart
	assert.NoError(t, json.Unmarshal(env.Data, &cart))
	assert.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.InDelta(t, 2*sneakers.Price, cart.Total, 0.001)
	assert.Equal(t, 2, cart.ItemCount)
}

func TestDefaultAddressStaysUnique(t *testing.T) {
	server := newTestServer(t)
	app := server.App()
	token, userID := registerUser(t, server, "erin")

	address := fiber.Map{
		"nickname":     "Home",
		"line1":        "1 Main St",
		"city":         "Springfield",
		"state":        "IL",
		"zip":          "62701",
		"country":      "USA",
		"type":         models.AddressTypeHome,
		"isDefault":    true,
		"receiverName": "Erin",
	}
	resp, _ := request(t, app, http.MethodPost, "/address", token, address)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	address["nickname"] = "Office"
	address["type"] = models.AddressTypeOffice
	resp, _ = request(t, app, http.MethodPost, "/address", token, address)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// Legacy shape, not the envelope.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/address/%d", userID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	raw, err := app.Test(req, -1)
	assert.NoError(t, err)

	var payload struct {
		Addresses []models.Address `json:"addresses"`
	}
	assert.NoError(t, json.NewDecoder(raw.Body).Decode(&payload))
	raw.Body.Close()

	assert.Len(t, payload.Addresses, 2)
	defaults := 0
	for _, a := range payload.Addresses {
		if a.IsDefault {
			defaults++
			assert.Equal(t, "Office", a.Nickname)
		}
	}
	assert.Equal(t, 1, defaults)
}

func TestOneReviewPerUserPerProduct(t *testing.T) {
	server := newTestServer(t)
	app := server.App()
	token, userID := registerUser(t, server, "frank")

	shirt := seededProduct(t, server, "Classic White T-Shirt")
	review := fiber.Map{
		"productId": shirt.ID,
		"userId":    userID,
		"rating":    5,
		"comment":   "Fits great",
	}

	resp, env := request(t, app, http.MethodPost, "/review", token, review)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)

	resp, env = request(t, app, http.MethodPost, "/review", token, review)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "You have already reviewed this product", env.Message)
}

func TestProductSearchAndFacets(t *testing.T) {
	server := newTestServer(t)
	app := server.App()

	resp, env := request(t, app, http.MethodGet, "/product/search?query=jacket", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var results []models.Product
	assert.NoError(t, json.Unmarshal(env.Data, &results))
	assert.Len(t, results, 1)
	assert.Equal(t, "Denim Jacket", results[0].Name)

	_, env = request(t, app, http.MethodGet, "/product/brands", "", nil)
	var brands []string
	assert.NoError(t, json.Unmarshal(env.Data, &brands))
	assert.ElementsMatch(t, []string{"Aster", "Northway", "Volta"}, brands)
}
