// Package stub is a local stand-in for the storefront backend. It implements
// the REST contract the client consumes — envelope responses, bearer auth,
// the stock soft rejection, the bespoke address/orders shapes — so the client
// and its services can be exercised end to end without the real service.
// It is development and test tooling, not a backend design.
package stub

import (
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"storefront/internal/models"
	"storefront/pkg/rabbitmq"
)

// OrderEventPublisher is what the order handler needs from a broker client.
// Nil is fine; publication is best-effort dev plumbing.
type OrderEventPublisher interface {
	PublishOrderCreated(event map[string]interface{}) error
}

// Config controls the stub's storage, signing secret, and optional broker.
type Config struct {
	// DBDSN selects the database: empty for in-memory SQLite, a postgres://
	// DSN for Postgres, anything else is treated as a SQLite path.
	DBDSN     string
	JWTSecret string
	// AMQPURL, when set, enables order-created event publication.
	AMQPURL string
	// Seed populates the catalog with demo products.
	Seed bool
}

// Server is the stub backend.
type Server struct {
	app      *fiber.App
	db       *gorm.DB
	validate *validator.Validate
	secret   []byte
	mq       OrderEventPublisher
	mqCloser func() error
}

// New builds a ready-to-serve stub.
func New(cfg Config) (*Server, error) {
	db, err := openDB(cfg.DBDSN)
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.ProductSize{},
		&models.CartItem{},
		&models.WishlistItem{},
		&models.Address{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
	)
	if err != nil {
		return nil, fmt.Errorf("auto-migrate stub database: %w", err)
	}

	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dev_stub_secret"
	}

	s := &Server{
		app:      fiber.New(fiber.Config{DisableStartupMessage: true}),
		db:       db,
		validate: validator.New(),
		secret:   []byte(secret),
	}

	if cfg.AMQPURL != "" {
		mq, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.AMQPURL})
		if err != nil {
			return nil, fmt.Errorf("connect stub broker: %w", err)
		}
		s.mq = mq
		s.mqCloser = mq.Close
	}

	if cfg.Seed {
		if err := s.seed(); err != nil {
			return nil, fmt.Errorf("seed stub catalog: %w", err)
		}
	}

	s.routes()
	return s, nil
}

func openDB(dsn string) (*gorm.DB, error) {
	gormCfg := &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)}

	switch {
	case dsn == "":
		db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open in-memory database: %w", err)
		}
		return db, nil
	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.Contains(dsn, "host="):
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open postgres database: %w", err)
		}
		return db, nil
	default:
		db, err := gorm.Open(sqlite.Open(dsn), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("open sqlite database %s: %w", dsn, err)
		}
		return db, nil
	}
}

func (s *Server) routes() {
	s.app.Use(logger.New())

	s.app.Post("/user/login", s.handleLogin)
	s.app.Post("/user/register", s.handleRegister)
	s.app.Get("/user/profile", s.authRequired, s.handleGetProfile)
	s.app.Put("/user/profile", s.authRequired, s.handleUpdateProfile)
	s.app.Put("/user/change-password", s.authRequired, s.handleChangePassword)

	s.app.Post("/address", s.authRequired, s.handleAddAddress)
	s.app.Get("/address/:id", s.authRequired, s.handleGetAddresses)
	s.app.Put("/address/:id", s.authRequired, s.handleUpdateAddress)

	// clear before :id so the literal route wins
	s.app.Post("/cart/add", s.authRequired, s.handleAddToCart)
	s.app.Get("/cart", s.authRequired, s.handleGetCart)
	s.app.Delete("/cart/clear", s.authRequired, s.handleClearCart)
	s.app.Put("/cart/:id", s.authRequired, s.handleUpdateCartItem)
	s.app.Delete("/cart/:id", s.authRequired, s.handleRemoveFromCart)

	s.app.Post("/wishlist/add", s.authRequired, s.handleAddToWishlist)
	s.app.Get("/wishlist", s.authRequired, s.handleGetWishlist)
	s.app.Delete("/wishlist/clear", s.authRequired, s.handleClearWishlist)
	s.app.Put("/wishlist/:id", s.authRequired, s.handleUpdateWishlistItem)
	s.app.Delete("/wishlist/:id", s.authRequired, s.handleRemoveFromWishlist)

	s.app.Post("/order", s.authRequired, s.handlePlaceOrder)
	s.app.Get("/orders/my-orders", s.authRequired, s.handleMyOrders)

	s.app.Post("/review", s.authRequired, s.handleAddReview)

	s.app.Get("/product/random-products", s.handleRandomProducts)
	s.app.Get("/product/search", s.handleSearchProducts)
	s.app.Get("/product/filter", s.handleFilterProducts)
	s.app.Get("/product/brands", s.handleBrands)
	s.app.Get("/product/colours", s.handleColours)
	s.app.Get("/product/sizes", s.handleSizes)
	s.app.Get("/product/category/:id", s.handleProductsByCategory)
	s.app.Get("/product/:id", s.handleGetProduct)
}

// App exposes the fiber app for in-process testing.
func (s *Server) App() *fiber.App { return s.app }

// DB exposes the underlying database for test seeding and assertions.
func (s *Server) DB() *gorm.DB { return s.db }

// Listen serves on the given address until Shutdown.
func (s *Server) Listen(addr string) error {
	log.Printf("stub backend listening on %s", addr)
	return s.app.Listen(addr)
}

// Serve serves on an existing listener; tests use this with a 127.0.0.1:0
// listener to get a real base URL.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server and closes the broker connection if any.
func (s *Server) Shutdown() error {
	if s.mqCloser != nil {
		if err := s.mqCloser(); err != nil {
			log.Printf("error closing broker connection: %v", err)
		}
	}
	return s.app.Shutdown()
}

// ok writes the standard success envelope.
func ok(c *fiber.Ctx, data interface{}, message string) error {
	return c.JSON(fiber.Map{"success": true, "data": data, "message": message})
}

// fail writes the standard error envelope with the given status.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}
