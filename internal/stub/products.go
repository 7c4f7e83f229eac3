package stub

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"storefront/internal/models"
)

const randomProductCount = 12

func (s *Server) handleRandomProducts(c *fiber.Ctx) error {
	var products []models.Product
	// RANDOM() works on both SQLite and Postgres.
	err := s.db.Preload("Sizes").Order("RANDOM()").Limit(randomProductCount).Find(&products).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load products")
	}
	return ok(c, products, "")
}

func (s *Server) handleGetProduct(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid product id")
	}

	var product models.Product
	if err := s.db.Preload("Sizes").First(&product, productID).Error; err != nil {
		if notFound(err) {
			return fail(c, fiber.StatusNotFound, "Product not found")
		}
		return fail(c, fiber.StatusInternalServerError, "Could not load product")
	}
	return ok(c, product, "")
}

func (s *Server) handleProductsByCategory(c *fiber.Ctx) error {
	categoryID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid category id")
	}

	var products []models.Product
	if err := s.db.Preload("Sizes").Where("category_id = ?", categoryID).Find(&products).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load products")
	}
	return ok(c, products, "")
}

func (s *Server) handleSearchProducts(c *fiber.Ctx) error {
	queryText := c.Query("query")
	pattern := "%" + queryText + "%"

	var products []models.Product
	err := s.db.Preload("Sizes").
		Where("name LIKE ? OR description LIKE ?", pattern, pattern).
		Find(&products).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not search products")
	}
	return ok(c, products, "")
}

func (s *Server) handleFilterProducts(c *fiber.Ctx) error {
	query := s.db.Preload("Sizes").Model(&models.Product{})

	if brand := c.Query("brand"); brand != "" {
		query = query.Where("brand = ?", brand)
	}
	if colour := c.Query("colour"); colour != "" {
		query = query.Where("colour = ?", colour)
	}
	if size := c.Query("size"); size != "" {
		query = query.Where("id IN (?)",
			s.db.Model(&models.ProductSize{}).Select("product_id").Where("size = ?", size))
	}
	if minPrice := c.QueryFloat("minPrice"); minPrice > 0 {
		query = query.Where("price >= ?", minPrice)
	}
	if maxPrice := c.QueryFloat("maxPrice"); maxPrice > 0 {
		query = query.Where("price <= ?", maxPrice)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not filter products")
	}
	return ok(c, products, "")
}

func (s *Server) handleBrands(c *fiber.Ctx) error {
	return s.distinctColumn(c, &models.Product{}, "brand")
}

func (s *Server) handleColours(c *fiber.Ctx) error {
	return s.distinctColumn(c, &models.Product{}, "colour")
}

func (s *Server) handleSizes(c *fiber.Ctx) error {
	return s.distinctColumn(c, &models.ProductSize{}, "size")
}

func (s *Server) distinctColumn(c *fiber.Ctx, model interface{}, column string) error {
	var values []string
	err := s.db.Model(model).Distinct(column).
		Where(column+" <> ''").Order(column).Pluck(column, &values).Error
	if err != nil {
		return fail(c, fiber.StatusInternalServerError, "Could not load "+column+"s")
	}
	return ok(c, values, "")
}
