package handlers

import (
	"errors"
	"fmt"
	"log"

	"inventory/internal/models"
	"inventory/internal/repositories"
	"inventory/internal/services"
	"inventory/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductRequest is the request body for creating or replacing a product.
// Price is a pointer so an absent field fails the presence check while an
// explicit zero price stays valid.
type ProductRequest struct {
	Name  string           `json:"name" validate:"required,min=1,max=100"`
	SKU   string           `json:"sku" validate:"required,min=1,max=50"`
	Price *decimal.Decimal `json:"price" validate:"required,gte=0"`
	Stock int              `json:"stock" validate:"gte=0"`
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validation.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
// Mutations use POST verbs on action paths, and update answers 201;
// existing clients depend on both.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/create", h.HandleCreateProduct)
	productRoutes.Post("/update/:id", h.HandleUpdateProduct)
	productRoutes.Post("/delete/:id", h.HandleDeleteProduct)
}

// HandleListProducts retrieves one page of products. Malformed page or
// page_size query parameters coerce to defaults; oversized page_size is
// clamped by the service.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", services.DefaultPageSize)

	productPage, err := h.service.ListProducts(page, pageSize)
	if err != nil {
		log.Printf("Error listing products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(productPage)
}

// HandleCreateProduct creates a new product from the request payload.
// Identifier and timestamp are store-assigned, never client-supplied.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errs := h.validate.Check(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	product := models.Product{
		Name:  req.Name,
		SKU:   req.SKU,
		Price: *req.Price,
		Stock: req.Stock,
	}
	if err := h.service.CreateProduct(&product); err != nil {
		return h.respondProductWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct overwrites every writable field of an existing
// product with the request payload.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	existing, err := h.service.GetProductByID(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		log.Printf("Error fetching product %s for update: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}

	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update product body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if errs := h.validate.Check(req); errs != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errs,
		})
	}

	existing.Name = req.Name
	existing.SKU = req.SKU
	existing.Price = *req.Price
	existing.Stock = req.Stock

	if err := h.service.UpdateProduct(existing); err != nil {
		return h.respondProductWriteError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(existing)
}

// HandleDeleteProduct deletes a product and answers with a snapshot of
// the record taken before deletion. Dependent orders are removed by the
// store's cascade.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	snapshot, err := h.service.DeleteProduct(productID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		log.Printf("Error deleting product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Product deleted successfully",
		"product": snapshot,
	})
}

// respondProductWriteError maps repository errors from create/update to
// the API's error taxonomy.
func (h *ProductHandler) respondProductWriteError(c *fiber.Ctx, err error) error {
	if errors.Is(err, repositories.ErrDuplicateSKU) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  fiber.Map{"sku": "sku already exists"},
		})
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	}
	log.Printf("Error writing product: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Could not save product",
		"error":   err.Error(),
	})
}
