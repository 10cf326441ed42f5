package handlers

import (
	"errors"
	"log"
	"strconv"

	"northwind/internal/models"
	"northwind/internal/repositories"
	"northwind/internal/services"

	"github.com/gofiber/fiber/v2"
)

// Response messages with fixed wording.
const (
	MsgForeignKey       = "Foreign key constraint error: Category ID or Supplier ID not found"
	MsgProductsNotFound = "Products not found"
	MsgProductNotFound  = "Product not found"
)

// ProductHandler handles HTTP requests for products. Every route runs behind
// the authentication handler given to NewProductHandler.
type ProductHandler struct {
	service      *services.ProductService
	authenticate fiber.Handler
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, authenticate fiber.Handler) *ProductHandler {
	return &ProductHandler{
		service:      service,
		authenticate: authenticate,
	}
}

// RegisterRoutes registers the product routes under /products.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products", h.authenticate)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleCreateProduct creates a new product. 201 with the stored row, or 400.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	req, err := parseProductRequest(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.CreateProduct(req)
	if err != nil {
		log.Printf("Error creating product: %v", err)
		return writeErrorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleGetProducts lists every product. An empty table answers 404.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return errorResponse(c, fiber.StatusInternalServerError, causeMessage(err))
	}
	if len(products) == 0 {
		return errorResponse(c, fiber.StatusNotFound, MsgProductsNotFound)
	}
	return c.JSON(products)
}

// HandleGetProductByID returns one product. Every failure, a missing row
// included, answers 500.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return errorResponse(c, fiber.StatusInternalServerError, MsgProductNotFound)
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return errorResponse(c, fiber.StatusInternalServerError, MsgProductNotFound)
		}
		log.Printf("Error getting product by ID %d: %v", id, err)
		return errorResponse(c, fiber.StatusInternalServerError, causeMessage(err))
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces all mutable fields of a product. 200 or 400.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, MsgProductNotFound)
	}

	req, err := parseProductRequest(c)
	if err != nil {
		return errorResponse(c, fiber.StatusBadRequest, err.Error())
	}

	product, err := h.service.UpdateProduct(id, req)
	if err != nil {
		log.Printf("Error updating product %d: %v", id, err)
		return writeErrorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product. 204 with no body, or 400.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok := productID(c)
	if !ok {
		return errorResponse(c, fiber.StatusBadRequest, MsgProductNotFound)
	}

	if err := h.service.DeleteProduct(id); err != nil {
		log.Printf("Error deleting product %d: %v", id, err)
		return writeErrorResponse(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// writeErrorResponse answers 400 for write failures.
func writeErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrForeignKeyViolation):
		return errorResponse(c, fiber.StatusBadRequest, MsgForeignKey)
	case errors.Is(err, repositories.ErrProductNotFound):
		return errorResponse(c, fiber.StatusBadRequest, MsgProductNotFound)
	default:
		return errorResponse(c, fiber.StatusBadRequest, causeMessage(err))
	}
}

// causeMessage returns the message of the innermost error in err's chain,
// which is the driver's own text for persistence failures.
func causeMessage(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}

// parseProductRequest decodes the request body. An empty body decodes as {}.
func parseProductRequest(c *fiber.Ctx) (models.ProductRequest, error) {
	var req models.ProductRequest
	if len(c.Body()) == 0 {
		return req, nil
	}
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}
	return req, nil
}

func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"message": message})
}

// productID parses the :id path parameter. Ids that cannot name a row
// report ok == false.
func productID(c *fiber.Ctx) (uint, bool) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
