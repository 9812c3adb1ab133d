package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cashlytic-pos/models"
	"cashlytic-pos/repository"
)

// ProductController handles HTTP requests for products
type ProductController struct {
	repository repository.ProductRepositoryInterface
}

// NewProductController creates a new ProductController
func NewProductController(repo repository.ProductRepositoryInterface) *ProductController {
	return &ProductController{
		repository: repo,
	}
}

// GetAll handles GET /api/products
func (c *ProductController) GetAll(ctx *fiber.Ctx) error {
	logRequest(ctx, "GetAllProducts")

	products, err := c.repository.GetAll(ctx.UserContext())
	if err != nil {
		return respondError(ctx, "GetAllProducts", err)
	}
	return ctx.JSON(products)
}

// GetByID handles GET /api/products/:id
func (c *ProductController) GetByID(ctx *fiber.Ctx) error {
	logRequest(ctx, "GetProductByID")

	productID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "GetProductByID", "invalid product id parameter")
	}

	product, err := c.repository.GetByID(ctx.UserContext(), productID)
	if err != nil {
		return respondError(ctx, "GetProductByID", err)
	}
	if product == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found."})
	}
	return ctx.JSON(product)
}

// Add handles POST /api/products
// Example request:
// {"code": "NB-A5", "name": "Notebook A5", "costPrice": 60, "retailPrice": 100}
func (c *ProductController) Add(ctx *fiber.Ctx) error {
	logRequest(ctx, "AddProduct")

	var req models.ProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "AddProduct", "Invalid request body: "+err.Error())
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if msg := validateProduct(&req); msg != "" {
		return badRequest(ctx, "AddProduct", msg)
	}

	if err := c.repository.Add(ctx.UserContext(), &req); err != nil {
		return respondError(ctx, "AddProduct", err)
	}

	log.Printf("✅ AddProduct: code=%s", req.Code)
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product added successfully."})
}

// Update handles PUT /api/products/:id. The product code cannot change.
func (c *ProductController) Update(ctx *fiber.Ctx) error {
	logRequest(ctx, "UpdateProduct")

	productID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "UpdateProduct", "invalid product id parameter")
	}

	var req models.ProductRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "UpdateProduct", "Invalid request body: "+err.Error())
	}
	req.Code = strings.TrimSpace(req.Code)
	req.Name = strings.TrimSpace(req.Name)
	if msg := validateProduct(&req); msg != "" {
		return badRequest(ctx, "UpdateProduct", msg)
	}

	existing, err := c.repository.GetByID(ctx.UserContext(), productID)
	if err != nil {
		return respondError(ctx, "UpdateProduct", err)
	}
	if existing == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found."})
	}
	if !strings.EqualFold(existing.Code, req.Code) {
		return badRequest(ctx, "UpdateProduct", "Product code cannot be changed.")
	}

	if err := c.repository.Update(ctx.UserContext(), productID, &req); err != nil {
		return respondError(ctx, "UpdateProduct", err)
	}

	log.Printf("✅ UpdateProduct: id=%d", productID)
	return ctx.JSON(fiber.Map{"message": "Product updated successfully."})
}

// Delete handles DELETE /api/products/:id
func (c *ProductController) Delete(ctx *fiber.Ctx) error {
	logRequest(ctx, "DeleteProduct")

	productID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "DeleteProduct", "invalid product id parameter")
	}

	result, err := c.repository.DeleteWithDetails(ctx.UserContext(), productID)
	if err != nil {
		status := statusFor(err)
		log.Printf("❌ DeleteProduct: %v", err)
		return ctx.Status(status).JSON(models.DeleteResult{Success: false, Message: messageOf(err)})
	}
	return ctx.JSON(result)
}

func validateProduct(req *models.ProductRequest) string {
	switch {
	case req.Code == "":
		return "Product code is required."
	case req.Name == "":
		return "Product name is required."
	case req.CostPrice.IsNegative():
		return "Cost price cannot be negative."
	case req.RetailPrice.IsNegative():
		return "Retail price cannot be negative."
	case !req.RetailPrice.GreaterThan(req.CostPrice):
		return "Retail price must be greater than cost price."
	}
	return ""
}
