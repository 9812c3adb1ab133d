package controller

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"cashlytic-pos/models"
	"cashlytic-pos/repository"
)

// SalespersonController handles HTTP requests for salespersons
type SalespersonController struct {
	repository repository.SalespersonRepositoryInterface
}

// NewSalespersonController creates a new SalespersonController
func NewSalespersonController(repo repository.SalespersonRepositoryInterface) *SalespersonController {
	return &SalespersonController{
		repository: repo,
	}
}

// GetAll handles GET /api/salespersons
func (c *SalespersonController) GetAll(ctx *fiber.Ctx) error {
	logRequest(ctx, "GetAllSalespersons")

	salespersons, err := c.repository.GetAll(ctx.UserContext())
	if err != nil {
		return respondError(ctx, "GetAllSalespersons", err)
	}
	return ctx.JSON(salespersons)
}

// GetByID handles GET /api/salespersons/:id
func (c *SalespersonController) GetByID(ctx *fiber.Ctx) error {
	logRequest(ctx, "GetSalespersonByID")

	salespersonID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "GetSalespersonByID", "invalid salesperson id parameter")
	}

	sp, err := c.repository.GetByID(ctx.UserContext(), salespersonID)
	if err != nil {
		return respondError(ctx, "GetSalespersonByID", err)
	}
	if sp == nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salesperson not found."})
	}
	return ctx.JSON(sp)
}

// Add handles POST /api/salespersons
// Example request:
// {"name": "Nimal Perera", "code": "SP001"}
func (c *SalespersonController) Add(ctx *fiber.Ctx) error {
	logRequest(ctx, "AddSalesperson")

	var req models.SalespersonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "AddSalesperson", "Invalid request body: "+err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if req.Name == "" {
		return badRequest(ctx, "AddSalesperson", "Salesperson name is required.")
	}
	if req.Code == "" {
		return badRequest(ctx, "AddSalesperson", "Salesperson code is required.")
	}

	if err := c.repository.Add(ctx.UserContext(), &req); err != nil {
		return respondError(ctx, "AddSalesperson", err)
	}

	log.Printf("✅ AddSalesperson: code=%s", req.Code)
	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Salesperson added successfully."})
}

// UpdateName handles PUT /api/salespersons/:id. Only the name can change.
func (c *SalespersonController) UpdateName(ctx *fiber.Ctx) error {
	logRequest(ctx, "UpdateSalespersonName")

	salespersonID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "UpdateSalespersonName", "invalid salesperson id parameter")
	}

	var req models.SalespersonRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "UpdateSalespersonName", "Invalid request body: "+err.Error())
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Code = strings.TrimSpace(req.Code)
	if req.Name == "" {
		return badRequest(ctx, "UpdateSalespersonName", "Salesperson name is required.")
	}

	if req.Code != "" {
		existing, err := c.repository.GetByID(ctx.UserContext(), salespersonID)
		if err != nil {
			return respondError(ctx, "UpdateSalespersonName", err)
		}
		if existing == nil {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Salesperson not found."})
		}
		if !strings.EqualFold(existing.Code, req.Code) {
			return badRequest(ctx, "UpdateSalespersonName", "Salesperson code cannot be changed.")
		}
	}

	if err := c.repository.UpdateName(ctx.UserContext(), salespersonID, req.Name); err != nil {
		return respondError(ctx, "UpdateSalespersonName", err)
	}

	log.Printf("✅ UpdateSalespersonName: id=%d", salespersonID)
	return ctx.JSON(fiber.Map{"message": "Salesperson updated successfully."})
}

// Delete handles DELETE /api/salespersons/:id
func (c *SalespersonController) Delete(ctx *fiber.Ctx) error {
	logRequest(ctx, "DeleteSalesperson")

	salespersonID, ok := idParam(ctx, "id")
	if !ok {
		return badRequest(ctx, "DeleteSalesperson", "invalid salesperson id parameter")
	}

	result, err := c.repository.DeleteWithDetails(ctx.UserContext(), salespersonID)
	if err != nil {
		status := statusFor(err)
		log.Printf("❌ DeleteSalesperson: %v", err)
		return ctx.Status(status).JSON(models.DeleteResult{Success: false, Message: messageOf(err)})
	}
	return ctx.JSON(result)
}
