package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/models"
)

// BranchHandler manages branch resources.
type BranchHandler struct {
	db *gorm.DB
}

// NewBranchHandler constructs BranchHandler.
func NewBranchHandler(db *gorm.DB) *BranchHandler {
	return &BranchHandler{db: db}
}

// ListBranches returns branches currently accepting orders.
func (h *BranchHandler) ListBranches(c *fiber.Ctx) error {
	var branches []models.Branch
	if err := h.db.Where("is_active = ?", true).
		Order("created_at asc").
		Find(&branches).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": branches})
}

// GetBranch returns a single active branch.
func (h *BranchHandler) GetBranch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var branch models.Branch
	if err := h.db.First(&branch, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "branch not found")
		}
		return err
	}

	if !branch.IsActive {
		return fiber.NewError(fiber.StatusNotFound, "branch not found")
	}

	return c.JSON(fiber.Map{"success": true, "data": branch})
}

// CreateBranch persists a new branch.
func (h *BranchHandler) CreateBranch(c *fiber.Ctx) error {
	var payload models.Branch
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateBranch updates an existing branch, including toggling is_active.
func (h *BranchHandler) UpdateBranch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var branch models.Branch
	if err := h.db.First(&branch, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "branch not found")
		}
		return err
	}

	var payload models.Branch
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = branch.ID
	if err := h.db.Model(&branch).Select("*").Omit("id", "created_at").
		Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": branch})
}

// DeleteBranch removes a branch by ID.
func (h *BranchHandler) DeleteBranch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Branch{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
