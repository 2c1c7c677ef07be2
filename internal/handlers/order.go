package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/middleware"
	"github.com/example/sufra/internal/models"
	"github.com/example/sufra/internal/services"
	"github.com/example/sufra/internal/utils"
)

// OrderHandler manages order endpoints.
type OrderHandler struct {
	db  *gorm.DB
	svc *services.OrderService
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(db *gorm.DB, svc *services.OrderService) *OrderHandler {
	return &OrderHandler{db: db, svc: svc}
}

type createOrderItemRequest struct {
	ProductID       string              `json:"product_id"`
	Quantity        int                 `json:"quantity"`
	SelectedOptions map[string][]string `json:"selected_options"`
}

type createOrderRequest struct {
	BranchID         string                   `json:"branch_id"`
	PaymentMethod    string                   `json:"payment_method"`
	PaymentReference string                   `json:"payment_reference"`
	PaymentProvider  string                   `json:"payment_provider"`
	CustomerNote     string                   `json:"customer_note"`
	Items            []createOrderItemRequest `json:"items"`
}

// CreateOrder places an order. Authentication is optional; guests order with
// a nil user. All prices are recomputed server-side.
func (h *OrderHandler) CreateOrder(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	cartReq, err := toCartRequest(req)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	var userID *uuid.UUID
	if id, ok := middleware.GetCurrentUserID(c); ok {
		userID = &id
	}

	order, err := h.svc.Create(c.Context(), userID, cartReq)
	if err != nil {
		if verrs, ok := services.AsValidationErrors(err); ok {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"success": false,
				"errors":  verrs,
			})
		}
		utils.ErrorLogger.WithError(err).Error("order creation failed")
		return fiber.NewError(fiber.StatusInternalServerError, "failed to create order")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    order,
	})
}

func toCartRequest(req createOrderRequest) (services.CartRequest, error) {
	branchID, err := uuid.Parse(req.BranchID)
	if err != nil {
		return services.CartRequest{}, fiber.NewError(fiber.StatusBadRequest, "invalid branch_id")
	}

	out := services.CartRequest{
		BranchID:         branchID,
		PaymentMethod:    req.PaymentMethod,
		PaymentReference: req.PaymentReference,
		PaymentProvider:  req.PaymentProvider,
		CustomerNote:     req.CustomerNote,
	}

	for _, item := range req.Items {
		productID, err := uuid.Parse(item.ProductID)
		if err != nil {
			return services.CartRequest{}, fiber.NewError(fiber.StatusBadRequest, "invalid product_id")
		}

		selected := make(map[uuid.UUID][]uuid.UUID, len(item.SelectedOptions))
		for rawGroupID, rawOptionIDs := range item.SelectedOptions {
			groupID, err := uuid.Parse(rawGroupID)
			if err != nil {
				return services.CartRequest{}, fiber.NewError(fiber.StatusBadRequest, "invalid option group id")
			}
			for _, rawOptionID := range rawOptionIDs {
				optionID, err := uuid.Parse(rawOptionID)
				if err != nil {
					return services.CartRequest{}, fiber.NewError(fiber.StatusBadRequest, "invalid option id")
				}
				selected[groupID] = append(selected[groupID], optionID)
			}
		}

		out.Items = append(out.Items, services.CartItemRequest{
			ProductID:       productID,
			Quantity:        item.Quantity,
			SelectedOptions: selected,
		})
	}

	return out, nil
}

// ListOrders returns orders for the authenticated user.
func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Order{}).Where("user_id = ?", userID)

	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var orders []models.Order
	if err := query.Preload("Items.Options").
		Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&orders).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    orders,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}

// GetOrder returns a single order owned by the authenticated user.
func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	userID, ok := middleware.GetCurrentUserID(c)
	if !ok {
		return fiber.NewError(fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var order models.Order
	if err := h.db.Preload("Items.Options").Preload("Branch").
		First(&order, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus moves an order through its lifecycle. Staff only. Transition
// rules live on the model; an illegal move returns 409 without any change.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	next, ok := models.ParseOrderStatus(req.Status)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "invalid status")
	}

	var order models.Order
	if err := h.db.First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "order not found")
		}
		return err
	}

	if err := order.TransitionTo(next, time.Now()); err != nil {
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}

	if err := h.db.Model(&order).Updates(map[string]interface{}{
		"status":   order.Status,
		"ready_at": order.ReadyAt,
	}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": order})
}
