package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/models"
	"github.com/example/sufra/internal/utils"
)

// maxOrderNumberRetries bounds retries when two concurrent creations draw the
// same order number.
const maxOrderNumberRetries = 3

// OrderNotifier dispatches a new-order notification to branch staff.
// Satisfied by *TelegramService.
type OrderNotifier interface {
	NotifyNewOrder(n OrderNotification) error
}

// OrderService owns the order-creation pipeline: validate, price, persist,
// snapshot, notify.
type OrderService struct {
	db       *gorm.DB
	notifier OrderNotifier
}

// NewOrderService constructs an OrderService. notifier may be nil.
func NewOrderService(db *gorm.DB, notifier OrderNotifier) *OrderService {
	return &OrderService{db: db, notifier: notifier}
}

// Create runs the whole pipeline inside one transaction. Validation reads the
// catalog on the same transaction that writes the order, so the priced
// snapshot reflects exactly the rows that were validated. Any failure rolls
// back everything; no partial order is ever visible.
//
// Retries on order-number unique violations, which gorm surfaces as
// ErrDuplicatedKey with TranslateError enabled.
func (s *OrderService) Create(ctx context.Context, userID *uuid.UUID, req CartRequest) (*models.Order, error) {
	var lastErr error
	for attempt := 0; attempt < maxOrderNumberRetries; attempt++ {
		order, err := s.createTx(ctx, userID, req)
		if err == nil {
			s.dispatchNotification(order)
			return order, nil
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			lastErr = err
			continue
		}
		return nil, err
	}
	return nil, lastErr
}

func (s *OrderService) createTx(ctx context.Context, userID *uuid.UUID, req CartRequest) (*models.Order, error) {
	var created models.Order

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cart, err := NewCartValidator(tx).Validate(req)
		if err != nil {
			return err
		}

		pricing := PriceCart(cart)

		order := models.Order{
			OrderNumber:              generateOrderNumber(time.Now()),
			UserID:                   userID,
			BranchID:                 cart.Branch.ID,
			Status:                   models.OrderPending,
			TotalPrice:               pricing.TotalPrice,
			EstimatedPreparationTime: pricing.PreparationMinutes,
			PaymentMethod:            cart.PaymentMethod,
			PaymentReference:         cart.PaymentReference,
			PaymentProvider:          cart.PaymentProvider,
			CustomerNote:             cart.CustomerNote,
		}
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for i, item := range cart.Items {
			productID := item.Product.ID
			orderItem := models.OrderItem{
				OrderID:          order.ID,
				ProductID:        &productID,
				ProductName:      item.Product.NameEn,
				ProductBasePrice: item.Product.Price,
				Quantity:         item.Quantity,
				ItemTotalPrice:   pricing.Items[i].LineTotal,
			}
			if err := tx.Create(&orderItem).Error; err != nil {
				return fmt.Errorf("create order item: %w", err)
			}

			if len(item.Selections) == 0 {
				continue
			}
			options := make([]models.OrderItemOption, 0, len(item.Selections))
			for _, sel := range item.Selections {
				groupID := sel.Group.ID
				optionID := sel.Option.ID
				options = append(options, models.OrderItemOption{
					OrderItemID:          orderItem.ID,
					ProductOptionGroupID: &groupID,
					ProductOptionID:      &optionID,
					GroupName:            sel.Group.NameEn,
					GroupType:            sel.Group.Type,
					GroupIsRequired:      sel.Group.IsRequired,
					OptionName:           sel.Option.NameEn,
					OptionExtraPrice:     sel.Option.ExtraPrice,
				})
			}
			if err := tx.Create(&options).Error; err != nil {
				return fmt.Errorf("create order item options: %w", err)
			}
		}

		// Reload the aggregate on the same transaction and freeze it as the
		// order snapshot. This is the durable historical record, independent
		// of later catalog mutation or deletion.
		if err := tx.
			Preload("Items.Options").
			Preload("Branch").
			First(&created, "id = ?", order.ID).Error; err != nil {
			return fmt.Errorf("reload order: %w", err)
		}

		snapshot, err := json.Marshal(&created)
		if err != nil {
			return fmt.Errorf("marshal order snapshot: %w", err)
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).
			Update("order_snapshot", snapshot).Error; err != nil {
			return fmt.Errorf("store order snapshot: %w", err)
		}
		created.OrderSnapshot = snapshot

		return nil
	})
	if err != nil {
		if _, ok := AsValidationErrors(err); ok {
			return nil, err
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.ErrorLogger.WithError(err).Error("order transaction failed")
		}
		return nil, err
	}

	return &created, nil
}

// dispatchNotification informs branch staff after commit. Fire-and-forget:
// a notification failure is logged and never affects the created order.
func (s *OrderService) dispatchNotification(order *models.Order) {
	if s.notifier == nil {
		return
	}

	n := buildOrderNotification(order)
	go func() {
		if err := s.notifier.NotifyNewOrder(n); err != nil {
			utils.ErrorLogger.WithError(err).
				WithField("order_number", n.OrderNumber).
				Error("new-order notification failed")
		}
	}()
}

func buildOrderNotification(order *models.Order) OrderNotification {
	n := OrderNotification{
		OrderNumber:        order.OrderNumber,
		Status:             string(order.Status),
		PaymentMethod:      string(order.PaymentMethod),
		TotalPrice:         order.TotalPrice.StringFixed(2),
		PreparationMinutes: order.EstimatedPreparationTime,
	}
	if order.Branch != nil {
		n.BranchName = order.Branch.NameEn
		n.StaffChatID = order.Branch.StaffChatID
	}
	for _, item := range order.Items {
		in := OrderItemNotification{
			Name:      item.ProductName,
			Quantity:  item.Quantity,
			LineTotal: item.ItemTotalPrice.StringFixed(2),
		}
		for _, opt := range item.Options {
			in.Options = append(in.Options, opt.OptionName)
		}
		n.Items = append(n.Items, in)
	}
	return n
}

// generateOrderNumber returns a unique, human-scannable order number:
// ORD-<date>-<10 hex chars from a fresh UUID>. No shared counter, so
// concurrent creations need no coordination; the unique index plus the retry
// in Create covers the astronomically unlikely collision.
func generateOrderNumber(now time.Time) string {
	id := uuid.New()
	return fmt.Sprintf("ORD-%s-%X", now.Format("20060102"), id[:5])
}
