package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/sufra/internal/models"
)

const (
	minItemQuantity = 1
	maxItemQuantity = 100
	maxNoteLength   = 1000
)

// FieldError points one validation problem at the request field that caused
// it. Option problems are keyed items.{index}.options.{groupID} so a client
// can render every error in one round trip.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the full collection of problems found in a cart.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fe.Field + ": " + fe.Message
	}
	return "cart validation failed: " + strings.Join(msgs, "; ")
}

func (v *ValidationErrors) add(field, message string) {
	*v = append(*v, FieldError{Field: field, Message: message})
}

// AsValidationErrors unwraps a ValidationErrors collection from err.
func AsValidationErrors(err error) (ValidationErrors, bool) {
	var verrs ValidationErrors
	if errors.As(err, &verrs) {
		return verrs, true
	}
	return nil, false
}

// CartRequest is a raw cart as submitted by a client. Nothing in it is
// trusted: products, options and every price are re-resolved from the
// database during validation.
type CartRequest struct {
	BranchID         uuid.UUID
	PaymentMethod    string
	PaymentReference string
	PaymentProvider  string
	CustomerNote     string
	Items            []CartItemRequest
}

// CartItemRequest is one raw cart line. SelectedOptions maps an option-group
// ID to the option IDs chosen from that group.
type CartItemRequest struct {
	ProductID       uuid.UUID
	Quantity        int
	SelectedOptions map[uuid.UUID][]uuid.UUID
}

// HydratedCart is a cart whose IDs have been resolved to live, validated
// catalog rows.
type HydratedCart struct {
	Branch           models.Branch
	PaymentMethod    models.PaymentMethod
	PaymentReference string
	PaymentProvider  string
	CustomerNote     string
	Items            []HydratedItem
}

// HydratedItem is one validated cart line with its catalog entities attached.
type HydratedItem struct {
	Product    models.Product
	Quantity   int
	Selections []Selection
}

// Selection is one chosen option together with the group it was chosen from.
type Selection struct {
	Group  models.ProductOptionGroup
	Option models.ProductOption
}

// CartValidator re-validates raw carts against the catalog. It is read-only;
// run it on the order transaction so pricing sees the same catalog state.
type CartValidator struct {
	db *gorm.DB
}

// NewCartValidator constructs a CartValidator over the given connection or
// transaction.
func NewCartValidator(db *gorm.DB) *CartValidator {
	return &CartValidator{db: db}
}

// Validate checks the whole cart and returns either a hydrated cart or a
// ValidationErrors collection. Errors are gathered, not short-circuited,
// except for the branch check: an inactive or unknown branch rejects the cart
// before any product validation.
func (v *CartValidator) Validate(req CartRequest) (*HydratedCart, error) {
	var branch models.Branch
	if err := v.db.Where("id = ? AND is_active = ?", req.BranchID, true).First(&branch).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ValidationErrors{{Field: "branch_id", Message: "The selected branch is not accepting orders."}}
		}
		return nil, fmt.Errorf("load branch: %w", err)
	}

	var verrs ValidationErrors

	method, ok := models.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		verrs.add("payment_method", "The selected payment method is invalid.")
	}

	if len(req.CustomerNote) > maxNoteLength {
		verrs.add("customer_note", "Customer note cannot exceed 1000 characters.")
	}

	if len(req.Items) == 0 {
		verrs.add("items", "Please add at least one product to your order.")
		return nil, verrs
	}

	products, err := v.loadProducts(req)
	if err != nil {
		return nil, err
	}

	cart := &HydratedCart{
		Branch:           branch,
		PaymentMethod:    method,
		PaymentReference: req.PaymentReference,
		PaymentProvider:  req.PaymentProvider,
		CustomerNote:     req.CustomerNote,
	}

	for i, item := range req.Items {
		if item.Quantity < minItemQuantity || item.Quantity > maxItemQuantity {
			verrs.add(fmt.Sprintf("items.%d.quantity", i), "The quantity for each product must be between 1 and 100.")
		}

		product, ok := products[item.ProductID]
		if !ok {
			verrs.add(fmt.Sprintf("items.%d.product_id", i), "The selected product is not available.")
			continue
		}

		selections := v.validateItemOptions(i, product, item.SelectedOptions, &verrs)

		cart.Items = append(cart.Items, HydratedItem{
			Product:    product,
			Quantity:   item.Quantity,
			Selections: selections,
		})
	}

	if len(verrs) > 0 {
		return nil, verrs
	}
	return cart, nil
}

// loadProducts fetches every distinct active product referenced by the cart,
// eager-loading option groups and their active options.
func (v *CartValidator) loadProducts(req CartRequest) (map[uuid.UUID]models.Product, error) {
	seen := make(map[uuid.UUID]struct{}, len(req.Items))
	ids := make([]uuid.UUID, 0, len(req.Items))
	for _, item := range req.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := v.db.
		Preload("OptionGroups").
		Preload("OptionGroups.Options", "is_active = ?", true).
		Where("id IN ? AND is_active = ?", ids, true).
		Find(&products).Error; err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	byID := make(map[uuid.UUID]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return byID, nil
}

// validateItemOptions resolves one item's submitted options against the
// product's actual groups. Submitted option IDs are intersected with the
// product's known active options; IDs outside a group it was submitted under
// raise an error, while group-level rules (required, single-select,
// ownership) are checked for every group.
func (v *CartValidator) validateItemOptions(index int, product models.Product, submitted map[uuid.UUID][]uuid.UUID, verrs *ValidationErrors) []Selection {
	groupsByID := make(map[uuid.UUID]models.ProductOptionGroup, len(product.OptionGroups))
	for _, g := range product.OptionGroups {
		groupsByID[g.ID] = g
	}

	// Submitted groups that do not belong to the product.
	for groupID := range submitted {
		if _, ok := groupsByID[groupID]; !ok {
			verrs.add(fmt.Sprintf("items.%d.options.%s", index, groupID),
				"The selected option group does not belong to this product.")
		}
	}

	var selections []Selection
	for _, group := range product.OptionGroups {
		field := fmt.Sprintf("items.%d.options.%s", index, group.ID)

		optionsByID := make(map[uuid.UUID]models.ProductOption, len(group.Options))
		for _, opt := range group.Options {
			optionsByID[opt.ID] = opt
		}

		// Intersection filter: keep only IDs naming an active option of this
		// group, deduplicated.
		var selected []models.ProductOption
		invalid := false
		picked := make(map[uuid.UUID]struct{})
		for _, optionID := range submitted[group.ID] {
			if _, dup := picked[optionID]; dup {
				continue
			}
			picked[optionID] = struct{}{}
			opt, ok := optionsByID[optionID]
			if !ok {
				invalid = true
				continue
			}
			selected = append(selected, opt)
		}

		if invalid {
			verrs.add(field, "Some selected options are invalid or unavailable for this group.")
		}

		if group.IsRequired && len(selected) == 0 {
			verrs.add(field, fmt.Sprintf("The %s option group is required.", group.NameEn))
			continue
		}

		if group.Type == models.SingleSelect && len(selected) > 1 {
			verrs.add(field, fmt.Sprintf("The %s option group allows only one selection.", group.NameEn))
			continue
		}

		for _, opt := range selected {
			selections = append(selections, Selection{Group: group, Option: opt})
		}
	}

	return selections
}
