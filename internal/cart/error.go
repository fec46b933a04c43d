package cart

import "vyaha-be/internal/apperror"

var (
	// -- Authorization --
	ErrCustomerOnly = apperror.New(apperror.KindForbidden, "only customers have a cart")

	// -- Validation & Input --
	ErrInvalidQuantity  = apperror.New(apperror.KindValidation, "quantity must be at least 1")
	ErrMissingProduct   = apperror.New(apperror.KindValidation, "product_id is required")
	ErrQuantityTooLarge = apperror.Validation("quantity too large", map[string]string{"quantity": "must be at most 999"})

	// -- Resource State --
	ErrCartItemNotFound   = apperror.New(apperror.KindNotFound, "cart item not found")
	ErrProductNotFound    = apperror.New(apperror.KindNotFound, "product not found")
	ErrProductUnavailable = apperror.New(apperror.KindUnavailable, "product unavailable")
	ErrCartConflict       = apperror.New(apperror.KindConflict, "cart was modified by another request")
)
