package order

import "vyaha-be/internal/apperror"

var (
	// -- Authorization --
	ErrCustomerOnly    = apperror.New(apperror.KindForbidden, "only customers can place orders")
	ErrAdminOnly       = apperror.New(apperror.KindForbidden, "only admins can list all orders")
	ErrSellerOnly      = apperror.New(apperror.KindForbidden, "only sellers can list their orders")
	ErrFulfillmentRole = apperror.New(apperror.KindForbidden, "only admins or sellers can update order status")
	ErrNotSellerOrder  = apperror.New(apperror.KindForbidden, "order has no items from this seller")

	// -- Validation --
	ErrCartEmpty            = apperror.New(apperror.KindValidation, "cart is empty")
	ErrInvalidStatus        = apperror.New(apperror.KindValidation, "invalid order status")
	ErrInvalidPaymentMethod = apperror.New(apperror.KindValidation, "payment method must be one of cod, card, upi")

	// -- Resource State --
	ErrOrderNotFound     = apperror.New(apperror.KindNotFound, "order not found")
	ErrNoValidProducts   = apperror.New(apperror.KindUnavailable, "no valid products in cart")
	ErrInvalidTransition = apperror.New(apperror.KindConflict, "order cannot move to that status")
	ErrStatusConflict    = apperror.New(apperror.KindConflict, "order status was changed by another request")
)
