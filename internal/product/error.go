package product

import "vyaha-be/internal/apperror"

var (
	// -- Authorization --
	ErrSellerOnly = apperror.New(apperror.KindForbidden, "only sellers can manage products")
	ErrAdminOnly  = apperror.New(apperror.KindForbidden, "only admins can review products")
	ErrNotOwner   = apperror.New(apperror.KindForbidden, "product belongs to another seller")

	// -- Validation --
	ErrInvalidStatus    = apperror.New(apperror.KindValidation, "status must be approved or rejected")
	ErrNoFieldsToUpdate = apperror.New(apperror.KindValidation, "no fields to update")

	// -- Resource State --
	ErrProductNotFound    = apperror.New(apperror.KindNotFound, "product not found")
	ErrProductUnavailable = apperror.New(apperror.KindUnavailable, "product is not available")
	ErrVersionConflict    = apperror.New(apperror.KindConflict, "product was modified by another request")
)
