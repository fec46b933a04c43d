package order

import (
	"strings"

	"vyaha-be/internal/apperror"
)

// Fulfillment moves one step at a time:
//
//	pending ─► processing ─► shipped ─► delivered
//
// and any non-terminal state may be cancelled.
var nextStatus = map[Status]Status{
	StatusPending:    StatusProcessing,
	StatusProcessing: StatusShipped,
	StatusShipped:    StatusDelivered,
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

func (s Status) CanTransitionTo(to Status) bool {
	if s.Terminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return nextStatus[s] == to
}

// ParsePaymentMethod defaults to cash on delivery.
func ParsePaymentMethod(raw string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(strings.TrimSpace(raw))); m {
	case "":
		return PaymentCOD, nil
	case PaymentCOD, PaymentCard, PaymentUPI:
		return m, nil
	}
	return "", ErrInvalidPaymentMethod
}

// Validate reports every blank field at once.
func (a ShippingAddress) Validate() error {
	fields := map[string]string{}

	check := func(name, value string) {
		if strings.TrimSpace(value) == "" {
			fields[name] = "required"
		}
	}
	check("full_name", a.FullName)
	check("phone", a.Phone)
	check("street", a.Street)
	check("city", a.City)
	check("state", a.State)
	check("zip", a.Zip)

	if len(fields) == 0 {
		return nil
	}
	return apperror.Validation("shipping address is incomplete", fields)
}

func (o *Order) HasSeller(sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}
