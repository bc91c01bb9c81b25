package handlers

import (
	stderrors "errors"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/saga"
	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/errors"
)

// translateError maps domain and saga errors to the standard response shape.
// Unknown errors come back as InternalError so nothing leaks raw.
func translateError(err error, productID, orderID string) *errors.StandardError {
	var pe *saga.ProductError
	if stderrors.As(err, &pe) {
		productID = pe.ProductID
	}

	switch {
	case stderrors.Is(err, domain.ErrProductNotFound):
		return errors.NewProductNotFound(productID)
	case stderrors.Is(err, domain.ErrOrderNotFound):
		return errors.NewOrderNotFound(orderID)
	case stderrors.Is(err, domain.ErrInsufficientStock):
		return errors.NewStandardError("InsufficientStock", "insufficient stock available", "Product ID: "+productID)
	case stderrors.Is(err, domain.ErrInsufficientReserved):
		return errors.NewStandardError("InsufficientReserved", "insufficient reserved stock", "Product ID: "+productID)
	case stderrors.Is(err, domain.ErrInvalidQuantity):
		return errors.NewInvalidInput("quantity must be positive", "Field: quantity")
	case stderrors.Is(err, domain.ErrInvalidTransition):
		return errors.NewStandardError("InvalidTransition", "illegal order status transition", "Order ID: "+orderID)
	case stderrors.Is(err, domain.ErrOrderConflict):
		return errors.NewStandardError("Conflict", "order was modified concurrently, retry the request", "Order ID: "+orderID)
	case stderrors.Is(err, domain.ErrEmptyOrder):
		return errors.NewInvalidInput("order must contain at least one item", "Field: items")
	case stderrors.Is(err, domain.ErrIncompleteAddress):
		return errors.NewInvalidInput("shipping address is incomplete", "Field: shippingAddress")
	case stderrors.Is(err, domain.ErrMissingUser):
		return errors.NewInvalidInput("order requires a user", "Field: userId")
	case stderrors.Is(err, saga.ErrCatalogUnavailable):
		return errors.NewDependencyUnavailable("product catalog", err)
	default:
		return errors.NewInternalError("operation failed", err)
	}
}
