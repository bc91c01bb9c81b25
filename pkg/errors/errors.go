package errors

import (
	"fmt"
	"net/http"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "InvalidInput", "ProductNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, balances, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case "InvalidInput", "ValidationError":
		return http.StatusBadRequest
	case "ProductNotFound", "OrderNotFound", "ResourceNotFound":
		return http.StatusNotFound
	case "InsufficientStock", "InsufficientReserved", "InvalidTransition", "Conflict":
		return http.StatusConflict
	case "Unauthorized":
		return http.StatusUnauthorized
	case "Forbidden":
		return http.StatusForbidden
	case "DependencyUnavailable", "BrokerConnectionError":
		return http.StatusServiceUnavailable
	case "SerializationError", "DatabaseError", "InternalError":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

// Common error constructors
func NewInvalidInput(message, details string) *StandardError {
	return NewStandardError("InvalidInput", message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError("ValidationError", message, fmt.Sprintf("Field: %s", field))
}

func NewProductNotFound(productID string) *StandardError {
	return NewStandardError("ProductNotFound", "product not found", fmt.Sprintf("Product ID: %s", productID))
}

func NewOrderNotFound(orderID string) *StandardError {
	return NewStandardError("OrderNotFound", "order not found", fmt.Sprintf("Order ID: %s", orderID))
}

func NewInsufficientStock(productID string, available, requested int) *StandardError {
	return NewStandardError("InsufficientStock", "insufficient stock available",
		fmt.Sprintf("Product: %s, Available: %d, Requested: %d", productID, available, requested))
}

func NewInsufficientReserved(productID string, reserved, requested int) *StandardError {
	return NewStandardError("InsufficientReserved", "insufficient reserved stock",
		fmt.Sprintf("Product: %s, Reserved: %d, Requested: %d", productID, reserved, requested))
}

func NewInvalidTransition(from, to string) *StandardError {
	return NewStandardError("InvalidTransition", "illegal order status transition",
		fmt.Sprintf("From: %s, To: %s", from, to))
}

func NewDependencyUnavailable(dependency string, err error) *StandardError {
	details := fmt.Sprintf("Dependency: %s", dependency)
	if err != nil {
		details = fmt.Sprintf("Dependency: %s, Error: %s", dependency, err.Error())
	}
	return NewStandardError("DependencyUnavailable", "a required dependency is unavailable", details)
}

func NewSerializationError(err error) *StandardError {
	return NewStandardError("SerializationError", "failed to serialize data", err.Error())
}

func NewDatabaseError(operation string, err error) *StandardError {
	return NewStandardError("DatabaseError", fmt.Sprintf("database operation failed: %s", operation), err.Error())
}

func NewBrokerConnectionError(err error) *StandardError {
	return NewStandardError("BrokerConnectionError", "failed to connect to event broker", err.Error())
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError("InternalError", message, details)
}
