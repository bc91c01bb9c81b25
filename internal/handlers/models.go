package handlers

import (
	"time"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"
)

// OrderItemRequest is one requested line in an order
// @Description One product line of an order creation request
type OrderItemRequest struct {
	// Product identifier from the catalog
	ProductID string `json:"productId" binding:"required" example:"prod-1001"`

	// Quantity to order (must be >= 1)
	Quantity int `json:"quantity" binding:"required,min=1" example:"2"`
}

// ShippingAddressRequest is the delivery destination
// @Description Shipping address for an order
type ShippingAddressRequest struct {
	Street     string `json:"street" binding:"required" example:"Av. Libertador 1234"`
	City       string `json:"city" binding:"required" example:"Buenos Aires"`
	PostalCode string `json:"postalCode" binding:"required" example:"C1425"`
	Country    string `json:"country" binding:"required" example:"AR"`
}

// CreateOrderRequest represents the request body for creating an order
// @Description Request to place a new order
type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items" binding:"required,min=1,dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress" binding:"required"`
}

// UpdateStatusRequest represents the request body for a status transition
// @Description Request to move an order to a new status
type UpdateStatusRequest struct {
	// Target status: processing, shipped, delivered or cancelled
	Status string `json:"status" binding:"required" example:"processing"`

	// Optional free-form note for the audit trail
	Notes string `json:"notes" example:"picked up by carrier"`
}

// OrderItemResponse is a price snapshot line in an order response
type OrderItemResponse struct {
	ProductID  string `json:"productId" example:"prod-1001"`
	Name       string `json:"name" example:"Laptop Dell XPS 15"`
	Quantity   int    `json:"quantity" example:"2"`
	UnitPrice  string `json:"unitPrice" example:"1299.99"`
	TotalPrice string `json:"totalPrice" example:"2599.98"`
}

// OrderResponse represents an order
// @Description Order with its immutable price snapshots
type OrderResponse struct {
	ID                   string                 `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID               string                 `json:"userId" example:"buyer"`
	Items                []OrderItemResponse    `json:"items"`
	TotalAmount          string                 `json:"totalAmount" example:"2599.98"`
	Status               string                 `json:"status" example:"pending"`
	PaymentStatus        string                 `json:"paymentStatus" example:"pending"`
	ShippingAddress      ShippingAddressRequest `json:"shippingAddress"`
	InventorySyncPending bool                   `json:"inventorySyncPending" example:"false"`
	CreatedAt            time.Time              `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	UpdatedAt            time.Time              `json:"updatedAt" example:"2024-01-15T10:30:00Z"`
}

// StatusChangeResponse is one entry in an order's audit trail
type StatusChangeResponse struct {
	PreviousStatus string    `json:"previousStatus" example:"pending"`
	NewStatus      string    `json:"newStatus" example:"processing"`
	Actor          string    `json:"actor" example:"seller"`
	Notes          string    `json:"notes" example:"payment verified"`
	OccurredAt     time.Time `json:"occurredAt" example:"2024-01-15T11:00:00Z"`
}

// StockRequest represents a reserve/release/confirm request
// @Description Request to move units between stock and reserved balances
type StockRequest struct {
	ProductID string `json:"productId" binding:"required" example:"prod-1001"`
	Quantity  int    `json:"quantity" binding:"required,min=1" example:"5"`
}

// RestockRequest represents a replenishment request
// @Description Request to add units to a product's available stock
type RestockRequest struct {
	Quantity int    `json:"quantity" binding:"required,min=1" example:"100"`
	Notes    string `json:"notes" example:"weekly supplier delivery"`
}

// InventoryResponse represents a ledger record
// @Description Stock ledger record with derived status
type InventoryResponse struct {
	ProductID         string    `json:"productId" example:"prod-1001"`
	Stock             int       `json:"stock" example:"80"`
	Reserved          int       `json:"reserved" example:"20"`
	Total             int       `json:"total" example:"100"`
	Status            string    `json:"status" example:"in_stock"`
	LowStockThreshold int       `json:"lowStockThreshold" example:"10"`
	ReorderPoint      int       `json:"reorderPoint" example:"5"`
	LastRestocked     time.Time `json:"lastRestocked" example:"2024-01-10T08:00:00Z"`
	LastUpdated       time.Time `json:"lastUpdated" example:"2024-01-15T12:00:00Z"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:  item.ProductID,
			Name:       item.Name,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice.String(),
			TotalPrice: item.TotalPrice.String(),
		})
	}

	return OrderResponse{
		ID:            order.ID.String(),
		UserID:        order.UserID,
		Items:         items,
		TotalAmount:   order.TotalAmount.String(),
		Status:        string(order.Status),
		PaymentStatus: string(order.PaymentStatus),
		ShippingAddress: ShippingAddressRequest{
			Street:     order.ShippingAddress.Street,
			City:       order.ShippingAddress.City,
			PostalCode: order.ShippingAddress.PostalCode,
			Country:    order.ShippingAddress.Country,
		},
		InventorySyncPending: order.InventorySyncPending,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

func toInventoryResponse(record *domain.InventoryRecord) InventoryResponse {
	return InventoryResponse{
		ProductID:         record.ProductID,
		Stock:             record.Stock,
		Reserved:          record.Reserved,
		Total:             record.Total(),
		Status:            string(record.Status()),
		LowStockThreshold: record.LowStockThreshold,
		ReorderPoint:      record.ReorderPoint,
		LastRestocked:     record.LastRestocked,
		LastUpdated:       record.LastUpdated,
	}
}
