package handlers

import (
	"net/http"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/auth"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/domain"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/repository"
	"github.com/ayushsoni77/Micro-Mart-sub000/internal/saga"
	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// canViewOrder restricts buyers to their own orders; sellers and admins see all
func canViewOrder(c *gin.Context, order *domain.Order) bool {
	role := c.GetString("role")
	if role == auth.RoleSeller || role == auth.RoleAdmin {
		return true
	}
	return order.UserID == c.GetString("user_id")
}

// OrderHandler handles order endpoints
type OrderHandler struct {
	coordinator *saga.Coordinator
	orders      repository.OrderRepository
	logger      *zap.Logger
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(coordinator *saga.Coordinator, orders repository.OrderRepository, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		coordinator: coordinator,
		orders:      orders,
		logger:      logger,
	}
}

// CreateOrder handles POST /api/v1/orders
// @Summary      Place a new order
// @Description  Places an order: prices are snapshotted from the catalog and stock is reserved for every line before the order is persisted. If any line cannot be reserved, the whole order is rejected and nothing is held.
// @Description  **Idempotency**: include X-Request-ID in the header to make retries safe. A repeated X-Request-ID returns the original response instead of placing a second order.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        X-Request-ID  header    string              false  "Request ID for idempotency (UUID)"
// @Param        request       body      CreateOrderRequest  true   "Order creation request"
// @Success      201           {object}  OrderResponse         "Order placed successfully"
// @Failure      400           {object}  errors.StandardError  "Invalid request body"
// @Failure      401           {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404           {object}  errors.StandardError  "Unknown product"
// @Failure      409           {object}  errors.StandardError  "Insufficient stock"
// @Failure      503           {object}  errors.StandardError  "Product catalog unavailable"
// @Router       /orders [post]
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid order request", zap.Error(err))
		c.Error(errors.NewInvalidInput("invalid request body", err.Error()))
		c.Abort()
		return
	}

	userID := c.GetString("user_id")

	items := make([]saga.ItemRequest, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, saga.ItemRequest{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	order, err := h.coordinator.PlaceOrder(c.Request.Context(), userID, items, domain.ShippingAddress{
		Street:     req.ShippingAddress.Street,
		City:       req.ShippingAddress.City,
		PostalCode: req.ShippingAddress.PostalCode,
		Country:    req.ShippingAddress.Country,
	})
	if err != nil {
		c.Error(translateError(err, "", ""))
		c.Abort()
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// GetOrder handles GET /api/v1/orders/:id
// @Summary      Get an order
// @Description  Returns an order with its immutable price snapshots. Buyers can only fetch their own orders; sellers and admins can fetch any.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order ID (UUID)" example(550e8400-e29b-41d4-a716-446655440000)
// @Success      200  {object}  OrderResponse         "Order found"
// @Failure      400  {object}  errors.StandardError  "Invalid order ID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404  {object}  errors.StandardError  "Order not found"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(errors.NewInvalidInput("invalid order id", "Param: id"))
		c.Abort()
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		c.Error(translateError(err, "", id.String()))
		c.Abort()
		return
	}

	// Another buyer's order looks like a missing one, no existence leak
	if !canViewOrder(c, order) {
		c.Error(errors.NewOrderNotFound(id.String()))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// GetOrderHistory handles GET /api/v1/orders/:id/history
// @Summary      Get an order's status history
// @Description  Returns the append-only status audit trail, oldest first
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Order ID (UUID)" example(550e8400-e29b-41d4-a716-446655440000)
// @Success      200  {array}   StatusChangeResponse  "Status history"
// @Failure      400  {object}  errors.StandardError  "Invalid order ID"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404  {object}  errors.StandardError  "Order not found"
// @Router       /orders/{id}/history [get]
func (h *OrderHandler) GetOrderHistory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(errors.NewInvalidInput("invalid order id", "Param: id"))
		c.Abort()
		return
	}

	// Verify the order exists so an unknown ID is a 404, not an empty list
	order, err := h.orders.FindByID(c.Request.Context(), id)
	if err != nil {
		c.Error(translateError(err, "", id.String()))
		c.Abort()
		return
	}
	if !canViewOrder(c, order) {
		c.Error(errors.NewOrderNotFound(id.String()))
		c.Abort()
		return
	}

	history, err := h.orders.History(c.Request.Context(), id)
	if err != nil {
		c.Error(translateError(err, "", id.String()))
		c.Abort()
		return
	}

	changes := make([]StatusChangeResponse, 0, len(history))
	for _, change := range history {
		changes = append(changes, StatusChangeResponse{
			PreviousStatus: string(change.PreviousStatus),
			NewStatus:      string(change.NewStatus),
			Actor:          change.Actor,
			Notes:          change.Notes,
			OccurredAt:     change.OccurredAt,
		})
	}

	c.JSON(http.StatusOK, changes)
}

// UpdateStatus handles PATCH /api/v1/orders/:id/status
// @Summary      Update an order's status
// @Description  Moves an order along its lifecycle: pending → processing → shipped → delivered, with cancellation allowed from any non-terminal status. Delivering confirms the order's reservation (stock permanently deducted); cancelling releases it back to available stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Order ID (UUID)" example(550e8400-e29b-41d4-a716-446655440000)
// @Param        request  body      UpdateStatusRequest  true  "Status transition request"
// @Success      200      {object}  OrderResponse         "Status updated"
// @Failure      400      {object}  errors.StandardError  "Invalid request or unknown status"
// @Failure      401      {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      403      {object}  errors.StandardError  "Insufficient role"
// @Failure      404      {object}  errors.StandardError  "Order not found"
// @Failure      409      {object}  errors.StandardError  "Illegal transition or concurrent modification"
// @Router       /orders/{id}/status [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(errors.NewInvalidInput("invalid order id", "Param: id"))
		c.Abort()
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInput("invalid request body", err.Error()))
		c.Abort()
		return
	}

	if !domain.ValidOrderStatus(req.Status) {
		c.Error(errors.NewInvalidInput("unknown order status", "Status: "+req.Status))
		c.Abort()
		return
	}

	actor := c.GetString("username")
	order, err := h.coordinator.UpdateStatus(c.Request.Context(), id, domain.OrderStatus(req.Status), actor, req.Notes)
	if err != nil {
		c.Error(translateError(err, "", id.String()))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}
