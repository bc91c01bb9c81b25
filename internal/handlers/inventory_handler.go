package handlers

import (
	"net/http"

	"github.com/ayushsoni77/Micro-Mart-sub000/internal/repository"
	"github.com/ayushsoni77/Micro-Mart-sub000/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// InventoryHandler handles stock ledger endpoints
type InventoryHandler struct {
	inventory repository.InventoryRepository
	logger    *zap.Logger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory repository.InventoryRepository, logger *zap.Logger) *InventoryHandler {
	return &InventoryHandler{
		inventory: inventory,
		logger:    logger,
	}
}

// GetRecord handles GET /api/v1/inventory/:productId
// @Summary      Get a product's ledger record
// @Description  Returns the stock ledger record for a product with its derived status (in_stock, low_stock, reorder_needed or out_of_stock)
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string  true  "Product ID" example(prod-1001)
// @Success      200        {object}  InventoryResponse     "Ledger record"
// @Failure      401        {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404        {object}  errors.StandardError  "Product not tracked"
// @Router       /inventory/{productId} [get]
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	productID := c.Param("productId")

	record, err := h.inventory.FindByProductID(c.Request.Context(), productID)
	if err != nil {
		c.Error(translateError(err, productID, ""))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(record))
}

// Reserve handles POST /api/v1/inventory/reserve
// @Summary      Reserve stock
// @Description  Moves units from available stock to the reserved balance. A ledger record is created on first contact with a product, so reserving an untracked product fails with InsufficientStock.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      StockRequest  true  "Reservation request"
// @Success      200      {object}  InventoryResponse     "Updated ledger record"
// @Failure      400      {object}  errors.StandardError  "Invalid request body"
// @Failure      401      {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      409      {object}  errors.StandardError  "Insufficient stock"
// @Router       /inventory/reserve [post]
func (h *InventoryHandler) Reserve(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInput("invalid request body", err.Error()))
		c.Abort()
		return
	}

	record, err := h.inventory.Reserve(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		c.Error(translateError(err, req.ProductID, ""))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(record))
}

// Release handles POST /api/v1/inventory/release
// @Summary      Release reserved stock
// @Description  Returns previously reserved units to available stock. Releasing more than is reserved is rejected, the ledger never goes negative.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      StockRequest  true  "Release request"
// @Success      200      {object}  InventoryResponse     "Updated ledger record"
// @Failure      400      {object}  errors.StandardError  "Invalid request body"
// @Failure      401      {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404      {object}  errors.StandardError  "Product not tracked"
// @Failure      409      {object}  errors.StandardError  "Insufficient reserved stock"
// @Router       /inventory/release [post]
func (h *InventoryHandler) Release(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInput("invalid request body", err.Error()))
		c.Abort()
		return
	}

	record, err := h.inventory.Release(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		c.Error(translateError(err, req.ProductID, ""))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(record))
}

// Confirm handles POST /api/v1/inventory/confirm
// @Summary      Confirm reserved stock
// @Description  Permanently deducts reserved units after a sale completes. Available stock is unchanged, only the reserved balance drops.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      StockRequest  true  "Confirmation request"
// @Success      200      {object}  InventoryResponse     "Updated ledger record"
// @Failure      400      {object}  errors.StandardError  "Invalid request body"
// @Failure      401      {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      404      {object}  errors.StandardError  "Product not tracked"
// @Failure      409      {object}  errors.StandardError  "Insufficient reserved stock"
// @Router       /inventory/confirm [post]
func (h *InventoryHandler) Confirm(c *gin.Context) {
	var req StockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInput("invalid request body", err.Error()))
		c.Abort()
		return
	}

	record, err := h.inventory.Confirm(c.Request.Context(), req.ProductID, req.Quantity)
	if err != nil {
		c.Error(translateError(err, req.ProductID, ""))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(record))
}

// Restock handles POST /api/v1/inventory/:productId/restock
// @Summary      Restock a product
// @Description  Adds units to a product's available stock and records the restock time. Creates the ledger record if the product was never tracked.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        productId  path      string          true  "Product ID" example(prod-1001)
// @Param        request    body      RestockRequest  true  "Restock request"
// @Success      200        {object}  InventoryResponse     "Updated ledger record"
// @Failure      400        {object}  errors.StandardError  "Invalid request body"
// @Failure      401        {object}  errors.StandardError  "Missing or invalid JWT"
// @Failure      403        {object}  errors.StandardError  "Insufficient role"
// @Router       /inventory/{productId}/restock [post]
func (h *InventoryHandler) Restock(c *gin.Context) {
	productID := c.Param("productId")

	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewInvalidInput("invalid request body", err.Error()))
		c.Abort()
		return
	}

	record, err := h.inventory.Restock(c.Request.Context(), productID, req.Quantity, req.Notes)
	if err != nil {
		c.Error(translateError(err, productID, ""))
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, toInventoryResponse(record))
}

// ListLowStock handles GET /api/v1/inventory/low-stock
// @Summary      List products at or below their low-stock threshold
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   InventoryResponse     "Low-stock records, lowest first"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Router       /inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	records, err := h.inventory.ListLowStock(c.Request.Context())
	if err != nil {
		c.Error(translateError(err, "", ""))
		c.Abort()
		return
	}

	responses := make([]InventoryResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toInventoryResponse(&records[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ListReorderNeeded handles GET /api/v1/inventory/reorder-needed
// @Summary      List products at or below their reorder point
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   InventoryResponse     "Records needing reorder, lowest first"
// @Failure      401  {object}  errors.StandardError  "Missing or invalid JWT"
// @Router       /inventory/reorder-needed [get]
func (h *InventoryHandler) ListReorderNeeded(c *gin.Context) {
	records, err := h.inventory.ListReorderNeeded(c.Request.Context())
	if err != nil {
		c.Error(translateError(err, "", ""))
		c.Abort()
		return
	}

	responses := make([]InventoryResponse, 0, len(records))
	for i := range records {
		responses = append(responses, toInventoryResponse(&records[i]))
	}
	c.JSON(http.StatusOK, responses)
}
