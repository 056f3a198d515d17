package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/board"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/models"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/store"
	"github.com/thalisfel/sistema-de-gerenciamento-de-pedidos/utils"
)

type OrderController struct {
	Store *store.OrderStore
}

func NewOrderController(s *store.OrderStore) *OrderController {
	return &OrderController{Store: s}
}

// respondStoreError mapeia a taxonomia do store para HTTP:
// ValidationError -> 400, not found -> 404, resto -> 500.
func respondStoreError(c *gin.Context, err error) {
	var verr *store.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondError(c, http.StatusBadRequest, verr)
	case errors.Is(err, store.ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	default:
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}

// CreateOrder -> POST /api/orders
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type reqBody struct {
		Items models.LineItems `json:"items"`
		Total float64          `json:"total"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Store.Create(body.Items, body.Total)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	board.BroadcastOrderCreated(*order)

	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetOrders -> GET /api/orders?include_delivered=true|false
func (oc *OrderController) GetOrders(c *gin.Context) {
	includeDelivered := c.Query("include_delivered") == "true"

	orders, err := oc.Store.List(includeDelivered)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// UpdateOrderStatus -> PUT /api/orders/:order_id/status
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	order, err := oc.Store.UpdateStatus(uint(id), body.Status)
	if err != nil {
		respondStoreError(c, err)
		return
	}

	board.BroadcastOrderUpdated(*order)

	utils.RespondJSON(c, http.StatusOK, "Order status updated", order)
}

// DeleteOrder -> DELETE /api/orders/:order_id (somente admin)
func (oc *OrderController) DeleteOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("order_id"), 10, 32)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("invalid order id"))
		return
	}

	removed, err := oc.Store.Delete(uint(id))
	if err != nil {
		respondStoreError(c, err)
		return
	}
	if !removed {
		utils.RespondError(c, http.StatusNotFound, store.ErrOrderNotFound)
		return
	}

	board.BroadcastOrderDeleted(uint(id))

	utils.RespondJSON(c, http.StatusOK, "Order deleted", gin.H{"order_id": id})
}

// GetStatistics -> GET /api/statistics
func (oc *OrderController) GetStatistics(c *gin.Context) {
	stats, err := oc.Store.GeneralStatistics()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "General statistics", stats)
}

// GetHistory -> GET /api/orders/history
func (oc *OrderController) GetHistory(c *gin.Context) {
	history, err := oc.Store.ListHistory()
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order history", history)
}

// ClearHistory -> DELETE /api/orders/history (somente admin)
func (oc *OrderController) ClearHistory(c *gin.Context) {
	count, err := oc.Store.ClearHistory()
	if err != nil {
		respondStoreError(c, err)
		return
	}

	board.BroadcastHistoryCleared(count)

	utils.RespondJSON(c, http.StatusOK, "History cleared", gin.H{"removed": count})
}

// GetProfits -> GET /api/profits?start_date=...&end_date=... (somente admin)
func (oc *OrderController) GetProfits(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	profits, err := oc.Store.ProfitForPeriod(startDate, endDate)
	if err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Profits for period", profits)
}

// ResetCounters -> POST /api/reset-counters (somente admin).
// ATENCAO: apaga todos os pedidos, historico, produtos e lucros diarios.
func (oc *OrderController) ResetCounters(c *gin.Context) {
	if err := oc.Store.ResetCounters(); err != nil {
		respondStoreError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK,
		"System reset: all orders, history, products and profits deleted", nil)
}
