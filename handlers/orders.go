package handlers

import (
	"net/http"

	"hostel-shop-api/models"
	"hostel-shop-api/response"
	"hostel-shop-api/services"
	"hostel-shop-api/statemachine"

	"github.com/gin-gonic/gin"
)

// PlaceOrder creates a guest order (no auth)
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.Orders.CreateOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":           "Order placed successfully",
		"order":             order,
		"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
	})
}

// ListOrders returns orders newest first, optionally filtered by ?status=
func (h *Handler) ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !statemachine.IsKnown(status) {
		response.BadRequest(c, "Unknown order status: "+string(status))
		return
	}
	orders, err := h.Orders.ListOrders(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"order_summary": summary,
		"count":         len(orders),
		"orders":        orders,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	order, err := h.Orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"order":             order,
		"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
	})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus overwrites the status. Moves outside the lifecycle
// table are accepted and logged by the service.
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	order, err := h.Orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":           "Order status updated",
		"order":             order,
		"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
	})
}
