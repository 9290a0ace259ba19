package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"velora_back_end/internal/services"
)

type OrderHandler struct {
	orders *services.OrderService
}

func NewOrderHandler(orders *services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var input services.PlaceOrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Corps de requête invalide"})
		return
	}

	order, err := h.orders.Place(c.Request.Context(), c.GetString("user_id"), c.GetString("email"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) MyOrders(c *gin.Context) {
	orders, err := h.orders.MyOrders(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.Get(c.Request.Context(), c.GetString("user_id"), c.GetBool("is_admin"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AllOrders(c *gin.Context) {
	orders, err := h.orders.All(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) PayOrder(c *gin.Context) {
	if err := h.orders.MarkPaid(c.Request.Context(), c.GetString("user_id"), c.GetBool("is_admin"), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commande payée"})
}

func (h *OrderHandler) DeliverOrder(c *gin.Context) {
	if err := h.orders.MarkDelivered(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Commande livrée"})
}
