package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prizeday/contest-backend/internal/services"
)

// PaymentHandler handles UPI payment HTTP requests
type PaymentHandler struct {
	paymentService services.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// CreateOrder handles POST /payment/order
type CreateOrderRequest struct {
	Amount float64 `json:"amount" binding:"required"`
	Name   string  `json:"name" binding:"required"`
	Email  string  `json:"email" binding:"required"`
	Phone  string  `json:"phone" binding:"required"`
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.paymentService.CreateOrder(c.Request.Context(), req.Amount, req.Name, req.Email, req.Phone)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, order)
}

// VerifyPayment handles POST /payment/verify
type VerifyPaymentRequest struct {
	PaymentID     string `json:"paymentId" binding:"required"`
	OrderID       string `json:"orderId" binding:"required"`
	TransactionID string `json:"transactionId"`
}

func (h *PaymentHandler) VerifyPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.paymentService.VerifyPayment(c.Request.Context(), req.PaymentID, req.OrderID, req.TransactionID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify payment"})
		return
	}
	c.JSON(http.StatusOK, order)
}

// OrderStatus handles GET /payment/order/:orderId
func (h *PaymentHandler) OrderStatus(c *gin.Context) {
	order, err := h.paymentService.OrderStatus(c.Request.Context(), c.Param("orderId"))
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load order"})
		return
	}
	c.JSON(http.StatusOK, order)
}
