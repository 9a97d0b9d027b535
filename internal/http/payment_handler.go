package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/payment"
	"careerlift/internal/repository"
)

// PaymentHandler mantiene dependencias para endpoints de pagos.
type PaymentHandler struct {
	logger   *zap.Logger
	gateway  payment.Client
	payments repository.PaymentRepository
	users    repository.UserRepository
}

func NewPaymentHandler(logger *zap.Logger, gateway payment.Client, payments repository.PaymentRepository, users repository.UserRepository) *PaymentHandler {
	return &PaymentHandler{
		logger:   logger,
		gateway:  gateway,
		payments: payments,
		users:    users,
	}
}

// CreateOrder maneja POST /api/payment/create-order. El monto llega en
// rupias y se convierte a paise para la pasarela.
func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	var req struct {
		Amount   float64 `json:"amount" binding:"required,gt=0"`
		Currency string  `json:"currency"`
		Plan     string  `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	receipt := "rcpt_" + uuid.NewString()
	order, err := h.gateway.CreateOrder(c.Request.Context(), int64(req.Amount*100), req.Currency, receipt)
	if err != nil {
		h.logger.Error("create order failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "could not create order"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": order})
}

// Verify maneja POST /api/payment/verify. Con firma valida registra el
// pago y sube la suscripcion del usuario.
func (h *PaymentHandler) Verify(c *gin.Context) {
	user, _ := GetAuthUser(c)

	var req struct {
		OrderID   string  `json:"razorpay_order_id" binding:"required"`
		PaymentID string  `json:"razorpay_payment_id" binding:"required"`
		Signature string  `json:"razorpay_signature" binding:"required"`
		Amount    float64 `json:"amount"`
		Plan      string  `json:"plan"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !h.gateway.VerifySignature(req.OrderID, req.PaymentID, req.Signature) {
		h.logger.Warn("payment signature rejected", zap.Int64("user_id", user.ID))
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "signature verification failed"})
		return
	}

	plan := req.Plan
	if plan != domain.PlanPremium && plan != domain.PlanPremiumPlus {
		plan = domain.PlanPremium
	}

	recorded, err := h.payments.Create(c.Request.Context(), domain.Payment{
		UserID:      user.ID,
		GatewayID:   req.PaymentID,
		OrderID:     req.OrderID,
		Amount:      req.Amount,
		Currency:    "INR",
		Status:      domain.PaymentCompleted,
		PaymentType: "subscription",
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		h.logger.Error("record payment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not record payment"})
		return
	}

	expiry := time.Now().UTC().AddDate(0, 1, 0)
	if err := h.users.UpdateSubscription(c.Request.Context(), user.ID, plan, &expiry); err != nil {
		h.logger.Error("update subscription failed", zap.Int64("user_id", user.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update subscription"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "payment": recorded})
}
