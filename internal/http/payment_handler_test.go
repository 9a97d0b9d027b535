package http

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"careerlift/internal/domain"
	"careerlift/internal/payment"
	"careerlift/internal/repository"
	"careerlift/internal/service"
)

func newPaymentEnv(t *testing.T) (*gin.Engine, *repository.MemoryUserRepository, *repository.MemoryPaymentRepository) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	users := repository.NewMemoryUserRepository()
	sessions := repository.NewMemorySessionRepository()

	userSvc := service.NewUserService(logger, users)
	sessionSvc := service.NewSessionService(logger, sessions, users)
	signer := service.NewStateSigner("test-secret")

	payments := repository.NewMemoryPaymentRepository()
	gateway := payment.NewOfflineClient("key-secret")

	authH := NewAuthHandler(logger, userSvc, sessionSvc, nil, nil, signer, CookieOptions{}, "")
	resumeH := NewResumeHandler(logger, repository.NewMemoryResumeRepository(), users, t.TempDir())
	courseH := NewCourseHandler(logger, repository.NewMemoryCourseRepository(), users)
	mentorH := NewMentorHandler(logger, repository.NewMemoryMentorRepository(), users)
	projectH := NewProjectHandler(logger, repository.NewMemoryProjectRepository())
	progressH := NewProgressHandler(logger, repository.NewMemoryProgressRepository())
	paymentH := NewPaymentHandler(logger, gateway, payments, users)

	router := NewRouter(logger, sessionSvc, authH, resumeH, courseH, mentorH, projectH, progressH, paymentH)
	return router, users, payments
}

func TestPaymentCreateOrderAndVerify(t *testing.T) {
	router, users, payments := newPaymentEnv(t)
	env := &testEnv{router: router, users: users}
	cookie := registerAndCookie(t, env)

	w := postJSON(t, router, "/api/payment/create-order", gin.H{"amount": 499.0, "plan": "premium"}, cookie)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Order payment.Order `json:"order"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.Order.Amount != 49900 {
		t.Fatalf("expected amount converted to paise, got %d", created.Order.Amount)
	}

	mac := hmac.New(sha256.New, []byte("key-secret"))
	mac.Write([]byte(created.Order.ID + "|pay_test_1"))
	signature := hex.EncodeToString(mac.Sum(nil))

	w = postJSON(t, router, "/api/payment/verify", gin.H{
		"razorpay_order_id":   created.Order.ID,
		"razorpay_payment_id": "pay_test_1",
		"razorpay_signature":  signature,
		"amount":              499.0,
		"plan":                "premium",
	}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	user, err := users.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.SubscriptionPlan != domain.PlanPremium {
		t.Fatalf("expected premium plan, got %q", user.SubscriptionPlan)
	}
	if user.SubscriptionExpiry == nil {
		t.Fatalf("expected subscription expiry set")
	}

	recorded, err := payments.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(recorded) != 1 || recorded[0].Status != domain.PaymentCompleted {
		t.Fatalf("expected one completed payment, got %+v", recorded)
	}
}

func TestPaymentVerify_BadSignature(t *testing.T) {
	router, users, payments := newPaymentEnv(t)
	env := &testEnv{router: router, users: users}
	cookie := registerAndCookie(t, env)

	w := postJSON(t, router, "/api/payment/verify", gin.H{
		"razorpay_order_id":   "order_x",
		"razorpay_payment_id": "pay_x",
		"razorpay_signature":  "deadbeef",
	}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	user, err := users.GetByEmail(context.Background(), "ana@example.com")
	if err != nil {
		t.Fatalf("get user failed: %v", err)
	}
	if user.SubscriptionPlan != domain.PlanFree {
		t.Fatalf("expected plan unchanged, got %q", user.SubscriptionPlan)
	}
	recorded, err := payments.ListByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("list payments failed: %v", err)
	}
	if len(recorded) != 0 {
		t.Fatalf("expected no payment recorded, got %+v", recorded)
	}
}
