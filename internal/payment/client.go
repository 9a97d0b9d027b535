package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Order representa una orden de pago creada en la pasarela.
type Order struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// Client define la interfaz hacia la pasarela de pagos. Los montos van en
// la unidad menor de la moneda (paise para INR).
type Client interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error)
	VerifySignature(orderID, paymentID, signature string) bool
}

type logger interface {
	Printf(format string, v ...interface{})
}

// HTTPClient implementa Client contra la API REST de Razorpay.
type HTTPClient struct {
	baseURL   string
	keyID     string
	keySecret string
	client    *http.Client
	logger    logger
}

func NewHTTPClient(baseURL, keyID, keySecret string, log any) *HTTPClient {
	l, _ := log.(logger)
	if baseURL == "" {
		baseURL = "https://api.razorpay.com/v1"
	}
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		keyID:     keyID,
		keySecret: keySecret,
		client:    &http.Client{Timeout: 15 * time.Second},
		logger:    l,
	}
}

type orderRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}

type orderError struct {
	Error *struct {
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

func (c *HTTPClient) CreateOrder(ctx context.Context, amount int64, currency, receipt string) (Order, error) {
	bodyBytes, err := json.Marshal(orderRequest{
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
	})
	if err != nil {
		return Order{}, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders", bytes.NewReader(bodyBytes))
	if err != nil {
		return Order{}, fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return Order{}, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Printf("payment error status %d: %s", resp.StatusCode, string(respBody))
		}
		var oe orderError
		if json.Unmarshal(respBody, &oe) == nil && oe.Error != nil {
			return Order{}, fmt.Errorf("payment api error: %s", oe.Error.Description)
		}
		return Order{}, fmt.Errorf("payment http error: status=%d", resp.StatusCode)
	}

	var order Order
	if err := json.Unmarshal(respBody, &order); err != nil {
		return Order{}, fmt.Errorf("unmarshal response: %w", err)
	}
	if order.ID == "" {
		return Order{}, fmt.Errorf("payment empty order id")
	}
	return order, nil
}

// VerifySignature valida la firma HMAC-SHA256 de orderID|paymentID que la
// pasarela devuelve al cliente tras el checkout.
func (c *HTTPClient) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(c.keySecret, orderID, paymentID, signature)
}

func verifySignature(secret, orderID, paymentID, signature string) bool {
	if orderID == "" || paymentID == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}

// OfflineClient genera ordenes locales sin tocar la pasarela. Util en
// desarrollo cuando no hay credenciales configuradas.
type OfflineClient struct {
	keySecret string
}

func NewOfflineClient(keySecret string) *OfflineClient {
	return &OfflineClient{keySecret: keySecret}
}

func (c *OfflineClient) CreateOrder(_ context.Context, amount int64, currency, receipt string) (Order, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return Order{}, fmt.Errorf("generate order id: %w", err)
	}
	return Order{
		ID:       "order_" + hex.EncodeToString(buf),
		Amount:   amount,
		Currency: currency,
		Receipt:  receipt,
		Status:   "created",
	}, nil
}

func (c *OfflineClient) VerifySignature(orderID, paymentID, signature string) bool {
	return verifySignature(c.keySecret, orderID, paymentID, signature)
}
