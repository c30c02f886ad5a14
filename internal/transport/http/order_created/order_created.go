package ordercreated

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
)

// service is an interface for the service layer.
type service interface {
	HandleOrderCreated(ctx context.Context, shop, orderID string) error
}

// orderCreatedPayload is the slice of the order-created webhook body this
// service needs.
type orderCreatedPayload struct {
	AdminGraphqlAPIID string `json:"admin_graphql_api_id"`
}

// OrderCreated handles the order creation webhook. Once the delivery is
// authenticated the response is always 200: a business-logic failure must
// not make the platform retry the delivery.
func OrderCreated(w http.ResponseWriter, r *http.Request, service service, shop, secret string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		slog.Error("Error reading webhook body", "error", err)

		return
	}

	if !verifySignature(body, r.Header.Get("X-Shopify-Hmac-Sha256"), secret) {
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		slog.Error("Webhook signature verification failed")

		return
	}

	if deliveredShop := r.Header.Get("X-Shopify-Shop-Domain"); deliveredShop != shop {
		http.Error(w, "unknown shop", http.StatusUnauthorized)
		slog.Error("Webhook delivered for unknown shop", "shop", deliveredShop)

		return
	}

	payload := orderCreatedPayload{}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AdminGraphqlAPIID == "" {
		slog.Error("Error decoding order created webhook payload", "error", err)
		w.WriteHeader(http.StatusOK)

		return
	}

	if err := service.HandleOrderCreated(r.Context(), shop, payload.AdminGraphqlAPIID); err != nil {
		slog.Error("Error handling order created webhook",
			"order_id", payload.AdminGraphqlAPIID,
			"error", err,
		)
	}

	w.WriteHeader(http.StatusOK)
}

func verifySignature(body []byte, signature, secret string) bool {
	if signature == "" || secret == "" {
		return false
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
