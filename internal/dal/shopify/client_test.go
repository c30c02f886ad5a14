package shopify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(server.URL, "test-token", server.Client())
}

func TestClient_GetOrder(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-Shopify-Access-Token"); got != "test-token" {
			t.Errorf("expected access token header, got %q", got)
		}

		var req struct {
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if req.Variables["id"] != "gid://shopify/Order/1" {
			t.Errorf("unexpected order id variable: %v", req.Variables["id"])
		}

		_, _ = w.Write([]byte(`{
			"data": {
				"order": {
					"id": "gid://shopify/Order/1",
					"name": "#1001",
					"createdAt": "2025-06-01T00:00:00Z",
					"tags": ["presale-hold"],
					"fulfillmentOrders": {
						"edges": [
							{
								"node": {
									"id": "gid://shopify/FulfillmentOrder/11",
									"status": "ON_HOLD",
									"assignedLocation": {"location": {"id": "gid://shopify/Location/1"}},
									"lineItems": {
										"edges": [
											{
												"node": {
													"id": "gid://shopify/FulfillmentOrderLineItem/21",
													"remainingQuantity": 2,
													"lineItem": {"title": "Widget"}
												}
											}
										]
									}
								}
							}
						]
					}
				}
			}
		}`))
	})

	order, err := client.GetOrder(context.Background(), "gid://shopify/Order/1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if order.Name != "#1001" {
		t.Fatalf("expected order name #1001, got %q", order.Name)
	}
	if len(order.FulfillmentOrders) != 1 {
		t.Fatalf("expected 1 fulfillment order, got %d", len(order.FulfillmentOrders))
	}
	fo := order.FulfillmentOrders[0]
	if fo.Status != fulfillment.StatusOnHold {
		t.Fatalf("expected ON_HOLD, got %s", fo.Status)
	}
	if fo.AssignedLocationID != "gid://shopify/Location/1" {
		t.Fatalf("unexpected location %q", fo.AssignedLocationID)
	}
	if len(fo.LineItems) != 1 || fo.LineItems[0].Title != "Widget" || fo.LineItems[0].RemainingQuantity != 2 {
		t.Fatalf("unexpected line items %v", fo.LineItems)
	}
}

func TestClient_GetOrder_NotFound(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"order": null}}`))
	})

	if _, err := client.GetOrder(context.Background(), "gid://shopify/Order/404"); err == nil {
		t.Fatalf("expected error for missing order")
	}
}

func TestClient_HoldFulfillmentOrder_UserErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"data": {
				"fulfillmentOrderHold": {
					"fulfillmentOrder": null,
					"userErrors": [{"field": ["fulfillmentOrderId"], "message": "already on hold"}]
				}
			}
		}`))
	})

	err := client.HoldFulfillmentOrder(context.Background(), "gid://shopify/FulfillmentOrder/11", "note")
	if err == nil {
		t.Fatalf("expected user errors")
	}

	var userErrs *UserErrorsError
	if !errors.As(err, &userErrs) {
		t.Fatalf("expected UserErrorsError, got %T: %v", err, err)
	}
	if len(userErrs.Errors) != 1 || userErrs.Errors[0].Message != "already on hold" {
		t.Fatalf("unexpected user errors %v", userErrs.Errors)
	}
}

func TestClient_GraphQLErrors(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"errors": [{"message": "throttled"}]}`))
	})

	err := client.ReleaseHold(context.Background(), "gid://shopify/FulfillmentOrder/11")
	if err == nil {
		t.Fatalf("expected error")
	}

	var userErrs *UserErrorsError
	if errors.As(err, &userErrs) {
		t.Fatalf("top-level graphql errors must not map to user errors: %v", err)
	}
}

func TestClient_SplitFulfillmentOrder(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Variables struct {
				Splits []struct {
					FulfillmentOrderID        string `json:"fulfillmentOrderId"`
					FulfillmentOrderLineItems []struct {
						ID       string `json:"id"`
						Quantity int    `json:"quantity"`
					} `json:"fulfillmentOrderLineItems"`
				} `json:"splits"`
			} `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		if len(req.Variables.Splits) != 1 {
			t.Errorf("expected one split input, got %d", len(req.Variables.Splits))
		} else {
			split := req.Variables.Splits[0]
			if split.FulfillmentOrderID != "gid://shopify/FulfillmentOrder/11" {
				t.Errorf("unexpected fulfillment order id %q", split.FulfillmentOrderID)
			}
			if len(split.FulfillmentOrderLineItems) != 1 || split.FulfillmentOrderLineItems[0].Quantity != 3 {
				t.Errorf("unexpected split line items %v", split.FulfillmentOrderLineItems)
			}
		}

		_, _ = w.Write([]byte(`{"data": {"fulfillmentOrderSplit": {"fulfillmentOrderSplits": [], "userErrors": []}}}`))
	})

	err := client.SplitFulfillmentOrder(context.Background(), "gid://shopify/FulfillmentOrder/11", []fulfillment.SplitLineItem{
		{ID: "gid://shopify/FulfillmentOrderLineItem/21", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
}
