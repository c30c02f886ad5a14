package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client calls the Shopify Admin GraphQL API for a single shop.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// MustNewClient creates a new Admin API client.
func MustNewClient() *Client {
	shop := os.Getenv("PRESALE_SHOP_DOMAIN")
	token := os.Getenv("PRESALE_SHOPIFY_TOKEN")
	if shop == "" || token == "" {
		panic("PRESALE_SHOP_DOMAIN and PRESALE_SHOPIFY_TOKEN must be set")
	}

	version := viper.GetString("shopify.api_version")
	if version == "" {
		version = "2024-10"
	}

	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		endpoint:   fmt.Sprintf("https://%s/admin/api/%s/graphql.json", shop, version),
		token:      token,
	}
}

// NewClient creates a client against an explicit endpoint. Used by tests.
func NewClient(endpoint, token string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		token:      token,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type graphqlError struct {
	Message string `json:"message"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphqlError  `json:"errors"`
}

// do executes one GraphQL request and decodes the data envelope into out.
// Top-level GraphQL errors are returned as a transport-level error; mutation
// userErrors are decoded by the caller from the data payload.
func (c *Client) do(ctx context.Context, opName, query string, variables map[string]any, out any) error {
	tracer := otel.Tracer("presale-svc")
	ctx, span := tracer.Start(ctx, "shopify."+opName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("graphql.operation", opName)),
	)
	defer span.End()

	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return fmt.Errorf("failed to marshal graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("graphql request %s failed: %w", opName, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read graphql response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("graphql request %s: unexpected status %d", opName, resp.StatusCode)
		span.RecordError(err)
		return err
	}

	var envelope graphqlResponse
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return fmt.Errorf("failed to decode graphql response: %w", err)
	}

	if len(envelope.Errors) > 0 {
		messages := make([]string, len(envelope.Errors))
		for i, e := range envelope.Errors {
			messages[i] = e.Message
		}
		err := fmt.Errorf("graphql request %s: %s", opName, strings.Join(messages, "; "))
		span.RecordError(err)
		return err
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode %s data: %w", opName, err)
		}
	}

	return nil
}
