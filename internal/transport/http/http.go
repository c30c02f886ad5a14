package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/corray333/backend-labs/presale/internal/service/models/auditlog"
	"github.com/corray333/backend-labs/presale/internal/service/models/fulfillment"
	"github.com/corray333/backend-labs/presale/internal/service/models/heldorder"
	"github.com/corray333/backend-labs/presale/internal/service/models/settings"
	"github.com/corray333/backend-labs/presale/internal/service/services/presalesvc"
	listaudit "github.com/corray333/backend-labs/presale/internal/transport/http/list_audit"
	listheldorders "github.com/corray333/backend-labs/presale/internal/transport/http/list_held_orders"
	listlocations "github.com/corray333/backend-labs/presale/internal/transport/http/list_locations"
	ordercreated "github.com/corray333/backend-labs/presale/internal/transport/http/order_created"
	releaseorders "github.com/corray333/backend-labs/presale/internal/transport/http/release_orders"
	savesettings "github.com/corray333/backend-labs/presale/internal/transport/http/save_settings"
	"github.com/corray333/backend-labs/presale/pkg/http/middleware/trace"
	"github.com/corray333/backend-labs/presale/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
)

type service interface {
	SaveSettings(ctx context.Context, shop, locationID string) (settings.Settings, error)
	Settings(ctx context.Context, shop string) (*settings.Settings, error)
	Locations(ctx context.Context) ([]fulfillment.Location, error)
	HeldOrders(ctx context.Context, shop string) ([]heldorder.View, error)
	ReleaseOrders(ctx context.Context, shop string, in presalesvc.ReleaseInput) (presalesvc.ReleaseResult, error)
	RecentAudit(ctx context.Context, shop string, limit int) ([]auditlog.Entry, error)
	HandleOrderCreated(ctx context.Context, shop, orderID string) error
}

type HTTPTransport struct {
	server        *http.Server
	router        *chi.Mux
	service       service
	shop          string
	webhookSecret string
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:        server,
		router:        router,
		service:       service,
		shop:          os.Getenv("PRESALE_SHOP_DOMAIN"),
		webhookSecret: os.Getenv("PRESALE_WEBHOOK_SECRET"),
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/api", func(r chi.Router) {
		r.Post("/settings", h.saveSettings)
		r.Get("/settings", h.getSettings)
		r.Get("/locations", h.listLocations)
		r.Get("/orders/held", h.listHeldOrders)
		r.Post("/orders/release", h.releaseOrders)
		r.Get("/audit", h.listAudit)
	})
	h.router.Post("/webhooks/orders/create", h.orderCreated)
}

func (h *HTTPTransport) saveSettings(w http.ResponseWriter, r *http.Request) {
	savesettings.SaveSettings(w, r, h.service, h.shop)
}

func (h *HTTPTransport) getSettings(w http.ResponseWriter, r *http.Request) {
	savesettings.GetSettings(w, r, h.service, h.shop)
}

func (h *HTTPTransport) listLocations(w http.ResponseWriter, r *http.Request) {
	listlocations.ListLocations(w, r, h.service)
}

func (h *HTTPTransport) listHeldOrders(w http.ResponseWriter, r *http.Request) {
	listheldorders.ListHeldOrders(w, r, h.service, h.shop)
}

func (h *HTTPTransport) releaseOrders(w http.ResponseWriter, r *http.Request) {
	releaseorders.ReleaseOrders(w, r, h.service, h.shop)
}

func (h *HTTPTransport) listAudit(w http.ResponseWriter, r *http.Request) {
	listaudit.ListAudit(w, r, h.service, h.shop)
}

func (h *HTTPTransport) orderCreated(w http.ResponseWriter, r *http.Request) {
	ordercreated.OrderCreated(w, r, h.service, h.shop, h.webhookSecret)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
