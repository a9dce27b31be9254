package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/storefront-core/server/internal/assistant/graph"
	"github.com/storefront-core/server/internal/cart"
	"github.com/storefront-core/server/internal/catalog"
	"github.com/storefront-core/server/internal/model"
	"github.com/storefront-core/server/internal/session"
)

// Sessions is the session manager surface the API drives.
type Sessions interface {
	Create(ctx context.Context) *session.Session
	End(ctx context.Context, id string) error
	Cart(ctx context.Context, id string) (model.CartState, error)
	Dispatch(ctx context.Context, id string, action model.Action) (cart.Result, error)
	Checkout(ctx context.Context, id string) (model.Order, error)
	Activity(ctx context.Context, id string) ([]model.ActivityEntry, error)
}

type Options struct {
	Catalog  *catalog.Catalog
	Sessions Sessions
	// Assistant is optional; its endpoint answers 503 when nil.
	Assistant graph.Runner
	// RequestTimeout bounds each request; zero means 30s.
	RequestTimeout time.Duration
}

type API struct {
	catalog   *catalog.Catalog
	sessions  Sessions
	assistant graph.Runner
}

// NewRouter wires the storefront routes and middleware.
func NewRouter(opts Options) http.Handler {
	api := &API{
		catalog:   opts.Catalog,
		sessions:  opts.Sessions,
		assistant: opts.Assistant,
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/categories", api.listCategories)
		r.Get("/products", api.searchProducts)
		r.Get("/products/{id}", api.getProduct)

		r.Post("/sessions", api.createSession)
		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Delete("/", api.endSession)

			r.Get("/cart", api.getCart)
			r.Delete("/cart", api.clearCart)
			r.Post("/cart/items", api.addItem)
			r.Patch("/cart/items/{productID}", api.updateQuantity)
			r.Delete("/cart/items/{productID}", api.removeItem)

			r.Post("/checkout", api.checkout)
			r.Get("/activity", api.activity)
			r.Post("/assistant", api.ask)
		})
	})

	return r
}
