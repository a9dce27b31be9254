package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/storefront-core/server/internal/catalog"
	errx "github.com/storefront-core/server/internal/core/error"
	"github.com/storefront-core/server/internal/model"
)

// ErrAssistantDisabled is returned when no assistant is configured.
var ErrAssistantDisabled = errors.New("assistant disabled")

type cartResponse struct {
	Items     []model.LineItem `json:"items"`
	ItemCount int              `json:"item_count"`
	Total     decimal.Decimal  `json:"total"`
}

func newCartResponse(s model.CartState) cartResponse {
	items := s.Items
	if items == nil {
		items = []model.LineItem{}
	}
	return cartResponse{Items: items, ItemCount: s.ItemCount(), Total: s.Total}
}

// mutationResponse is returned by cart-changing endpoints. Changed is false
// when the action targeted a product that is not in the cart.
type mutationResponse struct {
	cartResponse
	Changed bool   `json:"changed"`
	Version uint64 `json:"version"`
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type askRequest struct {
	Query string `json:"query"`
}

type sessionResponse struct {
	ID string `json:"id"`
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": a.catalog.Categories()})
}

func (a *API) searchProducts(w http.ResponseWriter, r *http.Request) {
	f, err := parseFilter(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	products := a.catalog.Search(f)
	writeJSON(w, http.StatusOK, map[string]any{"products": products, "total": len(products)})
}

func parseFilter(r *http.Request) (catalog.Filter, error) {
	q := r.URL.Query()
	f := catalog.Filter{
		Query:    q.Get("q"),
		Category: q.Get("category"),
	}

	for key, dst := range map[string]*decimal.NullDecimal{"min_price": &f.MinPrice, "max_price": &f.MaxPrice} {
		raw := strings.TrimSpace(q.Get(key))
		if raw == "" {
			continue
		}
		d, err := decimal.NewFromString(raw)
		if err == nil && d.IsNegative() {
			err = errors.New("negative")
		}
		if err != nil {
			return catalog.Filter{}, errx.BadRequest(fmt.Errorf("%s=%q: %w", key, raw, err), key+" must be a non-negative number")
		}
		*dst = decimal.NewNullDecimal(d)
	}

	if raw := strings.TrimSpace(q.Get("min_rating")); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 5 {
			return catalog.Filter{}, errx.BadRequest(fmt.Errorf("min_rating=%q", raw), "min_rating must be between 0 and 5")
		}
		f.MinRating = v
	}
	return f, nil
}

func (a *API) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	p, err := a.catalog.Get(id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (a *API) createSession(w http.ResponseWriter, r *http.Request) {
	s := a.sessions.Create(r.Context())
	writeJSON(w, http.StatusCreated, sessionResponse{ID: s.ID})
}

func (a *API) endSession(w http.ResponseWriter, r *http.Request) {
	if err := a.sessions.End(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (a *API) getCart(w http.ResponseWriter, r *http.Request) {
	state, err := a.sessions.Cart(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newCartResponse(state))
}

func (a *API) dispatch(w http.ResponseWriter, r *http.Request, action model.Action) {
	res, err := a.sessions.Dispatch(r.Context(), chi.URLParam(r, "sessionID"), action)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, mutationResponse{
		cartResponse: newCartResponse(res.State),
		Changed:      res.Changed,
		Version:      res.Version,
	})
}

// addItem resolves the product from the catalog; shoppers cannot inject
// their own prices. Out-of-stock products are refused here, the store itself
// does not look at stock.
func (a *API) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	p, err := a.catalog.Get(req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if !p.InStock {
		writeError(w, r, errx.Conflict(fmt.Errorf("product %d out of stock", p.ID), p.Name+" is out of stock"))
		return
	}
	a.dispatch(w, r, model.AddItem(p))
}

func (a *API) updateQuantity(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req updateQuantityRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Quantity == nil {
		writeError(w, r, errx.BadRequest(errors.New("missing quantity"), "quantity is required"))
		return
	}
	a.dispatch(w, r, model.UpdateQuantity(id, *req.Quantity))
}

func (a *API) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := intParam(r, "productID")
	if err != nil {
		writeError(w, r, err)
		return
	}
	a.dispatch(w, r, model.RemoveItem(id))
}

func (a *API) clearCart(w http.ResponseWriter, r *http.Request) {
	a.dispatch(w, r, model.ClearCart())
}

func (a *API) checkout(w http.ResponseWriter, r *http.Request) {
	order, err := a.sessions.Checkout(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (a *API) activity(w http.ResponseWriter, r *http.Request) {
	entries, err := a.sessions.Activity(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (a *API) ask(w http.ResponseWriter, r *http.Request) {
	if a.assistant == nil {
		writeError(w, r, errx.Unavailable(ErrAssistantDisabled, "shopping assistant is not configured"))
		return
	}
	var req askRequest
	if err := decode(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, r, errx.BadRequest(errors.New("empty query"), "query is required"))
		return
	}

	reply, err := a.assistant.Invoke(r.Context(), model.QueryInput{
		SessionID: chi.URLParam(r, "sessionID"),
		Query:     req.Query,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}
