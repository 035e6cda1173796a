package storefront

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrenko/voltride/internal/cookie"
	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/handler"
	"github.com/mpetrenko/voltride/internal/service"
)

// CartHandler handles all cart-related storefront routes
type CartHandler struct {
	cartService  domain.CartService
	cookieConfig *cookie.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartService domain.CartService, cookieConfig *cookie.Config) *CartHandler {
	return &CartHandler{
		cartService:  cartService,
		cookieConfig: cookieConfig,
	}
}

// resolveOrCreate resolves the caller's cart, minting an anonymous
// session token (and setting its cookie) when the caller has none yet.
func (h *CartHandler) resolveOrCreate(w http.ResponseWriter, r *http.Request) (*domain.Cart, error) {
	ident := resolveIdentity(r)
	if !ident.Valid() {
		token, err := service.GenerateSessionToken()
		if err != nil {
			return nil, domain.Internal(err, "cart.resolve", "failed to create session")
		}
		SetSessionCookie(w, token, h.cookieConfig)
		ident = domain.Anonymous(token)
	}
	return h.cartService.GetOrCreateCart(r.Context(), ident)
}

// resolveExisting resolves the caller's cart without creating one.
func (h *CartHandler) resolveExisting(r *http.Request) (*domain.Cart, error) {
	ident := resolveIdentity(r)
	if !ident.Valid() {
		return nil, domain.ErrCartNotFound
	}
	return h.cartService.GetCart(r.Context(), ident)
}

// View handles GET /cart
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	cart, err := h.resolveOrCreate(w, r)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	summary, err := h.cartService.Summary(r.Context(), cart.ID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toCartView(summary))
}

// Summary handles GET /cart/summary
func (h *CartHandler) Summary(w http.ResponseWriter, r *http.Request) {
	cart, err := h.resolveExisting(r)
	if err != nil {
		if errors.Is(err, domain.ErrCartNotFound) {
			handler.JSON(w, http.StatusOK, map[string]interface{}{
				"item_count":  0,
				"total_cents": 0,
			})
			return
		}
		handler.Error(w, r, err)
		return
	}

	summary, err := h.cartService.Summary(r.Context(), cart.ID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]interface{}{
		"item_count":  summary.ItemCount,
		"total_cents": summary.TotalCents,
	})
}

type addItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// Add handles POST /cart/add
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequest(w, r, "Invalid JSON body")
		return
	}

	productID, err := parseUUID(req.ProductID)
	if err != nil {
		handler.BadRequest(w, r, "Invalid product ID")
		return
	}

	cart, err := h.resolveOrCreate(w, r)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	summary, err := h.cartService.AddItem(r.Context(), cart.ID, productID, req.Quantity)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toCartView(summary))
}

type updateItemRequest struct {
	LineID   string `json:"line_id"`
	Quantity int32  `json:"quantity"`
}

// Update handles POST /cart/update
func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequest(w, r, "Invalid JSON body")
		return
	}

	lineID, err := parseUUID(req.LineID)
	if err != nil {
		handler.BadRequest(w, r, "Invalid line ID")
		return
	}

	cart, err := h.resolveExisting(r)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	summary, err := h.cartService.SetQuantity(r.Context(), cart.ID, lineID, req.Quantity)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toCartView(summary))
}

type removeItemRequest struct {
	LineID string `json:"line_id"`
}

// Remove handles POST /cart/remove
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequest(w, r, "Invalid JSON body")
		return
	}

	lineID, err := parseUUID(req.LineID)
	if err != nil {
		handler.BadRequest(w, r, "Invalid line ID")
		return
	}

	cart, err := h.resolveExisting(r)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	summary, err := h.cartService.RemoveItem(r.Context(), cart.ID, lineID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, toCartView(summary))
}
