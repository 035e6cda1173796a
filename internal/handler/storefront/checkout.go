package storefront

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mpetrenko/voltride/internal/delivery"
	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/handler"
)

// CheckoutHandler converts the caller's cart into an order.
type CheckoutHandler struct {
	cartService     domain.CartService
	checkoutService domain.CheckoutService
	deliverer       delivery.Provider
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(cartService domain.CartService, checkoutService domain.CheckoutService, deliverer delivery.Provider) *CheckoutHandler {
	return &CheckoutHandler{
		cartService:     cartService,
		checkoutService: checkoutService,
		deliverer:       deliverer,
	}
}

type checkoutRequest struct {
	Contact      domain.ContactInfo `json:"contact"`
	DeliveryCode string             `json:"delivery_code"`
	PromoCode    string             `json:"promo_code"`
}

// Checkout handles POST /checkout
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequest(w, r, "Invalid JSON body")
		return
	}

	ident := resolveIdentity(r)
	if !ident.Valid() {
		handler.Error(w, r, domain.ErrCartNotFound)
		return
	}

	cart, err := h.cartService.GetCart(ctx, ident)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	quote, err := h.deliverer.QuoteByCode(ctx, req.DeliveryCode)
	if err != nil {
		if errors.Is(err, delivery.ErrUnknownOption) {
			handler.BadRequest(w, r, "Unknown delivery option")
			return
		}
		handler.Error(w, r, domain.Internal(err, "checkout", "failed to quote delivery"))
		return
	}

	detail, err := h.checkoutService.Checkout(ctx, domain.CheckoutParams{
		CartID:        cart.ID,
		Contact:       req.Contact,
		DeliveryCents: quote.CostCents,
		PromoCode:     req.PromoCode,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusCreated, toOrderDetailView(detail))
}

// DeliveryOptions handles GET /delivery/options
func (h *CheckoutHandler) DeliveryOptions(w http.ResponseWriter, r *http.Request) {
	quotes, err := h.deliverer.Quotes(r.Context())
	if err != nil {
		handler.Error(w, r, domain.Internal(err, "checkout.delivery_options", "failed to list delivery options"))
		return
	}

	type optionView struct {
		ServiceName string `json:"service_name"`
		ServiceCode string `json:"service_code"`
		CostCents   int64  `json:"cost_cents"`
		DaysMin     int    `json:"days_min"`
		DaysMax     int    `json:"days_max"`
	}

	views := make([]optionView, 0, len(quotes))
	for _, q := range quotes {
		views = append(views, optionView{
			ServiceName: q.ServiceName,
			ServiceCode: q.ServiceCode,
			CostCents:   q.CostCents,
			DaysMin:     q.DaysMin,
			DaysMax:     q.DaysMax,
		})
	}

	handler.JSON(w, http.StatusOK, views)
}
