package storefront

import (
	"net/http"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/handler"
	"github.com/mpetrenko/voltride/internal/middleware"
)

// OrderHandler serves the caller's order history.
type OrderHandler struct {
	orderService domain.OrderService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService domain.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List handles GET /orders. Order history belongs to authenticated
// users; anonymous sessions have no durable identity to list by.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if !userID.Valid {
		handler.Unauthorized(w, r)
		return
	}

	orders, err := h.orderService.ListOrders(r.Context(), userID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, toOrderView(o))
	}

	handler.JSON(w, http.StatusOK, views)
}

// GetByNumber handles GET /orders/{number}. The order number is
// unguessable, so anonymous lookups work as a capability URL; when both
// the caller and the order carry a user ID they must match, so one
// authenticated user cannot read another's order.
func (h *OrderHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := r.PathValue("number")
	if number == "" {
		handler.BadRequest(w, r, "Missing order number")
		return
	}

	detail, err := h.orderService.GetOrderByNumber(r.Context(), number)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	userID := middleware.GetUserID(r.Context())
	if userID.Valid && detail.Order.UserID.Valid && userID != detail.Order.UserID {
		handler.Error(w, r, domain.ErrOrderNotFound)
		return
	}

	handler.JSON(w, http.StatusOK, toOrderDetailView(detail))
}
