// Package admin holds the back-office handlers. Access control sits in
// front of these routes at the proxy; the handlers trust their callers.
package admin

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/handler"
)

// OrderHandler drives the order status state machine.
type OrderHandler struct {
	orderService domain.OrderService
}

// NewOrderHandler creates a new admin order handler
func NewOrderHandler(orderService domain.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles POST /admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	parsed, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handler.BadRequest(w, r, "Invalid order ID")
		return
	}
	orderID := pgtype.UUID{Bytes: parsed, Valid: true}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handler.BadRequest(w, r, "Invalid JSON body")
		return
	}

	next, err := domain.ParseOrderStatus(req.Status)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	order, err := h.orderService.UpdateStatus(r.Context(), orderID, next)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]string{
		"id":           uuid.UUID(order.ID.Bytes).String(),
		"order_number": order.OrderNumber,
		"status":       string(order.Status),
	})
}
