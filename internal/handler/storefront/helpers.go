package storefront

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/mpetrenko/voltride/internal/domain"
	"github.com/mpetrenko/voltride/internal/middleware"
)

// parseUUID parses a string into a pgtype.UUID.
func parseUUID(s string) (pgtype.UUID, error) {
	parsed, err := uuid.Parse(s)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return pgtype.UUID{Bytes: parsed, Valid: true}, nil
}

// resolveIdentity builds the caller identity from the request. An
// authenticated user ID placed in the context by middleware.ResolveUser
// wins; otherwise the anonymous session cookie is used. Returns a zero
// identity when neither is present.
func resolveIdentity(r *http.Request) domain.Identity {
	if userID := middleware.GetUserID(r.Context()); userID.Valid {
		return domain.Authenticated(userID)
	}
	if token := GetSessionToken(r); token != "" {
		return domain.Anonymous(token)
	}
	return domain.Identity{}
}

// cartLineView is the JSON shape of one cart line.
type cartLineView struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	LineSubtotal   int64  `json:"line_subtotal_cents"`
}

// cartView is the JSON shape of a cart summary.
type cartView struct {
	CartID     string         `json:"cart_id"`
	Lines      []cartLineView `json:"lines"`
	ItemCount  int32          `json:"item_count"`
	TotalCents int64          `json:"total_cents"`
}

func toCartView(s *domain.CartSummary) cartView {
	view := cartView{
		CartID:     uuidToString(s.Cart.ID),
		Lines:      make([]cartLineView, 0, len(s.Lines)),
		ItemCount:  s.ItemCount,
		TotalCents: s.TotalCents,
	}
	for _, line := range s.Lines {
		view.Lines = append(view.Lines, cartLineView{
			ID:             uuidToString(line.ID),
			ProductID:      uuidToString(line.ProductID),
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			LineSubtotal:   line.LineSubtotal,
		})
	}
	return view
}

// orderLineView is the JSON shape of one frozen order line.
type orderLineView struct {
	ProductID      string `json:"product_id"`
	ProductName    string `json:"product_name"`
	Quantity       int32  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

// orderView is the JSON shape of an order.
type orderView struct {
	ID            string             `json:"id"`
	OrderNumber   string             `json:"order_number"`
	Status        string             `json:"status"`
	Contact       domain.ContactInfo `json:"contact"`
	SubtotalCents int64              `json:"subtotal_cents"`
	DeliveryCents int64              `json:"delivery_cents"`
	DiscountCents int64              `json:"discount_cents"`
	TotalCents    int64              `json:"total_cents"`
	PromoCode     string             `json:"promo_code,omitempty"`
	CreatedAt     string             `json:"created_at"`
	Lines         []orderLineView    `json:"lines,omitempty"`
}

func toOrderView(o domain.Order) orderView {
	view := orderView{
		ID:            uuidToString(o.ID),
		OrderNumber:   o.OrderNumber,
		Status:        string(o.Status),
		Contact:       o.Contact,
		SubtotalCents: o.SubtotalCents,
		DeliveryCents: o.DeliveryCents,
		DiscountCents: o.DiscountCents,
		TotalCents:    o.TotalCents,
		PromoCode:     o.PromoCode,
	}
	if o.CreatedAt.Valid {
		view.CreatedAt = o.CreatedAt.Time.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return view
}

func toOrderDetailView(d *domain.OrderDetail) orderView {
	view := toOrderView(d.Order)
	view.Lines = make([]orderLineView, 0, len(d.Lines))
	for _, line := range d.Lines {
		view.Lines = append(view.Lines, orderLineView{
			ProductID:      uuidToString(line.ProductID),
			ProductName:    line.ProductName,
			Quantity:       line.Quantity,
			UnitPriceCents: line.UnitPriceCents,
			TotalCents:     line.TotalCents,
		})
	}
	return view
}

func uuidToString(id pgtype.UUID) string {
	if !id.Valid {
		return ""
	}
	return uuid.UUID(id.Bytes).String()
}
