package routes

import (
	"github.com/mpetrenko/voltride/internal/router"
)

// RegisterStorefrontRoutes registers all customer-facing storefront routes.
func RegisterStorefrontRoutes(r *router.Router, deps StorefrontDeps) {
	// Shopping cart
	r.Get("/cart", deps.CartHandler.View)
	r.Get("/cart/summary", deps.CartHandler.Summary)
	r.Post("/cart/add", deps.CartHandler.Add)
	r.Post("/cart/update", deps.CartHandler.Update)
	r.Post("/cart/remove", deps.CartHandler.Remove)

	// Checkout flow
	r.Get("/delivery/options", deps.CheckoutHandler.DeliveryOptions)
	r.Post("/checkout", deps.CheckoutHandler.Checkout)

	// Order history
	r.Get("/orders", deps.OrderHandler.List)
	r.Get("/orders/{number}", deps.OrderHandler.GetByNumber)
}
