package routes

import (
	"github.com/mpetrenko/voltride/internal/handler/admin"
	"github.com/mpetrenko/voltride/internal/handler/storefront"
)

// StorefrontDeps contains dependencies for storefront routes
type StorefrontDeps struct {
	// Cart
	CartHandler *storefront.CartHandler

	// Checkout
	CheckoutHandler *storefront.CheckoutHandler

	// Orders
	OrderHandler *storefront.OrderHandler
}

// AdminDeps contains dependencies for admin routes
type AdminDeps struct {
	// Orders
	OrderHandler *admin.OrderHandler
}
