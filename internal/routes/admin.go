package routes

import (
	"github.com/mpetrenko/voltride/internal/router"
)

// RegisterAdminRoutes registers the back-office routes.
func RegisterAdminRoutes(r *router.Router, deps AdminDeps) {
	r.Post("/admin/orders/{id}/status", deps.OrderHandler.UpdateStatus)
}
