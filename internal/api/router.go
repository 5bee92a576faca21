package api

import (
	"ecommerce-dashboard/internal/api/handler"
	_ "ecommerce-dashboard/internal/docs"
	"ecommerce-dashboard/pkg/router"

	httpSwagger "github.com/swaggo/http-swagger"
)

// RegisterRoutes wires the dashboard handlers and API docs into r.
func RegisterRoutes(r *router.Router, d *handler.Dashboard) {
	r.GET("/health", d.Health)

	r.GET("/api/v1/dashboard", d.GetDashboard)
	r.GET("/api/v1/dashboard/range", d.GetRange)

	r.GET("/api/v1/panels", d.ListPanels)
	r.GET("/api/v1/panels/*", d.GetPanel)
	r.GET("/api/v1/charts/*", d.GetChart)

	r.GET("/swagger/*", router.HandlerFunc(httpSwagger.WrapHandler))
}
