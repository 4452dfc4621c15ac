package adminserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI.
	Pattern string
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// NewTracedRouter returns a router whose routes all run behind the otelgin middleware.
// The middleware is installed before any route is registered.
func NewTracedRouter(serviceName string, handleFunctions ApiHandleFunctions, opts ...otelgin.Option) *gin.Engine {
	engine := gin.Default()
	engine.Use(otelgin.Middleware(serviceName, opts...))
	return NewRouterWithGinEngine(engine, handleFunctions)
}

// NewRouterWithGinEngine adds the routes to an existing gin engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions) *gin.Engine {
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		switch route.Method {
		case http.MethodGet:
			router.GET(route.Pattern, route.HandlerFunc)
		case http.MethodPost:
			router.POST(route.Pattern, route.HandlerFunc)
		case http.MethodPut:
			router.PUT(route.Pattern, route.HandlerFunc)
		case http.MethodPatch:
			router.PATCH(route.Pattern, route.HandlerFunc)
		case http.MethodDelete:
			router.DELETE(route.Pattern, route.HandlerFunc)
		}
	}
	if handleFunctions.UploadAPI.localDir != "" {
		router.Static(handleFunctions.UploadAPI.publicPath, handleFunctions.UploadAPI.localDir)
	}
	return router
}

// DefaultHandleFunc answers routes whose handler was not wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

// Healthz reports liveness.
func Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ApiHandleFunctions bundles every API section served by the admin router.
type ApiHandleFunctions struct {
	OrdersAPI     OrdersAPI
	ShipmentsAPI  ShipmentsAPI
	CatalogAPI    CatalogAPI
	WarehousesAPI WarehousesAPI
	ContentAPI    ContentAPI
	UploadAPI     UploadAPI
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	orders := &handleFunctions.OrdersAPI
	shipments := &handleFunctions.ShipmentsAPI
	catalog := &handleFunctions.CatalogAPI
	warehouses := &handleFunctions.WarehousesAPI
	content := &handleFunctions.ContentAPI
	upload := &handleFunctions.UploadAPI
	return []Route{
		{"Healthz", http.MethodGet, "/healthz", Healthz},

		{"ListOrders", http.MethodGet, "/api/admin/orders", orders.ListOrders},
		{"CreateOrder", http.MethodPost, "/api/admin/orders", orders.CreateOrder},
		{"GetOrder", http.MethodGet, "/api/admin/orders/:id", orders.GetOrder},
		{"UpdateItemStatus", http.MethodPost, "/api/admin/orders/status", orders.UpdateItemStatus},
		{"UpdateOrderStatus", http.MethodPost, "/api/admin/orders/order-status", orders.UpdateOrderStatus},
		{"MarkOrdersSeen", http.MethodPost, "/api/admin/orders/mark-old", orders.MarkOrdersSeen},

		{"ListShipments", http.MethodGet, "/api/shipment", shipments.ListShipments},
		{"CreateShipment", http.MethodPost, "/api/shipment", shipments.CreateShipment},
		{"CancelShipment", http.MethodPost, "/api/shipment/cancel", shipments.CancelShipment},
		{"EditShipment", http.MethodPost, "/api/shipment/edit", shipments.EditShipment},
		{"TrackShipments", http.MethodGet, "/api/shipment/track", shipments.TrackShipments},
		{"ShipmentLabel", http.MethodGet, "/api/shipment/label", shipments.ShipmentLabel},
		{"BulkCreateShipments", http.MethodPost, "/api/shipment/bulk", shipments.BulkCreateShipments},
		{"Serviceability", http.MethodGet, "/api/shipment/serviceability", shipments.Serviceability},

		{"ListProducts", http.MethodGet, "/api/admin/products", catalog.ListProducts},
		{"SaveProduct", http.MethodPost, "/api/admin/products", catalog.SaveProduct},
		{"GetProduct", http.MethodGet, "/api/admin/products/:id", catalog.GetProduct},

		{"ListWarehouses", http.MethodGet, "/api/admin/warehouses", warehouses.ListWarehouses},
		{"CreateWarehouse", http.MethodPost, "/api/admin/warehouses", warehouses.CreateWarehouse},
		{"GetWarehouse", http.MethodGet, "/api/admin/warehouses/:id", warehouses.GetWarehouse},
		{"UpdateWarehouse", http.MethodPut, "/api/admin/warehouses/:id", warehouses.UpdateWarehouse},
		{"DeleteWarehouse", http.MethodDelete, "/api/admin/warehouses/:id", warehouses.DeleteWarehouse},

		{"ListHeroSections", http.MethodGet, "/api/admin/hero-sections", content.ListHeroSections},
		{"CreateHeroSection", http.MethodPost, "/api/admin/hero-sections", content.CreateHeroSection},
		{"GetHeroSection", http.MethodGet, "/api/admin/hero-sections/:id", content.GetHeroSection},
		{"UpdateHeroSection", http.MethodPut, "/api/admin/hero-sections/:id", content.UpdateHeroSection},
		{"DeleteHeroSection", http.MethodDelete, "/api/admin/hero-sections/:id", content.DeleteHeroSection},

		{"ListWebsiteSections", http.MethodGet, "/api/admin/website/sections", content.ListWebsiteSections},
		{"CreateWebsiteSection", http.MethodPost, "/api/admin/website/sections", content.CreateWebsiteSection},
		{"GetWebsiteSection", http.MethodGet, "/api/admin/website/sections/:id", content.GetWebsiteSection},
		{"UpdateWebsiteSection", http.MethodPut, "/api/admin/website/sections/:id", content.UpdateWebsiteSection},
		{"DeleteWebsiteSection", http.MethodDelete, "/api/admin/website/sections/:id", content.DeleteWebsiteSection},

		{"GetFooter", http.MethodGet, "/api/admin/website/footer", content.GetFooter},
		{"PutFooter", http.MethodPut, "/api/admin/website/footer", content.PutFooter},
		{"GetPolicy", http.MethodGet, "/api/admin/policies/:kind", content.GetPolicy},
		{"PutPolicy", http.MethodPut, "/api/admin/policies/:kind", content.PutPolicy},

		{"UploadFile", http.MethodPost, "/api/admin/upload", upload.UploadFile},
	}
}
