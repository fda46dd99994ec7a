package routes

import (
	"net/http"

	"foodshare/configs"
	"foodshare/controllers"
	"foodshare/entity"
	"foodshare/middlewares"
	"foodshare/pkg/geo"
	"foodshare/pkg/notify"
	"foodshare/repository"
	"foodshare/services"
	"foodshare/ws"

	"github.com/gin-gonic/gin"
)

// Deps คือของที่ main เตรียมไว้ให้ (DB, geo, notifier, ws hub)
type Deps struct {
	Config   *configs.Config
	Store    *repository.Store
	Geo      geo.Provider
	Notifier notify.Notifier
	Hub      *ws.OrderHub
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	cfg := d.Config
	r.Use(middlewares.RequestID())
	r.Use(middlewares.CORSMiddleware(cfg.CORSOrigins...))
	r.Use(middlewares.Timeout(cfg.RequestTimeout))

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.Static("/uploads", cfg.UploadsDir)

	// Services
	var events services.OrderEventPublisher
	if d.Hub != nil {
		events = d.Hub
	}
	authSvc := services.NewAuthService(d.Store, d.Geo, d.Notifier, services.AuthConfig{
		JWTSecret:    cfg.JWTSecret,
		JWTTTL:       cfg.JWTTTL,
		BaseURL:      cfg.BaseURL,
		SupportEmail: cfg.SupportEmail,
	})
	restSvc := services.NewRestaurantService(d.Store, d.Geo)
	orderSvc := services.NewOrderService(d.Store, d.Notifier, events, cfg.BaseURL)

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	restCtrl := controllers.NewRestaurantController(restSvc, cfg.UploadsDir)
	menuCtrl := controllers.NewMenuController(services.NewFoodItemService(d.Store), cfg.UploadsDir)
	cartCtrl := controllers.NewCartController(services.NewCartService(d.Store))
	orderCtrl := controllers.NewOrderController(orderSvc)
	reviewCtrl := controllers.NewReviewController(services.NewReviewService(d.Store))
	contactCtrl := controllers.NewContactController(services.NewContactService(d.Store, d.Notifier, cfg.SupportEmail))
	adminCtrl := controllers.NewAdminController(services.NewAdminService(d.Store))

	auth := middlewares.AuthMiddleware(cfg.JWTSecret)

	// Auth (public)
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.POST("/reset-password", authCtrl.RequestReset)
		a.POST("/reset-password/:token", authCtrl.ResetPassword)
	}

	// Auth (protected)
	aAuth := a.Group("", auth)
	{
		aAuth.GET("/me", authCtrl.Me)
		aAuth.PATCH("/password", authCtrl.ChangePassword)
	}

	r.POST("/contact", contactCtrl.Submit)
	r.GET("/autocomplete/address", restCtrl.Autocomplete)

	// Buyer
	u := r.Group("/", auth)
	{
		u.GET("/restaurants", restCtrl.List)
		u.GET("/restaurants/:id", restCtrl.Get)
		u.GET("/restaurants/:id/reviews", reviewCtrl.ListForRestaurant)

		u.GET("/cart", cartCtrl.Get)
		u.POST("/cart/update", cartCtrl.Update)
		u.DELETE("/cart", cartCtrl.Clear)
		u.POST("/cart/checkout", orderCtrl.Checkout)

		u.GET("/buyer/orders", orderCtrl.BuyerOrders)
		u.GET("/orders/:id/invoice", orderCtrl.Invoice)
		u.POST("/orders/ready", orderCtrl.MarkReady)
		u.POST("/orders/collected", orderCtrl.MarkCollected)
		u.POST("/orders/cancel", orderCtrl.Cancel)

		u.POST("/reviews", reviewCtrl.Add)
	}

	// Seller (ทุก user เปิดร้านได้ 1 ร้าน)
	s := r.Group("/seller", auth)
	{
		s.POST("/restaurant", restCtrl.Setup)
		s.PATCH("/restaurant", restCtrl.Edit)
		s.POST("/open", restCtrl.SetOpen)
		s.GET("/dashboard", orderCtrl.SellerDashboard)

		s.GET("/items", menuCtrl.List)
		s.POST("/items", menuCtrl.Create)
		s.PATCH("/items/:id", menuCtrl.Update)
		s.DELETE("/items/:id", menuCtrl.Delete)
		s.POST("/items/:id/menu", menuCtrl.ToggleMenu)
	}

	// Admin
	ad := r.Group("/admin", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleAdmin))
	{
		ad.GET("/users", adminCtrl.Users)
		ad.GET("/restaurants", adminCtrl.Restaurants)
		ad.GET("/contact", adminCtrl.Contacts)
	}

	// WebSocket: live order status
	if d.Hub != nil {
		r.GET("/ws/orders", middlewares.WSAuthMiddleware(cfg.JWTSecret), d.Hub.HandleWebSocket)
	}
}
