package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hostcraft/platform-api/internal/api/handler"
	"github.com/hostcraft/platform-api/internal/api/middleware"
	"github.com/hostcraft/platform-api/internal/core/domain"
	"github.com/hostcraft/platform-api/internal/core/ports"
)

// RouterConfig bundles the wired services the HTTP layer exposes.
type RouterConfig struct {
	DB        *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger

	Auth    ports.AuthService
	Coupons ports.CouponService
	Orders  ports.OrderService
	Users   ports.UserService
	Catalog ports.CatalogService
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hostcraft"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Auth, cfg.Users)
	couponHandler := handler.NewCouponHandler(cfg.Coupons)
	orderHandler := handler.NewOrderHandler(cfg.Orders)
	userHandler := handler.NewUserHandler(cfg.Users)
	catalogHandler := handler.NewCatalogHandler(cfg.Catalog)
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(cfg.DB, cfg.Redis)

	auth := middleware.Auth(cfg.JWTSecret)
	staff := middleware.RequireRole(domain.RoleStaff)
	manager := middleware.RequireRole(domain.RoleManager)
	admin := middleware.RequireRole(domain.RoleAdmin)

	// --- Operational endpoints ---
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Auth ---
	e.GET("/auth/login", authHandler.Login)
	e.GET("/auth/callback", authHandler.Callback)

	// --- Public catalog ---
	catalog := e.Group("/v1/catalog")
	catalog.GET("/minecraft", catalogHandler.MinecraftPlans)
	catalog.GET("/vps", catalogHandler.VPSPlans)
	catalog.GET("/tlds", catalogHandler.TLDs)
	catalog.GET("/domain-features", catalogHandler.DomainFeatures)

	// --- Authenticated customer routes ---
	me := e.Group("/v1/me", auth)
	me.GET("", authHandler.Me)
	me.GET("/orders", orderHandler.History)

	v1 := e.Group("/v1", auth)
	v1.POST("/coupons/validate", couponHandler.Validate)
	v1.POST("/orders", orderHandler.Create)

	// --- Admin: orders (staff and up) ---
	adminOrders := e.Group("/v1/admin/orders", auth, staff)
	adminOrders.GET("", orderHandler.List)
	adminOrders.POST("/:id/confirm", orderHandler.Confirm)
	adminOrders.POST("/:id/cancel", orderHandler.Cancel)
	adminOrders.DELETE("/:id", orderHandler.Delete)

	// --- Admin: users (staff and up; hierarchy enforced in the service) ---
	adminUsers := e.Group("/v1/admin/users", auth, staff)
	adminUsers.GET("", userHandler.List)
	adminUsers.PATCH("/:id/role", userHandler.ChangeRole)
	adminUsers.POST("/:id/ban", userHandler.Ban)
	adminUsers.POST("/:id/unban", userHandler.Unban)
	adminUsers.DELETE("/:id", userHandler.Delete)

	// --- Admin: coupons (admin and up) ---
	adminCoupons := e.Group("/v1/admin/coupons", auth, admin)
	adminCoupons.POST("", couponHandler.Create)
	adminCoupons.GET("", couponHandler.List)
	adminCoupons.PATCH("/:id/active", couponHandler.SetActive)
	adminCoupons.DELETE("/:id", couponHandler.Delete)
	adminCoupons.GET("/:id/redemptions", couponHandler.Redemptions)

	// --- Admin: catalog (manager and up) ---
	adminCatalog := e.Group("/v1/admin/catalog", auth, manager)
	adminCatalog.POST("/minecraft", catalogHandler.SaveMinecraftPlan)
	adminCatalog.PUT("/minecraft/:id", catalogHandler.SaveMinecraftPlan)
	adminCatalog.DELETE("/minecraft/:id", catalogHandler.DeleteMinecraftPlan)
	adminCatalog.POST("/vps", catalogHandler.SaveVPSPlan)
	adminCatalog.PUT("/vps/:id", catalogHandler.SaveVPSPlan)
	adminCatalog.DELETE("/vps/:id", catalogHandler.DeleteVPSPlan)
	adminCatalog.POST("/tlds", catalogHandler.SaveTLD)
	adminCatalog.PUT("/tlds/:id", catalogHandler.SaveTLD)
	adminCatalog.DELETE("/tlds/:id", catalogHandler.DeleteTLD)
	adminCatalog.POST("/domain-features", catalogHandler.SaveDomainFeature)
	adminCatalog.PUT("/domain-features/:id", catalogHandler.SaveDomainFeature)
	adminCatalog.DELETE("/domain-features/:id", catalogHandler.DeleteDomainFeature)

	return e
}
