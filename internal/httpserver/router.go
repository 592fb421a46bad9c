package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"freshbasket/internal/domain"
)

type productLister interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type shopLister interface {
	ListActive(ctx context.Context) ([]domain.Shop, error)
}

type userGetter interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(corsConfig(deps.CORSOrigins)))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	auth := authMiddleware(deps.JWTSecret, deps.UserRepo)

	// Storefront, no identity required.
	router.GET("/products", listProductsHandler(deps.ProductRepo))
	router.GET("/products/:id", getProductHandler(deps.ProductRepo))
	router.GET("/shops", listShopsHandler(deps.ShopRepo))
	router.POST("/shops/nearest", nearestShopHandler(deps.RouterSvc))
	router.POST("/delivery-zones/check", checkZoneHandler(deps.ZoneSvc))
	router.GET("/orders/track/:ref", trackOrderHandler(deps.OrderSvc))

	// Checkout accepts both guest and authenticated requests.
	router.POST("/orders", optionalAuth(deps.JWTSecret, deps.UserRepo), placeOrderHandler(deps.OrderSvc))

	customer := router.Group("/", auth)
	{
		customer.GET("/cart", getCartHandler(deps.CartSvc))
		customer.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		customer.PUT("/cart/items/:lineId", changeCartItemHandler(deps.CartSvc))
		customer.DELETE("/cart/items/:lineId", removeCartItemHandler(deps.CartSvc))
		customer.GET("/orders", listOrdersHandler(deps.OrderSvc))
		customer.GET("/orders/:id", getOrderHandler(deps.OrderSvc))
	}

	courier := router.Group("/delivery", auth)
	{
		courier.GET("/orders", courierQueueHandler(deps.DeliverySvc))
		courier.PUT("/orders/:id/accept", acceptOrderHandler(deps.DeliverySvc))
		courier.PUT("/orders/:id/reject", rejectOrderHandler(deps.DeliverySvc))
		courier.PUT("/orders/:id/out-for-delivery", outForDeliveryHandler(deps.DeliverySvc))
		courier.PUT("/orders/:id/reached", reachedHandler(deps.DeliverySvc))
		courier.PUT("/orders/:id/collect-cash", collectCashHandler(deps.DeliverySvc))
		courier.PUT("/orders/:id/delivered", deliveredHandler(deps.DeliverySvc))
	}

	router.PUT("/orders/:id/assign", auth, assignOrderHandler(deps.DeliverySvc))

	admin := router.Group("/admin", auth)
	{
		admin.GET("/delivery-zones", listZonesHandler(deps.ZoneSvc))
		admin.POST("/delivery-zones", createZoneHandler(deps.ZoneSvc))
		admin.PUT("/delivery-zones/:id", updateZoneHandler(deps.ZoneSvc))
		admin.PUT("/delivery-zones/:id/approve", approveZoneHandler(deps.ZoneSvc))
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.DefaultConfig()
	if len(origins) == 1 && origins[0] == "*" {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cfg
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
