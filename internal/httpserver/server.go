package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	cartsvc "freshbasket/internal/service/cart"
	deliverysvc "freshbasket/internal/service/delivery"
	ordersvc "freshbasket/internal/service/order"
	"freshbasket/internal/service/shoprouter"
	zonesvc "freshbasket/internal/service/zone"
)

// Deps carries the services the router needs.
type Deps struct {
	CartSvc     *cartsvc.Service
	OrderSvc    *ordersvc.Service
	DeliverySvc *deliverysvc.Service
	ZoneSvc     *zonesvc.Service
	RouterSvc   *shoprouter.Service
	ProductRepo productLister
	ShopRepo    shopLister
	UserRepo    userGetter
	JWTSecret   string
	CORSOrigins []string
}

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server with all routes wired.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
