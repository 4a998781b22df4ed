package server

import (
	"context"
	"log/slog"
	"net/http"
	"smartsub/internal/handler"
	"smartsub/internal/middleware"
	"smartsub/internal/model"
	"smartsub/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo                *echo.Echo
	subscriptionHandler *handler.SubscriptionHandler
	purchaseHandler     *handler.PurchaseHandler
	balanceHandler      *handler.BalanceHandler
	auth                echo.MiddlewareFunc
}

func NewServer(
	subscriptionService service.SubscriptionService,
	purchaseService service.PurchaseService,
	balanceService service.BalanceService,
	jwtSecret string,
) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newRequestValidator()
	e.HTTPErrorHandler = httpErrorHandler

	e.Use(requestLogger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORS())

	s := &Server{
		echo:                e,
		subscriptionHandler: handler.NewSubscriptionHandler(subscriptionService),
		purchaseHandler:     handler.NewPurchaseHandler(purchaseService),
		balanceHandler:      handler.NewBalanceHandler(balanceService),
		auth:                middleware.JWTAuth(jwtSecret),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- registry --------
	subs := api.Group("/subs")
	subs.POST("", s.subscriptionHandler.CreateSub, s.auth)
	subs.GET("/:id", s.subscriptionHandler.GetSub)
	subs.GET("/:id/active", s.subscriptionHandler.IsSubActive)
	subs.POST("/:id/activate", s.subscriptionHandler.ActivateSub, s.auth)
	subs.POST("/:id/pause", s.subscriptionHandler.PauseSub, s.auth)
	subs.PUT("/:id/price", s.subscriptionHandler.SetSubPrice, s.auth)
	subs.PUT("/:id/duration", s.subscriptionHandler.SetSubDuration, s.auth)

	// -------- purchases --------
	subs.POST("/:id/buy", s.purchaseHandler.BuySub, s.auth)
	subs.POST("/:id/gift", s.purchaseHandler.GiftSub, s.auth)

	users := api.Group("/users")
	users.GET("/:address/subs", s.purchaseHandler.GetActiveSubs)
	users.GET("/:address/subs/:id", s.purchaseHandler.GetUserSub)
	users.GET("/:address/subs/:id/subscribed", s.purchaseHandler.IsUserSubscribed)

	// -------- balances --------
	balance := api.Group("/balance", s.auth)
	balance.GET("", s.balanceHandler.ViewBalance)
	balance.POST("/withdraw", s.balanceHandler.WithdrawBalance)
	balance.GET("/history", s.balanceHandler.PaymentHistory)

	s.echo.RouteNotFound("/*", s.fallback)
}

// fallback handles calls matching no operation: a request with a body hit
// no known operation; a bare request carrying at most a payment amount has
// no operation data at all. Undirected deposits are never accepted.
func (s *Server) fallback(c echo.Context) error {
	if c.Request().ContentLength == 0 {
		return model.ErrPaymentDataMissing
	}
	return model.ErrFunctionNotFound
}

func requestLogger() echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogURI:    true,
		LogMethod: true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			if v.Error != nil {
				slog.Error("request", "method", v.Method, "uri", v.URI, "status", v.Status, "err", v.Error)
			} else {
				slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status)
			}
			return nil
		},
	})
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
