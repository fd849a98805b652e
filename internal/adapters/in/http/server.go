// Package http exposes the fulfillment service over a JSON API on echo.
package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Service is the application surface the API drives. *fulfillment.Service satisfies it.
type Service interface {
	PlaceOrder(ctx context.Context, principal *fulfillment.Principal, req fulfillment.PlaceOrderRequest) (queries.OrderView, error)
	GetOrder(ctx context.Context, orderID kernel.UUID) (queries.OrderView, error)
	ListOrders(ctx context.Context, principal *fulfillment.Principal) ([]queries.OrderView, error)
	CancelOrder(ctx context.Context, principal *fulfillment.Principal, orderID kernel.UUID) (queries.OrderView, error)
	AdvanceStatus(ctx context.Context, principal *fulfillment.Principal, orderID kernel.UUID, status order.Status) (queries.OrderView, error)
	DeleteOrder(ctx context.Context, principal *fulfillment.Principal, orderID kernel.UUID) error

	ListClaimable(ctx context.Context, principal *fulfillment.Principal) ([]queries.OrderView, error)
	Claim(ctx context.Context, principal *fulfillment.Principal, orderID kernel.UUID) (queries.OrderView, error)
	UpdateDeliveryStatus(
		ctx context.Context,
		principal *fulfillment.Principal,
		orderID kernel.UUID,
		status order.Status,
		notes string,
	) (queries.OrderView, error)
	ListWorkerOrders(ctx context.Context, principal *fulfillment.Principal) ([]queries.OrderView, error)
	WorkerStats(ctx context.Context, principal *fulfillment.Principal) (queries.WorkerStats, error)

	RegisterWorker(ctx context.Context, principal *fulfillment.Principal, profile worker.Profile) (queries.WorkerView, error)
	ApproveWorker(ctx context.Context, principal *fulfillment.Principal, workerID kernel.UUID) (queries.WorkerView, error)
	RejectWorker(ctx context.Context, principal *fulfillment.Principal, workerID kernel.UUID) error
	SuspendWorker(ctx context.Context, principal *fulfillment.Principal, workerID kernel.UUID, reason string) (queries.WorkerView, error)
	ListWorkers(ctx context.Context, principal *fulfillment.Principal, status *worker.Status) ([]queries.WorkerView, error)
}

// Server holds the echo handlers of the JSON API.
type Server struct {
	svc    Service
	logger *slog.Logger
}

// NewServer requires both a service and a logger.
func NewServer(svc Service, logger *slog.Logger) (*Server, error) {
	if svc == nil {
		return nil, errs.NewValueIsRequiredError("service")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Server{svc: svc, logger: logger}, nil
}

// NewRouter builds the echo instance with middleware and every route registered.
func NewRouter(s *Server, jwtSecret []byte) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Error != nil || v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.logger.LogAttrs(c.Request().Context(), level, "Request",
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	s.Register(e.Group("/api/v1", Authenticate(jwtSecret)))
	return e
}

// Register mounts every route on g, which must run Authenticate first.
func (s *Server) Register(g *echo.Group) {
	g.POST("/orders", s.PlaceOrder)
	g.POST("/orders/guest", s.PlaceGuestOrder)
	g.GET("/orders", s.ListOrders)
	g.GET("/orders/:id", s.GetOrder)
	g.PUT("/orders/:id/cancel", s.CancelOrder)
	g.PUT("/orders/:id/status", s.AdvanceStatus)
	g.DELETE("/orders/:id", s.DeleteOrder)

	g.GET("/delivery/available-orders", s.ListClaimable)
	g.GET("/delivery/my-orders", s.ListWorkerOrders)
	g.GET("/delivery/stats", s.WorkerStats)
	g.PUT("/delivery/orders/:id/claim", s.Claim)
	g.PUT("/delivery/orders/:id/status", s.UpdateDeliveryStatus)
	g.POST("/delivery/signup", s.Signup)

	g.GET("/admin/workers", s.ListWorkers)
	g.POST("/admin/workers/:id/approve", s.ApproveWorker)
	g.POST("/admin/workers/:id/reject", s.RejectWorker)
	g.POST("/admin/workers/:id/suspend", s.SuspendWorker)
}

// PlaceOrder handles POST /orders for an authenticated customer and answers 201.
func (s *Server) PlaceOrder(c echo.Context) error {
	p := principalFrom(c)
	if p == nil {
		return respondError(c, s.logger, fulfillment.ErrUnauthenticated)
	}
	return s.placeOrder(c, p)
}

// PlaceGuestOrder ignores any token: the order is always recorded without a customer.
func (s *Server) PlaceGuestOrder(c echo.Context) error {
	return s.placeOrder(c, nil)
}

func (s *Server) placeOrder(c echo.Context, p *fulfillment.Principal) error {
	var req PlaceOrderRequest
	if err := s.bind(c, &req); err != nil {
		return respondError(c, s.logger, err)
	}

	domainReq, err := req.toDomain()
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.PlaceOrder(c.Request().Context(), p, domainReq)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusCreated, newOrderResponse(view))
}

// ListOrders handles GET /orders.
func (s *Server) ListOrders(c echo.Context) error {
	views, err := s.svc.ListOrders(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponses(views))
}

// GetOrder is public: knowing the order id is enough to track it.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.GetOrder(c.Request().Context(), id)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// CancelOrder handles PUT /orders/:id/cancel.
func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.CancelOrder(c.Request().Context(), principalFrom(c), id)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// AdvanceStatus handles PUT /orders/:id/status.
func (s *Server) AdvanceStatus(c echo.Context) error {
	id, status, _, err := s.statusUpdate(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.AdvanceStatus(c.Request().Context(), principalFrom(c), id, status)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// DeleteOrder handles DELETE /orders/:id and answers 204.
func (s *Server) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	if err = s.svc.DeleteOrder(c.Request().Context(), principalFrom(c), id); err != nil {
		return respondError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListClaimable handles GET /delivery/available-orders.
func (s *Server) ListClaimable(c echo.Context) error {
	views, err := s.svc.ListClaimable(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponses(views))
}

// ListWorkerOrders handles GET /delivery/my-orders.
func (s *Server) ListWorkerOrders(c echo.Context) error {
	views, err := s.svc.ListWorkerOrders(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponses(views))
}

// WorkerStats handles GET /delivery/stats.
func (s *Server) WorkerStats(c echo.Context) error {
	stats, err := s.svc.WorkerStats(c.Request().Context(), principalFrom(c))
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, StatsResponse{
		TotalDeliveries: stats.TotalDeliveries,
		TodayDeliveries: stats.TodayDeliveries,
		ActiveOrders:    stats.ActiveOrders,
		TotalEarnings:   stats.TotalEarnings,
	})
}

// Claim handles PUT /delivery/orders/:id/claim. A lost race answers 400 with kind
// already_claimed.
func (s *Server) Claim(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.Claim(c.Request().Context(), principalFrom(c), id)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// UpdateDeliveryStatus handles PUT /delivery/orders/:id/status.
func (s *Server) UpdateDeliveryStatus(c echo.Context) error {
	id, status, notes, err := s.statusUpdate(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.UpdateDeliveryStatus(c.Request().Context(), principalFrom(c), id, status, notes)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newOrderResponse(view))
}

// Signup handles POST /delivery/signup and answers 201 with the pending worker.
func (s *Server) Signup(c echo.Context) error {
	var req SignupRequest
	if err := s.bind(c, &req); err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.RegisterWorker(c.Request().Context(), principalFrom(c), req.toProfile())
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusCreated, newWorkerResponse(view))
}

// ListWorkers handles GET /admin/workers with an optional status filter.
func (s *Server) ListWorkers(c echo.Context) error {
	var status *worker.Status
	if raw := c.QueryParam("status"); raw != "" {
		parsed, err := worker.ParseStatus(strings.ToLower(raw))
		if err != nil {
			return respondError(c, s.logger, err)
		}
		status = &parsed
	}

	views, err := s.svc.ListWorkers(c.Request().Context(), principalFrom(c), status)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	out := make([]WorkerResponse, 0, len(views))
	for _, v := range views {
		out = append(out, newWorkerResponse(v))
	}
	return c.JSON(http.StatusOK, out)
}

// ApproveWorker handles POST /admin/workers/:id/approve.
func (s *Server) ApproveWorker(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.ApproveWorker(c.Request().Context(), principalFrom(c), id)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newWorkerResponse(view))
}

// RejectWorker handles POST /admin/workers/:id/reject and answers 204.
func (s *Server) RejectWorker(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	if err = s.svc.RejectWorker(c.Request().Context(), principalFrom(c), id); err != nil {
		return respondError(c, s.logger, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SuspendWorker handles POST /admin/workers/:id/suspend.
func (s *Server) SuspendWorker(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, s.logger, err)
	}

	var req SuspendRequest
	if err = s.bind(c, &req); err != nil {
		return respondError(c, s.logger, err)
	}

	view, err := s.svc.SuspendWorker(c.Request().Context(), principalFrom(c), id, req.Reason)
	if err != nil {
		return respondError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, newWorkerResponse(view))
}

func (s *Server) statusUpdate(c echo.Context) (kernel.UUID, order.Status, string, error) {
	id, err := pathID(c)
	if err != nil {
		return kernel.UUID{}, "", "", err
	}

	var req UpdateStatusRequest
	if err = s.bind(c, &req); err != nil {
		return kernel.UUID{}, "", "", err
	}

	status, err := order.ParseStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		return kernel.UUID{}, "", "", err
	}
	return id, status, req.Notes, nil
}

// bind decodes the body and runs the struct validation tags.
func (s *Server) bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("request body", err)
	}
	return c.Validate(dst)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(c.Param("id"))
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("id", err)
	}
	return id, nil
}
