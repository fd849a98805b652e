package http

import (
	"errors"
	"log/slog"
	"net/http"

	"fulfillment/internal/core/application/fulfillment"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/worker"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error kinds carried in the "error" field of every non-2xx body.
const (
	KindUnauthenticated    = "unauthenticated"
	KindForbidden          = "forbidden"
	KindWorkerNotActive    = "worker_not_active"
	KindNotFound           = "not_found"
	KindAlreadyClaimed     = "already_claimed"
	KindOrderUnavailable   = "order_unavailable"
	KindInvalidTransition  = "invalid_transition"
	KindInvalidState       = "invalid_state"
	KindNotAssigned        = "not_assigned"
	KindInvalidStatus      = "invalid_status"
	KindInvalidRequest     = "invalid_request"
	KindWorkerInvalidState = "worker_invalid_state"
	KindDuplicateIdentity  = "duplicate_identity"
	KindInternal           = "internal"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"error"`
	Message string `json:"message"`
}

func writeError(c echo.Context, code int, kind, message string) error {
	return c.JSON(code, Error{Code: code, Kind: kind, Message: message})
}

// errorMappings is checked in order: ErrAlreadyClaimed wraps ErrOrderUnavailable, so the more
// specific sentinel comes first.
var errorMappings = []struct {
	target error
	code   int
	kind   string
}{
	{fulfillment.ErrUnauthenticated, http.StatusUnauthorized, KindUnauthenticated},
	{commands.ErrForbidden, http.StatusForbidden, KindForbidden},
	{services.ErrWorkerNotActive, http.StatusForbidden, KindWorkerNotActive},
	{errs.ErrObjectNotFound, http.StatusNotFound, KindNotFound},
	{services.ErrAlreadyClaimed, http.StatusBadRequest, KindAlreadyClaimed},
	{services.ErrOrderUnavailable, http.StatusBadRequest, KindOrderUnavailable},
	{order.ErrInvalidTransition, http.StatusBadRequest, KindInvalidTransition},
	{order.ErrInvalidState, http.StatusBadRequest, KindInvalidState},
	{order.ErrNotAssigned, http.StatusBadRequest, KindNotAssigned},
	{order.ErrInvalidDeliveryOutcome, http.StatusBadRequest, KindInvalidStatus},
	{worker.ErrInvalidState, http.StatusConflict, KindWorkerInvalidState},
	{commands.ErrDuplicateIdentity, http.StatusConflict, KindDuplicateIdentity},
	{commands.ErrPlacementFailed, 0, KindInternal},
	{errs.ErrValueIsInvalid, http.StatusBadRequest, KindInvalidRequest},
	{errs.ErrValueIsRequired, http.StatusBadRequest, KindInvalidRequest},
	{errs.ErrValueIsOutOfRange, http.StatusBadRequest, KindInvalidRequest},
}

// classify maps a domain error to its HTTP status and kind. A zero status means the error is
// unexpected.
func classify(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.code, m.kind
		}
	}
	return 0, KindInternal
}

// respondError writes the mapped status, or logs the error and answers 500.
func respondError(c echo.Context, logger *slog.Logger, err error) error {
	if code, kind := classify(err); code != 0 {
		return writeError(c, code, kind, err.Error())
	}

	logger.ErrorContext(c.Request().Context(), "Request failed",
		"method", c.Request().Method,
		"path", c.Path(),
		"error", err,
	)
	return writeError(c, http.StatusInternalServerError, KindInternal, "internal server error")
}
