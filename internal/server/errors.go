package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"smartsub/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// httpErrorHandler renders every failure as {"error": {"kind": ...}} so
// callers assert on the kind and its parameters rather than on text.
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	body := map[string]interface{}{
		"kind": "Internal",
	}

	var (
		notOwner       *model.NotOwnerError
		incorrectValue *model.IncorrectValueError
		validationErrs validator.ValidationErrors
		httpErr        *echo.HTTPError
	)

	switch {
	case errors.As(err, &notOwner):
		status = http.StatusForbidden
		body = map[string]interface{}{
			"kind":   "NotOwner",
			"caller": notOwner.Caller,
		}
	case errors.As(err, &incorrectValue):
		status = http.StatusPaymentRequired
		body = map[string]interface{}{
			"kind":     "IncorrectValue",
			"sent":     incorrectValue.Sent,
			"required": incorrectValue.Required,
		}
	case errors.Is(err, model.ErrSubscriptionNotFound):
		status = http.StatusNotFound
		body = map[string]interface{}{"kind": "SubscriptionNotFound"}
	case errors.Is(err, model.ErrSubscriptionPaused):
		status = http.StatusConflict
		body = map[string]interface{}{"kind": "SubscriptionPaused"}
	case errors.Is(err, model.ErrEmptyBalance):
		status = http.StatusPaymentRequired
		body = map[string]interface{}{"kind": "EmptyBalance"}
	case errors.Is(err, model.ErrInvalidDuration):
		status = http.StatusBadRequest
		body = map[string]interface{}{"kind": "InvalidDuration"}
	case errors.Is(err, model.ErrFunctionNotFound):
		status = http.StatusNotFound
		body = map[string]interface{}{"kind": "FunctionNotFound"}
	case errors.Is(err, model.ErrPaymentDataMissing):
		status = http.StatusPaymentRequired
		body = map[string]interface{}{"kind": "PaymentDataMissing"}
	case errors.Is(err, model.ErrUnauthorized):
		status = http.StatusUnauthorized
		body = map[string]interface{}{"kind": "Unauthorized"}
	case errors.As(err, &validationErrs):
		status = http.StatusBadRequest
		body = map[string]interface{}{
			"kind":    "ValidationFailed",
			"message": validationErrs.Error(),
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		body = map[string]interface{}{
			"kind":    http.StatusText(httpErr.Code),
			"message": fmt.Sprintf("%v", httpErr.Message),
		}
	default:
		slog.Error("unhandled error", "err", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}

	if err := c.JSON(status, map[string]interface{}{"error": body}); err != nil {
		slog.Error("write error response", "err", err)
	}
}
