package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Hsinha11/AI-Journal/pkg/domain/model"
	"github.com/Hsinha11/AI-Journal/pkg/utils/logging"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
)

// Handle logs err with its goerr values and stack and reports it to Sentry when a client is bound.
// It returns err as is.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	capture(ctx, err, msg)
	return err
}

func capture(ctx context.Context, err error, msg string) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("message", msg)
		var ge *goerr.Error
		if errors.As(err, &ge) {
			for k, v := range ge.Values() {
				scope.SetExtra(k, v)
			}
		}
		hub.CaptureException(err)
	})
}

// StatusCode maps the error taxonomy to an HTTP status
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, model.ErrModelUnavailable),
		errors.Is(err, model.ErrIndexUnavailable),
		errors.Is(err, model.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage is the error text shown to clients. Server side details stay in the log.
func publicMessage(err error, status int) string {
	switch {
	case errors.Is(err, model.ErrModelUnavailable):
		return "search model is unavailable"
	case errors.Is(err, model.ErrIndexUnavailable):
		return "search index is unavailable"
	case errors.Is(err, model.ErrStoreUnavailable):
		return "storage is unavailable"
	case status >= 500:
		return http.StatusText(status)
	}

	// Client errors: the outermost goerr message is the most specific one
	var ge *goerr.Error
	if errors.As(err, &ge) && ge.Message() != "" {
		return ge.Message()
	}
	return err.Error()
}

type errorResponse struct {
	Error string `json:"error"`
}

// HandleHTTP writes a JSON error response with a status derived from err.
// 5xx errors are logged and reported, 4xx errors are logged at info level.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	status := StatusCode(err)
	if status >= 500 {
		_ = Handle(ctx, err, "HTTP error")
	} else {
		logging.From(ctx).Info("HTTP client error", "status", status, "error", err.Error())
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if encErr := json.NewEncoder(w).Encode(errorResponse{Error: publicMessage(err, status)}); encErr != nil {
		logging.From(ctx).Error("failed to encode error response", "error", encErr)
	}
}
