package http

import (
	"context"
	"errors"
	"log/slog"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/skillbarter/internal/domain"
)

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(ctx context.Context, logger *slog.Logger, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound(err.Error())
	}

	var opErr *domain.InvalidOperationError
	if errors.As(err, &opErr) {
		return huma.Error400BadRequest(opErr.Error())
	}

	var permErr *domain.PermissionDeniedError
	if errors.As(err, &permErr) {
		return huma.Error403Forbidden(permErr.Error())
	}

	var stateErr *domain.InvalidStateError
	if errors.As(err, &stateErr) {
		return huma.Error422UnprocessableEntity(stateErr.Error())
	}

	var emailErr *domain.EmailConflictError
	if errors.As(err, &emailErr) {
		return huma.Error409Conflict(emailErr.Error())
	}

	if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrInvalidToken) {
		return huma.Error401Unauthorized(err.Error())
	}

	logger.ErrorContext(ctx, "unhandled request error", "error", err)
	return huma.Error500InternalServerError("internal server error")
}
