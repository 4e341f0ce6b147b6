package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/id"
	"github.com/mmynk/splitledger/internal/ledger"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api"
)

// connectCode maps ledger error kinds to connect codes.
func connectCode(err error) connect.Code {
	switch {
	case errors.Is(err, ledger.ErrInvalidInput):
		return connect.CodeInvalidArgument
	case errors.Is(err, ledger.ErrInvalidIndex):
		return connect.CodeOutOfRange
	case errors.Is(err, ledger.ErrUnauthorized):
		return connect.CodePermissionDenied
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return connect.CodeFailedPrecondition
	case errors.Is(err, ledger.ErrPayoutFailed):
		return connect.CodeUnavailable
	default:
		return connect.CodeInternal
	}
}

// fail logs err under op and converts it into a connect error. Rule
// violations are logged as warnings, everything else as errors.
func fail(ctx context.Context, op string, err error) error {
	code := connectCode(err)
	if code == connect.CodeInternal || code == connect.CodeUnavailable {
		slog.ErrorContext(ctx, op+" failed", "code", code.String(), "error", err)
	} else {
		slog.WarnContext(ctx, op+" rejected", "code", code.String(), "error", err)
	}
	return connect.NewError(code, err)
}

// callerFrom returns the authenticated caller or an Unauthenticated error.
func callerFrom(ctx context.Context) (models.Address, error) {
	caller := middleware.GetCaller(ctx)
	if caller == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return caller, nil
}

// groupAt resolves a request's group reference. A group ID wins over the
// index.
func groupAt(ref api.GroupRef) (ledger.At, error) {
	if ref.GroupID == "" {
		return ledger.Index(ref.GroupIndex), nil
	}
	return parseAt(ref.GroupID, id.PrefixGroup, "group_id")
}

// elementAt resolves an index-or-ID pair for persons and debts.
func elementAt(index int, rawID string, prefix id.Prefix, field string) (ledger.At, error) {
	if rawID == "" {
		return ledger.Index(index), nil
	}
	return parseAt(rawID, prefix, field)
}

func parseAt(raw string, prefix id.Prefix, field string) (ledger.At, error) {
	x, err := id.ParseWithPrefix(raw, prefix)
	if err != nil {
		return ledger.At{}, fmt.Errorf("%w: %s: %v", ledger.ErrInvalidInput, field, err)
	}
	return ledger.ByID(x), nil
}

// endSpan records err on span and ends it.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
