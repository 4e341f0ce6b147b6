package middleware

import (
	"context"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// CallerKey is the context key for the authenticated caller address.
const CallerKey contextKey = "caller"

// GetCaller extracts the caller address from the context.
// Returns empty string if not found.
func GetCaller(ctx context.Context) models.Address {
	addr, _ := ctx.Value(CallerKey).(models.Address)
	return addr
}

// WithCaller returns a copy of ctx carrying addr as the caller.
func WithCaller(ctx context.Context, addr models.Address) context.Context {
	return context.WithValue(ctx, CallerKey, addr)
}

// RequireAuth returns an interceptor that validates the Bearer token and
// puts the caller address into the request context.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || tokenString == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				slog.WarnContext(ctx, "Rejected token", "procedure", req.Spec().Procedure, "error", err)
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithCaller(ctx, claims.Address), req)
		}
	}
}
