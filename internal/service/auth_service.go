package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/pkg/api"
)

var _ api.AuthServiceHandler = (*AuthService)(nil)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		logger:        logger,
	}
}

// Login verifies a signed login challenge and returns a session token for
// the derived address.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "signed_at", req.Msg.SignedAt)

	// Validate input
	if len(req.Msg.PublicKey) == 0 || len(req.Msg.Signature) == 0 {
		return nil, connect.NewError(connect.CodeInvalidArgument, auth.ErrInvalidSignature)
	}

	addr, err := s.authenticator.Authenticate(req.Msg.PublicKey, req.Msg.Signature, time.Unix(req.Msg.SignedAt, 0))
	if err != nil {
		s.logger.Warn("Login failed", "error", err)
		if errors.Is(err, auth.ErrInvalidPublicKey) {
			return nil, connect.NewError(connect.CodeInvalidArgument, err)
		}
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}

	token, expiresAt, err := s.jwtManager.Generate(addr)
	if err != nil {
		s.logger.Error("Failed to generate token", "address", addr, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	s.logger.Info("Caller logged in successfully", "address", addr)
	return connect.NewResponse(&api.LoginResponse{
		Token:     token,
		Address:   string(addr),
		ExpiresAt: expiresAt.Unix(),
	}), nil
}
