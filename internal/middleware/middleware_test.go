package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/telemetry"
	"github.com/mmynk/splitledger/pkg/api"
)

// echoAuth answers Login with the caller found in the request context.
type echoAuth struct{}

func (echoAuth) Login(ctx context.Context, _ *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return connect.NewResponse(&api.LoginResponse{Address: string(GetCaller(ctx))}), nil
}

func setupInterceptedServer(t *testing.T, jwtManager *auth.JWTManager, metrics *telemetry.Metrics) string {
	t.Helper()

	path, handler := api.NewAuthServiceHandler(echoAuth{}, connect.WithInterceptors(
		MetricsInterceptor(metrics),
		RequireAuth(jwtManager),
		LoggingInterceptor(),
	))
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("middleware-test-secret-0123456789", time.Hour)
	metrics := telemetry.NewMetrics()
	url := setupInterceptedServer(t, jwtManager, metrics)

	token, _, err := jwtManager.Generate(models.Address("0xabc"))
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name       string
		opts       []connect.ClientOption
		wantCode   connect.Code
		wantCaller string
	}{
		{name: "valid token", opts: []connect.ClientOption{api.WithBearerToken(token)}, wantCaller: "0xabc"},
		{name: "missing token", wantCode: connect.CodeUnauthenticated},
		{name: "garbage token", opts: []connect.ClientOption{api.WithBearerToken("garbage")}, wantCode: connect.CodeUnauthenticated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := api.NewAuthServiceClient(http.DefaultClient, url, tt.opts...)
			resp, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{}))
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("expected %v, got %v", tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login failed: %v", err)
			}
			if resp.Msg.Address != tt.wantCaller {
				t.Errorf("caller: expected %q, got %q", tt.wantCaller, resp.Msg.Address)
			}
		})
	}

	procedure := api.AuthServiceLoginProcedure
	if got := testutil.ToFloat64(metrics.RPCRequests.WithLabelValues(procedure, "ok")); got != 1 {
		t.Errorf("ok count: expected 1, got %v", got)
	}
	if got := testutil.ToFloat64(metrics.RPCRequests.WithLabelValues(procedure, connect.CodeUnauthenticated.String())); got != 2 {
		t.Errorf("unauthenticated count: expected 2, got %v", got)
	}
}

func TestWithCaller(t *testing.T) {
	ctx := context.Background()
	if got := GetCaller(ctx); got != "" {
		t.Errorf("expected empty caller, got %q", got)
	}
	if got := GetCaller(WithCaller(ctx, "0xdef")); got != "0xdef" {
		t.Errorf("expected 0xdef, got %q", got)
	}
}
