package api

import (
	"context"
	"encoding/json"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/codec"
)

const (
	CodecJSON = "json"
	CodecCBOR = "cbor"
)

// JSONCodec carries messages as application/json.
type JSONCodec struct{}

func (JSONCodec) Name() string                         { return CodecJSON }
func (JSONCodec) Marshal(msg any) ([]byte, error)      { return json.Marshal(msg) }
func (JSONCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }

// CBORCodec carries messages as application/cbor in deterministic encoding.
type CBORCodec struct{}

func (CBORCodec) Name() string                         { return CodecCBOR }
func (CBORCodec) Marshal(msg any) ([]byte, error)      { return codec.Marshal(msg) }
func (CBORCodec) Unmarshal(data []byte, msg any) error { return codec.Unmarshal(data, msg) }

// handlerCodecs lets every handler accept both encodings.
func handlerCodecs() []connect.HandlerOption {
	return []connect.HandlerOption{
		connect.WithCodec(JSONCodec{}),
		connect.WithCodec(CBORCodec{}),
	}
}

// WithJSON makes a client send JSON instead of the default CBOR.
func WithJSON() connect.ClientOption {
	return connect.WithCodec(JSONCodec{})
}

// WithBearerToken attaches token to every request as an Authorization header.
func WithBearerToken(token string) connect.ClientOption {
	return connect.WithInterceptors(connect.UnaryInterceptorFunc(
		func(next connect.UnaryFunc) connect.UnaryFunc {
			return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				req.Header().Set("Authorization", "Bearer "+token)
				return next(ctx, req)
			}
		},
	))
}
