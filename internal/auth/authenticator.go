package auth

import (
	"crypto/ed25519"
	"time"

	"github.com/mmynk/splitledger/internal/models"
)

// Authenticator resolves "who is calling" from a signed login challenge.
// This abstraction allows swapping signature schemes without changing the
// service layer code.
type Authenticator interface {
	// Authenticate verifies that signature was produced by the private key
	// behind publicKey over the login message for signedAt, and returns the
	// caller's address.
	Authenticate(publicKey, signature []byte, signedAt time.Time) (models.Address, error)
}

// SignLogin produces the login signature for key at signedAt. Used by clients.
func SignLogin(key ed25519.PrivateKey, signedAt time.Time) []byte {
	pub := key.Public().(ed25519.PublicKey)
	return ed25519.Sign(key, LoginMessage(AddressOf(pub), signedAt))
}
