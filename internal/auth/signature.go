package auth

import (
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/mmynk/splitledger/internal/models"
)

var (
	ErrInvalidSignature = errors.New("invalid login signature")
	ErrInvalidPublicKey = errors.New("invalid public key")
	ErrStaleLogin       = errors.New("login signature outside the allowed window")
)

// AddressOf derives the ledger address of an ed25519 public key:
// "0x" followed by the hex of the last 20 bytes of its Keccak-256 hash.
func AddressOf(pub ed25519.PublicKey) models.Address {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub)
	sum := h.Sum(nil)
	return models.Address("0x" + hex.EncodeToString(sum[len(sum)-20:]))
}

// LoginMessage is the exact byte string a client signs to log in.
func LoginMessage(addr models.Address, signedAt time.Time) []byte {
	return []byte("splitledger-login:" + string(addr) + ":" + strconv.FormatInt(signedAt.Unix(), 10))
}

// SignatureAuthenticator implements Authenticator with ed25519 signatures.
type SignatureAuthenticator struct {
	window time.Duration
	now    func() time.Time
}

// NewSignatureAuthenticator accepts signatures whose timestamp is within
// window of the current time, in either direction.
func NewSignatureAuthenticator(window time.Duration) *SignatureAuthenticator {
	return &SignatureAuthenticator{window: window, now: time.Now}
}

// Authenticate verifies the login signature and returns the derived address.
func (a *SignatureAuthenticator) Authenticate(publicKey, signature []byte, signedAt time.Time) (models.Address, error) {
	if len(publicKey) != ed25519.PublicKeySize {
		return "", fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidPublicKey, len(publicKey), ed25519.PublicKeySize)
	}

	skew := a.now().Sub(signedAt)
	if skew > a.window || skew < -a.window {
		return "", ErrStaleLogin
	}

	pub := ed25519.PublicKey(publicKey)
	addr := AddressOf(pub)
	if !ed25519.Verify(pub, LoginMessage(addr, signedAt), signature) {
		return "", ErrInvalidSignature
	}

	return addr, nil
}
