package main

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/pkg/api"
)

func runKeygen(_ context.Context, opts *options, _ []string) error {
	if _, err := os.Stat(opts.keyPath); err == nil && !opts.force {
		return fmt.Errorf("key %s already exists, use --force to replace it", opts.keyPath)
	}

	_, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		return err
	}
	if err := writeSecret(opts.keyPath, hex.EncodeToString(priv.Seed())); err != nil {
		return err
	}

	fmt.Printf("address: %s\nkey:     %s\n", auth.AddressOf(priv.Public().(ed25519.PublicKey)), opts.keyPath)
	return nil
}

func runLogin(ctx context.Context, opts *options, _ []string) error {
	priv, err := loadKey(opts.keyPath)
	if err != nil {
		return err
	}

	now := time.Now()
	client := api.NewAuthServiceClient(http.DefaultClient, opts.server, codecOptions(opts)...)
	resp, err := client.Login(ctx, connect.NewRequest(&api.LoginRequest{
		PublicKey: priv.Public().(ed25519.PublicKey),
		SignedAt:  now.Unix(),
		Signature: auth.SignLogin(priv, now),
	}))
	if err != nil {
		return err
	}

	if err := writeSecret(opts.tokenPath, resp.Msg.Token); err != nil {
		return err
	}
	fmt.Printf("logged in as %s until %s\n", resp.Msg.Address, time.Unix(resp.Msg.ExpiresAt, 0).Format(time.RFC3339))
	return nil
}

func loadKey(path string) (ed25519.PrivateKey, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("no key at %s, run 'ledgerctl keygen' first", path)
	}
	if err != nil {
		return nil, err
	}
	seed, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("key %s is not a hex ed25519 seed", path)
	}
	return ed25519.NewKeyFromSeed(seed), nil
}

func writeSecret(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content+"\n"), 0o600)
}

func codecOptions(opts *options) []connect.ClientOption {
	if opts.json {
		return []connect.ClientOption{api.WithJSON()}
	}
	return nil
}

// ledgerClient returns a client authenticated with the saved session token.
func ledgerClient(opts *options) (*api.LedgerServiceClient, error) {
	data, err := os.ReadFile(opts.tokenPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("not logged in, run 'ledgerctl login' first")
	}
	if err != nil {
		return nil, err
	}

	clientOpts := append(codecOptions(opts), api.WithBearerToken(strings.TrimSpace(string(data))))
	return api.NewLedgerServiceClient(http.DefaultClient, opts.server, clientOpts...), nil
}
