// Command mint signs a session credential for local development and
// testing. The output token can be passed as a bearer header or set as
// the session cookie.
//
// The signing secret and credential lifetime default to the server's
// configuration (same file discovery and DESKHIVE_* overrides as the
// server), so minted credentials verify against a locally running
// instance without repeating its settings.
//
// Example:
//
//	mint -subject usr_1 -tenant 1111...-1111 -role admin
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/deskhive/deskhive/pkg/auth"
	"github.com/deskhive/deskhive/pkg/config"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mint:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	secret := flag.String("secret", "", "signing secret (defaults to the server config's auth.secret)")
	subject := flag.String("subject", "", "principal subject (required)")
	email := flag.String("email", "", "principal email")
	tenantID := flag.String("tenant", "", "tenant id the credential is bound to (required)")
	role := flag.String("role", "agent", "role: agent, admin, or owner")
	ttl := flag.Duration("ttl", 0, "credential lifetime (defaults to the server config's auth.token_ttl)")
	flag.Parse()

	if *secret == "" || *ttl <= 0 {
		cfg, err := config.Load(*configPath)
		if err != nil {
			return fmt.Errorf("loading config (pass -secret and -ttl to mint without one): %w", err)
		}
		*secret, *ttl = signingDefaults(*secret, *ttl, cfg)
	}

	if *secret == "" {
		return fmt.Errorf("-secret is required")
	}
	if *subject == "" {
		return fmt.Errorf("-subject is required")
	}
	if *tenantID == "" {
		return fmt.Errorf("-tenant is required")
	}

	switch auth.Role(*role) {
	case auth.RoleAgent, auth.RoleAdmin, auth.RoleOwner:
	default:
		return fmt.Errorf("unknown role %q", *role)
	}

	now := time.Now()
	token, err := auth.Issue([]byte(*secret), auth.Claims{
		Subject:   *subject,
		Email:     *email,
		TenantID:  *tenantID,
		Role:      auth.Role(*role),
		IssuedAt:  now,
		ExpiresAt: now.Add(*ttl),
	})
	if err != nil {
		return err
	}

	fmt.Println(token)
	return nil
}

// signingDefaults fills in the secret and lifetime from the server
// configuration when the flags left them unset. Flags win, so a one-off
// token can still diverge from the config.
func signingDefaults(secret string, ttl time.Duration, cfg *config.Config) (string, time.Duration) {
	if secret == "" {
		secret = cfg.Auth.Secret
	}
	if ttl <= 0 {
		ttl = cfg.Auth.TokenTTL
	}
	return secret, ttl
}
