package main

import (
	"testing"
	"time"

	"github.com/deskhive/deskhive/pkg/config"
)

func TestSigningDefaults(t *testing.T) {
	cfg := config.Defaults()
	cfg.Auth.Secret = "cfg-secret"
	cfg.Auth.TokenTTL = 30 * time.Minute

	secret, ttl := signingDefaults("", 0, &cfg)
	if secret != "cfg-secret" {
		t.Errorf("secret = %q, want config value", secret)
	}
	if ttl != 30*time.Minute {
		t.Errorf("ttl = %v, want config value 30m", ttl)
	}

	// Explicit flags win over the config.
	secret, ttl = signingDefaults("flag-secret", time.Hour, &cfg)
	if secret != "flag-secret" {
		t.Errorf("secret = %q, want flag value", secret)
	}
	if ttl != time.Hour {
		t.Errorf("ttl = %v, want flag value 1h", ttl)
	}
}
