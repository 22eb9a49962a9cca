package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "x",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" || cfg.Env != "development" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.Mongo.URI != "mongodb://localhost:27017" || cfg.Mongo.Database != "accounts" {
		t.Fatalf("unexpected mongo defaults: %+v", cfg.Mongo)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.RoleCacheTTL != time.Hour {
		t.Fatalf("unexpected redis defaults: %+v", cfg.Redis)
	}
	if cfg.Auth.AccessTokenTTL != 15*time.Minute || cfg.Auth.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("unexpected token ttl defaults: %+v", cfg.Auth)
	}
	if cfg.SeedAdmin() {
		t.Fatal("admin seeding must be off without credentials")
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development env by default")
	}
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	if _, err := load(context.Background(), envconfig.MapLookuper(map[string]string{})); err == nil {
		t.Fatal("expected error when JWT_SECRET is not set")
	}
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":       "x",
		"PORT":             "9090",
		"ENV":              "production",
		"ACCESS_TOKEN_TTL": "5m",
		"ADMIN_USERNAME":   "root",
		"ADMIN_PASSWORD":   "toor",
		"REDIS_DB":         "3",
	}))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.IsDevelopment() {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
	if cfg.Auth.AccessTokenTTL != 5*time.Minute {
		t.Fatalf("expected 5m access ttl, got %s", cfg.Auth.AccessTokenTTL)
	}
	if !cfg.SeedAdmin() || cfg.Redis.DB != 3 {
		t.Fatalf("unexpected admin/redis config: %+v %+v", cfg.Admin, cfg.Redis)
	}
}
