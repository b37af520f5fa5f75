package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := Load()
	if cfg.Server.Port != "8080" {
		t.Fatalf("server port want 8080 got %s", cfg.Server.Port)
	}
	if cfg.ImageCache.MaxDimension != 900 || cfg.ImageCache.Quality != 78 {
		t.Fatalf("image cache defaults want 900/78 got %d/%d", cfg.ImageCache.MaxDimension, cfg.ImageCache.Quality)
	}
	if cfg.ImgBB.MaxDimension != 1600 || cfg.ImgBB.Quality != 82 {
		t.Fatalf("imgbb defaults want 1600/82 got %d/%d", cfg.ImgBB.MaxDimension, cfg.ImgBB.Quality)
	}
	if cfg.Cart.TTLHours != 168 {
		t.Fatalf("cart ttl want 168 got %d", cfg.Cart.TTLHours)
	}
	if cfg.JWT.RememberMeExpireHours != 720 {
		t.Fatalf("remember me hours want 720 got %d", cfg.JWT.RememberMeExpireHours)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("SERVER_PORT", "9191")
	t.Setenv("IMGBB_API_KEY", "secret-key")

	cfg := Load()
	if cfg.Server.Port != "9191" {
		t.Fatalf("server port want 9191 got %s", cfg.Server.Port)
	}
	if cfg.ImgBB.APIKey != "secret-key" {
		t.Fatalf("imgbb key want secret-key got %s", cfg.ImgBB.APIKey)
	}
}

func TestLogConfigToLoggerOptions(t *testing.T) {
	opts := LogConfig{Dir: "/tmp/x", Filename: "a.log", Level: "warn", MaxSizeMB: 3}.ToLoggerOptions()
	if opts.Dir != "/tmp/x" || opts.Filename != "a.log" || opts.Level != "warn" || opts.MaxSizeMB != 3 {
		t.Fatalf("unexpected logger options: %+v", opts)
	}
}

func TestJWTWeakSecret(t *testing.T) {
	cases := []struct {
		secret string
		weak   bool
	}{
		{secret: "", weak: true},
		{secret: "short", weak: true},
		{secret: "change-me-in-production-0123456789abcdef", weak: true},
		{secret: "q8Zp3vL1mN7xR2tY6wB9kD4hF0jS5gC8", weak: false},
	}
	for _, tc := range cases {
		if got := (JWTConfig{SecretKey: tc.secret}).WeakSecret(); got != tc.weak {
			t.Fatalf("secret %q weak want %v got %v", tc.secret, tc.weak, got)
		}
	}
	if !(ServerConfig{Mode: " Release "}).Release() || (ServerConfig{Mode: "debug"}).Release() {
		t.Fatalf("release mode detection mismatch")
	}
}
