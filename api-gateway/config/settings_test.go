package config

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "OPENAI_CHAT_MODEL", "MAX_AUDIO_BYTES", "STOCK_CACHE_TTL", "STOCK_REQUESTS_PER_SECOND"} {
		t.Setenv(k, "")
	}

	s := Load()
	if s.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", s.Port)
	}
	if s.ChatModel != "gpt-4" {
		t.Fatalf("ChatModel = %q, want gpt-4", s.ChatModel)
	}
	if s.MaxAudioBytes != 15<<20 {
		t.Fatalf("MaxAudioBytes = %d, want %d", s.MaxAudioBytes, 15<<20)
	}
	if s.StockCacheTTL != 10*time.Minute {
		t.Fatalf("StockCacheTTL = %v", s.StockCacheTTL)
	}
	if s.StockRPS != 2 {
		t.Fatalf("StockRPS = %v", s.StockRPS)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("MAX_AUDIO_BYTES", "1024")
	t.Setenv("STOCK_CACHE_TTL", "30s")
	t.Setenv("STOCK_REQUESTS_PER_SECOND", "not-a-number")
	t.Setenv("UPLOAD_DIR", "/data/uploads")

	s := Load()
	if s.Port != "9000" {
		t.Fatalf("Port = %q", s.Port)
	}
	if s.MaxAudioBytes != 1024 {
		t.Fatalf("MaxAudioBytes = %d", s.MaxAudioBytes)
	}
	if s.StockCacheTTL != 30*time.Second {
		t.Fatalf("StockCacheTTL = %v", s.StockCacheTTL)
	}
	if s.StockRPS != 2 {
		t.Fatalf("invalid STOCK_REQUESTS_PER_SECOND should fall back, got %v", s.StockRPS)
	}
	if s.UploadDir != "/data/uploads" {
		t.Fatalf("UploadDir = %q", s.UploadDir)
	}
}

func TestInitSupabaseRequiresConfig(t *testing.T) {
	if _, err := InitSupabase(&Settings{}); err != ErrSupabaseNotConfigured {
		t.Fatalf("err = %v, want ErrSupabaseNotConfigured", err)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]logrus.Level{
		"":        logrus.InfoLevel,
		"debug":   logrus.DebugLevel,
		" WARN ":  logrus.WarnLevel,
		"verbose": logrus.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}
