package config

import "testing"

func validConfig() Config {
	return Config{
		HTTP:     HTTPConfig{Port: 8080},
		Database: DatabaseConfig{DSN: "postgres://localhost:5432/notehub"},
		Redis:    RedisConfig{Addrs: []string{"localhost:6379"}},
		Storage:  StorageConfig{Endpoint: "localhost:9000"},
	}
}

func TestValidate_OK(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingDSN(t *testing.T) {
	cfg := validConfig()
	cfg.Database.DSN = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing database dsn")
	}
}

func TestValidate_MissingRedisAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Redis.Addrs = nil
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing redis addrs")
	}
}

func TestValidate_MissingStorageEndpoint(t *testing.T) {
	cfg := validConfig()
	cfg.Storage.Endpoint = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for missing storage endpoint")
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("read timeout default = %d, want 10", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Search.TopK != 20 {
		t.Errorf("top_k default = %d, want 20", cfg.Search.TopK)
	}
	if cfg.Embedding.Dimensions != 384 {
		t.Errorf("dimensions default = %d, want 384", cfg.Embedding.Dimensions)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("model default = %q", cfg.Embedding.Model)
	}
	if cfg.Storage.Bucket != "notehub-files" {
		t.Errorf("bucket default = %q", cfg.Storage.Bucket)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("NOTEHUB_TEST_DSN", "postgres://db:5432/x")

	in := []byte("dsn: ${NOTEHUB_TEST_DSN}\nbucket: ${NOTEHUB_TEST_MISSING:-files}\n")
	got := string(expandEnvVars(in))
	want := "dsn: postgres://db:5432/x\nbucket: files\n"
	if got != want {
		t.Errorf("expandEnvVars:\ngot:  %q\nwant: %q", got, want)
	}
}
