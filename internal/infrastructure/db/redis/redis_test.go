package redis

import "testing"

func TestClientOptions(t *testing.T) {
	opts := clientOptions(Config{Addr: "cache:6379", DB: 2})
	if opts.Addr != "cache:6379" || opts.DB != 2 {
		t.Fatalf("address not applied: %+v", opts)
	}
	if opts.ClientName != clientName {
		t.Errorf("expected client name %q, got %q", clientName, opts.ClientName)
	}
	if opts.PoolSize != defaultPoolSize {
		t.Errorf("expected default pool size %d, got %d", defaultPoolSize, opts.PoolSize)
	}
	if opts.ReadTimeout != commandTimeout || opts.WriteTimeout != commandTimeout {
		t.Errorf("unexpected timeouts: read=%v write=%v", opts.ReadTimeout, opts.WriteTimeout)
	}

	if got := clientOptions(Config{Addr: "cache:6379", PoolSize: 32}).PoolSize; got != 32 {
		t.Errorf("expected pool size 32, got %d", got)
	}
}
