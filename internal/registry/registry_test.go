package registry

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/protectedpay/ledger/internal/ledger"
	"github.com/protectedpay/ledger/internal/storage/sqlite"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "registry-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(store)
}

func TestRegister(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	if err := reg.Register(ctx, "0x1", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("name taken by another address", func(t *testing.T) {
		if err := reg.Register(ctx, "0x2", "alice"); !errors.Is(err, ledger.ErrDuplicateUsername) {
			t.Errorf("expected ErrDuplicateUsername, got %v", err)
		}
	})

	t.Run("address already registered", func(t *testing.T) {
		if err := reg.Register(ctx, "0x1", "alice2"); !errors.Is(err, ledger.ErrAlreadyRegistered) {
			t.Errorf("expected ErrAlreadyRegistered, got %v", err)
		}
	})

	t.Run("re-registering the same name is still rejected", func(t *testing.T) {
		if err := reg.Register(ctx, "0x1", "alice"); !errors.Is(err, ledger.ErrAlreadyRegistered) {
			t.Errorf("expected ErrAlreadyRegistered, got %v", err)
		}
	})
}

func TestResolve(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	if err := reg.Register(ctx, "0x1", "alice"); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	t.Run("by name", func(t *testing.T) {
		addr, err := reg.Resolve(ctx, "alice")
		if err != nil || addr != "0x1" {
			t.Errorf("Resolve = %q (err %v), want 0x1", addr, err)
		}
	})

	t.Run("by address", func(t *testing.T) {
		name, err := reg.ReverseResolve(ctx, "0x1")
		if err != nil || name != "alice" {
			t.Errorf("ReverseResolve = %q (err %v), want alice", name, err)
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := reg.Resolve(ctx, "nobody"); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown address", func(t *testing.T) {
		if _, err := reg.ReverseResolve(ctx, "0xFF"); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}
