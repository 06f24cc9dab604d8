package ledger

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/protectedpay/ledger/internal/models"
	"github.com/protectedpay/ledger/internal/storage/sqlite"
)

func TestPotLifecycle(t *testing.T) {
	_, engine, sink := newTestEngines(t)
	ctx := context.Background()

	pot, err := engine.Create(ctx, "0xA", "vacation", 500, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("contributions accumulate", func(t *testing.T) {
		got, err := engine.Contribute(ctx, pot.ID, "0xA", 200)
		if err != nil {
			t.Fatalf("Contribute failed: %v", err)
		}
		if got.CurrentAmount != 200 {
			t.Errorf("current = %v, want 200", got.CurrentAmount)
		}

		got, err = engine.Contribute(ctx, pot.ID, "0xA", 200)
		if err != nil {
			t.Fatalf("Contribute failed: %v", err)
		}
		if got.CurrentAmount != 400 {
			t.Errorf("current = %v, want 400", got.CurrentAmount)
		}
	})

	t.Run("only the owner may contribute by default", func(t *testing.T) {
		if _, err := engine.Contribute(ctx, pot.ID, "0xEve", 100); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("exceeding the target is allowed", func(t *testing.T) {
		got, err := engine.Contribute(ctx, pot.ID, "0xA", 200)
		if err != nil {
			t.Fatalf("Contribute failed: %v", err)
		}
		if got.CurrentAmount != 600 {
			t.Errorf("current = %v, want 600 (past target 500)", got.CurrentAmount)
		}
	})

	t.Run("non-positive contribution rejected", func(t *testing.T) {
		if _, err := engine.Contribute(ctx, pot.ID, "0xA", 0); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})

	t.Run("only the owner may break", func(t *testing.T) {
		if _, err := engine.Break(ctx, pot.ID, "0xEve"); !errors.Is(err, ErrNotAuthorized) {
			t.Errorf("expected ErrNotAuthorized, got %v", err)
		}
	})

	t.Run("break pays the balance back and is terminal", func(t *testing.T) {
		got, err := engine.Break(ctx, pot.ID, "0xA")
		if err != nil {
			t.Fatalf("Break failed: %v", err)
		}
		if got.Status != models.PotBroken || got.CurrentAmount != 0 {
			t.Errorf("after break: status=%v current=%v", got.Status, got.CurrentAmount)
		}
		payouts := sink.sentTo("0xA")
		if len(payouts) != 1 || payouts[0].amt != 600 {
			t.Errorf("expected one payout of 600 to owner, got %+v", payouts)
		}

		if _, err := engine.Contribute(ctx, pot.ID, "0xA", 100); !errors.Is(err, ErrAlreadyBroken) {
			t.Errorf("expected ErrAlreadyBroken, got %v", err)
		}
		if _, err := engine.Break(ctx, pot.ID, "0xA"); !errors.Is(err, ErrAlreadyBroken) {
			t.Errorf("expected ErrAlreadyBroken, got %v", err)
		}
	})
}

func TestPotCreateValidation(t *testing.T) {
	_, engine, _ := newTestEngines(t)
	ctx := context.Background()

	if _, err := engine.Create(ctx, "0xA", "empty", 0, ""); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount for zero target, got %v", err)
	}
	if _, err := engine.Contribute(ctx, 31337, "0xA", 100); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPotBreakPayoutFailureLeavesPotActive(t *testing.T) {
	_, engine, sink := newTestEngines(t)
	ctx := context.Background()

	pot, err := engine.Create(ctx, "0xA", "rainy day", 500, "")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := engine.Contribute(ctx, pot.ID, "0xA", 300); err != nil {
		t.Fatalf("Contribute failed: %v", err)
	}

	sink.failAll = true
	if _, err := engine.Break(ctx, pot.ID, "0xA"); !errors.Is(err, ErrPayoutFailed) {
		t.Fatalf("expected ErrPayoutFailed, got %v", err)
	}

	got, err := engine.Get(ctx, pot.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Status != models.PotActive || got.CurrentAmount != 300 {
		t.Errorf("pot changed by failed break: status=%v current=%v", got.Status, got.CurrentAmount)
	}

	sink.failAll = false
	got, err = engine.Break(ctx, pot.ID, "0xA")
	if err != nil {
		t.Fatalf("retry Break failed: %v", err)
	}
	if got.Status != models.PotBroken {
		t.Errorf("status = %v, want broken", got.Status)
	}
}

func TestPotPolicies(t *testing.T) {
	ctx := context.Background()

	newPotEngine := func(t *testing.T, policy PotPolicy) (*PotEngine, *fakeSink) {
		t.Helper()
		tempDir, err := os.MkdirTemp("", "ledger-pot-policy-*")
		if err != nil {
			t.Fatalf("Failed to create temp dir: %v", err)
		}
		t.Cleanup(func() { os.RemoveAll(tempDir) })
		store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
		if err != nil {
			t.Fatalf("Failed to create store: %v", err)
		}
		t.Cleanup(func() { store.Close() })
		sink := &fakeSink{failTo: make(map[string]bool)}
		return NewPotEngine(store, sink, policy), sink
	}

	t.Run("open contributions", func(t *testing.T) {
		engine, _ := newPotEngine(t, PotPolicy{OpenContributions: true})
		pot, err := engine.Create(ctx, "0xA", "gift", 500, "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := engine.Contribute(ctx, pot.ID, "0xFriend", 100); err != nil {
			t.Errorf("open pot rejected outside contribution: %v", err)
		}
	})

	t.Run("capped at target", func(t *testing.T) {
		engine, _ := newPotEngine(t, PotPolicy{CapAtTarget: true})
		pot, err := engine.Create(ctx, "0xA", "strict", 500, "")
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if _, err := engine.Contribute(ctx, pot.ID, "0xA", 500); err != nil {
			t.Fatalf("Contribute failed: %v", err)
		}
		if _, err := engine.Contribute(ctx, pot.ID, "0xA", 1); !errors.Is(err, ErrOverfunded) {
			t.Errorf("expected ErrOverfunded, got %v", err)
		}
	})
}
