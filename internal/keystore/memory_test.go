package keystore

import (
	"context"
	"errors"
	"testing"
)

func TestMemory_GetEmpty(t *testing.T) {
	m := NewMemory()

	_, err := m.Get(context.Background())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestMemory_SetGetRemove(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if err := m.Set(ctx, "first-key-0123456789"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := m.Get(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "first-key-0123456789" {
		t.Errorf("got %q", got)
	}

	// replacement
	if err := m.Set(ctx, "second-key-0123456789"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, _ = m.Get(ctx)
	if got != "second-key-0123456789" {
		t.Errorf("got %q after replace", got)
	}

	if err := m.Remove(ctx); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := m.Get(ctx); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v after remove, want ErrNotFound", err)
	}
}

func TestMemory_Validate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	valid, err := m.Validate(ctx)
	if err != nil || valid {
		t.Errorf("empty store: valid=%v err=%v, want false nil", valid, err)
	}

	_ = m.Set(ctx, "short")
	valid, err = m.Validate(ctx)
	if err != nil || valid {
		t.Errorf("short key: valid=%v err=%v, want false nil", valid, err)
	}

	_ = m.Set(ctx, "long-enough-key-0123456789")
	valid, err = m.Validate(ctx)
	if err != nil || !valid {
		t.Errorf("good key: valid=%v err=%v, want true nil", valid, err)
	}
}

func TestWellFormed(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"", false},
		{"short", false},
		{"exactly-16-chars", true},
		{"key with spaces inside", false},
		{"key\twith\ttabs\t0123456789", false},
		{"valid-key-0123456789", true},
	}
	for _, tt := range tests {
		if got := WellFormed(tt.key); got != tt.want {
			t.Errorf("WellFormed(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}
