package download

import (
	"context"
	"testing"
	"time"
)

func TestPacer_FirstWaitImmediate(t *testing.T) {
	pacer := NewPacer(time.Second)

	start := time.Now()
	if err := pacer.Wait(context.Background()); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Errorf("first Wait took %v, want immediate", elapsed)
	}
}

func TestPacer_SpacesConsecutiveWaits(t *testing.T) {
	interval := 50 * time.Millisecond
	pacer := NewPacer(interval)
	ctx := context.Background()

	start := time.Now()
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if err := pacer.Wait(ctx); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}

	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("two Waits finished in %v, want at least %v apart", elapsed, interval)
	}
}

func TestPacer_DisabledNeverBlocks(t *testing.T) {
	pacer := NewPacer(0)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 5; i++ {
		if err := pacer.Wait(ctx); err != nil {
			t.Fatalf("Wait() error = %v", err)
		}
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("disabled pacer blocked for %v", elapsed)
	}
}

func TestPacer_CancelledContext(t *testing.T) {
	pacer := NewPacer(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := pacer.Wait(ctx); err == nil {
		t.Error("Wait() with cancelled context returned nil error")
	}
}
