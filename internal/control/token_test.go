package control

import (
	"sync"
	"testing"
	"time"
)

func TestTokenLifecycle(t *testing.T) {
	var tok Token

	if tok.ShouldStop() {
		t.Fatal("fresh token should not report stop")
	}

	tok.RequestStop()
	if !tok.ShouldStop() {
		t.Fatal("token should report stop after RequestStop")
	}

	// Stays set until explicit reset.
	if !tok.ShouldStop() {
		t.Fatal("stop flag must be sticky")
	}

	tok.Reset()
	if tok.ShouldStop() {
		t.Fatal("token should be clear after Reset")
	}
}

func TestTokenConcurrentAccess(t *testing.T) {
	var tok Token
	var wg sync.WaitGroup

	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				tok.ShouldStop()
			}
		}()
	}
	tok.RequestStop()
	wg.Wait()

	if !tok.ShouldStop() {
		t.Fatal("stop request lost under concurrent reads")
	}
}

func TestSleepCompletesWhenNotCancelled(t *testing.T) {
	var tok Token

	start := time.Now()
	if !tok.Sleep(50 * time.Millisecond) {
		t.Fatal("Sleep reported cancellation without a stop request")
	}
	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("Sleep returned after %v, want >= 50ms", elapsed)
	}
}

func TestSleepReturnsImmediatelyWhenAlreadyStopped(t *testing.T) {
	var tok Token
	tok.RequestStop()

	start := time.Now()
	if tok.Sleep(time.Second) {
		t.Fatal("Sleep completed despite prior stop request")
	}
	if elapsed := time.Since(start); elapsed > 20*time.Millisecond {
		t.Errorf("Sleep took %v with stop already set, want immediate return", elapsed)
	}
}

func TestSleepUnblocksWithinOneSlice(t *testing.T) {
	var tok Token

	go func() {
		time.Sleep(30 * time.Millisecond)
		tok.RequestStop()
	}()

	start := time.Now()
	if tok.Sleep(5 * time.Second) {
		t.Fatal("Sleep completed despite stop request")
	}
	if elapsed := time.Since(start); elapsed > 200*time.Millisecond {
		t.Errorf("Sleep took %v to observe cancellation", elapsed)
	}
}
