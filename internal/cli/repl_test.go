// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"sync"
	"testing"
)

func TestReplCancelInFlight(t *testing.T) {
	s := &replSession{}

	// No in-flight request: must be a no-op.
	s.cancelInFlight()

	ctx, cancel := context.WithCancel(context.Background())
	s.setCancel(cancel)
	s.cancelInFlight()

	select {
	case <-ctx.Done():
	default:
		t.Error("cancelInFlight should cancel the installed context")
	}

	// The installed func is consumed; a second signal is a no-op.
	s.cancelInFlight()
}

func TestReplCancelConcurrentWithSignal(t *testing.T) {
	// The signal goroutine fires cancelInFlight while processQuery installs
	// and clears the cancel func. Hammer both sides; the race detector
	// flags unsynchronized access.
	s := &replSession{}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				_, cancel := context.WithCancel(context.Background())
				s.setCancel(cancel)
				s.setCancel(nil)
				cancel()
			}
		}()
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				s.cancelInFlight()
			}
		}()
	}
	wg.Wait()
}
