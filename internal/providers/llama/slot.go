package llama

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"sanavoz/internal/ports"
)

// Slot holds the loaded-or-not state of the language model. Loading runs
// once in the background and may fail silently: the slot simply stays
// empty and the classifier takes its model-unavailable branch.
type Slot struct {
	mu    sync.RWMutex
	model ports.LanguageModel
}

func NewSlot() *Slot {
	return &Slot{}
}

// LoadAsync probes the endpoint in the background and installs the client
// once it answers. No reload or hot-swap: the first success is final.
func (s *Slot) LoadAsync(ctx context.Context, client *Client, probeTimeout time.Duration) {
	if probeTimeout <= 0 {
		probeTimeout = 5 * time.Second
	}
	go func() {
		probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
		defer cancel()

		if err := client.Ping(probeCtx); err != nil {
			slog.Warn("language model endpoint unreachable, continuing without inference", "error", err)
			return
		}
		s.mu.Lock()
		s.model = client
		s.mu.Unlock()
		slog.Info("language model available")
	}()
}

// Model returns the loaded instance, if any.
func (s *Slot) Model() (ports.LanguageModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.model == nil {
		return nil, false
	}
	return s.model, true
}
