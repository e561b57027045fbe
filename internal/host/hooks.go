package host

import (
	"fmt"
	"log/slog"
	"sync"
)

// Hook is called synchronously after the host finished (re)populating its
// content registry. label names the host call that triggered it.
type Hook func(label string)

type hookEntry struct {
	owner string
	name  string
	fn    Hook
}

// Hooks is the host's postfix hook table. Hooks run in registration order
// on the goroutine that fires them.
type Hooks struct {
	mu      sync.Mutex
	entries []hookEntry
}

// Register adds fn under owner. name is used in diagnostics only.
func (h *Hooks) Register(owner, name string, fn Hook) error {
	if owner == "" {
		return fmt.Errorf("registering hook %q: empty owner", name)
	}
	if fn == nil {
		return fmt.Errorf("registering hook %q: nil func", name)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries, hookEntry{owner: owner, name: name, fn: fn})
	return nil
}

// UnregisterAll removes every hook registered by owner and returns how many
// were removed.
func (h *Hooks) UnregisterAll(owner string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	kept := h.entries[:0]
	removed := 0
	for _, e := range h.entries {
		if e.owner == owner {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	// Drop references held past the new length.
	for i := len(kept); i < len(h.entries); i++ {
		h.entries[i] = hookEntry{}
	}
	h.entries = kept
	return removed
}

// Len returns the number of registered hooks.
func (h *Hooks) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Fire runs all hooks with label. A panicking hook is logged and skipped;
// it never interrupts the host's loading sequence.
func (h *Hooks) Fire(label string) {
	h.mu.Lock()
	snapshot := make([]hookEntry, len(h.entries))
	copy(snapshot, h.entries)
	h.mu.Unlock()

	for _, e := range snapshot {
		runHook(e, label)
	}
}

func runHook(e hookEntry, label string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("hook panicked",
				"owner", e.owner,
				"hook", e.name,
				"label", label,
				"panic", r)
		}
	}()
	e.fn(label)
}
