// Package host implements the reference host the patcher attaches to: the
// content registry slot, its lifecycle hooks and world loads that replace
// the registry instance.
package host

import (
	"log/slog"

	"github.com/udisondev/bronzestone/internal/content"
)

// LabelCopyOtherDB is the trigger label fired after a world load.
const LabelCopyOtherDB = "ContentDB.CopyOtherDB"

// Runtime owns the current registry instance. It is driven from a single
// loading goroutine, the same way the host serializes its own load phase.
type Runtime struct {
	version    string
	instance   *content.Registry
	generation uint64
	hooks      Hooks
}

// NewRuntime creates a host with no registry loaded yet.
func NewRuntime(version string) *Runtime {
	return &Runtime{version: version}
}

// Version returns the host version string.
func (rt *Runtime) Version() string { return rt.version }

// Hooks returns the postfix hook table.
func (rt *Runtime) Hooks() *Hooks { return &rt.hooks }

// Instance returns the current registry, or nil before the first load.
func (rt *Runtime) Instance() *content.Registry { return rt.instance }

// CopyOtherDB installs a fresh deep copy of src as the registry instance
// and fires the postfix hooks.
func (rt *Runtime) CopyOtherDB(src *content.Registry, label string) {
	rt.generation++
	reg := src.Clone()
	reg.SetGeneration(rt.generation)
	rt.instance = reg

	slog.Debug("content registry replaced",
		"generation", rt.generation,
		"label", label)

	rt.hooks.Fire(label)
}

// Reset drops the registry instance, e.g. when returning to the main menu.
func (rt *Runtime) Reset() {
	rt.instance = nil
}
