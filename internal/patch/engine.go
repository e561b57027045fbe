// Package patch rewrites one crafting requirement inside the host's content
// registry each time the host finishes loading it.
//
// The lookup chain walks tool item -> build menu -> buildable piece ->
// requirement list -> requirement and replaces every reference to the
// source resource with the target resource. Failures are reported, never
// propagated to the host.
package patch

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/agnivade/levenshtein"

	"github.com/udisondev/bronzestone/internal/content"
)

// ModID tags every diagnostic line the patcher emits.
const ModID = "bronzestone"

// Source gives access to the host's current registry instance.
// Instance returns nil while the registry is not ready.
type Source interface {
	Instance() *content.Registry
}

// Observer is notified after every Apply.
type Observer interface {
	ObservePatch(res Result, rewritten int)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the diagnostics logger. The mod attribute is added to it.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l.With("mod", ModID)
		}
	}
}

// WithObserver attaches an outcome observer (metrics).
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.obs = o }
}

// Engine applies a single Rule. It is not safe for concurrent use; the host
// serializes calls during its load phase.
type Engine struct {
	src  Source
	rule Rule
	log  *slog.Logger
	obs  Observer

	// succeeded is set after the first Success and never cleared.
	succeeded bool
	// quiet suppresses repeated "already applied" lines after a success.
	quiet bool

	resolveTarget func(reg *content.Registry, name string) (content.ItemID, bool)
}

// NewEngine validates rule and returns an engine reading from src.
func NewEngine(src Source, rule Rule, opts ...Option) (*Engine, error) {
	if src == nil {
		return nil, fmt.Errorf("creating patch engine: nil source")
	}
	if err := rule.Validate(); err != nil {
		return nil, fmt.Errorf("creating patch engine: %w", err)
	}
	e := &Engine{
		src:  src,
		rule: rule,
		log:  slog.Default().With("mod", ModID),
		resolveTarget: func(reg *content.Registry, name string) (content.ItemID, bool) {
			return reg.ItemByName(name)
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Rule returns the substitution this engine applies.
func (e *Engine) Rule() Rule { return e.rule }

// Succeeded reports whether any Apply call has returned Success.
func (e *Engine) Succeeded() bool { return e.succeeded }

// Apply runs the lookup chain once against the current registry instance.
// label names the trigger and only appears in diagnostics.
func (e *Engine) Apply(label string) Result {
	reg := e.src.Instance()
	log := e.log.With("label", label)
	if reg != nil {
		log = log.With("generation", reg.Generation())
	}

	rewritten, err := e.run(reg)
	res := resultOf(err)
	if err == nil && rewritten == 0 {
		res = NoMatchFound
	}

	switch {
	case res.Failed():
		attrs := []any{"result", res.String(), "err", err}
		var le *lookupError
		if errors.As(err, &le) && le.suggestion != "" {
			attrs = append(attrs, "suggestion", le.suggestion)
		}
		if rewritten > 0 {
			attrs = append(attrs, "rewritten", rewritten)
		}
		log.Error("patch failed", attrs...)
	case res == NoMatchFound:
		e.reportNoMatch(log)
	default:
		e.succeeded = true
		e.quiet = false
		log.Info("recipe updated",
			"buildable", e.rule.Buildable,
			"source", e.rule.Source,
			"target", e.rule.Target,
			"rewritten", rewritten)
	}

	if e.obs != nil {
		e.obs.ObservePatch(res, rewritten)
	}
	return res
}

func (e *Engine) reportNoMatch(log *slog.Logger) {
	if !e.succeeded {
		log.Info("source resource not found in requirements; expected when loading multiple worlds without restarting",
			"buildable", e.rule.Buildable,
			"source", e.rule.Source)
		return
	}
	if e.quiet {
		return
	}
	e.quiet = true
	log.Info("patch already applied to this registry",
		"buildable", e.rule.Buildable)
}

// run performs the lookup chain and the substitution. It returns the number
// of requirements rewritten; rewrites done before an error are kept.
func (e *Engine) run(reg *content.Registry) (int, error) {
	if reg == nil {
		return 0, ErrRegistryNotReady
	}

	toolID, ok := reg.ItemByName(e.rule.Tool)
	if !ok {
		return 0, newLookupError(ErrToolItemMissing, e.rule.Tool, reg.ItemNames())
	}
	tool := reg.Item(toolID)

	menu := reg.Menu(tool.BuildMenu)
	if menu == nil {
		return 0, fmt.Errorf("%w: %q", ErrBuildMenuMissing, e.rule.Tool)
	}

	piece := findPiece(reg, menu, e.rule.Buildable)
	if piece == nil {
		return 0, newLookupError(ErrBuildableEntryMissing, e.rule.Buildable, pieceNames(reg, menu))
	}

	if piece.Requirements == nil {
		return 0, fmt.Errorf("%w: %q", ErrRequirementListMissing, piece.Name)
	}
	if len(piece.Requirements) == 0 {
		return 0, fmt.Errorf("%w: %q", ErrRequirementListEmpty, piece.Name)
	}

	rewritten := 0
	for i := range piece.Requirements {
		req := &piece.Requirements[i]
		if reg.ItemName(req.Resource) != e.rule.Source {
			continue
		}

		target, ok := e.resolveTarget(reg, e.rule.Target)
		if !ok {
			return rewritten, newLookupError(ErrTargetResourceMissing, e.rule.Target, reg.ItemNames())
		}
		req.Resource = target
		rewritten++
	}
	return rewritten, nil
}

// findPiece returns the first piece in menu order named name.
func findPiece(reg *content.Registry, menu *content.BuildMenu, name string) *content.Piece {
	for _, pid := range menu.Pieces {
		if p := reg.Piece(pid); p != nil && p.Name == name {
			return p
		}
	}
	return nil
}

func pieceNames(reg *content.Registry, menu *content.BuildMenu) []string {
	names := make([]string, 0, len(menu.Pieces))
	for _, pid := range menu.Pieces {
		if p := reg.Piece(pid); p != nil {
			names = append(names, p.Name)
		}
	}
	return names
}

// lookupError is a failed name lookup with the closest known name, if any.
type lookupError struct {
	kind       error
	name       string
	suggestion string
}

func newLookupError(kind error, name string, known []string) *lookupError {
	return &lookupError{kind: kind, name: name, suggestion: closest(name, known)}
}

func (e *lookupError) Error() string { return fmt.Sprintf("%v: %q", e.kind, e.name) }

func (e *lookupError) Unwrap() error { return e.kind }

// closest returns the candidate nearest to name within an edit distance
// scaled to the name length, or "".
func closest(name string, candidates []string) string {
	best, bestDist := "", distanceLimit(len(name))+1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(name, c)
		if d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func distanceLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}
