// Package plugin bootstraps the patcher inside a host: it checks the host
// version, builds the single patch engine and registers it as a postfix
// hook on the host's content registry load.
package plugin

import (
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"

	"github.com/udisondev/bronzestone/internal/config"
	"github.com/udisondev/bronzestone/internal/dump"
	"github.com/udisondev/bronzestone/internal/host"
	"github.com/udisondev/bronzestone/internal/patch"
)

// Plugin identity.
const (
	ID      = patch.ModID
	Name    = "Bronze Stoneworking"
	Version = "1.0.1"
)

// Plugin owns the patch engine and its hook registration.
type Plugin struct {
	hooks  *host.Hooks
	engine *patch.Engine
	log    *slog.Logger
	closed bool
}

// Option configures Awake.
type Option func(*options)

type options struct {
	log      *slog.Logger
	observer patch.Observer
}

// WithLogger sets the logger passed to the engine and dumps.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithObserver forwards patch outcomes to o.
func WithObserver(o patch.Observer) Option {
	return func(opts *options) { opts.observer = o }
}

// Awake validates the host, constructs the engine and registers the hook.
func Awake(rt *host.Runtime, cfg config.Bronzestone, opts ...Option) (*Plugin, error) {
	o := options{log: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.log.With("mod", ID)

	if err := checkHostVersion(rt.Version(), cfg.Plugin.HostConstraint); err != nil {
		return nil, err
	}

	engineOpts := []patch.Option{patch.WithLogger(o.log)}
	if o.observer != nil {
		engineOpts = append(engineOpts, patch.WithObserver(o.observer))
	}
	engine, err := patch.NewEngine(rt, cfg.Plugin.Rule, engineOpts...)
	if err != nil {
		return nil, err
	}

	sections, err := parseSections(cfg.Dump.Sections)
	if err != nil {
		return nil, err
	}

	p := &Plugin{hooks: rt.Hooks(), engine: engine, log: log}
	hook := func(label string) {
		if cfg.Dump.OnTrigger {
			if reg := rt.Instance(); reg != nil {
				dump.ToLogger(log, reg, sections...)
			}
		}
		res := engine.Apply(label)
		if cfg.Dump.File != "" && res == patch.Success {
			if err := dump.ToFile(cfg.Dump.File, rt.Instance(), sections...); err != nil {
				log.Error("writing content dump", "path", cfg.Dump.File, "err", err)
			}
		}
	}
	if err := rt.Hooks().Register(ID, host.LabelCopyOtherDB, hook); err != nil {
		return nil, fmt.Errorf("registering %s hook: %w", ID, err)
	}

	log.Info("plugin awake",
		"name", Name,
		"version", Version,
		"host_version", rt.Version(),
		"nexus_id", cfg.Plugin.NexusID)
	return p, nil
}

// Engine returns the plugin's patch engine.
func (p *Plugin) Engine() *patch.Engine { return p.engine }

// Close unregisters every hook of the plugin. It is safe to call twice.
func (p *Plugin) Close() {
	if p.closed {
		return
	}
	p.closed = true
	n := p.hooks.UnregisterAll(ID)
	p.log.Info("plugin unloaded", "hooks_removed", n)
}

func checkHostVersion(version, constraint string) error {
	if constraint == "" {
		return nil
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("parsing host version %q: %w", version, err)
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing host constraint %q: %w", constraint, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("host version %s does not satisfy %q", version, constraint)
	}
	return nil
}

func parseSections(names []string) ([]dump.Section, error) {
	out := make([]dump.Section, 0, len(names))
	for _, n := range names {
		sec, err := dump.ParseSection(n)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, nil
}
