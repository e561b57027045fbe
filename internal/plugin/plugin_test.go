package plugin

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bronzestone/internal/config"
	"github.com/udisondev/bronzestone/internal/content"
	"github.com/udisondev/bronzestone/internal/dump"
	"github.com/udisondev/bronzestone/internal/host"
	"github.com/udisondev/bronzestone/internal/patch"
	"github.com/udisondev/bronzestone/internal/testutil"
)

type resultRecorder struct {
	results []patch.Result
}

func (r *resultRecorder) ObservePatch(res patch.Result, _ int) {
	r.results = append(r.results, res)
}

func stonecutterIron(t *testing.T, reg *content.Registry) bool {
	t.Helper()
	for _, req := range testutil.Stonecutter(t, reg).Requirements {
		if reg.ItemName(req.Resource) == "Iron" {
			return true
		}
	}
	return false
}

func TestAwake_PatchesEveryWorldLoad(t *testing.T) {
	t.Parallel()

	src, err := content.Vanilla().Build()
	require.NoError(t, err)

	rt := host.NewRuntime("0.217.46")
	obs := &resultRecorder{}
	_, logger := testutil.NewLogRecorder()

	p, err := Awake(rt, config.DefaultBronzestone(), WithLogger(logger), WithObserver(obs))
	require.NoError(t, err)
	defer p.Close()

	rt.CopyOtherDB(src, host.LabelCopyOtherDB)
	assert.False(t, stonecutterIron(t, rt.Instance()))
	// The pristine source is never touched.
	assert.True(t, stonecutterIron(t, src))

	rt.Hooks().Fire(host.LabelCopyOtherDB)
	rt.CopyOtherDB(src, host.LabelCopyOtherDB)
	assert.False(t, stonecutterIron(t, rt.Instance()))

	assert.Equal(t, []patch.Result{patch.Success, patch.NoMatchFound, patch.Success}, obs.results)
	assert.True(t, p.Engine().Succeeded())
}

func TestAwake_TriggerBeforeLoad(t *testing.T) {
	t.Parallel()

	rt := host.NewRuntime("0.217.46")
	obs := &resultRecorder{}
	_, logger := testutil.NewLogRecorder()
	p, err := Awake(rt, config.DefaultBronzestone(), WithLogger(logger), WithObserver(obs))
	require.NoError(t, err)
	defer p.Close()

	rt.Hooks().Fire("early")
	assert.Equal(t, []patch.Result{patch.RegistryNotReady}, obs.results)
}

func TestAwake_HostVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		version    string
		constraint string
		wantErr    bool
	}{
		{name: "satisfied", version: "0.217.46", constraint: ">= 0.200.0"},
		{name: "no constraint", version: "not-a-version", constraint: ""},
		{name: "too old", version: "0.150.3", constraint: ">= 0.200.0", wantErr: true},
		{name: "bad version", version: "latest", constraint: ">= 0.200.0", wantErr: true},
		{name: "bad constraint", version: "0.217.46", constraint: "!!foo", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rt := host.NewRuntime(tt.version)
			cfg := config.DefaultBronzestone()
			cfg.Plugin.HostConstraint = tt.constraint
			_, logger := testutil.NewLogRecorder()

			p, err := Awake(rt, cfg, WithLogger(logger))
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, rt.Hooks().Len())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, rt.Hooks().Len())
			p.Close()
		})
	}
}

func TestAwake_InvalidDumpSection(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultBronzestone()
	cfg.Dump.Sections = []string{"colliders"}
	_, err := Awake(host.NewRuntime("0.217.46"), cfg)
	assert.Error(t, err)
}

func TestClose_Unregisters(t *testing.T) {
	t.Parallel()

	rt := host.NewRuntime("0.217.46")
	require.NoError(t, rt.Hooks().Register("other", "x", func(string) {}))
	_, logger := testutil.NewLogRecorder()

	p, err := Awake(rt, config.DefaultBronzestone(), WithLogger(logger))
	require.NoError(t, err)
	assert.Equal(t, 2, rt.Hooks().Len())

	p.Close()
	p.Close()
	assert.Equal(t, 1, rt.Hooks().Len())
}

func TestAwake_DumpFileAfterSuccess(t *testing.T) {
	t.Parallel()

	src, err := content.Vanilla().Build()
	require.NoError(t, err)

	cfg := config.DefaultBronzestone()
	cfg.Dump.File = filepath.Join(t.TempDir(), "content.dump.zst")
	cfg.Dump.Sections = []string{"piecedump"}

	rt := host.NewRuntime("0.217.46")
	_, logger := testutil.NewLogRecorder()
	p, err := Awake(rt, cfg, WithLogger(logger))
	require.NoError(t, err)
	defer p.Close()

	rt.CopyOtherDB(src, host.LabelCopyOtherDB)

	raw, err := dump.ReadFile(cfg.Dump.File)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[piecedump]     piece_stonecutter reqs: Wood:10, Bronze:2\n")
}
