package dump

import (
	"bytes"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/bronzestone/internal/content"
	"github.com/udisondev/bronzestone/internal/testutil"
)

func vanilla(t *testing.T) *content.Registry {
	t.Helper()
	reg, err := content.Vanilla().Build()
	require.NoError(t, err)
	return reg
}

func TestRecipes(t *testing.T) {
	t.Parallel()

	lines := Recipes(vanilla(t))
	require.Len(t, lines, 5)
	assert.Contains(t, lines, "Recipe_Bronze@forge: Copper:2, Tin:1")
}

func TestItems(t *testing.T) {
	t.Parallel()

	lines := Items(vanilla(t))
	assert.Contains(t, lines, "Hammer kind:TOOL menu:_HammerPieceTable")
	assert.Contains(t, lines, "Iron kind:MATERIAL")
}

func TestBuildMenus(t *testing.T) {
	t.Parallel()

	reg := testutil.BuildRegistry(t, testutil.RegistryFixture{})
	lines := BuildMenus(reg)
	assert.Equal(t, []string{
		"Hammer _HammerPieceTable 2 => piece_workbench,piece_stonecutter",
		"    piece_workbench reqs: Wood:10",
		"    piece_stonecutter reqs: <nil>",
	}, lines)

	reg = testutil.BuildRegistry(t, testutil.RegistryFixture{Requirements: []content.ItemCount{}})
	assert.Equal(t, "    piece_stonecutter reqs: ", BuildMenus(reg)[2])
}

func TestParseSection(t *testing.T) {
	t.Parallel()

	sec, err := ParseSection("piecedump")
	require.NoError(t, err)
	assert.Equal(t, SectionPieces, sec)

	_, err = ParseSection("colliders")
	assert.Error(t, err)
}

func TestToLogger(t *testing.T) {
	t.Parallel()

	rec, logger := testutil.NewLogRecorder()
	ToLogger(logger, vanilla(t), SectionRecipes)

	records := rec.Records()
	require.Len(t, records, 5)
	for _, r := range records {
		assert.Equal(t, slog.LevelDebug, r.Level)
		assert.Equal(t, "recipedump", r.Message)
	}
}

func TestToLogger_DebugDisabled(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ToLogger(logger, vanilla(t))
	assert.Empty(t, buf.String())
}

func TestToFile_RoundTrip(t *testing.T) {
	t.Parallel()

	reg := vanilla(t)
	path := filepath.Join(t.TempDir(), "content.dump.zst")
	require.NoError(t, ToFile(path, reg))

	raw, err := ReadFile(path)
	require.NoError(t, err)

	var want bytes.Buffer
	require.NoError(t, Write(&want, reg))
	assert.Equal(t, want.String(), string(raw))
	assert.True(t, strings.HasPrefix(string(raw), "[recipedump] "))
	assert.Contains(t, string(raw), "[piecedump]     piece_stonecutter reqs: Wood:10, Iron:2\n")
}
