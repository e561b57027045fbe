package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVanilla_Build(t *testing.T) {
	t.Parallel()

	reg, err := Vanilla().Build()
	require.NoError(t, err)

	hammer, ok := reg.ItemByName("Hammer")
	require.True(t, ok)
	menu := reg.Menu(reg.Item(hammer).BuildMenu)
	require.NotNil(t, menu)
	assert.Equal(t, "_HammerPieceTable", menu.Name)

	var found bool
	for _, pid := range menu.Pieces {
		p := reg.Piece(pid)
		if p.Name != "piece_stonecutter" {
			continue
		}
		found = true
		require.Len(t, p.Requirements, 2)
		assert.Equal(t, "Iron", reg.ItemName(p.Requirements[1].Resource))
		assert.Equal(t, int32(2), p.Requirements[1].Amount)
	}
	assert.True(t, found, "piece_stonecutter in hammer menu")

	_, ok = reg.ItemByName("Bronze")
	assert.True(t, ok)
	assert.Len(t, reg.Recipes(), 5)
}

func TestRegistry_AddItem(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		items   []string
		wantErr bool
	}{
		{name: "unique names", items: []string{"Wood", "Stone"}},
		{name: "duplicate name", items: []string{"Wood", "Wood"}, wantErr: true},
		{name: "empty name", items: []string{""}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg := New()
			var lastErr error
			for _, n := range tt.items {
				if _, err := reg.AddItem(n, KindMaterial); err != nil {
					lastErr = err
				}
			}
			if tt.wantErr {
				assert.Error(t, lastErr)
			} else {
				assert.NoError(t, lastErr)
			}
		})
	}
}

func TestRegistry_AddPieceUnknownResource(t *testing.T) {
	t.Parallel()

	reg := New()
	menu := reg.AddMenu("m")
	_, err := reg.AddPiece(menu, "p", []Requirement{{Resource: 42, Amount: 1}})
	assert.Error(t, err)

	_, err = reg.AddPiece(MenuID(7), "p", nil)
	assert.Error(t, err)
}

func TestRegistry_HandlesOutOfRange(t *testing.T) {
	t.Parallel()

	reg := New()
	assert.Nil(t, reg.Item(NoItem))
	assert.Nil(t, reg.Item(3))
	assert.Nil(t, reg.Menu(NoMenu))
	assert.Nil(t, reg.Piece(-1))
	assert.Equal(t, "", reg.ItemName(NoItem))
}

func TestRegistry_ClonePreservesNilAndEmpty(t *testing.T) {
	t.Parallel()

	reg := New()
	iron, err := reg.AddItem("Iron", KindMaterial)
	require.NoError(t, err)
	menu := reg.AddMenu("m")
	missing, err := reg.AddPiece(menu, "missing", nil)
	require.NoError(t, err)
	empty, err := reg.AddPiece(menu, "empty", []Requirement{})
	require.NoError(t, err)
	full, err := reg.AddPiece(menu, "full", []Requirement{{Resource: iron, Amount: 3}})
	require.NoError(t, err)

	c := reg.Clone()
	assert.Nil(t, c.Piece(missing).Requirements)
	assert.NotNil(t, c.Piece(empty).Requirements)
	assert.Len(t, c.Piece(empty).Requirements, 0)

	// Mutating the clone leaves the original alone.
	c.Piece(full).Requirements[0].Amount = 99
	c.Menu(menu).Pieces[0] = full
	assert.Equal(t, int32(3), reg.Piece(full).Requirements[0].Amount)
	assert.Equal(t, missing, reg.Menu(menu).Pieces[0])
	assert.Equal(t, reg.Digest(), reg.Clone().Digest())
	assert.NotEqual(t, reg.Digest(), c.Digest())
}

func TestRegistry_DigestIgnoresGeneration(t *testing.T) {
	t.Parallel()

	reg, err := Vanilla().Build()
	require.NoError(t, err)
	before := reg.Digest()
	reg.SetGeneration(12)
	assert.Equal(t, before, reg.Digest())
	assert.Len(t, before, 64)
}

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		raw     string
		wantErr bool
		check   func(t *testing.T, reg *Registry)
	}{
		{
			name: "nil and empty requirement lists stay distinct",
			raw: `
items:
  - {name: Hammer, kind: TOOL, build_menu: hammer}
  - {name: Iron, kind: MATERIAL}
menus:
  - name: hammer
    pieces:
      - name: no_list
      - name: empty_list
        requirements: []
      - name: with_iron
        requirements:
          - {item: Iron, amount: 1}
`,
			check: func(t *testing.T, reg *Registry) {
				hammer, ok := reg.ItemByName("Hammer")
				require.True(t, ok)
				menu := reg.Menu(reg.Item(hammer).BuildMenu)
				require.NotNil(t, menu)
				require.Len(t, menu.Pieces, 3)
				assert.Nil(t, reg.Piece(menu.Pieces[0]).Requirements)
				assert.NotNil(t, reg.Piece(menu.Pieces[1]).Requirements)
				assert.Len(t, reg.Piece(menu.Pieces[1]).Requirements, 0)
				assert.Len(t, reg.Piece(menu.Pieces[2]).Requirements, 1)
			},
		},
		{
			name:    "missing items key",
			raw:     "menus: []\n",
			wantErr: true,
		},
		{
			name:    "unknown kind",
			raw:     "items:\n  - {name: Iron, kind: METAL}\n",
			wantErr: true,
		},
		{
			name:    "negative amount",
			raw:     "items:\n  - {name: Iron}\nrecipes:\n  - {name: r, requirements: [{item: Iron, amount: -1}]}\n",
			wantErr: true,
		},
		{
			name:    "unknown requirement item",
			raw:     "items:\n  - {name: Iron}\nrecipes:\n  - {name: r, requirements: [{item: Gold, amount: 1}]}\n",
			wantErr: true,
		},
		{
			name:    "unknown build menu",
			raw:     "items:\n  - {name: Hammer, kind: TOOL, build_menu: nope}\n",
			wantErr: true,
		},
		{
			name: "json input",
			raw:  `{"items":[{"name":"Iron","kind":"MATERIAL"}]}`,
			check: func(t *testing.T, reg *Registry) {
				_, ok := reg.ItemByName("Iron")
				assert.True(t, ok)
				assert.Equal(t, KindMaterial, reg.Item(0).Kind)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			reg, err := Parse([]byte(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.check(t, reg)
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "pack.yaml")
	require.NoError(t, os.WriteFile(path, []byte("items:\n  - {name: Stone, kind: MATERIAL}\n"), 0o644))

	reg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stone"}, reg.ItemNames())

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_SamplePack(t *testing.T) {
	t.Parallel()

	reg, err := LoadFile(filepath.Join("..", "..", "config", "content", "sample.yaml"))
	require.NoError(t, err)

	hammer, ok := reg.ItemByName("Hammer")
	require.True(t, ok)
	menu := reg.Menu(reg.Item(hammer).BuildMenu)
	require.NotNil(t, menu)
	require.Len(t, menu.Pieces, 3)

	repair := reg.Piece(menu.Pieces[2])
	assert.Equal(t, "piece_repair", repair.Name)
	assert.NotNil(t, repair.Requirements)
	assert.Empty(t, repair.Requirements)
}
