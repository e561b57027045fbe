package testutil

import (
	"testing"

	"github.com/udisondev/bronzestone/internal/content"
)

// RegistryFixture describes a small host registry built around the hammer's
// stonecutter piece. The zero value yields Hammer -> _HammerPieceTable ->
// [piece_workbench, piece_stonecutter] with a nil requirement list on the
// stonecutter and Wood, Stone, Iron, Bronze as materials.
type RegistryFixture struct {
	OmitTool      bool
	OmitMenu      bool
	OmitBuildable bool
	OmitTarget    bool

	// Requirements of piece_stonecutter. nil keeps the list missing.
	Requirements []content.ItemCount
}

// StonecutterReqs returns the requirement list [(Iron,1),(Wood,2)].
func StonecutterReqs() []content.ItemCount {
	return []content.ItemCount{
		{Item: "Iron", Amount: 1},
		{Item: "Wood", Amount: 2},
	}
}

// BuildRegistry builds the registry described by f.
func BuildRegistry(tb testing.TB, f RegistryFixture) *content.Registry {
	tb.Helper()

	p := &content.Pack{
		Items: []content.ItemDef{
			{Name: "Wood", Kind: content.KindMaterial},
			{Name: "Stone", Kind: content.KindMaterial},
			{Name: "Iron", Kind: content.KindMaterial},
		},
	}
	if !f.OmitTarget {
		p.Items = append(p.Items, content.ItemDef{Name: "Bronze", Kind: content.KindMaterial})
	}
	if !f.OmitTool {
		tool := content.ItemDef{Name: "Hammer", Kind: content.KindTool}
		if !f.OmitMenu {
			tool.BuildMenu = "_HammerPieceTable"
		}
		p.Items = append(p.Items, tool)
	}
	if !f.OmitMenu {
		menu := content.MenuDef{
			Name: "_HammerPieceTable",
			Pieces: []content.PieceDef{
				{Name: "piece_workbench", Requirements: []content.ItemCount{{Item: "Wood", Amount: 10}}},
			},
		}
		if !f.OmitBuildable {
			menu.Pieces = append(menu.Pieces, content.PieceDef{
				Name:         "piece_stonecutter",
				Requirements: f.Requirements,
			})
		}
		p.Menus = append(p.Menus, menu)
	}

	reg, err := p.Build()
	if err != nil {
		tb.Fatalf("building registry fixture: %v", err)
	}
	return reg
}

// Stonecutter returns the piece_stonecutter entry of reg's hammer menu.
func Stonecutter(tb testing.TB, reg *content.Registry) *content.Piece {
	tb.Helper()

	hammer, ok := reg.ItemByName("Hammer")
	if !ok {
		tb.Fatalf("fixture registry has no Hammer")
	}
	menu := reg.Menu(reg.Item(hammer).BuildMenu)
	if menu == nil {
		tb.Fatalf("fixture Hammer has no build menu")
	}
	for _, pid := range menu.Pieces {
		if p := reg.Piece(pid); p.Name == "piece_stonecutter" {
			return p
		}
	}
	tb.Fatalf("fixture menu has no piece_stonecutter")
	return nil
}

// RequirementCounts renders reqs back into (name, amount) pairs.
func RequirementCounts(reg *content.Registry, reqs []content.Requirement) []content.ItemCount {
	out := make([]content.ItemCount, len(reqs))
	for i, r := range reqs {
		out[i] = content.ItemCount{Item: reg.ItemName(r.Resource), Amount: r.Amount}
	}
	return out
}

// StaticSource serves a fixed registry instance; nil means not ready.
type StaticSource struct {
	Registry *content.Registry
}

// Instance implements patch.Source.
func (s *StaticSource) Instance() *content.Registry { return s.Registry }
