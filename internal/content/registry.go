// Package content holds the host's content registry: items, build menus,
// buildable pieces and crafting recipes.
//
// Entities live in per-kind arenas and reference each other by handle, so
// a Requirement never owns the item it points at.
package content

import (
	"fmt"
	"sort"
)

// ItemID is a handle into Registry's item arena.
type ItemID int32

// MenuID is a handle into Registry's build menu arena.
type MenuID int32

// PieceID is a handle into Registry's piece arena.
type PieceID int32

const (
	NoItem ItemID = -1
	NoMenu MenuID = -1
)

// Item kinds.
const (
	KindMaterial = "MATERIAL"
	KindTool     = "TOOL"
	KindWeapon   = "WEAPON"
	KindFood     = "FOOD"
	KindMisc     = "MISC"
)

// Item is a named registry entry. Tools expose a build menu.
type Item struct {
	Name      string
	Kind      string
	BuildMenu MenuID
}

// BuildMenu is the ordered piece table a tool exposes.
type BuildMenu struct {
	Name   string
	Pieces []PieceID
}

// Piece is one buildable entry of a build menu.
// Requirements == nil and len(Requirements) == 0 are distinct states.
type Piece struct {
	Name         string
	Requirements []Requirement
}

// Requirement is a (resource, amount) pair. Resource is a non-owning handle.
type Requirement struct {
	Resource ItemID
	Amount   int32
}

// Recipe is a crafting station recipe.
type Recipe struct {
	Name         string
	Station      string
	Requirements []Requirement
}

// Registry is the authoritative collection of content definitions.
type Registry struct {
	items   []Item
	byName  map[string]ItemID
	menus   []BuildMenu
	pieces  []Piece
	recipes []Recipe

	generation uint64
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]ItemID, 64),
	}
}

// AddItem appends an item and returns its handle.
// Item names are unique; adding a duplicate returns an error.
func (r *Registry) AddItem(name, kind string) (ItemID, error) {
	if name == "" {
		return NoItem, fmt.Errorf("adding item: empty name")
	}
	if _, ok := r.byName[name]; ok {
		return NoItem, fmt.Errorf("adding item %q: duplicate name", name)
	}
	id := ItemID(len(r.items))
	r.items = append(r.items, Item{Name: name, Kind: kind, BuildMenu: NoMenu})
	r.byName[name] = id
	return id, nil
}

// AddMenu appends an empty build menu and returns its handle.
func (r *Registry) AddMenu(name string) MenuID {
	id := MenuID(len(r.menus))
	r.menus = append(r.menus, BuildMenu{Name: name})
	return id
}

// AddPiece appends a piece to menu. reqs is stored as given, nil included.
func (r *Registry) AddPiece(menu MenuID, name string, reqs []Requirement) (PieceID, error) {
	m := r.Menu(menu)
	if m == nil {
		return -1, fmt.Errorf("adding piece %q: unknown menu %d", name, menu)
	}
	if err := r.checkRequirements(reqs); err != nil {
		return -1, fmt.Errorf("adding piece %q: %w", name, err)
	}
	id := PieceID(len(r.pieces))
	r.pieces = append(r.pieces, Piece{Name: name, Requirements: reqs})
	m.Pieces = append(m.Pieces, id)
	return id, nil
}

// AddRecipe appends a crafting recipe.
func (r *Registry) AddRecipe(name, station string, reqs []Requirement) error {
	if err := r.checkRequirements(reqs); err != nil {
		return fmt.Errorf("adding recipe %q: %w", name, err)
	}
	r.recipes = append(r.recipes, Recipe{Name: name, Station: station, Requirements: reqs})
	return nil
}

// AttachMenu sets the build menu exposed by item.
func (r *Registry) AttachMenu(item ItemID, menu MenuID) error {
	it := r.Item(item)
	if it == nil {
		return fmt.Errorf("attaching menu: unknown item %d", item)
	}
	if r.Menu(menu) == nil {
		return fmt.Errorf("attaching menu to %q: unknown menu %d", it.Name, menu)
	}
	it.BuildMenu = menu
	return nil
}

func (r *Registry) checkRequirements(reqs []Requirement) error {
	for i, req := range reqs {
		if r.Item(req.Resource) == nil {
			return fmt.Errorf("requirement %d: unknown resource %d", i, req.Resource)
		}
	}
	return nil
}

// ItemByName returns the handle of the named item.
func (r *Registry) ItemByName(name string) (ItemID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// Item returns the item behind id, or nil.
func (r *Registry) Item(id ItemID) *Item {
	if id < 0 || int(id) >= len(r.items) {
		return nil
	}
	return &r.items[id]
}

// Menu returns the build menu behind id, or nil.
func (r *Registry) Menu(id MenuID) *BuildMenu {
	if id < 0 || int(id) >= len(r.menus) {
		return nil
	}
	return &r.menus[id]
}

// Piece returns the piece behind id, or nil.
func (r *Registry) Piece(id PieceID) *Piece {
	if id < 0 || int(id) >= len(r.pieces) {
		return nil
	}
	return &r.pieces[id]
}

// ItemName returns the name of id or "" for an unknown handle.
func (r *Registry) ItemName(id ItemID) string {
	if it := r.Item(id); it != nil {
		return it.Name
	}
	return ""
}

// Items returns item handles in insertion order.
func (r *Registry) Items() []ItemID {
	ids := make([]ItemID, len(r.items))
	for i := range r.items {
		ids[i] = ItemID(i)
	}
	return ids
}

// ItemNames returns all item names sorted.
func (r *Registry) ItemNames() []string {
	names := make([]string, 0, len(r.items))
	for i := range r.items {
		names = append(names, r.items[i].Name)
	}
	sort.Strings(names)
	return names
}

// MenuCount returns the number of build menus.
func (r *Registry) MenuCount() int { return len(r.menus) }

// PieceCount returns the number of pieces across all menus.
func (r *Registry) PieceCount() int { return len(r.pieces) }

// Recipes returns the crafting recipes. Callers must not modify them.
func (r *Registry) Recipes() []Recipe { return r.recipes }

// Generation identifies the host load that produced this instance.
func (r *Registry) Generation() uint64 { return r.generation }

// SetGeneration is called by the host when it installs the instance.
func (r *Registry) SetGeneration(g uint64) { r.generation = g }

// Clone returns a deep copy. Nil and empty requirement lists are preserved.
func (r *Registry) Clone() *Registry {
	c := &Registry{
		items:      make([]Item, len(r.items)),
		byName:     make(map[string]ItemID, len(r.byName)),
		menus:      make([]BuildMenu, len(r.menus)),
		pieces:     make([]Piece, len(r.pieces)),
		recipes:    make([]Recipe, len(r.recipes)),
		generation: r.generation,
	}
	copy(c.items, r.items)
	for name, id := range r.byName {
		c.byName[name] = id
	}
	for i, m := range r.menus {
		c.menus[i] = BuildMenu{Name: m.Name, Pieces: append([]PieceID(nil), m.Pieces...)}
	}
	for i, p := range r.pieces {
		c.pieces[i] = Piece{Name: p.Name, Requirements: cloneRequirements(p.Requirements)}
	}
	for i, rc := range r.recipes {
		c.recipes[i] = Recipe{Name: rc.Name, Station: rc.Station, Requirements: cloneRequirements(rc.Requirements)}
	}
	return c
}

func cloneRequirements(reqs []Requirement) []Requirement {
	if reqs == nil {
		return nil
	}
	out := make([]Requirement, len(reqs))
	copy(out, reqs)
	return out
}
