package content

import (
	"fmt"
)

// Pack is the serialized form of a registry, as read from content files.
type Pack struct {
	Items   []ItemDef   `yaml:"items"`
	Menus   []MenuDef   `yaml:"menus,omitempty"`
	Recipes []RecipeDef `yaml:"recipes,omitempty"`
}

// ItemDef describes one item. BuildMenu names an entry of Pack.Menus.
type ItemDef struct {
	Name      string `yaml:"name"`
	Kind      string `yaml:"kind"`
	BuildMenu string `yaml:"build_menu,omitempty"`
}

// MenuDef describes a build menu and its pieces in order.
type MenuDef struct {
	Name   string     `yaml:"name"`
	Pieces []PieceDef `yaml:"pieces"`
}

// PieceDef describes a buildable piece. A nil Requirements slice is kept
// nil in the registry.
type PieceDef struct {
	Name         string      `yaml:"name"`
	Requirements []ItemCount `yaml:"requirements"`
}

// RecipeDef describes a crafting recipe.
type RecipeDef struct {
	Name         string      `yaml:"name"`
	Station      string      `yaml:"station,omitempty"`
	Requirements []ItemCount `yaml:"requirements"`
}

// ItemCount references an item by name.
type ItemCount struct {
	Item   string `yaml:"item"`
	Amount int32  `yaml:"amount"`
}

// Build resolves names and produces a registry.
func (p *Pack) Build() (*Registry, error) {
	r := New()
	for _, d := range p.Items {
		kind := d.Kind
		if kind == "" {
			kind = KindMisc
		}
		if _, err := r.AddItem(d.Name, kind); err != nil {
			return nil, err
		}
	}

	menus := make(map[string]MenuID, len(p.Menus))
	for _, md := range p.Menus {
		if md.Name == "" {
			return nil, fmt.Errorf("menu: empty name")
		}
		if _, dup := menus[md.Name]; dup {
			return nil, fmt.Errorf("menu %q: duplicate name", md.Name)
		}
		mid := r.AddMenu(md.Name)
		menus[md.Name] = mid
		for _, pd := range md.Pieces {
			reqs, err := r.resolveCounts(pd.Requirements)
			if err != nil {
				return nil, fmt.Errorf("menu %q piece %q: %w", md.Name, pd.Name, err)
			}
			if _, err := r.AddPiece(mid, pd.Name, reqs); err != nil {
				return nil, err
			}
		}
	}

	for _, d := range p.Items {
		if d.BuildMenu == "" {
			continue
		}
		mid, ok := menus[d.BuildMenu]
		if !ok {
			return nil, fmt.Errorf("item %q: unknown build menu %q", d.Name, d.BuildMenu)
		}
		id, _ := r.ItemByName(d.Name)
		if err := r.AttachMenu(id, mid); err != nil {
			return nil, err
		}
	}

	for _, rd := range p.Recipes {
		reqs, err := r.resolveCounts(rd.Requirements)
		if err != nil {
			return nil, fmt.Errorf("recipe %q: %w", rd.Name, err)
		}
		if err := r.AddRecipe(rd.Name, rd.Station, reqs); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) resolveCounts(counts []ItemCount) ([]Requirement, error) {
	if counts == nil {
		return nil, nil
	}
	reqs := make([]Requirement, len(counts))
	for i, c := range counts {
		id, ok := r.ItemByName(c.Item)
		if !ok {
			return nil, fmt.Errorf("unknown item %q", c.Item)
		}
		reqs[i] = Requirement{Resource: id, Amount: c.Amount}
	}
	return reqs, nil
}
