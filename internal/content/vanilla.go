package content

// Vanilla returns the built-in content pack the host ships with.
func Vanilla() *Pack {
	return &Pack{
		Items: []ItemDef{
			{Name: "Wood", Kind: KindMaterial},
			{Name: "FineWood", Kind: KindMaterial},
			{Name: "Stone", Kind: KindMaterial},
			{Name: "Flint", Kind: KindMaterial},
			{Name: "Resin", Kind: KindMaterial},
			{Name: "LeatherScraps", Kind: KindMaterial},
			{Name: "Coal", Kind: KindMaterial},
			{Name: "Copper", Kind: KindMaterial},
			{Name: "Tin", Kind: KindMaterial},
			{Name: "Bronze", Kind: KindMaterial},
			{Name: "BronzeNails", Kind: KindMaterial},
			{Name: "Iron", Kind: KindMaterial},
			{Name: "Hammer", Kind: KindTool, BuildMenu: "_HammerPieceTable"},
			{Name: "Hoe", Kind: KindTool, BuildMenu: "_HoePieceTable"},
			{Name: "Cultivator", Kind: KindTool, BuildMenu: "_CultivatorPieceTable"},
			{Name: "AxeStone", Kind: KindWeapon},
			{Name: "AxeBronze", Kind: KindWeapon},
			{Name: "Raspberry", Kind: KindFood},
			{Name: "CarrotSeeds", Kind: KindMisc},
		},
		Menus: []MenuDef{
			{
				Name: "_HammerPieceTable",
				Pieces: []PieceDef{
					{Name: "piece_workbench", Requirements: []ItemCount{{Item: "Wood", Amount: 10}}},
					{Name: "piece_chest_wood", Requirements: []ItemCount{{Item: "Wood", Amount: 10}}},
					{Name: "wood_floor", Requirements: []ItemCount{{Item: "Wood", Amount: 2}}},
					{Name: "wood_roof", Requirements: []ItemCount{{Item: "Wood", Amount: 2}}},
					{Name: "forge", Requirements: []ItemCount{
						{Item: "Stone", Amount: 4},
						{Item: "Coal", Amount: 4},
						{Item: "Wood", Amount: 10},
						{Item: "Copper", Amount: 6},
					}},
					{Name: "piece_stonecutter", Requirements: []ItemCount{
						{Item: "Wood", Amount: 10},
						{Item: "Iron", Amount: 2},
					}},
					{Name: "stone_wall_1x1", Requirements: []ItemCount{{Item: "Stone", Amount: 6}}},
					{Name: "piece_cauldron", Requirements: []ItemCount{{Item: "Tin", Amount: 10}}},
				},
			},
			{
				Name: "_HoePieceTable",
				Pieces: []PieceDef{
					{Name: "raise", Requirements: []ItemCount{{Item: "Stone", Amount: 2}}},
					{Name: "path", Requirements: []ItemCount{}},
					{Name: "paved_road", Requirements: []ItemCount{{Item: "Stone", Amount: 2}}},
				},
			},
			{
				Name: "_CultivatorPieceTable",
				Pieces: []PieceDef{
					{Name: "cultivate", Requirements: []ItemCount{}},
					{Name: "sapling_carrot", Requirements: []ItemCount{{Item: "CarrotSeeds", Amount: 1}}},
				},
			},
		},
		Recipes: []RecipeDef{
			{Name: "Recipe_Hammer", Station: "piece_workbench", Requirements: []ItemCount{
				{Item: "Wood", Amount: 3},
				{Item: "Stone", Amount: 2},
			}},
			{Name: "Recipe_AxeStone", Station: "piece_workbench", Requirements: []ItemCount{
				{Item: "Wood", Amount: 5},
				{Item: "Stone", Amount: 4},
			}},
			{Name: "Recipe_Bronze", Station: "forge", Requirements: []ItemCount{
				{Item: "Copper", Amount: 2},
				{Item: "Tin", Amount: 1},
			}},
			{Name: "Recipe_BronzeNails", Station: "forge", Requirements: []ItemCount{
				{Item: "Bronze", Amount: 1},
			}},
			{Name: "Recipe_AxeBronze", Station: "forge", Requirements: []ItemCount{
				{Item: "Wood", Amount: 4},
				{Item: "Bronze", Amount: 8},
				{Item: "LeatherScraps", Amount: 2},
			}},
		},
	}
}
