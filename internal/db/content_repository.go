package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/bronzestone/internal/content"
)

// ContentRepository stores host content definitions in PostgreSQL.
type ContentRepository struct {
	db *pgxpool.Pool
}

// NewContentRepository creates a new ContentRepository.
func NewContentRepository(db *pgxpool.Pool) *ContentRepository {
	return &ContentRepository{db: db}
}

type itemRow struct {
	name, kind, menu string
}

type pieceRow struct {
	id      int32
	menuID  int32
	name    string
	hasReqs bool
}

type recipeRow struct {
	id      int32
	name    string
	station string
	hasReqs bool
}

type reqRow struct {
	ownerID int32
	item    string
	amount  int32
}

// Load reads the whole content store and builds a registry from it.
func (r *ContentRepository) Load(ctx context.Context) (*content.Registry, error) {
	var (
		items      []itemRow
		menuIDs    []int32
		menuNames  []string
		pieces     []pieceRow
		pieceReqs  []reqRow
		recipes    []recipeRow
		recipeReqs []reqRow
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := r.db.Query(gctx, `
			SELECT i.name, i.kind, COALESCE(m.name, '')
			FROM content_items i
			LEFT JOIN content_menus m ON m.id = i.build_menu
			ORDER BY i.id
		`)
		if err != nil {
			return fmt.Errorf("querying items: %w", err)
		}
		items, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (itemRow, error) {
			var it itemRow
			err := row.Scan(&it.name, &it.kind, &it.menu)
			return it, err
		})
		if err != nil {
			return fmt.Errorf("scanning items: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, `SELECT id, name FROM content_menus ORDER BY id`)
		if err != nil {
			return fmt.Errorf("querying menus: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var id int32
			var name string
			if err := rows.Scan(&id, &name); err != nil {
				return fmt.Errorf("scanning menu row: %w", err)
			}
			menuIDs = append(menuIDs, id)
			menuNames = append(menuNames, name)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("iterating menu rows: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, `
			SELECT id, menu_id, name, has_requirements
			FROM content_pieces
			ORDER BY menu_id, position
		`)
		if err != nil {
			return fmt.Errorf("querying pieces: %w", err)
		}
		pieces, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (pieceRow, error) {
			var p pieceRow
			err := row.Scan(&p.id, &p.menuID, &p.name, &p.hasReqs)
			return p, err
		})
		if err != nil {
			return fmt.Errorf("scanning pieces: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pieceReqs, err = r.queryRequirements(gctx, "content_piece_requirements", "piece_id")
		return err
	})
	g.Go(func() error {
		rows, err := r.db.Query(gctx, `
			SELECT id, name, station, has_requirements
			FROM content_recipes
			ORDER BY id
		`)
		if err != nil {
			return fmt.Errorf("querying recipes: %w", err)
		}
		recipes, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (recipeRow, error) {
			var rc recipeRow
			err := row.Scan(&rc.id, &rc.name, &rc.station, &rc.hasReqs)
			return rc, err
		})
		if err != nil {
			return fmt.Errorf("scanning recipes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		recipeReqs, err = r.queryRequirements(gctx, "content_recipe_requirements", "recipe_id")
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	pack := &content.Pack{Items: make([]content.ItemDef, 0, len(items))}
	for _, it := range items {
		pack.Items = append(pack.Items, content.ItemDef{Name: it.name, Kind: it.kind, BuildMenu: it.menu})
	}

	pieceCounts := groupRequirements(pieceReqs)
	menuIndex := make(map[int32]int, len(menuIDs))
	for i, id := range menuIDs {
		menuIndex[id] = i
		pack.Menus = append(pack.Menus, content.MenuDef{Name: menuNames[i]})
	}
	for _, p := range pieces {
		idx, ok := menuIndex[p.menuID]
		if !ok {
			return nil, fmt.Errorf("piece %q: unknown menu %d", p.name, p.menuID)
		}
		pd := content.PieceDef{Name: p.name}
		if p.hasReqs {
			pd.Requirements = append([]content.ItemCount{}, pieceCounts[p.id]...)
		}
		pack.Menus[idx].Pieces = append(pack.Menus[idx].Pieces, pd)
	}

	recipeCounts := groupRequirements(recipeReqs)
	for _, rc := range recipes {
		rd := content.RecipeDef{Name: rc.name, Station: rc.station}
		if rc.hasReqs {
			rd.Requirements = append([]content.ItemCount{}, recipeCounts[rc.id]...)
		}
		pack.Recipes = append(pack.Recipes, rd)
	}

	reg, err := pack.Build()
	if err != nil {
		return nil, fmt.Errorf("building registry from database: %w", err)
	}

	slog.Info("loaded content from database",
		"items", len(items),
		"menus", len(menuIDs),
		"pieces", len(pieces),
		"recipes", len(recipes))
	return reg, nil
}

func (r *ContentRepository) queryRequirements(ctx context.Context, table, owner string) ([]reqRow, error) {
	query := fmt.Sprintf(`
		SELECT q.%[2]s, i.name, q.amount
		FROM %[1]s q
		JOIN content_items i ON i.id = q.item_id
		ORDER BY q.%[2]s, q.position
	`, table, owner)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", table, err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (reqRow, error) {
		var rr reqRow
		err := row.Scan(&rr.ownerID, &rr.item, &rr.amount)
		return rr, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", table, err)
	}
	return out, nil
}

func groupRequirements(rows []reqRow) map[int32][]content.ItemCount {
	out := make(map[int32][]content.ItemCount)
	for _, rr := range rows {
		out[rr.ownerID] = append(out[rr.ownerID], content.ItemCount{Item: rr.item, Amount: rr.amount})
	}
	return out
}

// Save replaces the whole content store with reg in one transaction.
func (r *ContentRepository) Save(ctx context.Context, reg *content.Registry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			slog.Error("rollback failed", "error", err)
		}
	}()

	if _, err := tx.Exec(ctx, `
		TRUNCATE content_recipe_requirements, content_recipes,
			content_piece_requirements, content_pieces,
			content_items, content_menus
	`); err != nil {
		return fmt.Errorf("clearing content tables: %w", err)
	}

	menuRows := make([][]any, 0, reg.MenuCount())
	var pieceRows, pieceReqRows [][]any
	pieceID := int32(0)
	for m := 0; m < reg.MenuCount(); m++ {
		menu := reg.Menu(content.MenuID(m))
		menuRows = append(menuRows, []any{int32(m), menu.Name})
		for pos, pid := range menu.Pieces {
			p := reg.Piece(pid)
			pieceRows = append(pieceRows, []any{pieceID, int32(m), int32(pos), p.Name, p.Requirements != nil})
			for rpos, req := range p.Requirements {
				pieceReqRows = append(pieceReqRows, []any{pieceID, int32(rpos), int32(req.Resource), req.Amount})
			}
			pieceID++
		}
	}

	ids := reg.Items()
	itemRows := make([][]any, 0, len(ids))
	for _, id := range ids {
		it := reg.Item(id)
		var menu *int32
		if it.BuildMenu != content.NoMenu {
			m := int32(it.BuildMenu)
			menu = &m
		}
		itemRows = append(itemRows, []any{int32(id), it.Name, it.Kind, menu})
	}

	var recipeRows, recipeReqRows [][]any
	for i, rc := range reg.Recipes() {
		recipeRows = append(recipeRows, []any{int32(i), rc.Name, rc.Station, rc.Requirements != nil})
		for rpos, req := range rc.Requirements {
			recipeReqRows = append(recipeReqRows, []any{int32(i), int32(rpos), int32(req.Resource), req.Amount})
		}
	}

	// Order matters: foreign keys are checked per statement.
	copies := []struct {
		table   string
		columns []string
		rows    [][]any
	}{
		{"content_menus", []string{"id", "name"}, menuRows},
		{"content_items", []string{"id", "name", "kind", "build_menu"}, itemRows},
		{"content_pieces", []string{"id", "menu_id", "position", "name", "has_requirements"}, pieceRows},
		{"content_piece_requirements", []string{"piece_id", "position", "item_id", "amount"}, pieceReqRows},
		{"content_recipes", []string{"id", "name", "station", "has_requirements"}, recipeRows},
		{"content_recipe_requirements", []string{"recipe_id", "position", "item_id", "amount"}, recipeReqRows},
	}
	for _, c := range copies {
		if len(c.rows) == 0 {
			continue
		}
		if _, err := tx.CopyFrom(ctx, pgx.Identifier{c.table}, c.columns, pgx.CopyFromRows(c.rows)); err != nil {
			return fmt.Errorf("inserting %s: %w", c.table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.Debug("saved content to database",
		"items", len(itemRows),
		"menus", len(menuRows),
		"pieces", len(pieceRows),
		"recipes", len(recipeRows))
	return nil
}
