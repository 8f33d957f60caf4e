package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/anikdas/wordtrail/internal/card"
)

type itemRow struct {
	ID         string `db:"id"`
	SourceText string `db:"source_text"`
	TargetText string `db:"target_text"`
	Category   string `db:"category"`
	Tier       int    `db:"tier"`
}

func (r itemRow) toItem() card.Item {
	return card.Item{
		ID:         r.ID,
		SourceText: r.SourceText,
		TargetText: r.TargetText,
		Category:   r.Category,
		Tier:       card.DifficultyTier(r.Tier),
	}
}

// PutItem inserts or replaces a catalog item. Curation is the host's
// concern; this exists so the CLI can seed a vocabulary.
func (s *SQLite) PutItem(ctx context.Context, it card.Item) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO items (id, source_text, target_text, category, tier)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			source_text = excluded.source_text,
			target_text = excluded.target_text,
			category = excluded.category,
			tier = excluded.tier`,
		it.ID, it.SourceText, it.TargetText, it.Category, int(it.Tier))
	if err != nil {
		return fmt.Errorf("put item %s: %w", it.ID, err)
	}
	return nil
}

// Get implements card.Catalog.
func (s *SQLite) Get(ctx context.Context, id string) (card.Item, error) {
	var row itemRow
	err := s.db.GetContext(ctx, &row,
		`SELECT id, source_text, target_text, category, tier FROM items WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return card.Item{}, card.ErrNotFound
	}
	if err != nil {
		return card.Item{}, fmt.Errorf("get item %s: %w", id, err)
	}
	return row.toItem(), nil
}

// List implements card.Catalog, ordered by ID.
func (s *SQLite) List(ctx context.Context, f card.Filter) ([]card.Item, error) {
	query := `SELECT id, source_text, target_text, category, tier FROM items`
	var conds []string
	var args []any
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Tier != nil {
		conds = append(conds, "tier = ?")
		args = append(args, int(*f.Tier))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY id"

	var rows []itemRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	items := make([]card.Item, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toItem())
	}
	return items, nil
}
