package postgres

import (
	"context"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"

	"github.com/jackc/pgx/v5"
)

func addNote(ctx context.Context, q querier, entity domain.EntityType, id int64, body string) error {
	query := `INSERT INTO notes (entity_type, entity_id, body, created_at) VALUES ($1, $2, $3, NOW())`
	if _, err := q.Exec(ctx, query, string(entity), id, body); err != nil {
		return fmt.Errorf("insert %s note: %w", entity, err)
	}
	return nil
}

func listNotes(ctx context.Context, q querier, entity domain.EntityType, id int64) ([]domain.Note, error) {
	query := `SELECT id, entity_type, entity_id, body, created_at FROM notes
		WHERE entity_type = $1 AND entity_id = $2 ORDER BY id`

	rows, err := q.Query(ctx, query, string(entity), id)
	if err != nil {
		return nil, fmt.Errorf("list %s notes: %w", entity, err)
	}
	defer rows.Close()

	var notes []domain.Note
	for rows.Next() {
		var n domain.Note
		var entityType string
		if err := rows.Scan(&n.ID, &entityType, &n.EntityID, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan %s note: %w", entity, err)
		}
		n.EntityType = domain.EntityType(entityType)
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s notes: %w", entity, err)
	}
	return notes, nil
}

// transitionStatus locks the row, updates the status when it differs and notes the change.
// table is one of the fixed entity tables.
func transitionStatus(ctx context.Context, t *Transactor, table string, entity domain.EntityType, id int64, to domain.Status, note string) (domain.Status, error) {
	var prev domain.Status
	err := t.RunInTx(ctx, func(tx pgx.Tx) error {
		var status string
		if err := tx.QueryRow(ctx, fmt.Sprintf(`SELECT status FROM %s WHERE id = $1 FOR UPDATE`, table), id).Scan(&status); err != nil {
			return fmt.Errorf("lock %s %d: %w", entity, id, err)
		}
		prev = domain.Status(status)
		if prev == to {
			return nil
		}

		query := fmt.Sprintf(`UPDATE %s SET status = $1, updated_at = NOW() WHERE id = $2`, table)
		if _, err := tx.Exec(ctx, query, string(to), id); err != nil {
			return fmt.Errorf("update %s status: %w", entity, err)
		}
		if note == "" {
			return nil
		}
		return addNote(ctx, tx, entity, id, note)
	})
	return prev, err
}
