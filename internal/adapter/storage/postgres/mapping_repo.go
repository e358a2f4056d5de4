package postgres

import (
	"context"
	"errors"
	"fmt"

	"payment-webhook-bridge/internal/core/domain"
	"payment-webhook-bridge/pkg/apperror"

	"github.com/jackc/pgx/v5"
)

// MappingRepo implements ports.MappingRepository with one table per mapping kind.
type MappingRepo struct {
	pool Pool
}

// NewMappingRepo creates a new MappingRepo.
func NewMappingRepo(pool Pool) *MappingRepo {
	return &MappingRepo{pool: pool}
}

// mappingTable returns the table for kind. Table names never come from input.
func mappingTable(kind domain.MappingKind) (string, error) {
	switch kind {
	case domain.MappingKindProduct:
		return "product_mappings", nil
	case domain.MappingKindPayment:
		return "payment_mappings", nil
	case domain.MappingKindCoupon:
		return "coupon_mappings", nil
	case domain.MappingKindSubscription:
		return "subscription_mappings", nil
	}
	return "", apperror.ErrUnknownMappingKind(string(kind))
}

// Save upserts the mapping; the last write wins.
func (r *MappingRepo) Save(ctx context.Context, kind domain.MappingKind, localID int64, remoteID string) error {
	table, err := mappingTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`INSERT INTO %s (local_id, remote_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (local_id) DO UPDATE SET remote_id = EXCLUDED.remote_id, updated_at = NOW()`, table)

	if _, err := r.pool.Exec(ctx, query, localID, remoteID); err != nil {
		return fmt.Errorf("save %s mapping: %w", kind, err)
	}
	return nil
}

func (r *MappingRepo) GetRemoteID(ctx context.Context, kind domain.MappingKind, localID int64) (string, bool, error) {
	table, err := mappingTable(kind)
	if err != nil {
		return "", false, err
	}
	query := fmt.Sprintf(`SELECT remote_id FROM %s WHERE local_id = $1`, table)

	var remoteID string
	if err := r.pool.QueryRow(ctx, query, localID).Scan(&remoteID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("get %s remote id: %w", kind, err)
	}
	return remoteID, true, nil
}

// GetLocalID returns the most recently written local id for remoteID.
func (r *MappingRepo) GetLocalID(ctx context.Context, kind domain.MappingKind, remoteID string) (int64, bool, error) {
	table, err := mappingTable(kind)
	if err != nil {
		return 0, false, err
	}
	query := fmt.Sprintf(`SELECT local_id FROM %s WHERE remote_id = $1 ORDER BY updated_at DESC LIMIT 1`, table)

	var localID int64
	if err := r.pool.QueryRow(ctx, query, remoteID).Scan(&localID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get %s local id: %w", kind, err)
	}
	return localID, true, nil
}

func (r *MappingRepo) Delete(ctx context.Context, kind domain.MappingKind, localID int64) error {
	table, err := deletableTable(kind)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE local_id = $1`, table), localID); err != nil {
		return fmt.Errorf("delete %s mapping: %w", kind, err)
	}
	return nil
}

func (r *MappingRepo) Truncate(ctx context.Context, kind domain.MappingKind) (int64, error) {
	table, err := deletableTable(kind)
	if err != nil {
		return 0, err
	}
	tag, err := r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, table))
	if err != nil {
		return 0, fmt.Errorf("truncate %s mappings: %w", kind, err)
	}
	return tag.RowsAffected(), nil
}

func deletableTable(kind domain.MappingKind) (string, error) {
	table, err := mappingTable(kind)
	if err != nil {
		return "", err
	}
	if !kind.Deletable() {
		return "", apperror.ErrMappingNotDeletable(string(kind))
	}
	return table, nil
}
