package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/meridiancms/meridian/internal/models"
	"github.com/uptrace/bun"
)

// AttributeRepository is the loosely-typed key/value store behind content
// items. It satisfies render.AttributeStore.
type AttributeRepository struct {
	db *bun.DB
}

func NewAttributeRepository(db *bun.DB) *AttributeRepository {
	return &AttributeRepository{db: db}
}

// Get returns the attribute value, or "" when the item has no such
// attribute. Absence is not an error.
func (r *AttributeRepository) Get(ctx context.Context, itemID, key string) (string, error) {
	var value string
	err := r.db.NewSelect().
		Model((*models.AttributeDB)(nil)).
		Column("value").
		Where("ia.item_id = ?", itemID).
		Where("ia.key = ?", key).
		Scan(ctx, &value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (r *AttributeRepository) Set(ctx context.Context, itemID uuid.UUID, key, value string) error {
	attr := &models.AttributeDB{
		ItemID: itemID,
		Key:    key,
		Value:  value,
	}
	_, err := r.db.NewInsert().
		Model(attr).
		On("CONFLICT (item_id, key) DO UPDATE").
		Set("value = EXCLUDED.value").
		Exec(ctx)
	return err
}

func (r *AttributeRepository) Delete(ctx context.Context, itemID uuid.UUID, key string) error {
	_, err := r.db.NewDelete().
		Model((*models.AttributeDB)(nil)).
		Where("ia.item_id = ?", itemID).
		Where("ia.key = ?", key).
		Exec(ctx)
	return err
}
