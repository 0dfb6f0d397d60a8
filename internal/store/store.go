package store

import (
	"context"
	"fmt"

	"github.com/meridiancms/meridian/internal/models"
	"github.com/uptrace/bun"
)

// Store groups the repositories over one bun connection.
type Store struct {
	db *bun.DB

	Content     *ContentRepository
	Attributes  *AttributeRepository
	Attachments *AttachmentRepository
}

func New(db *bun.DB, mediaBaseURL string) *Store {
	return &Store{
		db:          db,
		Content:     NewContentRepository(db),
		Attributes:  NewAttributeRepository(db),
		Attachments: NewAttachmentRepository(db, mediaBaseURL),
	}
}

// InitializeDatabase creates the schema when it does not exist yet. The
// migrate CLI owns versioned changes; this path covers tests and dev setups.
func (s *Store) InitializeDatabase(ctx context.Context) error {
	_, err := s.db.NewCreateTable().
		Model((*models.ItemDB)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create content_items table: %w", err)
	}

	_, err = s.db.NewCreateTable().
		Model((*models.AttributeDB)(nil)).
		IfNotExists().
		ForeignKey(`("item_id") REFERENCES "content_items" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create item_attributes table: %w", err)
	}

	_, err = s.db.NewCreateTable().
		Model((*models.AttachmentDB)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create attachments table: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*models.ItemDB)(nil)).
		Index("idx_content_items_type").
		Column("content_type").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create content_type index: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*models.AttributeDB)(nil)).
		Index("idx_item_attributes_item_key").
		Column("item_id", "key").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create item_id/key index: %w", err)
	}

	_, err = s.db.NewCreateIndex().
		Model((*models.AttributeDB)(nil)).
		Index("idx_item_attributes_key_value").
		Column("key", "value").
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create key/value index: %w", err)
	}

	return nil
}
