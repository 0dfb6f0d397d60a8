package migrations

import (
	"context"
	"fmt"

	"github.com/meridiancms/meridian/internal/models"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewCreateTable().
			Model((*models.ItemDB)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create content_items table: %w", err)
		}

		_, err = db.NewCreateTable().
			Model((*models.AttributeDB)(nil)).
			IfNotExists().
			ForeignKey(`("item_id") REFERENCES "content_items" ("id") ON DELETE CASCADE`).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create item_attributes table: %w", err)
		}

		_, err = db.NewCreateTable().
			Model((*models.AttachmentDB)(nil)).
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create attachments table: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*models.ItemDB)(nil)).
			Index("idx_content_items_type").
			Column("content_type").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create content_type index: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*models.AttributeDB)(nil)).
			Index("idx_item_attributes_item_key").
			Column("item_id", "key").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create item_id/key index: %w", err)
		}

		_, err = db.NewCreateIndex().
			Model((*models.AttributeDB)(nil)).
			Index("idx_item_attributes_key_value").
			Column("key", "value").
			IfNotExists().
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create key/value index: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		for _, model := range []any{
			(*models.AttributeDB)(nil),
			(*models.AttachmentDB)(nil),
			(*models.ItemDB)(nil),
		} {
			_, err := db.NewDropTable().
				Model(model).
				IfExists().
				Exec(ctx)
			if err != nil {
				return err
			}
		}
		return nil
	})
}
