package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/meridiancms/meridian/internal/columns"
	"github.com/meridiancms/meridian/internal/listing"
	"github.com/meridiancms/meridian/internal/models"
	"github.com/uptrace/bun"
)

type ContentLister interface {
	List(ctx context.Context, q *listing.Query) ([]*models.Item, int, error)
	GetByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
}

type ContentRepository struct {
	db *bun.DB
}

func NewContentRepository(db *bun.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// List executes a (possibly rewritten) listing query and returns the page of
// items plus the unpaged total. The attribute-filter WHERE fragment is passed
// through the query's hooks before it is installed; that is the hook point
// the search rewriter splices its title branch into.
func (r *ContentRepository) List(ctx context.Context, q *listing.Query) ([]*models.Item, int, error) {
	var rows []*models.ItemDB
	sel := r.db.NewSelect().
		Model(&rows).
		Where("ci.content_type = ?", q.ContentType)

	dir := q.NormalizedOrder()
	switch q.OrderBy {
	case columns.OrderByValue:
		sel = sel.
			Join("JOIN item_attributes AS sort_attr ON sort_attr.item_id = ci.id AND sort_attr.key = ?", q.AttributeKey).
			OrderExpr("sort_attr.value " + dir)
	case columns.OrderByNumeric:
		sel = sel.
			Join("JOIN item_attributes AS sort_attr ON sort_attr.item_id = ci.id AND sort_attr.key = ?", q.AttributeKey).
			OrderExpr("(sort_attr.value)::numeric " + dir)
	case "title":
		sel = sel.OrderExpr("ci.title " + dir)
	default:
		sel = sel.OrderExpr("ci.created_at " + dir)
	}

	if len(q.AttributeFilters) > 0 {
		frag, args := BuildAttributeFilterSQL(q.AttributeFilters)
		frag, args = q.ApplyAttributeSQLHooks(frag, args)
		if frag != "" {
			sel = sel.Where("("+frag+")", args...)
		}
	} else if q.SearchTerm != "" {
		// Native search path: nothing rewrote the term away.
		sel = sel.Where("ci.title ILIKE ?", "%"+listing.EscapeLike(q.SearchTerm)+"%")
	}

	if q.PerPage > 0 {
		sel = sel.Limit(q.PerPage)
		if q.Page > 1 {
			sel = sel.Offset((q.Page - 1) * q.PerPage)
		}
	}

	total, err := sel.ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	items := make([]*models.Item, len(rows))
	for i, row := range rows {
		items[i] = row.ToItem()
	}
	return items, total, nil
}

func (r *ContentRepository) GetByID(ctx context.Context, itemID uuid.UUID) (*models.Item, error) {
	itemDB := new(models.ItemDB)
	err := r.db.NewSelect().
		Model(itemDB).
		Where("ci.id = ?", itemID).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return itemDB.ToItem(), nil
}

func (r *ContentRepository) Create(ctx context.Context, item *models.Item) error {
	itemDB := models.ItemFromDomain(item)
	itemDB.CreatedAt = time.Now()
	itemDB.UpdatedAt = time.Now()
	_, err := r.db.NewInsert().Model(itemDB).Exec(ctx)
	return err
}

// Exists reports whether an item is present, swallowing sql.ErrNoRows.
func (r *ContentRepository) Exists(ctx context.Context, itemID uuid.UUID) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*models.ItemDB)(nil)).
		Where("ci.id = ?", itemID).
		Exists(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return exists, err
}
