package store

import (
	"context"
	"database/sql"
	"errors"
	"path"
	"strconv"
	"strings"

	"github.com/meridiancms/meridian/internal/models"
	"github.com/uptrace/bun"
)

// AttachmentRepository resolves attachment ids and item thumbnails into
// servable URLs. It satisfies render.ImageResolver.
type AttachmentRepository struct {
	db      *bun.DB
	baseURL string
	attrs   *AttributeRepository
}

func NewAttachmentRepository(db *bun.DB, mediaBaseURL string) *AttachmentRepository {
	return &AttachmentRepository{
		db:      db,
		baseURL: strings.TrimRight(mediaBaseURL, "/"),
		attrs:   NewAttributeRepository(db),
	}
}

// ThumbnailURL resolves the item's featured image. "" means the item has no
// thumbnail, which is not an error.
func (r *AttachmentRepository) ThumbnailURL(ctx context.Context, itemID, size string) (string, error) {
	raw, err := r.attrs.Get(ctx, itemID, models.FeaturedImageKey)
	if err != nil {
		return "", err
	}
	if raw == "" {
		return "", nil
	}

	attachmentID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", nil
	}
	return r.AttachmentURL(ctx, attachmentID, size)
}

// AttachmentURL resolves an attachment id at the requested size variant. ""
// means the attachment does not exist.
func (r *AttachmentRepository) AttachmentURL(ctx context.Context, attachmentID int64, size string) (string, error) {
	att := new(models.AttachmentDB)
	err := r.db.NewSelect().
		Model(att).
		Where("att.id = ?", attachmentID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return r.baseURL + "/" + sizeVariantPath(att.FilePath, size), nil
}

// sizeVariantPath maps uploads/photo.jpg at size "thumbnail" onto
// uploads/photo-thumbnail.jpg. Size "full" (or none) keeps the original.
func sizeVariantPath(filePath, size string) string {
	if size == "" || size == "full" {
		return filePath
	}
	ext := path.Ext(filePath)
	return strings.TrimSuffix(filePath, ext) + "-" + size + ext
}
