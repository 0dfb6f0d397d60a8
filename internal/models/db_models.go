package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type ItemDB struct {
	bun.BaseModel `bun:"table:content_items,alias:ci"`

	ID          uuid.UUID  `bun:"id,pk,type:uuid" json:"id"`
	ContentType string     `bun:"content_type,notnull" json:"content_type"`
	Title       string     `bun:"title,notnull" json:"title"`
	Status      ItemStatus `bun:"status,notnull,default:'published'" json:"status"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

type AttributeDB struct {
	bun.BaseModel `bun:"table:item_attributes,alias:ia"`

	ID     int64     `bun:"id,pk,autoincrement" json:"id"`
	ItemID uuid.UUID `bun:"item_id,notnull,type:uuid,unique:item_key" json:"item_id"`
	Item   *ItemDB   `bun:"rel:belongs-to,join:item_id=id,on_delete:CASCADE"`
	Key    string    `bun:"key,notnull,unique:item_key" json:"key"`
	Value  string    `bun:"value,notnull,default:''" json:"value"`
}

type AttachmentDB struct {
	bun.BaseModel `bun:"table:attachments,alias:att"`

	ID        int64     `bun:"id,pk,autoincrement" json:"id"`
	FilePath  string    `bun:"file_path,notnull" json:"file_path"`
	Width     int       `bun:"width,notnull,default:0" json:"width"`
	Height    int       `bun:"height,notnull,default:0" json:"height"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

func (i *ItemDB) ToItem() *Item {
	return &Item{
		ID:          i.ID,
		ContentType: i.ContentType,
		Title:       i.Title,
		Status:      i.Status,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

func ItemFromDomain(item *Item) *ItemDB {
	return &ItemDB{
		ID:          item.ID,
		ContentType: item.ContentType,
		Title:       item.Title,
		Status:      item.Status,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}
