package domain

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Collection names in the document store.
const (
	CollectionProducts  = "products"
	CollectionGroups    = "groups"
	CollectionMembers   = "members"
	CollectionRelations = "relations_also_as"
	CollectionBaseMeta  = "base_meta"
)

// Document is one schemaless record. Bodies are validated only when read
// into the strict entity shapes.
type Document struct {
	Collection string         `gorm:"primaryKey;type:varchar(64)"`
	Key        string         `gorm:"column:doc_key;primaryKey;type:varchar(255)"`
	Body       datatypes.JSON `gorm:"not null"`
	CreatedAt  time.Time      `gorm:"not null"`
	UpdatedAt  time.Time      `gorm:"not null"`
}

func (Document) TableName() string { return "documents" }

type Repository interface {
	List(ctx context.Context, db *gorm.DB, collection string) ([]Document, error)
	ListPrefix(ctx context.Context, db *gorm.DB, collection, prefix string) ([]Document, error)
	Get(ctx context.Context, db *gorm.DB, collection, key string) (*Document, error)
	Create(ctx context.Context, db *gorm.DB, doc *Document) error
	Put(ctx context.Context, db *gorm.DB, doc *Document) error
	Delete(ctx context.Context, db *gorm.DB, collection, key string) error
}
