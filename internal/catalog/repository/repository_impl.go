package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/smallbiznis/kstore/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) List(ctx context.Context, db *gorm.DB, collection string) ([]domain.Document, error) {
	var items []domain.Document
	err := db.WithContext(ctx).
		Where("collection = ?", collection).
		Order("doc_key ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repo) ListPrefix(ctx context.Context, db *gorm.DB, collection, prefix string) ([]domain.Document, error) {
	items, err := r.List(ctx, db, collection)
	if err != nil {
		return nil, err
	}
	out := items[:0]
	for _, item := range items {
		if strings.HasPrefix(item.Key, prefix) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *repo) Get(ctx context.Context, db *gorm.DB, collection, key string) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		Take(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *repo) Create(ctx context.Context, gdb *gorm.DB, doc *domain.Document) error {
	if doc == nil {
		return gorm.ErrInvalidData
	}
	err := gdb.WithContext(ctx).Create(doc).Error
	if db.IsDuplicateKeyErr(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *repo) Put(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	if doc == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "doc_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(doc).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, collection, key string) error {
	return db.WithContext(ctx).
		Where("collection = ? AND doc_key = ?", collection, key).
		Delete(&domain.Document{}).Error
}
