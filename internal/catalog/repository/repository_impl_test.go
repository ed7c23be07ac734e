package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/smallbiznis/kstore/internal/catalog/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&domain.Document{}))
	return db
}

func doc(collection, key, body string) *domain.Document {
	now := time.Now().UTC()
	return &domain.Document{
		Collection: collection,
		Key:        key,
		Body:       datatypes.JSON(body),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func TestRepository_CreateGetListDelete(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := Provide()

	require.NoError(t, r.Create(ctx, db, doc(domain.CollectionGroups, "g2", `{"name":"IVE"}`)))
	require.NoError(t, r.Create(ctx, db, doc(domain.CollectionGroups, "g1", `{"name":"ATEEZ"}`)))
	require.NoError(t, r.Create(ctx, db, doc(domain.CollectionProducts, "p1", `{"title":"x"}`)))

	err := r.Create(ctx, db, doc(domain.CollectionGroups, "g1", `{"name":"dup"}`))
	assert.ErrorIs(t, err, domain.ErrConflict)

	groups, err := r.List(ctx, db, domain.CollectionGroups)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Equal(t, "g1", groups[0].Key)

	got, err := r.Get(ctx, db, domain.CollectionGroups, "g2")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.JSONEq(t, `{"name":"IVE"}`, string(got.Body))

	missing, err := r.Get(ctx, db, domain.CollectionGroups, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, r.Delete(ctx, db, domain.CollectionGroups, "g2"))
	groups, err = r.List(ctx, db, domain.CollectionGroups)
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestRepository_PutUpserts(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := Provide()

	require.NoError(t, r.Put(ctx, db, doc(domain.CollectionBaseMeta, "bp_a", `{"title":"old"}`)))
	require.NoError(t, r.Put(ctx, db, doc(domain.CollectionBaseMeta, "bp_a", `{"title":"new"}`)))

	got, err := r.Get(ctx, db, domain.CollectionBaseMeta, "bp_a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new"}`, string(got.Body))
}

func TestRepository_ListPrefix(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := Provide()

	require.NoError(t, r.Put(ctx, db, doc(domain.CollectionRelations, "bp_a/1", `true`)))
	require.NoError(t, r.Put(ctx, db, doc(domain.CollectionRelations, "bp_a/2", `true`)))
	require.NoError(t, r.Put(ctx, db, doc(domain.CollectionRelations, "bp_ab/3", `true`)))

	items, err := r.ListPrefix(ctx, db, domain.CollectionRelations, "bp_a/")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}
