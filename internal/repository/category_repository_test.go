package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/d60-Lab/buzzboard/internal/model"
	"github.com/d60-Lab/buzzboard/pkg/apperr"
)

func TestCategoryCreate_DuplicateName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	first := &model.Category{Name: "programming", Topics: datatypes.NewJSONSlice([]string{"go"})}
	require.NoError(t, repo.Create(ctx, first))

	err := repo.Create(ctx, &model.Category{Name: "programming"})
	require.True(t, apperr.IsConflict(err))
}

func TestCategoryList_SortedByName(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Category{Name: "zoology"}))
	require.NoError(t, repo.Create(ctx, &model.Category{Name: "art"}))
	require.NoError(t, repo.Create(ctx, &model.Category{Name: "music"}))

	categories, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	require.Equal(t, "art", categories[0].Name)
	require.Equal(t, "music", categories[1].Name)
	require.Equal(t, "zoology", categories[2].Name)
}

func TestCategoryUpdate_TopicsRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &model.Category{Name: "programming", Topics: datatypes.NewJSONSlice([]string{"go"})}
	require.NoError(t, repo.Create(ctx, category))

	require.NoError(t, repo.Update(ctx, category.ID, map[string]interface{}{
		"topics": datatypes.NewJSONSlice([]string{"go", "rust"}),
	}))

	got, err := repo.GetByID(ctx, category.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"go", "rust"}, []string(got.Topics))
	require.True(t, got.HasTopic("rust"))
	require.False(t, got.HasTopic("zig"))
}

func TestCategoryUpdate_ImmutableIDRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewCategoryRepository(db)
	ctx := context.Background()

	category := &model.Category{Name: "science"}
	require.NoError(t, repo.Create(ctx, category))

	err := repo.Update(ctx, category.ID, map[string]interface{}{"id": "new-id"})
	require.True(t, apperr.IsInvalidField(err))
}
