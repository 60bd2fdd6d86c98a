package service

import (
	"testing"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/app/repository"
	"github.com/fitshop/fitshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCategoryServiceTest(t *testing.T) CategoryService {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	return NewCategoryService(repository.NewCategoryRepository(testDB))
}

func TestCategoryService_CreateAndList(t *testing.T) {
	svc := setupCategoryServiceTest(t)

	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Suplementos", Slug: "suplementos"}))
	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Vestuário", Slug: "vestuario"}))

	categories, err := svc.ListCategories()
	require.NoError(t, err)
	assert.Len(t, categories, 2)
}

func TestCategoryService_DuplicateSlugRejected(t *testing.T) {
	svc := setupCategoryServiceTest(t)

	require.NoError(t, svc.CreateCategory(&model.Category{Name: "Suplementos", Slug: "suplementos"}))

	err := svc.CreateCategory(&model.Category{Name: "Outra", Slug: "suplementos"})
	assert.Error(t, err)
}

func TestCategoryService_GetCategoryByID(t *testing.T) {
	svc := setupCategoryServiceTest(t)

	category := &model.Category{Name: "Acessórios", Slug: "acessorios"}
	require.NoError(t, svc.CreateCategory(category))

	found, err := svc.GetCategoryByID(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acessórios", found.Name)

	_, err = svc.GetCategoryByID(9999)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateCategory(t *testing.T) {
	svc := setupCategoryServiceTest(t)

	category := &model.Category{Name: "Suplemento", Slug: "suplemento"}
	require.NoError(t, svc.CreateCategory(category))

	newName := "Suplementos"
	updated, err := svc.UpdateCategory(category.ID, CategoryUpdate{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Suplementos", updated.Name)
	assert.Equal(t, "suplemento", updated.Slug)

	_, err = svc.UpdateCategory(9999, CategoryUpdate{Name: &newName})
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_DeleteCategory(t *testing.T) {
	svc := setupCategoryServiceTest(t)

	category := &model.Category{Name: "Vestuário", Slug: "vestuario"}
	require.NoError(t, svc.CreateCategory(category))

	require.NoError(t, svc.DeleteCategory(category.ID))

	_, err := svc.GetCategoryByID(category.ID)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	assert.ErrorIs(t, svc.DeleteCategory(category.ID), ErrCategoryNotFound)
}
