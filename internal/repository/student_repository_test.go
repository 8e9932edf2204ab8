package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abuzarban/school-admin/internal/models"
	"github.com/abuzarban/school-admin/internal/store"
)

func TestStudentRepositoryCRUD(t *testing.T) {
	s := openTestStore(t)
	repo := NewStudentRepository(s)
	ctx := context.Background()

	student := &models.Student{ID: "stu-1", Name: "Ada Lovelace", ClassID: 1, Status: "Active"}
	require.NoError(t, repo.Insert(ctx, student))

	found, err := repo.FindByID(ctx, "stu-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", found.Name)

	found.Name = "Ada King"
	require.NoError(t, repo.Update(ctx, found))

	found, err = repo.FindByID(ctx, "stu-1")
	require.NoError(t, err)
	assert.Equal(t, "Ada King", found.Name)

	require.NoError(t, repo.Delete(ctx, "stu-1"))
	_, err = repo.FindByID(ctx, "stu-1")
	assert.True(t, errors.Is(err, store.ErrNoDocument))
}

func TestStudentRepositoryListFilters(t *testing.T) {
	s := openTestStore(t)
	repo := NewStudentRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.Student{ID: "a", Name: "Ada Lovelace", Guardian: "Mary", ClassID: 1, Status: "Active"}))
	require.NoError(t, repo.Insert(ctx, &models.Student{ID: "b", Name: "Grace Hopper", Guardian: "John", ClassID: 1, Status: "Inactive"}))
	require.NoError(t, repo.Insert(ctx, &models.Student{ID: "c", Name: "Alan Turing", Guardian: "Mary", ClassID: 2, Status: "Active"}))

	byClass, err := repo.List(ctx, models.StudentFilter{ClassID: 1})
	require.NoError(t, err)
	assert.Len(t, byClass, 2)

	byStatus, err := repo.List(ctx, models.StudentFilter{Status: "active"})
	require.NoError(t, err)
	assert.Len(t, byStatus, 2)

	bySearch, err := repo.List(ctx, models.StudentFilter{Search: "mary"})
	require.NoError(t, err)
	assert.Len(t, bySearch, 2)

	combined, err := repo.List(ctx, models.StudentFilter{ClassID: 1, Search: "grace"})
	require.NoError(t, err)
	require.Len(t, combined, 1)
	assert.Equal(t, "b", combined[0].ID)
}

func TestStudentRepositoryInsertDuplicateID(t *testing.T) {
	s := openTestStore(t)
	repo := NewStudentRepository(s)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, &models.Student{ID: "dup", Name: "First"}))
	err := repo.Insert(ctx, &models.Student{ID: "dup", Name: "Second"})
	assert.True(t, errors.Is(err, store.ErrDuplicateKey))
}
