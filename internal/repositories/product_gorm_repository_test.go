package repositories_test

import (
	"testing"

	"northwind/internal/models"
	"northwind/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGORMProductRepository_CreateAndGet(t *testing.T) {
	db, supplier, category := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	first := &models.Product{ProductName: "Chai", SupplierID: uintPtr(supplier.ID), CategoryID: uintPtr(category.ID), Unit: "10 boxes x 20 bags", Price: 18}
	second := &models.Product{ProductName: "Chang", SupplierID: uintPtr(supplier.ID), CategoryID: uintPtr(category.ID), Unit: "24 - 12 oz bottles", Price: 19}
	require.NoError(t, repo.Create(first))
	require.NoError(t, repo.Create(second))

	assert.NotZero(t, first.ProductID)
	assert.NotEqual(t, first.ProductID, second.ProductID)

	fetched, err := repo.GetByID(first.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Chai", fetched.ProductName)
	assert.Equal(t, supplier.ID, *fetched.SupplierID)
	assert.Equal(t, category.ID, *fetched.CategoryID)
	assert.Equal(t, 18.0, fetched.Price)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGORMProductRepository_GetAllEmpty(t *testing.T) {
	db, _, _ := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	all, err := repo.GetAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGORMProductRepository_ForeignKeyViolation(t *testing.T) {
	db, supplier, category := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	err := repo.Create(&models.Product{ProductName: "Ghost", SupplierID: uintPtr(999), CategoryID: uintPtr(category.ID)})
	assert.ErrorIs(t, err, repositories.ErrForeignKeyViolation)

	err = repo.Create(&models.Product{ProductName: "Ghost", SupplierID: uintPtr(supplier.ID), CategoryID: uintPtr(999)})
	assert.ErrorIs(t, err, repositories.ErrForeignKeyViolation)

	product := &models.Product{ProductName: "Real", SupplierID: uintPtr(supplier.ID), CategoryID: uintPtr(category.ID)}
	require.NoError(t, repo.Create(product))
	product.CategoryID = uintPtr(999)
	assert.ErrorIs(t, repo.Update(product), repositories.ErrForeignKeyViolation)
}

func TestGORMProductRepository_UpdateReplacesColumns(t *testing.T) {
	db, supplier, category := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	product := &models.Product{ProductName: "Sugar", SupplierID: uintPtr(supplier.ID), CategoryID: uintPtr(category.ID), Unit: "kg", Price: 3.5}
	require.NoError(t, repo.Create(product))

	replacement := &models.Product{ProductID: product.ProductID, ProductName: "Brown sugar", CategoryID: uintPtr(category.ID)}
	require.NoError(t, repo.Update(replacement))

	stored, err := repo.GetByID(product.ProductID)
	require.NoError(t, err)
	assert.Equal(t, "Brown sugar", stored.ProductName)
	assert.Nil(t, stored.SupplierID)
	assert.Empty(t, stored.Unit)
	assert.Zero(t, stored.Price)
}

func TestGORMProductRepository_NotFound(t *testing.T) {
	db, _, _ := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	_, err := repo.GetByID(42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Update(&models.Product{ProductID: 42, ProductName: "Nobody"})
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	err = repo.Delete(42)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
}

func TestGORMProductRepository_Delete(t *testing.T) {
	db, _, _ := newTestDB(t)
	repo := repositories.NewGORMProductRepository(db)

	product := &models.Product{ProductName: "Tofu", Unit: "40 - 100 g pkgs.", Price: 23.25}
	require.NoError(t, repo.Create(product))

	require.NoError(t, repo.Delete(product.ProductID))

	_, err := repo.GetByID(product.ProductID)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Product{}).Count(&count).Error)
	assert.Zero(t, count)
}
