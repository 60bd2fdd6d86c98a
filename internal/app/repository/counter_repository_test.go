package repository

import (
	"sync"
	"testing"

	"github.com/fitshop/fitshop-backend/internal/app/model"
	"github.com/fitshop/fitshop-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCounterRepositoryTest(t *testing.T) (CounterRepository, []model.Product) {
	t.Helper()

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.CleanupTestDB(testDB) })

	products := []model.Product{
		{Name: "Whey Protein 900g", Price: 149.90},
		{Name: "Creatina 300g", Price: 89.90},
	}
	require.NoError(t, testDB.Create(&products).Error)

	return NewCounterRepository(testDB), products
}

func TestCounterRepository_IncrementSearchesAccumulates(t *testing.T) {
	repo, products := setupCounterRepositoryTest(t)

	ids := []uint{products[0].ID, products[1].ID}

	// Repeated bumps land on the same rows.
	for i := 0; i < 3; i++ {
		require.NoError(t, repo.IncrementSearches(ids))
	}
	require.NoError(t, repo.IncrementSearches([]uint{products[0].ID}))

	rankings, err := repo.MostSearched(10)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, products[0].ID, rankings[0].Product.ID)
	assert.Equal(t, int64(4), rankings[0].Total)
	assert.Equal(t, int64(3), rankings[1].Total)
}

func TestCounterRepository_IncrementPurchasesByQuantity(t *testing.T) {
	repo, products := setupCounterRepositoryTest(t)

	require.NoError(t, repo.IncrementPurchases([]PurchaseIncrement{
		{ProductID: products[0].ID, Quantity: 2},
	}))
	require.NoError(t, repo.IncrementPurchases([]PurchaseIncrement{
		{ProductID: products[0].ID, Quantity: 3},
		{ProductID: products[1].ID, Quantity: 1},
	}))

	rankings, err := repo.MostPurchased(10)
	require.NoError(t, err)
	require.Len(t, rankings, 2)
	assert.Equal(t, int64(5), rankings[0].Total)
	assert.Equal(t, int64(1), rankings[1].Total)
}

func TestCounterRepository_ConcurrentIncrementsLoseNothing(t *testing.T) {
	repo, products := setupCounterRepositoryTest(t)

	const workers = 8
	const bumpsPerWorker = 5

	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < bumpsPerWorker; j++ {
				if err := repo.IncrementSearches([]uint{products[0].ID}); err != nil {
					errs <- err
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rankings, err := repo.MostSearched(10)
	require.NoError(t, err)
	require.Len(t, rankings, 1)
	assert.Equal(t, int64(workers*bumpsPerWorker), rankings[0].Total)
}

func TestCounterRepository_EmptyBatchesAreNoOps(t *testing.T) {
	repo, _ := setupCounterRepositoryTest(t)

	require.NoError(t, repo.IncrementSearches(nil))
	require.NoError(t, repo.IncrementPurchases(nil))

	rankings, err := repo.MostSearched(10)
	require.NoError(t, err)
	assert.Empty(t, rankings)
}
