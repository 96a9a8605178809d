package integration

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/njb1/what2do/internal/db"
	"github.com/njb1/what2do/internal/domain"
	"github.com/njb1/what2do/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// connect opens DATABASE_URL, applies the schema and empties the table.
func connect(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, dsn, 5)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, db.ApplySchema(ctx, pool))
	_, err = pool.Exec(ctx, `TRUNCATE tasks RESTART IDENTITY`)
	require.NoError(t, err)
	return pool
}

func TestTaskRepository_CRUD(t *testing.T) {
	pool := connect(t)
	repo := repository.NewTaskRepository(pool)
	ctx := context.Background()

	for _, c := range []string{"A", "B", "C"} {
		require.NoError(t, repo.Create(ctx, &domain.Task{Content: c}))
	}

	tasks, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 3)
	assert.Equal(t, "C", tasks[0].Content)
	assert.Equal(t, "A", tasks[2].Content)
	assert.False(t, tasks[0].Completed)

	n, err := repo.SetCompleted(ctx, tasks[1].ID, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Delete(ctx, tasks[0].ID)
	require.NoError(t, err)
	assert.Zero(t, n)

	tasks, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "B", tasks[0].Content)
	assert.True(t, tasks[0].Completed)
	require.NoError(t, repo.Ping(ctx))
}

func TestTaskRepository_ConcurrentCreates(t *testing.T) {
	pool := connect(t)
	repo := repository.NewTaskRepository(pool)
	ctx := context.Background()

	const n = 20
	var (
		mu  sync.Mutex
		ids = make(map[int64]bool)
		wg  sync.WaitGroup
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			task := &domain.Task{Content: fmt.Sprintf("concurrent %d", i)}
			if err := repo.Create(ctx, task); err != nil {
				t.Errorf("create: %v", err)
				return
			}
			mu.Lock()
			ids[task.ID] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	assert.Len(t, ids, n)
}
