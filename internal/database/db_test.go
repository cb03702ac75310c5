package database

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolAcquire_ConstructsExactlyOnce(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var opens int32
	pool := NewPoolWithOpener(func() (*sql.DB, error) {
		atomic.AddInt32(&opens, 1)
		return db, nil
	})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := pool.Acquire(context.Background())
			assert.NoError(t, err)
			assert.Same(t, db, got)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&opens))
}

func TestPoolAcquire_OpenerErrorPropagates(t *testing.T) {
	boom := errors.New("dial tcp: connection refused")
	pool := NewPoolWithOpener(func() (*sql.DB, error) { return nil, boom })

	_, err := pool.Acquire(context.Background())
	assert.ErrorIs(t, err, boom)

	// A later call retries the opener instead of caching the failure.
	_, err = pool.Acquire(context.Background())
	assert.ErrorIs(t, err, boom)
}

// Pings are monitored here so that any liveness probe on the cached handle
// would surface as an unexpected-call error and force a rebuild, bumping the
// open count past one.
func TestPoolAcquire_CachedHandleSkipsPing(t *testing.T) {
	db, _, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	var opens int32
	pool := NewPoolWithOpener(func() (*sql.DB, error) {
		atomic.AddInt32(&opens, 1)
		return db, nil
	})

	first, err := pool.Acquire(context.Background())
	require.NoError(t, err)
	second, err := pool.Acquire(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&opens))
}

func TestPoolClose_Idempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectClose()

	pool := NewPoolWithOpener(func() (*sql.DB, error) { return db, nil })
	_, err = pool.Acquire(context.Background())
	require.NoError(t, err)

	// The second Close sees a nil handle and is a no-op.
	assert.NoError(t, pool.Close())
	assert.NoError(t, pool.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
