package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
)

// memStore is an in-memory Store that counts reads.
type memStore struct {
	records map[string]models.Record
	gets    int
	err     error
}

func newMemStore(records ...models.Record) *memStore {
	m := &memStore{records: map[string]models.Record{}}
	for _, r := range records {
		m.records[r.ID] = r
	}
	return m
}

func (m *memStore) Create(ctx context.Context, payload *models.SubmissionPayload, updatedBy string) (string, error) {
	data, err := models.Encode(payload)
	if err != nil {
		return "", err
	}
	id := "generated"
	m.records[id] = models.Record{ID: id, ApplicationData: data, UpdatedBy: updatedBy}
	return id, nil
}

func (m *memStore) Update(ctx context.Context, id string, payload *models.SubmissionPayload, updatedBy string) error {
	data, err := models.Encode(payload)
	if err != nil {
		return err
	}
	r := m.records[id]
	r.ApplicationData = data
	r.UpdatedBy = updatedBy
	m.records[id] = r
	return nil
}

func (m *memStore) Get(ctx context.Context, id string) (*models.Record, error) {
	m.gets++
	if m.err != nil {
		return nil, m.err
	}
	r, ok := m.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (m *memStore) List(ctx context.Context) ([]models.Record, error) {
	out := make([]models.Record, 0, len(m.records))
	for _, r := range m.records {
		out = append(out, r)
	}
	return out, m.err
}

func TestCachedStore_ReadThrough(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	next := newMemStore(models.Record{ID: "app-1", ApplicationData: "{}", UpdatedBy: "u"})
	cache := NewCachedStore(next, rdb, 5*time.Minute, logger.NewTestLogger(t))

	r, err := cache.Get(context.Background(), "app-1")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 1, next.gets)
	assert.True(t, mr.Exists("application:app-1"))
	assert.Equal(t, 5*time.Minute, mr.TTL("application:app-1"))

	r, err = cache.Get(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "app-1", r.ID)
	assert.Equal(t, 1, next.gets)
}

func TestCachedStore_AbsentRecordIsNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCachedStore(newMemStore(), rdb, time.Minute, logger.NewTestLogger(t))

	r, err := cache.Get(context.Background(), "missing")
	assert.NoError(t, err)
	assert.Nil(t, r)
	assert.False(t, mr.Exists("application:missing"))
}

func TestCachedStore_UpdateInvalidates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	next := newMemStore(models.Record{ID: "app-1", ApplicationData: "{}"})
	cache := NewCachedStore(next, rdb, time.Minute, logger.NewTestLogger(t))

	_, err := cache.Get(context.Background(), "app-1")
	require.NoError(t, err)
	require.True(t, mr.Exists("application:app-1"))

	require.NoError(t, cache.Update(context.Background(), "app-1", &models.SubmissionPayload{}, "admin"))
	assert.False(t, mr.Exists("application:app-1"))

	r, err := cache.Get(context.Background(), "app-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", r.UpdatedBy)
	assert.Equal(t, 2, next.gets)
}

func TestCachedStore_CacheErrorsFallThrough(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("application:app-1").SetErr(errors.New("connection refused"))

	next := newMemStore(models.Record{ID: "app-1", ApplicationData: "{}"})
	cache := NewCachedStore(next, rdb, time.Minute, logger.NewTestLogger(t))

	r, err := cache.Get(context.Background(), "app-1")
	require.NoError(t, err)
	require.NotNil(t, r)
	assert.Equal(t, 1, next.gets)
}

func TestCachedStore_InvalidationErrorDoesNotFailUpdate(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	mock.ExpectEvalSha(invalidateScript.Hash(), []string{"application:app-1", "application:app-1:gen"}, int64(60000)).
		SetErr(errors.New("connection refused"))

	next := newMemStore(models.Record{ID: "app-1", ApplicationData: "{}"})
	cache := NewCachedStore(next, rdb, time.Minute, logger.NewTestLogger(t))

	assert.NoError(t, cache.Update(context.Background(), "app-1", &models.SubmissionPayload{}, "admin"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

// racingStore runs onGet once, after the row has been read, to simulate an
// update landing while a read-through is in flight.
type racingStore struct {
	*memStore
	onGet func()
}

func (r *racingStore) Get(ctx context.Context, id string) (*models.Record, error) {
	rec, err := r.memStore.Get(ctx, id)
	if f := r.onGet; f != nil {
		r.onGet = nil
		f()
	}
	return rec, err
}

func TestCachedStore_ConcurrentUpdateIsNotOverwrittenByStaleRead(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	next := &racingStore{memStore: newMemStore(models.Record{ID: "app-1", ApplicationData: "{}", UpdatedBy: "anonymous"})}
	cache := NewCachedStore(next, rdb, time.Minute, logger.NewTestLogger(t))
	ctx := context.Background()

	next.onGet = func() {
		require.NoError(t, cache.Update(ctx, "app-1", &models.SubmissionPayload{}, "admin"))
	}

	stale, err := cache.Get(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "anonymous", stale.UpdatedBy)
	assert.False(t, mr.Exists("application:app-1"))

	fresh, err := cache.Get(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", fresh.UpdatedBy)
	assert.True(t, mr.Exists("application:app-1"))

	cached, err := cache.Get(ctx, "app-1")
	require.NoError(t, err)
	assert.Equal(t, "admin", cached.UpdatedBy)
	assert.Equal(t, 2, next.gets)
}

func TestCachedStore_UpdateBumpsGeneration(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCachedStore(newMemStore(models.Record{ID: "app-1", ApplicationData: "{}"}), rdb, time.Minute, logger.NewTestLogger(t))

	require.NoError(t, cache.Update(context.Background(), "app-1", &models.SubmissionPayload{}, "admin"))
	require.NoError(t, cache.Update(context.Background(), "app-1", &models.SubmissionPayload{}, "admin"))

	gen, err := mr.Get("application:app-1:gen")
	require.NoError(t, err)
	assert.Equal(t, "2", gen)
	assert.Equal(t, time.Minute, mr.TTL("application:app-1:gen"))
}

func TestCachedStore_StoreErrorPropagates(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	next := newMemStore()
	next.err = errors.New("db down")
	cache := NewCachedStore(next, rdb, time.Minute, logger.NewTestLogger(t))

	_, err := cache.Get(context.Background(), "app-1")
	assert.EqualError(t, err, "db down")
}
