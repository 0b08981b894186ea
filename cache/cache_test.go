package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	data    map[string][]byte
	getErr  error
	setErr  error
	sets    int
	deletes []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (s *fakeStore) Get(ctx context.Context, key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	raw, ok := s.data[key]
	if !ok {
		return errors.New("key not found in cache")
	}
	return json.Unmarshal(raw, dest)
}

func (s *fakeStore) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.data[key] = raw
	s.sets++
	return nil
}

func (s *fakeStore) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(s.data, k)
		s.deletes = append(s.deletes, k)
	}
	return nil
}

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func recordKey(id int) string { return "record:" + string(rune('0'+id)) }

func TestReadThrough_MissPopulatesThenHits(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	loads := 0

	lookup := ReadThrough(store, time.Minute, recordKey,
		func(ctx context.Context, id int) (*record, error) {
			loads++
			return &record{ID: id, Name: "first"}, nil
		})

	got, err := lookup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 1, loads)
	assert.Equal(t, 1, store.sets)

	// Second call is served by the cache; the loader is not touched.
	got, err = lookup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)
	assert.Equal(t, 1, loads)
}

func TestReadThrough_AbsentNeverCached(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	loads := 0

	lookup := ReadThrough(store, time.Minute, recordKey,
		func(ctx context.Context, id int) (*record, error) {
			loads++
			return nil, nil
		})

	for i := 0; i < 3; i++ {
		got, err := lookup(context.Background(), 7)
		require.NoError(t, err)
		assert.Nil(t, got)
	}

	// Every absent lookup reaches the authoritative store.
	assert.Equal(t, 3, loads)
	assert.Equal(t, 0, store.sets)
}

func TestReadThrough_LoaderErrorPassesThrough(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	boom := errors.New("db down")

	lookup := ReadThrough(store, time.Minute, recordKey,
		func(ctx context.Context, id int) (*record, error) {
			return nil, boom
		})

	_, err := lookup(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.sets)
}

func TestReadThrough_CacheBackendErrorDegradesToLoad(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.getErr = errors.New("redis unreachable")
	store.setErr = errors.New("redis unreachable")
	loads := 0

	lookup := ReadThrough(store, time.Minute, recordKey,
		func(ctx context.Context, id int) (*record, error) {
			loads++
			return &record{ID: id, Name: "loaded"}, nil
		})

	got, err := lookup(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "loaded", got.Name)
	assert.Equal(t, 1, loads)
}

func TestReadThrough_HitMatchesLoadedValue(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	want := &record{ID: 5, Name: "stable"}

	lookup := ReadThrough(store, time.Minute, recordKey,
		func(ctx context.Context, id int) (*record, error) {
			return want, nil
		})

	first, err := lookup(context.Background(), 5)
	require.NoError(t, err)

	second, err := lookup(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
