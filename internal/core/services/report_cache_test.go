package services

import (
	"errors"
	"testing"
	"time"

	"rentdesk/internal/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReportCache_FetchOnce(t *testing.T) {
	c := NewReportCache(10, time.Minute)
	defer c.Stop()

	calls := 0
	load := func() (int, error) {
		calls++
		return 42, nil
	}

	v, err := cached(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = cached(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, calls)
}

func TestReportCache_ErrorsAreNotCached(t *testing.T) {
	c := NewReportCache(10, time.Minute)
	defer c.Stop()

	boom := errors.New("boom")
	_, err := cached(c, "k", func() (string, error) { return "", boom })
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, c.Len())
}

func TestReportCache_ClearedByHub(t *testing.T) {
	c := NewReportCache(10, time.Minute)
	defer c.Stop()
	hub := events.NewHub()
	c.Subscribe(hub)

	_, err := cached(c, "a", func() (int, error) { return 1, nil })
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	hub.Publish(EntityRoom, events.TypeUpdated, 1)
	assert.Zero(t, c.Len())
}

func TestReportCache_ClearDuringLoadIsNotStored(t *testing.T) {
	c := NewReportCache(10, time.Minute)
	defer c.Stop()

	calls := 0
	load := func() (int, error) {
		calls++
		if calls == 1 {
			// a mutation lands while the first report is being built
			c.Clear()
		}
		return calls, nil
	}

	v, err := cached(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 1, v)
	assert.Zero(t, c.Len())

	v, err = cached(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = cached(c, "k", load)
	require.NoError(t, err)
	assert.Equal(t, 2, v)
	assert.Equal(t, 2, calls)
}

func TestReportCache_ZeroTTLBypasses(t *testing.T) {
	c := NewReportCache(10, 0)
	defer c.Stop()

	calls := 0
	for i := 0; i < 3; i++ {
		_, err := cached(c, "k", func() (int, error) { calls++; return calls, nil })
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)

	var nilCache *ReportCache
	v, err := cached(nilCache, "k", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	nilCache.Clear()
	assert.Zero(t, nilCache.Len())
}
