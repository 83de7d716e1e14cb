package activity

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/runoshun/secbot/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_RecentNewestFirst(t *testing.T) {
	clock := &testutil.MockClock{NowTime: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)}
	log := New(10, clock, nil)

	log.Record("first")
	clock.NowTime = clock.NowTime.Add(time.Minute)
	log.Record("second")

	recent := log.Recent()
	require.Len(t, recent, 2)
	assert.Equal(t, "second", recent[0].Description)
	assert.Equal(t, "2025-06-10 09:01:00 - second", recent[0].String())
	assert.Equal(t, "first", recent[1].Description)
}

func TestLog_EvictsOldest(t *testing.T) {
	log := New(3, &testutil.MockClock{}, nil)

	for i := 1; i <= 5; i++ {
		log.Record(fmt.Sprintf("entry %d", i))
	}

	var got []string
	for _, e := range log.Recent() {
		got = append(got, e.Description)
	}
	assert.Equal(t, []string{"entry 5", "entry 4", "entry 3"}, got)
	assert.Equal(t, 3, log.Len())
}

func TestLog_DefaultCapacity(t *testing.T) {
	log := New(0, &testutil.MockClock{}, nil)

	for i := range 25 {
		log.Record(fmt.Sprint(i))
	}

	assert.Equal(t, DefaultCapacity, log.Capacity())
	assert.Len(t, log.Recent(), 10)
}

func TestLog_MirrorsToLogger(t *testing.T) {
	logger := &testutil.MockLogger{}
	log := New(2, &testutil.MockClock{}, logger)

	log.Record("Task deleted: 'x'.")

	assert.Equal(t, []string{"INFO [activity] Task deleted: 'x'."}, logger.Lines)
}

func TestLog_Empty(t *testing.T) {
	assert.Empty(t, New(5, &testutil.MockClock{}, nil).Recent())
}

func TestLog_Concurrent(t *testing.T) {
	log := New(50, &testutil.MockClock{}, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				log.Record("x")
				_ = log.Recent()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, log.Len())
}
