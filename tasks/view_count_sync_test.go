package tasks

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Xushengqwer/go-common/config"
	"github.com/Xushengqwer/go-common/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	blogconfig "github.com/Xushengqwer/blog_service/config"
)

func newTestLogger(t *testing.T) *core.ZapLogger {
	t.Helper()
	logger, err := core.NewZapLogger(config.ZapConfig{Level: "warn", Encoding: "console"})
	require.NoError(t, err)
	return logger
}

type stubViewRepo struct {
	counts map[uint64]int64
	err    error
}

func (s *stubViewRepo) IncrementViewCount(context.Context, uint64, string) (bool, error) {
	return true, nil
}

func (s *stubViewRepo) GetAllViewCounts(context.Context) (map[uint64]int64, error) {
	return s.counts, s.err
}

type recordingBatchRepo struct {
	mu    sync.Mutex
	calls []map[uint64]int64
	err   error
}

func (r *recordingBatchRepo) BatchUpdatePostViewCounts(_ context.Context, viewCounts map[uint64]int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, viewCounts)
	return r.err
}

func (r *recordingBatchRepo) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func TestSyncOnce_FlushesCounts(t *testing.T) {
	batch := &recordingBatchRepo{}
	task := NewViewCountSyncTask(&stubViewRepo{counts: map[uint64]int64{1: 5, 2: 9}}, batch, blogconfig.ViewSyncConfig{}, newTestLogger(t))

	require.NoError(t, task.SyncOnce(context.Background()))
	require.Len(t, batch.calls, 1)
	assert.Equal(t, map[uint64]int64{1: 5, 2: 9}, batch.calls[0])
}

func TestSyncOnce_SkipsWhenNothingToFlush(t *testing.T) {
	batch := &recordingBatchRepo{}
	task := NewViewCountSyncTask(&stubViewRepo{counts: map[uint64]int64{}}, batch, blogconfig.ViewSyncConfig{}, newTestLogger(t))

	require.NoError(t, task.SyncOnce(context.Background()))
	assert.Zero(t, batch.callCount())
}

func TestSyncOnce_PropagatesErrors(t *testing.T) {
	logger := newTestLogger(t)

	redisDown := NewViewCountSyncTask(&stubViewRepo{err: errors.New("redis down")}, &recordingBatchRepo{}, blogconfig.ViewSyncConfig{}, logger)
	assert.Error(t, redisDown.SyncOnce(context.Background()))

	dbDown := NewViewCountSyncTask(&stubViewRepo{counts: map[uint64]int64{1: 1}}, &recordingBatchRepo{err: errors.New("db down")}, blogconfig.ViewSyncConfig{}, logger)
	assert.Error(t, dbDown.SyncOnce(context.Background()))
}

func TestStart_RejectsBadSchedule(t *testing.T) {
	defer goleak.VerifyNone(t)

	task := NewViewCountSyncTask(&stubViewRepo{}, &recordingBatchRepo{}, blogconfig.ViewSyncConfig{Schedule: "not a schedule"}, newTestLogger(t))
	assert.Error(t, task.Start())
}

func TestStartStop_RunsScheduledSyncWithoutLeaks(t *testing.T) {
	defer goleak.VerifyNone(t)

	batch := &recordingBatchRepo{}
	task := NewViewCountSyncTask(&stubViewRepo{counts: map[uint64]int64{7: 3}}, batch, blogconfig.ViewSyncConfig{Schedule: "@every 1s"}, newTestLogger(t))
	require.NoError(t, task.Start())

	assert.Eventually(t, func() bool { return batch.callCount() > 0 }, 5*time.Second, 50*time.Millisecond)

	<-task.Stop().Done()
}
