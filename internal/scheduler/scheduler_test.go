package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mamadbah2/dairy/internal/config"
	"github.com/mamadbah2/dairy/internal/domain/models"
)

type fakeSnapshotter struct {
	calls int
	err   error
}

func (f *fakeSnapshotter) Snapshot(ctx context.Context) (models.DashboardSnapshot, error) {
	f.calls++
	if _, ok := ctx.Deadline(); !ok {
		return models.DashboardSnapshot{}, errors.New("missing deadline")
	}
	if f.err != nil {
		return models.DashboardSnapshot{}, f.err
	}
	return models.DashboardSnapshot{ID: primitive.NewObjectID()}, nil
}

func TestTakeSnapshotLogsOutcome(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	snap := &fakeSnapshotter{}

	s, err := NewScheduler(config.SnapshotConfig{CronSchedule: "0 20 * * *", Timezone: "UTC"}, snap, zap.New(core))
	require.NoError(t, err)

	s.takeSnapshot()
	assert.Equal(t, 1, snap.calls)
	assert.Equal(t, 1, logs.FilterMessage("dashboard snapshot taken").Len())

	snap.err = errors.New("store down")
	s.takeSnapshot()
	assert.Equal(t, 1, logs.FilterMessage("failed to take dashboard snapshot").Len())
}

func TestStart(t *testing.T) {
	snap := &fakeSnapshotter{}

	idle, err := NewScheduler(config.SnapshotConfig{}, snap, nil)
	require.NoError(t, err)
	require.NoError(t, idle.Start())
	idle.Stop()

	running, err := NewScheduler(config.SnapshotConfig{CronSchedule: "@daily", Timezone: "UTC"}, snap, nil)
	require.NoError(t, err)
	require.NoError(t, running.Start())
	assert.Len(t, running.cron.Entries(), 1)
	running.Stop()

	invalid, err := NewScheduler(config.SnapshotConfig{CronSchedule: "every day"}, snap, nil)
	require.NoError(t, err)
	assert.Error(t, invalid.Start())

	_, err = NewScheduler(config.SnapshotConfig{Timezone: "Mars/Base"}, snap, nil)
	assert.Error(t, err)
}
