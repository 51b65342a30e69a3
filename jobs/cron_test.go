package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	reconcileAge time.Duration
	expireAge    time.Duration
	err          error
}

func (f *fakeSweeper) ReconcilePending(_ context.Context, olderThan time.Duration) (int, error) {
	f.reconcileAge = olderThan
	return 1, f.err
}

func (f *fakeSweeper) ExpireStale(_ context.Context, olderThan time.Duration) (int64, error) {
	f.expireAge = olderThan
	return 2, f.err
}

func TestJobsPassTheirThresholds(t *testing.T) {
	f := &fakeSweeper{}
	ReconcilePendingPayments(f)()
	ExpireStalePendingBookings(f)()

	assert.Equal(t, 10*time.Minute, f.reconcileAge)
	assert.Equal(t, 2*time.Hour, f.expireAge)
}

func TestJobsSurviveErrors(t *testing.T) {
	f := &fakeSweeper{err: errors.New("db gone")}
	assert.NotPanics(t, ReconcilePendingPayments(f))
	assert.NotPanics(t, ExpireStalePendingBookings(f))
}

func TestInitCronJobsRegistersBothJobs(t *testing.T) {
	c := cron.New()
	require.NoError(t, InitCronJobs(c, &fakeSweeper{}))
	defer c.Stop()

	assert.Len(t, c.Entries(), 2)
}
