package jobs

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	reconcileSchedule = "*/5 * * * *"
	expireSchedule    = "*/15 * * * *"

	reconcileAfter = 10 * time.Minute
	abandonAfter   = 2 * time.Hour
	jobTimeout     = 2 * time.Minute
)

// PaymentSweeper is the part of the booking service the scheduled jobs drive.
type PaymentSweeper interface {
	ReconcilePending(ctx context.Context, olderThan time.Duration) (int, error)
	ExpireStale(ctx context.Context, olderThan time.Duration) (int64, error)
}

// ReconcilePendingPayments re-verifies bookings that were left pending, e.g. when the guest
// closed the tab before returning from the payment page.
func ReconcilePendingPayments(sweeper PaymentSweeper) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		paid, err := sweeper.ReconcilePending(ctx, reconcileAfter)
		if err != nil {
			log.Printf("jobs: reconcile pending payments: %v", err)
			return
		}
		if paid > 0 {
			log.Printf("jobs: %d pending booking(s) confirmed paid", paid)
		}
	}
}

// ExpireStalePendingBookings abandons unpaid bookings so their units return to the pool.
func ExpireStalePendingBookings(sweeper PaymentSweeper) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()
		n, err := sweeper.ExpireStale(ctx, abandonAfter)
		if err != nil {
			log.Printf("jobs: expire stale bookings: %v", err)
			return
		}
		if n > 0 {
			log.Printf("jobs: %d stale booking(s) abandoned", n)
		}
	}
}

// InitCronJobs registers the payment jobs and starts the scheduler.
func InitCronJobs(c *cron.Cron, sweeper PaymentSweeper) error {
	if _, err := c.AddFunc(reconcileSchedule, ReconcilePendingPayments(sweeper)); err != nil {
		return err
	}
	if _, err := c.AddFunc(expireSchedule, ExpireStalePendingBookings(sweeper)); err != nil {
		return err
	}

	c.Start()
	log.Println("Cron jobs initialized successfully")
	return nil
}
