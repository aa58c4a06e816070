package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// SubscriptionExpiryJobName is the scheduler name of the expiry sweep
const SubscriptionExpiryJobName = "subscription_expiry"

// SubscriptionExpirer marks lapsed subscriptions as expired
type SubscriptionExpirer interface {
	ExpireEnded(ctx context.Context) (int64, error)
}

// SubscriptionExpiryJob flips active subscriptions past their end date to expired
type SubscriptionExpiryJob struct {
	expirer SubscriptionExpirer
	logger  *zap.Logger
	timeout time.Duration
}

func NewSubscriptionExpiryJob(expirer SubscriptionExpirer, logger *zap.Logger, timeout time.Duration) *SubscriptionExpiryJob {
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &SubscriptionExpiryJob{
		expirer: expirer,
		logger:  logger,
		timeout: timeout,
	}
}

// Run executes one sweep. Called by the scheduler.
func (j *SubscriptionExpiryJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()

	start := time.Now()
	expired, err := j.expirer.ExpireEnded(ctx)
	if err != nil {
		j.logger.Error("subscription expiry job failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return
	}

	j.logger.Info("subscription expiry job completed",
		zap.Int64("expired", expired),
		zap.Duration("duration", time.Since(start)))
}

// Register adds the job to the scheduler under SubscriptionExpiryJobName
func (j *SubscriptionExpiryJob) Register(s *Scheduler, cronExpr string) error {
	return s.AddJob(SubscriptionExpiryJobName, cronExpr, j.Run)
}
