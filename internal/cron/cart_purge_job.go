package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/metrics"
)

const defaultPurgeRetention = 90 * 24 * time.Hour

type cartPurgeRepo interface {
	PurgeAbandonedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// CartPurgeJobParams configure the anonymous-cart purge.
type CartPurgeJobParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository cartPurgeRepo
	Metrics    *metrics.CronJobMetrics
	Retention  time.Duration
}

// NewCartPurgeJob builds the job that deletes long-abandoned anonymous carts.
// Owned carts are never purged; a returning client can still reclaim theirs.
func NewCartPurgeJob(params CartPurgeJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultPurgeRetention
	}
	return &cartPurgeJob{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		metrics:   params.Metrics,
		retention: retention,
		now:       time.Now,
	}, nil
}

type cartPurgeJob struct {
	logg      *logger.Logger
	db        txRunner
	repo      cartPurgeRepo
	metrics   *metrics.CronJobMetrics
	retention time.Duration
	now       func() time.Time
}

func (j *cartPurgeJob) Name() string { return "cart-purge" }

func (j *cartPurgeJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.retention)
	var purged int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.PurgeAbandonedBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		purged = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("cart purge: %w", err)
	}
	j.metrics.AddRowsProcessed(j.Name(), int(purged))
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"retention":    j.retention.String(),
		"carts_purged": purged,
	})
	j.logg.Info(logCtx, "cart purge complete")
	return nil
}
