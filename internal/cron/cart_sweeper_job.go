package cron

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/logger"
	"github.com/craftvine/craftvine-backend/pkg/metrics"
)

const defaultAbandonAfter = 720 * time.Hour

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type cartSweepRepo interface {
	MarkAbandonedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// CartSweeperJobParams configure the abandoned-cart sweeper.
type CartSweeperJobParams struct {
	Logger       *logger.Logger
	DB           txRunner
	Repository   cartSweepRepo
	Metrics      *metrics.CronJobMetrics
	AbandonAfter time.Duration
}

// NewCartSweeperJob builds the job that flips idle active carts to abandoned.
func NewCartSweeperJob(params CartSweeperJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	abandonAfter := params.AbandonAfter
	if abandonAfter <= 0 {
		abandonAfter = defaultAbandonAfter
	}
	return &cartSweeperJob{
		logg:         params.Logger,
		db:           params.DB,
		repo:         params.Repository,
		metrics:      params.Metrics,
		abandonAfter: abandonAfter,
		now:          time.Now,
	}, nil
}

type cartSweeperJob struct {
	logg         *logger.Logger
	db           txRunner
	repo         cartSweepRepo
	metrics      *metrics.CronJobMetrics
	abandonAfter time.Duration
	now          func() time.Time
}

func (j *cartSweeperJob) Name() string { return "cart-sweeper" }

func (j *cartSweeperJob) Run(ctx context.Context) error {
	cutoff := j.now().UTC().Add(-j.abandonAfter)
	var swept int64
	err := j.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := j.repo.MarkAbandonedBefore(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		swept = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("cart sweep: %w", err)
	}
	j.metrics.AddRowsProcessed(j.Name(), int(swept))
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"cutoff":        cutoff,
		"abandon_after": j.abandonAfter.String(),
		"carts_swept":   swept,
	})
	j.logg.Info(logCtx, "cart sweep complete")
	return nil
}
