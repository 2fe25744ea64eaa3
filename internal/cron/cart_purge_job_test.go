package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/craftvine/craftvine-backend/pkg/logger"
)

type fakePurgeRepo struct {
	lastCutoff time.Time
	purged     int64
	err        error
	called     int
}

func (f *fakePurgeRepo) PurgeAbandonedBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	f.called++
	f.lastCutoff = cutoff
	if f.err != nil {
		return 0, f.err
	}
	return f.purged, nil
}

func newPurgeJob(t *testing.T, repo *fakePurgeRepo, retention time.Duration) *cartPurgeJob {
	t.Helper()
	jobIface, err := NewCartPurgeJob(CartPurgeJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		DB:         fakeTxRunner{},
		Repository: repo,
		Retention:  retention,
	})
	if err != nil {
		t.Fatalf("NewCartPurgeJob: %v", err)
	}
	job, ok := jobIface.(*cartPurgeJob)
	if !ok {
		t.Fatalf("expected cartPurgeJob, got %T", jobIface)
	}
	return job
}

func TestCartPurgeJobDeletesStaleAnonymousCarts(t *testing.T) {
	now := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	repo := &fakePurgeRepo{purged: 5}
	job := newPurgeJob(t, repo, 30*24*time.Hour)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !repo.lastCutoff.Equal(now.Add(-30 * 24 * time.Hour)) {
		t.Fatalf("unexpected cutoff %s", repo.lastCutoff)
	}
	if repo.called != 1 {
		t.Fatalf("expected repo called once, got %d", repo.called)
	}
}

func TestCartPurgeJobPropagatesErrors(t *testing.T) {
	repo := &fakePurgeRepo{err: errors.New("boom")}
	job := newPurgeJob(t, repo, time.Hour)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
