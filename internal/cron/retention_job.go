package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/anodeen/HeadShot/pkg/config"
	"github.com/anodeen/HeadShot/pkg/logger"
	"go.uber.org/multierr"
)

const defaultOutputRetentionDays = 30

// retentionSweeper prunes rows created before a cutoff and reports how many
// were removed.
type retentionSweeper interface {
	DeleteCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type RetentionJobParams struct {
	Logger        *logger.Logger
	Jobs          retentionSweeper
	Sessions      retentionSweeper
	Notifications retentionSweeper
	Retention     config.RetentionConfig
	SessionTTL    time.Duration
}

// NewRetentionJob builds the job that enforces data retention windows:
// generation jobs and their assets past the output window, notifications past
// the same window, and sessions idle past the configured TTL.
func NewRetentionJob(params RetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Jobs == nil {
		return nil, fmt.Errorf("jobs repository required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notifications repository required")
	}
	outputDays := params.Retention.OutputDays
	if outputDays <= 0 {
		outputDays = defaultOutputRetentionDays
	}
	return &retentionJob{
		logg:          params.Logger,
		jobs:          params.Jobs,
		sessions:      params.Sessions,
		notifications: params.Notifications,
		outputDays:    outputDays,
		sessionTTL:    params.SessionTTL,
		now:           time.Now,
	}, nil
}

type retentionJob struct {
	logg          *logger.Logger
	jobs          retentionSweeper
	sessions      retentionSweeper
	notifications retentionSweeper
	outputDays    int
	sessionTTL    time.Duration
	now           func() time.Time
}

func (j *retentionJob) Name() string { return "retention-sweep" }

func (j *retentionJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	outputCutoff := now.Add(-time.Duration(j.outputDays) * 24 * time.Hour)

	var errs error
	var jobsDeleted, notificationsDeleted, sessionsDeleted int64

	rows, err := j.jobs.DeleteCreatedBefore(ctx, outputCutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("sweep jobs: %w", err))
	} else {
		jobsDeleted = rows
	}

	rows, err = j.notifications.DeleteCreatedBefore(ctx, outputCutoff)
	if err != nil {
		errs = multierr.Append(errs, fmt.Errorf("sweep notifications: %w", err))
	} else {
		notificationsDeleted = rows
	}

	// Sessions without an idle TTL live until explicit logout.
	if j.sessions != nil && j.sessionTTL > 0 {
		rows, err = j.sessions.DeleteCreatedBefore(ctx, now.Add(-j.sessionTTL))
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sweep sessions: %w", err))
		} else {
			sessionsDeleted = rows
		}
	}

	if errs != nil {
		return errs
	}
	logCtx := j.logg.WithFields(ctx, map[string]any{
		"output_cutoff":         outputCutoff,
		"retention_days":        j.outputDays,
		"jobs_deleted":          jobsDeleted,
		"notifications_deleted": notificationsDeleted,
		"sessions_deleted":      sessionsDeleted,
	})
	j.logg.Info(logCtx, "retention sweep complete")
	return nil
}
