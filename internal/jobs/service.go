package jobs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anodeen/HeadShot/internal/catalog"
	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"gorm.io/gorm"
)

const listLimit = 20

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type assetGenerator interface {
	Generate(ctx context.Context, tx *gorm.DB, jobID int64) ([]models.GeneratedAsset, error)
}

type notificationRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, tenantID int64, kind enums.NotificationType, message string) error
}

// Service orchestrates the job lifecycle: admission against a paid order,
// credit-gated reruns, derived status reads, and cascaded deletion.
type Service interface {
	Create(ctx context.Context, tenantID int64, input CreateJobInput) (*JobView, error)
	Rerun(ctx context.Context, tenantID, sourceJobID int64) (*JobView, error)
	List(ctx context.Context, tenantID int64) ([]JobView, error)
	Get(ctx context.Context, tenantID, jobID int64) (*JobView, error)
	Delete(ctx context.Context, tenantID, jobID int64) error
}

type service struct {
	repo          Repository
	orders        entitlements.Repository
	assets        assetGenerator
	notifications notificationRecorder
	tx            txRunner
	now           func() time.Time
}

// ServiceParams bundles the dependencies required to build a job service.
type ServiceParams struct {
	Repo          Repository
	Orders        entitlements.Repository
	Assets        assetGenerator
	Notifications notificationRecorder
	TxRunner      txRunner
	Now           func() time.Time
}

// NewService constructs a job service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("jobs repository is required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Assets == nil {
		return nil, fmt.Errorf("asset generator is required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification recorder is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		repo:          params.Repo,
		orders:        params.Orders,
		assets:        params.Assets,
		notifications: params.Notifications,
		tx:            params.TxRunner,
		now:           now,
	}, nil
}

// Create validates the submission in a fixed order so clients get
// deterministic errors, then commits the job, its assets, and the feed entry
// as one unit.
func (s *service) Create(ctx context.Context, tenantID int64, input CreateJobInput) (*JobView, error) {
	if _, ok := catalog.LookupPackage(input.Plan); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Unknown package.")
	}
	if input.UploadCount < 8 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "At least 8 uploads are required.")
	}

	var created *models.Job
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.orders.WithTx(tx).FindByIDForTenant(ctx, input.OrderID, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeConflict, "Order not found.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
		}
		if order.PaymentStatus != enums.PaymentStatusPaid {
			return pkgerrors.New(pkgerrors.CodeConflict, "Order is not paid.")
		}
		if order.Plan != input.Plan {
			return pkgerrors.New(pkgerrors.CodeConflict, "Order plan does not match selected plan.")
		}

		job, err := s.repo.WithTx(tx).Create(ctx, &models.Job{
			OrderID:     order.ID,
			Plan:        input.Plan,
			Style:       input.Style,
			Background:  input.Background,
			Outfit:      input.Outfit,
			UploadCount: input.UploadCount,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create job")
		}
		if _, err := s.assets.Generate(ctx, tx, job.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate assets")
		}
		if err := s.notifications.Record(ctx, tx, tenantID, enums.NotificationTypeJobAccepted, "Generation job accepted."); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record job notification")
		}
		created = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := viewOf(created, s.now())
	return &view, nil
}

// Rerun clones a prior job's selectors into a fresh job, paying one rerun
// credit. The conditional debit and the insert share a transaction so a
// failed clone never burns a credit.
func (s *service) Rerun(ctx context.Context, tenantID, sourceJobID int64) (*JobView, error) {
	var created *models.Job
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		source, err := repo.FindByIDForTenant(ctx, sourceJobID, tenantID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Job not found.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find source job")
		}

		debited, err := s.orders.WithTx(tx).DebitRerunCredit(ctx, source.OrderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "debit rerun credit")
		}
		if !debited {
			return pkgerrors.New(pkgerrors.CodeConflict, "No rerun credits available.")
		}

		sourceID := source.ID
		job, err := repo.Create(ctx, &models.Job{
			OrderID:     source.OrderID,
			SourceJobID: &sourceID,
			Plan:        source.Plan,
			Style:       source.Style,
			Background:  source.Background,
			Outfit:      source.Outfit,
			UploadCount: source.UploadCount,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create rerun job")
		}
		if _, err := s.assets.Generate(ctx, tx, job.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate assets")
		}
		if err := s.notifications.Record(ctx, tx, tenantID, enums.NotificationTypeJobRerun, "Rerun started."); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record rerun notification")
		}
		created = job
		return nil
	})
	if err != nil {
		return nil, err
	}

	view := viewOf(created, s.now())
	return &view, nil
}

func (s *service) List(ctx context.Context, tenantID int64) ([]JobView, error) {
	rows, err := s.repo.ListForTenant(ctx, tenantID, listLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list jobs")
	}

	// One clock sample for the whole response.
	now := s.now()
	views := make([]JobView, 0, len(rows))
	for i := range rows {
		views = append(views, viewOf(&rows[i], now))
	}
	return views, nil
}

func (s *service) Get(ctx context.Context, tenantID, jobID int64) (*JobView, error) {
	job, err := s.repo.FindByIDForTenant(ctx, jobID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Job not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find job")
	}
	view := viewOf(job, s.now())
	return &view, nil
}

func (s *service) Delete(ctx context.Context, tenantID, jobID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByIDForTenant(ctx, jobID, tenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Job not found.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find job")
		}
		if err := repo.DeleteCascade(ctx, jobID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete job")
		}
		return nil
	})
}
