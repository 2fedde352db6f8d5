package assets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/anodeen/HeadShot/internal/jobs"
	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"github.com/anodeen/HeadShot/pkg/security"
	"gorm.io/gorm"
)

const downloadPathPrefix = "/api/download/"

// AssetView is the wire shape for one deliverable rendition.
type AssetView struct {
	Variant     enums.AssetVariant `json:"variant"`
	DownloadURL string             `json:"downloadUrl"`
}

// DownloadView is returned when a download token resolves.
type DownloadView struct {
	Variant enums.AssetVariant `json:"variant"`
	JobID   int64              `json:"jobId"`
}

// Service owns the deliverable records tied to each job.
type Service interface {
	Generate(ctx context.Context, tx *gorm.DB, jobID int64) ([]models.GeneratedAsset, error)
	ListForJob(ctx context.Context, tenantID, jobID int64) ([]AssetView, error)
	ResolveDownload(ctx context.Context, tenantID int64, token string) (*DownloadView, error)
}

type service struct {
	repo Repository
	jobs jobs.Repository
	now  func() time.Time
}

// ServiceParams bundles the dependencies required to build an asset service.
type ServiceParams struct {
	Repo Repository
	Jobs jobs.Repository
	Now  func() time.Time
}

// NewService constructs an asset service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("assets repository is required")
	}
	if params.Jobs == nil {
		return nil, fmt.Errorf("jobs repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{repo: params.Repo, jobs: params.Jobs, now: now}, nil
}

// Generate writes the fixed variant set for a job, each with a fresh random
// token. It joins the caller's transaction so a job is never observable
// without its assets.
func (s *service) Generate(ctx context.Context, tx *gorm.DB, jobID int64) ([]models.GeneratedAsset, error) {
	variants := enums.AssetVariants()
	batch := make([]models.GeneratedAsset, 0, len(variants))
	for _, variant := range variants {
		token, err := security.NewOpaqueToken()
		if err != nil {
			return nil, fmt.Errorf("mint download token: %w", err)
		}
		batch = append(batch, models.GeneratedAsset{
			JobID:         jobID,
			Variant:       variant,
			DownloadToken: token,
		})
	}
	if err := s.repo.WithTx(tx).CreateBatch(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// ListForJob exposes the renditions once the parent job has completed. The
// rows exist from creation time; completion is a read-time gate.
func (s *service) ListForJob(ctx context.Context, tenantID, jobID int64) ([]AssetView, error) {
	job, err := s.jobs.FindByIDForTenant(ctx, jobID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Job not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find job")
	}

	if status := jobs.Derive(s.now(), job.CreatedAt); status.State != enums.JobStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "Assets are available after completion.")
	}

	rows, err := s.repo.ListByJobID(ctx, jobID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list assets")
	}
	views := make([]AssetView, 0, len(rows))
	for _, row := range rows {
		views = append(views, AssetView{
			Variant:     row.Variant,
			DownloadURL: downloadPathPrefix + row.DownloadToken,
		})
	}
	return views, nil
}

// ResolveDownload maps a token back to its rendition. Unknown tokens, tokens
// owned by another tenant, and tokens for jobs that have not completed all
// read as missing.
func (s *service) ResolveDownload(ctx context.Context, tenantID int64, token string) (*DownloadView, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Download not found.")
	}
	asset, err := s.repo.FindByTokenForTenant(ctx, token, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Download not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find download token")
	}

	job, err := s.jobs.FindByIDForTenant(ctx, asset.JobID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Download not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find asset job")
	}
	if status := jobs.Derive(s.now(), job.CreatedAt); status.State != enums.JobStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Download not found.")
	}

	return &DownloadView{Variant: asset.Variant, JobID: asset.JobID}, nil
}
