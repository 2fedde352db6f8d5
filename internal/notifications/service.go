package notifications

import (
	"context"
	"fmt"

	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"gorm.io/gorm"
)

const listLimit = 20

// Entry is the wire shape for one feed item.
type Entry struct {
	ID        int64                  `json:"id"`
	Type      enums.NotificationType `json:"type"`
	Message   string                 `json:"message"`
	CreatedAt int64                  `json:"createdAt"`
}

// Service exposes the tenant notification feed.
type Service interface {
	Record(ctx context.Context, tx *gorm.DB, tenantID int64, kind enums.NotificationType, message string) error
	List(ctx context.Context, tenantID int64) ([]Entry, error)
}

type service struct {
	repo Repository
}

// NewService constructs a notification service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("notifications repository is required")
	}
	return &service{repo: repo}, nil
}

// Record appends a feed entry, joining the caller's transaction when one is given.
func (s *service) Record(ctx context.Context, tx *gorm.DB, tenantID int64, kind enums.NotificationType, message string) error {
	_, err := s.repo.WithTx(tx).Create(ctx, &models.Notification{
		TenantID: tenantID,
		Type:     kind,
		Message:  message,
	})
	return err
}

func (s *service) List(ctx context.Context, tenantID int64) ([]Entry, error) {
	rows, err := s.repo.ListForTenant(ctx, tenantID, listLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, Entry{
			ID:        row.ID,
			Type:      row.Type,
			Message:   row.Message,
			CreatedAt: row.CreatedAt.Unix(),
		})
	}
	return entries, nil
}
