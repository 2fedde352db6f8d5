package entitlements

import (
	"context"
	"errors"
	"fmt"

	"github.com/anodeen/HeadShot/internal/catalog"
	"github.com/anodeen/HeadShot/pkg/db/models"
	"github.com/anodeen/HeadShot/pkg/enums"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
	"gorm.io/gorm"
)

const listLimit = 20

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type notificationRecorder interface {
	Record(ctx context.Context, tx *gorm.DB, tenantID int64, kind enums.NotificationType, message string) error
}

// Service defines order-level operations for the purchase surface.
type Service interface {
	CreateOrder(ctx context.Context, tenantID int64, input CreateOrderInput) (*OrderSummary, error)
	ListOrders(ctx context.Context, tenantID int64) ([]OrderSummary, error)
	GetOrder(ctx context.Context, tenantID, orderID int64) (*OrderSummary, error)
	DeleteOrder(ctx context.Context, tenantID, orderID int64) error
}

type service struct {
	repo          Repository
	tx            txRunner
	notifications notificationRecorder
}

// ServiceParams bundles the dependencies required to build an order service.
type ServiceParams struct {
	Repo          Repository
	TxRunner      txRunner
	Notifications notificationRecorder
}

// NewService constructs an order service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.TxRunner == nil {
		return nil, fmt.Errorf("transaction runner is required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification recorder is required")
	}
	return &service{
		repo:          params.Repo,
		tx:            params.TxRunner,
		notifications: params.Notifications,
	}, nil
}

func (s *service) CreateOrder(ctx context.Context, tenantID int64, input CreateOrderInput) (*OrderSummary, error) {
	if _, ok := catalog.LookupPackage(input.Plan); !ok {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "Unknown package.")
	}
	if input.TeamSize < catalog.MinTeamSize || input.TeamSize > catalog.MaxTeamSize {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("teamSize must be between %d and %d.", catalog.MinTeamSize, catalog.MaxTeamSize))
	}

	// Price is always derived server-side; any client-supplied amount is ignored.
	amount := catalog.OrderAmountCents(input.Plan, input.TeamSize)

	var created *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		order, err := s.repo.WithTx(tx).Create(ctx, &models.Order{
			TenantID:      tenantID,
			Plan:          input.Plan,
			TeamSize:      input.TeamSize,
			RerunCredits:  1,
			AmountCents:   amount,
			PaymentStatus: enums.PaymentStatusPaid,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create order")
		}
		if err := s.notifications.Record(ctx, tx, tenantID, enums.NotificationTypeOrderCreated, "Payment successful. Order created."); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "record order notification")
		}
		created = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary := summarize(created)
	return &summary, nil
}

func (s *service) ListOrders(ctx context.Context, tenantID int64) ([]OrderSummary, error) {
	orders, err := s.repo.ListForTenant(ctx, tenantID, listLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list orders")
	}
	summaries := make([]OrderSummary, 0, len(orders))
	for i := range orders {
		summaries = append(summaries, summarize(&orders[i]))
	}
	return summaries, nil
}

func (s *service) GetOrder(ctx context.Context, tenantID, orderID int64) (*OrderSummary, error) {
	order, err := s.repo.FindByIDForTenant(ctx, orderID, tenantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Order not found.")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
	}
	summary := summarize(order)
	return &summary, nil
}

func (s *service) DeleteOrder(ctx context.Context, tenantID, orderID int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByIDForTenant(ctx, orderID, tenantID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "Order not found.")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "find order")
		}
		if err := repo.DeleteCascade(ctx, orderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete order")
		}
		return nil
	})
}
