package support

import (
	"context"
	"fmt"
	"strings"

	"github.com/anodeen/HeadShot/pkg/db/models"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
)

// CreateTicketInput carries the contact payload after transport decoding.
type CreateTicketInput struct {
	Email   string
	Message string
	OrderID *int64
}

// TicketReceipt acknowledges a stored ticket.
type TicketReceipt struct {
	ID int64 `json:"id"`
}

// Service records tenant support requests. Tickets are append-only; the
// optional order reference is stored as given, not verified.
type Service interface {
	CreateTicket(ctx context.Context, tenantID int64, input CreateTicketInput) (*TicketReceipt, error)
}

type service struct {
	repo Repository
}

// NewService constructs a support service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("support repository is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateTicket(ctx context.Context, tenantID int64, input CreateTicketInput) (*TicketReceipt, error) {
	email := strings.TrimSpace(input.Email)
	message := strings.TrimSpace(input.Message)
	if email == "" || message == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email and message are required.")
	}

	ticket, err := s.repo.Create(ctx, &models.SupportTicket{
		TenantID: tenantID,
		Email:    email,
		OrderID:  input.OrderID,
		Message:  message,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create support ticket")
	}
	return &TicketReceipt{ID: ticket.ID}, nil
}
