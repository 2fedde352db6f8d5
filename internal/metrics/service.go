package metrics

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/anodeen/HeadShot/internal/entitlements"
	"github.com/anodeen/HeadShot/internal/jobs"
	"github.com/anodeen/HeadShot/internal/support"
	pkgerrors "github.com/anodeen/HeadShot/pkg/errors"
)

const completedAfter = 25 * time.Second

// Snapshot is the tenant-scoped dashboard aggregate.
type Snapshot struct {
	Orders                  int64   `json:"orders"`
	Jobs                    int64   `json:"jobs"`
	CompletedJobs           int64   `json:"completedJobs"`
	SupportTickets          int64   `json:"supportTickets"`
	EstimatedConversionRate float64 `json:"estimatedConversionRate"`
}

// Service aggregates per-tenant dashboard figures.
type Service interface {
	Snapshot(ctx context.Context, tenantID int64) (*Snapshot, error)
}

type service struct {
	orders  entitlements.Repository
	jobs    jobs.Repository
	support support.Repository
	now     func() time.Time
}

// ServiceParams bundles the dependencies required to build a metrics service.
type ServiceParams struct {
	Orders  entitlements.Repository
	Jobs    jobs.Repository
	Support support.Repository
	Now     func() time.Time
}

// NewService constructs a metrics service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository is required")
	}
	if params.Jobs == nil {
		return nil, fmt.Errorf("jobs repository is required")
	}
	if params.Support == nil {
		return nil, fmt.Errorf("support repository is required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		orders:  params.Orders,
		jobs:    params.Jobs,
		support: params.Support,
		now:     now,
	}, nil
}

// Snapshot computes all counts against one clock sample so completed-job
// figures stay consistent with the job listing taken at the same moment.
func (s *service) Snapshot(ctx context.Context, tenantID int64) (*Snapshot, error) {
	now := s.now()

	orders, err := s.orders.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count orders")
	}
	jobTotal, err := s.jobs.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count jobs")
	}
	completed, err := s.jobs.CountCompletedForTenant(ctx, tenantID, now.Add(-completedAfter))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count completed jobs")
	}
	tickets, err := s.support.CountForTenant(ctx, tenantID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count support tickets")
	}

	var conversion float64
	if jobTotal > 0 {
		conversion = math.Round(float64(orders)/float64(jobTotal)*1000) / 10
	}

	return &Snapshot{
		Orders:                  orders,
		Jobs:                    jobTotal,
		CompletedJobs:           completed,
		SupportTickets:          tickets,
		EstimatedConversionRate: conversion,
	}, nil
}
