package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/stepcontest/contest-admin/internal/domain/model"
)

// OverviewServiceOptions groups dependencies for OverviewService.
type OverviewServiceOptions struct {
	Contests *ContestService
	Agents   *ServiceAgentService
	Claims   *ClaimService
}

// OverviewService assembles the dashboard landing summary.
type OverviewService struct {
	contests *ContestService
	agents   *ServiceAgentService
	claims   *ClaimService
}

// Overview is the dashboard landing summary.
type Overview struct {
	Contests         []model.Contest             `json:"contests"`
	ContestsByStatus map[model.ContestStatus]int `json:"contestsByStatus"`
	ActiveAgents     []model.ServiceAgent        `json:"activeAgents"`
	PendingClaims    []model.PrizeClaim          `json:"pendingClaims"`
}

// NewOverviewService constructs a new OverviewService.
func NewOverviewService(opts OverviewServiceOptions) *OverviewService {
	if opts.Contests == nil || opts.Agents == nil || opts.Claims == nil {
		panic("NewOverviewService: contests, agents and claims services are required")
	}
	return &OverviewService{contests: opts.Contests, agents: opts.Agents, claims: opts.Claims}
}

// Load fetches contests, active agents and the first page of pending claims concurrently.
// The first failure (typically Unauthorized) cancels the remaining requests.
func (s *OverviewService) Load(ctx context.Context) (*Overview, error) {
	var out Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		contests, err := s.contests.List(gctx, model.ListParams{Page: 1, Size: 200})
		if err != nil {
			return fmt.Errorf("load contests: %w", err)
		}
		out.Contests = contests
		return nil
	})
	g.Go(func() error {
		agents, err := s.agents.ListActive(gctx)
		if err != nil {
			return fmt.Errorf("load active agents: %w", err)
		}
		out.ActiveAgents = agents
		return nil
	})
	g.Go(func() error {
		claims, err := s.claims.List(gctx, model.ListParams{
			Filters: map[string]any{"status": string(model.ClaimStatusPending)},
		})
		if err != nil {
			return fmt.Errorf("load pending claims: %w", err)
		}
		out.PendingClaims = claims
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.ContestsByStatus = make(map[model.ContestStatus]int)
	for _, c := range out.Contests {
		out.ContestsByStatus[c.Status]++
	}
	return &out, nil
}
