package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/domain/model"
)

const (
	contestPath   = "/contest"
	prizeRulePath = "/prize-rule"
)

// ContestServiceOptions groups dependencies for ContestService.
type ContestServiceOptions struct {
	API Requester
}

// ContestService manages contests.
type ContestService struct {
	api Requester
}

// NewContestService constructs a new ContestService.
func NewContestService(opts ContestServiceOptions) *ContestService {
	requireAPI(opts.API, "NewContestService")
	return &ContestService{api: opts.API}
}

// List returns a page of contests.
func (s *ContestService) List(ctx context.Context, params model.ListParams) ([]model.Contest, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	q, err := params.Query()
	if err != nil {
		return nil, err
	}
	return call[[]model.Contest](ctx, s.api, apiclient.Request{Path: contestPath, Query: q})
}

// Get returns a contest with its prize rules.
func (s *ContestService) Get(ctx context.Context, id int64) (*model.ContestWithRules, error) {
	c, err := call[model.ContestWithRules](ctx, s.api, apiclient.Request{Path: resourcePath(contestPath, id)})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create creates a contest.
func (s *ContestService) Create(ctx context.Context, req model.ContestCreate) (*model.Contest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := call[model.Contest](ctx, s.api, apiclient.Request{Method: http.MethodPost, Path: contestPath, Body: req})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Update applies a partial update to a contest.
func (s *ContestService) Update(ctx context.Context, id int64, req model.ContestUpdate) (*model.Contest, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := call[model.Contest](ctx, s.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   resourcePath(contestPath, id),
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete deletes a contest.
func (s *ContestService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: resourcePath(contestPath, id)}, nil)
}

// PrizeRuleServiceOptions groups dependencies for PrizeRuleService.
type PrizeRuleServiceOptions struct {
	API Requester
}

// PrizeRuleService manages the rank-range prize rules of contests.
type PrizeRuleService struct {
	api Requester
}

// NewPrizeRuleService constructs a new PrizeRuleService.
func NewPrizeRuleService(opts PrizeRuleServiceOptions) *PrizeRuleService {
	requireAPI(opts.API, "NewPrizeRuleService")
	return &PrizeRuleService{api: opts.API}
}

// List returns the prize rules of a contest.
func (s *PrizeRuleService) List(ctx context.Context, contestID int64) ([]model.PrizeRule, error) {
	q := url.Values{"contestId": {strconv.FormatInt(contestID, 10)}}
	return call[[]model.PrizeRule](ctx, s.api, apiclient.Request{Path: prizeRulePath, Query: q})
}

// Get returns a single prize rule.
func (s *PrizeRuleService) Get(ctx context.Context, id int64) (*model.PrizeRule, error) {
	r, err := call[model.PrizeRule](ctx, s.api, apiclient.Request{Path: resourcePath(prizeRulePath, id)})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Create creates a prize rule.
func (s *PrizeRuleService) Create(ctx context.Context, req model.PrizeRuleCreate) (*model.PrizeRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := call[model.PrizeRule](ctx, s.api, apiclient.Request{Method: http.MethodPost, Path: prizeRulePath, Body: req})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Update applies a partial update to a prize rule.
func (s *PrizeRuleService) Update(ctx context.Context, id int64, req model.PrizeRuleUpdate) (*model.PrizeRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := call[model.PrizeRule](ctx, s.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   resourcePath(prizeRulePath, id),
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete deletes a prize rule.
func (s *PrizeRuleService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: resourcePath(prizeRulePath, id)}, nil)
}
