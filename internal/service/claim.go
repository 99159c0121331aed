package service

import (
	"context"
	"net/http"

	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/domain/model"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

const (
	claimPath = "/prize/claim"

	// DefaultClaimPageSize is the page size of the claim search when none is given.
	DefaultClaimPageSize = 50
)

// ClaimServiceOptions groups dependencies for ClaimService.
type ClaimServiceOptions struct {
	API Requester
}

// ClaimService reviews prize claims.
type ClaimService struct {
	api Requester
}

// NewClaimService constructs a new ClaimService.
func NewClaimService(opts ClaimServiceOptions) *ClaimService {
	requireAPI(opts.API, "NewClaimService")
	return &ClaimService{api: opts.API}
}

// List searches claims. The search endpoint takes its paging in a POST body.
func (s *ClaimService) List(ctx context.Context, params model.ListParams) ([]model.PrizeClaim, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	filters, err := params.FiltersJSON()
	if err != nil {
		return nil, err
	}
	body := model.ClaimListRequest{Page: params.Page, Size: params.Size, Filters: filters}
	if body.Page == 0 {
		body.Page = 1
	}
	if body.Size == 0 {
		body.Size = DefaultClaimPageSize
	}
	return call[[]model.PrizeClaim](ctx, s.api, apiclient.Request{Method: http.MethodPost, Path: claimPath, Body: body})
}

// UpdateStatus moves a claim to status.
func (s *ClaimService) UpdateStatus(ctx context.Context, id int64, status model.ClaimStatus) (*model.PrizeClaim, error) {
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", "status must be one of PENDING, COMPLETED, REJECTED")
	}
	c, err := call[model.PrizeClaim](ctx, s.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   resourcePath(claimPath, id) + "/status",
		Body:   model.ClaimStatusUpdate{Status: status},
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// AssignAgent assigns a service agent to a claim; a nil agentID unassigns.
func (s *ClaimService) AssignAgent(ctx context.Context, id int64, agentID *int64) (*model.PrizeClaim, error) {
	c, err := call[model.PrizeClaim](ctx, s.api, apiclient.Request{
		Method: http.MethodPatch,
		Path:   resourcePath(claimPath, id) + "/agent",
		Body:   model.ClaimAgentAssignment{AgentID: agentID},
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
