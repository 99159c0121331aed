package service

import (
	"context"
	"net/http"

	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/domain/model"
)

const (
	agentPath    = "/service-agent"
	systemConfig = "/system/config"
)

// ServiceAgentServiceOptions groups dependencies for ServiceAgentService.
type ServiceAgentServiceOptions struct {
	API Requester
}

// ServiceAgentService manages the staff who fulfill prize claims.
type ServiceAgentService struct {
	api Requester
}

// NewServiceAgentService constructs a new ServiceAgentService.
func NewServiceAgentService(opts ServiceAgentServiceOptions) *ServiceAgentService {
	requireAPI(opts.API, "NewServiceAgentService")
	return &ServiceAgentService{api: opts.API}
}

// List returns every agent.
func (s *ServiceAgentService) List(ctx context.Context) ([]model.ServiceAgent, error) {
	return call[[]model.ServiceAgent](ctx, s.api, apiclient.Request{Path: agentPath})
}

// ListActive returns the agents that can take new claims.
func (s *ServiceAgentService) ListActive(ctx context.Context) ([]model.ServiceAgent, error) {
	return call[[]model.ServiceAgent](ctx, s.api, apiclient.Request{Path: agentPath + "/active"})
}

// Get returns one agent.
func (s *ServiceAgentService) Get(ctx context.Context, id int64) (*model.ServiceAgent, error) {
	a, err := call[model.ServiceAgent](ctx, s.api, apiclient.Request{Path: resourcePath(agentPath, id)})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create creates an agent.
func (s *ServiceAgentService) Create(ctx context.Context, req model.ServiceAgentCreate) (*model.ServiceAgent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a, err := call[model.ServiceAgent](ctx, s.api, apiclient.Request{Method: http.MethodPost, Path: agentPath, Body: req})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Update applies a partial update to an agent.
func (s *ServiceAgentService) Update(ctx context.Context, id int64, req model.ServiceAgentUpdate) (*model.ServiceAgent, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	a, err := call[model.ServiceAgent](ctx, s.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   resourcePath(agentPath, id),
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete deletes an agent.
func (s *ServiceAgentService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, apiclient.Request{Method: http.MethodDelete, Path: resourcePath(agentPath, id)}, nil)
}

// SystemServiceOptions groups dependencies for SystemService.
type SystemServiceOptions struct {
	API Requester
}

// SystemService reads and updates global settings.
type SystemService struct {
	api Requester
}

// NewSystemService constructs a new SystemService.
func NewSystemService(opts SystemServiceOptions) *SystemService {
	requireAPI(opts.API, "NewSystemService")
	return &SystemService{api: opts.API}
}

// GetConfig returns the current settings.
func (s *SystemService) GetConfig(ctx context.Context) (*model.SystemConfig, error) {
	c, err := call[model.SystemConfig](ctx, s.api, apiclient.Request{Path: systemConfig})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateConfig sends a partial settings document and returns the merged result.
func (s *SystemService) UpdateConfig(ctx context.Context, req model.SystemConfigUpdate) (*model.SystemConfig, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	c, err := call[model.SystemConfig](ctx, s.api, apiclient.Request{Method: http.MethodPut, Path: systemConfig, Body: req})
	if err != nil {
		return nil, err
	}
	return &c, nil
}
