package model

import (
	"strings"
	"time"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// ServiceAgent is a support staff member who fulfills prize claims.
type ServiceAgent struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	WechatID  *string   `json:"wechatId,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ServiceAgentCreate represents parameters to create a ServiceAgent.
type ServiceAgentCreate struct {
	Name     string  `json:"name"`
	WechatID *string `json:"wechatId,omitempty"`
}

// Validate validates ServiceAgentCreate.
func (r *ServiceAgentCreate) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return apperrors.ValidationField("name", "name is required")
	}
	return nil
}

// ServiceAgentUpdate is a partial update.
type ServiceAgentUpdate struct {
	Name     *string `json:"name,omitempty"`
	WechatID *string `json:"wechatId,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *ServiceAgentUpdate) HasUpdates() bool {
	return r.Name != nil || r.WechatID != nil || r.IsActive != nil
}

// Validate validates ServiceAgentUpdate.
func (r *ServiceAgentUpdate) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		if name == "" {
			return apperrors.ValidationField("name", "name cannot be empty")
		}
		r.Name = &name
	}
	return nil
}
