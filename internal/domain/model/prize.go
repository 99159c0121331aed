package model

import (
	"encoding/json"
	"strings"
	"time"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// PrizeRule awards PrizeValueCent to every rank in [RankStart, RankEnd].
type PrizeRule struct {
	ID             int64 `json:"id"`
	ContestID      int64 `json:"contestId"`
	RankStart      int   `json:"rankStart"`
	RankEnd        int   `json:"rankEnd"`
	PrizeValueCent int64 `json:"prizeValueCent"`
}

// PrizeRuleCreate represents parameters to create a PrizeRule.
type PrizeRuleCreate struct {
	ContestID      int64 `json:"contestId"`
	RankStart      int   `json:"rankStart"`
	RankEnd        int   `json:"rankEnd"`
	PrizeValueCent int64 `json:"prizeValueCent"`
}

// Validate validates PrizeRuleCreate.
func (r *PrizeRuleCreate) Validate() error {
	if r.ContestID <= 0 {
		return apperrors.ValidationField("contestId", "contestId is required")
	}
	return validateRankRange(r.RankStart, r.RankEnd, r.PrizeValueCent)
}

// PrizeRuleUpdate is a partial update; the owning contest cannot change.
type PrizeRuleUpdate struct {
	RankStart      *int   `json:"rankStart,omitempty"`
	RankEnd        *int   `json:"rankEnd,omitempty"`
	PrizeValueCent *int64 `json:"prizeValueCent,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *PrizeRuleUpdate) HasUpdates() bool {
	return r.RankStart != nil || r.RankEnd != nil || r.PrizeValueCent != nil
}

// Validate ensures at least one field is set. The range is only checked when both
// ends are supplied; the backend checks it against the stored rule otherwise.
func (r *PrizeRuleUpdate) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.RankStart != nil && *r.RankStart < 1 {
		return apperrors.ValidationField("rankStart", "rankStart must be >= 1")
	}
	if r.RankEnd != nil && *r.RankEnd < 1 {
		return apperrors.ValidationField("rankEnd", "rankEnd must be >= 1")
	}
	if r.RankStart != nil && r.RankEnd != nil && *r.RankStart > *r.RankEnd {
		return apperrors.ValidationField("rankEnd", "rankEnd must be >= rankStart")
	}
	if r.PrizeValueCent != nil && *r.PrizeValueCent < 0 {
		return apperrors.ValidationField("prizeValueCent", "prizeValueCent cannot be negative")
	}
	return nil
}

func validateRankRange(start, end int, cents int64) error {
	if start < 1 {
		return apperrors.ValidationField("rankStart", "rankStart must be >= 1")
	}
	if end < start {
		return apperrors.ValidationField("rankEnd", "rankEnd must be >= rankStart")
	}
	if cents < 0 {
		return apperrors.ValidationField("prizeValueCent", "prizeValueCent cannot be negative")
	}
	return nil
}

// ClaimStatus is the processing state of a prize claim.
type ClaimStatus string

const (
	ClaimStatusPending   ClaimStatus = "PENDING"
	ClaimStatusCompleted ClaimStatus = "COMPLETED"
	ClaimStatusRejected  ClaimStatus = "REJECTED"
)

// Valid reports whether the claim status is supported.
func (s ClaimStatus) Valid() bool {
	switch s {
	case ClaimStatusPending, ClaimStatusCompleted, ClaimStatusRejected:
		return true
	default:
		return false
	}
}

// ParseClaimStatus normalizes a status string and reports whether it is supported.
func ParseClaimStatus(value string) (ClaimStatus, bool) {
	s := ClaimStatus(strings.ToUpper(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// ClaimAgent is the service agent summary embedded in a claim.
type ClaimAgent struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	WechatID *string `json:"wechatId,omitempty"`
}

// PrizeClaim is a participant's request to redeem a prize.
type PrizeClaim struct {
	ID              int64       `json:"id"`
	ContestID       int64       `json:"contestId"`
	UserID          int64       `json:"userId"`
	Rank            int         `json:"rank"`
	Steps           int64       `json:"steps"`
	PrizeValueCent  *int64      `json:"prizeValueCent"`
	AssignedAgentID *int64      `json:"assignedAgentId"`
	AssignedAgent   *ClaimAgent `json:"assignedAgent,omitempty"`
	Status          ClaimStatus `json:"status"`
	UseMultiple     bool        `json:"useMultiple"`
	Note            *string     `json:"note"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

// ClaimStatusUpdate is the body of a claim status change.
type ClaimStatusUpdate struct {
	Status ClaimStatus `json:"status"`
}

// ClaimAgentAssignment is the body of an agent (un)assignment. A nil AgentID
// serializes as null and unassigns.
type ClaimAgentAssignment struct {
	AgentID *int64 `json:"agentId"`
}

// ClaimListRequest is the body of the claim search endpoint.
type ClaimListRequest struct {
	Page    int             `json:"page"`
	Size    int             `json:"size"`
	Filters json.RawMessage `json:"filters"`
}
