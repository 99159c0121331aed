package model

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

const maxContestTitleLen = 255

// ContestFrequency is how often a contest recurs.
type ContestFrequency string

const (
	ContestFrequencyDaily   ContestFrequency = "DAILY"
	ContestFrequencyWeekly  ContestFrequency = "WEEKLY"
	ContestFrequencyMonthly ContestFrequency = "MONTHLY"
)

// Valid reports whether the frequency is supported.
func (f ContestFrequency) Valid() bool {
	switch f {
	case ContestFrequencyDaily, ContestFrequencyWeekly, ContestFrequencyMonthly:
		return true
	default:
		return false
	}
}

// ContestAudience restricts who may join a contest.
type ContestAudience string

const (
	ContestAudienceAdults ContestAudience = "ADULTS"
	ContestAudienceYouth  ContestAudience = "YOUTH"
)

// Valid reports whether the audience is supported.
func (a ContestAudience) Valid() bool {
	return a == ContestAudienceAdults || a == ContestAudienceYouth
}

// ContestStatus is the lifecycle stage of a contest.
type ContestStatus string

const (
	ContestStatusScheduled  ContestStatus = "SCHEDULED"
	ContestStatusOngoing    ContestStatus = "ONGOING"
	ContestStatusFinalizing ContestStatus = "FINALIZING"
	ContestStatusFinalized  ContestStatus = "FINALIZED"
	ContestStatusCanceled   ContestStatus = "CANCELED"
)

// Valid reports whether the status is supported.
func (s ContestStatus) Valid() bool {
	switch s {
	case ContestStatusScheduled, ContestStatusOngoing, ContestStatusFinalizing,
		ContestStatusFinalized, ContestStatusCanceled:
		return true
	default:
		return false
	}
}

// Contest is a step-count competition.
type Contest struct {
	ID         int64            `json:"id"`
	Title      string           `json:"title"`
	Scope      RegionLevel      `json:"scope"`
	RegionCode string           `json:"regionCode"`
	HeatLevel  int              `json:"heatLevel"`
	Frequency  ContestFrequency `json:"frequency"`
	Audience   ContestAudience  `json:"audience"`
	Status     ContestStatus    `json:"status"`
	StartAt    time.Time        `json:"startAt"`
	EndAt      time.Time        `json:"endAt"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// ContestWithRules is a contest together with its prize rules.
type ContestWithRules struct {
	Contest
	PrizeRules []PrizeRule `json:"contestPrizeRule"`
}

// ContestCreate represents parameters to create a Contest.
type ContestCreate struct {
	Title      string           `json:"title"`
	Scope      RegionLevel      `json:"scope"`
	RegionCode string           `json:"regionCode"`
	Frequency  ContestFrequency `json:"frequency"`
	Audience   ContestAudience  `json:"audience,omitempty"`
	Status     ContestStatus    `json:"status,omitempty"`
	StartAt    time.Time        `json:"startAt"`
	EndAt      time.Time        `json:"endAt"`
}

// Validate validates ContestCreate before it is sent.
func (r *ContestCreate) Validate() error {
	r.Title = strings.TrimSpace(r.Title)
	if err := validateTitle(r.Title); err != nil {
		return err
	}
	if !r.Scope.Valid() {
		return apperrors.ValidationField("scope", "scope must be one of NONE, CITY, PROVINCE, DISTRICT")
	}
	if err := validateRegionCode(r.Scope, r.RegionCode); err != nil {
		return err
	}
	if !r.Frequency.Valid() {
		return apperrors.ValidationField("frequency", "frequency must be one of DAILY, WEEKLY, MONTHLY")
	}
	if r.Audience != "" && !r.Audience.Valid() {
		return apperrors.ValidationField("audience", "audience must be ADULTS or YOUTH")
	}
	if r.Status != "" && !r.Status.Valid() {
		return apperrors.ValidationField("status", "invalid status")
	}
	if r.StartAt.IsZero() || r.EndAt.IsZero() {
		return apperrors.ValidationField("startAt", "startAt and endAt are required")
	}
	if !r.EndAt.After(r.StartAt) {
		return apperrors.ValidationField("endAt", "endAt must be after startAt")
	}
	return nil
}

// ContestUpdate is a partial update; nil fields are left unchanged.
type ContestUpdate struct {
	Title      *string           `json:"title,omitempty"`
	Scope      *RegionLevel      `json:"scope,omitempty"`
	RegionCode *string           `json:"regionCode,omitempty"`
	Frequency  *ContestFrequency `json:"frequency,omitempty"`
	Audience   *ContestAudience  `json:"audience,omitempty"`
	Status     *ContestStatus    `json:"status,omitempty"`
	StartAt    *time.Time        `json:"startAt,omitempty"`
	EndAt      *time.Time        `json:"endAt,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *ContestUpdate) HasUpdates() bool {
	return r.Title != nil || r.Scope != nil || r.RegionCode != nil || r.Frequency != nil ||
		r.Audience != nil || r.Status != nil || r.StartAt != nil || r.EndAt != nil
}

// Validate ensures at least one field is set and the set values are sane.
func (r *ContestUpdate) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if err := validateTitle(title); err != nil {
			return err
		}
		r.Title = &title
	}
	if r.Scope != nil && !r.Scope.Valid() {
		return apperrors.ValidationField("scope", "scope must be one of NONE, CITY, PROVINCE, DISTRICT")
	}
	if r.Scope != nil && r.RegionCode != nil {
		if err := validateRegionCode(*r.Scope, *r.RegionCode); err != nil {
			return err
		}
	}
	if r.Frequency != nil && !r.Frequency.Valid() {
		return apperrors.ValidationField("frequency", "frequency must be one of DAILY, WEEKLY, MONTHLY")
	}
	if r.Audience != nil && !r.Audience.Valid() {
		return apperrors.ValidationField("audience", "audience must be ADULTS or YOUTH")
	}
	if r.Status != nil && !r.Status.Valid() {
		return apperrors.ValidationField("status", "invalid status")
	}
	if r.StartAt != nil && r.EndAt != nil && !r.EndAt.After(*r.StartAt) {
		return apperrors.ValidationField("endAt", "endAt must be after startAt")
	}
	return nil
}

func validateTitle(title string) error {
	if title == "" {
		return apperrors.ValidationField("title", "title is required")
	}
	if utf8.RuneCountInString(title) > maxContestTitleLen {
		return apperrors.ValidationField("title", "title cannot exceed 255 characters")
	}
	return nil
}

// validateRegionCode forbids a region for nationwide (NONE) contests.
func validateRegionCode(scope RegionLevel, code string) error {
	if scope == RegionLevelNone && strings.TrimSpace(code) != "" {
		return apperrors.ValidationField("regionCode", "regionCode must be empty when scope is NONE")
	}
	return nil
}
