package model

import (
	"time"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// AdminUser is a participant as seen by administrators.
type AdminUser struct {
	ID               int64     `json:"id"`
	OpenID           string    `json:"openid"`
	WechatNick       *string   `json:"wechatNick"`
	AvatarURL        *string   `json:"avatarUrl"`
	CanParticipate   bool      `json:"canParticipate"`
	IsPromoter       bool      `json:"isPromoter"`
	TotalRewardsCent int64     `json:"totalRewardsCent"`
	JoinCount        int       `json:"joinCount"`
	PrizeMultiplier  float64   `json:"prizeMultiplier"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// AdminUserUpdate is a partial update of the administrator-controlled user flags.
type AdminUserUpdate struct {
	IsPromoter       *bool  `json:"isPromoter,omitempty"`
	CanParticipate   *bool  `json:"canParticipate,omitempty"`
	TotalRewardsCent *int64 `json:"totalRewardsCent,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *AdminUserUpdate) HasUpdates() bool {
	return r.IsPromoter != nil || r.CanParticipate != nil || r.TotalRewardsCent != nil
}

// Validate validates AdminUserUpdate.
func (r *AdminUserUpdate) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if r.TotalRewardsCent != nil && *r.TotalRewardsCent < 0 {
		return apperrors.ValidationField("totalRewardsCent", "totalRewardsCent cannot be negative")
	}
	return nil
}

// RankRow is one line of a contest leaderboard.
type RankRow struct {
	Rank     int     `json:"rank"`
	UserID   int64   `json:"userId"`
	Name     string  `json:"name"`
	Steps    int64   `json:"steps"`
	Avatar   *string `json:"avatar,omitempty"`
	Abnormal bool    `json:"abnormal,omitempty"`
}

// ContestRanking is the head and tail of a contest leaderboard.
type ContestRanking struct {
	ContestID    int64     `json:"contestId"`
	ContestTitle string    `json:"contestTitle"`
	TotalEntries int       `json:"totalEntries"`
	Top          []RankRow `json:"top"`
	Tail         []RankRow `json:"tail"`
}
