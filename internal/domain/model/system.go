package model

import (
	"sort"

	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

// RankLimits controls how many leaderboard rows are shown by default.
type RankLimits struct {
	TopN      int `json:"topN"`
	TailCount int `json:"tailCount"`
}

// RewardTier is a default prize rule template applied to new contests.
type RewardTier struct {
	RankStart      int   `json:"rankStart"`
	RankEnd        int   `json:"rankEnd"`
	PrizeValueCent int64 `json:"prizeValueCent"`
}

// SystemConfig holds global switches and defaults.
type SystemConfig struct {
	MembershipDisabled bool         `json:"membershipDisabled"`
	RewardRulesEnabled bool         `json:"rewardRulesEnabled"`
	DefaultRankLimits  RankLimits   `json:"defaultRankLimits"`
	DefaultRewardTiers []RewardTier `json:"defaultRewardTiers"`
}

// SystemConfigUpdate is a partial update of SystemConfig.
type SystemConfigUpdate struct {
	MembershipDisabled *bool         `json:"membershipDisabled,omitempty"`
	RewardRulesEnabled *bool         `json:"rewardRulesEnabled,omitempty"`
	DefaultRankLimits  *RankLimits   `json:"defaultRankLimits,omitempty"`
	DefaultRewardTiers *[]RewardTier `json:"defaultRewardTiers,omitempty"`
}

// HasUpdates reports whether any field is set.
func (r *SystemConfigUpdate) HasUpdates() bool {
	return r.MembershipDisabled != nil || r.RewardRulesEnabled != nil ||
		r.DefaultRankLimits != nil || r.DefaultRewardTiers != nil
}

// Validate checks the limits and that the reward tiers do not overlap.
func (r *SystemConfigUpdate) Validate() error {
	if !r.HasUpdates() {
		return apperrors.Validation("at least one field must be updated")
	}
	if l := r.DefaultRankLimits; l != nil {
		if l.TopN < 0 || l.TailCount < 0 {
			return apperrors.ValidationField("defaultRankLimits", "rank limits cannot be negative")
		}
	}
	if r.DefaultRewardTiers != nil {
		return validateTiers(*r.DefaultRewardTiers)
	}
	return nil
}

func validateTiers(tiers []RewardTier) error {
	sorted := make([]RewardTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].RankStart < sorted[j].RankStart })

	for i, t := range sorted {
		if err := validateRankRange(t.RankStart, t.RankEnd, t.PrizeValueCent); err != nil {
			return err
		}
		if i > 0 && t.RankStart <= sorted[i-1].RankEnd {
			return apperrors.ValidationField("defaultRewardTiers", "reward tiers must not overlap")
		}
	}
	return nil
}
