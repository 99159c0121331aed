package testutil

import (
	"time"

	"github.com/stepcontest/contest-admin/internal/domain/model"
)

// ContestBuilder provides a fluent interface for building ContestCreate requests for testing.
type ContestBuilder struct {
	req model.ContestCreate
}

// NewContest creates a ContestBuilder for a valid nationwide daily contest that
// starts at TestTime and runs for thirty days.
func NewContest() *ContestBuilder {
	start := TestTime()
	return &ContestBuilder{
		req: model.ContestCreate{
			Title:     "Spring Steps",
			Scope:     model.RegionLevelNone,
			Frequency: model.ContestFrequencyDaily,
			StartAt:   start,
			EndAt:     start.AddDate(0, 0, 30),
		},
	}
}

// WithTitle sets the contest title.
func (b *ContestBuilder) WithTitle(title string) *ContestBuilder {
	b.req.Title = title
	return b
}

// WithRegion scopes the contest to a region.
func (b *ContestBuilder) WithRegion(scope model.RegionLevel, code string) *ContestBuilder {
	b.req.Scope = scope
	b.req.RegionCode = code
	return b
}

// WithFrequency sets how often the contest recurs.
func (b *ContestBuilder) WithFrequency(f model.ContestFrequency) *ContestBuilder {
	b.req.Frequency = f
	return b
}

// WithAudience restricts the contest audience.
func (b *ContestBuilder) WithAudience(a model.ContestAudience) *ContestBuilder {
	b.req.Audience = a
	return b
}

// WithWindow sets the start and end of the contest.
func (b *ContestBuilder) WithWindow(start, end time.Time) *ContestBuilder {
	b.req.StartAt = start
	b.req.EndAt = end
	return b
}

// Build returns the constructed ContestCreate.
func (b *ContestBuilder) Build() model.ContestCreate {
	return b.req
}

// PrizeRuleBuilder provides a fluent interface for building PrizeRuleCreate requests for testing.
type PrizeRuleBuilder struct {
	req model.PrizeRuleCreate
}

// NewPrizeRule creates a PrizeRuleBuilder awarding 100 cents to first place of contestID.
func NewPrizeRule(contestID int64) *PrizeRuleBuilder {
	return &PrizeRuleBuilder{
		req: model.PrizeRuleCreate{
			ContestID:      contestID,
			RankStart:      1,
			RankEnd:        1,
			PrizeValueCent: 100,
		},
	}
}

// WithRanks sets the inclusive rank range.
func (b *PrizeRuleBuilder) WithRanks(start, end int) *PrizeRuleBuilder {
	b.req.RankStart = start
	b.req.RankEnd = end
	return b
}

// WithPrizeValue sets the prize in cents.
func (b *PrizeRuleBuilder) WithPrizeValue(cents int64) *PrizeRuleBuilder {
	b.req.PrizeValueCent = cents
	return b
}

// Build returns the constructed PrizeRuleCreate.
func (b *PrizeRuleBuilder) Build() model.PrizeRuleCreate {
	return b.req
}
