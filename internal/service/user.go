package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/stepcontest/contest-admin/internal/apiclient"
	"github.com/stepcontest/contest-admin/internal/domain/model"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
)

const (
	userPath        = "/user"
	leaderboardPath = "/leaderboard/contest"
	regionPath      = "/region"

	// DefaultTopN and DefaultTailCount size the ranking view when the caller leaves them zero.
	DefaultTopN      = 10
	DefaultTailCount = 5
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	API Requester
}

// UserService reads and adjusts participant accounts.
type UserService struct {
	api Requester
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	requireAPI(opts.API, "NewUserService")
	return &UserService{api: opts.API}
}

// Get returns a user.
func (s *UserService) Get(ctx context.Context, id int64) (*model.AdminUser, error) {
	u, err := call[model.AdminUser](ctx, s.api, apiclient.Request{Path: resourcePath(userPath, id)})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update adjusts a user's administrator-controlled flags.
func (s *UserService) Update(ctx context.Context, id int64, req model.AdminUserUpdate) (*model.AdminUser, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	u, err := call[model.AdminUser](ctx, s.api, apiclient.Request{
		Method: http.MethodPut,
		Path:   resourcePath(userPath, id),
		Body:   req,
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// LeaderboardServiceOptions groups dependencies for LeaderboardService.
type LeaderboardServiceOptions struct {
	API Requester
}

// LeaderboardService reads contest rankings.
type LeaderboardService struct {
	api Requester
}

// NewLeaderboardService constructs a new LeaderboardService.
func NewLeaderboardService(opts LeaderboardServiceOptions) *LeaderboardService {
	requireAPI(opts.API, "NewLeaderboardService")
	return &LeaderboardService{api: opts.API}
}

// ContestRanking returns the top topN and bottom tailCount rows of a contest.
// Zero values fall back to DefaultTopN and DefaultTailCount.
func (s *LeaderboardService) ContestRanking(ctx context.Context, contestID int64, topN, tailCount int) (*model.ContestRanking, error) {
	if topN < 0 || tailCount < 0 {
		return nil, apperrors.Validation("topN and tailCount cannot be negative")
	}
	if topN == 0 {
		topN = DefaultTopN
	}
	if tailCount == 0 {
		tailCount = DefaultTailCount
	}
	q := url.Values{
		"topN":      {strconv.Itoa(topN)},
		"tailCount": {strconv.Itoa(tailCount)},
	}
	r, err := call[model.ContestRanking](ctx, s.api, apiclient.Request{
		Path:  resourcePath(leaderboardPath, contestID),
		Query: q,
	})
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// RegionServiceOptions groups dependencies for RegionService.
type RegionServiceOptions struct {
	API Requester
}

// RegionService looks up administrative regions for contest scoping.
type RegionService struct {
	api Requester
}

// NewRegionService constructs a new RegionService.
func NewRegionService(opts RegionServiceOptions) *RegionService {
	requireAPI(opts.API, "NewRegionService")
	return &RegionService{api: opts.API}
}

// ListByLevel returns the regions of one level.
func (s *RegionService) ListByLevel(ctx context.Context, level model.RegionLevel) ([]model.Region, error) {
	if !level.Valid() {
		return nil, apperrors.ValidationField("level", "level must be one of NONE, CITY, PROVINCE, DISTRICT")
	}
	return call[[]model.Region](ctx, s.api, apiclient.Request{
		Path:  regionPath,
		Query: url.Values{"level": {string(level)}},
	})
}

// ListAll returns every region.
func (s *RegionService) ListAll(ctx context.Context) ([]model.Region, error) {
	return call[[]model.Region](ctx, s.api, apiclient.Request{Path: regionPath})
}
