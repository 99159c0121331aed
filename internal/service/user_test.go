package service

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stepcontest/contest-admin/internal/domain/model"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService(t *testing.T) {
	fb, client, _ := newFakeBackend(t)
	svc := NewUserService(UserServiceOptions{API: client})
	ctx := context.Background()

	fb.json("GET /user/11", http.StatusOK, model.AdminUser{ID: 11, OpenID: "o-11", CanParticipate: true})
	u, err := svc.Get(ctx, 11)
	require.NoError(t, err)
	assert.True(t, u.CanParticipate)

	fb.json("PUT /user/11", http.StatusOK, model.AdminUser{ID: 11, IsPromoter: true})
	u, err = svc.Update(ctx, 11, model.AdminUserUpdate{IsPromoter: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, u.IsPromoter)
	assert.JSONEq(t, `{"isPromoter":true}`, fb.last().Body)

	_, err = svc.Update(ctx, 11, model.AdminUserUpdate{})
	assert.True(t, apperrors.IsValidation(err))
}

func TestLeaderboardService_Defaults(t *testing.T) {
	fb, client, _ := newFakeBackend(t)
	fb.json("GET /leaderboard/contest/4", http.StatusOK, model.ContestRanking{ContestID: 4, TotalEntries: 30})
	svc := NewLeaderboardService(LeaderboardServiceOptions{API: client})

	r, err := svc.ContestRanking(context.Background(), 4, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 30, r.TotalEntries)

	q, err := url.ParseQuery(fb.last().RawQuery)
	require.NoError(t, err)
	assert.Equal(t, "10", q.Get("topN"))
	assert.Equal(t, "5", q.Get("tailCount"))

	_, err = svc.ContestRanking(context.Background(), 4, -1, 0)
	assert.True(t, apperrors.IsValidation(err))
}

func TestRegionService(t *testing.T) {
	fb, client, _ := newFakeBackend(t)
	fb.json("GET /region", http.StatusOK, []model.Region{{Code: "310000", Name: "Shanghai", Level: model.RegionLevelCity}})
	svc := NewRegionService(RegionServiceOptions{API: client})
	ctx := context.Background()

	regions, err := svc.ListByLevel(ctx, model.RegionLevelCity)
	require.NoError(t, err)
	assert.Len(t, regions, 1)
	assert.Equal(t, "level=CITY", fb.last().RawQuery)

	_, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, fb.last().RawQuery)

	_, err = svc.ListByLevel(ctx, "COUNTY")
	assert.True(t, apperrors.IsValidation(err))
}
