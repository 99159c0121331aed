package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stepcontest/contest-admin/internal/domain/model"
	apperrors "github.com/stepcontest/contest-admin/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceAgentService(t *testing.T) {
	fb, client, _ := newFakeBackend(t)
	svc := NewServiceAgentService(ServiceAgentServiceOptions{API: client})
	ctx := context.Background()

	fb.json("GET /service-agent", http.StatusOK, []model.ServiceAgent{{ID: 1}, {ID: 2}})
	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	fb.json("GET /service-agent/active", http.StatusOK, []model.ServiceAgent{{ID: 1, IsActive: true}})
	active, err := svc.ListActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 1)

	fb.json("POST /service-agent", http.StatusOK, model.ServiceAgent{ID: 3, Name: "Li"})
	created, err := svc.Create(ctx, model.ServiceAgentCreate{Name: " Li "})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.JSONEq(t, `{"name":"Li"}`, fb.last().Body)

	fb.json("PUT /service-agent/3", http.StatusOK, model.ServiceAgent{ID: 3, IsActive: false})
	_, err = svc.Update(ctx, 3, model.ServiceAgentUpdate{IsActive: boolPtr(false)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"isActive":false}`, fb.last().Body)

	_, err = svc.Create(ctx, model.ServiceAgentCreate{})
	assert.True(t, apperrors.IsValidation(err))

	fb.handle("DELETE /service-agent/3", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
	require.NoError(t, svc.Delete(ctx, 3))
}

func TestSystemService(t *testing.T) {
	fb, client, _ := newFakeBackend(t)
	svc := NewSystemService(SystemServiceOptions{API: client})
	ctx := context.Background()

	fb.json("GET /system/config", http.StatusOK, model.SystemConfig{
		RewardRulesEnabled: true,
		DefaultRankLimits:  model.RankLimits{TopN: 10, TailCount: 5},
	})
	cfg, err := svc.GetConfig(ctx)
	require.NoError(t, err)
	assert.True(t, cfg.RewardRulesEnabled)

	fb.json("PUT /system/config", http.StatusOK, model.SystemConfig{MembershipDisabled: true})
	cfg, err = svc.UpdateConfig(ctx, model.SystemConfigUpdate{MembershipDisabled: boolPtr(true)})
	require.NoError(t, err)
	assert.True(t, cfg.MembershipDisabled)
	assert.JSONEq(t, `{"membershipDisabled":true}`, fb.last().Body)
}
