package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"kimoncrm-survey/internal/domain"
	"kimoncrm-survey/internal/repository"
)

func TestMemorySurveys_RoundTrip(t *testing.T) {
	repo := repository.NewMemorySurveysRepo()
	ctx := context.Background()

	_, err := repo.GetSurvey(ctx, "s1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	snapshot := &domain.SurveySnapshot{
		Buildings: []*domain.Building{{BuildingID: "B1", Name: "HQ"}},
	}
	require.NoError(t, repo.SaveSurvey(ctx, "s1", snapshot))

	got, err := repo.GetSurvey(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, snapshot, got)

	// 深拷贝存取：改返回值不影响仓库
	got.Buildings[0].Name = "mutated"
	again, err := repo.GetSurvey(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "HQ", again.Buildings[0].Name)

	ids, err := repo.ListSurveyIDs(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"s1"}, ids)

	require.NoError(t, repo.DeleteSurvey(ctx, "s1"))
	_, err = repo.GetSurvey(ctx, "s1")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
