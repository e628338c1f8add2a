package repository_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"kimoncrm-survey/internal/domain"
	"kimoncrm-survey/internal/repository"
)

func TestPostgresSurveys_GetSurvey(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresSurveysRepository(db)

	snapshot := &domain.SurveySnapshot{
		Buildings: []*domain.Building{{BuildingID: "B1", Name: "HQ"}},
		ProductPricing: map[string]domain.PricingOverride{
			"P1": {},
		},
	}
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT\s+snapshot`).
		WithArgs("survey-1").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}).AddRow(raw))

	got, err := repo.GetSurvey(context.Background(), "survey-1")
	require.NoError(t, err)
	require.Equal(t, snapshot, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSurveys_GetSurveyNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresSurveysRepository(db)

	mock.ExpectQuery(`SELECT\s+snapshot`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"snapshot"}))

	_, err = repo.GetSurvey(context.Background(), "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPostgresSurveys_SaveSurveyUpsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresSurveysRepository(db)

	snapshot := &domain.SurveySnapshot{Buildings: []*domain.Building{{BuildingID: "B1"}}}
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)

	mock.ExpectExec(`INSERT INTO surveys`).
		WithArgs("survey-1", raw).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.SaveSurvey(context.Background(), "survey-1", snapshot))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSurveys_ListSurveyIDs(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := repository.NewPostgresSurveysRepository(db)

	mock.ExpectQuery(`SELECT\s+survey_id`).
		WillReturnRows(sqlmock.NewRows([]string{"survey_id"}).AddRow("s1").AddRow("s2"))

	ids, err := repo.ListSurveyIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"s1", "s2"}, ids)
}
