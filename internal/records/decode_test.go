package records

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"awards-portal/internal/models"
)

func encoded(t *testing.T, form models.FormData) string {
	t.Helper()
	data, err := models.Encode(&models.SubmissionPayload{FormData: form})
	require.NoError(t, err)
	return data
}

func TestGetApplication(t *testing.T) {
	store := newMemStore(
		models.Record{ID: "ok", ApplicationData: encoded(t, models.FormData{CompanyNameEng: "GreenLife"})},
		models.Record{ID: "bad", ApplicationData: "{not json"},
	)

	app, err := GetApplication(context.Background(), store, "ok")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Corrupt())
	assert.Equal(t, "GreenLife", app.Payload.FormData.CompanyNameEng)

	app, err = GetApplication(context.Background(), store, "bad")
	require.NoError(t, err)
	require.NotNil(t, app)
	assert.True(t, app.Corrupt())
	assert.Equal(t, models.ParseErrorPlaceholder, app.Summary().CompanyNameEng)

	app, err = GetApplication(context.Background(), store, "missing")
	assert.NoError(t, err)
	assert.Nil(t, app)
}

func TestListApplications_KeepsCorruptRecords(t *testing.T) {
	store := newMemStore(
		models.Record{ID: "ok", ApplicationData: encoded(t, models.FormData{CompanyNameEng: "GreenLife"})},
		models.Record{ID: "bad", ApplicationData: ""},
	)

	apps, err := ListApplications(context.Background(), store)
	require.NoError(t, err)
	assert.Len(t, apps, 2)

	corrupt := 0
	for _, a := range apps {
		if a.Corrupt() {
			corrupt++
		}
	}
	assert.Equal(t, 1, corrupt)
}

func TestFilter_Apply(t *testing.T) {
	apps := []models.DecodedApplication{
		models.Decode(models.Record{ID: "1", ApplicationData: encoded(t, models.FormData{CompanyNameEng: "HealthTech Innovations Ltd", EntryTitleEng: "AI Diagnostics", AwardCategory: "health-innovation"})}),
		models.Decode(models.Record{ID: "2", ApplicationData: encoded(t, models.FormData{CompanyNameEng: "FitLife Wellness Studio", EntryTitleEng: "Holistic Fitness", AwardCategory: "beauty-fitness"})}),
		models.Decode(models.Record{ID: "3", ApplicationData: "broken"}),
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no filter", Filter{}, []string{"1", "2", "3"}},
		{"category", Filter{Category: "beauty-fitness"}, []string{"2", "3"}},
		{"keyword on title", Filter{Keyword: "diagnostics"}, []string{"1", "3"}},
		{"keyword on company", Filter{Keyword: "  FITLIFE "}, []string{"2", "3"}},
		{"no match", Filter{Category: "sustainable-csr"}, []string{"3"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ids []string
			for _, a := range tt.filter.Apply(apps) {
				ids = append(ids, a.Record.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}
