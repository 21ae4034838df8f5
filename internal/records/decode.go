package records

import (
	"context"
	"strings"

	"awards-portal/internal/common/metrics"
	"awards-portal/internal/models"
)

// GetApplication loads and decodes one record. It returns nil, nil when the
// record does not exist; a corrupt payload is reported on the result, not as
// an error.
func GetApplication(ctx context.Context, store Store, id string) (*models.DecodedApplication, error) {
	r, err := store.Get(ctx, id)
	if err != nil || r == nil {
		return nil, err
	}
	d := decode(*r)
	return &d, nil
}

func ListApplications(ctx context.Context, store Store) ([]models.DecodedApplication, error) {
	records, err := store.List(ctx)
	if err != nil {
		return nil, err
	}
	apps := make([]models.DecodedApplication, 0, len(records))
	for _, r := range records {
		apps = append(apps, decode(r))
	}
	return apps, nil
}

func decode(r models.Record) models.DecodedApplication {
	d := models.Decode(r)
	if d.Corrupt() {
		metrics.PayloadDecodeFailures.Inc()
	}
	return d
}

// Filter narrows a listing by award category and a case-insensitive keyword
// over company names and entry titles. Corrupt records always pass.
type Filter struct {
	Category string
	Keyword  string
}

func (f Filter) Apply(apps []models.DecodedApplication) []models.DecodedApplication {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	out := make([]models.DecodedApplication, 0, len(apps))
	for _, app := range apps {
		if app.Corrupt() {
			out = append(out, app)
			continue
		}
		form := app.Payload.FormData
		if f.Category != "" && form.AwardCategory != f.Category {
			continue
		}
		if keyword != "" && !matchesKeyword(form, keyword) {
			continue
		}
		out = append(out, app)
	}
	return out
}

func matchesKeyword(form models.FormData, keyword string) bool {
	for _, field := range []string{form.CompanyNameEng, form.CompanyNameChi, form.EntryTitleEng, form.EntryTitleChi} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}
