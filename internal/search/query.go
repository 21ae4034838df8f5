package search

const (
	defaultSize = 20
	maxSize     = 100
)

// Query is an admin search over the application index.
type Query struct {
	Text     string
	Category string
	From     int
	Size     int
}

func (q Query) normalized(limit int) Query {
	if limit <= 0 || limit > maxSize {
		limit = maxSize
	}
	if q.Size < 1 {
		q.Size = defaultSize
	}
	if q.Size > limit {
		q.Size = limit
	}
	if q.From < 0 {
		q.From = 0
	}
	return q
}

// BuildQuery returns the search body. Without text, results are ordered by
// submission time, newest first.
func BuildQuery(q Query) map[string]interface{} {
	mustClauses := []interface{}{}
	filterClauses := []interface{}{}

	if q.Text != "" {
		mustClauses = append(mustClauses, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query": q.Text,
				"fields": []string{
					"companyNameEng^3", "companyNameChi^3",
					"entryTitleEng^2", "entryTitleChi^2",
					"companyDescription", "primaryContactName",
				},
				"type": "best_fields",
			},
		})
	}

	if q.Category != "" {
		filterClauses = append(filterClauses, map[string]interface{}{
			"term": map[string]interface{}{"awardCategory": q.Category},
		})
	}

	if len(mustClauses) == 0 {
		mustClauses = append(mustClauses, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	boolQuery := map[string]interface{}{"must": mustClauses}
	if len(filterClauses) > 0 {
		boolQuery["filter"] = filterClauses
	}

	query := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
	}
	if q.Text == "" {
		query["sort"] = []map[string]interface{}{{"submittedAt": "desc"}}
	}
	return query
}
