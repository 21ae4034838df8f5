package search

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"

	apperrors "awards-portal/internal/common/errors"
)

// indexMapping keeps awardCategory exact for term filters and sorts on
// submittedAt.
const indexMapping = `{
  "mappings": {
    "properties": {
      "id":                  {"type": "keyword"},
      "companyNameEng":      {"type": "text"},
      "companyNameChi":      {"type": "text"},
      "entryTitleEng":       {"type": "text"},
      "entryTitleChi":       {"type": "text"},
      "companyDescription":  {"type": "text"},
      "awardCategory":       {"type": "keyword"},
      "awardCategoryLabel":  {"type": "keyword"},
      "primaryContactName":  {"type": "text"},
      "primaryContactEmail": {"type": "keyword"},
      "filesUploaded":       {"type": "integer"},
      "submittedAt":         {"type": "date"},
      "updatedBy":           {"type": "keyword"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
// Losing a creation race to another worker is not an error.
func (i *Index) EnsureIndex(ctx context.Context) error {
	exists, err := esapi.IndicesExistsRequest{Index: []string{i.name}}.Do(ctx, i.client)
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	exists.Body.Close()

	switch exists.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
	default:
		return apperrors.NewElasticsearchConnectionFailedError(fmt.Errorf("index exists check: %s", exists.Status()))
	}

	res, err := esapi.IndicesCreateRequest{
		Index: i.name,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, i.client)
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		if strings.Contains(string(body), "resource_already_exists_exception") {
			return nil
		}
		return apperrors.NewIndexFailedError("", fmt.Errorf("create index %s: %s", i.name, res.Status()))
	}

	i.logger.Info("search index created", nil)
	return nil
}
