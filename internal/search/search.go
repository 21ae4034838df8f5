// Package search maintains the Elasticsearch index of submitted applications.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"awards-portal/internal/common/config"
	apperrors "awards-portal/internal/common/errors"
	"awards-portal/internal/common/logger"
	"awards-portal/internal/models"
)

const DefaultIndexName = "applications"

var ErrCorruptRecord = errors.New("application payload is corrupt")

// Document is the indexed form of an application.
type Document struct {
	ID                  string    `json:"id"`
	CompanyNameEng      string    `json:"companyNameEng"`
	CompanyNameChi      string    `json:"companyNameChi"`
	EntryTitleEng       string    `json:"entryTitleEng"`
	EntryTitleChi       string    `json:"entryTitleChi"`
	CompanyDescription  string    `json:"companyDescription"`
	AwardCategory       string    `json:"awardCategory"`
	AwardCategoryLabel  string    `json:"awardCategoryLabel"`
	PrimaryContactName  string    `json:"primaryContactName"`
	PrimaryContactEmail string    `json:"primaryContactEmail"`
	FilesUploaded       int       `json:"filesUploaded"`
	SubmittedAt         time.Time `json:"submittedAt"`
	UpdatedBy           string    `json:"updatedBy"`
}

func NewDocument(app models.DecodedApplication) (*Document, error) {
	if app.Corrupt() {
		return nil, ErrCorruptRecord
	}
	s := app.Summary()
	f := app.Payload.FormData
	return &Document{
		ID:                  s.ID,
		CompanyNameEng:      f.CompanyNameEng,
		CompanyNameChi:      f.CompanyNameChi,
		EntryTitleEng:       f.EntryTitleEng,
		EntryTitleChi:       f.EntryTitleChi,
		CompanyDescription:  f.CompanyDescription,
		AwardCategory:       f.AwardCategory,
		AwardCategoryLabel:  s.AwardCategoryLabel,
		PrimaryContactName:  f.PrimaryContactName,
		PrimaryContactEmail: f.PrimaryContactEmail,
		FilesUploaded:       s.FilesUploaded,
		SubmittedAt:         s.SubmittedAt,
		UpdatedBy:           s.UpdatedBy,
	}, nil
}

type Hit struct {
	Score    float64  `json:"score"`
	Document Document `json:"document"`
}

type Results struct {
	Hits      []Hit `json:"hits"`
	TotalHits int64 `json:"totalHits"`
	Took      int64 `json:"took"`
}

type Index struct {
	client     *elasticsearch.Client
	name       string
	maxResults int
	logger     logger.Logger
}

func NewIndex(client *elasticsearch.Client, cfg config.SearchConfig, log logger.Logger) *Index {
	name := cfg.IndexName
	if name == "" {
		name = DefaultIndexName
	}
	return &Index{
		client:     client,
		name:       name,
		maxResults: cfg.MaxResults,
		logger:     log.WithFields(map[string]interface{}{"component": "search", "index": name}),
	}
}

func (i *Index) Name() string {
	return i.name
}

// IndexApplication upserts the document for app under its record id.
func (i *Index) IndexApplication(ctx context.Context, app models.DecodedApplication) error {
	doc, err := NewDocument(app)
	if err != nil {
		return apperrors.NewPayloadDecodeFailedError(app.Record.ID, err)
	}
	body, err := json.Marshal(doc)
	if err != nil {
		return apperrors.NewIndexFailedError(doc.ID, err)
	}

	req := esapi.IndexRequest{
		Index:      i.name,
		DocumentID: doc.ID,
		Body:       bytes.NewReader(body),
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return apperrors.NewIndexFailedError(doc.ID, fmt.Errorf("index request failed: %s", res.String()))
	}

	i.logger.Debug("application indexed", map[string]interface{}{"applicationId": doc.ID})
	return nil
}

type searchResponse struct {
	Took int64 `json:"took"`
	Hits struct {
		Total struct {
			Value int64 `json:"value"`
		} `json:"total"`
		Hits []struct {
			Score  float64  `json:"_score"`
			Source Document `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (i *Index) Search(ctx context.Context, q Query) (*Results, error) {
	q = q.normalized(i.maxResults)

	body, err := json.Marshal(BuildQuery(q))
	if err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	req := esapi.SearchRequest{
		Index: []string{i.name},
		Body:  bytes.NewReader(body),
		From:  &q.From,
		Size:  &q.Size,
	}
	res, err := req.Do(ctx, i.client)
	if err != nil {
		return nil, apperrors.NewElasticsearchConnectionFailedError(err)
	}
	defer res.Body.Close()

	if res.StatusCode == 404 {
		// nothing indexed yet
		return &Results{Hits: []Hit{}}, nil
	}
	if res.IsError() {
		return nil, apperrors.NewSearchQueryFailedError(fmt.Errorf("search query failed: %s", res.String()))
	}

	var r searchResponse
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, apperrors.NewSearchQueryFailedError(err)
	}

	results := &Results{
		Hits:      make([]Hit, 0, len(r.Hits.Hits)),
		TotalHits: r.Hits.Total.Value,
		Took:      r.Took,
	}
	for _, h := range r.Hits.Hits {
		results.Hits = append(results.Hits, Hit{Score: h.Score, Document: h.Source})
	}
	return results, nil
}
