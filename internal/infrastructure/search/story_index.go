package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/dream-journal-api/internal/domain/entity"
)

const requestTimeout = 3 * time.Second

// StoryIndex mirrors stories into an Elasticsearch index for full-text search.
// Every query is filtered on userId.
type StoryIndex struct {
	ES        *elasticsearch.Client
	IndexName string
}

func NewStoryIndex(es *elasticsearch.Client, index string) *StoryIndex {
	return &StoryIndex{ES: es, IndexName: index}
}

type storyDoc struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Emotion   string    `json:"emotion"`
	Genre     string    `json:"genre"`
	Theme     string    `json:"theme"`
	Rating    float64   `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (d storyDoc) story() entity.Story {
	return entity.Story{
		ID:        d.ID,
		UserID:    d.UserID,
		Title:     d.Title,
		Content:   d.Content,
		Emotion:   d.Emotion,
		Genre:     d.Genre,
		Theme:     d.Theme,
		Rating:    d.Rating,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func (i *StoryIndex) Index(ctx context.Context, s *entity.Story) error {
	b, err := json.Marshal(storyDoc{
		ID:        s.ID,
		UserID:    s.UserID,
		Title:     s.Title,
		Content:   s.Content,
		Emotion:   s.Emotion,
		Genre:     s.Genre,
		Theme:     s.Theme,
		Rating:    s.Rating,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{Index: i.IndexName, DocumentID: s.ID, Body: bytes.NewReader(b), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index: %s", res.Status())
	}
	return nil
}

// Remove deletes the document; a document that was never indexed is not an error.
func (i *StoryIndex) Remove(ctx context.Context, id string) error {
	req := esapi.DeleteRequest{Index: i.IndexName, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(c, i.ES)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete: %s", res.Status())
	}
	return nil
}

// Search runs a multi_match on title and content restricted to userID's stories.
func (i *StoryIndex) Search(ctx context.Context, userID, query string, size int) ([]entity.Story, error) {
	body := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  query,
						"fields": []string{"title^2", "content", "theme", "genre"},
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"userId.keyword": userID}},
				},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := i.ES.Search(
		i.ES.Search.WithContext(c),
		i.ES.Search.WithIndex(i.IndexName),
		i.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	// a search before the first story was indexed
	if res.StatusCode == http.StatusNotFound {
		return []entity.Story{}, nil
	}
	if res.IsError() {
		return nil, fmt.Errorf("es search: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source storyDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.Story, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source.story())
	}
	return out, nil
}
