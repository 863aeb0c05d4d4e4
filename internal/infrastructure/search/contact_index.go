package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-agenda/internal/domain/entity"
	"github.com/oksasatya/go-agenda/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

// ContactIndex mirrors contacts into an Elasticsearch index for free-text lookup.
type ContactIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewContactIndex(es *elasticsearch.Client, index string) *ContactIndex {
	return &ContactIndex{es: es, index: index}
}

const contactMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "long"},
      "full_name":  {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "phone":      {"type": "text"},
      "email":      {"type": "text", "fields": {"raw": {"type": "keyword"}}},
      "note":       {"type": "text"},
      "created_at": {"type": "date"},
      "updated_at": {"type": "date"}
    }
  }
}`

// EnsureIndex creates the index with its mapping when it does not exist yet.
func (i *ContactIndex) EnsureIndex(ctx context.Context) error {
	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := esapi.IndicesExistsRequest{Index: []string{i.index}}.Do(tctx, i.es)
	if err != nil {
		return fmt.Errorf("check index %s: %w", i.index, err)
	}
	_ = res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("check index %s: %s", i.index, res.Status())
	}

	res, err = esapi.IndicesCreateRequest{Index: i.index, Body: strings.NewReader(contactMapping)}.Do(tctx, i.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", i.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("create index %s: %s", i.index, res.Status())
	}
	return nil
}

type contactDoc struct {
	ID        int64  `json:"id"`
	FullName  string `json:"full_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Note      string `json:"note"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func (i *ContactIndex) Index(ctx context.Context, c *entity.Contact) error {
	b, err := json.Marshal(contactDoc{
		ID:        c.ID,
		FullName:  c.FullName,
		Phone:     c.Phone,
		Email:     c.Email,
		Note:      c.Note,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      i.index,
		DocumentID: strconv.FormatInt(c.ID, 10),
		Body:       bytes.NewReader(b),
		Refresh:    "false",
	}
	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(tctx, i.es)
	if err != nil {
		return fmt.Errorf("index contact %d: %w", c.ID, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index contact %d: %s", c.ID, res.Status())
	}
	return nil
}

func (i *ContactIndex) Remove(ctx context.Context, id int64) error {
	req := esapi.DeleteRequest{Index: i.index, DocumentID: strconv.FormatInt(id, 10)}
	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := req.Do(tctx, i.es)
	if err != nil {
		return fmt.Errorf("remove contact %d: %w", id, err)
	}
	defer func() { _ = res.Body.Close() }()
	// already absent is fine
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("remove contact %d: %s", id, res.Status())
	}
	return nil
}

// Search runs a multi_match over name, email, phone and note.
func (i *ContactIndex) Search(ctx context.Context, q string, size int) ([]entity.Contact, error) {
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"full_name^2", "email", "phone", "note"},
			},
		},
		"size": size,
	}
	b, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()
	res, err := i.es.Search(
		i.es.Search.WithContext(tctx),
		i.es.Search.WithIndex(i.index),
		i.es.Search.WithBody(bytes.NewReader(b)),
	)
	if err != nil {
		return nil, fmt.Errorf("search contacts: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		body, _ := io.ReadAll(res.Body)
		return nil, fmt.Errorf("search contacts: %s: %s", res.Status(), body)
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source contactDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	out := make([]entity.Contact, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		d := h.Source
		c := entity.Contact{ID: d.ID, FullName: d.FullName, Phone: d.Phone, Email: d.Email, Note: d.Note}
		c.CreatedAt, _ = time.Parse(time.RFC3339Nano, d.CreatedAt)
		c.UpdatedAt, _ = time.Parse(time.RFC3339Nano, d.UpdatedAt)
		out = append(out, c)
	}
	return out, nil
}

var _ repository.ContactIndex = (*ContactIndex)(nil)
