package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/Skotchmaster/college_admin/internal/models"
)

// StudentDoc is the indexed projection of a student.
type StudentDoc struct {
	ID          uint   `json:"id"`
	StudentName string `json:"student_name"`
	Email       string `json:"email"`
	Address     string `json:"address"`
}

func DocFromStudent(s models.Student) StudentDoc {
	return StudentDoc{ID: s.ID, StudentName: s.StudentName, Email: s.Email, Address: s.Address}
}

type StudentIndex interface {
	Index(ctx context.Context, s models.Student) error
	Delete(ctx context.Context, id uint) error
	Search(ctx context.Context, query string, from, size int) (int64, []StudentDoc, error)
}

type Settings struct {
	URL      string
	User     string
	Password string
	Index    string
}

type Elastic struct {
	es    *elasticsearch.Client
	index string
}

// NewClient connects and checks the cluster answers before returning.
func NewClient(ctx context.Context, s Settings) (*Elastic, error) {
	if s.URL == "" {
		return nil, fmt.Errorf("search: ES_URL is empty")
	}
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{s.URL},
		Username:  s.User,
		Password:  s.Password,
	})
	if err != nil {
		return nil, fmt.Errorf("search: new client: %w", err)
	}

	res, err := es.Info(es.Info.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("search: info: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search: info: %s", res.Status())
	}

	index := s.Index
	if index == "" {
		index = "students"
	}
	return &Elastic{es: es, index: index}, nil
}

func (e *Elastic) Index(ctx context.Context, s models.Student) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(DocFromStudent(s)); err != nil {
		return fmt.Errorf("search: encode: %w", err)
	}
	res, err := e.es.Index(e.index, &buf,
		e.es.Index.WithContext(ctx),
		e.es.Index.WithDocumentID(strconv.FormatUint(uint64(s.ID), 10)),
	)
	if err != nil {
		return fmt.Errorf("search: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index: %s", errorBody(res.Body, res.Status()))
	}
	return nil
}

// Delete removes a student document. A document that is already gone is not an error.
func (e *Elastic) Delete(ctx context.Context, id uint) error {
	res, err := e.es.Delete(e.index, strconv.FormatUint(uint64(id), 10), e.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete: %s", errorBody(res.Body, res.Status()))
	}
	return nil
}

func (e *Elastic) Search(ctx context.Context, query string, from, size int) (int64, []StudentDoc, error) {
	body := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":     query,
				"fields":    []string{"student_name^2", "email", "address"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode: %w", err)
	}

	res, err := e.es.Search(
		e.es.Search.WithContext(ctx),
		e.es.Search.WithIndex(e.index),
		e.es.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", errorBody(res.Body, res.Status()))
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source StudentDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, fmt.Errorf("search: decode: %w", err)
	}

	docs := make([]StudentDoc, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		docs[i] = hit.Source
	}
	return r.Hits.Total.Value, docs, nil
}

func errorBody(r io.Reader, status string) string {
	b, _ := io.ReadAll(io.LimitReader(r, 1024))
	if msg := strings.TrimSpace(string(b)); msg != "" {
		return status + ": " + msg
	}
	return status
}
