package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"github.com/oksasatya/alumni-network/internal/domain/entity"
	repo "github.com/oksasatya/alumni-network/internal/domain/repository"
)

// DirectoryPageSize is the fixed page size of the member directory.
const DirectoryPageSize = 20

// AnyFilter is the sentinel that bypasses an exact-match filter.
const AnyFilter = "any"

var ErrInvalidYear = errors.New("graduation year must be a number")

// DirectoryService answers searches against the public projection of
// approved profiles.
type DirectoryService struct {
	Profiles repo.ProfileRepository
	ES       *elasticsearch.Client
	ESIndex  string
}

// DirectoryQuery is the raw filter state as submitted by the page.
type DirectoryQuery struct {
	Q      string
	Degree string
	Branch string
	Year   string
	Page   int
}

type DirectoryResult struct {
	Items      []*entity.Profile
	Total      int
	Page       int
	PageSize   int
	TotalPages int
}

// Normalize resolves sentinels, parses the year, and clamps the page.
// A non-numeric year is rejected rather than silently ignored.
func Normalize(q DirectoryQuery) (repo.DirectoryFilter, int, error) {
	f := repo.DirectoryFilter{
		Query:  strings.TrimSpace(q.Q),
		Degree: strings.TrimSpace(q.Degree),
		Branch: strings.TrimSpace(q.Branch),
		Limit:  DirectoryPageSize,
	}
	if strings.EqualFold(f.Degree, AnyFilter) {
		f.Degree = ""
	}
	if strings.EqualFold(f.Branch, AnyFilter) {
		f.Branch = ""
	}

	if y := strings.TrimSpace(q.Year); y != "" && !strings.EqualFold(y, AnyFilter) {
		n, err := strconv.Atoi(y)
		if err != nil {
			return repo.DirectoryFilter{}, 0, ErrInvalidYear
		}
		f.GraduationYear = n
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	f.Offset = (page - 1) * DirectoryPageSize
	return f, page, nil
}

// TotalPages is ceil(total / pageSize).
func TotalPages(total, pageSize int) int {
	if total <= 0 || pageSize <= 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// Search runs one directory query: one page of results plus the total count
// in a single store round-trip.
func (s *DirectoryService) Search(ctx context.Context, q DirectoryQuery) (*DirectoryResult, error) {
	f, page, err := Normalize(q)
	if err != nil {
		return nil, err
	}
	items, total, err := s.Profiles.Directory(f)
	if err != nil {
		return nil, err
	}
	return &DirectoryResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   DirectoryPageSize,
		TotalPages: TotalPages(total, DirectoryPageSize),
	}, nil
}

// Suggest performs a type-ahead multi_match over the approved-profile index.
func (s *DirectoryService) Suggest(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":  q,
						"fields": []string{"name^2", "company", "role", "location"},
					},
				},
				"filter": map[string]any{
					"term": map[string]any{"moderation_status": string(entity.ModerationApproved)},
				},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
