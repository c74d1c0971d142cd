package service

import (
	"strings"

	"civicboard/internal/models"
	"civicboard/internal/store"
)

// SearchService runs one query across every dashboard module
type SearchService struct {
	campaigns    *store.Store[*models.Campaign]
	contents     *store.Store[*models.ContentItem]
	segments     *store.Store[*models.Segment]
	events       *store.Store[*models.Event]
	surveys      *store.Store[*models.Survey]
	integrations *store.Store[*models.Integration]
}

// NewSearchService creates a cross-module search service
func NewSearchService(
	campaigns *store.Store[*models.Campaign],
	contents *store.Store[*models.ContentItem],
	segments *store.Store[*models.Segment],
	events *store.Store[*models.Event],
	surveys *store.Store[*models.Survey],
	integrations *store.Store[*models.Integration],
) *SearchService {
	return &SearchService{
		campaigns:    campaigns,
		contents:     contents,
		segments:     segments,
		events:       events,
		surveys:      surveys,
		integrations: integrations,
	}
}

// SearchHit is one matching record from any module
type SearchHit struct {
	Module string `json:"module"`
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// SearchResults groups hits by module for one query
type SearchResults struct {
	Query string      `json:"query"`
	Total int         `json:"total"`
	Hits  []SearchHit `json:"hits"`
}

// Search matches the query across all modules. Each store is re-queried
// until its generation is stable across the read, so a mutation landing
// mid-assembly cannot leave half-updated results in the response.
func (s *SearchService) Search(query string) *SearchResults {
	results := &SearchResults{Query: strings.TrimSpace(query)}
	if results.Query == "" {
		return results
	}

	results.Hits = append(results.Hits, collectHits(s.campaigns, "campaigns", results.Query,
		func(c *models.Campaign) (string, string) { return c.Name, string(c.Status) })...)
	results.Hits = append(results.Hits, collectHits(s.contents, "content", results.Query,
		func(c *models.ContentItem) (string, string) { return c.Name, string(c.Status) })...)
	results.Hits = append(results.Hits, collectHits(s.segments, "segments", results.Query,
		func(seg *models.Segment) (string, string) { return seg.Name, string(seg.Status) })...)
	results.Hits = append(results.Hits, collectHits(s.events, "events", results.Query,
		func(e *models.Event) (string, string) { return e.Title, string(e.Status) })...)
	results.Hits = append(results.Hits, collectHits(s.surveys, "surveys", results.Query,
		func(sv *models.Survey) (string, string) { return sv.Name, string(sv.Status) })...)
	results.Hits = append(results.Hits, collectHits(s.integrations, "integrations", results.Query,
		func(i *models.Integration) (string, string) { return i.Name, string(i.Status) })...)

	results.Total = len(results.Hits)
	return results
}

// collectHits searches one store, retrying while mutations land between
// the search and the generation check
func collectHits[T store.Record](st *store.Store[T], module, query string, describe func(T) (string, string)) []SearchHit {
	for {
		gen := st.Generation()
		matched := st.Search(query)
		if st.Generation() != gen {
			continue
		}

		hits := make([]SearchHit, 0, len(matched))
		for _, record := range matched {
			title, status := describe(record)
			hits = append(hits, SearchHit{
				Module: module,
				ID:     record.RecordID(),
				Title:  title,
				Status: status,
			})
		}
		return hits
	}
}
