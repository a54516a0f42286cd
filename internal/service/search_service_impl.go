package service

import (
	"context"

	"github.com/alexanderramin/soapnote/internal/search"
)

type searchService struct {
	catalog  CatalogService
	index    []search.Entry
	byModule map[string][]search.Entry
	observer UseCaseObserver
}

// NewSearchService indexes the catalog once; the index is rebuilt only by
// constructing a new service.
func NewSearchService(catalog CatalogService, observers ...UseCaseObserver) SearchService {
	s := &searchService{
		catalog:  catalog,
		byModule: make(map[string][]search.Entry),
		observer: useCaseObserverOrNoop(observers),
	}
	for _, m := range catalog.Modules(context.Background()) {
		entries := search.BuildIndex(m)
		s.index = append(s.index, entries...)
		s.byModule[m.ModuleID] = append(s.byModule[m.ModuleID], entries...)
	}
	return s
}

func (s *searchService) Suggest(ctx context.Context, query string, limit int) []search.Suggestion {
	var err error
	fields := map[string]any{"query": query}
	defer observe(ctx, s.observer, "suggest", fields, &err)()

	out := search.Suggest(query, s.index, limit)
	fields["hits"] = len(out)
	return out
}

func (s *searchService) Filter(ctx context.Context, query string) []ScenarioRef {
	var out []ScenarioRef
	for _, m := range s.catalog.Modules(ctx) {
		for _, sc := range search.Filter(m.Scenarios, query, s.byModule[m.ModuleID]) {
			out = append(out, newScenarioRef(m, sc))
		}
	}
	return out
}
