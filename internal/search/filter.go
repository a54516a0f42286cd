package search

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// Filter keeps the scenarios whose index corpus contains query. An empty
// query keeps everything.
func Filter(scenarios []domain.Scenario, query string, index []Entry) []domain.Scenario {
	q := Normalize(query)
	if q == "" {
		return scenarios
	}
	hit := make(map[string]bool)
	for _, e := range index {
		if strings.Contains(e.Corpus, q) {
			hit[e.ScenarioID] = true
		}
	}
	var out []domain.Scenario
	for _, sc := range scenarios {
		if hit[sc.ID] {
			out = append(out, sc)
		}
	}
	return out
}
