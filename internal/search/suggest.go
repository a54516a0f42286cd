package search

import (
	"sort"
	"strings"

	"github.com/alexanderramin/soapnote/internal/taxonomy"
)

// Score ladder, highest first. A candidate takes the first rung it reaches.
const (
	ScoreNone               = 0
	ScoreCorpusSubstring    = 1
	ScoreTitlePrefix        = 2
	ScoreNameAliasPrefix    = 3
	ScorePrefixAlias        = 4
	ScoreNameAliasExact     = 5
	ScorePrimaryDisplayName = 6
	ScoreExactAlias         = 7
)

// DefaultLimit caps Suggest results when the caller passes no limit.
const DefaultLimit = 8

// Suggestion is one ranked hit.
type Suggestion struct {
	ScenarioID       string
	ModuleID         string
	Label            string
	ShortLabel       string
	Group            taxonomy.MenuGroup
	DrugDisplayLabel string
	Score            int
}

// ScoreEntry rates e against an already normalised query.
func ScoreEntry(e Entry, q string) int {
	if q == "" {
		return ScoreNone
	}
	for _, a := range e.ExactAliases {
		if a == q {
			return ScoreExactAlias
		}
	}
	if e.PrimaryDisplayName != "" && e.PrimaryDisplayName == q {
		return ScorePrimaryDisplayName
	}
	for _, a := range e.Aliases {
		if a == q {
			return ScoreNameAliasExact
		}
	}
	for _, a := range e.PrefixAliases {
		if strings.HasPrefix(a, q) {
			return ScorePrefixAlias
		}
	}
	for _, a := range e.Aliases {
		if strings.HasPrefix(a, q) {
			return ScoreNameAliasPrefix
		}
	}
	label := Normalize(e.Label)
	if strings.HasPrefix(label, q) {
		return ScoreTitlePrefix
	}
	for _, a := range e.Aliases {
		if strings.Contains(a, q) {
			return ScoreTitlePrefix
		}
	}
	if strings.Contains(label, q) || strings.Contains(e.Corpus, q) {
		return ScoreCorpusSubstring
	}
	return ScoreNone
}

type scored struct {
	entry Entry
	score int
	pos   int
}

// Suggest ranks index against query. Ordering is score, then source
// priority, then index position.
//
// When the best hit is an exact name match and a module that scored one is
// marked to suppress cross-module suggestions, only those modules survive,
// each reduced to its best candidate. Results are then deduplicated by short
// label and capped at limit.
func Suggest(query string, index []Entry, limit int) []Suggestion {
	q := Normalize(query)
	if q == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var hits []scored
	for i, e := range index {
		if s := ScoreEntry(e, q); s > ScoreNone {
			hits = append(hits, scored{entry: e, score: s, pos: i})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.SliceStable(hits, func(i, j int) bool {
		a, b := hits[i], hits[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if a.entry.Priority != b.entry.Priority {
			return a.entry.Priority > b.entry.Priority
		}
		return a.pos < b.pos
	})

	hits = suppress(hits)

	seen := make(map[string]bool)
	out := make([]Suggestion, 0, limit)
	for _, h := range hits {
		if len(out) >= limit {
			break
		}
		if seen[h.entry.ShortLabel] {
			continue
		}
		seen[h.entry.ShortLabel] = true
		out = append(out, Suggestion{
			ScenarioID:       h.entry.ScenarioID,
			ModuleID:         h.entry.ModuleID,
			Label:            h.entry.Label,
			ShortLabel:       h.entry.ShortLabel,
			Group:            h.entry.Group,
			DrugDisplayLabel: h.entry.DrugDisplayLabel,
			Score:            h.score,
		})
	}
	return out
}

func suppress(hits []scored) []scored {
	if hits[0].score < ScoreNameAliasExact {
		return hits
	}
	winners := make(map[string]bool)
	for _, h := range hits {
		if h.score >= ScoreNameAliasExact && h.entry.SuppressOnExactHit {
			winners[h.entry.ModuleID] = true
		}
	}
	if len(winners) == 0 {
		return hits
	}

	kept := make(map[string]bool, len(winners))
	var out []scored
	for _, h := range hits {
		if !winners[h.entry.ModuleID] || kept[h.entry.ModuleID] {
			continue
		}
		kept[h.entry.ModuleID] = true
		out = append(out, h)
	}
	return out
}
