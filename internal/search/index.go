package search

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
)

// Entry is one searchable scenario with its module's alias tokens already
// normalised.
type Entry struct {
	ScenarioID string
	ModuleID   string
	Label      string
	ShortLabel string
	Group      taxonomy.MenuGroup
	// DrugDisplayLabel is the first brand name of the module's drug, if any.
	DrugDisplayLabel string

	Corpus             string
	ExactAliases       []string
	PrimaryDisplayName string
	PrefixAliases      []string
	Aliases            []string
	SuppressOnExactHit bool
	Priority           int
}

// BuildIndex returns one Entry per scenario, modules and scenarios in order.
// Entry position is the final tie-breaker in Suggest.
func BuildIndex(modules ...*domain.Module) []Entry {
	var out []Entry
	for _, m := range modules {
		if m == nil {
			continue
		}
		out = append(out, moduleEntries(m)...)
	}
	return out
}

func moduleEntries(m *domain.Module) []Entry {
	drug := m.Drug
	if drug == nil {
		drug = &domain.Drug{}
	}

	rawAliases := append(append([]string{}, drug.NameAliases...), drug.BrandNames...)

	var global []string
	global = append(global, drug.DrugSpecificTags...)
	global = append(global, drug.DrugClass...)
	global = append(global, drug.BrandNames...)
	global = append(global, rawAliases...)
	global = append(global, drug.Search.Keywords...)
	global = append(global, m.Title, m.Subtitle)
	global = append(global, m.CategoryPath...)
	globalCorpus := Normalize(strings.Join(global, " "))

	exact := normalizeAll(drug.Search.ExactAliases)
	prefix := normalizeAll(drug.Search.PrefixAliases)
	aliases := normalizeAll(rawAliases)
	primary := Normalize(drug.Search.PrimaryDisplayName)

	var drugLabel string
	if len(drug.BrandNames) > 0 {
		drugLabel = drug.BrandNames[0]
	}

	entries := make([]Entry, 0, len(m.Scenarios))
	for _, sc := range m.Scenarios {
		per := strings.Join([]string{
			sc.Title, sc.ScenarioGroup,
			sc.Fields.S, sc.Fields.O, sc.Fields.A, sc.Fields.P,
		}, " ")

		short := sc.Title
		if sc.LegacyType != "" {
			short = taxonomy.ShortLabel(sc.Title)
		}

		entries = append(entries, Entry{
			ScenarioID:         sc.ID,
			ModuleID:           m.ModuleID,
			Label:              sc.Title,
			ShortLabel:         short,
			Group:              taxonomy.Resolve(sc),
			DrugDisplayLabel:   drugLabel,
			Corpus:             Normalize(per) + " " + globalCorpus,
			ExactAliases:       exact,
			PrimaryDisplayName: primary,
			PrefixAliases:      prefix,
			Aliases:            aliases,
			SuppressOnExactHit: drug.Search.SuppressOnExactHit,
			Priority:           drug.Search.Priority,
		})
	}
	return entries
}

func normalizeAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if n := Normalize(s); n != "" {
			out = append(out, n)
		}
	}
	return out
}
