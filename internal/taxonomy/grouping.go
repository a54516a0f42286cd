package taxonomy

import "github.com/alexanderramin/soapnote/internal/domain"

// Entry is one non-empty menu group with its scenarios in input order.
type Entry struct {
	Group     MenuGroup
	Scenarios []domain.Scenario
}

// Group buckets scenarios by Resolve and returns the non-empty groups in
// display order.
func Group(scenarios []domain.Scenario) []Entry {
	buckets := make(map[MenuGroup][]domain.Scenario)
	for _, sc := range scenarios {
		g := Resolve(sc)
		buckets[g] = append(buckets[g], sc)
	}

	entries := make([]Entry, 0, len(buckets))
	for _, g := range Order {
		if scs, ok := buckets[g]; ok {
			entries = append(entries, Entry{Group: g, Scenarios: scs})
		}
	}
	return entries
}

// Members returns the scenarios that resolve to g, in input order.
func Members(scenarios []domain.Scenario, g MenuGroup) []domain.Scenario {
	var out []domain.Scenario
	for _, sc := range scenarios {
		if Resolve(sc) == g {
			out = append(out, sc)
		}
	}
	return out
}

// Count returns the number of scenarios per group. Every group in Order is
// present in the result, including empty ones.
func Count(scenarios []domain.Scenario) map[MenuGroup]int {
	counts := make(map[MenuGroup]int, len(Order))
	for _, g := range Order {
		counts[g] = 0
	}
	for _, sc := range scenarios {
		counts[Resolve(sc)]++
	}
	return counts
}

// Mismatch describes a scenario listed under a group it does not resolve to.
type Mismatch struct {
	ScenarioID string
	Listed     MenuGroup
	Resolved   MenuGroup
}

// Audit reports scenarios in listed whose resolved group is not g. It is a
// diagnostic for callers that received pre-grouped data; it never filters.
func Audit(g MenuGroup, listed []domain.Scenario) []Mismatch {
	var out []Mismatch
	for _, sc := range listed {
		if r := Resolve(sc); r != g {
			out = append(out, Mismatch{ScenarioID: sc.ID, Listed: g, Resolved: r})
		}
	}
	return out
}
