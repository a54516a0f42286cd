package catalog

import (
	"encoding/json"
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// ConvertScenarioModule maps the current layout to the canonical module.
// Records that do not decode cleanly still produce a scenario, with missing
// text defaulting to "".
func ConvertScenarioModule(f *ScenarioModuleFile) *domain.Module {
	m := &domain.Module{
		SchemaVersion:    f.SchemaVersion,
		ModuleID:         f.ModuleID,
		Title:            f.Title,
		CategoryPath:     f.CategoryPath,
		ClosingSentences: f.ClosingSentences,
		Drug:             convertDrug(f.Drug),
		Addons:           convertAddons(f.Addons),
	}
	if f.Display != nil {
		m.Title = domain.CoalesceStr(f.Display.Title, f.Title)
		m.Subtitle = f.Display.Subtitle
	}

	m.Scenarios = make([]domain.Scenario, 0, len(f.Scenarios))
	for _, raw := range f.Scenarios {
		var rec ScenarioImport
		_ = json.Unmarshal(raw, &rec) // decode problems are reported by ValidateRecords
		m.Scenarios = append(m.Scenarios, convertScenario(&rec))
	}
	return m
}

func convertScenario(rec *ScenarioImport) domain.Scenario {
	return domain.Scenario{
		ID:                 deref(rec.ID),
		Title:              deref(rec.Title),
		ScenarioType:       deref(rec.ScenarioType),
		ScenarioGroup:      deref(rec.ScenarioGroup),
		SideEffectPresence: domain.SideEffectPresence(deref(rec.SideEffectPresence)),
		Fields: domain.SoapFields{
			S: deref(rec.S),
			O: deref(rec.O),
			A: deref(rec.A),
			P: deref(rec.P),
		},
		AddonIDs: rec.AddonIDs,
	}
}

func convertDrug(d *DrugImport) *domain.Drug {
	if d == nil {
		return nil
	}
	drug := &domain.Drug{
		BrandNames:       d.BrandNames,
		NameAliases:      d.NameAliases,
		DrugClass:        d.DrugClass,
		DrugSpecificTags: d.DrugSpecificTags,
	}
	if s := d.Search; s != nil {
		drug.Search = domain.DrugSearch{
			ExactAliases:       s.ExactAliases,
			PrimaryDisplayName: s.PrimaryDisplayName,
			PrefixAliases:      s.PrefixAliases,
			Keywords:           s.Keywords,
			Priority:           s.Priority,
		}
		if s.MatchPolicy != nil {
			drug.Search.SuppressOnExactHit = s.MatchPolicy.SuppressCrossModuleSuggestionsOnExactHit
		}
	}
	return drug
}

// ConvertTemplateModule maps the template layout. A template's type string
// becomes the scenario's legacy classification key. Inline addons join the
// module addon list and, when the template declares no addonIds, fix its
// addon order.
func ConvertTemplateModule(f *TemplateModuleFile) *domain.Module {
	m := &domain.Module{
		SchemaVersion: f.SchemaVersion,
		ModuleID:      f.ModuleID,
		Title:         f.Title,
		CategoryPath:  f.CategoryPath,
		Addons:        convertAddons(f.Addons),
	}

	var keywords, tags []string
	if f.Search != nil {
		keywords = append(keywords, f.Search.Keywords...)
		keywords = append(keywords, f.Search.Synonyms...)
	}
	if f.Tags != nil {
		tags = append(tags, f.Tags.DrugTags...)
		tags = append(tags, f.Tags.DrugSpecificTags...)
	}
	if len(keywords) > 0 || len(tags) > 0 {
		m.Drug = &domain.Drug{DrugSpecificTags: tags, Search: domain.DrugSearch{Keywords: keywords}}
	}

	for _, t := range f.Templates {
		inline := convertAddons(t.Addons)
		m.Addons = append(m.Addons, inline...)

		inlineIDs := make([]string, 0, len(inline))
		for _, a := range inline {
			inlineIDs = append(inlineIDs, a.ID)
		}

		m.Scenarios = append(m.Scenarios, domain.Scenario{
			ID:           t.TemplateID,
			Title:        t.Label,
			ScenarioType: t.Type,
			LegacyType:   t.Type,
			Fields: domain.SoapFields{
				S: t.Soap.S,
				O: t.Soap.O,
				A: t.Soap.A,
				P: t.Soap.P,
			},
			AddonIDs: domain.CoalesceSlice(t.AddonIDs, inlineIDs),
		})
	}
	return m
}

func convertAddons(in []AddonImport) []domain.Addon {
	out := make([]domain.Addon, 0, len(in))
	for _, a := range in {
		addon := domain.Addon{
			ID:       domain.CoalesceStr(a.AddonID, a.ID),
			Label:    domain.CoalesceStr(a.Label, a.Title),
			Category: a.Category,
			Patches:  make([]domain.Patch, 0, len(a.Patches)),
		}
		for _, p := range a.Patches {
			addon.Patches = append(addon.Patches, convertPatch(p))
		}
		out = append(out, addon)
	}
	return out
}

func convertPatch(p PatchImport) domain.Patch {
	mode := p.Op
	if mode == "" {
		mode = p.Mode
	}
	return domain.Patch{
		Target: domain.SoapKey(p.Target),
		Mode:   domain.PatchMode(mode),
		Value:  domain.CoalesceStr(p.Value, p.Text),
	}
}

// routeKeywords are extra search terms implied by a drug-data route.
var routeKeywords = map[string][]string{
	"oral":      {"内服", "経口"},
	"injection": {"注射"},
}

// ConvertDrugData maps the drug-data layout. Each template type doubles as
// the scenario id and legacy classification key; each addon becomes one
// append patch on P.
func ConvertDrugData(f *DrugDataFile, moduleID string) *domain.Module {
	m := &domain.Module{
		ModuleID: moduleID,
		Title:    domain.CoalesceStr(f.DrugGroup, moduleID),
		Subtitle: f.TherapeuticArea,
	}

	keywords := []string{f.TherapeuticArea, f.DrugGroup, f.Route}
	keywords = append(keywords, routeKeywords[strings.ToLower(f.Route)]...)
	keywords = append(keywords, f.SearchKeywords...)

	m.Drug = &domain.Drug{
		BrandNames:  f.BrandNames,
		NameAliases: f.GenericNames,
		DrugClass:   nonEmpty(f.DrugGroup),
		Search:      domain.DrugSearch{Keywords: nonEmpty(keywords...)},
	}

	for _, a := range f.Addons {
		m.Addons = append(m.Addons, domain.Addon{
			ID:    a.Type,
			Label: a.Title,
			Patches: []domain.Patch{
				{Target: domain.KeyP, Mode: domain.PatchAppend, Value: a.PAdd},
			},
		})
	}

	for _, t := range f.Templates {
		m.Scenarios = append(m.Scenarios, domain.Scenario{
			ID:           t.Type,
			Title:        t.Title,
			ScenarioType: t.Type,
			LegacyType:   t.Type,
			Fields:       domain.SoapFields{S: t.S, O: t.O, A: t.A, P: t.P},
		})
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nonEmpty(vals ...string) []string {
	var out []string
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return out
}
