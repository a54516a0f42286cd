package catalog

import "encoding/json"

// Generation identifies which historical data layout a module file uses.
type Generation int

const (
	GenerationUnknown Generation = iota
	// GenerationDrugData is the oldest layout: one file per drug group with
	// typed templates and P_add addons.
	GenerationDrugData
	// GenerationTemplate carries templates with a soap block and patch addons.
	GenerationTemplate
	// GenerationScenario carries scenarios with inline S/O/A/P and sideEffectPresence.
	GenerationScenario
)

func (g Generation) String() string {
	switch g {
	case GenerationDrugData:
		return "drug-data"
	case GenerationTemplate:
		return "template"
	case GenerationScenario:
		return "scenario"
	}
	return "unknown"
}

// ScenarioModuleFile is the current module layout.
type ScenarioModuleFile struct {
	SchemaVersion    string            `json:"schemaVersion"`
	ModuleID         string            `json:"moduleId"`
	Title            string            `json:"title,omitempty"`
	Display          *DisplayImport    `json:"display,omitempty"`
	CategoryPath     []string          `json:"categoryPath,omitempty"`
	Drug             *DrugImport       `json:"drug,omitempty"`
	Scenarios        []json.RawMessage `json:"scenarios"`
	Addons           []AddonImport     `json:"addons,omitempty"`
	ClosingSentences []string          `json:"closingSentences,omitempty"`
}

// DisplayImport holds module captions.
type DisplayImport struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// DrugImport describes the drug a module documents.
type DrugImport struct {
	BrandNames       []string          `json:"brandNames,omitempty"`
	NameAliases      []string          `json:"nameAliases,omitempty"`
	DrugClass        []string          `json:"drugClass,omitempty"`
	DrugSpecificTags []string          `json:"drugSpecificTags,omitempty"`
	Search           *DrugSearchImport `json:"search,omitempty"`
}

// DrugSearchImport tunes suggestion ranking for a drug.
type DrugSearchImport struct {
	ExactAliases       []string           `json:"exactAliases,omitempty"`
	PrimaryDisplayName string             `json:"primaryDisplayName,omitempty"`
	PrefixAliases      []string           `json:"prefixAliases,omitempty"`
	Keywords           []string           `json:"keywords,omitempty"`
	Priority           int                `json:"priority,omitempty"`
	MatchPolicy        *MatchPolicyImport `json:"matchPolicy,omitempty"`
}

// MatchPolicyImport controls cross-module suppression.
type MatchPolicyImport struct {
	SuppressCrossModuleSuggestionsOnExactHit bool `json:"suppressCrossModuleSuggestionsOnExactHit"`
}

// ScenarioImport is one scenario record. Every key is a pointer so a
// missing key can be told apart from an empty value.
type ScenarioImport struct {
	ID                 *string  `json:"id" validate:"required"`
	Title              *string  `json:"title" validate:"required"`
	ScenarioType       *string  `json:"scenarioType" validate:"required,notblank"`
	ScenarioGroup      *string  `json:"scenarioGroup" validate:"required"`
	SideEffectPresence *string  `json:"sideEffectPresence" validate:"required,oneof=absent_or_not_observed present not_applicable"`
	S                  *string  `json:"S" validate:"required,notblank"`
	O                  *string  `json:"O" validate:"required,notblank"`
	A                  *string  `json:"A" validate:"required,notblank"`
	P                  *string  `json:"P" validate:"required,notblank"`
	AddonIDs           []string `json:"addonIds,omitempty"`
}

// AddonImport is an addon in either the template or scenario layout.
// Older files use id/title, newer ones addonId/label.
type AddonImport struct {
	AddonID  string        `json:"addonId,omitempty"`
	ID       string        `json:"id,omitempty"`
	Label    string        `json:"label,omitempty"`
	Title    string        `json:"title,omitempty"`
	Category string        `json:"category,omitempty"`
	Patches  []PatchImport `json:"patches"`
}

// PatchImport accepts both {target, op, text} and {target, mode, value}.
// In the template layout mode is the constant "block" and op carries the
// operation.
type PatchImport struct {
	Target string `json:"target"`
	Mode   string `json:"mode,omitempty"`
	Op     string `json:"op,omitempty"`
	Text   string `json:"text,omitempty"`
	Value  string `json:"value,omitempty"`
}

// TemplateModuleFile is the template layout.
type TemplateModuleFile struct {
	SchemaVersion string           `json:"schemaVersion"`
	ModuleID      string           `json:"moduleId"`
	Title         string           `json:"title"`
	CategoryPath  []string         `json:"categoryPath,omitempty"`
	Tags          *TagsImport      `json:"tags,omitempty"`
	Search        *KeywordsImport  `json:"search,omitempty"`
	Templates     []TemplateImport `json:"templates"`
	Addons        []AddonImport    `json:"addons,omitempty"`
}

// TagsImport carries free-form module tags.
type TagsImport struct {
	DrugTags         []string `json:"drugTags,omitempty"`
	DrugSpecificTags []string `json:"drugSpecificTags,omitempty"`
}

// KeywordsImport carries extra search terms.
type KeywordsImport struct {
	Keywords []string `json:"keywords,omitempty"`
	Synonyms []string `json:"synonyms,omitempty"`
}

// TemplateImport is one template with its base soap block.
type TemplateImport struct {
	TemplateID string        `json:"templateId"`
	Label      string        `json:"label"`
	Type       string        `json:"type"`
	Soap       SoapImport    `json:"soap"`
	AddonIDs   []string      `json:"addonIds,omitempty"`
	Addons     []AddonImport `json:"addons,omitempty"`
}

// SoapImport is a bare S/O/A/P block.
type SoapImport struct {
	S string `json:"S"`
	O string `json:"O"`
	A string `json:"A"`
	P string `json:"P"`
}

// DrugDataFile is the oldest layout.
type DrugDataFile struct {
	DrugGroup       string               `json:"drug_group"`
	TherapeuticArea string               `json:"therapeutic_area"`
	Route           string               `json:"route"`
	BrandNames      []string             `json:"brand_names"`
	GenericNames    []string             `json:"generic_names"`
	SearchKeywords  []string             `json:"search_keywords"`
	Templates       []DrugTemplateImport `json:"templates"`
	Addons          []DrugAddonImport    `json:"addons"`
}

// DrugTemplateImport is a typed template in the drug-data layout.
type DrugTemplateImport struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	S     string `json:"S"`
	O     string `json:"O"`
	A     string `json:"A"`
	P     string `json:"P"`
}

// DrugAddonImport is a plan-only addon in the drug-data layout.
type DrugAddonImport struct {
	Type  string `json:"type"`
	Title string `json:"title"`
	PAdd  string `json:"P_add"`
}
