package domain

// Module is one loaded data module in canonical shape, whatever data
// generation it was read from.
type Module struct {
	SchemaVersion    string
	ModuleID         string
	Title            string
	Subtitle         string
	CategoryPath     []string
	Drug             *Drug
	Scenarios        []Scenario
	Addons           []Addon
	ClosingSentences []string
}

// Drug carries the naming and search metadata of a module's drug.
type Drug struct {
	BrandNames       []string
	NameAliases      []string
	DrugClass        []string
	DrugSpecificTags []string
	Search           DrugSearch
}

// DrugSearch configures how suggestions treat the module.
type DrugSearch struct {
	ExactAliases       []string
	PrimaryDisplayName string
	PrefixAliases      []string
	Keywords           []string
	Priority           int
	// SuppressOnExactHit drops other modules' suggestions when this module
	// wins with an exact alias hit.
	SuppressOnExactHit bool
}

// ScenarioByID returns the scenario with the given id.
func (m *Module) ScenarioByID(id string) (Scenario, bool) {
	for _, sc := range m.Scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return Scenario{}, false
}
