package domain

import "time"

// Scenario is one selectable clinical case with its own note text.
//
// Records adapted from the older type-string data generations carry
// LegacyType and leave SideEffectPresence empty.
type Scenario struct {
	ID                 string
	Title              string
	ScenarioType       string
	ScenarioGroup      string
	SideEffectPresence SideEffectPresence
	LegacyType         string
	Fields             SoapFields
	// AddonIDs is the declared addon order. Empty means the module order applies.
	AddonIDs []string
}

// Patch is one text operation against a single note field.
type Patch struct {
	Target SoapKey
	Mode   PatchMode
	Value  string
}

// Addon is optional supplementary content applied through its patches.
type Addon struct {
	ID       string
	Label    string
	Category string
	Patches  []Patch
}

// MergedBlock is a snapshot of one composed note taken by a hold action.
type MergedBlock struct {
	ID            string
	TemplateLabel string
	// Scenario is the "module/id" key the block was composed from; empty
	// for blocks built outside a catalog.
	Scenario  string
	Fields    SoapFields
	CreatedAt time.Time
}

// GenerationLogEntry records one user-visible note action.
type GenerationLogEntry struct {
	ID        string
	Note      string
	Action    string
	Details   string
	CreatedAt time.Time
}
