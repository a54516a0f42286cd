package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/google/uuid"
)

var scenarioCounter atomic.Int64

// ScenarioOption adjusts a test scenario.
type ScenarioOption func(*domain.Scenario)

func WithGroup(group string) ScenarioOption {
	return func(s *domain.Scenario) { s.ScenarioGroup = group }
}

func WithSideEffects(p domain.SideEffectPresence) ScenarioOption {
	return func(s *domain.Scenario) { s.SideEffectPresence = p }
}

func WithLegacyType(typ string) ScenarioOption {
	return func(s *domain.Scenario) {
		s.LegacyType = typ
		s.SideEffectPresence = ""
	}
}

func WithFields(f domain.SoapFields) ScenarioOption {
	return func(s *domain.Scenario) { s.Fields = f }
}

func WithAddonIDs(ids ...string) ScenarioOption {
	return func(s *domain.Scenario) { s.AddonIDs = ids }
}

// NewTestScenario returns a complete not_applicable scenario with filled
// S/O/A/P text.
func NewTestScenario(title string, opts ...ScenarioOption) domain.Scenario {
	n := scenarioCounter.Add(1)
	s := domain.Scenario{
		ID:                 fmt.Sprintf("sc_%02d", n),
		Title:              title,
		ScenarioType:       "followup",
		ScenarioGroup:      "other",
		SideEffectPresence: domain.SideEffectNotApplicable,
		Fields: domain.SoapFields{
			S: title + " S",
			O: title + " O",
			A: title + " A",
			P: title + " P",
		},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestAddon returns an addon that appends text to one field.
func NewTestAddon(id string, target domain.SoapKey, text string) domain.Addon {
	return domain.Addon{
		ID:    id,
		Label: id,
		Patches: []domain.Patch{
			{Target: target, Mode: domain.PatchAppend, Value: text},
		},
	}
}

// NewTestModule wraps scenarios and addons in a module.
func NewTestModule(id string, scenarios []domain.Scenario, addons ...domain.Addon) *domain.Module {
	return &domain.Module{
		SchemaVersion: "3.0",
		ModuleID:      id,
		Title:         id,
		Scenarios:     scenarios,
		Addons:        addons,
	}
}

// BlockOption adjusts a test block.
type BlockOption func(*domain.MergedBlock)

func WithCreatedAt(t time.Time) BlockOption {
	return func(b *domain.MergedBlock) { b.CreatedAt = t }
}

func WithScenario(key string) BlockOption {
	return func(b *domain.MergedBlock) { b.Scenario = key }
}

func NewTestBlock(label string, fields domain.SoapFields, opts ...BlockOption) domain.MergedBlock {
	b := domain.MergedBlock{
		ID:            uuid.New().String(),
		TemplateLabel: label,
		Fields:        fields,
		CreatedAt:     time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}
