package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/soapnote/internal/catalog"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/search"
	"github.com/alexanderramin/soapnote/internal/soap"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
)

var (
	ErrNoModules         = errors.New("no modules loaded")
	ErrScenarioNotFound  = errors.New("scenario not found")
	ErrOpeningNotAllowed = errors.New("opening sentence not offered for this group")
	ErrNothingHeld       = errors.New("no held blocks")
	ErrBlockNotHeld      = errors.New("block not held")
)

// ScenarioRef is a scenario together with the module that defines it and
// its resolved menu group.
type ScenarioRef struct {
	Module   *domain.Module
	Scenario domain.Scenario
	Group    taxonomy.MenuGroup
}

// Key is the module-qualified id, "module/scenario".
func (r ScenarioRef) Key() string {
	return r.Module.ModuleID + "/" + r.Scenario.ID
}

// GroupListing is one non-empty menu group and its scenarios.
type GroupListing struct {
	Group     taxonomy.MenuGroup
	Scenarios []ScenarioRef
}

type CatalogService interface {
	Modules(ctx context.Context) []*domain.Module
	// Scenario resolves "module/id" or a bare id; a bare id matches the
	// first module, in load order, that defines it.
	Scenario(ctx context.Context, ref string) (ScenarioRef, error)
	Groups(ctx context.Context) []GroupListing
	List(ctx context.Context, group taxonomy.MenuGroup) []ScenarioRef
	Counts(ctx context.Context) map[taxonomy.MenuGroup]int
	Addons(ctx context.Context, ref ScenarioRef) []domain.Addon
	Reports(ctx context.Context) []catalog.Report
	// Audit re-resolves every listed scenario and reports the ones whose
	// group no longer matches the listing.
	Audit(ctx context.Context) []taxonomy.Mismatch
}

// Opening selects the S-opening sentence.
type Opening struct {
	Context soap.OpeningContext
	Status  soap.OpeningStatus
}

// ComposeRequest selects a scenario and the addons to fold in.
type ComposeRequest struct {
	Scenario string
	AddonIDs []string
	Opening  *Opening
}

// ComposeResult is a composed note. Label is the scenario title.
type ComposeResult struct {
	Ref    ScenarioRef
	Label  string
	Fields domain.SoapFields
}

// HoldResult reports a stored snapshot and its 1-based position.
type HoldResult struct {
	Block domain.MergedBlock
	Seq   int
}

// AmendRequest edits a held block in place.
type AmendRequest struct {
	// DropAddonIDs are addons whose text is taken back out of the block.
	DropAddonIDs []string
	ClearOpening bool
}

type NoteService interface {
	Compose(ctx context.Context, note string, req ComposeRequest) (*ComposeResult, error)
	Hold(ctx context.Context, note string, req ComposeRequest) (*HoldResult, error)
	Held(ctx context.Context, note string) ([]domain.MergedBlock, error)
	// Merged combines the held blocks with current, or with nothing but the
	// held blocks when current is nil.
	Merged(ctx context.Context, note string, current *ComposeResult) (domain.SoapFields, error)
	// Amend edits the held block at a 1-based position, or with the given
	// id, and returns it as stored.
	Amend(ctx context.Context, note, block string, req AmendRequest) (*domain.MergedBlock, error)
	Reset(ctx context.Context, note string) (int, error)
	Copy(ctx context.Context, note string, fields domain.SoapFields) (string, error)
	History(ctx context.Context, note string, limit int) ([]domain.GenerationLogEntry, error)
}

type SearchService interface {
	Suggest(ctx context.Context, query string, limit int) []search.Suggestion
	Filter(ctx context.Context, query string) []ScenarioRef
}
