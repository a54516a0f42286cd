package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/catalog"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/soap"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"go.uber.org/zap"
)

type catalogService struct {
	loaded   []*catalog.Loaded
	modules  []*domain.Module
	refs     []ScenarioRef
	addons   map[*domain.Module]*soap.AddonCatalog
	observer UseCaseObserver
}

// LoadCatalog loads every module file in dir and logs each module's
// validation report. Files that fail to load are logged and skipped; only a
// directory with no loadable module is an error.
func LoadCatalog(dir string, logger *zap.Logger) ([]*catalog.Loaded, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	loaded, err := catalog.LoadDir(dir)
	if err != nil {
		if len(loaded) == 0 {
			return nil, fmt.Errorf("loading modules from %s: %w", dir, errors.Join(ErrNoModules, err))
		}
		logger.Warn("skipped module files", zap.String("dir", dir), zap.Error(err))
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("loading modules from %s: %w", dir, ErrNoModules)
	}
	for _, l := range loaded {
		logger.Debug("module loaded",
			zap.String("module", l.Module.ModuleID),
			zap.String("path", l.Path),
			zap.Stringer("generation", l.Generation),
		)
		catalog.LogReport(logger, l.Report)
	}
	return loaded, nil
}

func NewCatalogService(loaded []*catalog.Loaded, observers ...UseCaseObserver) (CatalogService, error) {
	if len(loaded) == 0 {
		return nil, ErrNoModules
	}
	s := &catalogService{
		loaded:   loaded,
		addons:   make(map[*domain.Module]*soap.AddonCatalog, len(loaded)),
		observer: useCaseObserverOrNoop(observers),
	}
	for _, l := range loaded {
		m := l.Module
		s.modules = append(s.modules, m)
		s.addons[m] = soap.NewAddonCatalog(m.Addons)
		for _, sc := range m.Scenarios {
			s.refs = append(s.refs, newScenarioRef(m, sc))
		}
	}
	return s, nil
}

func newScenarioRef(m *domain.Module, sc domain.Scenario) ScenarioRef {
	return ScenarioRef{Module: m, Scenario: sc, Group: taxonomy.Resolve(sc)}
}

func (s *catalogService) Modules(context.Context) []*domain.Module {
	return s.modules
}

func (s *catalogService) Scenario(ctx context.Context, ref string) (_ ScenarioRef, err error) {
	defer observe(ctx, s.observer, "resolve-scenario", map[string]any{"ref": ref}, &err)()

	moduleID, scenarioID, qualified := strings.Cut(ref, "/")
	if !qualified {
		moduleID, scenarioID = "", ref
	}
	for _, r := range s.refs {
		if r.Scenario.ID != scenarioID {
			continue
		}
		if moduleID == "" || r.Module.ModuleID == moduleID {
			return r, nil
		}
	}
	return ScenarioRef{}, fmt.Errorf("%q: %w", ref, ErrScenarioNotFound)
}

func (s *catalogService) Groups(context.Context) []GroupListing {
	var out []GroupListing
	for _, g := range taxonomy.Order {
		if refs := s.members(g); len(refs) > 0 {
			out = append(out, GroupListing{Group: g, Scenarios: refs})
		}
	}
	return out
}

func (s *catalogService) List(_ context.Context, group taxonomy.MenuGroup) []ScenarioRef {
	return s.members(group)
}

func (s *catalogService) members(g taxonomy.MenuGroup) []ScenarioRef {
	var out []ScenarioRef
	for _, m := range s.modules {
		for _, sc := range taxonomy.Members(m.Scenarios, g) {
			out = append(out, ScenarioRef{Module: m, Scenario: sc, Group: g})
		}
	}
	return out
}

// Audit checks the groups cached on the refs that Scenario hands out
// against a fresh resolution.
func (s *catalogService) Audit(context.Context) []taxonomy.Mismatch {
	var mismatches []taxonomy.Mismatch
	listed := make(map[taxonomy.MenuGroup][]domain.Scenario)
	for _, r := range s.refs {
		listed[r.Group] = append(listed[r.Group], r.Scenario)
	}
	for _, g := range taxonomy.Order {
		mismatches = append(mismatches, taxonomy.Audit(g, listed[g])...)
	}
	return mismatches
}

func (s *catalogService) Counts(context.Context) map[taxonomy.MenuGroup]int {
	all := make([]domain.Scenario, 0, len(s.refs))
	for _, r := range s.refs {
		all = append(all, r.Scenario)
	}
	return taxonomy.Count(all)
}

func (s *catalogService) Addons(_ context.Context, ref ScenarioRef) []domain.Addon {
	c, ok := s.addons[ref.Module]
	if !ok && ref.Module != nil {
		c = soap.NewAddonCatalog(ref.Module.Addons)
	}
	return c.ForScenario(ref.Scenario)
}

func (s *catalogService) Reports(context.Context) []catalog.Report {
	out := make([]catalog.Report, 0, len(s.loaded))
	for _, l := range s.loaded {
		out = append(out, l.Report)
	}
	return out
}
