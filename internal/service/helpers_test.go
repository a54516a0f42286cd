package service

import (
	"testing"

	"github.com/alexanderramin/soapnote/internal/catalog"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/repository"
	"github.com/alexanderramin/soapnote/internal/testutil"
	"github.com/stretchr/testify/require"
)

func loadedOf(modules ...*domain.Module) []*catalog.Loaded {
	out := make([]*catalog.Loaded, 0, len(modules))
	for _, m := range modules {
		out = append(out, &catalog.Loaded{
			Path:       m.ModuleID + ".json",
			Generation: catalog.GenerationScenario,
			Module:     m,
			Report:     catalog.Report{ModuleID: m.ModuleID, Records: len(m.Scenarios)},
		})
	}
	return out
}

// glpModule has one scenario per interesting group and two P addons.
func glpModule() *domain.Module {
	initial := testutil.NewTestScenario("開始", testutil.WithGroup("start_or_change"))
	initial.ID = "start"
	absent := testutil.NewTestScenario("副作用なし継続", testutil.WithSideEffects(domain.SideEffectAbsent))
	absent.ID = "se_absent"
	absent.Fields.P = "継続。\n次回受診時に経過を確認する。"
	absent.AddonIDs = []string{"hypo", "gi"}
	nausea := testutil.NewTestScenario("悪心", testutil.WithSideEffects(domain.SideEffectPresent))
	nausea.ID = "nausea"

	m := testutil.NewTestModule("glp1",
		[]domain.Scenario{initial, absent, nausea},
		testutil.NewTestAddon("gi", domain.KeyP, "胃腸症状に注意。"),
		testutil.NewTestAddon("hypo", domain.KeyP, "低血糖に注意。"),
	)
	m.Title = "GLP-1"
	m.Drug = &domain.Drug{
		BrandNames:  []string{"オゼンピック"},
		NameAliases: []string{"セマグルチド"},
		Search: domain.DrugSearch{
			ExactAliases:       []string{"オゼンピック"},
			PrimaryDisplayName: "オゼンピック",
			SuppressOnExactHit: true,
		},
	}
	return m
}

func statinModule() *domain.Module {
	good := testutil.NewTestScenario("服薬良好", testutil.WithGroup("adherence_good"))
	good.ID = "cp_good"
	legacy := testutil.NewTestScenario("筋肉痛", testutil.WithLegacyType("se_myalgia"))
	legacy.ID = "se_myalgia"
	m := testutil.NewTestModule("statin", []domain.Scenario{good, legacy})
	m.Title = "スタチン"
	m.Drug = &domain.Drug{BrandNames: []string{"リピトール"}}
	return m
}

type noteFixture struct {
	catalog CatalogService
	notes   NoteService
	blocks  repository.BlockRepo
	logs    repository.GenerationLogRepo
}

func setupNotes(t *testing.T, observers ...UseCaseObserver) noteFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	cat, err := NewCatalogService(loadedOf(glpModule(), statinModule()))
	require.NoError(t, err)
	blocks := repository.NewSQLiteBlockRepo(database)
	logs := repository.NewSQLiteGenerationLogRepo(database)
	return noteFixture{
		catalog: cat,
		notes:   NewNoteService(cat, blocks, logs, testutil.NewTestUoW(database), observers...),
		blocks:  blocks,
		logs:    logs,
	}
}
