package formatter

import (
	"testing"

	"github.com/alexanderramin/soapnote/internal/catalog"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"github.com/stretchr/testify/assert"
)

func TestFormatGroups(t *testing.T) {
	out := FormatGroups(map[taxonomy.MenuGroup]int{
		taxonomy.GroupInitial:     2,
		taxonomy.GroupSideEffects: 5,
	})

	assert.Contains(t, out, "Menu")
	assert.Contains(t, out, "初回")
	assert.Contains(t, out, "副作用あり")
	assert.Contains(t, out, "その他", "empty groups are still listed")
	assert.Contains(t, out, "5")
}

func TestFormatScenarioList_UsesDisplayTitle(t *testing.T) {
	m := &domain.Module{ModuleID: "glp1", Title: "GLP-1"}
	refs := []service.ScenarioRef{{
		Module:   m,
		Scenario: domain.Scenario{ID: "hypo", Title: "副作用（低血糖）"},
		Group:    taxonomy.GroupSideEffects,
	}}

	out := FormatScenarioList(taxonomy.GroupSideEffects, refs)
	assert.Contains(t, out, "glp1/hypo")
	assert.Contains(t, out, "低血糖")
	assert.NotContains(t, out, "副作用（低血糖）")

	assert.Contains(t, FormatScenarioList(taxonomy.GroupDiscontinued, nil), "No scenarios")
}

func TestFormatAddons(t *testing.T) {
	addons := []domain.Addon{{ID: "gi", Label: "胃腸症状"}, {ID: "hypo"}}
	out := FormatAddons(addons, map[string]bool{"gi": true})

	assert.Contains(t, out, "[x]")
	assert.Contains(t, out, "[ ]")
	assert.Contains(t, out, "胃腸症状")
	assert.Empty(t, FormatAddons(nil, nil))
}

func TestFormatAudit(t *testing.T) {
	assert.Empty(t, FormatAudit(nil))

	out := FormatAudit([]taxonomy.Mismatch{
		{ScenarioID: "nausea", Listed: taxonomy.GroupOther, Resolved: taxonomy.GroupSideEffects},
	})
	assert.Contains(t, out, "nausea listed under")
	assert.Contains(t, out, taxonomy.GroupOther.Label())
	assert.Contains(t, out, taxonomy.GroupSideEffects.Label())
}

func TestFormatReports(t *testing.T) {
	out := FormatReports([]catalog.Report{
		{ModuleID: "clean", Records: 3},
		{ModuleID: "dirty", Records: 2, Defects: []catalog.Defect{
			{RecordID: "x", Code: catalog.CodeEmptySoap, Field: "P", Message: "P is blank"},
		}},
	})

	assert.Contains(t, out, "clean")
	assert.Contains(t, out, "1 of 2 records invalid")
	assert.Contains(t, out, "EMPTY_SOAP")
	assert.Contains(t, out, "P is blank")
}
