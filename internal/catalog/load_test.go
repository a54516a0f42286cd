package catalog

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		data string
		want Generation
	}{
		{"scenario", `{"scenarios": []}`, GenerationScenario},
		{"template", `{"templates": [{"templateId": "x"}]}`, GenerationTemplate},
		{"drug data", `{"drug_group": "g", "templates": []}`, GenerationDrugData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Detect([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := Detect([]byte(`{"name": "x"}`))
	assert.ErrorIs(t, err, ErrUnknownSchema)

	_, err = Detect([]byte(`[1, 2]`))
	assert.Error(t, err)
}

func TestLoadModule_Scenario(t *testing.T) {
	loaded, err := LoadModule(filepath.Join("testdata", "scenario.json"))
	require.NoError(t, err)

	m := loaded.Module
	assert.Equal(t, GenerationScenario, loaded.Generation)
	assert.Equal(t, "semaglutide_inject", m.ModuleID)
	assert.Equal(t, "オゼンピック", m.Title)
	assert.Equal(t, "GLP-1受容体作動薬（注射）", m.Subtitle)
	assert.Equal(t, []string{"次回受診時に経過を確認する。"}, m.ClosingSentences)

	require.NotNil(t, m.Drug)
	assert.True(t, m.Drug.Search.SuppressOnExactHit)
	assert.Equal(t, 5, m.Drug.Search.Priority)
	assert.Equal(t, "オゼンピック（セマグルチド）", m.Drug.Search.PrimaryDisplayName)

	require.Len(t, m.Scenarios, 2)
	start := m.Scenarios[0]
	assert.Equal(t, domain.SideEffectNotApplicable, start.SideEffectPresence)
	assert.Equal(t, []string{"gi_guidance", "hypo_guidance"}, start.AddonIDs)
	assert.Equal(t, taxonomy.GroupInitial, taxonomy.Resolve(start))
	assert.Equal(t, taxonomy.GroupSideEffectsAbsent, taxonomy.Resolve(m.Scenarios[1]))

	require.Len(t, m.Addons, 2)
	assert.Equal(t, domain.Patch{Target: domain.KeyP, Mode: domain.PatchAppend, Value: "悪心時は少量頻回食を指導。"}, m.Addons[0].Patches[0])

	assert.True(t, loaded.Report.Valid(), "defects: %v", loaded.Report.Defects)
	assert.Equal(t, 2, loaded.Report.Records)
}

func TestLoadModule_Template(t *testing.T) {
	loaded, err := LoadModule(filepath.Join("testdata", "template.json"))
	require.NoError(t, err)

	m := loaded.Module
	assert.Equal(t, GenerationTemplate, loaded.Generation)
	require.Len(t, m.Scenarios, 2)

	initial := m.Scenarios[0]
	assert.Equal(t, "initial", initial.LegacyType)
	assert.Equal(t, []string{"inj_technique"}, initial.AddonIDs, "inline addons fix the order")
	assert.Equal(t, taxonomy.GroupInitial, taxonomy.Resolve(initial))
	assert.Equal(t, taxonomy.GroupSideEffects, taxonomy.Resolve(m.Scenarios[1]))

	require.Len(t, m.Addons, 1)
	assert.Equal(t, domain.PatchAppend, m.Addons[0].Patches[0].Mode, "op wins over the block mode")
	assert.Equal(t, "注射手技を確認。", m.Addons[0].Patches[0].Value)

	require.NotNil(t, m.Drug)
	assert.Equal(t, []string{"GLP-1", "インクレチン"}, m.Drug.Search.Keywords)
	assert.Equal(t, []string{"週1回製剤"}, m.Drug.DrugSpecificTags)
	assert.True(t, loaded.Report.Valid(), "defects: %v", loaded.Report.Defects)
}

func TestLoadModule_DrugData(t *testing.T) {
	loaded, err := LoadModule(filepath.Join("testdata", "drugdata.json"))
	require.NoError(t, err)

	m := loaded.Module
	assert.Equal(t, GenerationDrugData, loaded.Generation)
	assert.Equal(t, "drugdata", m.ModuleID)
	assert.Equal(t, "GLP-1受容体作動薬", m.Title)
	assert.Equal(t, []string{"リベルサス"}, m.Drug.BrandNames)
	assert.Equal(t, []string{"セマグルチド"}, m.Drug.NameAliases)
	assert.Contains(t, m.Drug.Search.Keywords, "内服")
	assert.Contains(t, m.Drug.Search.Keywords, "経口")
	assert.NotContains(t, m.Drug.Search.Keywords, "注射")

	require.Len(t, m.Scenarios, 2)
	assert.Equal(t, "se_none", m.Scenarios[0].ID)
	assert.Equal(t, taxonomy.GroupSideEffectsAbsent, taxonomy.Resolve(m.Scenarios[0]))
	assert.Equal(t, taxonomy.GroupAdherenceGood, taxonomy.Resolve(m.Scenarios[1]))

	require.Len(t, m.Addons, 1)
	assert.Equal(t, domain.Patch{Target: domain.KeyP, Mode: domain.PatchAppend, Value: "起床時空腹で服用するよう指導。"}, m.Addons[0].Patches[0])

	require.Len(t, loaded.Report.Defects, 1)
	assert.Equal(t, Defect{"cp_good", CodeEmptySoap, "P", `SOAP field "P" is empty`}, loaded.Report.Defects[0])
}

func TestLoadModule_YAML(t *testing.T) {
	loaded, err := LoadModule(filepath.Join("testdata", "module.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "module", loaded.Module.ModuleID)
	assert.Equal(t, "メトグルコ", loaded.Module.Title)
	require.Len(t, loaded.Module.Scenarios, 1)
	assert.Equal(t, "HbA1c 6.8%。", loaded.Module.Scenarios[0].Fields.O)
	assert.Equal(t, taxonomy.GroupAdherenceGood, taxonomy.Resolve(loaded.Module.Scenarios[0]))
	assert.True(t, loaded.Report.Valid())
}

func TestLoadModule_Errors(t *testing.T) {
	_, err := LoadModule(filepath.Join("testdata", "unknown.json"))
	assert.ErrorIs(t, err, ErrUnknownSchema)

	_, err = LoadModule(filepath.Join("testdata", "does-not-exist.json"))
	assert.Error(t, err)
}

func TestLoadDir(t *testing.T) {
	loaded, err := LoadDir("testdata")

	assert.ErrorIs(t, err, ErrUnknownSchema)
	require.Len(t, loaded, 5)

	var ids []string
	for _, l := range loaded {
		ids = append(ids, l.Module.ModuleID)
	}
	assert.Equal(t, []string{"drugdata", "module", "semaglutide_inject", "broken", "glp1_inject"}, ids)
}

func TestParse_MalformedFieldStillLoads(t *testing.T) {
	data := []byte(`{"moduleId": "m", "scenarios": [
		{"id": "x", "title": "t", "scenarioType": "a", "scenarioGroup": "g",
		 "sideEffectPresence": "present", "S": 5, "O": "o", "A": "a", "P": "p"}
	]}`)

	loaded, err := Parse(data, "fallback")
	require.NoError(t, err)

	require.Len(t, loaded.Module.Scenarios, 1)
	sc := loaded.Module.Scenarios[0]
	assert.Equal(t, "", sc.Fields.S)
	assert.Equal(t, "p", sc.Fields.P)
	assert.Equal(t, taxonomy.GroupSideEffects, taxonomy.Resolve(sc))

	require.Len(t, loaded.Report.Defects, 1)
	d := loaded.Report.Defects[0]
	assert.Equal(t, CodeMalformedRecord, d.Code)
	assert.Equal(t, "x", d.RecordID)
	assert.Equal(t, "S", d.Field)
	assert.Contains(t, d.Message, "number")
	assert.Contains(t, d.Message, "string")
}
