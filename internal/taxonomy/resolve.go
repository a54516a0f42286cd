package taxonomy

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// Scenario groups recognised on the not_applicable path.
const (
	scenarioGroupStartOrChange = "start_or_change"
	scenarioGroupDoseChange    = "dose_change"
	scenarioGroupAdherenceGood = "adherence_good"
	scenarioGroupAdherencePoor = "adherence_poor"
	scenarioGroupLifestyle     = "lifestyle_guidance"
	scenarioGroupSickDay       = "sickday"
	scenarioGroupEndPrefix     = "end_"

	doseIncreaseID = "dose_increase"
)

// Resolve maps a scenario to exactly one menu group. It is the only place
// category membership is derived; listing, counting, colouring and search
// all call it.
//
// Records without sideEffectPresence but with a legacy type string go
// through ResolveLegacyType.
func Resolve(sc domain.Scenario) MenuGroup {
	if sc.SideEffectPresence == "" && sc.LegacyType != "" {
		return ResolveLegacyType(sc.LegacyType)
	}

	switch sc.SideEffectPresence {
	case domain.SideEffectPresent:
		return GroupSideEffects
	case domain.SideEffectAbsent:
		return GroupSideEffectsAbsent
	}

	sg := sc.ScenarioGroup
	switch {
	case sg == scenarioGroupStartOrChange:
		return GroupInitial
	case sg == scenarioGroupDoseChange:
		if sc.ID == doseIncreaseID {
			return GroupDoseIncrease
		}
		return GroupDoseDecrease
	case sg == scenarioGroupAdherenceGood:
		return GroupAdherenceGood
	case sg == scenarioGroupAdherencePoor:
		return GroupAdherencePoor
	case strings.HasPrefix(sg, scenarioGroupEndPrefix):
		return GroupDiscontinued
	case sg == scenarioGroupLifestyle, sg == scenarioGroupSickDay:
		return GroupOther
	}
	return GroupOther
}

var legacyTypeGroups = map[string]MenuGroup{
	"initial":            GroupInitial,
	"uptitrate":          GroupDoseIncrease,
	"down_improved":      GroupDoseDecrease,
	"down_lowbenefit":    GroupDoseDecrease,
	"down_adjust_other":  GroupDoseDecrease,
	"se_none":            GroupSideEffectsAbsent,
	"se_hypoglycemia":    GroupSideEffects,
	"se_gi":              GroupSideEffects,
	"se_appetite":        GroupSideEffects,
	"se_pancreatitis":    GroupSideEffects,
	"se_mild_continue":   GroupSideEffects,
	"se_strong_consult":  GroupSideEffects,
	"se_change":          GroupSideEffects,
	"se_reduce":          GroupSideEffects,
	"se_stop":            GroupSideEffects,
	"cp_good":            GroupAdherenceGood,
	"cp_poor_forget":     GroupAdherencePoor,
	"cp_poor_delay":      GroupAdherencePoor,
	"cp_poor_selfadjust": GroupAdherencePoor,
	"self_adjust":        GroupSelfAdjusted,
	"stop_improved":      GroupDiscontinued,
	"stop_ineffective":   GroupDiscontinued,
	"stop_noeffect":      GroupDiscontinued,
	"sickday":            GroupOther,
	"lifestyle":          GroupOther,
}

// legacyPrefixGroups catches type strings added after the table was written.
var legacyPrefixGroups = []struct {
	prefix string
	group  MenuGroup
}{
	{"se_", GroupSideEffects},
	{"cp_", GroupAdherencePoor},
	{"down_", GroupDoseDecrease},
	{"stop_", GroupDiscontinued},
}

// ResolveLegacyType maps an older-schema type string to a menu group.
// Unknown types resolve to Other.
func ResolveLegacyType(typ string) MenuGroup {
	if g, ok := legacyTypeGroups[typ]; ok {
		return g
	}
	for _, p := range legacyPrefixGroups {
		if strings.HasPrefix(typ, p.prefix) {
			return p.group
		}
	}
	return GroupOther
}
