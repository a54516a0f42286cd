package taxonomy

// MenuGroup is one of the ten fixed top-level categories.
type MenuGroup string

const (
	GroupInitial           MenuGroup = "initial"
	GroupDoseIncrease      MenuGroup = "dose_increase"
	GroupDoseDecrease      MenuGroup = "dose_decrease"
	GroupSideEffectsAbsent MenuGroup = "side_effects_absent"
	GroupSideEffects       MenuGroup = "side_effects_present"
	GroupAdherenceGood     MenuGroup = "adherence_good"
	GroupAdherencePoor     MenuGroup = "adherence_poor"
	GroupSelfAdjusted      MenuGroup = "self_adjusted"
	GroupDiscontinued      MenuGroup = "discontinued"
	GroupOther             MenuGroup = "other"
)

// Order is the fixed display order of the menu.
var Order = []MenuGroup{
	GroupInitial,
	GroupDoseIncrease,
	GroupDoseDecrease,
	GroupSideEffectsAbsent,
	GroupSideEffects,
	GroupAdherenceGood,
	GroupAdherencePoor,
	GroupSelfAdjusted,
	GroupDiscontinued,
	GroupOther,
}

var labels = map[MenuGroup]string{
	GroupInitial:           "初回",
	GroupDoseIncrease:      "増量",
	GroupDoseDecrease:      "減量",
	GroupSideEffectsAbsent: "副作用なし",
	GroupSideEffects:       "副作用あり",
	GroupAdherenceGood:     "コンプライアンス良好",
	GroupAdherencePoor:     "コンプライアンス不良",
	GroupSelfAdjusted:      "自己調整",
	GroupDiscontinued:      "終了",
	GroupOther:             "その他",
}

// Label returns the display label of the group.
func (g MenuGroup) Label() string {
	if l, ok := labels[g]; ok {
		return l
	}
	return labels[GroupOther]
}

// Valid reports whether g is one of the ten fixed groups.
func (g MenuGroup) Valid() bool {
	_, ok := labels[g]
	return ok
}

// Position returns the display index of g; unknown groups sort with Other.
func (g MenuGroup) Position() int {
	for i, o := range Order {
		if o == g {
			return i
		}
	}
	return len(Order) - 1
}

// ParseMenuGroup accepts either the group key or its display label.
func ParseMenuGroup(s string) (MenuGroup, bool) {
	for _, g := range Order {
		if string(g) == s || labels[g] == s {
			return g, true
		}
	}
	return "", false
}
