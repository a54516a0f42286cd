package taxonomy

import (
	"regexp"
	"strings"
)

var (
	legacySideEffectTitle = regexp.MustCompile(`^副作用[（(](.+)[）)]$`)
	noSymptomSuffix       = regexp.MustCompile(`[（(]症状なし[）)]\s*$`)
	drugClassPrefix       = regexp.MustCompile(`^\S.*?[)）]\s+(.+)$`)
	whitespaceRun         = regexp.MustCompile(`\s+`)
)

// DisplayTitle returns the label shown in the scenario list of group g.
//
//	"副作用（低血糖）"      -> "低血糖"   (any group)
//	"低血糖（症状なし）"    -> "低血糖"   (side effects absent only)
func DisplayTitle(title string, g MenuGroup) string {
	if m := legacySideEffectTitle.FindStringSubmatch(title); m != nil {
		return m[1]
	}
	if g == GroupSideEffectsAbsent {
		return strings.TrimSpace(noSymptomSuffix.ReplaceAllString(title, ""))
	}
	return title
}

// ShortLabel strips a leading drug-class name from a template label.
//
//	"GLP-1受容体作動薬(内服) 副作用 低血糖" -> "副作用 低血糖"
func ShortLabel(label string) string {
	if m := drugClassPrefix.FindStringSubmatch(label); m != nil {
		return m[1]
	}
	parts := whitespaceRun.Split(label, -1)
	if len(parts) >= 3 {
		return strings.Join(parts[1:], " ")
	}
	return label
}

// Color is the chip colour used for a scenario button.
type Color string

const (
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorRed    Color = "red"
	ColorPurple Color = "purple"
	ColorOrange Color = "orange"
	ColorGray   Color = "gray"
)

var groupColors = map[MenuGroup]Color{
	GroupInitial:           ColorBlue,
	GroupDoseIncrease:      ColorBlue,
	GroupDoseDecrease:      ColorGray,
	GroupSideEffectsAbsent: ColorGreen,
	GroupSideEffects:       ColorRed,
	GroupAdherenceGood:     ColorGreen,
	GroupAdherencePoor:     ColorOrange,
	GroupSelfAdjusted:      ColorOrange,
	GroupDiscontinued:      ColorPurple,
	GroupOther:             ColorGray,
}

// ColorOf returns the chip colour of a group.
func ColorOf(g MenuGroup) Color {
	if c, ok := groupColors[g]; ok {
		return c
	}
	return ColorGray
}

// OpeningEligible reports whether the S-opening sentence picker applies to g.
func OpeningEligible(g MenuGroup) bool {
	switch g {
	case GroupSideEffectsAbsent, GroupAdherenceGood, GroupAdherencePoor:
		return true
	}
	return false
}
