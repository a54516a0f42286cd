package soap

import (
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

// ApplyPatch returns the text of one field after applying p. It only ever
// sees the target field's current text. Unknown modes leave the text as is.
func ApplyPatch(current string, p domain.Patch) string {
	value := strings.TrimSpace(p.Value)

	switch p.Mode {
	case domain.PatchAppend:
		if current == "" {
			return value
		}
		return current + "\n" + value
	case domain.PatchPrepend:
		if current == "" {
			return value
		}
		return value + "\n" + current
	case domain.PatchReplace:
		return value
	default:
		return current
	}
}

// ApplyPatches applies each patch to its target field in order.
func ApplyPatches(fields domain.SoapFields, patches []domain.Patch) domain.SoapFields {
	for _, p := range patches {
		if !p.Target.Valid() {
			continue
		}
		fields = fields.With(p.Target, ApplyPatch(fields.Get(p.Target), p))
	}
	return fields
}
