package soap

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

var (
	trailingBlanks = regexp.MustCompile(`[ \t　]+\n`)
	newlineRun     = regexp.MustCompile(`\n{3,}`)
)

// Tidy normalises whitespace left behind by text removal: CRLF becomes LF,
// trailing blanks on each line go, runs of three or more newlines collapse
// to one blank line, and the field is trimmed.
func Tidy(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = trailingBlanks.ReplaceAllString(text, "\n")
	text = newlineRun.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Retract removes an addon's text from fields that may have been edited
// since it was applied. Appended text is removed at its last occurrence,
// prepended text at its first; replace patches cannot be undone and are
// ignored. Touched fields are tidied.
func Retract(fields domain.SoapFields, addon domain.Addon) domain.SoapFields {
	for i := len(addon.Patches) - 1; i >= 0; i-- {
		p := addon.Patches[i]
		if !p.Target.Valid() {
			continue
		}
		value := strings.TrimSpace(p.Value)
		if value == "" {
			continue
		}

		text := fields.Get(p.Target)
		var idx int
		switch p.Mode {
		case domain.PatchAppend:
			idx = strings.LastIndex(text, value)
		case domain.PatchPrepend:
			idx = strings.Index(text, value)
		default:
			continue
		}
		if idx < 0 {
			continue
		}
		fields = fields.With(p.Target, Tidy(cutSpan(text, idx, len(value))))
	}
	return fields
}

// cutSpan removes text[i:i+n]. When that leaves its line blank the line
// itself goes too.
func cutSpan(text string, i, n int) string {
	out := text[:i] + text[i+n:]

	start := strings.LastIndexByte(out[:i], '\n') + 1
	end := len(out)
	if j := strings.IndexByte(out[i:], '\n'); j >= 0 {
		end = i + j
	}
	if strings.TrimSpace(out[start:end]) != "" {
		return out
	}
	switch {
	case end < len(out):
		return out[:start] + out[end+1:]
	case start > 0:
		return out[:start-1]
	default:
		return ""
	}
}
