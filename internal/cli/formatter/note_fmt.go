package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/domain"
)

var fieldNames = map[domain.SoapKey]string{
	domain.KeyS: "Subjective",
	domain.KeyO: "Objective",
	domain.KeyA: "Assessment",
	domain.KeyP: "Plan",
}

// FormatNote renders the four fields of a note in a box titled label.
// Blank fields are shown as a dimmed dash so the layout stays fixed.
func FormatNote(label string, fields domain.SoapFields) string {
	var b strings.Builder
	for i, k := range domain.SoapKeys {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%s %s\n", StyleHeader.Render("【"+string(k)+"】"), Dim(fieldNames[k]))
		text := fields.Get(k)
		if strings.TrimSpace(text) == "" {
			b.WriteString(Dim("—"))
			continue
		}
		b.WriteString(text)
	}
	return RenderBox(label, b.String())
}

// FormatHeld lists held blocks in hold order.
func FormatHeld(blocks []domain.MergedBlock) string {
	if len(blocks) == 0 {
		return Dim("Nothing held.") + "\n"
	}
	headers := []string{"#", "LABEL", "HELD"}
	rows := make([][]string, 0, len(blocks))
	for i, b := range blocks {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			Bold(b.TemplateLabel),
			Dim(HumanTimestamp(b.CreatedAt)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatHistory renders generation log entries, newest first.
func FormatHistory(entries []domain.GenerationLogEntry) string {
	if len(entries) == 0 {
		return Dim("No activity yet.") + "\n"
	}
	headers := []string{"WHEN", "NOTE", "ACTION", "DETAILS"}
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{
			Dim(HumanTimestamp(e.CreatedAt)),
			e.Note,
			actionStyle(e.Action),
			Truncate(e.Details, 60),
		})
	}
	return RenderTable(headers, rows)
}

func actionStyle(action string) string {
	switch action {
	case "hold":
		return StyleBlue.Render(action)
	case "reset":
		return StyleRed.Render(action)
	case "amend":
		return StyleYellow.Render(action)
	case "copy":
		return StyleGreen.Render(action)
	default:
		return StyleFg.Render(action)
	}
}
