package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/catalog"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
)

// FormatGroups renders the menu: every group in display order with its
// scenario count. Empty groups are listed dimmed.
func FormatGroups(counts map[taxonomy.MenuGroup]int) string {
	headers := []string{"GROUP", "KEY", "SCENARIOS"}
	rows := make([][]string, 0, len(taxonomy.Order))
	for _, g := range taxonomy.Order {
		n := counts[g]
		if n == 0 {
			rows = append(rows, []string{Dim("○ " + g.Label()), Dim(string(g)), Dim("0")})
			continue
		}
		rows = append(rows, []string{GroupChip(g), string(g), fmt.Sprint(n)})
	}
	return RenderBox("Menu", RenderTable(headers, rows))
}

// FormatScenarioList renders the scenarios of one group with their
// group-specific display titles.
func FormatScenarioList(g taxonomy.MenuGroup, refs []service.ScenarioRef) string {
	if len(refs) == 0 {
		return Dim(fmt.Sprintf("No scenarios in %s.", g.Label())) + "\n"
	}
	headers := []string{"ID", "TITLE", "MODULE"}
	rows := make([][]string, 0, len(refs))
	for _, r := range refs {
		rows = append(rows, []string{
			Dim(r.Key()),
			GroupStyle(g).Render(taxonomy.DisplayTitle(r.Scenario.Title, g)),
			Dim(r.Module.Title),
		})
	}
	return Header(g.Label()) + "\n" + RenderTable(headers, rows)
}

// FormatAddons lists the addons offered for a scenario, marking the selected ones.
func FormatAddons(addons []domain.Addon, selected map[string]bool) string {
	if len(addons) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(Header("Addons") + "\n")
	for _, a := range addons {
		mark := Dim("[ ]")
		if selected[a.ID] {
			mark = StyleGreen.Render("[x]")
		}
		label := a.Label
		if label == "" {
			label = a.ID
		}
		fmt.Fprintf(&b, "  %s %s %s\n", mark, label, Dim(a.ID))
	}
	return b.String()
}

// FormatReports renders the validation result of every module, one block
// per invalid record.
func FormatReports(reports []catalog.Report) string {
	var b strings.Builder
	for _, r := range reports {
		if r.Valid() {
			fmt.Fprintf(&b, "%s %s %s\n", StyleGreen.Render("✔"), Bold(r.ModuleID), Dim(fmt.Sprintf("%d records", r.Records)))
			continue
		}
		groups := r.ByRecord()
		fmt.Fprintf(&b, "%s %s %s\n", StyleRed.Render("✖"), Bold(r.ModuleID),
			StyleYellow.Render(fmt.Sprintf("%d of %d records invalid", len(groups), r.Records)))
		for _, g := range groups {
			id := g.RecordID
			if id == "" {
				id = "(no id)"
			}
			fmt.Fprintf(&b, "    %s\n", id)
			for _, d := range g.Defects {
				fmt.Fprintf(&b, "      %s %s\n", StyleRed.Render(d.Code), d.Message)
			}
		}
	}
	return b.String()
}

// FormatAudit renders scenarios whose cached group disagrees with the
// resolver, or nothing when there are none.
func FormatAudit(mismatches []taxonomy.Mismatch) string {
	if len(mismatches) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", StyleRed.Render("✖"), Bold("grouping"))
	for _, m := range mismatches {
		fmt.Fprintf(&b, "    %s listed under %s, resolves to %s\n",
			m.ScenarioID, GroupChip(m.Listed), GroupChip(m.Resolved))
	}
	return b.String()
}
