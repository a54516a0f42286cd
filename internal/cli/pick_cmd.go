package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/soapnote/internal/cli/formatter"
	"github.com/alexanderramin/soapnote/internal/domain"
	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/alexanderramin/soapnote/internal/soap"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var errNotInteractive = errors.New("pick needs an interactive terminal; use compose ID instead")

// Pick actions.
const (
	pickCompose = "compose"
	pickHold    = "hold"
	pickCopy    = "copy"
)

func soapnoteHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.MultiSelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.SelectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorGreen).SetString("[x] ")
	t.Focused.UnselectedPrefix = lipgloss.NewStyle().Foreground(formatter.ColorDim).SetString("[ ] ")
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

func themed(groups ...*huh.Group) *huh.Form {
	return huh.NewForm(groups...).WithTheme(soapnoteHuhTheme()).WithShowHelp(false)
}

func groupOptions(listings []service.GroupListing) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(listings))
	for _, l := range listings {
		label := fmt.Sprintf("%s (%d)", l.Group.Label(), len(l.Scenarios))
		opts = append(opts, huh.NewOption(label, string(l.Group)))
	}
	return opts
}

func scenarioOptions(g taxonomy.MenuGroup, refs []service.ScenarioRef) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(refs))
	for _, r := range refs {
		label := fmt.Sprintf("%s  %s", taxonomy.DisplayTitle(r.Scenario.Title, g), formatter.Dim(r.Module.Title))
		opts = append(opts, huh.NewOption(label, r.Key()))
	}
	return opts
}

func addonOptions(addons []domain.Addon) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(addons))
	for _, a := range addons {
		label := a.Label
		if label == "" {
			label = a.ID
		}
		opts = append(opts, huh.NewOption(label, a.ID))
	}
	return opts
}

// openingContextOptions leads with an empty value meaning "no opening".
func openingContextOptions() []huh.Option[string] {
	opts := []huh.Option[string]{huh.NewOption("なし", "")}
	for _, c := range soap.OpeningContexts {
		opts = append(opts, huh.NewOption(soap.ContextLabel(c), string(c)))
	}
	return opts
}

func openingStatusOptions() []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(soap.OpeningStatuses))
	for _, s := range soap.OpeningStatuses {
		opts = append(opts, huh.NewOption(soap.StatusLabel(s), string(s)))
	}
	return opts
}

func newPickCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Pick a group, scenario and addons interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.IsInteractive != nil && !app.IsInteractive() {
				return errNotInteractive
			}
			err := runPick(cmd, app)
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			return err
		},
	}
}

func runPick(cmd *cobra.Command, app *App) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	listings := app.Catalog.Groups(ctx)
	if len(listings) == 0 {
		return service.ErrNoModules
	}

	var groupKey string
	if err := themed(huh.NewGroup(
		huh.NewSelect[string]().Title("Group").Options(groupOptions(listings)...).Value(&groupKey),
	)).Run(); err != nil {
		return err
	}
	group := taxonomy.MenuGroup(groupKey)

	var scenarioKey string
	if err := themed(huh.NewGroup(
		huh.NewSelect[string]().Title(group.Label()).
			Options(scenarioOptions(group, app.Catalog.List(ctx, group))...).
			Value(&scenarioKey),
	)).Run(); err != nil {
		return err
	}
	ref, err := app.Catalog.Scenario(ctx, scenarioKey)
	if err != nil {
		return err
	}

	req := service.ComposeRequest{Scenario: ref.Key()}
	var fields []huh.Field
	if addons := app.Catalog.Addons(ctx, ref); len(addons) > 0 {
		fields = append(fields, huh.NewMultiSelect[string]().Title("Addons").
			Options(addonOptions(addons)...).Value(&req.AddonIDs))
	}
	var openingContext, openingStatus string
	if taxonomy.OpeningEligible(ref.Group) {
		fields = append(fields,
			huh.NewSelect[string]().Title("Previous visit").Options(openingContextOptions()...).Value(&openingContext),
			huh.NewSelect[string]().Title("Condition").Options(openingStatusOptions()...).Value(&openingStatus),
		)
	}
	action := pickCompose
	fields = append(fields, huh.NewSelect[string]().Title("Then").Options(
		huh.NewOption("Show note", pickCompose),
		huh.NewOption("Hold for merged note", pickHold),
		huh.NewOption("Print text to copy", pickCopy),
	).Value(&action))
	if err := themed(huh.NewGroup(fields...)).Run(); err != nil {
		return err
	}
	if openingContext != "" {
		req.Opening = &service.Opening{
			Context: soap.OpeningContext(openingContext),
			Status:  soap.OpeningStatus(openingStatus),
		}
	}

	switch action {
	case pickHold:
		res, err := app.Notes.Hold(ctx, app.Note, req)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s #%d %s\n", formatter.StyleGreen.Render("Held"), res.Seq, formatter.Bold(res.Block.TemplateLabel))
		return nil
	case pickCopy:
		res, err := app.Notes.Compose(ctx, app.Note, req)
		if err != nil {
			return err
		}
		text, err := app.Notes.Copy(ctx, app.Note, res.Fields)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		return nil
	default:
		res, err := app.Notes.Compose(ctx, app.Note, req)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, formatter.FormatNote(res.Label, res.Fields))
		return nil
	}
}
