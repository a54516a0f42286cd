package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/soapnote/internal/cli/formatter"
	"github.com/alexanderramin/soapnote/internal/taxonomy"
	"github.com/spf13/cobra"
)

// ErrInvalidModules is returned by validate when any record has defects.
var ErrInvalidModules = errors.New("modules have invalid records")

func newGroupsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "groups",
		Short: "Show the menu groups and their scenario counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGroups(app.Catalog.Counts(cmd.Context())))
			return nil
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list GROUP",
		Short: "List the scenarios of one menu group",
		Long:  "GROUP is a group key such as side_effects_present, or its label.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, ok := taxonomy.ParseMenuGroup(args[0])
			if !ok {
				keys := make([]string, len(taxonomy.Order))
				for i, o := range taxonomy.Order {
					keys[i] = string(o)
				}
				return fmt.Errorf("unknown group %q (want one of %s)", args[0], strings.Join(keys, ", "))
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatScenarioList(g, app.Catalog.List(cmd.Context(), g)))
			return nil
		},
	}
}

func newShowCmd(app *App) *cobra.Command {
	var addons []string

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a scenario, its classification and its addons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ref, err := app.Catalog.Scenario(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			sc := ref.Scenario

			fmt.Fprintf(out, "%s  %s\n\n", formatter.Bold(taxonomy.DisplayTitle(sc.Title, ref.Group)), formatter.GroupChip(ref.Group))
			fmt.Fprintf(out, "  %s  %s\n", formatter.Dim("ID      "), ref.Key())
			fmt.Fprintf(out, "  %s  %s\n", formatter.Dim("MODULE  "), ref.Module.Title)
			if sc.LegacyType != "" {
				fmt.Fprintf(out, "  %s  %s\n", formatter.Dim("TYPE    "), sc.LegacyType)
			} else {
				fmt.Fprintf(out, "  %s  %s / %s\n", formatter.Dim("TYPE    "), sc.ScenarioType, sc.ScenarioGroup)
				fmt.Fprintf(out, "  %s  %s\n", formatter.Dim("SIDE EFF"), sc.SideEffectPresence)
			}
			if taxonomy.OpeningEligible(ref.Group) {
				fmt.Fprintf(out, "  %s  %s\n", formatter.Dim("OPENING "), "available (--opening)")
			}
			fmt.Fprintln(out)

			selected := make(map[string]bool, len(addons))
			for _, id := range addons {
				selected[id] = true
			}
			if list := formatter.FormatAddons(app.Catalog.Addons(ctx, ref), selected); list != "" {
				fmt.Fprintln(out, list)
			}
			fmt.Fprintln(out, formatter.FormatNote(sc.Title, sc.Fields))
			return nil
		},
	}
	addAddonFlag(cmd.Flags(), &addons)
	return cmd
}

func newValidateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report data-integrity defects in the loaded modules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			reports := app.Catalog.Reports(ctx)
			mismatches := app.Catalog.Audit(ctx)
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReports(reports))
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatAudit(mismatches))
			if len(mismatches) > 0 {
				return ErrInvalidModules
			}
			for _, r := range reports {
				if !r.Valid() {
					return ErrInvalidModules
				}
			}
			return nil
		},
	}
}
