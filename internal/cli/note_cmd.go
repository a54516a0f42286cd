package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/soapnote/internal/cli/formatter"
	"github.com/alexanderramin/soapnote/internal/service"
	"github.com/spf13/cobra"
)

// composeFlags are shared by compose, hold and note.
type composeFlags struct {
	addons  []string
	opening openingFlag
}

func (f *composeFlags) register(cmd *cobra.Command) {
	addAddonFlag(cmd.Flags(), &f.addons)
	cmd.Flags().Var(&f.opening, "opening", "prepend an opening sentence to S, e.g. none:stable")
}

func (f *composeFlags) request(id string) service.ComposeRequest {
	return service.ComposeRequest{Scenario: id, AddonIDs: f.addons, Opening: f.opening.value}
}

func newComposeCmd(app *App) *cobra.Command {
	var (
		flags  composeFlags
		asText bool
	)

	cmd := &cobra.Command{
		Use:   "compose ID",
		Short: "Compose the note of a scenario with the selected addons",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			res, err := app.Notes.Compose(ctx, app.Note, flags.request(args[0]))
			if err != nil {
				return err
			}
			if asText {
				text, err := app.Notes.Copy(ctx, app.Note, res.Fields)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatNote(res.Label, res.Fields))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asText, "copy", false, "print plain text ready to paste")
	return cmd
}

func newHoldCmd(app *App) *cobra.Command {
	var flags composeFlags

	cmd := &cobra.Command{
		Use:   "hold ID",
		Short: "Compose a scenario and keep it for the merged note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Notes.Hold(cmd.Context(), app.Note, flags.request(args[0]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s #%d %s %s\n",
				formatter.StyleGreen.Render("Held"), res.Seq,
				formatter.Bold(res.Block.TemplateLabel), formatter.Dim("("+app.Note+")"))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func newNoteCmd(app *App) *cobra.Command {
	var (
		flags  composeFlags
		asText bool
		list   bool
	)

	cmd := &cobra.Command{
		Use:   "note [ID]",
		Short: "Show the held blocks merged with the current scenario",
		Long: "Merges every held block, in hold order, with the scenario ID when given.\n" +
			"Without ID the last held block is the current one.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			if list {
				held, err := app.Notes.Held(ctx, app.Note)
				if err != nil {
					return err
				}
				fmt.Fprint(out, formatter.FormatHeld(held))
				return nil
			}

			var current *service.ComposeResult
			if len(args) == 1 {
				res, err := app.Notes.Compose(ctx, app.Note, flags.request(args[0]))
				if err != nil {
					return err
				}
				current = res
			}
			merged, err := app.Notes.Merged(ctx, app.Note, current)
			if err != nil {
				return err
			}
			if asText {
				text, err := app.Notes.Copy(ctx, app.Note, merged)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
				return nil
			}
			fmt.Fprintln(out, formatter.FormatNote("Note: "+app.Note, merged))
			return nil
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&asText, "copy", false, "print plain text ready to paste")
	cmd.Flags().BoolVar(&list, "held", false, "list the held blocks instead of merging")
	return cmd
}

func newAmendCmd(app *App) *cobra.Command {
	var req service.AmendRequest

	cmd := &cobra.Command{
		Use:   "amend BLOCK",
		Short: "Edit a held block: take addon text back out or drop its opening line",
		Long:  "BLOCK is the position shown by note --held, or a block id.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(req.DropAddonIDs) == 0 && !req.ClearOpening {
				return errors.New("nothing to amend: pass --drop-addon or --clear-opening")
			}
			b, err := app.Notes.Amend(cmd.Context(), app.Note, args[0], req)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s %s\n",
				formatter.StyleGreen.Render("Amended"), formatter.Bold(b.TemplateLabel), formatter.Dim("("+app.Note+")"))
			fmt.Fprintln(out, formatter.FormatNote(b.TemplateLabel, b.Fields))
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&req.DropAddonIDs, "drop-addon", nil, "addon id whose text to remove (repeatable or comma-separated)")
	cmd.Flags().BoolVar(&req.ClearOpening, "clear-opening", false, "remove the opening line from S")
	return cmd
}

func newResetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Clear the held blocks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := app.Notes.Reset(cmd.Context(), app.Note)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d held block(s) from %s.\n", n, app.Note)
			return nil
		},
	}
}

func newLogCmd(app *App) *cobra.Command {
	var (
		limit int
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent note actions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			note := app.Note
			if all {
				note = ""
			}
			entries, err := app.Notes.History(cmd.Context(), note, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatHistory(entries))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", service.DefaultHistoryLimit, "number of entries")
	cmd.Flags().BoolVar(&all, "all", false, "include every note")
	return cmd
}
