package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/idilsaglam/todos/internal/model"
	"github.com/idilsaglam/todos/internal/todo"
	"github.com/idilsaglam/todos/internal/ui"
)

func newAddCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add <title...>",
		Short: "Add a new item (title can be multiple words)",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := cleanTitle(app, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				if _, err := list.Create(ctx, todo.Attributes{Title: title}); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "added")
				return nil
			})
		},
	}
}

func newListCmd(app *App) *cobra.Command {
	var group bool
	var format string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				recs := records(list.Items())
				out := cmd.OutOrStdout()
				switch format {
				case "json":
					b, err := json.MarshalIndent(recs, "", "  ")
					if err != nil {
						return fmt.Errorf("json marshal: %w", err)
					}
					fmt.Fprintln(out, string(b))
				case "yaml":
					b, err := yaml.Marshal(recs)
					if err != nil {
						return fmt.Errorf("yaml marshal: %w", err)
					}
					fmt.Fprint(out, string(b))
				case "text":
					ui.Panel(out, listLines(list, group))
				default:
					return usagef("unknown format %q (want text|json|yaml)", format)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&group, "group", false, "Group output by pending/done")
	cmd.Flags().StringVar(&format, "format", envOr("TODOS_FORMAT", "text"), "Output format (text|json|yaml)")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <index>",
		Short: "Toggle done for item at 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				it, err := itemAt(list, args[0])
				if err != nil {
					return err
				}
				if err := it.SetDone(ctx, !it.Done()); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "toggled")
				return nil
			})
		},
	}
}

func newRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <index>",
		Short: "Remove item at 1-based index",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				it, err := itemAt(list, args[0])
				if err != nil {
					return err
				}
				if err := it.Destroy(ctx); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "removed")
				return nil
			})
		},
	}
}

func newEditCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <index> <title...>",
		Short: "Change the title of the item at 1-based index",
		Args:  usageArgs(cobra.MinimumNArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			title, err := cleanTitle(app, strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				it, err := itemAt(list, args[0])
				if err != nil {
					return err
				}
				if err := it.SetTitle(ctx, title); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), "updated")
				return nil
			})
		},
	}
}

func newToggleAllCmd(app *App) *cobra.Command {
	var undo bool
	cmd := &cobra.Command{
		Use:   "toggle-all",
		Short: "Mark every item done (or not done with --undo)",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				if err := list.ToggleAll(ctx, !undo); err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("%d %s left", len(list.Remaining()), ui.Plural(len(list.Remaining()), "item", "items")))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&undo, "undo", false, "Mark every item as not done")
	return cmd
}

func newClearCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every completed item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withList(cmd, app, func(ctx context.Context, list *todo.List) error {
				n, err := list.ClearCompleted(ctx)
				if err != nil {
					return err
				}
				ui.OK(cmd.OutOrStdout(), fmt.Sprintf("cleared %d completed %s", n, ui.Plural(n, "item", "items")))
				return nil
			})
		},
	}
}

// cleanTitle trims and checks a title given on the command line.
func cleanTitle(app *App, raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", usagef("empty title")
	}
	if n := len([]rune(title)); n > app.cfg.MaxTitleLength {
		return "", usagef("title too long: %d characters (max %d)", n, app.cfg.MaxTitleLength)
	}
	return title, nil
}

func records(items []*todo.Item) []model.Item {
	out := make([]model.Item, 0, len(items))
	for _, it := range items {
		out = append(out, it.Record())
	}
	return out
}

// -------------- rendering helpers --------------

func listLines(list *todo.List, group bool) []string {
	t := ui.Current()
	d, p := len(list.Done()), len(list.Remaining())
	header := fmt.Sprintf("%s  %s %d  %s %d  %s %d",
		t.Title.Render("Todos"),
		t.Success.Render(t.SymDone), d,
		t.Pending.Render(t.SymPending), p,
		t.Accent.Render("Total"), list.Len(),
	)

	var lines []string
	lines = append(lines, header)
	lines = append(lines, t.Muted.Render(ui.ProgressBar(d, d+p, 28)))
	lines = append(lines, "")

	if group {
		lines = append(lines, groupLines(list)...)
	} else {
		lines = append(lines, flatLines(list.Items(), indexes(list))...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Muted.Render("Tip: add with `todos add \"Buy milk\"`"))
	return lines
}

// indexes maps item ids to their 1-based position in the whole list, so
// grouped output still shows the index `done`/`rm` expect.
func indexes(list *todo.List) map[string]int {
	out := map[string]int{}
	for i, it := range list.Items() {
		out[it.ID()] = i + 1
	}
	return out
}

func flatLines(items []*todo.Item, idx map[string]int) []string {
	t := ui.Current()
	if len(items) == 0 {
		return []string{t.Muted.Render("no items")}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		box := t.Muted.Render(t.BoxUnchecked)
		if it.Done() {
			box = t.Success.Render(t.BoxChecked)
		}
		title := it.Title()
		if r := []rune(title); len(r) > 80 {
			title = string(r[:77]) + "..."
		}
		out = append(out, fmt.Sprintf("%s %s %s",
			t.Muted.Render(fmt.Sprintf("%2d.", idx[it.ID()])), box, title))
	}
	return out
}

func groupLines(list *todo.List) []string {
	t := ui.Current()
	idx := indexes(list)
	var lines []string
	lines = append(lines, t.Accent.Render("Pending"))
	if pend := list.Remaining(); len(pend) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(pend, idx)...)
	}
	lines = append(lines, "")
	lines = append(lines, t.Accent.Render("Done"))
	if done := list.Done(); len(done) == 0 {
		lines = append(lines, t.Muted.Render("(none)"))
	} else {
		lines = append(lines, flatLines(done, idx)...)
	}
	return lines
}
