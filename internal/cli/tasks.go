package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SyrineLarbi/Daily-planner/internal/app"
	"github.com/SyrineLarbi/Daily-planner/internal/icon"
	"github.com/SyrineLarbi/Daily-planner/internal/render"
	"github.com/SyrineLarbi/Daily-planner/internal/richtext"
	"github.com/SyrineLarbi/Daily-planner/internal/store"
	"github.com/spf13/cobra"
)

// taskFlags are the form fields accepted by add and edit
type taskFlags struct {
	title       string
	description string
	start       string
	end         string
	color       string
	image       string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.description, "description", "d", "", "description in markdown; list items become bullets")
	cmd.Flags().StringVar(&f.start, "start", "", "start time slot, e.g. 09:30")
	cmd.Flags().StringVar(&f.end, "end", "", "end time slot, e.g. 10:00")
	cmd.Flags().StringVar(&f.color, "color", "", "card color, e.g. #ff8800")
	cmd.Flags().StringVar(&f.image, "image", "", "path of an image file used as the card icon")
}

// loadImage reads the --image file into a data URI
func loadImage(cmd *cobra.Command, a *app.App, path string) (string, error) {
	if path == "" {
		return "", nil
	}
	uri, err := a.Icons.Load(cmd.Context(), icon.ExpandHome(path))
	if err != nil {
		if errors.Is(err, icon.ErrNotImage) {
			return "", fmt.Errorf("only image files allowed: %w", err)
		}
		return "", err
	}
	return uri, nil
}

func markdownToHTML(src string) (string, error) {
	if src == "" {
		return "", nil
	}
	html, err := richtext.FromMarkdown(src)
	if err != nil {
		return "", fmt.Errorf("failed to parse description: %w", err)
	}
	return html, nil
}

// parsePosition parses a position argument and checks it against the board
func parsePosition(a *app.App, raw string) (int, error) {
	pos, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid position %q", raw)
	}
	if _, ok := a.Store.Task(pos); !ok {
		return 0, fmt.Errorf("no task at position %d", pos)
	}
	return pos, nil
}

func newAddCmd(opts *globalOptions) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a task to the end of the board",
		Example: `  planner add Breakfast --start 08:00 --end 08:30
  planner add "Groceries" -d "- eggs
- milk" --image ~/icons/cart.png`,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.title = strings.Join(args, " ")
			return opts.withApp(func(a *app.App) error {
				description, err := markdownToHTML(f.description)
				if err != nil {
					return err
				}
				image, err := loadImage(cmd, a, f.image)
				if err != nil {
					return err
				}

				pos, err := a.Store.Create(store.Draft{
					Title:       f.title,
					Description: description,
					Start:       f.start,
					End:         f.end,
					Color:       f.color,
					NewImage:    image,
				})
				if err != nil {
					return err
				}

				task, _ := a.Store.Task(pos)
				fmt.Fprintf(cmd.OutOrStdout(), "Added %q at position %d\n", task.Title, pos)
				return nil
			})
		},
	}
	f.register(cmd)
	return cmd
}

func newEditCmd(opts *globalOptions) *cobra.Command {
	var f taskFlags

	cmd := &cobra.Command{
		Use:   "edit <position>",
		Short: "Edit a task; fields without a flag keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				pos, err := parsePosition(a, args[0])
				if err != nil {
					return err
				}
				prev, _ := a.Store.Task(pos)

				draft := store.Draft{
					Title:       prev.Title,
					Description: prev.Description,
					Start:       prev.Start,
					End:         prev.End,
					Color:       prev.Color,
				}

				changed := cmd.Flags().Changed
				if changed("title") {
					draft.Title = f.title
				}
				if changed("description") {
					if draft.Description, err = markdownToHTML(f.description); err != nil {
						return err
					}
				}
				if changed("start") {
					draft.Start = f.start
				}
				if changed("end") {
					draft.End = f.end
				}
				if changed("color") {
					draft.Color = f.color
				}
				if draft.NewImage, err = loadImage(cmd, a, f.image); err != nil {
					return err
				}

				if err := a.Store.Update(pos, draft); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Updated position %d\n", pos)
				return nil
			})
		},
	}
	f.register(cmd)
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "new title")
	return cmd
}

func newListCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the board",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				printBoard(cmd.OutOrStdout(), render.Board(a.Store.Tasks(), render.NoDrag))
				return printUsage(cmd.OutOrStdout(), a)
			})
		},
	}
}

// printUsage reports how much of the storage quota the board takes
func printUsage(w io.Writer, a *app.App) error {
	used, err := a.Backend.Usage()
	if err != nil {
		return fmt.Errorf("failed to read storage usage: %w", err)
	}
	if quota := a.Config.QuotaBytes; quota > 0 {
		fmt.Fprintf(w, "Storage: %d of %d bytes used (%d%%)\n", used, quota, used*100/quota)
		return nil
	}
	fmt.Fprintf(w, "Storage: %d bytes used\n", used)
	return nil
}

func printBoard(w io.Writer, cards []render.Card) {
	if len(cards) == 0 {
		fmt.Fprintln(w, "No tasks yet.")
		return
	}
	for _, card := range cards {
		check := " "
		if card.Completed {
			check = "x"
		}
		fmt.Fprintf(w, "%2d [%s] %s", card.Position, check, card.Title)
		if card.Start != "" || card.End != "" {
			fmt.Fprintf(w, "  %s", card.TimeRange)
		}
		if card.CustomImage {
			fmt.Fprint(w, "  (icon)")
		}
		fmt.Fprintln(w)
		for _, line := range card.Lines {
			fmt.Fprintf(w, "       %s\n", line)
		}
	}
}

func newRmCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "rm <position>",
		Aliases: []string{"delete"},
		Short:   "Delete a task after confirmation",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				pos, err := parsePosition(a, args[0])
				if err != nil {
					return err
				}

				var confirmer store.Confirmer = store.Answer(true)
				if !yes {
					confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
				}

				deleted, err := a.Store.Delete(pos, confirmer)
				if err != nil {
					return err
				}
				if deleted {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted position %d\n", pos)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept the task")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

func newClearCmd(opts *globalOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every task after confirmation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				var confirmer store.Confirmer = store.Answer(true)
				if !yes {
					confirmer = promptConfirmer(cmd.InOrStdin(), cmd.OutOrStdout())
				}

				count := a.Store.Len()
				cleared, err := a.Store.Clear(confirmer)
				if err != nil {
					return err
				}
				if cleared {
					fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d tasks\n", count)
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Kept the board")
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

// promptConfirmer asks on out and accepts y or yes read from in
func promptConfirmer(in io.Reader, out io.Writer) store.Confirmer {
	return store.ConfirmFunc(func(prompt string) bool {
		fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, _ := bufio.NewReader(in).ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		default:
			return false
		}
	})
}

func newMoveCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "move <a> <b>",
		Short: "Swap the tasks at two positions",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				from, err := parsePosition(a, args[0])
				if err != nil {
					return err
				}
				to, err := parsePosition(a, args[1])
				if err != nil {
					return err
				}
				if err := a.Store.Reorder(from, to); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Swapped positions %d and %d\n", from, to)
				return nil
			})
		},
	}
}

func newDoneCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <position>",
		Short: "Toggle a task's completed mark",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withApp(func(a *app.App) error {
				pos, err := parsePosition(a, args[0])
				if err != nil {
					return err
				}
				if err := a.Store.ToggleCompleted(pos); err != nil {
					return err
				}

				task, _ := a.Store.Task(pos)
				state := "not done"
				if task.Completed {
					state = "done"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Marked %q %s\n", task.Title, state)
				return nil
			})
		},
	}
}
