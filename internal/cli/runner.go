package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/shortlist/internal/prefs"
	"github.com/Makepad-fr/shortlist/internal/store"
	"github.com/Makepad-fr/shortlist/internal/tui"
	"github.com/Makepad-fr/shortlist/internal/ui"
)

// Version is set during build with -ldflags
var Version = "dev"

// usageError marks failures caused by how the command was invoked.
type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}

func usageArgs(check cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := check(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// Run executes one command line and returns an exit code
// (0 ok, 1 error, 2 usage).
func Run(args []string, in io.Reader, out, errOut io.Writer) int {
	ui.SetOutput(out, errOut)

	var a *app
	root := newRootCommand(&a)
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	err := root.Execute()
	if a != nil {
		if cerr := a.close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err == nil {
		return 0
	}
	ui.Fail(err.Error())
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(errOut, "Run 'shortlist --help' for usage.")
		return 2
	}
	return 1
}

func newRootCommand(a **app) *cobra.Command {
	var opt Options

	// Each subcommand opens the app; the TUI keeps stdout/stderr for itself.
	setup := func(logFallback string) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			var err error
			*a, err = open(opt, logFallback)
			return err
		}
	}

	root := &cobra.Command{
		Use:   "shortlist",
		Short: "Keep a short, ordered list of things",
		Long: `Shortlist keeps a short ordered list of text items on your machine.

Run without a subcommand to open the interactive list.`,
		Args:          usageArgs(cobra.NoArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE:       setup(""),
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run((*a).store, (*a).prefs, tui.WithLogger((*a).logger))
		},
	}
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return usageError{err}
	})

	pf := root.PersistentFlags()
	pf.StringVar(&opt.ConfigPath, "config", "", "config file (default ~/.shortlist/config.yaml)")
	pf.StringVar(&opt.DataPath, "data", "", "data file or database path")
	pf.StringVar(&opt.Driver, "driver", "", "storage driver: json, sqlite or memory")
	pf.BoolVarP(&opt.Verbose, "verbose", "v", false, "debug logging")
	pf.BoolVar(&opt.NoColor, "no-color", false, "disable colors")

	subcommands := []*cobra.Command{
		newAddCommand(a),
		newListCommand(a),
		newRemoveCommand(a),
		newMoveCommand(a),
		newClearCommand(a),
		newThemeCommand(a),
		newAccentCommand(a),
	}
	for _, c := range subcommands {
		c.PreRunE = setup("stderr")
		root.AddCommand(c)
	}
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  usageArgs(cobra.NoArgs),
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "shortlist version %s\n", Version)
		},
	})
	return root
}

func newAddCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:     "add <text...>",
		Short:   "Add an item to the top of the list",
		Example: `  shortlist add "Buy milk"`,
		Args:    usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := (*a).store
			before := s.Len()
			if err := s.Add(strings.Join(args, " ")); err != nil {
				return err
			}
			if s.Len() == before {
				ui.Info("nothing added: text is blank")
				return nil
			}
			ui.OK("added")
			return nil
		},
	}
}

func newListCommand(a **app) *cobra.Command {
	var filter string
	var showIDs bool
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := (*a).store
			s.SetFilter(filter)
			ui.Panel(cmd.OutOrStdout(), listLines(s, showIDs))
			return nil
		},
	}
	cmd.Flags().StringVarP(&filter, "filter", "f", "", "only show items containing this text (case-insensitive)")
	cmd.Flags().BoolVar(&showIDs, "ids", false, "show item ids")
	return cmd
}

func newRemoveCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <position|id>",
		Aliases: []string{"delete"},
		Short:   "Remove an item",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := (*a).store
			it, ok := s.Resolve(args[0])
			if !ok {
				notFound(args[0])
				return nil
			}
			if err := s.Delete(it.ID); err != nil {
				return err
			}
			ui.OK("removed " + it.Text)
			return nil
		},
	}
}

func newMoveCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:     "mv <position|id> <up|down>",
		Aliases: []string{"move"},
		Short:   "Move an item one place up or down",
		Args:    usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, ok := store.ParseDirection(args[1])
			if !ok {
				return usagef("mv: direction must be up or down, got %q", args[1])
			}
			s := (*a).store
			it, ok := s.Resolve(args[0])
			if !ok {
				notFound(args[0])
				return nil
			}
			before := position(s, it.ID)
			if err := s.Move(it.ID, dir); err != nil {
				return err
			}
			if position(s, it.ID) == before {
				edge := "top"
				if dir == store.Down {
					edge = "bottom"
				}
				ui.Info(fmt.Sprintf("%s is already at the %s", it.Text, edge))
				return nil
			}
			ui.OK(fmt.Sprintf("moved %s %s", it.Text, dir))
			return nil
		},
	}
}

func newClearCommand(a **app) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every item",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := (*a).store
			if s.Len() == 0 {
				ui.Info("the list is already empty")
				return nil
			}
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("Delete all %d items?", s.Len())) {
				ui.Info("kept everything")
				return nil
			}
			if err := s.ClearAll(); err != nil {
				return err
			}
			ui.OK("cleared")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func newThemeCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [light|dark|toggle]",
		Short:     "Show or set the color theme",
		Args:      usageArgs(cobra.MaximumNArgs(1)),
		ValidArgs: []string{prefs.ThemeLight, prefs.ThemeDark, "toggle"},
		RunE: func(cmd *cobra.Command, args []string) error {
			p := (*a).prefs
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), p.Theme())
				return nil
			}
			var err error
			switch strings.ToLower(args[0]) {
			case prefs.ThemeLight:
				err = p.SetTheme(true)
			case prefs.ThemeDark:
				err = p.SetTheme(false)
			case "toggle":
				err = p.ToggleTheme()
			default:
				return usagef("theme: want light, dark or toggle, got %q", args[0])
			}
			if err != nil {
				return err
			}
			ui.OK("theme " + p.Theme())
			return nil
		},
	}
}

func newAccentCommand(a **app) *cobra.Command {
	return &cobra.Command{
		Use:   "accent [hue]",
		Short: "Show or set the accent hue (0-360)",
		Args:  usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := (*a).prefs
			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), p.Accent())
				return nil
			}
			if _, ok := prefs.ParseHue(args[0]); !ok {
				return usagef("accent: not a number: %s", args[0])
			}
			if err := p.SetAccent(args[0]); err != nil {
				return err
			}
			ui.OK("accent " + ui.AccentStyle().Render("■") + " " + p.Accent())
			return nil
		},
	}
}

// -------------- helpers --------------

func notFound(ref string) {
	ui.Info(fmt.Sprintf("no item matches %q; run `shortlist ls` to see positions", ref))
}

func position(s *store.Store, id string) int {
	for i, it := range s.Items() {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

const maxTextWidth = 72

func listLines(s *store.Store, showIDs bool) []string {
	t := ui.Current()
	visible := s.VisibleItems()

	counts := fmt.Sprintf("%d items", s.Len())
	if s.Filter() != "" {
		counts = fmt.Sprintf("%d of %d items matching %q", len(visible), s.Len(), s.Filter())
	}
	lines := []string{
		ui.TitleStyle().Render("Shortlist") + "  " + ui.MutedStyle().Render(counts),
		"",
	}

	if len(visible) == 0 {
		empty := t.Empty
		if s.Filter() != "" {
			empty = fmt.Sprintf("No items match %q.", s.Filter())
		}
		lines = append(lines, ui.MutedStyle().Render(empty))
	}

	// Positions refer to the full list so they stay valid for rm/mv.
	pos := make(map[string]int, s.Len())
	for i, it := range s.Items() {
		pos[it.ID] = i + 1
	}
	for _, it := range visible {
		line := fmt.Sprintf("%s %s %s",
			ui.MutedStyle().Render(fmt.Sprintf("%2d.", pos[it.ID])),
			ui.AccentStyle().Render(t.Bullet),
			ui.TextStyle().Render(ui.Truncate(it.Text, maxTextWidth)))
		if showIDs {
			line += "  " + ui.MutedStyle().Render(it.ID)
		}
		lines = append(lines, line)
	}

	lines = append(lines, "", ui.MutedStyle().Render("Tip: add with `shortlist add \"Buy milk\"`"))
	return lines
}
