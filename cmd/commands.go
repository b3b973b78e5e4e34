package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"templed/internal/data"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// Replaced in tests
var writeClipboard = clipboard.WriteAll

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List templates with their positions",
	Long: `List all templates in order, numbered from 1.

On a terminal each template is shortened to its first line. When the output
is piped the full text is printed.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var addCmd = &cobra.Command{
	Use:   "add [text]",
	Short: "Add a template at the end of the list",
	Long: `Add a template at the end of the list.

Without an argument the template text is read from standard input.

Examples:
  templed add "Thanks for reaching out!"
  templed add < signature.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAdd,
}

var editCmd = &cobra.Command{
	Use:   "edit <pos> <text>",
	Short: "Replace the text of a template",
	Args:  cobra.ExactArgs(2),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:     "rm <pos>",
	Aliases: []string{"remove"},
	Short:   "Delete a template",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

var moveCmd = &cobra.Command{
	Use:   "move <from> <to>",
	Short: "Move a template to another position",
	Long: `Move a template to another position. The templates in between shift
by one to make room.

Examples:
  templed move 5 1`,
	Args: cobra.ExactArgs(2),
	RunE: runMove,
}

var copyCmd = &cobra.Command{
	Use:   "copy <pos>",
	Short: "Copy a template to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runCopy,
}

var showCmd = &cobra.Command{
	Use:   "show <pos>",
	Short: "Print a template exactly as stored",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var pathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the data directory",
	Args:  cobra.NoArgs,
	RunE:  runPath,
}

func init() {
	rootCmd.AddCommand(listCmd, addCmd, editCmd, rmCmd, moveCmd, copyCmd, showCmd, pathCmd)
}

// templateAt resolves a 1-based position from the command line
func templateAt(s *data.Session, pos string) (data.Template, error) {
	n, err := strconv.Atoi(pos)
	if err != nil {
		return data.Template{}, fmt.Errorf("invalid position %q", pos)
	}
	templates := s.Templates()
	if n < 1 || n > len(templates) {
		return data.Template{}, fmt.Errorf("no template at position %d (%d templates)", n, len(templates))
	}
	return templates[n-1], nil
}

// saved turns a failed write into the command's error. Unlike the editor, a command has no
// later save to fall back on.
func saved(err error) error {
	if errors.Is(err, data.ErrUnavailable) {
		return errors.New("no data directory to save to (use --data-dir)")
	}
	if err != nil {
		return fmt.Errorf("saving templates: %w", err)
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	out := cmd.OutOrStdout()
	width, short := terminalWidth(out)
	if s.Len() == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "No templates.")
		return nil
	}
	for i, t := range s.Templates() {
		label := strconv.Itoa(i+1) + "  "
		text := t.Text
		if short {
			text = firstLine(text, width-len(label))
		}
		fmt.Fprintf(out, "%s%s\n", label, text)
	}
	return nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	var text string
	if len(args) == 1 {
		text = args[0]
	} else {
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("reading template: %w", err)
		}
		text = strings.TrimSuffix(string(raw), "\n")
	}

	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	if _, err := s.Append(text); err != nil {
		return saved(err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added template #%d.\n", s.Len())
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	t, err := templateAt(s, args[0])
	if err != nil {
		return err
	}
	s.UpdateText(t.ID, args[1])
	if err := saved(s.Commit()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Updated template #%s.\n", args[0])
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	t, err := templateAt(s, args[0])
	if err != nil {
		return err
	}
	if err := saved(s.Remove(t.ID)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted template #%s.\n", args[0])
	return nil
}

func runMove(cmd *cobra.Command, args []string) error {
	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	t, err := templateAt(s, args[0])
	if err != nil {
		return err
	}
	// the destination has to name an existing slot too
	dest, err := templateAt(s, args[1])
	if err != nil {
		return err
	}
	to := s.Index(dest.ID)
	if err := saved(s.Move(t.ID, to)); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Moved template #%s to #%d.\n", args[0], to+1)
	return nil
}

func runCopy(cmd *cobra.Command, args []string) error {
	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	t, err := templateAt(s, args[0])
	if err != nil {
		return err
	}
	if err := writeClipboard(t.Text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Copied template #%s to the clipboard.\n", args[0])
	return nil
}

func runShow(cmd *cobra.Command, args []string) error {
	s, _, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	t, err := templateAt(s, args[0])
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), t.Text)
	return nil
}

func runPath(cmd *cobra.Command, args []string) error {
	dir := dataDir()
	if dir == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Unable to locate a place to save data to.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), dir)
	return nil
}

// terminalWidth reports the width of w and whether w is a terminal at all
func terminalWidth(w io.Writer) (int, bool) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0, false
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}
	return width, true
}

// firstLine shortens text to its first line, at most width runes, marking anything cut off
func firstLine(text string, width int) string {
	line, _, multiline := strings.Cut(text, "\n")
	line = strings.TrimRight(line, "\r")
	width = max(width, 8)
	if r := []rune(line); len(r) > width {
		return string(r[:width-1]) + "…"
	}
	if multiline {
		if len([]rune(line))+2 > width {
			return string([]rune(line)[:width-2]) + " …"
		}
		return line + " …"
	}
	return line
}
