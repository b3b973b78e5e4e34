package main

import (
	"fmt"
	"io"
	"os"
	"templed/internal/data"
	"templed/internal/ui"

	"github.com/spf13/cobra"
)

/*

templed - keep a list of reusable text templates and copy them out when needed

With no subcommand the terminal editor starts. The subcommands work on the same list from
scripts and the shell; each one is its own session, so a position always means the position
in the list as it was just read from disk.

*/

var (
	dataDirFlag string
	configFlag  string
	backendFlag string
	themeFlag   string
)

var rootCmd = &cobra.Command{
	Use:   "templed",
	Short: "templed - a small editor for reusable text templates",
	Long: `templed keeps an ordered list of text templates (greetings, replies,
boilerplate) and puts them on the clipboard when you need them.

Run without a subcommand to open the editor. Every change is saved as soon
as it is made.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runEditor,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&dataDirFlag, "data-dir", "", "directory holding the templates (default: the per-user data directory)")
	flags.StringVar(&configFlag, "config", "", "config file to use (default: config.json in the data directory)")
	flags.StringVar(&backendFlag, "backend", "", `storage backend, "json" or "sqlite"`)
	flags.StringVar(&themeFlag, "theme", "", `editor colors, "dark" or "light"`)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// dataDir is --data-dir if given, otherwise the platform data directory, or "" if there is none
func dataDir() string {
	if dataDirFlag != "" {
		return dataDirFlag
	}
	dir, _ := data.DataDirectory(data.HostEnv())
	return dir
}

// loadConfig layers the config file and then the command line flags over the defaults
func loadConfig(dir string) (data.Config, error) {
	path, mustExist := data.ConfigPath(dir), false
	if configFlag != "" {
		path, mustExist = configFlag, true
	}

	cfg, err := data.LoadConfig(path, mustExist)
	if err != nil {
		return data.Config{}, err
	}

	cfg = cfg.Merge(data.Config{Theme: themeFlag, Backend: backendFlag})
	if err := cfg.Validate(); err != nil {
		return data.Config{}, fmt.Errorf("%w: %w", data.ErrConfig, err)
	}
	return cfg, nil
}

// openSession reads the templates from the configured backend. The returned func releases
// the backend and must be called when the command is done.
func openSession() (*data.Session, data.Config, func(), error) {
	dir := dataDir()
	cfg, err := loadConfig(dir)
	if err != nil {
		return nil, data.Config{}, nil, err
	}

	g := cfg.NewGateway(dir)
	s := data.OpenSession(g, data.WithNormalization(cfg.Normalize))
	release := func() {
		if c, ok := g.(io.Closer); ok {
			_ = c.Close()
		}
	}
	return s, cfg, release, nil
}

func runEditor(cmd *cobra.Command, args []string) error {
	s, cfg, release, err := openSession()
	if err != nil {
		return err
	}
	defer release()

	return ui.NewMainWindow(s, cfg.Theme).Init().Run()
}
