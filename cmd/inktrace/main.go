package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	inktrace "github.com/inktrace/inktrace/pkg"
	"github.com/inktrace/inktrace/pkg/config"
	pkgdb "github.com/inktrace/inktrace/pkg/db"
	"github.com/inktrace/inktrace/pkg/logging"
	"github.com/inktrace/inktrace/pkg/utils"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	configDir string
	envFile   string

	settings config.Config
	logData  *logging.LogData
	logger   = zerolog.Nop()
)

// flagKeys maps persistent flag names to config keys.
var flagKeys = map[string]string{
	"db":           config.KeyDB,
	"driver":       config.KeyDriver,
	"journal-mode": config.KeyJournalMode,
	"sync":         config.KeySync,
	"log-level":    config.KeyLogLevel,
	"log-file":     config.KeyLogFile,
}

var rootCmd = &cobra.Command{
	Use:   "inktrace",
	Short: "A local organizer for poems, articles and notes.",
	Long: `inktrace keeps writing pieces, their content types, folders and tags in a
single local SQLite file. It can be driven from the command line, browsed in a
terminal UI, or exposed to AI assistants as an MCP server.`,
	Version:           fmt.Sprintf("v%s", inktrace.Version),
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logData != nil {
			logData.Close()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for inktrace.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(inktrace completion bash)

  Zsh:
    $ inktrace completion zsh > "${fpath[1]}/_inktrace"

  Fish:
    $ inktrace completion fish > ~/.config/fish/completions/inktrace.fish

  PowerShell:
    PS> inktrace completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of inktrace",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), inktrace.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the inktrace database",
}

var dbInitCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"upgrade"},
	Short:   "Create or upgrade the database schema and seed the built-in content types",
	Long: `Opens the SQLite database (creating the file if needed), creates the five
data tables, records the schema version and inserts the six built-in content
types that are not there yet. Running it again changes nothing.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, path, err := openDB(cmd)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		version, err := pkgdb.GetComponentSchemaVersion(cmd.Context(), dbConn, pkgdb.WritingDBComponent)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Database ready: %s (schema v%d, journal mode %s)\n",
			path, version, strings.ToUpper(settings.JournalMode))
		return nil
	},
}

var dbPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the resolved database path",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := utils.ResolveAndEnsureDBPath(settings.DBPath)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

// loadSettings resolves configuration and builds the logger before any
// command runs.
func loadSettings(cmd *cobra.Command, args []string) error {
	v, err := config.New(config.Sources{ConfigDir: configDir, EnvFile: envFile})
	if err != nil {
		return err
	}
	if err := bindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	settings = config.FromViper(v)

	logData, err = logging.New().
		FromPath(settings.LogFile).
		WithLevel(settings.LogLevel).
		Make()
	if err != nil {
		return err
	}
	logger = logData.Logger.With().Str("command", cmd.Name()).Logger()
	return nil
}

// bindFlags lets explicitly set flags override every other config source.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag --%s: %w", name, err)
		}
	}
	return nil
}

// openDB opens the configured database and makes sure its schema is current.
func openDB(cmd *cobra.Command) (*sql.DB, string, error) {
	path, err := utils.ResolveAndEnsureDBPath(settings.DBPath)
	if err != nil {
		return nil, "", err
	}

	dbConn, err := pkgdb.OpenDBConnection(settings.DBOptions(path))
	if err != nil {
		return nil, "", err
	}

	if err := pkgdb.EnsureSchema(cmd.Context(), dbConn, path, logger); err != nil {
		dbConn.Close()
		return nil, "", err
	}
	return dbConn, path, nil
}

func initCmd() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configDir, "config-dir", "", "Directory holding config.yaml (default: the user config dir)")
	flags.StringVar(&envFile, "env-file", ".env", "Optional dotenv file with INKTRACE_* variables")
	flags.String("db", "", "Path to the database file (uses a system-specific default if not provided)")
	flags.String("driver", pkgdb.DriverMattn, "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	flags.String("journal-mode", pkgdb.DefaultJournalMode, "SQLite journal mode (DELETE, TRUNCATE, PERSIST, MEMORY, WAL, OFF)")
	flags.String("sync", pkgdb.DefaultSyncMode, "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-file", "", "Append logs to this file instead of stderr")

	dbCmd.AddCommand(dbInitCmd, dbPathCmd)

	initItemsCmd()
	initTagsCmd()
	initFoldersCmd()
	initTypesCmd()
	rootCmd.AddCommand(completionCmd, versionCmd, dbCmd, itemsCmd, tagsCmd, foldersCmd, typesCmd, mcpCmd)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
