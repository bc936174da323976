package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/tablegrid/internal/app"
)

// envPrefix prefixes the environment variables bound to every flag, as in
// TABLEGRID_LOG_LEVEL.
const envPrefix = "TABLEGRID"

func newRootCmd(run func(context.Context, app.Options) error) *cobra.Command {
	v := viper.New()
	cmd := &cobra.Command{
		Use:   "tablegrid [model.json|model.yaml]",
		Short: "Interactive data grid for the terminal",
		Long: `tablegrid shows a table model in an interactive grid: sort, filter,
search, freeze and reorder columns, highlight values and copy selections.

The model comes from a JSON or YAML file, a SQLite query (--sqlite with
--query) or a kernel bridge (--kernel). Files and databases are reloaded
when they change.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := optionsFrom(v)
			if len(args) == 1 {
				opts.ModelPath = args[0]
			}
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.String("config", "", "config file (default ~/.config/tablegrid/config.toml)")
	flags.String("prefs", "", "prefs file (default ~/.config/tablegrid/prefs.toml)")
	flags.String("sqlite", "", "SQLite database to query")
	flags.String("query", "", "SQL query whose result is the model (with --sqlite)")
	flags.String("kernel", "", "kernel bridge base URL, e.g. http://127.0.0.1:8888")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.Duration("poll", 0, "model file watch interval (default from config, 2s)")
	flags.Bool("dump", false, "print the grid as a text table and exit")

	_ = v.BindPFlags(flags)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return cmd
}

func optionsFrom(v *viper.Viper) app.Options {
	return app.Options{
		ConfigPath: v.GetString("config"),
		PrefsPath:  v.GetString("prefs"),
		SQLitePath: v.GetString("sqlite"),
		Query:      v.GetString("query"),
		KernelURL:  v.GetString("kernel"),
		LogLevel:   v.GetString("log-level"),
		PollEvery:  v.GetDuration("poll"),
		Dump:       v.GetBool("dump"),
	}
}
