package commands

import (
	"github.com/spf13/cobra"

	"github.com/Astemirdum/book-tracker/books/app"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate [up|down|status|version|redo] [args...]",
	Short: "Run database migrations",
	Long: `Run the embedded goose migrations against the configured database.

Examples:
  books migrate            # same as "books migrate up"
  books migrate status
  books migrate down`,
	ValidArgs: []string{"up", "down", "status", "version", "redo"},
	Args:      cobra.MatchAll(cobra.ArbitraryArgs, validCommand),
	RunE: func(cmd *cobra.Command, args []string) error {
		command := "up"
		if len(args) > 0 {
			command, args = args[0], args[1:]
		}
		return app.Migrate(loadConfig(), command, args...)
	},
}

func validCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	return cobra.OnlyValidArgs(cmd, args[:1])
}
