package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/Astemirdum/book-tracker/books/app"
	"github.com/Astemirdum/book-tracker/books/config"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "books",
	Short: "Personal book tracking API",
	Long: `books serves a REST API where users register, log in with a bearer token
and keep their own reading list.

Without a subcommand it behaves like "books serve".`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(loadConfig())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Apply pending migrations and start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(loadConfig())
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging unless LOG_LEVEL is set")
	rootCmd.AddCommand(serveCmd, migrateCmd)
}

func loadConfig() *config.Config {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	return config.NewConfig(
		config.WithLogLevel(level),
		config.WithWriteTimeout(time.Minute),
	)
}
