// Command portfolioctl is the operator tool of the portfolio site: it submits
// the contact form from a terminal, checks the message files and prepares images.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"portfolio-web/internal/domain"
	"portfolio-web/internal/i18n"
	"portfolio-web/pkg/logger"

	"github.com/spf13/cobra"
)

var verbose bool

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Operate the portfolio site from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			logger.Log = logger.New(cmd.ErrOrStderr(), level)
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to stderr")

	root.AddCommand(newContactCmd(), newMessagesCmd(), newImagesCmd(), newPageCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// messageStore builds the store over the embedded message files, or the
// <locale>.json files in dir when dir is set.
func messageStore(dir string, log *slog.Logger) (*i18n.Store, error) {
	registry, err := domain.NewLocaleRegistry(domain.AllLocales(), domain.LocaleEN, domain.PrefixAlways)
	if err != nil {
		return nil, err
	}
	loaders := i18n.EmbeddedLoaders()
	if dir != "" {
		loaders = i18n.FSLoaders(os.DirFS(dir))
	}
	return i18n.NewStore(registry, loaders, log), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
