package main

import (
	"fmt"
	"os"
	"path/filepath"

	"portfolio-web/config"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/routing"
	"portfolio-web/internal/usecase"
	"portfolio-web/internal/view"
	"portfolio-web/pkg/logger"

	"github.com/spf13/cobra"
)

func newPageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "page",
		Short: "Render the site as a browser session sees it",
	}
	cmd.PersistentFlags().String("storage", "", "Draft file (default: user config dir)")

	var (
		out      string
		siteFile string
		locales  []string
	)
	render := &cobra.Command{
		Use:   "render",
		Short: "Write <out>/<locale>.html for each locale, in order, within one session",
		Long: `Renders the home page of each locale with the saved contact draft filled in.
The locales are rendered as one session switching language, so only the first
page plays the hero entrance.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			site, err := config.LoadSite(siteFile)
			if err != nil {
				return err
			}
			msgs, err := messageStore("", logger.Log)
			if err != nil {
				return err
			}
			registry, err := domain.NewLocaleRegistry(domain.AllLocales(), domain.LocaleEN, domain.PrefixAlways)
			if err != nil {
				return err
			}
			pages := usecase.NewPageUsecase(msgs, routing.NewResolver(registry), site)

			renderer, err := view.New()
			if err != nil {
				return err
			}
			store, _, err := openDraftStore(cmd)
			if err != nil {
				return err
			}

			if len(locales) == 0 {
				for _, l := range registry.Locales() {
					locales = append(locales, string(l))
				}
			}
			if err := os.MkdirAll(out, 0o755); err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, code := range locales {
				l, err := domain.ParseLocale(code)
				if err != nil {
					return err
				}
				page, err := pages.Compose(cmd.Context(), l)
				if err != nil {
					return err
				}

				client := view.ClientState{
					AnimateHero: store.MarkHeroAnimated(),
					Draft:       store.Draft(),
				}
				path := filepath.Join(out, code+".html")
				f, err := os.Create(path)
				if err != nil {
					return err
				}
				err = renderer.RenderPageFor(f, page, client)
				if cerr := f.Close(); err == nil {
					err = cerr
				}
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				fmt.Fprintf(w, "%s (hero animated: %t)\n", path, client.AnimateHero)
			}
			return nil
		},
	}
	render.Flags().StringVar(&out, "out", "dist", "Output directory")
	render.Flags().StringVar(&siteFile, "site", "", "Site profile (default: embedded)")
	render.Flags().StringSliceVar(&locales, "locale", nil, "Locales to render, in order (default: all)")

	cmd.AddCommand(render)
	return cmd
}
