package main

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"portfolio-web/internal/contactform"
	"portfolio-web/internal/domain"
	"portfolio-web/internal/uistate"
	"portfolio-web/pkg/logger"

	"github.com/spf13/cobra"
)

func newContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Submit the contact form and manage its saved draft",
	}
	cmd.PersistentFlags().String("storage", "", "Draft file (default: user config dir)")
	cmd.AddCommand(newContactSendCmd(), newContactDraftCmd())
	return cmd
}

func openDraftStore(cmd *cobra.Command) (*uistate.Store, string, error) {
	path, _ := cmd.Flags().GetString("storage")
	if path == "" {
		var err error
		if path, err = uistate.DefaultStoragePath(); err != nil {
			return nil, "", err
		}
	}
	store, err := uistate.New(uistate.NewFilePersister(path))
	if err != nil {
		return nil, "", err
	}
	return store, path, nil
}

func newContactSendCmd() *cobra.Command {
	var (
		baseURL string
		locale  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Update the saved draft with the given fields and submit it once",
		Example: `  portfolioctl contact send --base-url https://example.dev \
    --name "Jane" --email jane@example.com --message "Let's build something"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := domain.ParseLocale(locale)
			if err != nil {
				return err
			}
			msgs, err := messageStore("", logger.Log)
			if err != nil {
				return err
			}
			dict, err := msgs.Load(cmd.Context(), l)
			if err != nil {
				return err
			}
			if dict.Contact == nil {
				return fmt.Errorf("%w: Contact", domain.ErrMissingNamespace)
			}

			store, _, err := openDraftStore(cmd)
			if err != nil {
				return err
			}

			var patch uistate.DraftPatch
			for flag, field := range map[string]**string{
				"name":    &patch.Name,
				"email":   &patch.Email,
				"message": &patch.Message,
			} {
				if cmd.Flags().Changed(flag) {
					v, _ := cmd.Flags().GetString(flag)
					*field = uistate.String(v)
				}
			}
			if err := store.UpdateDraft(patch); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			form := contactform.NewForm(
				store,
				contactform.NewRelayClient(baseURL, &http.Client{}),
				contactform.NotifierFunc(func(t contactform.Toast) {
					fmt.Fprintf(out, "[%s] %s\n", t.Kind, t.Message)
				}),
				*dict.Contact,
				contactform.WithRequestTimeout(timeout),
				contactform.WithLogger(logger.Log),
			)
			defer form.Close()

			res := form.Submit(cmd.Context())
			switch res.Outcome {
			case contactform.OutcomeSucceeded:
				if res.Receipt != nil && res.Receipt.ID != "" {
					fmt.Fprintf(out, "id: %s\n", res.Receipt.ID)
				}
				return nil
			case contactform.OutcomeInvalid:
				fields := make([]string, 0, len(res.FieldErrors))
				for f := range res.FieldErrors {
					fields = append(fields, f)
				}
				sort.Strings(fields)
				for _, f := range fields {
					fmt.Fprintf(out, "%s: %s\n", f, res.FieldErrors[f])
				}
				return errors.New("draft is not valid, nothing was sent")
			default:
				return fmt.Errorf("submission failed (%s): %w", res.Reason, res.Err)
			}
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "http://localhost:8080", "Site serving /api/send")
	cmd.Flags().StringVar(&locale, "locale", string(domain.LocaleEN), "Language of validation and toast messages")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	cmd.Flags().String("name", "", "Sender name")
	cmd.Flags().String("email", "", "Sender email")
	cmd.Flags().String("message", "", "Message body")
	return cmd
}

func newContactDraftCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Inspect or clear the saved draft",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, path, err := openDraftStore(cmd)
			if err != nil {
				return err
			}
			d := store.Draft()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "file:    %s\n", path)
			fmt.Fprintf(out, "name:    %s\n", d.Name)
			fmt.Fprintf(out, "email:   %s\n", d.Email)
			fmt.Fprintf(out, "message: %s\n", d.Message)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Empty the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := openDraftStore(cmd)
			if err != nil {
				return err
			}
			if err := store.ResetDraft(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "draft cleared")
			return nil
		},
	})
	return cmd
}
