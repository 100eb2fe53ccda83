package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/cli/formatter"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/service"
	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in to the company selected on this device",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				if !app.interactive() {
					return fmt.Errorf("--email and --password are required when not running in a terminal")
				}
				if err := loginForm(&email, &password).Run(); err != nil {
					return err
				}
			}

			sess, err := app.Auth.Login(cmd.Context(), form.Login{Email: email, Password: password})
			if err != nil {
				return loginError(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Signed in as %s\n",
				formatter.StyleGreen.Render("✔"),
				formatter.Bold(sess.User.DisplayName()))
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")

	return cmd
}

// loginError turns a failed sign-in into the message shown to the user.
func loginError(err error) error {
	switch {
	case errors.Is(err, service.ErrNoCompany):
		return fmt.Errorf("%w: run 'planpin company set <id>' first", err)
	case errors.Is(err, api.ErrUnavailable), errors.Is(err, api.ErrTimeout):
		return err
	}
	var fe form.FieldErrors
	if errors.As(err, &fe) {
		return err
	}
	return errors.New(api.Message(err))
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Auth.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func newCompanyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "company",
		Short: "Choose the company this device signs in to",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <company-id>",
			Short: "Select a company",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Auth.SetCompany(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Company set to %s\n", formatter.Bold(args[0]))
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the selected company and signed-in user",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				ctx := cmd.Context()
				company, err := app.Auth.Company(ctx)
				if err != nil && !errors.Is(err, service.ErrNoCompany) {
					return err
				}
				sess, err := app.Auth.CurrentSession(ctx)
				if err != nil && !errors.Is(err, service.ErrNotLoggedIn) {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSession(sess, company))
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Forget the company and sign out",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := app.Auth.ClearCompany(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Company cleared. Select a company to sign in again.")
				return nil
			},
		},
	)

	return cmd
}
