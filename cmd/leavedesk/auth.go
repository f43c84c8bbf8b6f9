package main

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naveenspark/leavedesk/internal/tui"
	"github.com/naveenspark/leavedesk/pkg/domain"
)

var errNotSignedIn = errors.New("not signed in")

func (a *app) runDashboard() error {
	ui := tui.NewApp(a.svc, tui.Options{APIURL: a.cfg.API.BaseURL, AdminURL: a.cfg.AdminURL})
	p := tea.NewProgram(ui, tea.WithAltScreen(), tea.WithInput(a.in), tea.WithOutput(a.out))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// prompts returns the shared prompter so buffered input survives across
// questions.
func (a *app) prompts(out io.Writer) *prompter {
	if a.prompt == nil {
		a.prompt = newPrompter(a.in, out)
	}
	return a.prompt
}

func (a *app) loginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			var err error
			if email == "" {
				if email, err = a.prompts(out).line("Email: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompts(out).secret("Password: "); err != nil {
					return err
				}
			}
			if email == "" || password == "" {
				return errors.New("email and password are required")
			}

			u, err := check(a.svc.SignIn(cmd.Context(), email, password))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Signed in as %s %s\n", u.Profile().FullName(), tui.RoleBadge(u.UserRole()))
			return nil
		},
	}
	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token and profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			if err := a.svc.SignOut(); err != nil {
				return fmt.Errorf("sign out: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
			return nil
		},
	}
}

func (a *app) whoamiCmd() *cobra.Command {
	var refresh, asJSON bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.setup(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			u := a.svc.Session().Current()
			if refresh || (u == nil && a.svc.HasToken()) {
				var err error
				if u, err = check(a.svc.RefreshProfile(cmd.Context())); err != nil {
					if !a.svc.HasToken() {
						printSignedOut(out)
					}
					return err
				}
			}
			if u == nil {
				printSignedOut(out)
				return errNotSignedIn
			}

			if asJSON {
				data, err := domain.EncodeUser(u)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, string(data))
				return err
			}
			printUser(out, u)
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "reload the profile from the server")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
