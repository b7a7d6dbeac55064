package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"starstream/internal/identity"
	"starstream/internal/ui"
)

var (
	flagEmail    string
	flagUsername string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in",
	Args:  cobra.NoArgs,
	RunE:  loginRun,
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and sign in",
	Args:  cobra.NoArgs,
	RunE:  registerRun,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out, keeping your saved data",
	Args:  cobra.NoArgs,
	RunE:  logoutRun,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in user",
	Args:  cobra.NoArgs,
	RunE:  whoamiRun,
}

func init() {
	for _, c := range []*cobra.Command{loginCmd, registerCmd} {
		c.Flags().StringVar(&flagEmail, "email", "", "Account email")
	}
	registerCmd.Flags().StringVar(&flagUsername, "username", "", "Display name")

	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

// promptIfEmpty fills an empty value from stdin.
func promptIfEmpty(value, prompt string) (string, error) {
	if value != "" {
		return value, nil
	}
	return ui.Prompt(prompt)
}

func loginRun(cmd *cobra.Command, args []string) error {
	email, err := promptIfEmpty(flagEmail, "Email")
	if err != nil {
		return err
	}
	password, err := ui.Password("Password")
	if err != nil {
		return err
	}

	return withApp(cmd.Context(), func(a *app) error {
		res, err := a.identity.Login(cmd.Context(), email, password)
		if err != nil {
			return authError(err)
		}
		debugf("signed in as %s (%s), redirect %s", res.Identity.Username, res.Identity.ID, res.Redirect)
		return nil
	})
}

func registerRun(cmd *cobra.Command, args []string) error {
	username, err := promptIfEmpty(flagUsername, "Username")
	if err != nil {
		return err
	}
	email, err := promptIfEmpty(flagEmail, "Email")
	if err != nil {
		return err
	}
	password, err := ui.Password("Password")
	if err != nil {
		return err
	}
	confirm, err := ui.Password("Confirm password")
	if err != nil {
		return err
	}
	if password != confirm {
		return fmt.Errorf("passwords do not match")
	}

	return withApp(cmd.Context(), func(a *app) error {
		res, err := a.identity.Register(cmd.Context(), username, email, password)
		if err != nil {
			return authError(err)
		}
		debugf("registered %s (%s)", res.Identity.Username, res.Identity.ID)
		return nil
	})
}

func logoutRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		if a.who() == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		_, err := a.identity.Logout(cmd.Context())
		return err
	})
}

func whoamiRun(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		who := a.who()
		if who == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", who.Username, who.Email)
		return nil
	})
}

// authError turns expected identity failures into short messages.
func authError(err error) error {
	switch {
	case errors.Is(err, identity.ErrInvalidCredentials):
		return fmt.Errorf("invalid email or password")
	case errors.Is(err, identity.ErrEmailAlreadyUsed):
		return fmt.Errorf("an account with this email already exists")
	default:
		return err
	}
}
