package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Arohance-KV/RoopJewelersAdmin/internal/models"
)

func readPassword(flagValue string, fromStdin bool, in io.Reader) (string, error) {
	if !fromStdin {
		if flagValue == "" {
			flagValue = os.Getenv("ROOPADMIN_PASSWORD")
		}
		if flagValue == "" {
			return "", errors.New("password required: use --password-stdin or ROOPADMIN_PASSWORD")
		}
		return flagValue, nil
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return "", errors.New("empty password on stdin")
	}
	return line, nil
}

func newLoginCommand(rt *runtime) *cobra.Command {
	var (
		email, password string
		passwordStdin   bool
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for later commands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(password, passwordStdin, cmd.InOrStdin())
			if err != nil {
				return err
			}
			if err := rt.load(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Session.Login(cmd.Context(), models.Credentials{Email: email, Password: pw}); err != nil {
				return storeError(err, rt.app.Session.State().Error)
			}
			return rt.printSession()
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password (prefer --password-stdin)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newSignupCommand(rt *runtime) *cobra.Command {
	var (
		reg           models.Registration
		passwordStdin bool
	)
	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Register a new admin account and sign in",
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(reg.Password, passwordStdin, cmd.InOrStdin())
			if err != nil {
				return err
			}
			reg.Password = pw
			if err := rt.load(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Session.Signup(cmd.Context(), reg); err != nil {
				return storeError(err, rt.app.Session.State().Error)
			}
			return rt.printSession()
		},
	}
	f := cmd.Flags()
	f.StringVar(&reg.FirstName, "first-name", "", "first name")
	f.StringVar(&reg.LastName, "last-name", "", "last name")
	f.StringVar(&reg.Email, "email", "", "email")
	f.StringVar(&reg.MobileNumber, "mobile", "", "mobile number")
	f.StringVar(&reg.Password, "password", "", "password (prefer --password-stdin)")
	f.BoolVar(&passwordStdin, "password-stdin", false, "read the password from stdin")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.load(cmd.Context()); err != nil {
				return err
			}
			if err := rt.app.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(rt.out, "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in admin",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := rt.authenticated(cmd.Context()); err != nil {
				return err
			}
			if rt.jsonOut {
				return rt.printJSON(rt.app.Session.State())
			}
			if err := rt.printSession(); err != nil {
				return err
			}
			claims, err := rt.app.Session.Claims()
			if err != nil {
				return nil
			}
			if left, ok := claims.ExpiresIn(time.Now()); ok {
				fmt.Fprintf(rt.out, "Token expires in %s\n", left.Round(time.Minute))
			}
			return nil
		},
	}
}

func (rt *runtime) printSession() error {
	state := rt.app.Session.State()
	if rt.jsonOut {
		return rt.printJSON(state)
	}
	if state.Profile == nil {
		fmt.Fprintln(rt.out, "Signed in.")
		return nil
	}
	p := state.Profile
	fmt.Fprintf(rt.out, "Signed in as %s %s <%s>\n", p.FirstName, p.LastName, p.Email)
	return nil
}
