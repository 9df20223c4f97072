package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	domainauth "github.com/mcsa-hvr/circuit1021/internal/domain/auth"
	"github.com/mcsa-hvr/circuit1021/internal/domain/model"
)

func newLoginCmd(a *app) *cobra.Command {
	var username, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the bearer token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if strings.TrimSpace(username) == "" {
				if username, err = a.prompt("Username: "); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}
			if strings.TrimSpace(username) == "" || password == "" {
				return errors.New("username and password are required")
			}

			res := a.ws.Session.Login(cmd.Context(), strings.TrimSpace(username), password)
			if !res.Success {
				return errors.New(res.Error)
			}
			user := a.ws.Session.User()
			return writef(a.out, "Logged in as %s (%s)\n", user.FullName, user.Role.Label())
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "account username (prompted when omitted)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.ws.Session.Logout(cmd.Context()); err != nil {
				return fmt.Errorf("logout: %w", err)
			}
			return writeln(a.out, "Logged out")
		},
	}
}

func newWhoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, err := a.requireLogin(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOutput() {
				return a.printJSON(user)
			}
			tw := a.table()
			rows := [][2]string{
				{"Username", user.Username},
				{"Name", user.FullName},
				{"Role", user.Role.Label()},
				{"Society", societyLabel(user.Society)},
				{"Organization", organizationLabel(user.Organization)},
			}
			for _, row := range rows {
				if err := writef(tw, "%s\t%s\n", row[0], row[1]); err != nil {
					return err
				}
			}
			return tw.Flush()
		},
	}
}

func societyLabel(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return model.Society(*s).Name()
}

func organizationLabel(o *string) string {
	if o == nil || *o == "" {
		return "-"
	}
	return model.Organization(*o).Name()
}

type registerFlags struct {
	username     string
	password     string
	fullName     string
	role         string
	society      string
	organization string
}

func (f registerFlags) request() (model.RegisterUserRequest, error) {
	req := model.RegisterUserRequest{
		Username: f.username,
		Password: f.password,
		FullName: f.fullName,
		Role:     domainauth.Role(strings.ToLower(strings.TrimSpace(f.role))),
	}
	if f.society != "" {
		s, ok := model.ParseSociety(f.society)
		if !ok {
			return req, fmt.Errorf("unknown society %q", f.society)
		}
		req.Society = &s
	}
	if f.organization != "" {
		o := model.Organization(strings.ToLower(strings.TrimSpace(f.organization)))
		req.Organization = &o
	}
	if err := req.Validate(); err != nil {
		return req, err
	}
	return req, nil
}

func newRegisterCmd(a *app) *cobra.Command {
	var f registerFlags
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a backend account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if f.password == "" {
				var err error
				if f.password, err = a.prompt("Password: "); err != nil {
					return err
				}
			}
			req, err := f.request()
			if err != nil {
				return err
			}
			res, err := a.ws.API.Register(cmd.Context(), req)
			if err != nil {
				return fmt.Errorf("register: %w", err)
			}
			if a.jsonOutput() {
				return a.printJSON(res)
			}
			return writef(a.out, "%s (id %s)\n", res.Message, res.UserID)
		},
	}
	roles := make([]string, 0, len(domainauth.Roles()))
	for _, r := range domainauth.Roles() {
		roles = append(roles, string(r))
	}
	cmd.Flags().StringVarP(&f.username, "username", "u", "", "new account username")
	cmd.Flags().StringVarP(&f.password, "password", "p", "", "new account password (prompted when omitted)")
	cmd.Flags().StringVar(&f.fullName, "full-name", "", "display name")
	cmd.Flags().StringVar(&f.role, "role", string(domainauth.RoleSecretary), "one of "+strings.Join(roles, ", "))
	cmd.Flags().StringVar(&f.society, "society", "", "society key, e.g. secunda")
	cmd.Flags().StringVar(&f.organization, "organization", "", "organization key")
	return cmd
}
