package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/wazihub/wazi-go/internal/store"
)

func newLoginCommand(app func() *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Sign in and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.stores.Session.SignIn(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			user := a.stores.Session.User()
			if user == nil {
				return fmt.Errorf("sign-in did not establish a session")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s %s <%s>\n", user.FirstName, user.LastName, user.Email)
			return nil
		},
	}
}

func newSignupCommand(app func() *appContext) *cobra.Command {
	var phone string
	cmd := &cobra.Command{
		Use:   "signup <email> <password> <first-name> <last-name>",
		Short: "Create an account and sign in",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := app()
			if err := a.stores.Session.SignUp(cmd.Context(), args[0], args[1], args[2], args[3], phone); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "account created")
			return nil
		},
	}
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	return cmd
}

func newLogoutCommand(app func() *appContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := app().stores.Session.Logout(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), "signed out")
			return err
		},
	}
}

func newWhoamiCommand(app func() *appContext) *cobra.Command {
	var refresh bool
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if refresh {
				if err := a.stores.Session.CheckSubscriptionStatus(cmd.Context()); err != nil {
					return err
				}
			}
			user := a.stores.Session.User()
			if user == nil {
				fmt.Fprintln(cmd.OutOrStdout(), "not signed in")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s <%s> subscription=%s\n",
				user.FirstName, user.LastName, user.Email, user.Subscription())
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "refresh subscription status from the server")
	return cmd
}

func newProfileCommand(app func() *appContext) *cobra.Command {
	var firstName, lastName, phone, avatar string
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Update profile fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a := app()
			if err := a.requireUser(); err != nil {
				return err
			}
			fields := map[string]any{}
			updates := store.UserUpdate{}
			if cmd.Flags().Changed("first-name") {
				fields["firstName"] = firstName
				updates.FirstName = &firstName
			}
			if cmd.Flags().Changed("last-name") {
				fields["lastName"] = lastName
				updates.LastName = &lastName
			}
			if cmd.Flags().Changed("phone") {
				fields["phone"] = phone
				updates.Phone = &phone
			}
			if cmd.Flags().Changed("avatar") {
				fields["avatar"] = avatar
				updates.Avatar = &avatar
			}
			if len(fields) == 0 {
				return fmt.Errorf("nothing to update")
			}
			if _, err := a.api.UpdateUser(cmd.Context(), fields); err != nil {
				return err
			}
			a.stores.Session.UpdateUser(cmd.Context(), updates)
			fmt.Fprintln(cmd.OutOrStdout(), "profile updated")
			return nil
		},
	}
	cmd.Flags().StringVar(&firstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number")
	cmd.Flags().StringVar(&avatar, "avatar", "", "avatar URI")
	return cmd
}
