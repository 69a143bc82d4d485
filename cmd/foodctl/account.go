package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foodhub/foodhub-client/client"
	"github.com/foodhub/foodhub-client/session"
)

func newRegisterCmd(g *globals) *cobra.Command {
	var req client.CreateUserRequest
	var owner bool

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in with it",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Email, req.Password = g.email, g.password
			if req.Email == "" || req.Password == "" {
				return fmt.Errorf("register needs --email and --password")
			}
			if owner {
				req.Role = client.RoleOwner
			}

			log.Debug().Str("email", req.Email).Str("name", req.Name).Msg("registering user")

			store := session.NewStore(g.client())
			ctx, cancel := commandContext(cmd)
			defer cancel()
			if err := store.CreateUser(ctx, req); err != nil {
				return err
			}
			st := store.State()
			if err := stateErr("register", st); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User registered: %d - %s\n", st.User.ID, st.User.Email)
			fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", st.AuthToken)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&req.Location, "location", "", "Address")
	cmd.Flags().BoolVar(&owner, "owner", false, "Register as a restaurant owner")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newSignInCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "signin",
		Short: "Sign in and print the bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			store, err := g.signedIn(ctx)
			if err != nil {
				return err
			}
			st := store.State()
			fmt.Fprintf(cmd.OutOrStdout(), "Signed in: %d - %s\n", st.User.ID, st.User.Name)
			fmt.Fprintf(cmd.OutOrStdout(), "Token: %s\n", st.AuthToken)
			return nil
		},
	}
}

func newGetUserCmd(g *globals) *cobra.Command {
	var userID int64
	var token string

	cmd := &cobra.Command{
		Use:   "get-user",
		Short: "Show a user record",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext(cmd)
			defer cancel()
			u, err := g.client().GetUserByID(ctx, userID, token)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}

	cmd.Flags().Int64Var(&userID, "id", 0, "User ID (required)")
	cmd.Flags().StringVar(&token, "token", "", "Bearer token (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("token")
	return cmd
}
