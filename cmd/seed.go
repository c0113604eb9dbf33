package cmd

import (
	"fmt"

	"clinichub/config"

	"github.com/spf13/cobra"
)

func newSeedAdminCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create the admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				email = config.AppConfig.AdminEmail
			}
			if password == "" {
				password = config.AppConfig.AdminPassword
			}
			if password == "" {
				return fmt.Errorf("an admin password is required (--password or ADMIN_PASSWORD)")
			}

			a, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			created, err := a.users.SeedAdmin(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin account %s created\n", email)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin account %s already exists\n", email)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email (defaults to ADMIN_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "admin password (defaults to ADMIN_PASSWORD)")
	return cmd
}
