package main

import (
	"github.com/spf13/cobra"

	authapp "github.com/mohammadpnp/collaborators-api/internal/application/auth"
)

var seedUsers = []authapp.EnsureUserInput{
	{Name: "Gestor 1", Email: "manager1@convenia.com", Password: "123456"},
	{Name: "Gestor 2", Email: "manager2@convenia.com", Password: "123456"},
}

func newSeedCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the default manager accounts if they do not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := openRuntime(cmd.Context(), *envFile)
			if err != nil {
				return err
			}
			defer rt.Close()

			for _, in := range seedUsers {
				out, err := rt.app.EnsureUser.Execute(cmd.Context(), in)
				if err != nil {
					return err
				}
				rt.logger.WithField("email", in.Email).WithField("created", out.Created).Info("seed user")
			}
			return nil
		},
	}
}
