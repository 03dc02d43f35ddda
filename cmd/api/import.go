package main

import (
	"encoding/json"
	"errors"

	"github.com/spf13/cobra"

	domain "github.com/mohammadpnp/collaborators-api/internal/domain/collaborator"
)

func newImportCmd(envFile *string) *cobra.Command {
	var (
		filePath string
		userID   uint
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import collaborators from a CSV file under STORAGE_DIR synchronously",
		RunE: func(cmd *cobra.Command, args []string) error {
			if filePath == "" || userID == 0 {
				return errors.New("--file and --user are required")
			}

			rt, err := openRuntime(cmd.Context(), *envFile)
			if err != nil {
				return err
			}
			defer rt.Close()

			res, err := rt.app.Importer.Execute(cmd.Context(), domain.ImportJob{FilePath: filePath, UserID: userID})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().StringVar(&filePath, "file", "", "path of the CSV file relative to STORAGE_DIR")
	cmd.Flags().UintVar(&userID, "user", 0, "id of the owning user")
	return cmd
}
