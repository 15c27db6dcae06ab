package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// backup [--password pw]: upload the encrypted bundle and photos.
func backupCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Back up profile, connections, groups and photos",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("password") {
				if err := appCtx.SetPassword(password); err != nil {
					return err
				}
			}
			report, err := appCtx.BackupNow(cmd.Context())
			if err != nil {
				return err
			}
			if report.BundleErr != nil {
				return report.BundleErr
			}
			fmt.Printf("Backed up data and %d of %d photos\n", report.Photos.Succeeded(), len(report.Photos.Items))
			for _, it := range report.Photos.Failed() {
				fmt.Printf("  %s %s: %v\n", it.Kind, it.ID, it.Err)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "set the backup password first")
	return cmd
}
