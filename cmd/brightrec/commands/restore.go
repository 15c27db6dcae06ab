package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"brightrec/internal/domain"
	"brightrec/internal/progress"
)

// restore [-p password]: complete recovery from the collected cosignatures.
func restoreCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "restore",
		Short: "Restore profile, connections and photos after two cosignatures",
		Long: "Restore profile, connections and photos after two cosignatures.\n" +
			"Without --password only the profile revealed by the cosigners is restored.",
		RunE: func(cmd *cobra.Command, args []string) error {
			counter := progress.NewCounter()
			cancel := appCtx.Progress.Subscribe(counter.Observe)
			defer cancel()

			res, err := appCtx.Recovery.CompleteRecovery(cmd.Context(), password)
			if err != nil {
				return err
			}
			ok, failed := counter.Counts(domain.RestoreProgress)
			fmt.Printf("Recovered %s: %d connections, %d groups\n",
				res.Bundle.Profile.ID, len(res.Bundle.Connections), len(res.Bundle.Groups))
			if total := counter.Total(); total > 0 {
				fmt.Printf("Restored %d of %d items (%d missing)\n", ok, total, failed)
			}
			if !res.BackupCompleted {
				fmt.Println("No backup password set; run 'backup --password' to enable backups.")
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "backup password")
	return cmd
}
