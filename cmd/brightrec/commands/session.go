package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the recovery session on this device",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "begin",
			Short: "Start or resume a recovery session and print its code",
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, err := appCtx.Recovery.BeginSession(cmd.Context()); err != nil {
					return err
				}
				qr, err := appCtx.Recovery.Advertisement(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Println("Ask two trusted connections to sign this code:")
				fmt.Println(qr)
				return nil
			},
		},
		&cobra.Command{
			Use:   "qr",
			Short: "Print the recovery code for the current session",
			RunE: func(cmd *cobra.Command, args []string) error {
				qr, err := appCtx.Recovery.Advertisement(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Println(qr)
				return nil
			},
		},
		&cobra.Command{
			Use:   "cancel",
			Short: "Abandon the recovery session",
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := appCtx.Recovery.CancelSession(cmd.Context()); err != nil {
					return err
				}
				fmt.Println("recovery session cancelled")
				return nil
			},
		},
	)
	return cmd
}
