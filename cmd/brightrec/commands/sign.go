package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"brightrec/internal/domain"
)

// sign <code> --id <connection>: cosign a connection's recovery code.
func signCmd() *cobra.Command {
	var (
		recoveringID string
		name         string
	)
	cmd := &cobra.Command{
		Use:   "sign <code>",
		Short: "Cosign a trusted connection's recovery code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sig, err := appCtx.Signer.Sign(cmd.Context(), args[0], domain.Profile{ID: recoveringID, Name: name})
			if err != nil {
				return err
			}
			out, err := json.Marshal(sig)
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	cmd.Flags().StringVar(&recoveringID, "id", "", "identity id of the connection being recovered")
	cmd.Flags().StringVar(&name, "name", "", "display name to send (default: the connection's name)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
