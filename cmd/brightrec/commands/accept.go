package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"brightrec/internal/domain"
)

// accept <file|->: offer a cosignature (JSON) to the recovery session.
func acceptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "accept <file|->",
		Short: "Add a cosignature received from a trusted connection",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = os.Stdin
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			var sig domain.Cosignature
			if err := json.NewDecoder(r).Decode(&sig); err != nil {
				return fmt.Errorf("read cosignature: %w", err)
			}

			res, err := appCtx.Recovery.AcceptSignature(cmd.Context(), &sig)
			if err != nil {
				return err
			}
			if res.Notice != "" {
				fmt.Println(res.Notice)
			}
			if res.Ready {
				fmt.Printf("Two cosignatures collected for %s; run 'restore' to finish.\n", res.Session.IdentityID)
			} else {
				fmt.Printf("%d of 2 cosignatures collected\n", len(res.Session.Signatures))
			}
			return nil
		},
	}
}
