package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// trusted [id...]: publish (and optionally replace) the trusted-connection list.
func trustedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "trusted [connection-id...]",
		Short: "Publish the connections allowed to cosign your recovery",
		RunE: func(cmd *cobra.Command, args []string) error {
			var trusted []string
			if len(args) > 0 {
				trusted = args
			}
			if err := appCtx.PublishTrusted(cmd.Context(), trusted); err != nil {
				return err
			}
			fmt.Println("trusted connections published")
			return nil
		},
	}
}
