package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Maintain the webhook replay guard",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete webhook event claims past their TTL",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.requirePostgres(); err != nil {
				return err
			}
			p, closeFn, err := c.backend.openPurger(cmd.Context(), c.cfg, c.log)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := p.PurgeExpired(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "purged %d expired webhook events\n", n)
			return nil
		},
	})

	return cmd
}
