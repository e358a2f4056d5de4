package main

import (
	"errors"

	"payment-webhook-bridge/internal/service"

	"github.com/spf13/cobra"
)

func (c *cli) mappingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mappings",
		Short: "Maintain the identifier mapping tables",
	}

	var yes bool
	clear := &cobra.Command{
		Use:   "clear-products",
		Short: "Forget every product mapping so products are re-created at the next checkout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear product mappings without --yes")
			}
			if err := c.requirePostgres(); err != nil {
				return err
			}

			repo, closeFn, err := c.backend.openMappings(cmd.Context(), c.cfg, c.log)
			if err != nil {
				return err
			}
			defer closeFn()

			n, err := service.NewMappingAdminService(repo, c.log).ClearProductMappings(cmd.Context())
			if err != nil {
				return err
			}
			printf(cmd.OutOrStdout(), "removed %d product mappings\n", n)
			return nil
		},
	}
	clear.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	cmd.AddCommand(clear)

	return cmd
}
