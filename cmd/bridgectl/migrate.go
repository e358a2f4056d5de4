package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withMigrator(func(m migrator) error {
				changed, err := m.Up()
				if err != nil {
					return err
				}
				if !changed {
					printf(cmd.OutOrStdout(), "schema already up to date\n")
					return nil
				}
				return c.printVersion(cmd, m)
			})
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withMigrator(func(m migrator) error {
				if err := m.Down(steps); err != nil {
					return err
				}
				return c.printVersion(cmd, m)
			})
		},
	}
	down.Flags().IntVarP(&steps, "steps", "n", 1, "number of migrations to roll back")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withMigrator(func(m migrator) error {
				return c.printVersion(cmd, m)
			})
		},
	})

	return cmd
}

func (c *cli) withMigrator(fn func(m migrator) error) error {
	if err := c.requirePostgres(); err != nil {
		return err
	}
	m, err := c.backend.newMigrator(c.cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			c.log.Warn().Err(err).Msg("closing migrator")
		}
	}()
	return fn(m)
}

func (c *cli) printVersion(cmd *cobra.Command, m migrator) error {
	version, dirty, ok, err := m.Version()
	if err != nil {
		return err
	}
	if !ok {
		printf(cmd.OutOrStdout(), "no migrations applied\n")
		return nil
	}
	printf(cmd.OutOrStdout(), "schema version %d", version)
	if dirty {
		printf(cmd.OutOrStdout(), " (dirty)")
	}
	printf(cmd.OutOrStdout(), "\n")
	return nil
}
