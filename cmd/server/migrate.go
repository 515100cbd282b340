package main

import (
	"errors"

	"github.com/diewo77/recipe-api/internal/db"
	"github.com/spf13/cobra"
)

func (c *cli) migrateCmd() *cobra.Command {
	var useSQL bool
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run DB migrations and exit",
		Long: `Creates or updates the schema.

By default the GORM models are auto-migrated. With --sql the embedded SQL
migrations are applied through golang-migrate (Postgres only).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if useSQL {
				if c.cfg.Database.IsSQLite() {
					return errors.New("--sql requires the postgres driver")
				}
				if err := db.MigrateSQL(c.cfg.Database); err != nil {
					return err
				}
				c.logger.Info("sql migrations applied")
				return nil
			}
			conn, err := db.Connect(c.cfg.Database, c.logger)
			if err != nil {
				return err
			}
			if sqlDB, err := conn.DB(); err == nil {
				defer sqlDB.Close()
			}
			if err := db.Migrate(conn); err != nil {
				return err
			}
			c.logger.Info("migrations completed successfully")
			return nil
		},
	}
	cmd.Flags().BoolVar(&useSQL, "sql", false, "apply embedded SQL migrations with golang-migrate")
	return cmd
}
