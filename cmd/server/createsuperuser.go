package main

import (
	"errors"

	"github.com/diewo77/recipe-api/internal/db"
	"github.com/diewo77/recipe-api/internal/repository"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (c *cli) createSuperuserCmd() *cobra.Command {
	var email, password, name string
	cmd := &cobra.Command{
		Use:   "createsuperuser",
		Short: "Create a staff superuser account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				return errors.New("--password is required")
			}
			conn, err := db.Connect(c.cfg.Database, c.logger)
			if err != nil {
				return err
			}
			if sqlDB, err := conn.DB(); err == nil {
				defer sqlDB.Close()
			}
			if c.cfg.Database.IsSQLite() {
				if err := db.Migrate(conn); err != nil {
					return err
				}
			}
			repo := repository.New(conn)
			u, err := repo.Users.CreateSuperuser(cmd.Context(), email, password, repository.UserFields{Name: name})
			if err != nil {
				return err
			}
			c.logger.Info("superuser created", zap.Uint("user_id", u.ID), zap.String("email", u.Email))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
