package main

import (
	"context"
	"fmt"

	"go-foodorder/config"
	"go-foodorder/utils"

	"github.com/spf13/cobra"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create an admin account from ADMIN_EMAIL and ADMIN_PASSWORD, or promote the existing one",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		utils.InitLogger(cfg.AppEnv)
		if cfg.StorageDriver == "memory" {
			return fmt.Errorf("seed-admin needs persistent storage; set STORAGE_DRIVER=mongo")
		}

		st, err := openStores(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStores(st)

		app, err := newApplication(cfg, st)
		if err != nil {
			return err
		}
		admin, err := app.accounts.SeedAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
		if err != nil {
			return err
		}
		utils.L.Info("admin ready", "email", admin.Email, "id", admin.ID.Hex())
		return nil
	},
}
