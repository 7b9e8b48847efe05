package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jaguar8340/crm-KS/internal/config"
	"github.com/jaguar8340/crm-KS/internal/database"
	"github.com/jaguar8340/crm-KS/internal/model"
	"github.com/jaguar8340/crm-KS/internal/repository"
	"github.com/jaguar8340/crm-KS/internal/utils"
)

func main() {
	root := &cobra.Command{
		Use:   "crmctl",
		Short: "Operational tooling for the CRM backend",
	}
	root.AddCommand(createAdminCmd(), sweepVehiclesCmd())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func createAdminCmd() *cobra.Command {
	var username, password, name string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create the initial admin account if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			users := repository.NewUserRepo(db)
			if _, err := users.GetByUsername(ctx, username); err == nil {
				fmt.Printf("user %q already exists, nothing to do\n", username)
				return nil
			} else if !errors.Is(err, repository.ErrNotFound) {
				return err
			}

			hash, err := utils.HashPassword(password, cfg.BcryptCost)
			if err != nil {
				return err
			}
			u := &model.User{
				ID:           uuid.NewString(),
				Username:     username,
				Name:         name,
				Role:         model.RoleAdmin,
				PasswordHash: hash,
				CreatedAt:    time.Now().UTC(),
			}
			if err := users.Create(ctx, u); err != nil {
				return err
			}
			fmt.Printf("created admin %q (id %s)\n", username, u.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&username, "username", "admin", "login name for the admin account")
	cmd.Flags().StringVar(&password, "password", "admin123", "initial password")
	cmd.Flags().StringVar(&name, "name", "Administrator", "display name")
	return cmd
}

func sweepVehiclesCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "sweep-vehicles",
		Short: "Delete vehicles whose owning customer no longer exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := connect()
			if err != nil {
				return err
			}
			defer func() { _ = database.Close(db) }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
			defer cancel()

			customers := repository.NewCustomerRepo(db)
			vehicles := repository.NewVehicleRepo(db)

			ids, err := vehicles.CustomerIDs(ctx)
			if err != nil {
				return err
			}

			var swept int64
			for _, id := range ids {
				_, err := customers.GetByID(ctx, id)
				if err == nil {
					continue
				}
				if !errors.Is(err, repository.ErrNotFound) {
					return err
				}
				if dryRun {
					fmt.Printf("would delete vehicles of missing customer %s\n", id)
					continue
				}
				n, err := vehicles.DeleteByCustomer(ctx, id)
				if err != nil {
					return err
				}
				fmt.Printf("deleted %d vehicle(s) of missing customer %s\n", n, id)
				swept += n
			}
			fmt.Printf("sweep complete: %d vehicle(s) removed\n", swept)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report orphans without deleting")
	return cmd
}

func connect() (config.Config, *mongo.Database, error) {
	_ = godotenv.Load()
	cfg := config.Load()
	db, err := database.Open(cfg.MongoURL, cfg.DBName)
	if err != nil {
		log.Printf("connect to mongodb: %v", err)
		return cfg, nil, err
	}
	return cfg, db, nil
}
