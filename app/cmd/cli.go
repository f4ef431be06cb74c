package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/configs"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/db/seeders"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/models/migrations"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/repositories"
	"github.com/NjoguSimon-hub/sample-gemcart-backend/app/utils/token"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Opener opens the database for commands that need one.
type Opener func() (*gorm.DB, error)

func NewCommand(env configs.ENV, log *zap.Logger, openDB Opener) *cli.Command {
	return &cli.Command{
		Name:  "gemcart",
		Usage: "GemCart marketplace backend",
		Action: func(ctx context.Context, c *cli.Command) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			return Serve(ctx, env, log, db)
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "Run the HTTP API",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					return Serve(ctx, env, log, db)
				},
			},
			{
				Name:  "migrate",
				Usage: "Run database migration",
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					if err := migrations.AutoMigrate(db); err != nil {
						return err
					}
					log.Info("migration complete")
					return nil
				},
			},
			{
				Name:  "seed",
				Usage: "Fill the database with fake categories, users and jewelry products",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "sellers", Value: seeders.DefaultOptions().Sellers},
					&cli.IntFlag{Name: "customers", Value: seeders.DefaultOptions().Customers},
					&cli.IntFlag{Name: "products", Value: seeders.DefaultOptions().Products},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					db, err := openDB()
					if err != nil {
						return err
					}
					_, err = seeders.DBSeed(ctx, db, log, seeders.Options{
						Sellers:   c.Int("sellers"),
						Customers: c.Int("customers"),
						Products:  c.Int("products"),
					})
					return err
				},
			},
			{
				Name:  "create-user",
				Usage: "Create a customer, seller or admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
					&cli.StringFlag{Name: "role", Value: string(models.RoleCustomer), Usage: "customer, seller or admin"},
					&cli.StringFlag{Name: "first-name"},
					&cli.StringFlag{Name: "last-name"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					role, ok := models.ParseRole(c.String("role"))
					if !ok {
						return fmt.Errorf("unknown role %q, use customer, seller or admin", c.String("role"))
					}
					db, err := openDB()
					if err != nil {
						return err
					}
					user := &models.User{
						Username:  strings.TrimSpace(c.String("username")),
						Email:     strings.ToLower(strings.TrimSpace(c.String("email"))),
						Password:  c.String("password"),
						FirstName: c.String("first-name"),
						LastName:  c.String("last-name"),
						Role:      role,
						IsActive:  true,
					}
					if err := repositories.NewUserRepository(db).Create(ctx, user); err != nil {
						if repositories.IsDuplicateKey(err) {
							return fmt.Errorf("username or email already registered")
						}
						return fmt.Errorf("failed to create user: %w", err)
					}
					log.Info("user created", zap.Uint("user_id", user.ID), zap.String("role", string(user.Role)))
					fmt.Fprintf(c.Root().Writer, "created %s user %s (id %d)\n", user.Role, user.Email, user.ID)
					return nil
				},
			},
			{
				Name:  "issue-token",
				Usage: "Check a user's password and print a bearer token",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					if env.JWTSecret == "" {
						return errors.New("JWT_SECRET is empty, run generate-keys and add it to .env")
					}
					db, err := openDB()
					if err != nil {
						return err
					}
					users := repositories.NewUserRepository(db)
					user, err := users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(c.String("email"))))
					if err != nil {
						return fmt.Errorf("failed to look up user: %w", err)
					}
					if user == nil || !user.IsActive || !users.CheckPassword(user, c.String("password")) {
						return errors.New("invalid email or password")
					}

					raw, err := token.NewManager(env.JWTSecret, env.TokenTTL).Issue(user)
					if err != nil {
						return err
					}
					if err := users.TouchLastLogin(ctx, user.ID); err != nil {
						log.Warn("failed to record login", zap.Uint("user_id", user.ID), zap.Error(err))
					}
					fmt.Fprintln(c.Root().Writer, raw)
					return nil
				},
			},
			{
				Name:  "generate-keys",
				Usage: "Generate a new JWT signing secret for .env",
				Action: func(ctx context.Context, c *cli.Command) error {
					if err := configs.GenerateAndPrintKeys(); err != nil {
						return err
					}
					log.Info("key generation complete, copy JWT_SECRET into your .env file")
					return nil
				},
			},
		},
	}
}

func RunCli(ctx context.Context, env configs.ENV, log *zap.Logger, args []string) error {
	openDB := func() (*gorm.DB, error) {
		return configs.OpenConnection(env, log)
	}
	return NewCommand(env, log, openDB).Run(ctx, args)
}
