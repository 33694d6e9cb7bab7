package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Tomlord1122/todo-dashboard/internal/app"
	"github.com/Tomlord1122/todo-dashboard/internal/config"
	"github.com/Tomlord1122/todo-dashboard/internal/domain"
	"github.com/Tomlord1122/todo-dashboard/internal/logging"
	"github.com/Tomlord1122/todo-dashboard/internal/service"
)

type opener func(ctx context.Context, logLevel string) (*app.App, error)

func openApp(ctx context.Context, logLevel string) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := logging.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, logger)
}

type cli struct {
	open     opener
	app      *app.App
	logLevel string
}

func newRootCommand(open opener) *cobra.Command {
	c := &cli{open: open}

	root := &cobra.Command{
		Use:   "todoctl",
		Short: "Maintenance tool for the todo dashboard",
		Long: `todoctl shares the API server's configuration (.env, CONFIG_FILE and
environment variables) and runs one-off maintenance tasks against the
configured storage backend.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return c.teardown()
		},
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides LOG_LEVEL)")

	root.AddCommand(
		c.migrateCommand(),
		c.seedCommand(),
		c.userCommand(),
		c.sessionsCommand(),
	)
	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	if c.app != nil {
		return nil
	}
	a, err := c.open(cmd.Context(), c.logLevel)
	if err != nil {
		return err
	}
	c.app = a
	return nil
}

func (c *cli) teardown() error {
	if c.app == nil {
		return nil
	}
	err := c.app.Close()
	c.app = nil
	return err
}

func (c *cli) migrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update tables and indexes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := c.app.Migrate(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "storage migrated")
			return nil
		},
	}
}

func (c *cli) seedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the demo account and its todos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := c.app.Seed(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "demo user %s (created: %t), %d todo(s) added\n",
				res.User.Email, res.CreatedUser, res.CreatedTodos)
			return nil
		},
	}
}

func (c *cli) userCommand() *cobra.Command {
	user := &cobra.Command{
		Use:   "user",
		Short: "Manage user accounts",
	}

	var req service.CreateUserRequest
	var role string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a user account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req.Role = domain.Role(role)
			created, err := c.app.AdminService().CreateUser(cmd.Context(), req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s <%s> as %s (%s)\n", created.Name, created.Email, created.Role, created.ID)
			return nil
		},
	}
	create.Flags().StringVar(&req.Name, "name", "", "display name")
	create.Flags().StringVar(&req.Email, "email", "", "login email")
	create.Flags().StringVar(&req.Password, "password", "", "initial password (at least 8 characters)")
	create.Flags().StringVar(&role, "role", string(domain.RoleUser), "admin or user")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")
	_ = create.MarkFlagRequired("password")

	promote := &cobra.Command{
		Use:   "promote <email>",
		Short: "Grant the admin role to a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := c.app.Users.FindByEmail(cmd.Context(), strings.ToLower(strings.TrimSpace(args[0])))
			if err != nil {
				return err
			}
			updated, err := c.app.AdminService().SetRole(cmd.Context(), "", found.ID, service.SetRoleRequest{Role: domain.RoleAdmin})
			if err != nil {
				return err
			}
			c.app.Logger.Info("user promoted", zap.String("email", updated.Email))
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", updated.Email, service.RoleLabel(updated.Role))
			return nil
		},
	}

	user.AddCommand(create, promote)
	return user
}

func (c *cli) sessionsCommand() *cobra.Command {
	sessions := &cobra.Command{
		Use:   "sessions",
		Short: "Manage refresh-token sessions",
	}
	sessions.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired and revoked sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := c.app.Scheduler().PurgeSessions(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d session(s)\n", n)
			return nil
		},
	})
	return sessions
}
