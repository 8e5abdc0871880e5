package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/luizaranda/go-users/pkg/app"
	"github.com/luizaranda/go-users/pkg/config"
	"github.com/luizaranda/go-users/pkg/log"
	"github.com/luizaranda/go-users/pkg/users"
	"github.com/luizaranda/go-users/pkg/users/userstest"
)

type rootFlags struct {
	baseURL  string
	timeout  time.Duration
	headers  []string
	logLevel string
}

// newRootCmd returns the usersctl command tree and a func that releases the
// application built before any subcommand runs.
func newRootCmd() (*cobra.Command, func() error) {
	var (
		flags       rootFlags
		application *app.Application
	)

	root := &cobra.Command{
		Use:           "usersctl",
		Short:         "Client for the users API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, flags, &cfg)

			opts, err := headerOptions(flags.headers)
			if err != nil {
				return err
			}

			application, err = app.New(cmd.Context(), cfg,
				app.WithLogOptions(log.WithWriter(writeSyncer{cmd.ErrOrStderr()})),
				app.WithUsersOptions(opts...),
			)
			if err != nil {
				return err
			}

			cmd.SetContext(application.Context(cmd.Context()))
			return nil
		},
	}

	root.PersistentFlags().StringVar(&flags.baseURL, "base-url", "", "users API address (env USERS_BASE_URL)")
	root.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "request timeout, 0 for none (env USERS_TIMEOUT)")
	root.PersistentFlags().StringArrayVarP(&flags.headers, "header", "H", nil, "extra request header as name=value, repeatable")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error (env USERS_LOG_LEVEL)")

	client := func() *users.Client { return application.Users }

	root.AddCommand(
		newListCmd(client),
		newGetCmd(client),
		newCreateCmd(client),
		newUpdateCmd(client),
		newDeleteCmd(client),
		newServeCmd(func() *app.Application { return application }),
	)

	closeApp := func() error {
		if application == nil {
			return nil
		}
		return application.Close(context.Background())
	}

	return root, closeApp
}

func applyFlags(cmd *cobra.Command, flags rootFlags, cfg *config.Config) {
	pf := cmd.Flags()
	if pf.Changed("base-url") {
		cfg.BaseURL = flags.baseURL
	}
	if pf.Changed("timeout") {
		cfg.Timeout = flags.timeout
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
}

func headerOptions(headers []string) ([]users.Option, error) {
	opts := make([]users.Option, 0, len(headers))
	for _, h := range headers {
		name, value, ok := strings.Cut(h, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, fmt.Errorf("invalid header %q, want name=value", h)
		}
		opts = append(opts, users.WithDefaultHeader(strings.TrimSpace(name), value))
	}
	return opts, nil
}

func newListCmd(client func() *users.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			all, err := client().GetAllUsers(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), all)
		},
	}
}

func newGetCmd(client func() *users.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			user, err := client().GetUserByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newCreateCmd(client func() *users.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "create JSON",
		Short: `Create a user, JSON being the user object or "-" to read it from stdin`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readUserData(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}

			user, err := client().CreateUser(cmd.Context(), data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newUpdateCmd(client func() *users.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "update ID JSON",
		Short: `Replace a user, JSON being the user object or "-" to read it from stdin`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readUserData(cmd.InOrStdin(), args[1])
			if err != nil {
				return err
			}

			user, err := client().UpdateUser(cmd.Context(), args[0], data)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), user)
		},
	}
}

func newDeleteCmd(client func() *users.Client) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := client().DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if result == nil {
				return nil
			}
			return printJSON(cmd.OutOrStdout(), result)
		},
	}
}

func newServeCmd(application func() *app.Application) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve an in-memory users API, for demos and local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ln, err := net.Listen("tcp", addr)
			if err != nil {
				return err
			}

			a := application()
			return a.Serve(cmd.Context(), ln, userstest.NewAPI().Handler(a.Logger))
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

func readUserData(stdin io.Reader, arg string) (map[string]any, error) {
	raw := []byte(arg)
	if arg == "-" {
		var err error
		if raw, err = io.ReadAll(stdin); err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
	}

	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("user data must be a JSON object: %w", err)
	}
	return data, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeSyncer adapts the command error writer for the logger.
type writeSyncer struct{ io.Writer }

func (writeSyncer) Sync() error { return nil }
