package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/repository"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/tenancy"
	"github.com/vasapolrittideah/kinext-api/services/platform-service/internal/usecase"
	"github.com/vasapolrittideah/kinext-api/shared/validation"
)

// deps are the collaborators shared by the commands that talk to MongoDB.
type deps struct {
	databases tenancy.DatabaseProvider
	users     repository.UserRepository
	instances repository.InstanceRepository
	tenants   repository.TenantStore
	validator *validation.Validator
	prefix    string
	strict    bool
}

type connectFunc func(ctx context.Context, log *zerolog.Logger) (*deps, func(), error)

var errReconcileIncomplete = errors.New("some users could not be reconciled")

func newRootCommand(connect connectFunc) *cobra.Command {
	var logLevel string

	root := &cobra.Command{
		Use:          "kinextctl",
		Short:        "Operate Kinext tenant databases",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log to stdout at this level (debug, info, warn, error)")

	// withDeps connects before running fn and closes the connection after.
	withDeps := func(fn func(cmd *cobra.Command, args []string, d *deps, log *zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			log := newLogger(logLevel)

			d, closeFn, err := connect(cmd.Context(), log)
			if err != nil {
				return err
			}
			defer closeFn()

			return fn(cmd, args, d, log)
		}
	}

	root.AddCommand(
		newHashCommand(),
		newHealthCommand(),
		newProvisionCommand(withDeps),
		newReconcileCommand(withDeps),
		newResolveCommand(withDeps),
		newSeedCommand(withDeps),
	)

	return root
}

type runWithDeps func(fn func(cmd *cobra.Command, args []string, d *deps, log *zerolog.Logger) error) func(*cobra.Command, []string) error

func newHashCommand() *cobra.Command {
	var prefix string

	cmd := &cobra.Command{
		Use:   "hash <user-id>",
		Short: "Print the identifier hash and default database name of a user id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "hash:     %08x\ndatabase: %s\n",
				tenancy.Hash(args[0]), tenancy.DatabaseName(prefix, args[0]))
			return nil
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", tenancy.DefaultDatabasePrefix, "tenant database name prefix")

	return cmd
}

func newProvisionCommand(withDeps runWithDeps) *cobra.Command {
	var params usecase.RegisterParams
	var phone string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Register a user and provision their tenant database",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(cmd *cobra.Command, _ []string, d *deps, log *zerolog.Logger) error {
			if phone != "" {
				params.PhoneNumber = &phone
			}
			params.TermsAccepted = true

			registration := usecase.NewRegistrationUsecase(
				d.databases, d.users, d.instances, d.tenants, d.validator, d.prefix, log,
			)
			res, err := registration.Register(cmd.Context(), params)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "user:     %s\ndatabase: %s\n", res.UserID, res.DBName)
			return nil
		}),
	}
	cmd.Flags().StringVar(&params.Name, "name", "", "display name")
	cmd.Flags().StringVar(&params.Email, "email", "", "email address")
	cmd.Flags().StringVar(&params.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&phone, "phone", "", "phone number in E.164 format")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newReconcileCommand(withDeps runWithDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Create missing registry entries and tenant user copies",
		Args:  cobra.NoArgs,
		RunE: withDeps(func(cmd *cobra.Command, _ []string, d *deps, log *zerolog.Logger) error {
			reconcile := usecase.NewReconcileUsecase(d.databases, d.users, d.instances, d.tenants, d.prefix, log)

			report, err := reconcile.Reconcile(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "users:             %d\ninstances created: %d\ncopies created:    %d\n",
				report.Users, report.InstancesCreated, report.TenantCopiesCreated)
			if len(report.Failed) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "failed:            %s\n", strings.Join(report.Failed, ", "))
				return fmt.Errorf("%w: %d", errReconcileIncomplete, len(report.Failed))
			}
			return nil
		}),
	}
}

func newResolveCommand(withDeps runWithDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <user-id>",
		Short: "Print the database a user's requests are served from",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(cmd *cobra.Command, args []string, d *deps, log *zerolog.Logger) error {
			resolver := tenancy.NewResolver(d.databases, d.instances, log, tenancy.WithStrictResolution(d.strict))

			db, err := resolver.Resolve(cmd.Context(), &tenancy.Session{UserID: args[0]})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), db.Name())
			return nil
		}),
	}
}

func newSeedCommand(withDeps runWithDeps) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <user-id>",
		Short: "Insert sample CMS, CRM and careers data into a user's tenant database",
		Args:  cobra.ExactArgs(1),
		RunE: withDeps(func(cmd *cobra.Command, args []string, d *deps, _ *zerolog.Logger) error {
			report, err := usecase.NewSeedUsecase(d.databases, d.instances, d.tenants).Seed(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(),
				"database:       %s\npages:          %d\ncontent blocks: %d\ncompanies:      %d\n"+
					"contacts:       %d\njobs:           %d\ninteractions:   %d\napplications:   %d\n",
				report.DBName, report.Pages, report.ContentBlocks, report.Companies,
				report.Contacts, report.Jobs, report.Interactions, report.Applications)
			return nil
		}),
	}
}
