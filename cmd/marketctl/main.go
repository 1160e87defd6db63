// marketctl runs operator tasks against the marketplace database and bucket.
//
//	marketctl migrate                  create the schema if it is missing
//	marketctl promote --email <email>  grant the admin role to an existing profile
//	marketctl sweep                    delete orphaned draft images once
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"marketplace/internal/config"
	"marketplace/internal/database"
	"marketplace/internal/database/migration"
	"marketplace/internal/janitor"
	"marketplace/internal/logging"
	"marketplace/internal/repository/postgres"
	"marketplace/internal/service"
	"marketplace/internal/storage"
)

var errUsage = errors.New("usage: marketctl <migrate|promote|sweep> [flags]")

// Replaced in tests.
var (
	openDB    = database.NewPostgres
	openStore = storage.NewMinIO
)

func main() {
	cfg := config.Load()
	logging.Init("marketctl", cfg.Env, cfg.Location())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.AppConfig, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "migrate":
		if err := parseFlags(cmd, rest, out); err != nil {
			return err
		}
		return withDB(ctx, cfg, func(db *sql.DB) error {
			if err := migration.EnsureMigrated(ctx, db, cfg.Database.Host); err != nil {
				return err
			}
			fmt.Fprintln(out, "schema up to date")
			return nil
		})

	case "promote":
		var email string
		if err := parseFlags(cmd, rest, out, func(fs *pflag.FlagSet) {
			fs.StringVar(&email, "email", "", "email of the profile to promote")
		}); err != nil {
			return err
		}
		if email == "" {
			return fmt.Errorf("%w: promote requires --email", errUsage)
		}
		return withDB(ctx, cfg, func(db *sql.DB) error {
			admin := service.NewAdminService(postgres.NewListingPostgres(db), postgres.NewProfilePostgres(db),
				postgres.NewReportPostgres(db), nil, log.Logger)
			p, err := admin.Promote(ctx, email)
			if err != nil {
				return fmt.Errorf("promote %s: %w", email, err)
			}
			fmt.Fprintf(out, "%s (%s) is now %s\n", p.Email, p.ID, p.Role)
			return nil
		})

	case "sweep":
		if err := parseFlags(cmd, rest, out); err != nil {
			return err
		}
		return withDB(ctx, cfg, func(db *sql.DB) error {
			store, err := openStore(cfg.MinIO)
			if err != nil {
				return fmt.Errorf("object storage: %w", err)
			}
			j := janitor.New(store, postgres.NewListingPostgres(db), cfg.Janitor.OrphanAge, log.Logger)
			res, err := j.Sweep(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "scanned %d, deleted %d, failed %d\n", res.Scanned, res.Deleted, res.Failed)
			return nil
		})
	}
	return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
}

func parseFlags(cmd string, args []string, out io.Writer, register ...func(*pflag.FlagSet)) error {
	fs := pflag.NewFlagSet("marketctl "+cmd, pflag.ContinueOnError)
	fs.SetOutput(out)
	for _, r := range register {
		r(fs)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %v", errUsage, fs.Args())
	}
	return nil
}

func withDB(ctx context.Context, cfg *config.AppConfig, fn func(*sql.DB) error) error {
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}
