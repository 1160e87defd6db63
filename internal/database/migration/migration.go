// Package migration creates the marketplace schema on first start.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is the last relation the steps create; its presence means the schema is complete.
const sentinelTable = "public.idx_reports_created_at"

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_auth_users",
		SQL: `CREATE TABLE IF NOT EXISTS auth_users (
  id            UUID        PRIMARY KEY,
  email         TEXT        NOT NULL UNIQUE,
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_profiles",
		SQL: `CREATE TABLE IF NOT EXISTS profiles (
  id         UUID        PRIMARY KEY REFERENCES auth_users (id) ON DELETE CASCADE,
  full_name  TEXT        NOT NULL DEFAULT '',
  email      TEXT        NOT NULL DEFAULT '',
  phone      TEXT        NOT NULL DEFAULT '',
  role       TEXT        NOT NULL DEFAULT 'resident' CHECK (role IN ('resident', 'service_provider', 'admin')),
  verified   BOOLEAN     NOT NULL DEFAULT false,
  suspended  BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_listings",
		SQL: `CREATE TABLE IF NOT EXISTS listings (
  id            UUID             PRIMARY KEY DEFAULT uuid_generate_v4(),
  title         TEXT             NOT NULL,
  price         DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
  property_type TEXT             NOT NULL DEFAULT 'Villa',
  phase         TEXT             NOT NULL DEFAULT 'Phase 1',
  bedrooms      INTEGER          NOT NULL DEFAULT 0 CHECK (bedrooms >= 0),
  bathrooms     INTEGER          NOT NULL DEFAULT 0 CHECK (bathrooms >= 0),
  area          DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (area >= 0),
  description   TEXT             NOT NULL DEFAULT '',
  images        TEXT[]           NOT NULL DEFAULT '{}' CHECK (cardinality(images) <= 10),
  listing_type  TEXT             NOT NULL DEFAULT 'sale' CHECK (listing_type IN ('sale', 'rent')),
  badge         TEXT             NOT NULL DEFAULT '',
  status        TEXT             NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'approved', 'rejected')),
  views         INTEGER          NOT NULL DEFAULT 0 CHECK (views >= 0),
  user_id       UUID             NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
  created_at    TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_listings_feed",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listings_feed ON listings (status, listing_type, created_at DESC);`,
	},
	{
		Name: "create_index_listings_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listings_user_id ON listings (user_id, created_at DESC);`,
	},
	{
		Name: "create_index_listings_images",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_listings_images ON listings USING GIN (images);`,
	},
	{
		Name: "create_table_saved_listings",
		SQL: `CREATE TABLE IF NOT EXISTS saved_listings (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  user_id      UUID        NOT NULL REFERENCES profiles (id) ON DELETE CASCADE,
  listing_id   UUID        NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
  listing_type TEXT        NOT NULL DEFAULT 'sale',
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (user_id, listing_id)
);`,
	},
	{
		Name: "create_table_reports",
		SQL: `CREATE TABLE IF NOT EXISTS reports (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  listing_id  UUID        NOT NULL REFERENCES listings (id) ON DELETE CASCADE,
  reporter_id UUID        REFERENCES profiles (id) ON DELETE SET NULL,
  reason      TEXT        NOT NULL DEFAULT 'User reported',
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_reports_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_reports_created_at ON reports (created_at DESC);`,
	},
}

// EnsureMigrated runs the schema steps unless the sentinel table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, dbHost string) error {
	return ensureMigrated(ctx, db, log.With().Str("component", "database").Str("db_host", dbHost).Logger())
}

func ensureMigrated(ctx context.Context, db *sql.DB, logger zerolog.Logger) error {
	start := time.Now()
	logger.Info().Str("event", "db_migration_check").Str("status", "starting").Send()

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		logger.Error().Err(err).
			Str("event", "db_migration_failed").
			Str("status", "error").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logger.Info().
			Str("event", "db_migration_skip").
			Str("status", "success").
			Int64("duration_ms", time.Since(start).Milliseconds()).
			Msg("schema already exists, skipping migration")
		return nil
	}

	logger.Info().Str("event", "db_migration_start").Str("status", "in_progress").Send()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			logger.Error().Err(err).
				Str("event", "db_migration_failed").
				Str("status", "error").
				Str("migration_step", step.Name).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
				Send()
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logger.Info().
			Str("event", "db_migration_step").
			Str("status", "success").
			Str("migration_step", step.Name).
			Int64("step_duration_ms", time.Since(stepStart).Milliseconds()).
			Send()
	}

	logger.Info().
		Str("event", "db_migration_success").
		Str("status", "success").
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Send()
	return nil
}
