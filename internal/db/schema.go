package db

import "context"

// Uniqueness of MC/DOT/CDL per tenant is owned by the database. Handlers may
// pre-check for a friendlier message, but SQLSTATE 23505 from these indexes
// is the authoritative duplicate signal.
const schema = `
CREATE TABLE IF NOT EXISTS staff (
	id             TEXT PRIMARY KEY,
	tenant_id      TEXT NOT NULL,
	name           TEXT NOT NULL,
	email          TEXT NOT NULL UNIQUE,
	password_hash  TEXT NOT NULL,
	permissions    TEXT[] NOT NULL DEFAULT '{}',
	calls_made     INT NOT NULL DEFAULT 0,
	calls_received INT NOT NULL DEFAULT 0,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS files (
	id          TEXT PRIMARY KEY,
	tenant_id   TEXT NOT NULL,
	name        TEXT NOT NULL,
	stored_name TEXT NOT NULL,
	size        BIGINT NOT NULL,
	uploaded_by TEXT NOT NULL,
	uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS drivers (
	id                TEXT PRIMARY KEY,
	tenant_id         TEXT NOT NULL,
	mc_number         TEXT NOT NULL DEFAULT '',
	dot_number        TEXT NOT NULL DEFAULT '',
	cdl_number        TEXT NOT NULL DEFAULT '',
	status            TEXT NOT NULL DEFAULT 'Pending',
	payment_link      TEXT NOT NULL DEFAULT '',
	has_loader        BOOLEAN NOT NULL DEFAULT FALSE,
	data              JSONB NOT NULL,
	registration_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	last_updated      TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE UNIQUE INDEX IF NOT EXISTS drivers_tenant_mc
	ON drivers (tenant_id, mc_number) WHERE mc_number <> '';
CREATE UNIQUE INDEX IF NOT EXISTS drivers_tenant_dot
	ON drivers (tenant_id, dot_number) WHERE dot_number <> '';
CREATE UNIQUE INDEX IF NOT EXISTS drivers_tenant_cdl
	ON drivers (tenant_id, cdl_number) WHERE cdl_number <> '';

CREATE TABLE IF NOT EXISTS meetings (
	id            TEXT PRIMARY KEY,
	tenant_id     TEXT NOT NULL,
	title         TEXT NOT NULL,
	with_name     TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL,
	scheduled_at  TIMESTAMPTZ NOT NULL,
	notes         TEXT NOT NULL DEFAULT '',
	reminder_sent BOOLEAN NOT NULL DEFAULT FALSE,
	created_by    TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS meetings_reminder_due
	ON meetings (scheduled_at) WHERE reminder_sent = FALSE;
`

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, schema)
	return err
}
