package database

import (
	"context"
	"fmt"

	"beacon-attendance/core/logger"
)

// Constraint names referenced by repositories when translating store errors.
const (
	ConstraintUsersEmail           = "users_email_key"
	ConstraintMeetingsBeaconWindow = "meetings_beacon_window_excl"
	ConstraintMeetingsWindowOrder  = "meetings_window_order_chk"
	ConstraintAttendanceUserMeet   = "uq_attendance_user_meeting"
	ConstraintReportsMeeting       = "uq_meeting_reports_meeting"
	ConstraintAttendanceUserFK     = "attendance_user_id_fkey"
	ConstraintAttendanceMeetingFK  = "attendance_meeting_id_fkey"
	ConstraintMeetingsBeaconFK     = "meetings_beacon_id_fkey"
	ConstraintBeaconsPkey          = "beacons_pkey"
)

var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS btree_gist`,
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

	`CREATE TABLE IF NOT EXISTS users (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		name           TEXT NOT NULL,
		email          TEXT NOT NULL,
		password_hash  TEXT NOT NULL,
		is_admin       BOOLEAN NOT NULL DEFAULT FALSE,
		push_player_id TEXT NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT users_email_key UNIQUE (email)
	)`,

	`CREATE TABLE IF NOT EXISTS beacons (
		id         TEXT PRIMARY KEY,
		major      INTEGER NOT NULL DEFAULT 0,
		minor      INTEGER NOT NULL DEFAULT 0,
		location   TEXT NOT NULL,
		name       TEXT NULL,
		last_used  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_beacons_location ON beacons (location)`,

	`CREATE TABLE IF NOT EXISTS meetings (
		id             UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		title          TEXT NOT NULL,
		description    TEXT NULL,
		start_time     TIMESTAMPTZ NULL,
		end_time       TIMESTAMPTZ NULL,
		topics         TEXT NULL,
		repeat_weekly  BOOLEAN NOT NULL DEFAULT FALSE,
		note           TEXT NULL,
		location       TEXT NULL,
		coordinator_id UUID NULL REFERENCES users (id) ON DELETE SET NULL,
		beacon_id      TEXT NULL CONSTRAINT meetings_beacon_id_fkey REFERENCES beacons (id) ON DELETE SET NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT meetings_window_order_chk CHECK (
			(start_time IS NULL AND end_time IS NULL) OR (start_time IS NOT NULL AND end_time > start_time)
		),
		CONSTRAINT meetings_beacon_window_excl EXCLUDE USING gist (
			beacon_id WITH =,
			tstzrange(start_time, end_time, '[)') WITH &&
		) WHERE (beacon_id IS NOT NULL AND start_time IS NOT NULL AND end_time IS NOT NULL)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_start_time ON meetings (start_time)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_coordinator ON meetings (coordinator_id)`,
	`CREATE INDEX IF NOT EXISTS idx_meetings_beacon ON meetings (beacon_id)`,

	`CREATE TABLE IF NOT EXISTS attendance (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL CONSTRAINT attendance_user_id_fkey REFERENCES users (id) ON DELETE CASCADE,
		meeting_id UUID NOT NULL CONSTRAINT attendance_meeting_id_fkey REFERENCES meetings (id) ON DELETE CASCADE,
		status     TEXT NOT NULL DEFAULT 'absent' CHECK (status IN ('present', 'late', 'absent')),
		marked_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_attendance_user_meeting UNIQUE (user_id, meeting_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_attendance_meeting ON attendance (meeting_id)`,

	`CREATE TABLE IF NOT EXISTS meeting_reports (
		id              UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		meeting_id      UUID NOT NULL REFERENCES meetings (id) ON DELETE CASCADE,
		report_date     TEXT NOT NULL,
		meeting_title   TEXT NOT NULL,
		invited_total   INTEGER NOT NULL DEFAULT 0,
		attendees_total INTEGER NOT NULL DEFAULT 0,
		late_total      INTEGER NOT NULL DEFAULT 0,
		absent_total    INTEGER NOT NULL DEFAULT 0,
		attendance_pct  DOUBLE PRECISION NOT NULL DEFAULT 0,
		late_pct        DOUBLE PRECISION NOT NULL DEFAULT 0,
		absent_pct      DOUBLE PRECISION NOT NULL DEFAULT 0,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT uq_meeting_reports_meeting UNIQUE (meeting_id)
	)`,

	`CREATE TABLE IF NOT EXISTS notifications (
		id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id    UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		meeting_id UUID NULL REFERENCES meetings (id) ON DELETE CASCADE,
		title      TEXT NOT NULL,
		message    TEXT NOT NULL,
		type       TEXT NOT NULL,
		data       JSONB NOT NULL DEFAULT '{}'::jsonb,
		is_read    BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_notifications_user ON notifications (user_id, created_at DESC)`,
}

// Migrate applies the schema. Every statement is idempotent.
func (d *Database) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := d.sqlx.ExecContext(ctx, stmt); err != nil {
			logger.Error("Database:Migrate", "statement", i, "error", err)
			return fmt.Errorf("migration statement %d: %w", i, err)
		}
	}
	logger.Info("Database:Migrate:Done", "statements", len(schema))
	return nil
}
