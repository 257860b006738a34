package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_subjects",
		SQL: `CREATE TABLE IF NOT EXISTS subjects (
  id            BIGSERIAL PRIMARY KEY,
  name          TEXT      NOT NULL UNIQUE,
  icon          TEXT      NOT NULL DEFAULT 'fa-book',
  display_order INTEGER   NOT NULL
);`,
	},
	{
		Name: "create_table_subsections",
		SQL: `CREATE TABLE IF NOT EXISTS subsections (
  id            BIGSERIAL PRIMARY KEY,
  subject_id    BIGINT    NOT NULL REFERENCES subjects (id),
  name          TEXT      NOT NULL,
  icon          TEXT      NOT NULL DEFAULT 'fa-folder',
  display_order INTEGER   NOT NULL,
  UNIQUE (subject_id, name)
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id            BIGSERIAL   PRIMARY KEY,
  subsection_id BIGINT      NOT NULL REFERENCES subsections (id),
  name          TEXT        NOT NULL,
  link          TEXT        NOT NULL,
  upload_method TEXT        NOT NULL DEFAULT 'link',
  storage_path  TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_question_papers",
		SQL: `CREATE TABLE IF NOT EXISTS question_papers (
  id            BIGSERIAL   PRIMARY KEY,
  subject_id    BIGINT      NOT NULL REFERENCES subjects (id),
  subsection_id BIGINT      REFERENCES subsections (id),
  name          TEXT        NOT NULL,
  link          TEXT        NOT NULL,
  upload_method TEXT        NOT NULL DEFAULT 'link',
  storage_path  TEXT        NOT NULL DEFAULT '',
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_subsections_subject_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_subsections_subject_id ON subsections (subject_id);`,
	},
	{
		Name: "create_index_documents_subsection_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_subsection_id ON documents (subsection_id);`,
	},
	{
		Name: "create_index_question_papers_subject_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_question_papers_subject_id ON question_papers (subject_id);`,
	},
}

// seedSteps run on every startup. Duplicate subject names are silently
// ignored so re-seeding stays idempotent.
var seedSteps = []migrationStep{
	{
		Name: "seed_default_subjects",
		SQL: `INSERT INTO subjects (name, icon, display_order) VALUES
  ('தமிழ்', 'fa-book', 1),
  ('English', 'fa-book', 2),
  ('Mathematics', 'fa-calculator', 3)
ON CONFLICT (name) DO NOTHING;`,
	},
	{
		Name: "seed_default_subsection_tamil",
		SQL: `INSERT INTO subsections (subject_id, name, icon, display_order)
SELECT id, 'தமிழ் கையேடு 2025-2026', 'fa-folder', 1 FROM subjects WHERE name = 'தமிழ்'
ON CONFLICT (subject_id, name) DO NOTHING;`,
	},
}

// EnsureMigrated checks if the 'subjects' table exists, runs migrations if it
// doesn't, and always applies the idempotent seed data.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.subjects') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return runSteps(ctx, db, loc, dbHost, seedSteps, start)
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	if err := runSteps(ctx, db, loc, dbHost, steps, start); err != nil {
		return err
	}
	if err := runSteps(ctx, db, loc, dbHost, seedSteps, start); err != nil {
		return err
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func runSteps(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string, list []migrationStep, start time.Time) error {
	for _, step := range list {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}
	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
