package db

// migrations are applied in order by Migrate; each statement is idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS requisitions (
		id          UUID PRIMARY KEY,
		title       TEXT NOT NULL,
		company     TEXT NOT NULL,
		job         JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		requisition_id  UUID NOT NULL REFERENCES requisitions(id) ON DELETE CASCADE,
		candidate_id    INTEGER NOT NULL,
		position        INTEGER NOT NULL,
		name            TEXT NOT NULL,
		profile         JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		PRIMARY KEY (requisition_id, candidate_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS candidates_position_idx
		ON candidates (requisition_id, position)`,
	`CREATE TABLE IF NOT EXISTS ranking_runs (
		id              UUID PRIMARY KEY,
		requisition_id  UUID REFERENCES requisitions(id) ON DELETE CASCADE,
		sort_key        TEXT NOT NULL,
		weights         JSONB NOT NULL,
		result          JSONB NOT NULL,
		created_at      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS ranking_runs_requisition_idx
		ON ranking_runs (requisition_id, created_at DESC)`,
}
