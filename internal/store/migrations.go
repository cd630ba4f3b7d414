package store

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    export_path TEXT NOT NULL,
    export_date TEXT NOT NULL DEFAULT '',
    analyzed_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_analyzed_at ON runs(analyzed_at);

CREATE TABLE IF NOT EXISTS run_summaries (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id   INTEGER NOT NULL REFERENCES runs(id),
    platform TEXT NOT NULL,
    source   TEXT NOT NULL,
    n        INTEGER NOT NULL DEFAULT 0,
    mean     REAL NOT NULL DEFAULT 0,
    median   REAL NOT NULL DEFAULT 0,
    p75      REAL NOT NULL DEFAULT 0,
    p90      REAL NOT NULL DEFAULT 0,
    p95      REAL NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_summaries_run ON run_summaries(run_id);
CREATE INDEX IF NOT EXISTS idx_summaries_platform ON run_summaries(platform);
`
