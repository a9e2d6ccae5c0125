// Package storage provides the SQLite run ledger for the CLI.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/gridsim/internal/engine"
)

// Store manages the SQLite database connection for the run ledger.
type Store struct {
	db *sql.DB
}

// Run is one recorded simulation.
type Run struct {
	ID         int64
	Scenario   string
	Command    string // "run" or "boost"
	Mode       string
	Reason     string
	Ticks      int
	HPSum      int
	Score      int
	Winner     string // Empty unless a faction won
	Survivor   string // "x,y" of the last cart, empty otherwise
	Collisions int
	ElfAttack  int // Elf attack power used, 0 when the map default applied
	CreatedAt  time.Time
}

// NewRun builds a ledger row from a finished outcome.
func NewRun(scenario, command string, out engine.Outcome, elfAttack int) Run {
	r := Run{
		Scenario:   scenario,
		Command:    command,
		Mode:       out.Mode.String(),
		Reason:     out.Reason.String(),
		Ticks:      out.Ticks,
		HPSum:      out.HPSum,
		Score:      out.Score(),
		Collisions: len(out.Collisions),
		ElfAttack:  elfAttack,
	}
	if out.Winner != engine.FactionNone {
		r.Winner = out.Winner.String()
	}
	if out.HasSurvivor {
		r.Survivor = out.Survivor.String()
	}
	return r
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			scenario TEXT NOT NULL,
			command TEXT NOT NULL,
			mode TEXT NOT NULL,
			reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			hp_sum INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			winner TEXT,
			survivor TEXT,
			collisions INTEGER NOT NULL DEFAULT 0,
			elf_attack INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO runs
		 (scenario, command, mode, reason, ticks, hp_sum, score, winner, survivor, collisions, elf_attack)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario,
		r.Command,
		r.Mode,
		r.Reason,
		r.Ticks,
		r.HPSum,
		r.Score,
		nullString(r.Winner),
		nullString(r.Survivor),
		r.Collisions,
		r.ElfAttack,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// RecentRuns returns the latest runs, newest first. An empty scenario
// matches every scenario.
func (s *Store) RecentRuns(scenario string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, scenario, command, mode, reason, ticks, hp_sum, score,
		        winner, survivor, collisions, elf_attack, created_at
		 FROM runs
		 WHERE ? = '' OR scenario = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		scenario, scenario, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r         Run
			winner    sql.NullString
			survivor  sql.NullString
			createdAt any
		)
		if err := rows.Scan(
			&r.ID,
			&r.Scenario,
			&r.Command,
			&r.Mode,
			&r.Reason,
			&r.Ticks,
			&r.HPSum,
			&r.Score,
			&winner,
			&survivor,
			&r.Collisions,
			&r.ElfAttack,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Winner = winner.String
		r.Survivor = survivor.String
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// Scenarios returns the IDs of every scenario with recorded runs, sorted.
func (s *Store) Scenarios() ([]string, error) {
	rows, err := s.db.Query("SELECT DISTINCT scenario FROM runs ORDER BY scenario")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scenarios: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return ids, nil
}

// CountRuns returns how many runs are recorded for a scenario, or in
// total when scenario is empty.
func (s *Store) CountRuns(scenario string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs WHERE ? = '' OR scenario = ?", scenario, scenario).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count runs: %w", err)
	}
	return n, nil
}

// ClearRuns deletes all runs for the given scenario, or every run when
// scenario is empty.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ? = '' OR scenario = ?", scenario, scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
