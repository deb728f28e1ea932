package sqlite

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/beaconmap/internal/monitoring"
	"github.com/banshee-data/beaconmap/internal/registration"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Run is one persisted registration.
type Run struct {
	RunID         string    `json:"run_id"`
	CreatedAt     time.Time `json:"created_at"`
	SourcePath    string    `json:"source_path,omitempty"`
	ReferenceID   int       `json:"reference_id"`
	MinOverlap    int       `json:"min_overlap"`
	ScannerCount  int       `json:"scanner_count"`
	UniqueBeacons int       `json:"unique_beacons"`
	MaxManhattan  int       `json:"max_manhattan"`
	Notes         string    `json:"notes,omitempty"`
}

// ScannerRecord is the resolved pose of one scanner within a run.
type ScannerRecord struct {
	RunID         string                `json:"run_id"`
	ScannerID     int                   `json:"scanner_id"`
	Position      registration.Position `json:"position"`
	RotationIndex int                   `json:"rotation_index"`
	Rotation      string                `json:"rotation"`
	ParentID      *int                  `json:"parent_id,omitempty"`
	BeaconCount   int                   `json:"beacon_count"`
}

// Store provides persistence for registration runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// SQLite pragmas are per connection; one connection keeps them in force.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("execute %q: %w", pragma, err)
		}
	}

	s := NewStore(db)
	if err := s.MigrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// NewStore wraps an existing database handle. The caller is responsible for
// running MigrateUp.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// MigrateUp applies all pending embedded migrations.
// Returns nil if the schema is already current.
func (s *Store) MigrateUp() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}
	// Note: m is not closed because that would close the shared *sql.DB.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// SchemaVersion returns the current migration version and dirty state.
// Returns 0, false, nil if no migrations have been applied yet.
func (s *Store) SchemaVersion() (version uint, dirty bool, err error) {
	m, err := s.newMigrate()
	if err != nil {
		return 0, false, err
	}
	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return version, dirty, err
}

func (s *Store) newMigrate() (*migrate.Migrate, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(s.db, &migratesqlite.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create sqlite driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	return m, nil
}

// InsertRun stores run together with every scanner pose and the unique
// beacon set of region. Totals on run are filled from region. If run.RunID
// is empty a new UUID is generated; a zero CreatedAt is set to now.
func (s *Store) InsertRun(run *Run, region *registration.Region) error {
	if region == nil {
		return errors.New("insert run: nil region")
	}
	if unresolved := region.Unresolved(); len(unresolved) > 0 {
		return fmt.Errorf("insert run: %d scanner(s) unresolved", len(unresolved))
	}
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	beacons := region.UniqueBeacons()
	run.ReferenceID = region.Scanners[region.Reference].ID
	run.ScannerCount = len(region.Scanners)
	run.UniqueBeacons = len(beacons)
	run.MaxManhattan = region.MaxScannerManhattanDistance()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin insert run: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO registration_runs (
			run_id, created_at_ns, source_path, reference_id, min_overlap,
			scanner_count, unique_beacons, max_manhattan, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.RunID,
		run.CreatedAt.UnixNano(),
		nullString(run.SourcePath),
		run.ReferenceID,
		run.MinOverlap,
		run.ScannerCount,
		run.UniqueBeacons,
		run.MaxManhattan,
		nullString(run.Notes),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	scannerStmt, err := tx.Prepare(`
		INSERT INTO run_scanners (
			run_id, scanner_id, x, y, z, rotation_index, rotation, parent_id, beacon_count
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare scanner insert: %w", err)
	}
	defer scannerStmt.Close()

	for i, sc := range region.Scanners {
		res := region.Resolutions[i]
		var parent sql.NullInt64
		if res.Parent >= 0 {
			parent = sql.NullInt64{Int64: int64(region.Scanners[res.Parent].ID), Valid: true}
		}
		_, err := scannerStmt.Exec(
			run.RunID, sc.ID,
			sc.Position.X, sc.Position.Y, sc.Position.Z,
			int(res.Rotation), res.Rotation.String(),
			parent, len(sc.Beacons),
		)
		if err != nil {
			return fmt.Errorf("insert scanner %d: %w", sc.ID, err)
		}
	}

	beaconStmt, err := tx.Prepare(`INSERT INTO run_beacons (run_id, x, y, z) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare beacon insert: %w", err)
	}
	defer beaconStmt.Close()

	for _, b := range beacons {
		if _, err := beaconStmt.Exec(run.RunID, b.X, b.Y, b.Z); err != nil {
			return fmt.Errorf("insert beacon %s: %w", b, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	monitoring.Logf("sqlite: stored run %s (%d scanners, %d beacons)", run.RunID, run.ScannerCount, run.UniqueBeacons)
	return nil
}

const runColumns = `run_id, created_at_ns, source_path, reference_id, min_overlap,
	scanner_count, unique_beacons, max_manhattan, notes`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	r := &Run{}
	var createdAt int64
	var sourcePath, notes sql.NullString
	err := row.Scan(
		&r.RunID, &createdAt, &sourcePath, &r.ReferenceID, &r.MinOverlap,
		&r.ScannerCount, &r.UniqueBeacons, &r.MaxManhattan, &notes,
	)
	if err != nil {
		return nil, err
	}
	r.CreatedAt = time.Unix(0, createdAt)
	if sourcePath.Valid {
		r.SourcePath = sourcePath.String
	}
	if notes.Valid {
		r.Notes = notes.String
	}
	return r, nil
}

// GetRun returns a run by ID. The error wraps sql.ErrNoRows when absent.
func (s *Store) GetRun(runID string) (*Run, error) {
	row := s.db.QueryRow(`SELECT `+runColumns+` FROM registration_runs WHERE run_id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		return nil, fmt.Errorf("get run %s: %w", runID, err)
	}
	return r, nil
}

// ListRuns returns all runs, newest first.
func (s *Store) ListRuns() ([]*Run, error) {
	rows, err := s.db.Query(`SELECT ` + runColumns + ` FROM registration_runs ORDER BY created_at_ns DESC, run_id`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// ListScanners returns the scanner poses of a run ordered by scanner ID.
func (s *Store) ListScanners(runID string) ([]*ScannerRecord, error) {
	rows, err := s.db.Query(`
		SELECT run_id, scanner_id, x, y, z, rotation_index, rotation, parent_id, beacon_count
		FROM run_scanners
		WHERE run_id = ?
		ORDER BY scanner_id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("list scanners: %w", err)
	}
	defer rows.Close()

	var out []*ScannerRecord
	for rows.Next() {
		rec := &ScannerRecord{}
		var parent sql.NullInt64
		err := rows.Scan(
			&rec.RunID, &rec.ScannerID,
			&rec.Position.X, &rec.Position.Y, &rec.Position.Z,
			&rec.RotationIndex, &rec.Rotation, &parent, &rec.BeaconCount,
		)
		if err != nil {
			return nil, fmt.Errorf("scan scanner: %w", err)
		}
		if parent.Valid {
			p := int(parent.Int64)
			rec.ParentID = &p
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// ListBeacons returns the unique global beacons of a run, sorted.
func (s *Store) ListBeacons(runID string) ([]registration.Position, error) {
	rows, err := s.db.Query(`SELECT x, y, z FROM run_beacons WHERE run_id = ? ORDER BY x, y, z`, runID)
	if err != nil {
		return nil, fmt.Errorf("list beacons: %w", err)
	}
	defer rows.Close()

	var out []registration.Position
	for rows.Next() {
		var p registration.Position
		if err := rows.Scan(&p.X, &p.Y, &p.Z); err != nil {
			return nil, fmt.Errorf("scan beacon: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// DeleteRun removes a run and its scanners and beacons. Returns
// sql.ErrNoRows if the run does not exist.
func (s *Store) DeleteRun(runID string) error {
	result, err := s.db.Exec("DELETE FROM registration_runs WHERE run_id = ?", runID)
	if err != nil {
		return fmt.Errorf("delete run: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete run rows affected: %w", err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
