// Package persistence archives finished worlds to a SQLite atlas for offline
// inspection. It is write-mostly: nothing rebuilds a World from it.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hex-planet/internal/hex"
	"github.com/talgya/hex-planet/internal/world"
)

// DB wraps a SQLite connection for the generation atlas.
type DB struct {
	conn *sqlx.DB
}

// Run is one archived generation.
type Run struct {
	ID          string `db:"id"`
	Seed        int64  `db:"seed"`
	ChunkRadius int    `db:"chunk_radius"`
	ChunkSize   int    `db:"chunk_size"`
	Tiles       int    `db:"tile_count"`
	Continents  int    `db:"continent_count"`
	CreatedUnix int64  `db:"created_unix"`
}

// Created returns the archive time.
func (r Run) Created() time.Time { return time.Unix(0, r.CreatedUnix) }

// ContinentRow is the archived form of a continent's cached attributes.
type ContinentRow struct {
	ID            int     `db:"id"`
	Area          int     `db:"area"`
	MeanElevation float64 `db:"mean_elevation"`
	MinElevation  int     `db:"min_elevation"`
	MaxElevation  int     `db:"max_elevation"`
	MeanHumidity  float64 `db:"mean_humidity"`
	CentroidX     float64 `db:"centroid_x"`
	CentroidY     float64 `db:"centroid_y"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		chunk_radius INTEGER NOT NULL,
		chunk_size INTEGER NOT NULL,
		tile_count INTEGER NOT NULL,
		continent_count INTEGER NOT NULL,
		created_unix INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS tiles (
		run_id TEXT NOT NULL REFERENCES runs(id),
		pos_x INTEGER NOT NULL,
		pos_y INTEGER NOT NULL,
		biome TEXT NOT NULL,
		elevation INTEGER NOT NULL,
		humidity REAL NOT NULL,
		water_level REAL NOT NULL,
		water_traversed REAL NOT NULL,
		rivers INTEGER NOT NULL,
		continent_id INTEGER,
		PRIMARY KEY (run_id, pos_x, pos_y)
	);

	CREATE TABLE IF NOT EXISTS continents (
		run_id TEXT NOT NULL REFERENCES runs(id),
		id INTEGER NOT NULL,
		area INTEGER NOT NULL,
		mean_elevation REAL NOT NULL,
		min_elevation INTEGER NOT NULL,
		max_elevation INTEGER NOT NULL,
		mean_humidity REAL NOT NULL,
		centroid_x REAL NOT NULL,
		centroid_y REAL NOT NULL,
		PRIMARY KEY (run_id, id)
	);

	CREATE TABLE IF NOT EXISTS run_meta (
		run_id TEXT NOT NULL REFERENCES runs(id),
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		PRIMARY KEY (run_id, key)
	);

	CREATE INDEX IF NOT EXISTS idx_tiles_biome ON tiles(run_id, biome);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveSnapshot archives a finished world under a fresh run ID.
func (db *DB) SaveSnapshot(snap *world.Snapshot) (string, error) {
	runID := uuid.NewString()
	continents := snap.Continents()
	slog.Info("archiving world", "run", runID, "seed", snap.Seed(), "tiles", snap.Len())

	owner := make(map[hex.Coord]int)
	for _, c := range continents {
		for _, t := range c.Tiles() {
			owner[t.Position()] = c.ID()
		}
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO runs
		(id, seed, chunk_radius, chunk_size, tile_count, continent_count, created_unix)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, snap.Seed(), snap.ChunkRadius(), snap.ChunkSize(), snap.Len(), len(continents),
		time.Now().UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Preparex(`INSERT INTO tiles
		(run_id, pos_x, pos_y, biome, elevation, humidity, water_level, water_traversed, rivers, continent_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, t := range snap.Tiles() {
		p := t.Position()
		var continent any
		if id, ok := owner[p]; ok {
			continent = id
		}
		_, err := stmt.Exec(runID, p.X, p.Y, t.Biome().String(), t.Elevation(), t.Humidity(),
			t.WaterLevel(), t.WaterTraversed(), riverMask(t), continent)
		if err != nil {
			return "", fmt.Errorf("insert tile %v: %w", p, err)
		}
	}

	for _, c := range continents {
		s := c.Stats()
		_, err := tx.Exec(`INSERT INTO continents
			(run_id, id, area, mean_elevation, min_elevation, max_elevation, mean_humidity, centroid_x, centroid_y)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, c.ID(), s.Area, s.MeanElevation, s.MinElevation, s.MaxElevation, s.MeanHumidity,
			s.CentroidX, s.CentroidY,
		)
		if err != nil {
			return "", fmt.Errorf("insert continent %d: %w", c.ID(), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	slog.Info("world archived", "run", runID)
	return runID, nil
}

// riverMask packs the six river edges into bits, East first.
func riverMask(t world.TileView) int {
	mask := 0
	for _, d := range hex.Directions {
		if t.RiverConnection(d) {
			mask |= 1 << d
		}
	}
	return mask
}

// SaveMeta stores a key-value pair against a run.
func (db *DB) SaveMeta(runID, key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO run_meta (run_id, key, value) VALUES (?, ?, ?)",
		runID, key, value,
	)
	return err
}

// GetMeta retrieves a run's metadata value.
func (db *DB) GetMeta(runID, key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM run_meta WHERE run_id = ? AND key = ?", runID, key)
	return value, err
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		`SELECT id, seed, chunk_radius, chunk_size, tile_count, continent_count, created_unix
		FROM runs ORDER BY created_unix DESC, rowid DESC LIMIT ?`,
		limit,
	)
	return runs, err
}

// BiomeCounts returns the number of archived tiles per biome for a run.
func (db *DB) BiomeCounts(runID string) (map[world.Biome]int, error) {
	var rows []struct {
		Biome string `db:"biome"`
		N     int    `db:"n"`
	}
	err := db.conn.Select(&rows,
		"SELECT biome, COUNT(*) AS n FROM tiles WHERE run_id = ? GROUP BY biome",
		runID,
	)
	if err != nil {
		return nil, err
	}

	counts := make(map[world.Biome]int, len(rows))
	for _, r := range rows {
		b, ok := world.ParseBiome(r.Biome)
		if !ok {
			return nil, fmt.Errorf("run %s: unknown biome %q in atlas", runID, r.Biome)
		}
		counts[b] = r.N
	}
	return counts, nil
}

// Continents returns a run's archived continents ordered by ID.
func (db *DB) Continents(runID string) ([]ContinentRow, error) {
	var rows []ContinentRow
	err := db.conn.Select(&rows,
		`SELECT id, area, mean_elevation, min_elevation, max_elevation, mean_humidity, centroid_x, centroid_y
		FROM continents WHERE run_id = ? ORDER BY id`,
		runID,
	)
	return rows, err
}
