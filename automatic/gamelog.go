package automatic

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// GameLog persists episode summaries to a SQLite database so long runs
// can be analyzed after the fact.
type GameLog struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS episodes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	episode INTEGER NOT NULL,
	worker INTEGER NOT NULL,
	score INTEGER NOT NULL,
	moves INTEGER NOT NULL,
	max_tile INTEGER NOT NULL,
	win INTEGER NOT NULL,
	played_at TEXT NOT NULL
);`

// OpenGameLog opens (creating if needed) the episode database at path.
func OpenGameLog(path string) (*GameLog, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open episode db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create episode table: %w", err)
	}
	return &GameLog{db: db}, nil
}

// Record inserts one episode result.
func (g *GameLog) Record(res EpisodeResult) error {
	_, err := g.db.Exec(
		`INSERT INTO episodes (episode, worker, score, moves, max_tile, win, played_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.Episode, res.Worker, res.Score, res.Moves, res.MaxTile, boolToInt(res.Win),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record episode: %w", err)
	}
	return nil
}

func (g *GameLog) Close() error {
	return g.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
