// Package memory implements the session-scoped conversation store.
//
// It uses SQLite with FTS5 full-text search to keep a history of
// question/answer exchanges per chat session. Each session's history is
// owned exclusively by that session; concurrent sessions never read or
// write each other's exchanges.
package memory

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// ─── Types ───────────────────────────────────────────────────────────────────

// Session is one conversation, keyed by the host-provided session id.
type Session struct {
	ID        string  `json:"id"`
	StartedAt string  `json:"started_at"`
	EndedAt   *string `json:"ended_at,omitempty"`
}

// Exchange is one request/response turn inside a session.
type Exchange struct {
	ID        int64  `json:"id"`
	SessionID string `json:"session_id"`
	UserText  string `json:"user_text"`
	Intent    string `json:"intent"`
	Response  string `json:"response"`
	CreatedAt string `json:"created_at"`
}

// AddExchangeParams holds the input for recording a new exchange.
type AddExchangeParams struct {
	SessionID string
	UserText  string
	Intent    string
	Response  string
}

// Stats holds aggregate conversation statistics.
type Stats struct {
	TotalSessions  int            `json:"total_sessions"`
	TotalExchanges int            `json:"total_exchanges"`
	ByIntent       map[string]int `json:"by_intent"`
}

// ─── Config ──────────────────────────────────────────────────────────────────

// Config holds conversation store configuration.
type Config struct {
	DataDir          string
	MaxHistoryLength int
}

// DefaultConfig returns the default configuration rooted at dataDir.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:          dataDir,
		MaxHistoryLength: 50,
	}
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Store is the conversation history engine backed by SQLite + FTS5.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates a Store with the given configuration. It creates the data
// directory if needed, opens SQLite with WAL mode, and runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("memory: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, "conversations.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("memory: open database: %w", err)
	}

	// SQLite performance pragmas
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return nil, fmt.Errorf("memory: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("memory: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			started_at TEXT NOT NULL DEFAULT (datetime('now')),
			ended_at   TEXT
		);

		CREATE TABLE IF NOT EXISTS exchanges (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			user_text  TEXT NOT NULL,
			intent     TEXT NOT NULL,
			response   TEXT NOT NULL,
			created_at TEXT NOT NULL DEFAULT (datetime('now')),
			FOREIGN KEY (session_id) REFERENCES sessions(id)
		);

		CREATE INDEX IF NOT EXISTS idx_exchanges_session ON exchanges(session_id);
		CREATE INDEX IF NOT EXISTS idx_exchanges_intent  ON exchanges(intent);
		CREATE INDEX IF NOT EXISTS idx_exchanges_created ON exchanges(created_at DESC);

		CREATE VIRTUAL TABLE IF NOT EXISTS exchanges_fts USING fts5(
			user_text,
			response,
			content='exchanges',
			content_rowid='id'
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ─── Sessions ────────────────────────────────────────────────────────────────

// EnsureSession creates the session row if it doesn't exist yet.
// Recording into an already-known session is a no-op here.
func (s *Store) EnsureSession(id string) error {
	_, err := s.db.Exec(`INSERT OR IGNORE INTO sessions (id) VALUES (?)`, id)
	if err != nil {
		return fmt.Errorf("memory: ensure session: %w", err)
	}
	return nil
}

// EndSession marks a session as ended.
func (s *Store) EndSession(id string) error {
	res, err := s.db.Exec(`UPDATE sessions SET ended_at = datetime('now') WHERE id = ? AND ended_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("memory: end session: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("memory: no open session %q", id)
	}
	return nil
}

// GetSession returns a session or nil when unknown.
func (s *Store) GetSession(id string) (*Session, error) {
	row := s.db.QueryRow(`SELECT id, started_at, ended_at FROM sessions WHERE id = ?`, id)
	var sess Session
	if err := row.Scan(&sess.ID, &sess.StartedAt, &sess.EndedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("memory: get session: %w", err)
	}
	return &sess, nil
}

// ─── Exchanges ───────────────────────────────────────────────────────────────

// AddExchange records one turn, creating the session on first use, and
// returns the new exchange id.
func (s *Store) AddExchange(p AddExchangeParams) (int64, error) {
	if p.SessionID == "" {
		return 0, fmt.Errorf("memory: session id is required")
	}
	if err := s.EnsureSession(p.SessionID); err != nil {
		return 0, err
	}

	res, err := s.db.Exec(
		`INSERT INTO exchanges (session_id, user_text, intent, response) VALUES (?, ?, ?, ?)`,
		p.SessionID, p.UserText, p.Intent, p.Response,
	)
	if err != nil {
		return 0, fmt.Errorf("memory: add exchange: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("memory: exchange id: %w", err)
	}

	// Keep the FTS index in sync with the content table.
	if _, err := s.db.Exec(
		`INSERT INTO exchanges_fts (rowid, user_text, response) VALUES (?, ?, ?)`,
		id, p.UserText, p.Response,
	); err != nil {
		return 0, fmt.Errorf("memory: index exchange: %w", err)
	}
	return id, nil
}

// History returns a session's exchanges, oldest first, capped at limit
// (or the configured maximum when limit <= 0).
func (s *Store) History(sessionID string, limit int) ([]Exchange, error) {
	if limit <= 0 || limit > s.cfg.MaxHistoryLength {
		limit = s.cfg.MaxHistoryLength
	}

	rows, err := s.db.Query(`
		SELECT id, session_id, user_text, intent, response, created_at
		FROM exchanges
		WHERE session_id = ?
		ORDER BY id DESC
		LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("memory: history: %w", err)
	}
	defer rows.Close()

	exchanges, err := scanExchanges(rows)
	if err != nil {
		return nil, err
	}
	// Reverse: query fetched newest-first to apply the cap.
	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}
	return exchanges, nil
}

// Search runs an FTS5 match over user text and responses across all
// sessions.
func (s *Store) Search(query string, limit int) ([]Exchange, error) {
	if query == "" {
		return nil, fmt.Errorf("memory: search query is required")
	}
	if limit <= 0 || limit > s.cfg.MaxHistoryLength {
		limit = s.cfg.MaxHistoryLength
	}

	rows, err := s.db.Query(`
		SELECT e.id, e.session_id, e.user_text, e.intent, e.response, e.created_at
		FROM exchanges_fts f
		JOIN exchanges e ON e.id = f.rowid
		WHERE exchanges_fts MATCH ?
		ORDER BY rank
		LIMIT ?`, ftsQuery(query), limit)
	if err != nil {
		return nil, fmt.Errorf("memory: search: %w", err)
	}
	defer rows.Close()

	return scanExchanges(rows)
}

// Stats returns aggregate conversation counts.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{ByIntent: make(map[string]int)}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&stats.TotalSessions); err != nil {
		return nil, fmt.Errorf("memory: stats: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM exchanges`).Scan(&stats.TotalExchanges); err != nil {
		return nil, fmt.Errorf("memory: stats: %w", err)
	}

	rows, err := s.db.Query(`SELECT intent, COUNT(*) FROM exchanges GROUP BY intent`)
	if err != nil {
		return nil, fmt.Errorf("memory: stats by intent: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var intent string
		var n int
		if err := rows.Scan(&intent, &n); err != nil {
			return nil, fmt.Errorf("memory: stats scan: %w", err)
		}
		stats.ByIntent[intent] = n
	}
	return stats, rows.Err()
}

func scanExchanges(rows *sql.Rows) ([]Exchange, error) {
	var out []Exchange
	for rows.Next() {
		var e Exchange
		if err := rows.Scan(&e.ID, &e.SessionID, &e.UserText, &e.Intent, &e.Response, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("memory: scan exchange: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ftsQuery quotes the user's free text so FTS5 treats it as terms, not
// query syntax.
func ftsQuery(query string) string {
	quoted := `"`
	for _, r := range query {
		if r == '"' {
			quoted += `""`
		} else {
			quoted += string(r)
		}
	}
	return quoted + `"`
}
