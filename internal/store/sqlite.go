package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"SignalSentry/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists signal records to a SQLite database. Writes are
// serialized behind a mutex; readers may run concurrently thanks to WAL.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboard tools can read while the scanner writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			symbol           TEXT NOT NULL,
			timestamp        INTEGER NOT NULL,
			price            REAL,
			rsi              REAL,
			macd_line        REAL,
			macd_signal      REAL,
			macd_histogram   REAL,
			macd_position    TEXT,
			signal           TEXT,
			strength         TEXT,
			calendar_reasons TEXT,
			recent_buy_30d   INTEGER,
			recent_sell_30d  INTEGER,
			created_at       INTEGER NOT NULL,
			PRIMARY KEY (symbol, timestamp)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol_ts ON signals(symbol, timestamp)`,
	}

	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

// Append inserts one record; ErrDuplicate when the (symbol, timestamp)
// key already exists.
func (s *SQLiteStore) Append(rec *model.SignalRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	reasons, err := json.Marshal(rec.CalendarReasons)
	if err != nil {
		return fmt.Errorf("marshal reasons: %w", err)
	}

	res, err := s.db.Exec(`INSERT OR IGNORE INTO signals
		(symbol, timestamp, price, rsi, macd_line, macd_signal, macd_histogram,
		 macd_position, signal, strength, calendar_reasons,
		 recent_buy_30d, recent_sell_30d, created_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.Symbol, rec.Timestamp.Unix(), rec.Price, rec.RSI,
		rec.MACDLine, rec.MACDSignal, rec.MACDHistogram,
		string(rec.MACDPosition), string(rec.Signal), string(rec.Strength),
		string(reasons), rec.RecentBuyCount30, rec.RecentSellCount30,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert signal: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrDuplicate
	}
	return nil
}

// Cleanup deletes all records older than now minus retentionDays and
// returns the number deleted.
func (s *SQLiteStore) Cleanup(retentionDays int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -retentionDays).Unix()
	res, err := s.db.Exec(`DELETE FROM signals WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns aggregate counts for health reporting.
func (s *SQLiteStore) Stats() (*Stats, error) {
	stats := &Stats{BySignal: make(map[model.Signal]int64)}

	if err := s.db.QueryRow(`SELECT COUNT(*) FROM signals`).Scan(&stats.TotalRecords); err != nil {
		return nil, fmt.Errorf("count signals: %w", err)
	}
	if err := s.db.QueryRow(`SELECT COUNT(DISTINCT symbol) FROM signals`).Scan(&stats.DistinctSymbols); err != nil {
		return nil, fmt.Errorf("count symbols: %w", err)
	}

	rows, err := s.db.Query(`SELECT signal, COUNT(*) FROM signals GROUP BY signal`)
	if err != nil {
		return nil, fmt.Errorf("count per signal: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int64
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan signal count: %w", err)
		}
		stats.BySignal[model.Signal(kind)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if fi, err := os.Stat(s.path); err == nil {
		stats.SizeBytes = fi.Size()
	}
	return stats, nil
}

// Query returns records matching q, newest first.
func (s *SQLiteStore) Query(q Query) ([]model.SignalRecord, error) {
	var (
		where []string
		args  []interface{}
	)
	if q.Symbol != "" {
		where = append(where, "symbol = ?")
		args = append(args, q.Symbol)
	}
	if !q.Since.IsZero() {
		where = append(where, "timestamp >= ?")
		args = append(args, q.Since.Unix())
	}

	query := `SELECT symbol, timestamp, price, rsi, macd_line, macd_signal, macd_histogram,
		macd_position, signal, strength, calendar_reasons, recent_buy_30d, recent_sell_30d
		FROM signals`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query signals: %w", err)
	}
	defer rows.Close()

	var records []model.SignalRecord
	for rows.Next() {
		var (
			rec     model.SignalRecord
			ts      int64
			pos     string
			sig     string
			str     string
			reasons string
		)
		if err := rows.Scan(&rec.Symbol, &ts, &rec.Price, &rec.RSI,
			&rec.MACDLine, &rec.MACDSignal, &rec.MACDHistogram,
			&pos, &sig, &str, &reasons,
			&rec.RecentBuyCount30, &rec.RecentSellCount30); err != nil {
			return nil, fmt.Errorf("scan signal row: %w", err)
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.MACDPosition = model.MACDPosition(pos)
		rec.Signal = model.Signal(sig)
		rec.Strength = model.Strength(str)
		if reasons != "" {
			if err := json.Unmarshal([]byte(reasons), &rec.CalendarReasons); err != nil {
				return nil, fmt.Errorf("unmarshal reasons: %w", err)
			}
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite store")
	return s.db.Close()
}
