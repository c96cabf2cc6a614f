package output

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/jsphweid/vivechord/model"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS chords (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session    TEXT NOT NULL,
	word       INTEGER NOT NULL,
	symbol     TEXT NOT NULL,
	described  TEXT NOT NULL,
	emitted_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS chords_session ON chords(session);
`

// History stores played chords in sqlite.
type History struct {
	db *sql.DB
}

func OpenHistory(path string) (*History, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open history: %w", err)
	}
	// one connection keeps ":memory:" databases alive and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create history schema: %w", err)
	}
	return &History{db: db}, nil
}

// Session returns a sink recording chords under the given session id.
func (h *History) Session(id string) Sink {
	return historySink{h: h, session: id}
}

type historySink struct {
	h       *History
	session string
}

func (s historySink) Emit(c model.Chord) error {
	// sqlite integers are signed; the word is stored by bit pattern
	_, err := s.h.db.Exec(
		`INSERT INTO chords (session, word, symbol, described, emitted_at) VALUES (?, ?, ?, ?, ?)`,
		s.session, int64(c.Word), string(c.Symbol), c.Described, c.At.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("record chord: %w", err)
	}
	return nil
}

type Entry struct {
	Session string
	model.Chord
}

// Recent returns up to limit chords, newest first.
func (h *History) Recent(limit int) ([]Entry, error) {
	rows, err := h.db.Query(
		`SELECT session, word, symbol, described, emitted_at FROM chords ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var res []Entry
	for rows.Next() {
		var (
			e    Entry
			word int64
			sym  string
			at   int64
		)
		if err := rows.Scan(&e.Session, &word, &sym, &e.Described, &at); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Word = model.Word(word)
		e.Symbol = model.Symbol(sym)
		e.At = time.Unix(0, at)
		res = append(res, e)
	}
	return res, rows.Err()
}

func (h *History) Close() error {
	return h.db.Close()
}
