package storage

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound = errors.New("storage: render not found")
	ErrClosed   = errors.New("storage: store not initialized")
)

const schema = `
CREATE TABLE IF NOT EXISTS renders (
	id         TEXT PRIMARY KEY,
	preset     TEXT NOT NULL,
	effect     TEXT NOT NULL,
	theme      TEXT NOT NULL,
	width      INTEGER NOT NULL,
	height     INTEGER NOT NULL,
	frames     INTEGER NOT NULL,
	format     TEXT NOT NULL,
	output     TEXT NOT NULL,
	elapsed_ns INTEGER NOT NULL,
	created_ns INTEGER NOT NULL
)`

// Store is the render log: one sqlite row per export, plus an optional
// frame timing CSV per render.
type Store struct {
	baseDir string
	db      *sql.DB
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}
	if s.db != nil {
		return nil
	}
	db, err := sql.Open("sqlite", filepath.Join(s.baseDir, "renders.db"))
	if err != nil {
		return err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return fmt.Errorf("storage: create schema: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

type Record struct {
	ID        string        `json:"id"`
	Preset    string        `json:"preset"`
	Effect    string        `json:"effect"`
	Theme     string        `json:"theme"`
	Width     int           `json:"width"`
	Height    int           `json:"height"`
	Frames    int           `json:"frames"`
	Format    string        `json:"format"`
	Output    string        `json:"output"`
	Elapsed   time.Duration `json:"elapsed"`
	CreatedAt time.Time     `json:"created_at"`
}

// Save stores rec and returns its id. Empty ids and creation times are
// filled in.
func (s *Store) Save(rec Record) (string, error) {
	if s.db == nil {
		return "", ErrClosed
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	if rec.ID == "" {
		rec.ID = fmt.Sprintf("%s_%d", rec.Preset, rec.CreatedAt.UnixNano())
	}

	_, err := s.db.Exec(`
		INSERT INTO renders (id, preset, effect, theme, width, height, frames, format, output, elapsed_ns, created_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Preset, rec.Effect, rec.Theme, rec.Width, rec.Height, rec.Frames,
		rec.Format, rec.Output, int64(rec.Elapsed), rec.CreatedAt.UnixNano())
	if err != nil {
		return "", fmt.Errorf("storage: save %s: %w", rec.ID, err)
	}
	return rec.ID, nil
}

const selectRecord = `SELECT id, preset, effect, theme, width, height, frames, format, output, elapsed_ns, created_ns FROM renders`

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (Record, error) {
	var (
		rec              Record
		elapsed, created int64
	)
	err := row.Scan(&rec.ID, &rec.Preset, &rec.Effect, &rec.Theme, &rec.Width, &rec.Height,
		&rec.Frames, &rec.Format, &rec.Output, &elapsed, &created)
	if err != nil {
		return Record{}, err
	}
	rec.Elapsed = time.Duration(elapsed)
	rec.CreatedAt = time.Unix(0, created)
	return rec, nil
}

// List returns every render, newest first.
func (s *Store) List() ([]Record, error) {
	if s.db == nil {
		return []Record{}, nil
	}
	rows, err := s.db.Query(selectRecord + ` ORDER BY created_ns DESC, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recs := make([]Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (s *Store) Load(id string) (*Record, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rec, err := scanRecord(s.db.QueryRow(selectRecord+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// SaveTimings writes per-frame draw times next to the database.
func (s *Store) SaveTimings(id string, timings []time.Duration) error {
	dir := filepath.Join(s.baseDir, id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(dir, "timings.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"frame", "micros"}); err != nil {
		return err
	}
	for i, d := range timings {
		row := []string{strconv.Itoa(i), strconv.FormatFloat(float64(d)/float64(time.Microsecond), 'f', 3, 64)}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (s *Store) LoadTimings(id string) ([]time.Duration, error) {
	f, err := os.Open(filepath.Join(s.baseDir, id, "timings.csv"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: no timings for %s", ErrNotFound, id)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []time.Duration{}, nil
	}

	timings := make([]time.Duration, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		us, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		timings = append(timings, time.Duration(us*float64(time.Microsecond)))
	}
	return timings, nil
}

// ExportJSON writes recs as an indented JSON array.
func ExportJSON(w io.Writer, recs []Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
