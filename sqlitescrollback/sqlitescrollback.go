// Package sqlitescrollback persists terminal scrollback in SQLite.
//
// It implements actcliterm.ScrollbackProvider so long sessions survive a
// process restart. Lines are stored newest-last; trimming removes the
// oldest rows first.
package sqlitescrollback

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"image/color"

	_ "modernc.org/sqlite"

	actcliterm "github.com/llm-case-studies/go-actcli-term"
)

// Store is a SQLite-backed scrollback provider. Methods are not safe
// for concurrent use, matching the terminal's locking model: the owner
// serializes.
type Store struct {
	db       *sql.DB
	maxLines int
}

// storedCell is the JSON shape of one cell. Colors are packed as
// strings: "" default, "i:<n>" indexed, "r:<rrggbb>" direct.
type storedCell struct {
	Char  rune                `json:"c"`
	Fg    string              `json:"f,omitempty"`
	Bg    string              `json:"b,omitempty"`
	Flags actcliterm.CellFlags `json:"a,omitempty"`
}

// Open creates or opens a scrollback store at path. maxLines bounds the
// retained history; 0 disables retention.
func Open(path string, maxLines int) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open scrollback db: %w", err)
	}

	const schema = `
CREATE TABLE IF NOT EXISTS scrollback (
	seq   INTEGER PRIMARY KEY AUTOINCREMENT,
	cells TEXT NOT NULL
);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create scrollback table: %w", err)
	}

	return &Store{db: db, maxLines: maxLines}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Push appends a line, trimming the oldest rows over capacity.
// Storage errors drop the line; scrollback is best-effort history.
func (s *Store) Push(line []actcliterm.Cell) {
	if s.maxLines <= 0 {
		return
	}

	cells := make([]storedCell, len(line))
	for i, c := range line {
		cells[i] = storedCell{
			Char:  c.Char,
			Fg:    packColor(c.Fg, true),
			Bg:    packColor(c.Bg, false),
			Flags: c.Flags &^ actcliterm.CellFlagDirty,
		}
	}

	data, err := json.Marshal(cells)
	if err != nil {
		return
	}

	if _, err := s.db.Exec(`INSERT INTO scrollback (cells) VALUES (?)`, string(data)); err != nil {
		return
	}
	s.trim()
}

func (s *Store) trim() {
	s.db.Exec(`DELETE FROM scrollback WHERE seq NOT IN (
		SELECT seq FROM scrollback ORDER BY seq DESC LIMIT ?)`, s.maxLines)
}

// Len returns the number of stored lines.
func (s *Store) Len() int {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM scrollback`).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Line returns the line at index, where 0 is the oldest line.
func (s *Store) Line(index int) []actcliterm.Cell {
	if index < 0 {
		return nil
	}

	var data string
	err := s.db.QueryRow(
		`SELECT cells FROM scrollback ORDER BY seq LIMIT 1 OFFSET ?`, index,
	).Scan(&data)
	if err != nil {
		return nil
	}

	var cells []storedCell
	if err := json.Unmarshal([]byte(data), &cells); err != nil {
		return nil
	}

	line := make([]actcliterm.Cell, len(cells))
	for i, c := range cells {
		line[i] = actcliterm.Cell{
			Char:  c.Char,
			Fg:    unpackColor(c.Fg, true),
			Bg:    unpackColor(c.Bg, false),
			Flags: c.Flags,
		}
	}
	return line
}

// Clear removes all stored lines.
func (s *Store) Clear() {
	s.db.Exec(`DELETE FROM scrollback`)
}

// SetMaxLines adjusts the capacity, trimming immediately if needed.
func (s *Store) SetMaxLines(max int) {
	s.maxLines = max
	if max > 0 {
		s.trim()
	} else {
		s.Clear()
	}
}

// MaxLines returns the current capacity.
func (s *Store) MaxLines() int {
	return s.maxLines
}

// packColor encodes a cell color as a short string.
func packColor(c color.Color, fg bool) string {
	switch v := c.(type) {
	case nil:
		return ""
	case *actcliterm.NamedColor:
		if (fg && v.Name == actcliterm.NamedColorForeground) ||
			(!fg && v.Name == actcliterm.NamedColorBackground) {
			return ""
		}
		return fmt.Sprintf("i:%d", v.Name)
	case *actcliterm.IndexedColor:
		return fmt.Sprintf("i:%d", v.Index)
	case color.RGBA:
		return fmt.Sprintf("r:%02x%02x%02x", v.R, v.G, v.B)
	default:
		r, g, b, _ := c.RGBA()
		return fmt.Sprintf("r:%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
	}
}

// unpackColor decodes a packed color string.
func unpackColor(s string, fg bool) color.Color {
	if s == "" {
		if fg {
			return &actcliterm.NamedColor{Name: actcliterm.NamedColorForeground}
		}
		return &actcliterm.NamedColor{Name: actcliterm.NamedColorBackground}
	}

	var n int
	if _, err := fmt.Sscanf(s, "i:%d", &n); err == nil {
		if n < 256 {
			return &actcliterm.IndexedColor{Index: n}
		}
		return &actcliterm.NamedColor{Name: n}
	}

	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "r:%02x%02x%02x", &r, &g, &b); err == nil {
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}

	if fg {
		return &actcliterm.NamedColor{Name: actcliterm.NamedColorForeground}
	}
	return &actcliterm.NamedColor{Name: actcliterm.NamedColorBackground}
}

var _ actcliterm.ScrollbackProvider = (*Store)(nil)
