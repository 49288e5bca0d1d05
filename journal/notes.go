package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/internal/id"
)

// Note is a free-form journal entry that is not tied to one trade.
type Note struct {
	ID      string
	Title   string
	Content string
	Created time.Time
	Updated time.Time
}

// DisplayTitle is the title, or "Untitled Note" when it is blank.
func (n Note) DisplayTitle() string {
	if t := strings.TrimSpace(n.Title); t != "" {
		return t
	}
	return "Untitled Note"
}

// stampNote assigns an ID to a new note and sets its timestamps. created
// is the stored creation time, zero for a new note.
func stampNote(n Note, created time.Time) Note {
	now := time.Now().UTC()
	if n.ID == "" {
		n.ID = id.New()
	}
	n.Title = strings.TrimSpace(n.Title)
	switch {
	case !created.IsZero():
		n.Created = created
	case n.Created.IsZero():
		n.Created = now
	}
	n.Updated = now
	return n
}

// sortNotes orders notes most recently updated first.
func sortNotes(notes []Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		if !notes[i].Updated.Equal(notes[j].Updated) {
			return notes[i].Updated.After(notes[j].Updated)
		}
		return notes[i].ID > notes[j].ID
	})
}

func (m *Memory) Notes() ([]Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := slices.Clone(m.notes)
	sortNotes(out)
	return out, nil
}

func (m *Memory) FindNote(noteID string) (Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if i := m.noteIndex(noteID); i >= 0 {
		return m.notes[i], nil
	}
	return Note{}, fmt.Errorf("note %q: %w", noteID, ErrNotFound)
}

func (m *Memory) SaveNote(n Note) (Note, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if i := m.noteIndex(n.ID); n.ID != "" && i >= 0 {
		n = stampNote(n, m.notes[i].Created)
		m.notes[i] = n
		return n, nil
	}
	n = stampNote(n, time.Time{})
	m.notes = append(m.notes, n)
	return n, nil
}

func (m *Memory) DeleteNote(noteID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.noteIndex(noteID)
	if i < 0 {
		return false, nil
	}
	m.notes = slices.Delete(m.notes, i, i+1)
	return true, nil
}

func (m *Memory) noteIndex(noteID string) int {
	return slices.IndexFunc(m.notes, func(n Note) bool { return n.ID == noteID })
}

func (j *SQLite) Notes() ([]Note, error) {
	rows, err := j.db.Query(`SELECT id, title, content, created, updated FROM notes`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.Created, &n.Updated); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sortNotes(out)
	return out, nil
}

func (j *SQLite) FindNote(noteID string) (Note, error) {
	var n Note
	err := j.db.QueryRow(`
		SELECT id, title, content, created, updated
		FROM notes
		WHERE id = ?`, noteID).Scan(&n.ID, &n.Title, &n.Content, &n.Created, &n.Updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Note{}, fmt.Errorf("note %q: %w", noteID, ErrNotFound)
		}
		return Note{}, err
	}
	return n, nil
}

// SaveNote inserts n, or updates the note with the same ID keeping its
// creation time.
func (j *SQLite) SaveNote(n Note) (Note, error) {
	err := j.inTx(func(tx *sql.Tx) error {
		var created time.Time
		if n.ID != "" {
			err := tx.QueryRow(`SELECT created FROM notes WHERE id = ?`, n.ID).Scan(&created)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return err
			}
		}
		n = stampNote(n, created)

		_, err := tx.Exec(`
			INSERT INTO notes (id, title, content, created, updated)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				title = excluded.title,
				content = excluded.content,
				updated = excluded.updated`,
			n.ID, n.Title, n.Content, n.Created, n.Updated)
		return err
	})
	if err != nil {
		return Note{}, fmt.Errorf("save note: %w", err)
	}
	return n, nil
}

func (j *SQLite) DeleteNote(noteID string) (bool, error) {
	return j.deleteOne(`DELETE FROM notes WHERE id = ?`, noteID)
}
