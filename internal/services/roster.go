package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"sort"
	"strings"
)

const unknownStudent = "Unknown"

type RosterEntry struct {
	Name  string
	Grade string
}

// Roster maps RFID tag ids to registered students. It is read-only after load.
type Roster struct {
	entries map[string]RosterEntry
	tags    []string
}

// LoadRoster reads a tag_id,student_name,grade CSV. A missing file yields an
// empty roster.
func LoadRoster(path string) (*Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Printf("[SCAN] Roster %s not found, starting with an empty roster", path)
			return NewRoster(nil), nil
		}
		return nil, err
	}
	defer f.Close()

	roster, err := ParseRoster(f)
	if err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	log.Printf("[SCAN] Loaded %d students from %s", len(roster.tags), path)
	return roster, nil
}

// ParseRoster reads roster CSV from r. The first row is the header.
func ParseRoster(r io.Reader) (*Roster, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	entries := make(map[string]RosterEntry)
	for i, rec := range records {
		if i == 0 || len(rec) == 0 {
			continue
		}
		tag := strings.TrimSpace(rec[0])
		if tag == "" {
			continue
		}
		entry := RosterEntry{Name: unknownStudent}
		if len(rec) > 1 && strings.TrimSpace(rec[1]) != "" {
			entry.Name = strings.TrimSpace(rec[1])
		}
		if len(rec) > 2 {
			entry.Grade = strings.TrimSpace(rec[2])
		}
		entries[tag] = entry
	}
	return NewRoster(entries), nil
}

func NewRoster(entries map[string]RosterEntry) *Roster {
	r := &Roster{entries: make(map[string]RosterEntry, len(entries))}
	for tag, e := range entries {
		r.entries[tag] = e
		r.tags = append(r.tags, tag)
	}
	sort.Strings(r.tags)
	return r
}

// Lookup returns the student for tag, or "Unknown" with no grade.
func (r *Roster) Lookup(tag string) RosterEntry {
	if e, ok := r.entries[tag]; ok {
		return e
	}
	return RosterEntry{Name: unknownStudent}
}

func (r *Roster) Tags() []string {
	return r.tags
}
