package entities

import "time"

// Note is a timestamped free-text annotation embedded in the notes list of its
// owning Application, Task, or Campaign. Notes are never stored as standalone
// items; new notes are prepended so the list stays most-recent-first.
type Note struct {
	ID        string
	Content   string
	CreatedAt string
	UpdatedAt string
}

// UpdateNote returns a copy of notes with the content and updatedAt of the note
// matching id replaced. All other notes are structurally unchanged; createdAt is
// never touched. The second return value reports whether the id was found.
func UpdateNote(notes []Note, id, content string, now time.Time) ([]Note, bool) {
	updated := make([]Note, len(notes))
	found := false

	for i, n := range notes {
		if n.ID == id {
			n.Content = content
			n.UpdatedAt = now.UTC().Format(time.RFC3339)
			found = true
		}
		updated[i] = n
	}

	return updated, found
}

// RemoveNote returns a copy of notes with the note matching id filtered out,
// preserving the order of the remaining notes.
func RemoveNote(notes []Note, id string) ([]Note, bool) {
	remaining := make([]Note, 0, len(notes))
	found := false

	for _, n := range notes {
		if n.ID == id {
			found = true
			continue
		}
		remaining = append(remaining, n)
	}

	return remaining, found
}
