package entity

import (
	"time"

	"github.com/google/uuid"
)

// PublishedEntry is a canonical verse addressed by its immutable ref
// "{chapter}:{verse}". Content updates bump Version; the previous text
// is snapshotted into an EntryVersion first.
type PublishedEntry struct {
	Ref           string
	Chapter       int
	Verse         int
	TextPrimary   string
	TextSecondary string
	Theme         string
	Version       int
	SubmissionId  uuid.UUID
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}

type EntryVersion struct {
	Id            uuid.UUID
	EntryRef      string
	Version       int
	TextPrimary   string
	TextSecondary string
	ChangeNote    string
	CreatedAt     time.Time
}
