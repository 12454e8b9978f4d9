package specification

import (
	"time"

	"communal-canon-be/pkg/revision"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BySubmission filters by submission_id
type BySubmission struct {
	SubmissionId uuid.UUID
}

func (s BySubmission) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("submission_id = ?", s.SubmissionId)
}

// BySession filters by session_id
type BySession struct {
	SessionId uuid.UUID
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// ByProposal filters by proposal_id
type ByProposal struct {
	ProposalId uuid.UUID
}

func (s ByProposal) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("proposal_id = ?", s.ProposalId)
}

// ByEntryRef filters by an entry ref column
type ByEntryRef struct {
	Ref string
}

func (s ByEntryRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("entry_ref = ?", s.Ref)
}

// ByStatus filters by status column
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByStatuses filters by a set of statuses
type ByStatuses struct {
	Statuses []string
}

func (s ByStatuses) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status IN ?", s.Statuses)
}

// ActivePrinciples selects principles currently in force
type ActivePrinciples struct{}

func (s ActivePrinciples) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("active = ?", true)
}

// NonTerminalForSubject matches open sessions for a given subject.
// Terminal statuses mirror consensus.SessionStatus.Terminal().
type NonTerminalForSubject struct {
	SubjectId uuid.UUID
}

func (s NonTerminalForSubject) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("subject_id = ? AND status IN ?", s.SubjectId,
		[]string{"pending", "active", "tallying"})
}

// OpenProposalForEntry matches open revision proposals for an entry,
// regardless of proposer. Open statuses mirror revision.OpenStatuses.
type OpenProposalForEntry struct {
	Ref string
}

func (s OpenProposalForEntry) Apply(db *gorm.DB) *gorm.DB {
	statuses := revision.OpenStatuses()
	values := make([]string, len(statuses))
	for i, st := range statuses {
		values[i] = string(st)
	}
	return db.Where("entry_ref = ? AND status IN ?", s.Ref, values)
}

// EndedBefore matches sessions whose voting window closed before t
type EndedBefore struct {
	T time.Time
}

func (s EndedBefore) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("ends_at < ?", s.T)
}

// CreatedSince filters audit events by lower time bound
type CreatedSince struct {
	T time.Time
}

func (s CreatedSince) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("created_at >= ?", s.T)
}
