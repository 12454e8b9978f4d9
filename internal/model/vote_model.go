package model

import (
	"time"

	"github.com/google/uuid"
)

type Vote struct {
	Id        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_votes_session_voter"`
	VoterKind string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_votes_session_voter"`
	VoterId   string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_votes_session_voter"`
	Choice    string    `gorm:"type:varchar(10);not null"`
	Rationale string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Vote) TableName() string {
	return "votes"
}
