package model

import (
	"time"

	"github.com/google/uuid"
)

type Submission struct {
	Id              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title           string    `gorm:"type:varchar(255);not null"`
	Type            string    `gorm:"type:varchar(20);not null"`
	RawText         string    `gorm:"type:text;not null"`
	OwnerId         uuid.UUID `gorm:"type:uuid;not null;index"`
	Status          string    `gorm:"type:varchar(20);not null;index;default:'submitted'"`
	ComplianceScore *float64  `gorm:"type:double precision"`
	RejectionReason *string   `gorm:"type:text"`
	EntryRef        *string   `gorm:"type:varchar(20)"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime"`
}

func (Submission) TableName() string {
	return "submissions"
}
