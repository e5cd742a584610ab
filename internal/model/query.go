package model

import (
	"time"
)

// QueryResult 自然语言查询的结构化结果
type QueryResult struct {
	Query   string         `json:"query"`
	Answer  string         `json:"answer"`
	Source  string         `json:"source"`
	Results []any          `json:"results"`
	Summary map[string]any `json:"summary,omitempty"`
}

type Query struct {
	ID            uint64       `gorm:"primaryKey"`
	UserID        uint64       `gorm:"not null;index:idx_user_created,priority:1"`
	QueryText     string       `gorm:"type:text;not null"`
	Response      *string      `gorm:"type:text"`
	ResponseData  *QueryResult `gorm:"type:json;serializer:json"`
	ExecutionTime *float64
	Status        string    `gorm:"type:varchar(20);not null;default:pending"`
	CreatedAt     time.Time `gorm:"index:idx_user_created,priority:2"`
	CompletedAt   *time.Time

	User *User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Query) TableName() string {
	return "queries"
}
