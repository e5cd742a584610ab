package dto

import "time"

type QueryExecuteDTO struct {
	QueryText string `json:"query_text"`
}

type QueryDTO struct {
	ID            uint64         `json:"id"`
	QueryText     string         `json:"query_text"`
	Response      *string        `json:"response"`
	ResponseData  map[string]any `json:"response_data"`
	ExecutionTime *float64       `json:"execution_time"`
	Status        string         `json:"status"`
	CreatedAt     time.Time      `json:"created_at"`
	CompletedAt   *time.Time     `json:"completed_at"`
}
