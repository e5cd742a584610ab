package model

// 报告 / 查询任务状态，只允许前进
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
)
