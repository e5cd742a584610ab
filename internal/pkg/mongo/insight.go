package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const InsightCollection = "ai_insights"

// InsightModel AI 洞察，按用户归属，可选关联某个账号
type InsightModel struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	UserID          uint64             `bson:"user_id"`
	SocialAccountID *uint64            `bson:"social_account_id,omitempty"`
	InsightType     string             `bson:"insight_type"`
	Title           string             `bson:"title"`
	Description     string             `bson:"description"`
	Data            map[string]any     `bson:"data"`
	Priority        int                `bson:"priority"`
	IsRead          bool               `bson:"is_read"`
	CreatedAt       time.Time          `bson:"created_at"`
}

// InsightFilter 列表筛选，字段为空表示不限制
type InsightFilter struct {
	InsightType string
	IsRead      *bool
	AccountID   *uint64
}
