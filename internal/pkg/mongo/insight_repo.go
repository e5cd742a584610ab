package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type InsightRepo interface {
	CreateInsight(ctx context.Context, insight *InsightModel) error
	CreateInsights(ctx context.Context, insights []*InsightModel) error
	// GetInsightList 按优先级倒序，同优先级按创建时间倒序
	GetInsightList(ctx context.Context, userID uint64, filter InsightFilter, limit, offset int64) ([]*InsightModel, int64, error)
	GetByID(ctx context.Context, userID uint64, id string) (*InsightModel, error)
	DeleteInsight(ctx context.Context, userID uint64, id string) (bool, error)
	DeleteByAccount(ctx context.Context, accountID uint64) error
	MarkAsRead(ctx context.Context, userID uint64, id string) (bool, error)
	MarkAllAsRead(ctx context.Context, userID uint64) (int64, error)
	GetUnreadCount(ctx context.Context, userID uint64) (int64, error)
}

type insightRepoImpl struct {
	col *mongo.Collection
}

func NewInsightRepo(db *mongo.Database) InsightRepo {
	return &insightRepoImpl{
		col: db.Collection(InsightCollection),
	}
}

func (s *insightRepoImpl) CreateInsight(ctx context.Context, insight *InsightModel) error {
	res, err := s.col.InsertOne(ctx, insight)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		insight.ID = oid
	}
	return nil
}

func (s *insightRepoImpl) CreateInsights(ctx context.Context, insights []*InsightModel) error {
	if len(insights) == 0 {
		return nil
	}
	docs := make([]interface{}, 0, len(insights))
	for _, in := range insights {
		docs = append(docs, in)
	}
	res, err := s.col.InsertMany(ctx, docs)
	if err != nil {
		return err
	}
	for i, id := range res.InsertedIDs {
		if oid, ok := id.(primitive.ObjectID); ok && i < len(insights) {
			insights[i].ID = oid
		}
	}
	return nil
}

func buildFilter(userID uint64, filter InsightFilter) bson.M {
	m := bson.M{"user_id": userID}
	if filter.InsightType != "" {
		m["insight_type"] = filter.InsightType
	}
	if filter.IsRead != nil {
		m["is_read"] = *filter.IsRead
	}
	if filter.AccountID != nil {
		m["social_account_id"] = *filter.AccountID
	}
	return m
}

func (s *insightRepoImpl) GetInsightList(ctx context.Context, userID uint64, filter InsightFilter, limit, offset int64) ([]*InsightModel, int64, error) {
	query := buildFilter(userID, filter)

	total, err := s.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "priority", Value: -1}, {Key: "created_at", Value: -1}}).
		SetLimit(limit).
		SetSkip(offset)

	cursor, err := s.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	list := make([]*InsightModel, 0)
	if err = cursor.All(ctx, &list); err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetByID id 非法或不存在时返回 nil, nil
func (s *insightRepoImpl) GetByID(ctx context.Context, userID uint64, id string) (*InsightModel, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}
	var insight InsightModel
	err = s.col.FindOne(ctx, bson.M{"_id": objectID, "user_id": userID}).Decode(&insight)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}

func (s *insightRepoImpl) DeleteInsight(ctx context.Context, userID uint64, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.col.DeleteOne(ctx, bson.M{"_id": objectID, "user_id": userID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (s *insightRepoImpl) DeleteByAccount(ctx context.Context, accountID uint64) error {
	_, err := s.col.DeleteMany(ctx, bson.M{"social_account_id": accountID})
	return err
}

// MarkAsRead 标记单条洞察为已读，未命中返回 false
func (s *insightRepoImpl) MarkAsRead(ctx context.Context, userID uint64, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	filter := bson.M{"_id": objectID, "user_id": userID}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

func (s *insightRepoImpl) MarkAllAsRead(ctx context.Context, userID uint64) (int64, error) {
	filter := bson.M{"user_id": userID, "is_read": false}
	update := bson.M{"$set": bson.M{"is_read": true}}
	result, err := s.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}

func (s *insightRepoImpl) GetUnreadCount(ctx context.Context, userID uint64) (int64, error) {
	filter := bson.M{"user_id": userID, "is_read": false}
	return s.col.CountDocuments(ctx, filter)
}
