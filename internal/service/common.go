package service

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/model"
	"SocialPulse/internal/pkg/consts"
	"SocialPulse/internal/pkg/metrics"
	"SocialPulse/internal/pkg/mongo"
	"SocialPulse/internal/pkg/redis"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

func isDuplicateError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	return false
}

// IsPermanent 业务错误（参数、不存在、重复）重试也不会成功
func IsPermanent(err error) bool {
	code, ok := CodeOf(err)
	return ok && code != InternalServerError
}

// cached 读穿缓存，未初始化 Redis 或 ttl 为 0 时直接计算
func cached[T any](ctx context.Context, name, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	if redis.Rdb == nil || ttl <= 0 {
		return load()
	}

	var out T
	hit, err := redis.GetJSON(ctx, key, &out)
	if err != nil {
		log.WarnContext(ctx, "cache read failed", "key", key, "err", err)
	}
	if hit {
		metrics.Default.CacheLookups.WithLabelValues(name, "hit").Inc()
		return out, nil
	}
	metrics.Default.CacheLookups.WithLabelValues(name, "miss").Inc()

	out, err = load()
	if err != nil {
		return out, err
	}
	if err = redis.SetJSONWithExpiration(ctx, key, out, ttl); err != nil {
		log.WarnContext(ctx, "cache write failed", "key", key, "err", err)
	}
	return out, nil
}

// invalidateUserCache 账号、帖子变更后清理该用户的聚合缓存
func invalidateUserCache(ctx context.Context, userID uint64) {
	if redis.Rdb == nil {
		return
	}
	uid := strconv.FormatUint(userID, 10)
	if err := redis.DeleteKey(ctx, consts.AccountOverviewKey+uid); err != nil {
		log.WarnContext(ctx, "invalidate cache failed", "user_id", userID, "err", err)
	}
	// 首页缓存按窗口天数分键
	for _, prefix := range []string{consts.DashboardOverviewKey, consts.DashboardPlatformKey} {
		if err := redis.DeleteByPattern(ctx, prefix+uid+":*"); err != nil {
			log.WarnContext(ctx, "invalidate cache failed", "user_id", userID, "pattern", prefix+uid+":*", "err", err)
		}
	}
}

func toAccountDTO(a *model.SocialAccount) *dto.AccountDTO {
	var res dto.AccountDTO
	_ = copier.Copy(&res, a)
	return &res
}

func toMetricDTO(m *model.PostMetric) *dto.MetricSnapshotDTO {
	if m == nil {
		return nil
	}
	var res dto.MetricSnapshotDTO
	_ = copier.Copy(&res, m)
	return &res
}

func toPostDTO(p *model.Post, tags []string, latest *model.PostMetric) *dto.PostDTO {
	var res dto.PostDTO
	_ = copier.Copy(&res, p)
	if tags == nil {
		tags = []string{}
	}
	res.Hashtags = tags
	res.LatestMetrics = toMetricDTO(latest)
	return &res
}

func toCommentDTO(c *model.Comment) *dto.CommentDTO {
	var res dto.CommentDTO
	_ = copier.Copy(&res, c)
	return &res
}

func toAudienceDTO(a *model.Audience) *dto.AudienceDTO {
	res := &dto.AudienceDTO{
		ID:              a.ID,
		SocialAccountID: a.SocialAccountID,
		FollowersCount:  a.FollowersCount,
		FollowingCount:  a.FollowingCount,
		TopCountries:    toLocationDTOs(a.TopCountries),
		TopCities:       toLocationDTOs(a.TopCities),
		RecordedAt:      a.RecordedAt,
	}
	return res
}

func toLocationDTOs(list []model.LocationShare) []dto.LocationShareDTO {
	res := make([]dto.LocationShareDTO, 0, len(list))
	for _, l := range list {
		res = append(res, dto.LocationShareDTO{Name: l.Name, Share: l.Share})
	}
	return res
}

func toLocationModels(list []dto.LocationShareDTO) []model.LocationShare {
	res := make([]model.LocationShare, 0, len(list))
	for _, l := range list {
		res = append(res, model.LocationShare{Name: l.Name, Share: l.Share})
	}
	return res
}

func toPatternDTO(p *model.EngagementPattern) *dto.EngagementPatternDTO {
	var res dto.EngagementPatternDTO
	_ = copier.Copy(&res, p)
	if p.DayOfWeek >= 0 && p.DayOfWeek < len(consts.DayNames) {
		res.DayName = consts.DayNames[p.DayOfWeek]
	}
	return &res
}

func toInsightDTO(m *mongo.InsightModel) *dto.InsightDTO {
	data := m.Data
	if data == nil {
		data = map[string]any{}
	}
	return &dto.InsightDTO{
		ID:              m.ID.Hex(),
		UserID:          m.UserID,
		SocialAccountID: m.SocialAccountID,
		InsightType:     m.InsightType,
		Title:           m.Title,
		Description:     m.Description,
		Data:            data,
		Priority:        m.Priority,
		IsRead:          m.IsRead,
		CreatedAt:       m.CreatedAt,
	}
}

func toCompetitorDTO(c *model.Competitor) *dto.CompetitorDTO {
	var res dto.CompetitorDTO
	_ = copier.Copy(&res, c)
	return &res
}

func toCompetitorMetricDTO(m *model.CompetitorMetric) *dto.CompetitorMetricDTO {
	if m == nil {
		return nil
	}
	var res dto.CompetitorMetricDTO
	_ = copier.Copy(&res, m)
	return &res
}

// mustJSON json 列按 map 更新时不会经过 serializer，先手动序列化
func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(data)
}
