package es

import (
	"SocialPulse/internal/api/config"
	"SocialPulse/internal/pkg/logger"
	"context"
	log "log/slog"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
)

var Client *elasticsearch.TypedClient

var PostIndex string

const (
	NotFoundCode = 404
	ConflictCode = 409
)

// InitClient 初始化 Elasticsearch 客户端，帖子索引不存在时按固定 mapping 创建
func InitClient() error {
	elasticCfg := config.Cfg.Elastic

	PostIndex = elasticCfg.Indices.PostIndex

	cfg := elasticsearch.Config{
		Addresses: []string{elasticCfg.Address},
		Username:  elasticCfg.Username,
		Password:  elasticCfg.Password,
		Transport: &logger.ESTransport{
			Transport: http.DefaultTransport,
		},
	}

	var err error
	Client, err = elasticsearch.NewTypedClient(cfg)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	ctx := context.Background()
	info, err := Client.Info().Do(ctx)
	if err != nil {
		log.Error("Cannot Connect to Elasticsearch", "err", err)
		return err
	}

	exists, err := Client.Indices.Exists(PostIndex).IsSuccess(ctx)
	if err != nil {
		return err
	}
	if !exists {
		_, err = Client.Indices.Create(PostIndex).Mappings(postMapping()).Do(ctx)
		if err != nil {
			log.Error("Create post index failed", "index", PostIndex, "err", err)
			return err
		}
		log.Info("Post index created", "index", PostIndex)
	}

	log.Info("Connected to Elasticsearch", "version", info.Version.Int)
	return nil
}

func postMapping() *types.TypeMapping {
	return &types.TypeMapping{
		Properties: map[string]types.Property{
			"id":                types.NewUnsignedLongNumberProperty(),
			"user_id":           types.NewUnsignedLongNumberProperty(),
			"social_account_id": types.NewUnsignedLongNumberProperty(),
			"platform":          types.NewKeywordProperty(),
			"post_id":           types.NewKeywordProperty(),
			"content_type":      types.NewKeywordProperty(),
			"caption":           types.NewTextProperty(),
			"hashtags":          types.NewKeywordProperty(),
			"posted_at":         types.NewDateProperty(),
		},
	}
}
