package es

import (
	"SocialPulse/internal/pkg/util"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/conflicts"
	"github.com/goccy/go-json"
)

// MaxSearchSize 单次检索返回的最大帖子数
const MaxSearchSize = 1000

type PostRepo interface {
	IndexPost(ctx context.Context, post *PostES) error
	DeletePost(ctx context.Context, id uint64) error
	DeleteByAccount(ctx context.Context, accountID uint64) error
	// SearchPostIDs 在该用户的帖子中按文案与话题检索，返回命中的帖子 ID
	SearchPostIDs(ctx context.Context, userID uint64, keyword string, size int) ([]uint64, error)
}

type PostRepoImpl struct {
	client *elasticsearch.TypedClient
}

func NewPostRepo(client *elasticsearch.TypedClient) PostRepo {
	return &PostRepoImpl{client: client}
}

func (s *PostRepoImpl) IndexPost(ctx context.Context, post *PostES) error {
	if post.Hashtags == nil {
		post.Hashtags = make([]string, 0)
	}
	docID := strconv.FormatUint(post.ID, 10)
	_, err := s.client.Index(PostIndex).
		Id(docID).
		Document(post).
		Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == ConflictCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	docID := strconv.FormatUint(id, 10)
	_, err := s.client.Delete(PostIndex, docID).Do(ctx)
	if err != nil {
		var e *types.ElasticsearchError
		if errors.As(err, &e) && e.Status == NotFoundCode {
			return nil
		}
		return err
	}
	return nil
}

func (s *PostRepoImpl) DeleteByAccount(ctx context.Context, accountID uint64) error {
	resp, err := s.client.DeleteByQuery(PostIndex).
		Query(&types.Query{
			Term: map[string]types.TermQuery{
				"social_account_id": {Value: accountID},
			},
		}).
		Conflicts(conflicts.Proceed).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("post index: delete by account failed: %w", err)
	}
	if len(resp.Failures) != 0 {
		return fmt.Errorf("post index: delete by account has failures, count: %d", len(resp.Failures))
	}
	return nil
}

func (s *PostRepoImpl) SearchPostIDs(ctx context.Context, userID uint64, keyword string, size int) ([]uint64, error) {
	if keyword == "" {
		return []uint64{}, nil
	}
	if size <= 0 || size > MaxSearchSize {
		size = MaxSearchSize
	}

	resp, err := s.client.Search().
		Index(PostIndex).
		Query(&types.Query{
			Bool: &types.BoolQuery{
				Should: []types.Query{
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:  keyword,
							Fields: []string{"caption^2", "hashtags^3", "post_id"},
						},
					},
					{
						MultiMatch: &types.MultiMatchQuery{
							Query:     keyword,
							Fields:    []string{"caption"},
							Fuzziness: util.PtrStr("AUTO"),
							Boost:     util.PtrFloat32(0.5),
						},
					},
				},
				MinimumShouldMatch: 1,
				Filter: []types.Query{
					{Term: map[string]types.TermQuery{"user_id": {Value: userID}}},
				},
			},
		}).
		Source_(&types.SourceFilter{Includes: []string{"id"}}).
		Size(size).
		Do(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]uint64, 0, len(resp.Hits.Hits))
	for _, hit := range resp.Hits.Hits {
		if hit.Source_ == nil {
			continue
		}
		var doc PostES
		if err = json.Unmarshal(hit.Source_, &doc); err != nil {
			continue
		}
		ids = append(ids, doc.ID)
	}
	return ids, nil
}
