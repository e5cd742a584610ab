package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type HashtagHandler struct {
	hashtagSvc service.HashtagService
}

func NewHashtagHandler(hashtagSvc service.HashtagService) *HashtagHandler {
	return &HashtagHandler{
		hashtagSvc: hashtagSvc,
	}
}

func (s *HashtagHandler) ListHashtags(c *gin.Context) {
	userID := c.GetUint64("user_id")

	hashtags, err := s.hashtagSvc.ListHashtags(c.Request.Context(), userID, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, hashtags)
}

func (s *HashtagHandler) Trending(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.TrendingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.hashtagSvc.Trending(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *HashtagHandler) Performance(c *gin.Context) {
	userID := c.GetUint64("user_id")
	hashtagID, ok := optionalQueryID(c, "hashtag_id")
	if !ok {
		return
	}

	res, err := s.hashtagSvc.Performance(c.Request.Context(), userID, hashtagID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
