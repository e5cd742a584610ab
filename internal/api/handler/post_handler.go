package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.PostListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.postSvc.ListPosts(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.PostUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) bindAnalytics(c *gin.Context) (*dto.AnalyticsQuery, bool) {
	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return nil, false
	}
	return &query, true
}

func (s *PostHandler) TopPerforming(c *gin.Context) {
	userID := c.GetUint64("user_id")
	query, ok := s.bindAnalytics(c)
	if !ok {
		return
	}

	posts, err := s.postSvc.TopPerforming(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) ContentComparison(c *gin.Context) {
	userID := c.GetUint64("user_id")
	query, ok := s.bindAnalytics(c)
	if !ok {
		return
	}

	stats, err := s.postSvc.ContentComparison(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

func (s *PostHandler) Timeline(c *gin.Context) {
	userID := c.GetUint64("user_id")
	query, ok := s.bindAnalytics(c)
	if !ok {
		return
	}

	points, err := s.postSvc.Timeline(c.Request.Context(), userID, query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, points)
}

func (s *PostHandler) Analytics(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := s.postSvc.GetPostAnalytics(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostHandler) LatestMetric(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	metric, err := s.postSvc.GetLatestMetric(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metric)
}
