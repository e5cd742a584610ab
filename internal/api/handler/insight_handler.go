package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type InsightHandler struct {
	insightSvc service.InsightService
}

func NewInsightHandler(insightSvc service.InsightService) *InsightHandler {
	return &InsightHandler{
		insightSvc: insightSvc,
	}
}

func (s *InsightHandler) ListInsights(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.InsightListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	page, err := s.insightSvc.ListInsights(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

func (s *InsightHandler) CreateInsight(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.InsightCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	insight, err := s.insightSvc.CreateInsight(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insight)
}

func (s *InsightHandler) GetInsight(c *gin.Context) {
	userID := c.GetUint64("user_id")

	insight, err := s.insightSvc.GetInsight(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, insight)
}

func (s *InsightHandler) DeleteInsight(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.insightSvc.DeleteInsight(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InsightHandler) MarkAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	if err := s.insightSvc.MarkAsRead(c.Request.Context(), userID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *InsightHandler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetUint64("user_id")

	count, err := s.insightSvc.MarkAllAsRead(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"marked": count})
}

func (s *InsightHandler) UnreadCount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	res, err := s.insightSvc.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
