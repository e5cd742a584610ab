package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type PatternHandler struct {
	patternSvc service.PatternService
}

func NewPatternHandler(patternSvc service.PatternService) *PatternHandler {
	return &PatternHandler{
		patternSvc: patternSvc,
	}
}

func (s *PatternHandler) ListPatterns(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accountID, ok := optionalQueryID(c, "account_id")
	if !ok {
		return
	}

	patterns, err := s.patternSvc.ListPatterns(c.Request.Context(), userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, patterns)
}

func (s *PatternHandler) OptimalTimes(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.PatternQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.patternSvc.OptimalTimes(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PatternHandler) Heatmap(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accountID, ok := optionalQueryID(c, "account_id")
	if !ok {
		return
	}

	res, err := s.patternSvc.Heatmap(c.Request.Context(), userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PatternHandler) BestSchedule(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.ScheduleQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.patternSvc.BestSchedule(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
