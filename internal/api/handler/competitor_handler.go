package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/pkg/util"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type CompetitorHandler struct {
	competitorSvc service.CompetitorService
}

func NewCompetitorHandler(competitorSvc service.CompetitorService) *CompetitorHandler {
	return &CompetitorHandler{
		competitorSvc: competitorSvc,
	}
}

func (s *CompetitorHandler) CreateCompetitor(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.CompetitorCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	competitor, err := s.competitorSvc.CreateCompetitor(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, competitor)
}

func (s *CompetitorHandler) ListCompetitors(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.CompetitorListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.competitorSvc.ListCompetitors(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *CompetitorHandler) GetCompetitor(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	competitor, err := s.competitorSvc.GetCompetitor(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, competitor)
}

func (s *CompetitorHandler) UpdateCompetitor(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.CompetitorUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	competitor, err := s.competitorSvc.UpdateCompetitor(c.Request.Context(), userID, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, competitor)
}

func (s *CompetitorHandler) DeleteCompetitor(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.competitorSvc.DeleteCompetitor(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Comparison competitor_ids 支持重复参数或逗号分隔
func (s *CompetitorHandler) Comparison(c *gin.Context) {
	userID := c.GetUint64("user_id")

	ids, err := util.StrSliceToUInt64Slice(c.QueryArray("competitor_ids"))
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	res, err := s.competitorSvc.Comparison(c.Request.Context(), userID, ids)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CompetitorHandler) GrowthTrend(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	days, ok := queryInt(c, "days")
	if !ok {
		return
	}

	res, err := s.competitorSvc.GrowthTrend(c.Request.Context(), userID, id, days)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CompetitorHandler) ListMetrics(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.CompetitorMetricQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.competitorSvc.ListMetrics(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
