package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type AudienceHandler struct {
	audienceSvc service.AudienceService
}

func NewAudienceHandler(audienceSvc service.AudienceService) *AudienceHandler {
	return &AudienceHandler{
		audienceSvc: audienceSvc,
	}
}

func (s *AudienceHandler) ListAudiences(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.AudienceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.audienceSvc.ListAudiences(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *AudienceHandler) CreateAudience(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.AudienceCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	audience, err := s.audienceSvc.CreateAudience(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, audience)
}

func (s *AudienceHandler) Demographics(c *gin.Context) {
	userID := c.GetUint64("user_id")
	accountID, ok := optionalQueryID(c, "account_id")
	if !ok {
		return
	}

	res, err := s.audienceSvc.Demographics(c.Request.Context(), userID, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *AudienceHandler) GrowthTrend(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.AudienceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.audienceSvc.GrowthTrend(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
