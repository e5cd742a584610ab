package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type StrategyHandler struct {
	strategySvc service.StrategyService
}

func NewStrategyHandler(strategySvc service.StrategyService) *StrategyHandler {
	return &StrategyHandler{
		strategySvc: strategySvc,
	}
}

func (s *StrategyHandler) CreateStrategy(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.StrategyCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	strategy, err := s.strategySvc.CreateStrategy(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, strategy)
}

func (s *StrategyHandler) ListStrategies(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.StrategyListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.strategySvc.ListStrategies(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *StrategyHandler) GetStrategy(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	strategy, err := s.strategySvc.GetStrategy(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, strategy)
}

func (s *StrategyHandler) UpdateStrategy(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.StrategyUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	strategy, err := s.strategySvc.UpdateStrategy(c.Request.Context(), userID, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, strategy)
}

func (s *StrategyHandler) DeleteStrategy(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.strategySvc.DeleteStrategy(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *StrategyHandler) ActivateStrategy(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	strategy, err := s.strategySvc.ActivateStrategy(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, strategy)
}

func (s *StrategyHandler) GenerateStrategy(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.StrategyGenerateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	strategy, err := s.strategySvc.GenerateStrategy(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, strategy)
}
