package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type QueryHandler struct {
	querySvc service.QueryService
}

func NewQueryHandler(querySvc service.QueryService) *QueryHandler {
	return &QueryHandler{
		querySvc: querySvc,
	}
}

func (s *QueryHandler) Execute(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.QueryExecuteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	query, err := s.querySvc.Execute(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, query)
}

func (s *QueryHandler) ListQueries(c *gin.Context) {
	userID := c.GetUint64("user_id")

	list, err := s.querySvc.ListQueries(c.Request.Context(), userID, c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *QueryHandler) GetQuery(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	query, err := s.querySvc.GetQuery(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, query)
}

func (s *QueryHandler) DeleteQuery(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.querySvc.DeleteQuery(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
