package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type PostMetricHandler struct {
	metricSvc service.PostMetricService
}

func NewPostMetricHandler(metricSvc service.PostMetricService) *PostMetricHandler {
	return &PostMetricHandler{
		metricSvc: metricSvc,
	}
}

func (s *PostMetricHandler) CreateMetric(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.MetricCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	metric, err := s.metricSvc.CreateMetric(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metric)
}

func (s *PostMetricHandler) ListMetrics(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.MetricListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	metrics, err := s.metricSvc.ListMetrics(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, metrics)
}

func (s *PostMetricHandler) DeleteMetric(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.metricSvc.DeleteMetric(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
