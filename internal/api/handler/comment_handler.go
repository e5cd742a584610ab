package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler 评论只读，写入走 Kafka 接入
type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

func (s *CommentHandler) ListComments(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.CommentListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	comments, err := s.commentSvc.ListComments(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) Sentiment(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.SentimentQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.commentSvc.Sentiment(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *CommentHandler) TopCommenters(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.CommenterQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.commentSvc.TopCommenters(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
