package handler

import (
	"SocialPulse/internal/api/dto"
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"

	"github.com/gin-gonic/gin"
)

type AccountHandler struct {
	accountSvc service.AccountService
}

func NewAccountHandler(accountSvc service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountSvc: accountSvc,
	}
}

func (s *AccountHandler) CreateAccount(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var req dto.AccountCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	account, err := s.accountSvc.CreateAccount(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) ListAccounts(c *gin.Context) {
	userID := c.GetUint64("user_id")

	var query dto.AccountListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	accounts, err := s.accountSvc.ListAccounts(c.Request.Context(), userID, &query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, accounts)
}

func (s *AccountHandler) GetAccount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	account, err := s.accountSvc.GetAccount(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) UpdateAccount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.AccountUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	account, err := s.accountSvc.UpdateAccount(c.Request.Context(), userID, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := s.accountSvc.DeleteAccount(c.Request.Context(), userID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *AccountHandler) SyncAccount(c *gin.Context) {
	userID := c.GetUint64("user_id")
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	account, err := s.accountSvc.SyncAccount(c.Request.Context(), userID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, account)
}

func (s *AccountHandler) Overview(c *gin.Context) {
	userID := c.GetUint64("user_id")

	overview, err := s.accountSvc.GetOverview(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, overview)
}
