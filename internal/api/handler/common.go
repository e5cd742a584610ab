package handler

import (
	"SocialPulse/internal/pkg/response"
	"SocialPulse/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

// paramID 解析路径上的数字 ID，失败时直接返回参数错误
func paramID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return id, true
}

// optionalQueryID 查询参数缺省时返回 nil
func optionalQueryID(c *gin.Context, name string) (*uint64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return nil, false
	}
	return &id, true
}

func queryInt(c *gin.Context, name string) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		response.Error(c, service.ErrParamInvalid)
		return 0, false
	}
	return v, true
}
