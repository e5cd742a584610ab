package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid       = errors.New("参数错误")
	ErrAccountNotFound    = errors.New("社交账号不存在")
	ErrAccountExist       = errors.New("社交账号已绑定")
	ErrAccountIDRequired  = errors.New("缺少账号ID")
	ErrPostNotFound       = errors.New("帖子不存在")
	ErrPostExist          = errors.New("帖子已存在")
	ErrMetricNotFound     = errors.New("帖子暂无指标快照")
	ErrHashtagIDRequired  = errors.New("缺少话题ID")
	ErrHashtagNotFound    = errors.New("话题不存在")
	ErrAudienceNotFound   = errors.New("暂无粉丝画像数据")
	ErrInsightNotFound    = errors.New("洞察不存在")
	ErrQueryNotFound      = errors.New("查询不存在")
	ErrQueryTextEmpty     = errors.New("查询内容不能为空")
	ErrReportNotFound     = errors.New("报告不存在")
	ErrReportNotReady     = errors.New("报告尚未生成完成")
	ErrReportFileNotFound = errors.New("报告文件不存在")
	ErrFormatNotSupported = errors.New("不支持的报告格式")
	ErrCompetitorNotFound = errors.New("竞品账号不存在")
	ErrCompetitorExist    = errors.New("竞品账号已添加")
	ErrCompetitorIDsEmpty = errors.New("缺少竞品ID")
	ErrStrategyNotFound   = errors.New("内容策略不存在")
	ErrJobNotFound        = errors.New("任务不存在")
	ErrInvalidTransition  = errors.New("任务状态流转非法")
	UnauthorizedError     = errors.New("权限不足")
	UnExpectedError       = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:       BadRequest,
	ErrAccountNotFound:    NotFound,
	ErrAccountExist:       BadRequest,
	ErrAccountIDRequired:  BadRequest,
	ErrPostNotFound:       NotFound,
	ErrPostExist:          BadRequest,
	ErrMetricNotFound:     NotFound,
	ErrHashtagIDRequired:  BadRequest,
	ErrHashtagNotFound:    NotFound,
	ErrAudienceNotFound:   NotFound,
	ErrInsightNotFound:    NotFound,
	ErrQueryNotFound:      NotFound,
	ErrQueryTextEmpty:     BadRequest,
	ErrReportNotFound:     NotFound,
	ErrReportNotReady:     BadRequest,
	ErrReportFileNotFound: NotFound,
	ErrFormatNotSupported: BadRequest,
	ErrCompetitorNotFound: NotFound,
	ErrCompetitorExist:    BadRequest,
	ErrCompetitorIDsEmpty: BadRequest,
	ErrStrategyNotFound:   NotFound,
	ErrJobNotFound:        NotFound,
	ErrInvalidTransition:  BadRequest,
	UnauthorizedError:     Unauthorized,
	UnExpectedError:       InternalServerError,
}

// CodeOf 返回错误对应的业务码，兼容被包装过的错误
func CodeOf(err error) (int, bool) {
	if code, ok := ErrorMap[err]; ok {
		return code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return code, true
		}
	}
	return 0, false
}
