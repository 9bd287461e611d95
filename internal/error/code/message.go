package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:         "成功",
	ErrUnknown:         "未知错误",
	ErrBind:            "请求参数绑定错误",
	ErrValidation:      "请求参数验证错误",
	ErrTokenInvalid:    "无效的认证令牌",
	ErrForbidden:       "权限不足",
	ErrTooManyRequests: "请求频率过高",

	// 账号相关错误码
	ErrAccountNotFound:   "账号不存在",
	ErrAccountExists:     "账号已存在",
	ErrPasswordIncorrect: "手机号或密码错误",

	// 联系人相关错误码
	ErrContactNotFound: "联系人不存在",
	ErrContactExists:   "联系人已存在",

	// 消息/群发相关错误码
	ErrMessageNotFound:    "消息不存在",
	ErrBroadcastNotFound:  "群发任务不存在",
	ErrTemplateNotFound:   "模板不存在",
	ErrGatewayUnavailable: "消息网关不可用",

	// 需求/跟进相关错误码
	ErrRequirementNotFound: "需求不存在",
	ErrNeedNotFound:        "跟进事项不存在",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:         StatusOK,
	ErrUnknown:         StatusInternalServerError,
	ErrBind:            StatusBadRequest,
	ErrValidation:      StatusBadRequest,
	ErrTokenInvalid:    StatusUnauthorized,
	ErrForbidden:       StatusForbidden,
	ErrTooManyRequests: StatusTooManyRequests,

	// 账号相关错误码
	ErrAccountNotFound:   StatusNotFound,
	ErrAccountExists:     StatusConflict,
	ErrPasswordIncorrect: StatusUnauthorized,

	// 联系人相关错误码
	ErrContactNotFound: StatusNotFound,
	ErrContactExists:   StatusConflict,

	// 消息/群发相关错误码
	ErrMessageNotFound:    StatusNotFound,
	ErrBroadcastNotFound:  StatusNotFound,
	ErrTemplateNotFound:   StatusNotFound,
	ErrGatewayUnavailable: StatusInternalServerError,

	// 需求/跟进相关错误码
	ErrRequirementNotFound: StatusNotFound,
	ErrNeedNotFound:        StatusNotFound,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
