package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrForbidden - 403: 权限不足.
	ErrForbidden
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 账号相关错误码 (101xxx).
const (
	// ErrAccountNotFound - 404: 账号不存在.
	ErrAccountNotFound int = iota + 101000
	// ErrAccountExists - 409: 账号已存在.
	ErrAccountExists
	// ErrPasswordIncorrect - 401: 密码错误.
	ErrPasswordIncorrect
)

// 联系人相关错误码 (102xxx).
const (
	// ErrContactNotFound - 404: 联系人不存在.
	ErrContactNotFound int = iota + 102000
	// ErrContactExists - 409: 联系人已存在.
	ErrContactExists
)

// 消息/群发相关错误码 (103xxx).
const (
	// ErrMessageNotFound - 404: 消息不存在.
	ErrMessageNotFound int = iota + 103000
	// ErrBroadcastNotFound - 404: 群发任务不存在.
	ErrBroadcastNotFound
	// ErrTemplateNotFound - 404: 模板不存在.
	ErrTemplateNotFound
	// ErrGatewayUnavailable - 500: 消息网关不可用.
	ErrGatewayUnavailable
)

// 需求/跟进相关错误码 (104xxx).
const (
	// ErrRequirementNotFound - 404: 需求不存在.
	ErrRequirementNotFound int = iota + 104000
	// ErrNeedNotFound - 404: 跟进事项不存在.
	ErrNeedNotFound
)

// 数据库相关错误码 (105xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 105000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
