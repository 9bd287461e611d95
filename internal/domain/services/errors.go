package services

import "errors"

// 服务层哨兵错误，控制器据此翻译HTTP状态
// 注意：受限查询的"不存在"与"无权查看"合并为 (nil, nil) 返回，不走错误通道
var (
	// ErrDuplicateAccount 手机号或邮箱已被注册
	ErrDuplicateAccount = errors.New("账号手机号或邮箱已存在")
	// ErrLastSuperAdmin 不能删除最后一个超级管理员
	ErrLastSuperAdmin = errors.New("系统必须至少保留一个超级管理员")
	// ErrInvalidCredentials 登录凭证无效
	ErrInvalidCredentials = errors.New("手机号或密码错误")
)
