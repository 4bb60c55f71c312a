package domain

import "time"

// Listener 听众（用户）实体
// username/email 的唯一性由存储层 schema 保证
type Listener struct {
	UserID         int        `json:"user_id"`                 // 用户ID
	Username       string     `json:"username"`                // 用户名
	Email          string     `json:"email"`                   // 邮箱
	PasswordHash   *string    `json:"-"`                       // 凭证哈希（可空）
	ProfilePicture []byte     `json:"profile_picture,omitempty"` // 头像（可空）
	IsAdmin        bool       `json:"is_admin"`                // 管理员标记
	ResetCode      *string    `json:"-"`                       // 密码重置码（可空）
	ResetExpires   *time.Time `json:"-"`                       // 重置码过期时间（可空）
	DateJoined     time.Time  `json:"date_joined"`             // 注册时间
}

// Validate 校验用户字段约束
func (l *Listener) Validate() error {
	if l.Username == "" {
		return ErrEmptyUsername
	}
	if l.Email == "" {
		return ErrEmptyEmail
	}
	return nil
}

// HasValidResetCode 判断重置码当前是否有效
func (l *Listener) HasValidResetCode(now time.Time) bool {
	if l.ResetCode == nil || *l.ResetCode == "" {
		return false
	}
	if l.ResetExpires == nil {
		return true
	}
	return now.Before(*l.ResetExpires)
}
