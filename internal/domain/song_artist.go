package domain

import "time"

// 贡献者角色
const (
	RoleMain     = "main"
	RoleFeatured = "featured"
)

// SongArtist 歌曲-歌手关联实体
// 复合主键 (songid, userid)，一首歌可有多个贡献者
type SongArtist struct {
	SongID    int       `json:"song_id"`    // 歌曲ID
	UserID    int       `json:"user_id"`    // 贡献者用户ID
	Role      string    `json:"role"`       // 角色: main / featured
	AddedDate time.Time `json:"added_date"` // 添加时间
}

// ValidateRole 校验贡献者角色
func ValidateRole(role string) error {
	switch role {
	case RoleMain, RoleFeatured:
		return nil
	default:
		return ErrUnknownRole
	}
}
