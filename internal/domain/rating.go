package domain

import "time"

// 评分取值范围
const (
	MinRate = 1
	MaxRate = 5
)

// Rating 评分实体
// 约束: 每个 (用户, 歌曲) 至多一条评分，由存储层唯一约束保证
type Rating struct {
	RatingID  int        `json:"rating_id"`            // 评分ID
	UserID    int        `json:"user_id"`              // 评分用户ID
	SongID    int        `json:"song_id"`              // 歌曲ID
	Rate      int        `json:"rate"`                 // 评分值 [1,5]
	DateRated *time.Time `json:"date_rated,omitempty"` // 评分时间（可空）
}

// ValidateRate 校验评分值是否在允许范围内
func ValidateRate(rate int) error {
	if rate < MinRate || rate > MaxRate {
		return ErrRateOutOfRange
	}
	return nil
}
