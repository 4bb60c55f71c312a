package domain

// Song 歌曲实体
// 歌手信息通过 song_artists 关联表维护（legacy 的内联 artist 字段已废弃）
type Song struct {
	SongID   int    `json:"song_id"`  // 歌曲ID
	Title    string `json:"title"`    // 标题
	Duration int    `json:"duration"` // 时长（秒）
	FilePath string `json:"filepath"` // 存储路径
	UserID   int    `json:"user_id"`  // 上传者ID
	GenreID  int    `json:"genre_id"` // 流派ID
}

// Validate 校验歌曲字段约束
func (s *Song) Validate() error {
	if s.Title == "" {
		return ErrEmptyTitle
	}
	if s.Duration < 0 {
		return ErrNegativeDuration
	}
	if s.FilePath == "" {
		return ErrEmptyFilePath
	}
	return nil
}
