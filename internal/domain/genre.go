package domain

// Genre 流派实体
type Genre struct {
	GenreID int    `json:"genre_id"` // 流派ID
	Name    string `json:"name"`     // 名称
}

// Validate 校验流派字段约束
func (g *Genre) Validate() error {
	if g.Name == "" {
		return ErrEmptyGenreName
	}
	return nil
}
