package repository

import (
	"context"

	"github.com/aurora-share/server/internal/domain"
	"github.com/aurora-share/server/internal/persistence"
)

// genreRepository 流派仓储实现
type genreRepository struct {
	base *persistence.Repository[domain.Genre]
}

// NewGenreRepository 创建流派仓储
func NewGenreRepository(db DB) GenreRepository {
	return &genreRepository{
		base: persistence.NewRepository(db, "genres", []string{"genreid"}, mapGenreRow),
	}
}

// mapGenreRow 行映射: genreid, name
func mapGenreRow(row []any) (domain.Genre, error) {
	var g domain.Genre
	var err error

	if err = persistence.ExpectColumns(row, 2); err != nil {
		return g, err
	}
	if g.GenreID, err = persistence.AsInt(row[0]); err != nil {
		return g, err
	}
	if g.Name, err = persistence.AsString(row[1]); err != nil {
		return g, err
	}
	return g, nil
}

func (r *genreRepository) GetAll(ctx context.Context) ([]domain.Genre, error) {
	return r.base.SelectAll(ctx, nil)
}

func (r *genreRepository) GetByID(ctx context.Context, genreID int) (*domain.Genre, error) {
	return r.base.SelectByKey(ctx, persistence.Int(genreID))
}

func (r *genreRepository) Insert(ctx context.Context, name string) (*domain.Genre, error) {
	g := domain.Genre{Name: name}
	if err := g.Validate(); err != nil {
		return nil, invalid(err)
	}
	return r.base.Insert(ctx, persistence.Set("name", persistence.String(name)))
}

// Delete 删除流派
// 注意: 被歌曲引用的流派没有级联保护，由外键约束直接拒绝
func (r *genreRepository) Delete(ctx context.Context, genreID int) (int64, error) {
	return r.base.Delete(ctx, persistence.Where("genreid", persistence.Int(genreID)))
}
