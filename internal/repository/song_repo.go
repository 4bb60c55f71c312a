package repository

import (
	"context"

	"github.com/aurora-share/server/internal/domain"
	"github.com/aurora-share/server/internal/persistence"
)

// songRepository 歌曲仓储实现
type songRepository struct {
	base *persistence.Repository[domain.Song]
}

// NewSongRepository 创建歌曲仓储
func NewSongRepository(db DB) SongRepository {
	return &songRepository{
		base: persistence.NewRepository(db, "songs", []string{"songid"}, mapSongRow),
	}
}

// mapSongRow 行映射: songid, title, duration, filepath, userid, genreid
func mapSongRow(row []any) (domain.Song, error) {
	var s domain.Song
	var err error

	if err = persistence.ExpectColumns(row, 6); err != nil {
		return s, err
	}
	if s.SongID, err = persistence.AsInt(row[0]); err != nil {
		return s, err
	}
	if s.Title, err = persistence.AsString(row[1]); err != nil {
		return s, err
	}
	if s.Duration, err = persistence.AsInt(row[2]); err != nil {
		return s, err
	}
	if s.FilePath, err = persistence.AsString(row[3]); err != nil {
		return s, err
	}
	if s.UserID, err = persistence.AsInt(row[4]); err != nil {
		return s, err
	}
	if s.GenreID, err = persistence.AsInt(row[5]); err != nil {
		return s, err
	}
	return s, nil
}

// GetAll 获取全部歌曲
func (r *songRepository) GetAll(ctx context.Context) ([]domain.Song, error) {
	return r.base.SelectAll(ctx, nil)
}

// GetByID 按主键获取歌曲
func (r *songRepository) GetByID(ctx context.Context, songID int) (*domain.Song, error) {
	return r.base.SelectByKey(ctx, persistence.Int(songID))
}

// Insert 新增歌曲
func (r *songRepository) Insert(ctx context.Context, title string, duration int, filePath string, userID, genreID int) (*domain.Song, error) {
	s := domain.Song{
		Title:    title,
		Duration: duration,
		FilePath: filePath,
		UserID:   userID,
		GenreID:  genreID,
	}
	if err := s.Validate(); err != nil {
		return nil, invalid(err)
	}

	fields := persistence.Set("title", persistence.String(title)).
		Set("duration", persistence.Int(duration)).
		Set("filepath", persistence.String(filePath)).
		Set("userid", persistence.Int(userID)).
		Set("genreid", persistence.Int(genreID))
	return r.base.Insert(ctx, fields)
}

// SaveDuration 回填歌曲时长
func (r *songRepository) SaveDuration(ctx context.Context, songID, duration int) (int64, error) {
	if duration < 0 {
		return 0, invalid(domain.ErrNegativeDuration)
	}
	return r.base.Update(ctx,
		persistence.Set("duration", persistence.Int(duration)),
		persistence.Where("songid", persistence.Int(songID)))
}

// SearchByTitle 按标题子串搜索
func (r *songRepository) SearchByTitle(ctx context.Context, term string) ([]domain.Song, error) {
	return r.base.SearchLike(ctx, "title", term)
}

// Delete 删除歌曲
func (r *songRepository) Delete(ctx context.Context, songID int) (int64, error) {
	return r.base.Delete(ctx, persistence.Where("songid", persistence.Int(songID)))
}
