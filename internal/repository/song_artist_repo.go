package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aurora-share/server/internal/domain"
	"github.com/aurora-share/server/internal/persistence"
	apperrors "github.com/aurora-share/server/pkg/errors"
)

// songArtistRepository 歌曲-歌手关联仓储实现
type songArtistRepository struct {
	base *persistence.Repository[domain.SongArtist]
	db   DB
	tx   Transaction
}

// NewSongArtistRepository 创建歌曲-歌手关联仓储
func NewSongArtistRepository(db DB) SongArtistRepository {
	return &songArtistRepository{
		base: persistence.NewRepository(db, "song_artists",
			[]string{"songid", "userid"}, mapSongArtistRow),
		db: db,
		tx: NewTransaction(db),
	}
}

// mapSongArtistRow 行映射: songid, userid, role, added_date
func mapSongArtistRow(row []any) (domain.SongArtist, error) {
	var sa domain.SongArtist
	var err error

	if err = persistence.ExpectColumns(row, 4); err != nil {
		return sa, err
	}
	if sa.SongID, err = persistence.AsInt(row[0]); err != nil {
		return sa, err
	}
	if sa.UserID, err = persistence.AsInt(row[1]); err != nil {
		return sa, err
	}
	if sa.Role, err = persistence.AsString(row[2]); err != nil {
		return sa, err
	}
	if sa.AddedDate, err = persistence.AsTime(row[3]); err != nil {
		return sa, err
	}
	return sa, nil
}

// AddContributor 把用户加为歌曲贡献者，role 为空时默认主唱
func (r *songArtistRepository) AddContributor(ctx context.Context, songID, userID int, role string) error {
	if role == "" {
		role = domain.RoleMain
	}
	if err := domain.ValidateRole(role); err != nil {
		return invalid(err)
	}

	_, err := r.base.Insert(ctx,
		persistence.Set("songid", persistence.Int(songID)).
			Set("userid", persistence.Int(userID)).
			Set("role", persistence.String(role)))
	return err
}

// RemoveContributor 解除关联，关联本就不存在时返回 0 而非错误
func (r *songArtistRepository) RemoveContributor(ctx context.Context, songID, userID int) (int64, error) {
	return r.base.Delete(ctx,
		persistence.Where("songid", persistence.Int(songID)).
			And("userid", persistence.Int(userID)))
}

// ListContributors 列出歌曲的全部贡献者用户ID，主唱排在前面
func (r *songArtistRepository) ListContributors(ctx context.Context, songID int) ([]int, error) {
	const query = `
		SELECT userid FROM song_artists
		WHERE songid = $1
		ORDER BY CASE WHEN role = 'main' THEN 0 ELSE 1 END, userid
	`
	return persistence.Scalars[int](ctx, r.db, query, songID)
}

// ListContributions 列出某用户参与的全部歌曲ID
func (r *songArtistRepository) ListContributions(ctx context.Context, userID int) ([]int, error) {
	const query = `SELECT songid FROM song_artists WHERE userid = $1 ORDER BY songid`
	return persistence.Scalars[int](ctx, r.db, query, userID)
}

func (r *songArtistRepository) GetContributors(ctx context.Context, songID int) ([]domain.SongArtist, error) {
	const query = `
		SELECT * FROM song_artists
		WHERE songid = $1
		ORDER BY CASE WHEN role = 'main' THEN 0 ELSE 1 END, userid
	`
	return r.base.SelectRaw(ctx, query, songID)
}

// ReplaceContributors 整体替换歌曲贡献者（单事务内先删后插）
// 出错即回滚，不会留下删了旧关联却没插上新关联的中间态
func (r *songArtistRepository) ReplaceContributors(ctx context.Context, songID int, artistIDs []int, role string) error {
	if role == "" {
		role = domain.RoleMain
	}
	if err := domain.ValidateRole(role); err != nil {
		return invalid(err)
	}

	return r.tx.ExecTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM song_artists WHERE songid = $1`, songID); err != nil {
			return apperrors.Storage(err, "clearing song contributors failed")
		}

		if len(artistIDs) == 0 {
			return nil
		}

		batch := &pgx.Batch{}
		for _, artistID := range artistIDs {
			batch.Queue(
				`INSERT INTO song_artists (songid, userid, role) VALUES ($1, $2, $3)`,
				songID, artistID, role,
			)
		}

		results := tx.SendBatch(ctx, batch)
		for i := 0; i < len(artistIDs); i++ {
			if _, err := results.Exec(); err != nil {
				results.Close()
				return apperrors.Storage(err, fmt.Sprintf("inserting contributor %d failed", i))
			}
		}
		if err := results.Close(); err != nil {
			return apperrors.Storage(err, "closing batch failed")
		}
		return nil
	})
}
