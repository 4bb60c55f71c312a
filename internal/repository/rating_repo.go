package repository

import (
	"context"

	"github.com/aurora-share/server/internal/domain"
	"github.com/aurora-share/server/internal/persistence"
	apperrors "github.com/aurora-share/server/pkg/errors"
)

// ratingRepository 评分仓储实现
type ratingRepository struct {
	base *persistence.Repository[domain.Rating]
	db   DB
}

// NewRatingRepository 创建评分仓储
func NewRatingRepository(db DB) RatingRepository {
	return &ratingRepository{
		base: persistence.NewRepository(db, "ratings", []string{"ratingid"}, mapRatingRow),
		db:   db,
	}
}

// mapRatingRow 行映射: ratingid, userid, songid, rating, daterated
func mapRatingRow(row []any) (domain.Rating, error) {
	var rt domain.Rating
	var err error

	if err = persistence.ExpectColumns(row, 5); err != nil {
		return rt, err
	}
	if rt.RatingID, err = persistence.AsInt(row[0]); err != nil {
		return rt, err
	}
	if rt.UserID, err = persistence.AsInt(row[1]); err != nil {
		return rt, err
	}
	if rt.SongID, err = persistence.AsInt(row[2]); err != nil {
		return rt, err
	}
	if rt.Rate, err = persistence.AsInt(row[3]); err != nil {
		return rt, err
	}
	if rt.DateRated, err = persistence.AsNullTime(row[4]); err != nil {
		return rt, err
	}
	return rt, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, ratingID int) (*domain.Rating, error) {
	return r.base.SelectByKey(ctx, persistence.Int(ratingID))
}

func (r *ratingRepository) GetBySong(ctx context.Context, songID int) ([]domain.Rating, error) {
	return r.base.SelectAll(ctx, persistence.Where("songid", persistence.Int(songID)))
}

func (r *ratingRepository) GetByUser(ctx context.Context, userID int) ([]domain.Rating, error) {
	return r.base.SelectAll(ctx, persistence.Where("userid", persistence.Int(userID)))
}

// UserRating 查某用户对某歌曲的评分，未评分返回 (nil, nil)
func (r *ratingRepository) UserRating(ctx context.Context, userID, songID int) (*domain.Rating, error) {
	rt, err := r.base.SelectOne(ctx,
		persistence.Where("userid", persistence.Int(userID)).
			And("songid", persistence.Int(songID)))
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return rt, nil
}

// AverageRating 歌曲平均分，无人评分时返回 0
func (r *ratingRepository) AverageRating(ctx context.Context, songID int) (float64, error) {
	const query = `SELECT COALESCE(AVG(rating)::float8, 0) FROM ratings WHERE songid = $1`

	avgs, err := persistence.Scalars[float64](ctx, r.db, query, songID)
	if err != nil {
		return 0, err
	}
	if len(avgs) == 0 {
		return 0, nil
	}
	return avgs[0], nil
}

// RateSong 评分或改评分
// 越界评分在发出SQL前被拒绝；并发的首次评分由
// (userid, songid) 唯一约束 + upsert 保证只留一行
func (r *ratingRepository) RateSong(ctx context.Context, userID, songID, rate int) (*domain.Rating, error) {
	if err := domain.ValidateRate(rate); err != nil {
		return nil, invalid(err)
	}

	const query = `
		INSERT INTO ratings (userid, songid, rating, daterated)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT ON CONSTRAINT uq_ratings_user_song
		DO UPDATE SET rating = EXCLUDED.rating, daterated = EXCLUDED.daterated
		RETURNING *
	`
	list, err := r.base.SelectRaw(ctx, query, userID, songID, rate)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, apperrors.New(apperrors.ErrCodeStorage, "rating upsert returned no row")
	}
	return &list[0], nil
}

func (r *ratingRepository) Delete(ctx context.Context, ratingID int) (int64, error) {
	return r.base.Delete(ctx, persistence.Where("ratingid", persistence.Int(ratingID)))
}
