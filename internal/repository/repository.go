// Package repository 实现各实体仓储
//
// 每个仓储都是通用持久化引擎 persistence.Repository 的一个实例：
// 表名 + 主键 + 行映射器，再加少量实体特有的查询。
package repository

import (
	"context"
	"time"

	"github.com/aurora-share/server/internal/domain"
	apperrors "github.com/aurora-share/server/pkg/errors"
)

// SongRepository 歌曲仓储接口
type SongRepository interface {
	// GetAll 获取全部歌曲
	GetAll(ctx context.Context) ([]domain.Song, error)
	// GetByID 按主键获取歌曲
	GetByID(ctx context.Context, songID int) (*domain.Song, error)
	// Insert 新增歌曲并返回完整模型
	Insert(ctx context.Context, title string, duration int, filePath string, userID, genreID int) (*domain.Song, error)
	// SaveDuration 回填歌曲时长
	SaveDuration(ctx context.Context, songID, duration int) (int64, error)
	// SearchByTitle 按标题子串搜索（大小写不敏感）
	SearchByTitle(ctx context.Context, term string) ([]domain.Song, error)
	// Delete 删除歌曲
	Delete(ctx context.Context, songID int) (int64, error)
}

// GenreRepository 流派仓储接口
type GenreRepository interface {
	GetAll(ctx context.Context) ([]domain.Genre, error)
	GetByID(ctx context.Context, genreID int) (*domain.Genre, error)
	Insert(ctx context.Context, name string) (*domain.Genre, error)
	Delete(ctx context.Context, genreID int) (int64, error)
}

// ListenerRepository 听众仓储接口
type ListenerRepository interface {
	GetAll(ctx context.Context) ([]domain.Listener, error)
	GetByID(ctx context.Context, userID int) (*domain.Listener, error)
	GetByUsername(ctx context.Context, username string) (*domain.Listener, error)
	Insert(ctx context.Context, username, email string) (*domain.Listener, error)
	// SetPassword 以 bcrypt 哈希存储新凭证
	SetPassword(ctx context.Context, userID int, plaintext string) error
	// VerifyLogin 按用户名取出用户并校验凭证
	VerifyLogin(ctx context.Context, username, plaintext string) (*domain.Listener, error)
	UpdateProfilePicture(ctx context.Context, userID int, image []byte) (int64, error)
	// IssueResetCode 生成带过期时间的密码重置码
	IssueResetCode(ctx context.Context, userID int, ttl time.Duration) (string, error)
	ClearResetCode(ctx context.Context, userID int) error
	// DeleteExpiredResetCodes 清除在 before 之前过期的重置码
	DeleteExpiredResetCodes(ctx context.Context, before time.Time) (int64, error)
	Delete(ctx context.Context, userID int) (int64, error)
}

// RatingRepository 评分仓储与聚合接口
type RatingRepository interface {
	GetByID(ctx context.Context, ratingID int) (*domain.Rating, error)
	GetBySong(ctx context.Context, songID int) ([]domain.Rating, error)
	GetByUser(ctx context.Context, userID int) ([]domain.Rating, error)
	// UserRating 返回用户对歌曲的既有评分，不存在时返回 (nil, nil)
	UserRating(ctx context.Context, userID, songID int) (*domain.Rating, error)
	// AverageRating 返回歌曲平均评分，无评分时返回 0.0 哨兵值
	AverageRating(ctx context.Context, songID int) (float64, error)
	// RateSong 评分或改评分；越界评分在发出SQL前被拒绝
	// 并发的首次评分由 (userid, songid) 唯一约束 + upsert 保证只留一行
	RateSong(ctx context.Context, userID, songID, rate int) (*domain.Rating, error)
	Delete(ctx context.Context, ratingID int) (int64, error)
}

// SongArtistRepository 歌曲-歌手关联仓储接口
type SongArtistRepository interface {
	// AddContributor 添加贡献者；role 为空时默认 main
	AddContributor(ctx context.Context, songID, userID int, role string) error
	// RemoveContributor 移除贡献者；不存在时受影响行数为 0，不报错
	RemoveContributor(ctx context.Context, songID, userID int) (int64, error)
	// ListContributors 返回歌曲的贡献者ID，main 在前，同角色按用户ID升序
	ListContributors(ctx context.Context, songID int) ([]int, error)
	// ListContributions 返回用户参与的歌曲ID
	ListContributions(ctx context.Context, userID int) ([]int, error)
	GetContributors(ctx context.Context, songID int) ([]domain.SongArtist, error)
	// ReplaceContributors 整体替换歌曲贡献者（单事务内先删后插）
	ReplaceContributors(ctx context.Context, songID int, artistIDs []int, role string) error
}

// invalid 把域校验错误包装为 VALIDATION_FAILED
func invalid(err error) error {
	return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
}
