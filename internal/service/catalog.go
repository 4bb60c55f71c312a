package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/aurora-share/server/internal/domain"
	"github.com/aurora-share/server/internal/repository"
	"github.com/aurora-share/server/pkg/logger"
)

// 批量装配时单项解析失败的降级占位
const (
	unknownArtist = "Unknown Artist"
	unknownGenre  = "Unknown Genre"
)

// SongListing 目录视图：歌曲及其装配好的展示字段
type SongListing struct {
	SongID        int      `json:"song_id"`
	Title         string   `json:"title"`
	Duration      int      `json:"duration"`
	FilePath      string   `json:"file_path"`
	Genre         string   `json:"genre"`
	Uploader      string   `json:"uploader"`
	Artists       []string `json:"artists"`
	AverageRating float64  `json:"average_rating"`
}

// CatalogService 目录服务：在仓储之上装配歌曲列表视图
type CatalogService struct {
	songs       repository.SongRepository
	genres      repository.GenreRepository
	listeners   repository.ListenerRepository
	ratings     repository.RatingRepository
	songArtists repository.SongArtistRepository
	log         logger.Logger
}

// NewCatalogService 创建目录服务
func NewCatalogService(
	songs repository.SongRepository,
	genres repository.GenreRepository,
	listeners repository.ListenerRepository,
	ratings repository.RatingRepository,
	songArtists repository.SongArtistRepository,
	log logger.Logger,
) *CatalogService {
	return &CatalogService{
		songs:       songs,
		genres:      genres,
		listeners:   listeners,
		ratings:     ratings,
		songArtists: songArtists,
		log:         log,
	}
}

// LoadSongs 装配全部歌曲的目录视图
// 单首歌的流派/歌手/评分解析失败只降级该项并记日志，列表本身照常返回；
// 歌曲主查询失败则整体失败
func (s *CatalogService) LoadSongs(ctx context.Context) ([]SongListing, error) {
	songs, err := s.songs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, songs), nil
}

// Search 按标题子串搜索并装配视图，空白查询等同列出全部
func (s *CatalogService) Search(ctx context.Context, term string) ([]SongListing, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return s.LoadSongs(ctx)
	}

	songs, err := s.songs.SearchByTitle(ctx, term)
	if err != nil {
		return nil, err
	}
	return s.assemble(ctx, songs), nil
}

// UploadSong 新增歌曲并登记贡献者，上传者为主唱，featured 为客串
// 写路径上的任何失败都原样上抛，不降级
func (s *CatalogService) UploadSong(ctx context.Context, title string, duration int, filePath string, uploaderID, genreID int, featuredIDs []int) (*domain.Song, error) {
	song, err := s.songs.Insert(ctx, title, duration, filePath, uploaderID, genreID)
	if err != nil {
		return nil, err
	}

	if err := s.songArtists.AddContributor(ctx, song.SongID, uploaderID, domain.RoleMain); err != nil {
		return nil, err
	}
	for _, artistID := range featuredIDs {
		if artistID == uploaderID {
			continue
		}
		if err := s.songArtists.AddContributor(ctx, song.SongID, artistID, domain.RoleFeatured); err != nil {
			return nil, err
		}
	}

	s.log.Info("song uploaded",
		logger.Int("song_id", song.SongID),
		logger.Int("uploader_id", uploaderID),
		logger.Int("featured", len(featuredIDs)))
	return song, nil
}

func (s *CatalogService) assemble(ctx context.Context, songs []domain.Song) []SongListing {
	list := make([]SongListing, 0, len(songs))
	for _, song := range songs {
		list = append(list, SongListing{
			SongID:        song.SongID,
			Title:         song.Title,
			Duration:      song.Duration,
			FilePath:      song.FilePath,
			Genre:         s.genreName(ctx, song),
			Uploader:      s.uploaderName(ctx, song),
			Artists:       s.artistNames(ctx, song),
			AverageRating: s.averageRating(ctx, song),
		})
	}
	return list
}

func (s *CatalogService) genreName(ctx context.Context, song domain.Song) string {
	genre, err := s.genres.GetByID(ctx, song.GenreID)
	if err != nil {
		s.log.Warn("resolving genre failed, using placeholder",
			logger.Int("song_id", song.SongID),
			logger.Int("genre_id", song.GenreID),
			logger.Error(err))
		return unknownGenre
	}
	return genre.Name
}

func (s *CatalogService) uploaderName(ctx context.Context, song domain.Song) string {
	uploader, err := s.listeners.GetByID(ctx, song.UserID)
	if err != nil {
		s.log.Warn("resolving uploader failed, using placeholder",
			logger.Int("song_id", song.SongID),
			logger.Int("user_id", song.UserID),
			logger.Error(err))
		return fmt.Sprintf("User #%d", song.UserID)
	}
	return uploader.Username
}

func (s *CatalogService) artistNames(ctx context.Context, song domain.Song) []string {
	ids, err := s.songArtists.ListContributors(ctx, song.SongID)
	if err != nil {
		s.log.Warn("resolving contributors failed, using placeholder",
			logger.Int("song_id", song.SongID),
			logger.Error(err))
		return []string{unknownArtist}
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		artist, err := s.listeners.GetByID(ctx, id)
		if err != nil {
			s.log.Warn("resolving artist failed, using placeholder",
				logger.Int("song_id", song.SongID),
				logger.Int("artist_id", id),
				logger.Error(err))
			names = append(names, unknownArtist)
			continue
		}
		names = append(names, artist.Username)
	}
	return names
}

func (s *CatalogService) averageRating(ctx context.Context, song domain.Song) float64 {
	avg, err := s.ratings.AverageRating(ctx, song.SongID)
	if err != nil {
		s.log.Warn("resolving average rating failed, defaulting to 0",
			logger.Int("song_id", song.SongID),
			logger.Error(err))
		return 0
	}
	return avg
}
