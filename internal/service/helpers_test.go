package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aurora-share/server/internal/domain"
)

var errDown = errors.New("connection refused")

// stubSongRepo 预置歌曲的 SongRepository 桩
type stubSongRepo struct {
	songs     []domain.Song
	failAll   bool
	inserted  []domain.Song
	insertErr error
	nextID    int
}

func (s *stubSongRepo) GetAll(ctx context.Context) ([]domain.Song, error) {
	if s.failAll {
		return nil, errDown
	}
	return s.songs, nil
}

func (s *stubSongRepo) GetByID(ctx context.Context, songID int) (*domain.Song, error) {
	for i := range s.songs {
		if s.songs[i].SongID == songID {
			return &s.songs[i], nil
		}
	}
	return nil, errDown
}

func (s *stubSongRepo) Insert(ctx context.Context, title string, duration int, filePath string, userID, genreID int) (*domain.Song, error) {
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	s.nextID++
	song := domain.Song{
		SongID:   s.nextID,
		Title:    title,
		Duration: duration,
		FilePath: filePath,
		UserID:   userID,
		GenreID:  genreID,
	}
	s.inserted = append(s.inserted, song)
	return &song, nil
}

func (s *stubSongRepo) SaveDuration(ctx context.Context, songID, duration int) (int64, error) {
	return 1, nil
}

func (s *stubSongRepo) SearchByTitle(ctx context.Context, term string) ([]domain.Song, error) {
	if s.failAll {
		return nil, errDown
	}
	var out []domain.Song
	for _, song := range s.songs {
		if strings.Contains(strings.ToLower(song.Title), strings.ToLower(term)) {
			out = append(out, song)
		}
	}
	return out, nil
}

func (s *stubSongRepo) Delete(ctx context.Context, songID int) (int64, error) { return 1, nil }

// stubGenreRepo 预置流派的 GenreRepository 桩
type stubGenreRepo struct {
	genres map[int]string
}

func (s *stubGenreRepo) GetAll(ctx context.Context) ([]domain.Genre, error) { return nil, nil }

func (s *stubGenreRepo) GetByID(ctx context.Context, genreID int) (*domain.Genre, error) {
	name, ok := s.genres[genreID]
	if !ok {
		return nil, errDown
	}
	return &domain.Genre{GenreID: genreID, Name: name}, nil
}

func (s *stubGenreRepo) Insert(ctx context.Context, name string) (*domain.Genre, error) {
	return nil, nil
}

func (s *stubGenreRepo) Delete(ctx context.Context, genreID int) (int64, error) { return 0, nil }

// stubListenerRepo 预置用户的 ListenerRepository 桩
type stubListenerRepo struct {
	names      map[int]string
	byName     map[string]*domain.Listener
	deleted    int64
	deleteErr  error
	lastCutoff time.Time

	issuedTTL    time.Duration
	issuedCode   string
	passwordsSet map[int]string
	clearedFor   []int
}

func (s *stubListenerRepo) GetAll(ctx context.Context) ([]domain.Listener, error) { return nil, nil }

func (s *stubListenerRepo) GetByID(ctx context.Context, userID int) (*domain.Listener, error) {
	name, ok := s.names[userID]
	if !ok {
		return nil, errDown
	}
	return &domain.Listener{UserID: userID, Username: name}, nil
}

func (s *stubListenerRepo) GetByUsername(ctx context.Context, username string) (*domain.Listener, error) {
	if l, ok := s.byName[username]; ok {
		return l, nil
	}
	return nil, errDown
}

func (s *stubListenerRepo) Insert(ctx context.Context, username, email string) (*domain.Listener, error) {
	return nil, nil
}

func (s *stubListenerRepo) SetPassword(ctx context.Context, userID int, plaintext string) error {
	if s.passwordsSet == nil {
		s.passwordsSet = make(map[int]string)
	}
	s.passwordsSet[userID] = plaintext
	return nil
}

func (s *stubListenerRepo) VerifyLogin(ctx context.Context, username, plaintext string) (*domain.Listener, error) {
	return nil, errDown
}

func (s *stubListenerRepo) UpdateProfilePicture(ctx context.Context, userID int, image []byte) (int64, error) {
	return 0, nil
}

func (s *stubListenerRepo) IssueResetCode(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	s.issuedTTL = ttl
	s.issuedCode = "code-1234"
	return s.issuedCode, nil
}

func (s *stubListenerRepo) ClearResetCode(ctx context.Context, userID int) error {
	s.clearedFor = append(s.clearedFor, userID)
	return nil
}

func (s *stubListenerRepo) DeleteExpiredResetCodes(ctx context.Context, before time.Time) (int64, error) {
	s.lastCutoff = before
	if s.deleteErr != nil {
		return 0, s.deleteErr
	}
	return s.deleted, nil
}

func (s *stubListenerRepo) Delete(ctx context.Context, userID int) (int64, error) { return 0, nil }

// stubRatingRepo 预置平均分的 RatingRepository 桩
type stubRatingRepo struct {
	averages map[int]float64
	failAvg  bool
}

func (s *stubRatingRepo) GetByID(ctx context.Context, ratingID int) (*domain.Rating, error) {
	return nil, errDown
}

func (s *stubRatingRepo) GetBySong(ctx context.Context, songID int) ([]domain.Rating, error) {
	return nil, nil
}

func (s *stubRatingRepo) GetByUser(ctx context.Context, userID int) ([]domain.Rating, error) {
	return nil, nil
}

func (s *stubRatingRepo) UserRating(ctx context.Context, userID, songID int) (*domain.Rating, error) {
	return nil, nil
}

func (s *stubRatingRepo) AverageRating(ctx context.Context, songID int) (float64, error) {
	if s.failAvg {
		return 0, errDown
	}
	return s.averages[songID], nil
}

func (s *stubRatingRepo) RateSong(ctx context.Context, userID, songID, rate int) (*domain.Rating, error) {
	return nil, nil
}

func (s *stubRatingRepo) Delete(ctx context.Context, ratingID int) (int64, error) { return 0, nil }

// stubSongArtistRepo 预置贡献者的 SongArtistRepository 桩
type stubSongArtistRepo struct {
	contributors map[int][]int
	added        []domain.SongArtist
	addErr       error
	failList     bool
}

func (s *stubSongArtistRepo) AddContributor(ctx context.Context, songID, userID int, role string) error {
	if s.addErr != nil {
		return s.addErr
	}
	s.added = append(s.added, domain.SongArtist{SongID: songID, UserID: userID, Role: role})
	return nil
}

func (s *stubSongArtistRepo) RemoveContributor(ctx context.Context, songID, userID int) (int64, error) {
	return 0, nil
}

func (s *stubSongArtistRepo) ListContributors(ctx context.Context, songID int) ([]int, error) {
	if s.failList {
		return nil, errDown
	}
	return s.contributors[songID], nil
}

func (s *stubSongArtistRepo) ListContributions(ctx context.Context, userID int) ([]int, error) {
	return nil, nil
}

func (s *stubSongArtistRepo) GetContributors(ctx context.Context, songID int) ([]domain.SongArtist, error) {
	return nil, nil
}

func (s *stubSongArtistRepo) ReplaceContributors(ctx context.Context, songID int, artistIDs []int, role string) error {
	return nil
}
