package domain

import "errors"

var (
	// 歌曲相关错误
	ErrEmptyTitle       = errors.New("song title must not be empty")
	ErrNegativeDuration = errors.New("song duration must not be negative")
	ErrEmptyFilePath    = errors.New("song file path must not be empty")

	// 评分相关错误
	ErrRateOutOfRange = errors.New("rating must be between 1 and 5")

	// 用户相关错误
	ErrEmptyUsername = errors.New("username must not be empty")
	ErrEmptyEmail    = errors.New("email must not be empty")

	// 流派相关错误
	ErrEmptyGenreName = errors.New("genre name must not be empty")

	// 贡献者相关错误
	ErrUnknownRole = errors.New("unknown contributor role")
)
