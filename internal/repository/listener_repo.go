package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/aurora-share/server/internal/domain"
	"github.com/aurora-share/server/internal/persistence"
	apperrors "github.com/aurora-share/server/pkg/errors"
)

// listenerRepository 听众仓储实现
type listenerRepository struct {
	base *persistence.Repository[domain.Listener]
}

// NewListenerRepository 创建听众仓储
func NewListenerRepository(db DB) ListenerRepository {
	return &listenerRepository{
		base: persistence.NewRepository(db, "users", []string{"userid"}, mapListenerRow),
	}
}

// mapListenerRow 行映射: userid, username, email, password, profilepicture,
// isadmin, resetcode, resetexpires, datejoined
func mapListenerRow(row []any) (domain.Listener, error) {
	var l domain.Listener
	var err error

	if err = persistence.ExpectColumns(row, 9); err != nil {
		return l, err
	}
	if l.UserID, err = persistence.AsInt(row[0]); err != nil {
		return l, err
	}
	if l.Username, err = persistence.AsString(row[1]); err != nil {
		return l, err
	}
	if l.Email, err = persistence.AsString(row[2]); err != nil {
		return l, err
	}
	if l.PasswordHash, err = persistence.AsNullString(row[3]); err != nil {
		return l, err
	}
	if l.ProfilePicture, err = persistence.AsBytes(row[4]); err != nil {
		return l, err
	}
	if l.IsAdmin, err = persistence.AsBool(row[5]); err != nil {
		return l, err
	}
	if l.ResetCode, err = persistence.AsNullString(row[6]); err != nil {
		return l, err
	}
	if l.ResetExpires, err = persistence.AsNullTime(row[7]); err != nil {
		return l, err
	}
	if l.DateJoined, err = persistence.AsTime(row[8]); err != nil {
		return l, err
	}
	return l, nil
}

func (r *listenerRepository) GetAll(ctx context.Context) ([]domain.Listener, error) {
	return r.base.SelectAll(ctx, nil)
}

func (r *listenerRepository) GetByID(ctx context.Context, userID int) (*domain.Listener, error) {
	return r.base.SelectByKey(ctx, persistence.Int(userID))
}

func (r *listenerRepository) GetByUsername(ctx context.Context, username string) (*domain.Listener, error) {
	return r.base.SelectOne(ctx, persistence.Where("username", persistence.String(username)))
}

func (r *listenerRepository) Insert(ctx context.Context, username, email string) (*domain.Listener, error) {
	l := domain.Listener{Username: username, Email: email}
	if err := l.Validate(); err != nil {
		return nil, invalid(err)
	}

	fields := persistence.Set("username", persistence.String(username)).
		Set("email", persistence.String(email))
	return r.base.Insert(ctx, fields)
}

// SetPassword 以 bcrypt 哈希存储新凭证，绝不存明文
func (r *listenerRepository) SetPassword(ctx context.Context, userID int, plaintext string) error {
	if plaintext == "" {
		return apperrors.Validation("password must not be empty")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return apperrors.Storage(err, "hashing password failed")
	}

	n, err := r.base.Update(ctx,
		persistence.Set("password", persistence.String(string(hash))),
		persistence.Where("userid", persistence.Int(userID)))
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound("listener")
	}
	return nil
}

// VerifyLogin 校验用户名与凭证
func (r *listenerRepository) VerifyLogin(ctx context.Context, username, plaintext string) (*domain.Listener, error) {
	l, err := r.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if l.PasswordHash == nil {
		return nil, apperrors.NotFound("listener")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*l.PasswordHash), []byte(plaintext)); err != nil {
		return nil, apperrors.NotFound("listener")
	}
	return l, nil
}

func (r *listenerRepository) UpdateProfilePicture(ctx context.Context, userID int, image []byte) (int64, error) {
	return r.base.Update(ctx,
		persistence.Set("profilepicture", persistence.Bytes(image)),
		persistence.Where("userid", persistence.Int(userID)))
}

// IssueResetCode 生成带过期时间的密码重置码
func (r *listenerRepository) IssueResetCode(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", apperrors.Validation("reset code ttl must be positive")
	}

	code := uuid.NewString()
	expires := time.Now().Add(ttl)

	n, err := r.base.Update(ctx,
		persistence.Set("resetcode", persistence.String(code)).
			Set("resetexpires", persistence.Time(expires)),
		persistence.Where("userid", persistence.Int(userID)))
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", apperrors.NotFound("listener")
	}
	return code, nil
}

func (r *listenerRepository) ClearResetCode(ctx context.Context, userID int) error {
	_, err := r.base.Update(ctx,
		persistence.Set("resetcode", persistence.Null()).
			Set("resetexpires", persistence.Null()),
		persistence.Where("userid", persistence.Int(userID)))
	return err
}

// DeleteExpiredResetCodes 清除在 before 之前过期的重置码
func (r *listenerRepository) DeleteExpiredResetCodes(ctx context.Context, before time.Time) (int64, error) {
	const query = `
		UPDATE users
		SET resetcode = NULL, resetexpires = NULL
		WHERE resetcode IS NOT NULL AND resetexpires < $1
	`
	return r.base.ExecRaw(ctx, query, before)
}

func (r *listenerRepository) Delete(ctx context.Context, userID int) (int64, error) {
	return r.base.Delete(ctx, persistence.Where("userid", persistence.Int(userID)))
}
