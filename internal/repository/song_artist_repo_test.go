package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aurora-share/server/internal/domain"
	apperrors "github.com/aurora-share/server/pkg/errors"
)

func TestSongArtistRepository_AddContributor_DefaultsToMain(t *testing.T) {
	db := &fakeDB{queryResults: [][][]any{
		{{int32(2), int32(7), "main", testTime()}},
	}}
	repo := NewSongArtistRepository(db)

	err := repo.AddContributor(context.Background(), 2, 7, "")
	require.NoError(t, err)

	require.Len(t, db.calls, 1)
	assert.Equal(t, "INSERT INTO song_artists (songid, userid, role) VALUES ($1, $2, $3) RETURNING *", db.calls[0].sql)
	assert.Equal(t, []any{int64(2), int64(7), "main"}, db.calls[0].args)
}

func TestSongArtistRepository_AddContributor_RejectsUnknownRole(t *testing.T) {
	db := &fakeDB{}
	repo := NewSongArtistRepository(db)

	err := repo.AddContributor(context.Background(), 2, 7, "producer")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, db.calls)
}

func TestSongArtistRepository_RemoveContributor_ZeroRowsIsNotAnError(t *testing.T) {
	db := &fakeDB{execTags: []pgconn.CommandTag{pgconn.NewCommandTag("DELETE 0")}}
	repo := NewSongArtistRepository(db)

	n, err := repo.RemoveContributor(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSongArtistRepository_ListContributors_MainFirst(t *testing.T) {
	db := &fakeDB{queryResults: [][][]any{
		{{int32(7)}, {int32(3)}, {int32(9)}},
	}}
	repo := NewSongArtistRepository(db)

	ids, err := repo.ListContributors(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, []int{7, 3, 9}, ids)
	assert.Contains(t, db.calls[0].sql, "ORDER BY CASE WHEN role = 'main' THEN 0 ELSE 1 END, userid")
	assert.Equal(t, []any{2}, db.calls[0].args)
}

func TestSongArtistRepository_GetContributors(t *testing.T) {
	db := &fakeDB{queryResults: [][][]any{
		{
			{int32(2), int32(7), "main", testTime()},
			{int32(2), int32(3), "featured", testTime()},
		},
	}}
	repo := NewSongArtistRepository(db)

	list, err := repo.GetContributors(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, domain.RoleMain, list[0].Role)
	assert.Equal(t, domain.RoleFeatured, list[1].Role)
}

func TestSongArtistRepository_TruncatedRowIsConversionError(t *testing.T) {
	db := &fakeDB{queryResults: [][][]any{
		{{int32(2), int32(7)}},
	}}
	repo := NewSongArtistRepository(db)

	_, err := repo.GetContributors(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, apperrors.IsConversion(err))
}

func TestSongArtistRepository_ReplaceContributors_SingleTransaction(t *testing.T) {
	db := &fakeDB{}
	repo := NewSongArtistRepository(db)

	err := repo.ReplaceContributors(context.Background(), 2, []int{7, 3}, domain.RoleFeatured)
	require.NoError(t, err)

	tx := db.tx
	require.NotNil(t, tx, "replacement must run inside a transaction")
	require.Len(t, tx.calls, 1)
	assert.Equal(t, "DELETE FROM song_artists WHERE songid = $1", tx.calls[0].sql)

	require.Len(t, tx.batchSQL, 2)
	assert.Equal(t, []any{2, 7, "featured"}, tx.batchSQL[0].args)
	assert.Equal(t, []any{2, 3, "featured"}, tx.batchSQL[1].args)

	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestSongArtistRepository_ReplaceContributors_EmptyListClearsAll(t *testing.T) {
	db := &fakeDB{}
	repo := NewSongArtistRepository(db)

	err := repo.ReplaceContributors(context.Background(), 2, nil, "")
	require.NoError(t, err)

	tx := db.tx
	require.NotNil(t, tx)
	require.Len(t, tx.calls, 1)
	assert.Empty(t, tx.batchSQL)
	assert.True(t, tx.committed)
}

func TestSongArtistRepository_ReplaceContributors_RollsBackOnDeleteFailure(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{execErr: errors.New("connection reset")}}
	repo := NewSongArtistRepository(db)

	err := repo.ReplaceContributors(context.Background(), 2, []int{7}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))

	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
	assert.Empty(t, db.tx.batchSQL, "no inserts after the delete fails")
}

func TestSongArtistRepository_ReplaceContributors_RollsBackOnInsertFailure(t *testing.T) {
	db := &fakeDB{tx: &fakeTx{batchErr: errors.New("duplicate key")}}
	repo := NewSongArtistRepository(db)

	err := repo.ReplaceContributors(context.Background(), 2, []int{7}, "")
	require.Error(t, err)
	assert.True(t, apperrors.IsStorage(err))
	assert.False(t, db.tx.committed)
	assert.True(t, db.tx.rolledBack)
}

func TestSongArtistRepository_ReplaceContributors_RejectsUnknownRole(t *testing.T) {
	db := &fakeDB{}
	repo := NewSongArtistRepository(db)

	err := repo.ReplaceContributors(context.Background(), 2, []int{7}, "composer")
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Nil(t, db.tx, "no transaction for an invalid role")
}
