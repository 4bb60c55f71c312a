package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeRows 以预置的行实现 pgx.Rows
type fakeRows struct {
	rows [][]any
	idx  int
	err  error
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return r.err }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}
func (r *fakeRows) Scan(dest ...any) error { return nil }
func (r *fakeRows) Values() ([]any, error) { return r.rows[r.idx-1], nil }
func (r *fakeRows) RawValues() [][]byte    { return nil }
func (r *fakeRows) Conn() *pgx.Conn        { return nil }

// recordedCall 记录一次语句执行
type recordedCall struct {
	sql  string
	args []any
}

// fakeQuerier 脚本化的 Querier，按调用顺序返回预置结果
type fakeQuerier struct {
	calls []recordedCall

	queryResults [][][]any
	queryErr     error
	queryIdx     int

	execTags []pgconn.CommandTag
	execErr  error
	execIdx  int
}

func (q *fakeQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	q.calls = append(q.calls, recordedCall{sql: sql, args: args})
	if q.execErr != nil {
		return pgconn.CommandTag{}, q.execErr
	}
	if q.execIdx < len(q.execTags) {
		tag := q.execTags[q.execIdx]
		q.execIdx++
		return tag, nil
	}
	return pgconn.NewCommandTag("OK 0"), nil
}

func (q *fakeQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	q.calls = append(q.calls, recordedCall{sql: sql, args: args})
	if q.queryErr != nil {
		return nil, q.queryErr
	}
	var rows [][]any
	if q.queryIdx < len(q.queryResults) {
		rows = q.queryResults[q.queryIdx]
		q.queryIdx++
	}
	return &fakeRows{rows: rows}, nil
}
