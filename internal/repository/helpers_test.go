package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func testTime() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

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

// fakeDB 脚本化的 DB，按调用顺序返回预置结果，并记录事务使用情况
type fakeDB struct {
	calls []recordedCall

	queryResults [][][]any
	queryErr     error
	queryIdx     int

	execTags []pgconn.CommandTag
	execErr  error
	execIdx  int

	beginErr error
	tx       *fakeTx
}

func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	if db.execErr != nil {
		return pgconn.CommandTag{}, db.execErr
	}
	if db.execIdx < len(db.execTags) {
		tag := db.execTags[db.execIdx]
		db.execIdx++
		return tag, nil
	}
	return pgconn.NewCommandTag("OK 0"), nil
}

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.calls = append(db.calls, recordedCall{sql: sql, args: args})
	if db.queryErr != nil {
		return nil, db.queryErr
	}
	var rows [][]any
	if db.queryIdx < len(db.queryResults) {
		rows = db.queryResults[db.queryIdx]
		db.queryIdx++
	}
	return &fakeRows{rows: rows}, nil
}

func (db *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	if db.tx == nil {
		db.tx = &fakeTx{}
	}
	return db.tx, nil
}

// fakeTx 记录事务内语句与提交/回滚状态的 pgx.Tx 实现
type fakeTx struct {
	calls      []recordedCall
	batchSQL   []recordedCall
	execErr    error
	batchErr   error
	commitErr  error
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(ctx context.Context) error {
	if t.commitErr != nil {
		return t.commitErr
	}
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(ctx context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

func (t *fakeTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}

func (t *fakeTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults {
	for _, q := range b.QueuedQueries {
		t.batchSQL = append(t.batchSQL, recordedCall{sql: q.SQL, args: q.Arguments})
	}
	return &fakeBatchResults{n: b.Len(), err: t.batchErr}
}

func (t *fakeTx) LargeObjects() pgx.LargeObjects { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.calls = append(t.calls, recordedCall{sql: sql, args: args})
	if t.execErr != nil {
		return pgconn.CommandTag{}, t.execErr
	}
	return pgconn.NewCommandTag("OK 0"), nil
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.calls = append(t.calls, recordedCall{sql: sql, args: args})
	return &fakeRows{}, nil
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	t.calls = append(t.calls, recordedCall{sql: sql, args: args})
	return &fakeRows{}
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// fakeBatchResults 按批次大小逐条返回结果
type fakeBatchResults struct {
	n   int
	idx int
	err error
}

func (r *fakeBatchResults) Exec() (pgconn.CommandTag, error) {
	r.idx++
	if r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (r *fakeBatchResults) Query() (pgx.Rows, error) { return &fakeRows{}, r.err }
func (r *fakeBatchResults) QueryRow() pgx.Row        { return &fakeRows{} }
func (r *fakeBatchResults) Close() error             { return nil }
