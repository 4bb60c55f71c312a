// Package persistence 提供通用持久化引擎
//
// 每个实体仓储都是 Repository[E] 的一个实例：表名 + 主键 + 行映射器。
// SQL 由查询构建器生成，所有值一律走参数绑定；连接从 pgx 连接池按语句
// 作用域获取，任何退出路径（包括超时/取消）都会归还连接。
package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/aurora-share/server/pkg/errors"
)

// Querier 语句执行抽象，*pgxpool.Pool 与 pgx.Tx 均满足
type Querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// RowMapper 把一行按列序排列的原始值转换为实体模型
// 可空列收到 NULL 时映射为域内的"缺失"表示；列类型不符必须立即报错
type RowMapper[E any] func(row []any) (E, error)

// Repository 参数化的通用实体仓储
type Repository[E any] struct {
	db     Querier
	table  string
	key    []string // 主键列，复合主键按序排列
	mapRow RowMapper[E]
}

// NewRepository 创建实体仓储
func NewRepository[E any](db Querier, table string, key []string, mapRow RowMapper[E]) *Repository[E] {
	return &Repository[E]{
		db:     db,
		table:  table,
		key:    key,
		mapRow: mapRow,
	}
}

// Table 返回仓储的表名
func (r *Repository[E]) Table() string { return r.table }

// KeyFilter 把按序给出的主键值组装成过滤条件
// 复合主键必须整体提供，缺一即拒绝，避免部分主键悄悄匹配到错误的行
func (r *Repository[E]) KeyFilter(keyVals ...Value) (Filter, error) {
	if len(keyVals) != len(r.key) {
		return nil, errors.Validation(
			"table %s has %d key column(s), got %d value(s)",
			r.table, len(r.key), len(keyVals),
		)
	}
	filter := make(Filter, len(keyVals))
	for i, v := range keyVals {
		filter[i] = Clause{Col: r.key[i], Val: v}
	}
	return filter, nil
}

// SelectAll 查询满足等值过滤的全部行；filter 为 nil 时查询全表
// 无匹配返回空列表，不是错误
func (r *Repository[E]) SelectAll(ctx context.Context, filter Filter) ([]E, error) {
	query, queryArgs, err := BuildSelect(r.table, filter)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, query, queryArgs)
}

// SelectOne 查询期望唯一的一行
// 零行返回 NOT_FOUND，多行返回 AMBIGUOUS_RESULT
func (r *Repository[E]) SelectOne(ctx context.Context, filter Filter) (*E, error) {
	list, err := r.SelectAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	switch len(list) {
	case 0:
		return nil, errors.New(errors.ErrCodeNotFound, fmt.Sprintf("no matching row in %s", r.table))
	case 1:
		return &list[0], nil
	default:
		return nil, errors.New(errors.ErrCodeAmbiguous,
			fmt.Sprintf("filter matched %d rows in %s", len(list), r.table))
	}
}

// SelectByKey 按主键查询一行，复合主键必须全部给出
func (r *Repository[E]) SelectByKey(ctx context.Context, keyVals ...Value) (*E, error) {
	filter, err := r.KeyFilter(keyVals...)
	if err != nil {
		return nil, err
	}
	return r.SelectOne(ctx, filter)
}

// Insert 插入一行并返回完整的模型（含生成的主键）
func (r *Repository[E]) Insert(ctx context.Context, fields Fields) (*E, error) {
	query, queryArgs, err := BuildInsert(r.table, fields)
	if err != nil {
		return nil, err
	}

	list, err := r.queryMany(ctx, query, queryArgs)
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, errors.New(errors.ErrCodeStorage,
			fmt.Sprintf("insert into %s returned %d rows", r.table, len(list)))
	}
	return &list[0], nil
}

// Update 按过滤条件更新字段，返回受影响行数
func (r *Repository[E]) Update(ctx context.Context, fields Fields, filter Filter) (int64, error) {
	query, queryArgs, err := BuildUpdate(r.table, fields, filter)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, query, queryArgs)
}

// Delete 按过滤条件删除行，返回受影响行数
// 删除不存在的行返回 0，不是错误
func (r *Repository[E]) Delete(ctx context.Context, filter Filter) (int64, error) {
	query, queryArgs, err := BuildDelete(r.table, filter)
	if err != nil {
		return 0, err
	}
	return r.exec(ctx, query, queryArgs)
}

// SearchLike 大小写不敏感的子串搜索
func (r *Repository[E]) SearchLike(ctx context.Context, column, term string) ([]E, error) {
	query, queryArgs, err := BuildLike(r.table, column, term)
	if err != nil {
		return nil, err
	}
	return r.queryMany(ctx, query, queryArgs)
}

// SelectRaw 执行自定义SQL并把结果行映射为实体
// 供实体仓储在构建器覆盖不到的查询（如 upsert RETURNING）时使用，
// 值仍然必须参数绑定
func (r *Repository[E]) SelectRaw(ctx context.Context, sql string, args ...any) ([]E, error) {
	return r.queryMany(ctx, sql, args)
}

// ExecRaw 原生SQL逃生通道（维护类语句等），返回影响行数，不做结果映射
func (r *Repository[E]) ExecRaw(ctx context.Context, sql string, args ...any) (int64, error) {
	return r.exec(ctx, sql, args)
}

func (r *Repository[E]) exec(ctx context.Context, query string, queryArgs []any) (int64, error) {
	tag, err := r.db.Exec(ctx, query, queryArgs...)
	if err != nil {
		return 0, errors.Storage(err, fmt.Sprintf("write to %s failed", r.table))
	}
	return tag.RowsAffected(), nil
}

func (r *Repository[E]) queryMany(ctx context.Context, query string, queryArgs []any) ([]E, error) {
	rows, err := r.db.Query(ctx, query, queryArgs...)
	if err != nil {
		return nil, errors.Storage(err, fmt.Sprintf("query on %s failed", r.table))
	}
	defer rows.Close()

	list := make([]E, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, errors.Storage(err, fmt.Sprintf("reading row from %s failed", r.table))
		}
		model, err := r.mapRow(vals)
		if err != nil {
			if errors.IsConversion(err) {
				return nil, err
			}
			return nil, errors.Conversion(err, fmt.Sprintf("mapping row from %s failed", r.table))
		}
		list = append(list, model)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage(err, fmt.Sprintf("query on %s failed", r.table))
	}
	return list, nil
}

// Scalars 执行单列投影查询，返回该列在所有匹配行上的值
func Scalars[T any](ctx context.Context, db Querier, query string, args ...any) ([]T, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Storage(err, "scalar query failed")
	}
	defer rows.Close()

	list := make([]T, 0)
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, errors.Storage(err, "reading scalar row failed")
		}
		if len(vals) != 1 {
			return nil, errors.New(errors.ErrCodeConversion,
				fmt.Sprintf("scalar query returned %d columns", len(vals)))
		}
		v, err := scalarAs[T](vals[0])
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Storage(err, "scalar query failed")
	}
	return list, nil
}

// scalarAs 把单列值转换为目标标量类型，整型做宽度归一
func scalarAs[T any](v any) (T, error) {
	var zero T
	if t, ok := v.(T); ok {
		return t, nil
	}
	var out any
	var err error
	switch any(zero).(type) {
	case int:
		out, err = AsInt(v)
	case int64:
		var n int
		n, err = AsInt(v)
		out = int64(n)
	case string:
		out, err = AsString(v)
	case float64:
		out, err = AsFloat64(v)
	default:
		return zero, conversionError(fmt.Sprintf("%T", zero), v)
	}
	if err != nil {
		return zero, err
	}
	return out.(T), nil
}
