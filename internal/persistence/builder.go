package persistence

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/aurora-share/server/pkg/errors"
)

// 合法的SQL标识符（表名/列名）
// 标识符来自仓储声明而非用户输入，这里仍然整体校验，
// 避免任何拼接路径成为注入点
var identPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

func checkIdent(name string) error {
	if !identPattern.MatchString(name) {
		return errors.Validation("invalid SQL identifier %q", name)
	}
	return nil
}

func checkClauses(clauses []Clause) error {
	for _, c := range clauses {
		if err := checkIdent(c.Col); err != nil {
			return err
		}
	}
	return nil
}

// whereClause 生成 WHERE 片段，占位符从 next 开始编号
func whereClause(filter Filter, next int) string {
	parts := make([]string, len(filter))
	for i, c := range filter {
		parts[i] = fmt.Sprintf("%s = $%d", c.Col, next+i)
	}
	return " WHERE " + strings.Join(parts, " AND ")
}

// BuildSelect 构建等值过滤的 SELECT；filter 为空时返回全表查询
func BuildSelect(table string, filter Filter) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	if err := checkClauses(filter); err != nil {
		return "", nil, err
	}

	query := "SELECT * FROM " + table
	if len(filter) > 0 {
		query += whereClause(filter, 1)
	}
	return query, args(filter), nil
}

// BuildLike 构建大小写不敏感的子串搜索
// 通配符包裹发生在绑定值上，绝不拼接进SQL文本
func BuildLike(table, column, term string) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	if err := checkIdent(column); err != nil {
		return "", nil, err
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE %s ILIKE $1", table, column)
	return query, []any{"%" + term + "%"}, nil
}

// BuildInsert 构建 INSERT，附带 RETURNING * 以单条语句返回完整行
func BuildInsert(table string, fields Fields) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	if len(fields) == 0 {
		return "", nil, errors.Validation("insert into %s requires at least one field", table)
	}
	if err := checkClauses(fields); err != nil {
		return "", nil, err
	}

	cols := make([]string, len(fields))
	placeholders := make([]string, len(fields))
	for i, c := range fields {
		cols[i] = c.Col
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING *",
		table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
	)
	return query, args(fields), nil
}

// BuildUpdate 构建 UPDATE；fields 与 filter 均不得为空，
// 防止无条件全表更新
func BuildUpdate(table string, fields Fields, filter Filter) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	if len(fields) == 0 {
		return "", nil, errors.Validation("update on %s requires at least one field", table)
	}
	if len(filter) == 0 {
		return "", nil, errors.Validation("update on %s requires a filter", table)
	}
	if err := checkClauses(fields); err != nil {
		return "", nil, err
	}
	if err := checkClauses(filter); err != nil {
		return "", nil, err
	}

	sets := make([]string, len(fields))
	for i, c := range fields {
		sets[i] = fmt.Sprintf("%s = $%d", c.Col, i+1)
	}

	query := fmt.Sprintf("UPDATE %s SET %s", table, strings.Join(sets, ", "))
	query += whereClause(filter, len(fields)+1)

	return query, append(args(fields), args(filter)...), nil
}

// BuildDelete 构建 DELETE；filter 不得为空，防止无条件全表删除
func BuildDelete(table string, filter Filter) (string, []any, error) {
	if err := checkIdent(table); err != nil {
		return "", nil, err
	}
	if len(filter) == 0 {
		return "", nil, errors.Validation("delete on %s requires a filter", table)
	}
	if err := checkClauses(filter); err != nil {
		return "", nil, err
	}

	query := "DELETE FROM " + table + whereClause(filter, 1)
	return query, args(filter), nil
}
