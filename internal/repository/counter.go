package repository

import (
	"context"
	log "log/slog"
	"sort"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Counter 随关系行增删而同步加减的计数列
type Counter struct {
	Table  string
	Column string
	ID     uint64
}

// lockRank 全局加锁顺序，上级实体先于下级实体；未列出的表排在最后按表名排序。
// guardLeave 等在 lockRows 之后单独加锁的路径也必须遵守同一顺序
var lockRank = map[string]int{
	"boards":        0,
	"posts":         1,
	"comments":      2,
	"board_members": 3,
	"users":         4,
}

func rankOf(table string) int {
	if r, ok := lockRank[table]; ok {
		return r
	}
	return len(lockRank)
}

// lockRows 对计数所在行加排他锁，按 (表顺序, ID) 升序加锁以保证所有事务的加锁顺序一致
func lockRows(tx *gorm.DB, counters []Counter) error {
	type rowKey struct {
		table string
		id    uint64
	}
	seen := make(map[rowKey]struct{}, len(counters))
	rows := make([]rowKey, 0, len(counters))
	for _, c := range counters {
		k := rowKey{table: c.Table, id: c.ID}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		rows = append(rows, k)
	}
	sort.Slice(rows, func(i, j int) bool {
		if ri, rj := rankOf(rows[i].table), rankOf(rows[j].table); ri != rj {
			return ri < rj
		}
		if rows[i].table != rows[j].table {
			return rows[i].table < rows[j].table
		}
		return rows[i].id < rows[j].id
	})

	for _, r := range rows {
		var ids []uint64
		err := tx.Table(r.table).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", r.id).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return errors.Wrapf(ErrCounterTargetMissing, "%s#%d", r.table, r.id)
		}
	}
	return nil
}

// readCounter 读取计数当前值，调用方需已持有行锁
func readCounter(tx *gorm.DB, c Counter) (int64, error) {
	var value int64
	err := tx.Table(c.Table).
		Select(c.Column).
		Where("id = ?", c.ID).
		Scan(&value).Error
	return value, err
}

func incrCounter(tx *gorm.DB, c Counter) error {
	return tx.Table(c.Table).
		Where("id = ?", c.ID).
		UpdateColumn(c.Column, gorm.Expr(c.Column+" + ?", 1)).Error
}

// decrCounter 计数减一，最低为 0；出现下溢说明计数已与关系表不一致，只记录不报错
func decrCounter(tx *gorm.DB, c Counter) error {
	current, err := readCounter(tx, c)
	if err != nil {
		return err
	}
	if current <= 0 {
		logUnderflow(tx.Statement.Context, c, current)
		return nil
	}
	return tx.Table(c.Table).
		Where("id = ?", c.ID).
		UpdateColumn(c.Column, gorm.Expr("CASE WHEN "+c.Column+" > 0 THEN "+c.Column+" - 1 ELSE 0 END")).Error
}

func logUnderflow(ctx context.Context, c Counter, current int64) {
	if ctx == nil {
		ctx = context.Background()
	}
	log.ErrorContext(ctx, "counter underflow clamped",
		"defect", "counter_underflow",
		"table", c.Table,
		"column", c.Column,
		"id", c.ID,
		"current", current,
	)
}
