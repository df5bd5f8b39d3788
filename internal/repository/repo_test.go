package repository

import (
	"Tieba/internal/model"
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB 单连接内存库，事务天然串行
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(model.Tables()...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()
	user := &model.User{Username: name, Password: "x", Nickname: name, Status: model.UserStatusActive}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedBoard(t *testing.T, db *gorm.DB, owner *model.User, name string) *model.Board {
	t.Helper()
	board := &model.Board{Name: name, OwnerID: owner.ID, Status: model.BoardStatusNormal}
	_, err := NewBoardRepo(db).CreateBoardWithOwner(context.Background(), board)
	require.NoError(t, err)
	return board
}

func seedPost(t *testing.T, db *gorm.DB, author *model.User, board *model.Board) *model.Post {
	t.Helper()
	post := &model.Post{
		AuthorID: author.ID,
		BoardID:  board.ID,
		Title:    fmt.Sprintf("title-%d", time.Now().UnixNano()),
		Content:  "content",
		Status:   model.PostStatusActive,
	}
	require.NoError(t, NewPostRepository(db).CreatePost(context.Background(), post))
	return post
}

func column[T any](t *testing.T, db *gorm.DB, table, col string, id uint64) T {
	t.Helper()
	var v T
	require.NoError(t, db.Table(table).Select(col).Where("id = ?", id).Scan(&v).Error)
	return v
}
