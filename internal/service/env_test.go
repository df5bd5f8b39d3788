package service

import (
	"Tieba/internal/api/dto"
	"Tieba/internal/model"
	"Tieba/internal/pkg/kafka"
	"Tieba/internal/pkg/redis"
	"Tieba/internal/repository"
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// recordingProducer 记录发布的事件，代替 kafka
type recordingProducer struct {
	mu           sync.Mutex
	interactions []*kafka.InteractionEvent
	moderations  []*kafka.ModerationEvent
}

func (p *recordingProducer) PublishInteraction(_ context.Context, event *kafka.InteractionEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.interactions = append(p.interactions, event)
}

func (p *recordingProducer) PublishModeration(_ context.Context, event *kafka.ModerationEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.moderations = append(p.moderations, event)
}

func (p *recordingProducer) Close() error { return nil }

func (p *recordingProducer) interactionTypes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	types := make([]string, 0, len(p.interactions))
	for _, e := range p.interactions {
		types = append(types, e.Type)
	}
	return types
}

type testEnv struct {
	db       *gorm.DB
	producer *recordingProducer

	userRepo   repository.UserRepo
	boardRepo  repository.BoardRepo
	memberRepo repository.BoardMemberRepo

	users     UserService
	follows   UserFollowService
	boards    BoardService
	members   BoardMemberService
	posts     PostService
	actions   PostActionService
	comment   CommentService
	toggles   ToggleService
	announces AnnouncementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	redis.UseClient(client)

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

	producer := &recordingProducer{}
	userRepo := repository.NewUserRepo(db)
	followRepo := repository.NewUserFollowRepo(db)
	boardRepo := repository.NewBoardRepo(db)
	memberRepo := repository.NewBoardMemberRepo(db)
	postRepo := repository.NewPostRepository(db)
	actionRepo := repository.NewPostActionRepo(db)
	commentRepo := repository.NewCommentRepo(db)

	users := NewUserService(userRepo, followRepo)
	follows := NewUserFollowService(followRepo, users, producer)
	members := NewBoardMemberService(boardRepo, memberRepo, users, producer)
	media := NewMediaService()
	actions := NewPostActionService(actionRepo, postRepo, users, producer)
	comments := NewCommentService(commentRepo, postRepo, memberRepo, users, media, producer)

	return &testEnv{
		db:         db,
		producer:   producer,
		userRepo:   userRepo,
		boardRepo:  boardRepo,
		memberRepo: memberRepo,
		users:      users,
		follows:    follows,
		boards:     NewBoardService(boardRepo, repository.NewBoardCategoryRepo(db), memberRepo, producer),
		members:    members,
		posts:      NewPostService(postRepo, boardRepo, memberRepo, actionRepo, users, media, producer),
		actions:    actions,
		comment:    comments,
		toggles:    NewToggleService(actions, comments, follows, members),
		announces:  NewAnnouncementService(repository.NewAnnouncementRepo(db), boardRepo, memberRepo, users, producer),
	}
}

func (e *testEnv) user(t *testing.T, name string) uint64 {
	t.Helper()
	u := &model.User{Username: name, Password: "x", Nickname: name, Status: model.UserStatusActive}
	require.NoError(t, e.userRepo.CreateUser(context.Background(), u))
	return u.ID
}

func (e *testEnv) board(t *testing.T, ownerID uint64, name string) uint64 {
	t.Helper()
	b, err := e.boards.CreateBoard(context.Background(), ownerID, &dto.CreateBoardDTO{Name: name})
	require.NoError(t, err)
	return b.ID
}

func (e *testEnv) post(t *testing.T, authorID, boardID uint64) *dto.PostDTO {
	t.Helper()
	p, err := e.posts.CreatePost(context.Background(), authorID, &dto.CreatePostDTO{
		BoardID: boardID,
		Title:   "hello",
		Content: "world",
	})
	require.NoError(t, err)
	return p
}

func (e *testEnv) moderationActions() []string {
	e.producer.mu.Lock()
	defer e.producer.mu.Unlock()
	actions := make([]string, 0, len(e.producer.moderations))
	for _, m := range e.producer.moderations {
		actions = append(actions, m.Action)
	}
	return actions
}

func (e *testEnv) memberID(t *testing.T, userID, boardID uint64) uint64 {
	t.Helper()
	m, err := e.memberRepo.GetMember(context.Background(), userID, boardID)
	require.NoError(t, err)
	require.NotNil(t, m)
	return m.ID
}
