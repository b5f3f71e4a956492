package main

import (
	"context"
	"encoding/json"

	"parcacote/internal/cache"
	"parcacote/internal/domain/comments"
	"parcacote/internal/domain/playgrounds"
	"parcacote/internal/domain/storage"
	"parcacote/internal/domain/users"
	"parcacote/internal/ratelimiter"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// mockPlaygroundStore implements playgrounds.Store with overridable
// function fields.
type mockPlaygroundStore struct {
	listApprovedFn func(ctx context.Context) ([]playgrounds.Raw, error)
	getByIDFn      func(ctx context.Context, id int64) (*playgrounds.Raw, error)
	updateStatusFn func(ctx context.Context, id int64, status playgrounds.Status, reason *string) error
	isSubmitterFn  func(ctx context.Context, id, userID int64) (bool, error)
	updateFn       func(ctx context.Context, id int64, in *playgrounds.UpdateInput) error
	deleteFn       func(ctx context.Context, id int64) error
}

func (m *mockPlaygroundStore) ListApproved(ctx context.Context) ([]playgrounds.Raw, error) {
	if m.listApprovedFn != nil {
		return m.listApprovedFn(ctx)
	}
	return nil, nil
}

func (m *mockPlaygroundStore) ListBySubmitter(ctx context.Context, userID int64) ([]playgrounds.Raw, error) {
	return nil, nil
}

func (m *mockPlaygroundStore) GetByID(ctx context.Context, id int64) (*playgrounds.Raw, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, playgrounds.ErrNotFound
}

func (m *mockPlaygroundStore) List(ctx context.Context, filter playgrounds.ListFilter) ([]playgrounds.Raw, int, error) {
	return nil, 0, nil
}

func (m *mockPlaygroundStore) Create(ctx context.Context, tx pgx.Tx, in *playgrounds.CreateInput) (*playgrounds.Raw, error) {
	return nil, nil
}

func (m *mockPlaygroundStore) AddImages(ctx context.Context, tx pgx.Tx, playgroundID int64, urls []string) error {
	return nil
}

func (m *mockPlaygroundStore) ReplaceEquipments(ctx context.Context, tx pgx.Tx, playgroundID int64, equipmentIDs []string) error {
	return nil
}

func (m *mockPlaygroundStore) Update(ctx context.Context, id int64, in *playgrounds.UpdateInput) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, id, in)
	}
	return nil
}

func (m *mockPlaygroundStore) UpdateStatus(ctx context.Context, id int64, status playgrounds.Status, reason *string) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, id, status, reason)
	}
	return nil
}

func (m *mockPlaygroundStore) Delete(ctx context.Context, id int64) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockPlaygroundStore) IsSubmitter(ctx context.Context, id, userID int64) (bool, error) {
	if m.isSubmitterFn != nil {
		return m.isSubmitterFn(ctx, id, userID)
	}
	return false, nil
}

type mockUserStore struct {
	getByIDFn    func(ctx context.Context, id int64) (*users.User, error)
	getByEmailFn func(ctx context.Context, email string) (*users.User, error)
	listAdminsFn func(ctx context.Context) ([]users.User, error)
}

func (m *mockUserStore) Create(ctx context.Context, user *users.User) error { return nil }

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*users.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, users.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*users.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, users.ErrNotFound
}

func (m *mockUserStore) SaveRefreshToken(ctx context.Context, userID int64, refreshToken string) error {
	return nil
}

func (m *mockUserStore) GetRefreshToken(ctx context.Context, userID int64) (string, error) {
	return "", nil
}

func (m *mockUserStore) DeleteRefreshToken(ctx context.Context, userID int64) error { return nil }

func (m *mockUserStore) ListAdmins(ctx context.Context) ([]users.User, error) {
	if m.listAdminsFn != nil {
		return m.listAdminsFn(ctx)
	}
	return nil, nil
}

type mockCommentStore struct {
	createFn func(ctx context.Context, c *comments.Comment) error
	listFn   func(ctx context.Context, playgroundID int64) ([]comments.Comment, error)
}

func (m *mockCommentStore) Create(ctx context.Context, c *comments.Comment) error {
	if m.createFn != nil {
		return m.createFn(ctx, c)
	}
	return nil
}

func (m *mockCommentStore) ListByPlayground(ctx context.Context, playgroundID int64) ([]comments.Comment, error) {
	if m.listFn != nil {
		return m.listFn(ctx, playgroundID)
	}
	return nil, nil
}

func (m *mockCommentStore) Stats(ctx context.Context, playgroundID int64) (int, float64, error) {
	return 0, 0, nil
}

type mockMailer struct {
	sent []string
}

func (m *mockMailer) Send(templateFile, username, email string, data any) (int, error) {
	m.sent = append(m.sent, templateFile)
	return 200, nil
}

func newTestApp(pgStore *mockPlaygroundStore) *application {
	store := &storage.Container{
		Users:       &mockUserStore{},
		Playgrounds: pgStore,
		Comments:    &mockCommentStore{},
	}

	playgroundCache := cache.New(
		func(ctx context.Context) ([]playgrounds.Playground, error) {
			raws, err := pgStore.ListApproved(ctx)
			if err != nil {
				return nil, err
			}
			return playgrounds.NormalizeAll(raws), nil
		},
		func(ctx context.Context, id int64) (*playgrounds.Playground, error) {
			raw, err := pgStore.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			p := playgrounds.Normalize(*raw)
			return &p, nil
		},
		playgrounds.SamplePlaygrounds,
		cache.WithTTL(time.Minute),
	)

	return &application{
		config: config{
			env:         "test",
			frontendURL: "http://localhost:5173",
			rateLimiter: ratelimiter.Config{Enabled: false},
		},
		store:  store,
		cache:  playgroundCache,
		logger: zap.NewNop().Sugar(),
		mailer: &mockMailer{},
	}
}

func approvedRaw(id int64, name string, lat, lng float64) playgrounds.Raw {
	return playgrounds.Raw{
		ID:        id,
		Name:      name,
		Latitude:  lat,
		Longitude: lng,
		Status:    string(playgrounds.StatusApproved),
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func decodeData(t interface{ Fatalf(string, ...any) }, body []byte, out any) {
	envelope := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		t.Fatalf("unmarshal data: %v", err)
	}
}
