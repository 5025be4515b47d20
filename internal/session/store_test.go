package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/clinic_bot/internal/model"
)

type fakeRepo struct {
	mu      sync.Mutex
	rows    map[int64]Record
	saveErr error
	saves   int
	deletes int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{rows: make(map[int64]Record)}
}

func (r *fakeRepo) Save(_ context.Context, rec Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.saveErr != nil {
		return r.saveErr
	}
	r.saves++
	r.rows[rec.TelegramID] = rec
	return nil
}

func (r *fakeRepo) Delete(_ context.Context, telegramID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	delete(r.rows, telegramID)
	return nil
}

func (r *fakeRepo) LoadAll(_ context.Context) ([]Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Record, 0, len(r.rows))
	for _, rec := range r.rows {
		out = append(out, rec)
	}
	return out, nil
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "patient@example.com",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return s
}

func patient() model.User {
	return model.User{ID: 5, Email: "patient@example.com", FullName: "Vũ Lan", Roles: []string{model.RolePatient}}
}

func TestLoginPersistsAndNotifies(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, zap.NewNop())

	var notified []*Session
	store.Subscribe(func(_ int64, s *Session) { notified = append(notified, s) })

	sess, err := store.Login(context.Background(), 100, "token-1", patient())
	require.NoError(t, err)

	assert.Equal(t, sess, store.Get(100))
	assert.True(t, sess.HasRole(model.RolePatient))
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, "token-1", repo.rows[100].AccessToken)
	assert.JSONEq(t, `{"id":5,"email":"patient@example.com","fullName":"Vũ Lan","isActive":false,"roles":["ROLE_PATIENT"]}`, string(repo.rows[100].UserProfile))
	require.Len(t, notified, 1)
	assert.Same(t, sess, notified[0])
}

func TestLoginReplacesWholeValue(t *testing.T) {
	store := NewStore(newFakeRepo(), zap.NewNop())
	ctx := context.Background()

	first, err := store.Login(ctx, 100, "token-1", patient())
	require.NoError(t, err)

	updated := patient()
	updated.PhoneNumber = "0901234567"
	second, err := store.Login(ctx, 100, "token-1", updated)
	require.NoError(t, err)

	assert.NotSame(t, first, second)
	assert.Empty(t, first.User.PhoneNumber)
	assert.Equal(t, "0901234567", store.Get(100).User.PhoneNumber)
}

func TestLoginFailureKeepsPreviousSession(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, zap.NewNop())
	ctx := context.Background()

	before, err := store.Login(ctx, 100, "token-1", patient())
	require.NoError(t, err)

	repo.saveErr = errors.New("db down")
	_, err = store.Login(ctx, 100, "token-2", patient())
	require.Error(t, err)

	assert.Same(t, before, store.Get(100))
}

func TestLoginRejectsEmptyToken(t *testing.T) {
	store := NewStore(newFakeRepo(), zap.NewNop())
	_, err := store.Login(context.Background(), 1, "", patient())
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestLogoutRemovesTokenAndProfile(t *testing.T) {
	repo := newFakeRepo()
	store := NewStore(repo, zap.NewNop())
	ctx := context.Background()

	_, err := store.Login(ctx, 100, "token-1", patient())
	require.NoError(t, err)

	var got []*Session
	store.Subscribe(func(_ int64, s *Session) { got = append(got, s) })

	require.NoError(t, store.Logout(ctx, 100))
	assert.Nil(t, store.Get(100))
	assert.Empty(t, repo.rows)
	require.Len(t, got, 1)
	assert.Nil(t, got[0])
}

func TestHydrateRestoresSessions(t *testing.T) {
	repo := newFakeRepo()
	ctx := context.Background()

	writer := NewStore(repo, zap.NewNop())
	_, err := writer.Login(ctx, 100, "token-1", patient())
	require.NoError(t, err)
	repo.rows[200] = Record{TelegramID: 200, AccessToken: "token-2", UserProfile: []byte("{broken")}

	reader := NewStore(repo, zap.NewNop())
	require.NoError(t, reader.Hydrate(ctx))

	sess := reader.Get(100)
	require.NotNil(t, sess)
	assert.Equal(t, "token-1", sess.AccessToken)
	assert.Equal(t, "Vũ Lan", sess.User.FullName)
	assert.Nil(t, reader.Get(200))
	assert.Equal(t, 1, reader.Count())
}

func TestExpiredUsesTokenExpiry(t *testing.T) {
	store := NewStore(newFakeRepo(), zap.NewNop())
	ctx := context.Background()
	now := time.Now()

	_, err := store.Login(ctx, 1, signedToken(t, now.Add(-time.Minute)), patient())
	require.NoError(t, err)
	_, err = store.Login(ctx, 2, signedToken(t, now.Add(time.Hour)), patient())
	require.NoError(t, err)
	_, err = store.Login(ctx, 3, "opaque-token", patient())
	require.NoError(t, err)

	assert.Equal(t, []int64{1}, store.Expired(now))
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := TokenExpiry(signedToken(t, exp))
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = TokenExpiry("not-a-jwt")
	assert.False(t, ok)
}

// pausingRepo останавливает Save после записи строки до сигнала release
type pausingRepo struct {
	*fakeRepo
	saved   chan struct{}
	release chan struct{}
}

func (r *pausingRepo) Save(ctx context.Context, rec Record) error {
	if err := r.fakeRepo.Save(ctx, rec); err != nil {
		return err
	}
	close(r.saved)
	<-r.release
	return nil
}

func TestLogoutDuringLoginKeepsMemoryAndRepoInStep(t *testing.T) {
	repo := &pausingRepo{fakeRepo: newFakeRepo(), saved: make(chan struct{}), release: make(chan struct{})}
	store := NewStore(repo, zap.NewNop())
	ctx := context.Background()

	token := signedToken(t, time.Now().Add(time.Hour))
	loginDone := make(chan error, 1)
	go func() {
		_, err := store.Login(ctx, 7, token, patient())
		loginDone <- err
	}()
	<-repo.saved

	logoutDone := make(chan error, 1)
	go func() { logoutDone <- store.Logout(ctx, 7) }()

	select {
	case <-logoutDone:
		t.Fatal("logout finished while login was still writing")
	case <-time.After(50 * time.Millisecond):
	}

	close(repo.release)
	require.NoError(t, <-loginDone)
	require.NoError(t, <-logoutDone)

	assert.Nil(t, store.Get(7))
	rows, err := repo.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
