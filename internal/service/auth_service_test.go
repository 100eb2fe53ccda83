package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/repository"
	"github.com/alexanderramin/planpin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	db       *sql.DB
	settings *repository.SQLiteSettingsRepo
	backend  *testutil.FakeBackend
	ada      domain.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	ada := domain.User{ID: "u-ada", Name: "Ada", Email: "ada@site.co", CompanyID: "co-1"}
	return fixture{
		db:       database,
		settings: repository.NewSQLiteSettingsRepo(database),
		backend:  testutil.NewFakeBackend().AddAccount("ada@site.co", "secret1", ada),
		ada:      ada,
	}
}

func (f fixture) auth() AuthService {
	return NewAuthService(f.backend, f.settings, testutil.NewTestUoW(f.db))
}

func TestLogin_RequiresCompany(t *testing.T) {
	f := newFixture(t)
	_, err := f.auth().Login(context.Background(), form.Login{Email: "ada@site.co", Password: "secret1"})
	assert.ErrorIs(t, err, ErrNoCompany)
	assert.Zero(t, f.backend.CallCount("login"), "no network call without a company")
}

func TestLogin_InvalidFormNeverCallsBackend(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	require.NoError(t, svc.SetCompany(context.Background(), "co-1"))

	_, err := svc.Login(context.Background(), form.Login{Email: "nope", Password: "123"})
	var fe form.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Contains(t, fe, form.FieldEmail)
	assert.Contains(t, fe, form.FieldPassword)
	assert.Zero(t, f.backend.CallCount("login"))
}

func TestLogin_SavesSession(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	require.NoError(t, svc.SetCompany(ctx, "co-1"))

	sess, err := svc.Login(ctx, form.Login{Email: " ada@site.co ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "u-ada", sess.User.ID)

	all, err := f.settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		repository.KeyCompanyID: "co-1",
		repository.KeyAuthToken: "tok-u-ada",
		repository.KeyUserID:    "u-ada",
		repository.KeyUserName:  "Ada",
	}, all)

	cur, err := svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-u-ada", cur.Token)
	assert.Equal(t, domain.User{ID: "u-ada", Name: "Ada", CompanyID: "co-1"}, cur.User)
}

func TestLogin_RejectedByServer(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	require.NoError(t, svc.SetCompany(ctx, "co-1"))

	_, err := svc.Login(ctx, form.Login{Email: "ada@site.co", Password: "wrong-one"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", api.Message(err))

	_, err = svc.CurrentSession(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLogin_RollsBackPartialSessionWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.settings.Set(ctx, repository.KeyCompanyID, "co-1"))

	// Token and user ID are written before the user name fails.
	failUoW := &testutil.FailingUoW{DB: f.db, Key: repository.KeyUserName, Err: fmt.Errorf("disk full")}
	svc := NewAuthService(f.backend, f.settings, failUoW)

	_, err := svc.Login(ctx, form.Login{Email: "ada@site.co", Password: "secret1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Empty(t, f.backend.Token(), "client token is cleared when the session cannot be saved")

	all, err := f.settings.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{repository.KeyCompanyID: "co-1"}, all)
}

func TestLogout_KeepsCompany(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	require.NoError(t, svc.SetCompany(ctx, "co-1"))
	_, err := svc.Login(ctx, form.Login{Email: "ada@site.co", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	assert.Empty(t, f.backend.Token())

	_, err = svc.CurrentSession(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)
	company, err := svc.Company(ctx)
	require.NoError(t, err)
	assert.Equal(t, "co-1", company)
}

func TestClearCompany_SignsOut(t *testing.T) {
	f := newFixture(t)
	svc := f.auth()
	ctx := context.Background()
	require.NoError(t, svc.SetCompany(ctx, "co-1"))
	require.NoError(t, f.settings.Set(ctx, repository.KeyLastProjectID, "proj"))
	_, err := svc.Login(ctx, form.Login{Email: "ada@site.co", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearCompany(ctx))

	_, err = svc.Company(ctx)
	assert.ErrorIs(t, err, ErrNoCompany)
	all, err := f.settings.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCurrentSession_RestoresClientToken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.settings.Set(ctx, repository.KeyAuthToken, "persisted"))

	_, err := f.auth().CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "persisted", f.backend.Token())
}

func TestSetCompany_RejectsEmpty(t *testing.T) {
	f := newFixture(t)
	err := f.auth().SetCompany(context.Background(), "")
	var fe form.FieldErrors
	assert.ErrorAs(t, err, &fe)
}

func TestLogin_EmitsUseCaseEvent(t *testing.T) {
	f := newFixture(t)
	var buf bytes.Buffer
	svc := NewAuthService(f.backend, f.settings, testutil.NewTestUoW(f.db), NewLogUseCaseObserver(&buf))
	ctx := context.Background()
	require.NoError(t, svc.SetCompany(ctx, "co-1"))
	buf.Reset()

	_, err := svc.Login(ctx, form.Login{Email: "ada@site.co", Password: "secret1"})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "use_case=login")
	assert.Contains(t, out, "success=true")
	assert.Contains(t, out, "user_id=u-ada")
	assert.NotContains(t, out, "secret1")
}
