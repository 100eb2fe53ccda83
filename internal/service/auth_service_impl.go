package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planpin/internal/api"
	"github.com/alexanderramin/planpin/internal/db"
	"github.com/alexanderramin/planpin/internal/domain"
	"github.com/alexanderramin/planpin/internal/form"
	"github.com/alexanderramin/planpin/internal/repository"
)

var sessionKeys = []string{repository.KeyAuthToken, repository.KeyUserID, repository.KeyUserName}

type authService struct {
	backend  AuthBackend
	settings repository.SettingsRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAuthService(
	backend AuthBackend,
	settings repository.SettingsRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AuthService {
	return &authService{
		backend:  backend,
		settings: settings,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *authService) Login(ctx context.Context, f form.Login) (sess *domain.Session, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "login", startedAt, fields, err) }()

	f = f.Normalize()
	if err = f.Validate().Err(); err != nil {
		return nil, err
	}

	var companyID string
	companyID, err = s.Company(ctx)
	if err != nil {
		return nil, err
	}
	fields["company_id"] = companyID

	sess, err = s.backend.Login(ctx, api.Credentials{
		Email:     f.Email,
		Password:  f.Password,
		CompanyID: companyID,
	})
	if err != nil {
		return nil, err
	}
	fields["user_id"] = sess.User.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSettings := repository.NewSQLiteSettingsRepo(tx)
		if err := txSettings.Set(ctx, repository.KeyAuthToken, sess.Token); err != nil {
			return err
		}
		if err := txSettings.Set(ctx, repository.KeyUserID, sess.User.ID); err != nil {
			return err
		}
		return txSettings.Set(ctx, repository.KeyUserName, sess.User.Name)
	})
	if err != nil {
		s.backend.SetToken("")
		return nil, fmt.Errorf("saving session: %w", err)
	}
	return sess, nil
}

func (s *authService) Logout(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "logout", startedAt, nil, err) }()

	s.backend.SetToken("")
	return s.settings.Delete(ctx, sessionKeys...)
}

func (s *authService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	token, err := s.settings.Get(ctx, repository.KeyAuthToken)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotLoggedIn
	}
	if err != nil {
		return nil, err
	}
	sess := &domain.Session{Token: token}
	sess.User.ID, _ = s.settings.Get(ctx, repository.KeyUserID)
	sess.User.Name, _ = s.settings.Get(ctx, repository.KeyUserName)
	sess.User.CompanyID, _ = s.settings.Get(ctx, repository.KeyCompanyID)

	s.backend.SetToken(token)
	return sess, nil
}

func (s *authService) Company(ctx context.Context) (string, error) {
	id, err := s.settings.Get(ctx, repository.KeyCompanyID)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrNoCompany
	}
	return id, err
}

func (s *authService) SetCompany(ctx context.Context, companyID string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"company_id": companyID}
	defer func() { observe(ctx, s.observer, "set-company", startedAt, fields, err) }()

	if companyID == "" {
		return form.FieldErrors{"company": "company ID is required"}
	}
	return s.settings.Set(ctx, repository.KeyCompanyID, companyID)
}

func (s *authService) ClearCompany(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "clear-company", startedAt, nil, err) }()

	s.backend.SetToken("")
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		keys := append([]string{repository.KeyCompanyID, repository.KeyLastProjectID}, sessionKeys...)
		return repository.NewSQLiteSettingsRepo(tx).Delete(ctx, keys...)
	})
}
