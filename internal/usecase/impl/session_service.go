package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"journal/config"
	"journal/internal/domain/entity"
	domainerrors "journal/internal/domain/errors"
	"journal/internal/domain/repository"
	"journal/internal/domain/service"
	"journal/internal/errors"
	logs "journal/internal/infra/log"
	"journal/internal/usecase"
	"journal/internal/validation"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	// SessionPreferenceKey is the preference under which a remembered session is kept.
	SessionPreferenceKey = "session.user_id"

	defaultPasswordMinLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager         repository.TransactionManager
	userRepo          repository.UserRepository
	hasher            service.PasswordHasher
	preferences       service.PreferenceStore
	clock             service.Clock
	validator         *validation.Validator
	passwordMinLength int
	logger            *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	UserRepo    repository.UserRepository
	Hasher      service.PasswordHasher
	Preferences service.PreferenceStore
	Clock       service.Clock
	Validator   *validation.Validator
	Config      *config.Config
	Logger      *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	srv := &sessionService{
		txManager:         params.TxManager,
		userRepo:          params.UserRepo,
		hasher:            params.Hasher,
		preferences:       params.Preferences,
		clock:             params.Clock,
		validator:         params.Validator,
		passwordMinLength: defaultPasswordMinLength,
		logger:            params.Logger,
	}

	if params.Config != nil && params.Config.Auth != nil && params.Config.Auth.PasswordMinLength > 0 {
		srv.passwordMinLength = params.Config.Auth.PasswordMinLength
	}
	if srv.validator == nil {
		srv.validator = validation.New()
	}

	return srv
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return logs.FromContext(ctx, srv.logger)
}

// Register creates an account with a hashed password.
func (srv *sessionService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := srv.validator.Validate(input); err != nil {
		return nil, err
	}
	if err := srv.checkPassword(input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, srv.fail(ctx, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error()), "hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: hash,
		CreatedAt:    srv.clock.Now().UTC(),
	}
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewUserRepository().Create(ctx, user)
	})
	if err != nil {
		return nil, srv.fail(ctx, err, "register user")
	}

	srv.log(ctx).Info("User registered", slog.Any("user_id", user.ID), slog.String("username", user.Username))

	return user, nil
}

// Login verifies credentials and returns the session handle. Unknown users and
// wrong passwords fail the same way.
func (srv *sessionService) Login(ctx context.Context, input usecase.LoginInput) (*entity.Session, error) {
	input.Username = strings.TrimSpace(input.Username)
	if err := srv.validator.Validate(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		srv.log(ctx).Warn("Login for unknown user", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, srv.fail(ctx, err, "find user for login")
	}
	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login with wrong password", slog.Any("user_id", user.ID))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if input.Remember {
		err = srv.preferences.Set(SessionPreferenceKey, user.ID.String())
	} else {
		err = srv.preferences.Delete(SessionPreferenceKey)
	}
	if err != nil {
		return nil, srv.fail(ctx, errors.Wrap(err, "failed to store session preference"), "store session")
	}

	srv.log(ctx).Info("User logged in", slog.Any("user_id", user.ID), slog.Bool("remember", input.Remember))

	return srv.newSession(user), nil
}

// Logout forgets any remembered session.
func (srv *sessionService) Logout(ctx context.Context, session *entity.Session) error {
	if err := srv.preferences.Delete(SessionPreferenceKey); err != nil {
		return srv.fail(ctx, errors.Wrap(err, "failed to clear session preference"), "clear session")
	}

	if session != nil {
		srv.log(ctx).Info("User logged out", slog.Any("user_id", session.UserID))
	}

	return nil
}

// Restore resumes the remembered session. A remembered user that no longer
// exists is forgotten.
func (srv *sessionService) Restore(ctx context.Context) (*entity.Session, error) {
	value, ok, err := srv.preferences.Get(SessionPreferenceKey)
	if err != nil {
		return nil, srv.fail(ctx, errors.Wrap(err, "failed to read session preference"), "read session")
	}
	if !ok {
		return nil, domainerrors.ErrSessionNotFound
	}

	userID, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		srv.log(ctx).Warn("Discarding malformed remembered session", slog.String("value", value))
		_ = srv.preferences.Delete(SessionPreferenceKey)

		return nil, domainerrors.ErrSessionNotFound
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, domainerrors.ErrUserNotFound) {
		_ = srv.preferences.Delete(SessionPreferenceKey)

		return nil, domainerrors.ErrSessionNotFound
	}
	if err != nil {
		return nil, srv.fail(ctx, err, "restore session")
	}

	return srv.newSession(user), nil
}

// ChangePassword reports false when oldPassword does not match.
func (srv *sessionService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) (bool, error) {
	if err := srv.validator.Var("new password", newPassword, "notblank"); err != nil {
		return false, err
	}
	if err := srv.checkPassword(newPassword); err != nil {
		return false, err
	}

	changed := false
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return err
		}
		if !srv.hasher.Check(oldPassword, user.PasswordHash) {
			return nil
		}

		hash, err := srv.hasher.Hash(newPassword)
		if err != nil {
			return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		if err := userRepo.UpdatePasswordHash(ctx, userID, hash); err != nil {
			return err
		}
		changed = true

		return nil
	})
	if err != nil {
		return false, srv.fail(ctx, err, "change password")
	}

	if changed {
		srv.log(ctx).Info("Password changed", slog.Any("user_id", userID))
	} else {
		srv.log(ctx).Warn("Password change rejected", slog.Any("user_id", userID))
	}

	return changed, nil
}

func (srv *sessionService) checkPassword(password string) error {
	if err := srv.validator.Var("password", password, fmt.Sprintf("min=%d", srv.passwordMinLength)); err != nil {
		return err
	}
	if len(password) > maxPasswordBytes {
		return validation.Failed(fmt.Sprintf("password must not exceed %d bytes", maxPasswordBytes))
	}

	return nil
}

func (srv *sessionService) newSession(user *entity.User) *entity.Session {
	return &entity.Session{
		UserID:   user.ID,
		Username: user.Username,
		IssuedAt: srv.clock.Now().UTC(),
	}
}

func (srv *sessionService) fail(ctx context.Context, err error, op string) error {
	return logStoreFault(ctx, srv.logger, err, op)
}
