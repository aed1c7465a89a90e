package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/task-tracker/internal/domain"
	"github.com/phrazzld/task-tracker/internal/patch"
	"github.com/phrazzld/task-tracker/internal/platform/logger"
	"github.com/phrazzld/task-tracker/internal/store"
)

// UserService provides user-related operations. Views never carry password digests.
type UserService interface {
	// List returns all users ordered by ID.
	List(ctx context.Context) ([]UserView, error)

	// Get retrieves a user by their ID
	Get(ctx context.Context, id int64) (UserView, error)

	// Create registers a new user, hashing the password before it is stored
	Create(ctx context.Context, in UserCreate) (UserView, error)

	// Update applies a partial update. A present password is re-hashed.
	Update(ctx context.Context, id int64, in UserUpdate) (UserView, error)

	// Delete removes a user. Users still assigned to tasks cannot be deleted.
	Delete(ctx context.Context, id int64) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	db     *sql.DB
	users  store.UserStore
	hasher PasswordHasher
	logger *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(
	db *sql.DB,
	users store.UserStore,
	hasher PasswordHasher,
	logger *slog.Logger,
) (UserService, error) {
	if db == nil {
		return nil, domain.NewValidationError("db", "cannot be nil", nil)
	}
	if users == nil {
		return nil, domain.NewValidationError("users", "cannot be nil", nil)
	}
	if hasher == nil {
		return nil, domain.NewValidationError("hasher", "cannot be nil", nil)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &UserServiceImpl{
		db:     db,
		users:  users,
		hasher: hasher,
		logger: logger.With(slog.String("component", "user_service")),
	}, nil
}

func newUserView(u *domain.User) UserView {
	return UserView{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		CreatedAt: u.CreatedAt,
	}
}

// hashPassword validates a plaintext password and returns its digest.
func (s *UserServiceImpl) hashPassword(_ context.Context, password string) (string, error) {
	if err := domain.ValidatePassword(password); err != nil {
		return "", err
	}
	return s.hasher.Hash(password)
}

// List implements the UserService interface
func (s *UserServiceImpl) List(ctx context.Context) ([]UserView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fail(log, "list_users", "failed to list users", err)
	}

	views := make([]UserView, 0, len(users))
	for _, u := range users {
		views = append(views, newUserView(u))
	}
	return views, nil
}

// Get implements the UserService interface
func (s *UserServiceImpl) Get(ctx context.Context, id int64) (UserView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return UserView{}, fail(log, "get_user", "failed to retrieve user", err,
			slog.Int64("user_id", id))
	}
	return newUserView(user), nil
}

// Create implements the UserService interface
func (s *UserServiceImpl) Create(ctx context.Context, in UserCreate) (UserView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := s.newUser(ctx, in)
	if err != nil {
		return UserView{}, fail(log, "create_user", "invalid user", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Create(ctx, user)
	})
	if err != nil {
		return UserView{}, fail(log, "create_user", "failed to create user", err)
	}

	log.Info("user created", slog.Int64("user_id", user.ID))
	return newUserView(user), nil
}

func (s *UserServiceImpl) newUser(ctx context.Context, in UserCreate) (*domain.User, error) {
	if err := validatePayload(in); err != nil {
		return nil, err
	}
	digest, err := s.hashPassword(ctx, in.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Email:          in.Email,
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		PasswordDigest: digest,
	}
	if err := user.Validate(); err != nil {
		return nil, err
	}
	return user, nil
}

// Update implements the UserService interface
func (s *UserServiceImpl) Update(ctx context.Context, id int64, in UserUpdate) (UserView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	user, err := store.InTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) (*domain.User, error) {
		txUsers := s.users.WithTx(tx)

		user, err := txUsers.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		p := patch.NewPlan()
		patch.SetRequired(p, "email", in.Email, &user.Email, domain.ValidateEmail)
		patch.SetNullable(p, "firstName", in.FirstName, &user.FirstName)
		patch.SetNullable(p, "lastName", in.LastName, &user.LastName)
		patch.SetResolved(ctx, p, "password", in.Password, s.hashPassword, &user.PasswordDigest)
		if err := p.Apply(); err != nil {
			return nil, err
		}

		if err := txUsers.Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return UserView{}, fail(log, "update_user", "failed to update user", err,
			slog.Int64("user_id", id))
	}

	log.Info("user updated", slog.Int64("user_id", id))
	return newUserView(user), nil
}

// Delete implements the UserService interface
func (s *UserServiceImpl) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.users.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		return fail(log, "delete_user", "failed to delete user", err,
			slog.Int64("user_id", id))
	}

	log.Info("user deleted", slog.Int64("user_id", id))
	return nil
}
