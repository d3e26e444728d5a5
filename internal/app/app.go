package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	evbus "github.com/vardius/message-bus"

	"github.com/argus-sec/argus-portal/internal/config"
	"github.com/argus-sec/argus-portal/internal/domain"
)

// region dependencies

type userRepo interface {
	GetAllUsers(ctx context.Context) ([]domain.User, error)
	SaveUser(ctx context.Context, id domain.UserIdentifier, updateFunc func(u *domain.User) (*domain.User, error)) error
}

type BackgroundJobRunner interface {
	StartBackgroundJobs(ctx context.Context)
}

// endregion dependencies

type App struct {
	Config *config.Config
	bus    evbus.MessageBus

	users userRepo

	jobRunners []BackgroundJobRunner
}

// New creates the application backend and runs the one-time startup actions,
// like seeding the default user accounts into an empty database.
func New(cfg *config.Config, bus evbus.MessageBus, users userRepo, jobRunners ...BackgroundJobRunner) (*App, error) {
	a := &App{
		Config: cfg,
		bus:    bus,

		users: users,

		jobRunners: jobRunners,
	}

	startupContext, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Switch to system user context
	startupContext = domain.SetUserInfo(startupContext, domain.SystemUserInfo())

	if err := a.createDefaultUsers(startupContext); err != nil {
		return nil, fmt.Errorf("failed to create default users: %w", err)
	}

	return a, nil
}

// Startup starts all background jobs of the registered components. The jobs
// stop once the given context is cancelled.
func (a *App) Startup(ctx context.Context) error {
	for _, runner := range a.jobRunners {
		runner.StartBackgroundJobs(ctx)
	}

	return nil
}

// createDefaultUsers writes the initial admin and auditor accounts. The user
// table is owned by an external account-management process, so the accounts
// are only created while the table is still completely empty.
func (a *App) createDefaultUsers(ctx context.Context) error {
	existingUsers, err := a.users.GetAllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to check for existing users: %w", err)
	}
	if len(existingUsers) > 0 {
		slog.Debug("skipping default user creation, user table is not empty")
		return nil
	}

	defaultUsers := []domain.User{
		{
			Username:  "admin",
			Firstname: "Admin",
			Lastname:  "User",
			Email:     "admin@argus.local",
			Role:      domain.UserRoleAdmin,
		},
		{
			Username:  "auditor",
			Firstname: "Security",
			Lastname:  "Auditor",
			Email:     "auditor@argus.local",
			Role:      domain.UserRoleAuditor,
		},
	}

	for i := range defaultUsers {
		newUser := defaultUsers[i]
		err := a.users.SaveUser(ctx, 0, func(u *domain.User) (*domain.User, error) {
			u.Username = newUser.Username
			u.Firstname = newUser.Firstname
			u.Lastname = newUser.Lastname
			u.Email = newUser.Email
			u.Role = newUser.Role
			return u, nil
		})
		if err != nil {
			return fmt.Errorf("failed to create default user %s: %w", newUser.Username, err)
		}

		slog.Info("default user created", "username", newUser.Username, "role", newUser.Role)
	}

	return nil
}
