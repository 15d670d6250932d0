package di

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"user-account-service/cmd/api/infrastructure"
	"user-account-service/internal/adapter/db/postgres"
	ginhandler "user-account-service/internal/adapter/gin/handler"
	"user-account-service/internal/config"
	authusecase "user-account-service/internal/usecase/auth"
	userusecase "user-account-service/internal/usecase/user"
	"user-account-service/pkg/token"
)

// Container holds all application dependencies
type Container struct {
	Config        *config.Config
	Logger        *zap.Logger
	DB            *gorm.DB
	Tokens        *token.Manager
	Directory     userusecase.Directory
	Authenticator *authusecase.Authenticator
	UserHandler   *ginhandler.UserHandler
	AuthHandler   *ginhandler.AuthHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(cfg *config.Config, l *zap.Logger) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	repo := postgres.NewUserRepoPG(db, cfg.Store.UsersTable, l)
	if err := repo.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate users table: %w", err)
	}

	tokens := token.NewManager([]byte(cfg.JWT.Secret), cfg.JWT.Issuer, cfg.JWT.Audience)

	directory := userusecase.New(repo, l)
	authenticator := authusecase.New(repo, tokens, l)

	return &Container{
		Config:        cfg,
		Logger:        l,
		DB:            db,
		Tokens:        tokens,
		Directory:     directory,
		Authenticator: authenticator,
		UserHandler:   ginhandler.NewUserHandler(directory, l),
		AuthHandler:   ginhandler.NewAuthHandler(authenticator, l),
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	return nil
}
