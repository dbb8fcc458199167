package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"github.com/rpupo63/blogly/config"
	"github.com/rpupo63/blogly/models"
)

type Database struct {
	db       *gorm.DB
	userRepo *UserRepo
	postRepo *PostRepo
	tagRepo  *TagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:       db,
		userRepo: NewUserRepo(db),
		postRepo: NewPostRepo(db),
		tagRepo:  NewTagRepo(db),
	}
}

// Open connects to Postgres, registers read replicas and the posts_tags join model.
func Open(settings config.Settings) (*gorm.DB, error) {
	logLevel := logger.Warn
	if settings.SQLEcho {
		logLevel = logger.Info
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  settings.IsDevelopment(),
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  settings.DatabaseURL,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	if len(settings.ReplicaURLs) > 0 {
		replicas := make([]gorm.Dialector, 0, len(settings.ReplicaURLs))
		for _, dsn := range settings.ReplicaURLs {
			replicas = append(replicas, postgres.New(postgres.Config{
				DSN:                  dsn,
				PreferSimpleProtocol: true,
			}))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replicas: %w", err)
		}
	}

	if err := models.SetupJoinTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

// Ping checks that the primary connection is alive.
func (d Database) Ping(ctx context.Context) error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Migrate creates or updates every table the application needs.
func (d Database) Migrate() error {
	return models.Migrate(d.db)
}

// Close releases the underlying connection pool.
func (d Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}
