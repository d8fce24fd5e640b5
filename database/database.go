package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/rpupo63/tutorial-blog-backend/config"
	"github.com/rpupo63/tutorial-blog-backend/errs"
	"github.com/rpupo63/tutorial-blog-backend/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

type Database struct {
	db           *gorm.DB
	postRepo     *PostRepo
	categoryRepo *CategoryRepo
	tagRepo      *TagRepo
	userRepo     *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:           db,
		postRepo:     NewPostRepo(db),
		categoryRepo: NewCategoryRepo(db),
		tagRepo:      NewTagRepo(db),
		userRepo:     NewUserRepo(db),
	}
}

// Open connects to Postgres. When a read DSN is configured, reads are sent
// to that replica and writes (and transactions) stay on the primary.
func Open(cfg config.Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		return nil, errs.NewEnvironmentVariableError("DATABASE_DSN")
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             2 * time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
		Logger:      newLogger,
	})
	if err != nil {
		return nil, err
	}

	if cfg.ReadDatabaseDSN != "" {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReadDatabaseDSN)},
			Policy:   dbresolver.RandomPolicy{},
		})
		if err := db.Use(resolver); err != nil {
			return nil, errs.NewConfigError("DATABASE_READ_DSN", err)
		}
	}

	var result int
	if err := db.Raw("SELECT 1").Scan(&result).Error; err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates the blog tables.
func (d Database) Migrate(ctx context.Context) error {
	return d.db.WithContext(ctx).AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Tag{},
		&models.Post{},
	)
}

// Accessor methods for each repository

func (d Database) PostRepo() *PostRepo {
	return d.postRepo
}

func (d Database) CategoryRepo() *CategoryRepo {
	return d.categoryRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
