// Package database opens the configured Record Store and wires the
// repositories on top of it.
package database

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"bjjtracker/internal/config"
	"bjjtracker/internal/models"
	"bjjtracker/internal/repositories"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Store bundles the repositories of one backend.
type Store struct {
	Users        repositories.UserRepository
	Trainings    repositories.OwnedRepository[models.Training]
	Techniques   repositories.OwnedRepository[models.Technique]
	Competitions repositories.OwnedRepository[models.Competition]

	ping  func(ctx context.Context) error
	close func() error
}

// Ping checks that the backend is reachable.
func (s *Store) Ping(ctx context.Context) error { return s.ping(ctx) }

// Close releases the backend connection.
func (s *Store) Close() error { return s.close() }

// Open connects to the backend selected by cfg.DBDriver and prepares its
// schema or indexes.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if cfg.DBDriver == "mongo" {
		return openMongo(ctx, cfg.MongoURI)
	}
	db, err := OpenGORM(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return NewGORMStore(db), nil
}

// OpenGORM opens a sqlite or postgres connection.
func OpenGORM(driver, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Printf("Database connection successfully opened (%s).", driver)
	return db, nil
}

// Migrate creates or updates the tables and indexes of every model.
func Migrate(db *gorm.DB) error {
	log.Println("Running database migrations...")
	if err := db.AutoMigrate(&models.User{}, &models.Training{}, &models.Technique{}, &models.Competition{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database migrated successfully.")
	return nil
}

// NewGORMStore wires the GORM repositories over db.
func NewGORMStore(db *gorm.DB) *Store {
	return &Store{
		Users:        repositories.NewGORMUserRepository(db),
		Trainings:    repositories.NewGORMRepository[models.Training](db, "Training"),
		Techniques:   repositories.NewGORMRepository[models.Technique](db, "Technique"),
		Competitions: repositories.NewGORMRepository[models.Competition](db, "Competition"),
		ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}

func openMongo(ctx context.Context, uri string) (*Store, error) {
	client, err := ConnectMongoDB(ctx, uri)
	if err != nil {
		return nil, err
	}
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)
	mdb := client.Database(dbName)

	if err := EnsureIndexes(ctx, mdb); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	return &Store{
		Users:        repositories.NewMongoUserRepository(mdb.Collection("users")),
		Trainings:    repositories.NewMongoRepository[models.Training](mdb.Collection("trainings"), "Training"),
		Techniques:   repositories.NewMongoRepository[models.Technique](mdb.Collection("techniques"), "Technique"),
		Competitions: repositories.NewMongoRepository[models.Competition](mdb.Collection("competitions"), "Competition"),
		ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		close: func() error {
			return client.Disconnect(context.Background())
		},
	}, nil
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI.
func ConnectMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}
	return client, nil
}

// EnsureIndexes creates the per-owner indexes and the unique email index.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		"trainings": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		},
		"techniques": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "category", Value: 1}}},
		},
		"competitions": {
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "date", Value: -1}}},
		},
	}
	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", coll, err)
		}
	}
	return nil
}

// extractDBName parses the database name from the URI, defaulting to "bjjtracker".
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "bjjtracker"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:]
	}
	return "bjjtracker"
}
