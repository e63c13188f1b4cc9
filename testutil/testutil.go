// Package testutil opens the persistence stack against in-memory stand-ins:
// sqlite instead of postgres, miniredis instead of redis. No containers, no
// network, each test gets its own isolated database.
package testutil

import (
	"fmt"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"chat-app-core/config"
	"chat-app-core/entity"
	"chat-app-core/util"
)

// OpenTestDB opens a fresh in-memory sqlite database with the same naming
// strategy and error translation as the production postgres connection, and
// runs the full schema migration against it. The random database name keeps
// parallel tests from sharing state through sqlite's shared cache.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   "t_",
			SingularTable: true,
		},
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// OpenTestRedis starts a miniredis server and returns a client pointed at it.
func OpenTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	server, err := miniredis.Run()
	if err != nil {
		t.Fatalf("start miniredis: %v", err)
	}
	t.Cleanup(server.Close)

	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client
}

// QuietLogger returns a logrus logger that discards all output.
func QuietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// CreateTestUser inserts a user with a real bcrypt hash and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()

	hash, err := util.HashPassword("secret123")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	user := &entity.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		DisplayName:  username,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create test user %s: %v", username, err)
	}
	return user
}
