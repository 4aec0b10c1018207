package testutil

import (
	"context"
	"dsa_tracker_backend/internal/config"
	"dsa_tracker_backend/internal/model"
	"dsa_tracker_backend/pkg/database"
	"fmt"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const TestSecret = "test-secret-test-secret-test-secret-0123"

// DB opens a migrated in-memory database private to the calling test.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(tb.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormLogger.Default.LogMode(gormLogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		tb.Fatalf("test db handle: %v", err)
	}
	// one connection keeps the in-memory database alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		tb.Fatalf("migrate test db: %v", err)
	}
	return db
}

// Config returns a debug-mode configuration with a fixed secret and no redis.
func Config() *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: "0", Mode: "test"},
		JWT:     config.JWTConfig{Secret: TestSecret, ExpireTime: 72 * time.Hour},
		Session: config.SessionConfig{CookieName: "session_token"},
		Demo: config.DemoConfig{
			Email:    "demo@example.com",
			Name:     "Demo User",
			Password: "demo-password",
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:3000"}},
	}
}

func SeedUser(tb testing.TB, ctx context.Context, db *gorm.DB, email, password string) *model.User {
	tb.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		tb.Fatalf("hash password: %v", err)
	}
	u := &model.User{
		Name:     "User " + email,
		Email:    email,
		Password: string(hashed),
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedProblem(tb testing.TB, ctx context.Context, db *gorm.DB, userID uint, title string, difficulty model.Difficulty) *model.Problem {
	tb.Helper()
	p := &model.Problem{
		UserID:     userID,
		Title:      title,
		Difficulty: difficulty,
		Topics:     "Array",
	}
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed problem: %v", err)
	}
	return p
}
