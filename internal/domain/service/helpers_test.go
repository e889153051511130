package service

import (
	"testing"

	"gorm.io/gorm"

	"github.com/eventlocator/backend/internal/adapters/logger"
)

func gormModel(id uint) gorm.Model {
	return gorm.Model{ID: id}
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	if logger.Log == nil {
		if err := logger.Init(logger.Config{Debug: true}); err != nil {
			t.Fatalf("init logger: %v", err)
		}
	}
	l, err := logger.Named("test")
	if err != nil {
		t.Fatalf("named logger: %v", err)
	}
	return l
}
