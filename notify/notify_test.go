package notify

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"foodshare-api/models"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Notification{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestBroadcastInsertsOneRowPerUser(t *testing.T) {
	db := setupDB(t)
	n := NewStoreNotifier(db)

	if err := n.Broadcast([]uint{1, 2, 3}, "New offer", "Bistro: soup is up"); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	var count int64
	db.Model(&models.Notification{}).Count(&count)
	if count != 3 {
		t.Fatalf("expected 3 rows got %d", count)
	}

	var row models.Notification
	db.Where("user_id = ?", 2).First(&row)
	if row.Title != "New offer" || row.Message != "Bistro: soup is up" {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.IsRead {
		t.Fatal("new notifications must start unread")
	}
}

func TestBroadcastNoRecipients(t *testing.T) {
	db := setupDB(t)
	n := NewStoreNotifier(db)

	if err := n.Broadcast(nil, "t", "m"); err != nil {
		t.Fatalf("broadcast with no recipients should be a no-op, got %v", err)
	}
}
