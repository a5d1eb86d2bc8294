package content

import (
	"context"
	"fmt"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/alexdev/portfolio-api/internal/models"
	"github.com/alexdev/portfolio-api/internal/notify"
)

var dbSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:content_test_%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.SiteContent{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func newTestStore(t *testing.T) (*Store, *gorm.DB, *notify.MemoryBroker) {
	t.Helper()
	gdb := newTestDB(t)
	broker := notify.NewMemoryBroker()
	store := NewStore(gdb, broker)
	t.Cleanup(store.Close)
	return store, gdb, broker
}

func TestLoadSeedsEmptyStore(t *testing.T) {
	store, gdb, _ := newTestStore(t)
	ctx := context.Background()

	first := store.Load(ctx)
	if first.Profile.Name != "Alex Dev" {
		t.Fatalf("seed profile name = %q, want %q", first.Profile.Name, "Alex Dev")
	}
	if len(first.Skills) != 6 || len(first.Projects) != 3 {
		t.Fatalf("seed has %d skills and %d projects", len(first.Skills), len(first.Projects))
	}

	// the self-healing write must have created the row
	var count int64
	if err := gdb.Model(&models.SiteContent{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 content row after first load, got %d", count)
	}

	second := store.Load(ctx)
	if !reflect.DeepEqual(first, second) {
		t.Error("repeated load diverged from seeded value")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	store, gdb, _ := newTestStore(t)
	ctx := context.Background()

	data := store.Load(ctx)
	data.Profile.Name = "Jordan Lee"
	data.Skills = append(data.Skills, Skill{ID: "7", Name: "Go", Category: "Backend", Level: 70})
	data.Settings = &Settings{SenderEmail: "jordan@example.com", EmailServiceName: "demo"}

	if err := store.Save(ctx, data); err != nil {
		t.Fatalf("save: %v", err)
	}

	// a second independent client sees the full saved document
	other := NewStore(gdb, notify.NewMemoryBroker())
	defer other.Close()

	got := other.Load(ctx)
	if got.Profile.Name != "Jordan Lee" {
		t.Errorf("profile name = %q, want %q", got.Profile.Name, "Jordan Lee")
	}
	if !reflect.DeepEqual(got, data) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, data)
	}
}

func TestSavePublishesChangeEvent(t *testing.T) {
	store, _, broker := newTestStore(t)
	ctx := context.Background()

	events, cancel := broker.Subscribe()
	defer cancel()

	data := store.Load(ctx)

	// idempotent save: same document twice, one event each
	for i := 0; i < 2; i++ {
		if err := store.Save(ctx, data); err != nil {
			t.Fatalf("save %d: %v", i+1, err)
		}
		select {
		case ev := <-events:
			if ev.Type != notify.EventContentChanged {
				t.Errorf("event type = %q, want %q", ev.Type, notify.EventContentChanged)
			}
		case <-time.After(time.Second):
			t.Fatalf("no event after save %d", i+1)
		}
	}
}

func TestSaveRejectsInvalidDocument(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	data := store.Load(ctx)
	data.Profile.Email = "not-an-email"
	if err := store.Save(ctx, data); err == nil {
		t.Fatal("expected validation error")
	}

	data = store.Load(ctx)
	data.Skills[0].Level = 150
	if err := store.Save(ctx, data); err == nil {
		t.Fatal("expected validation error for out-of-range skill level")
	}

	if got := store.Load(ctx); got.Profile.Email != "hello@alexdev.com" {
		t.Errorf("failed save must not change the stored document, got email %q", got.Profile.Email)
	}
}

func TestLoadServesSeedOnUnreadableRow(t *testing.T) {
	store, gdb, _ := newTestStore(t)
	ctx := context.Background()

	row := models.SiteContent{ID: models.SiteContentID, Profile: []byte("{broken"), Skills: []byte("[]"), Projects: []byte("[]")}
	if err := gdb.Create(&row).Error; err != nil {
		t.Fatalf("write broken row: %v", err)
	}

	got := store.Load(ctx)
	if got.Profile.Name != "Alex Dev" {
		t.Errorf("expected seed fallback, got profile name %q", got.Profile.Name)
	}
}

func TestLoadReturnsClones(t *testing.T) {
	store, _, _ := newTestStore(t)
	ctx := context.Background()

	a := store.Load(ctx)
	a.Skills[0].Name = "mutated"
	a.Projects[0].Technologies[0] = "mutated"

	b := store.Load(ctx)
	if b.Skills[0].Name == "mutated" || b.Projects[0].Technologies[0] == "mutated" {
		t.Error("loaded documents share backing arrays")
	}
}
