package database

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/kunwoo0421/GovernmentSupportProject/app/notice"
)

func testDB(t *testing.T) *DB {
	t.Helper()

	db, err := NewConnection(":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func testNotice(url, title string) notice.Notice {
	return notice.Notice{
		ID:          notice.StableID(url),
		Title:       title,
		Agency:      "중소벤처기업부",
		StartDate:   "2024-03-15",
		EndDate:     "2024-04-15",
		Region:      "전국",
		Category:    "지원사업",
		URL:         url,
		Source:      "중소벤처기업부(API)",
		Description: "테스트 공고입니다.",
		FetchedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestNoticeRepository_UpsertAndGetAll(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	notices := []notice.Notice{
		testNotice("https://example.com/1", "첫번째 공고"),
		testNotice("https://example.com/2", "두번째 공고"),
	}

	if err := repo.UpsertNotices(ctx, notices); err != nil {
		t.Fatalf("Failed to upsert notices: %v", err)
	}

	stored, err := repo.GetAllNotices(ctx)
	if err != nil {
		t.Fatalf("Failed to get notices: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("Expected 2 stored notices, got %d", len(stored))
	}

	found := stored[0]
	if found.Title == "" || found.Agency == "" || found.URL == "" {
		t.Errorf("Stored notice missing fields: %+v", found)
	}
	if found.StartDate != "2024-03-15" || found.EndDate != "2024-04-15" {
		t.Errorf("Unexpected dates %s / %s", found.StartDate, found.EndDate)
	}
}

func TestNoticeRepository_UpsertIsIdempotent(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	n := testNotice("https://example.com/dup", "중복 공고")

	for i := 0; i < 3; i++ {
		if err := repo.UpsertNotices(ctx, []notice.Notice{n}); err != nil {
			t.Fatalf("Upsert %d failed: %v", i, err)
		}
	}

	count, err := repo.GetNoticeCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count notices: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 notice after repeated upserts, got %d", count)
	}
}

func TestNoticeRepository_UpsertOverwritesByURL(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	original := testNotice("https://example.com/n", "원래 제목")
	if err := repo.UpsertNotices(ctx, []notice.Notice{original}); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	// Same URL fetched later from a different source wins wholesale.
	updated := testNotice("https://example.com/n", "수정된 제목")
	updated.Source = "기업마당(RSS)"
	updated.EndDate = "2024-05-01"
	if err := repo.UpsertNotices(ctx, []notice.Notice{updated}); err != nil {
		t.Fatalf("Failed to upsert update: %v", err)
	}

	stored, err := repo.GetAllNotices(ctx)
	if err != nil {
		t.Fatalf("Failed to get notices: %v", err)
	}
	if len(stored) != 1 {
		t.Fatalf("Expected 1 notice after overwrite, got %d", len(stored))
	}
	if stored[0].Title != "수정된 제목" {
		t.Errorf("Expected overwritten title, got '%s'", stored[0].Title)
	}
	if stored[0].Source != "기업마당(RSS)" {
		t.Errorf("Expected overwritten source, got '%s'", stored[0].Source)
	}
	if stored[0].EndDate != "2024-05-01" {
		t.Errorf("Expected overwritten end date, got '%s'", stored[0].EndDate)
	}
}

func TestNoticeRepository_UpsertChunking(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	// More than one chunk's worth of distinct URLs.
	var notices []notice.Notice
	for i := 0; i < 250; i++ {
		notices = append(notices, testNotice(
			fmt.Sprintf("https://example.com/bulk/%d", i),
			fmt.Sprintf("대량 공고 %d", i)))
	}

	if err := repo.UpsertNotices(ctx, notices); err != nil {
		t.Fatalf("Failed to upsert in chunks: %v", err)
	}

	count, err := repo.GetNoticeCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count notices: %v", err)
	}
	if count != 250 {
		t.Errorf("Expected 250 notices, got %d", count)
	}
}

func TestNoticeRepository_NullableFieldsRoundTrip(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	n := testNotice("https://example.com/open-ended", "마감 없는 공고")
	n.EndDate = ""
	n.Description = ""

	if err := repo.UpsertNotices(ctx, []notice.Notice{n}); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	stored, err := repo.GetAllNotices(ctx)
	if err != nil {
		t.Fatalf("Failed to get notices: %v", err)
	}
	if stored[0].EndDate != "" {
		t.Errorf("Expected empty end date back, got '%s'", stored[0].EndDate)
	}
	if stored[0].Description != "" {
		t.Errorf("Expected empty description back, got '%s'", stored[0].Description)
	}
}

func TestNoticeRepository_GetAllOrdering(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	older := testNotice("https://example.com/old", "오래된 공고")
	older.StartDate = "2024-01-01"
	newer := testNotice("https://example.com/new", "최신 공고")
	newer.StartDate = "2024-03-01"

	if err := repo.UpsertNotices(ctx, []notice.Notice{older, newer}); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	stored, err := repo.GetAllNotices(ctx)
	if err != nil {
		t.Fatalf("Failed to get notices: %v", err)
	}
	if stored[0].StartDate != "2024-03-01" {
		t.Errorf("Expected most recent start date first, got '%s'", stored[0].StartDate)
	}
}

func TestNoticeRepository_GetSourceStats(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	a := testNotice("https://example.com/a", "공고 A")
	b := testNotice("https://example.com/b", "공고 B")
	c := testNotice("https://example.com/c", "공고 C")
	c.Source = "K-Startup(API)"

	if err := repo.UpsertNotices(ctx, []notice.Notice{a, b, c}); err != nil {
		t.Fatalf("Failed to upsert: %v", err)
	}

	stats, err := repo.GetSourceStats(ctx)
	if err != nil {
		t.Fatalf("Failed to get source stats: %v", err)
	}
	if stats["중소벤처기업부(API)"] != 2 {
		t.Errorf("Expected 2 MSS notices, got %d", stats["중소벤처기업부(API)"])
	}
	if stats["K-Startup(API)"] != 1 {
		t.Errorf("Expected 1 K-Startup notice, got %d", stats["K-Startup(API)"])
	}
}

func TestNoticeRepository_EmptyStore(t *testing.T) {
	repo := NewNoticeRepository(testDB(t))
	ctx := context.Background()

	stored, err := repo.GetAllNotices(ctx)
	if err != nil {
		t.Fatalf("Failed to get notices: %v", err)
	}
	if len(stored) != 0 {
		t.Errorf("Expected an empty store, got %d notices", len(stored))
	}

	count, err := repo.GetNoticeCount(ctx)
	if err != nil {
		t.Fatalf("Failed to count notices: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count 0, got %d", count)
	}
}
