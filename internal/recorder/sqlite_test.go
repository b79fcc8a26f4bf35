package recorder

import (
	"path/filepath"
	"testing"
	"time"
)

func TestSQLiteRecorder_RecordRefresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	defer rec.Close()

	evt := &RefreshEvent{
		Tick:          1,
		Symbol:        "AAPL",
		Rows:          390,
		LatestPrice:   99.75,
		LatestBarTime: time.Date(2025, 6, 2, 9, 32, 0, 0, time.UTC),
		Status:        "Last updated: 2025-06-02 09:32:00 | Latest Price: $99.75",
	}
	if err := rec.RecordRefresh(evt); err != nil {
		t.Fatalf("record: %v", err)
	}
	if err := rec.RecordRefresh(&RefreshEvent{Tick: 2, Symbol: "AAPL", Empty: true, Status: "no data"}); err != nil {
		t.Fatalf("record empty: %v", err)
	}

	var count int
	if err := rec.db.QueryRow(`SELECT COUNT(*) FROM refresh_history`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Errorf("expected 2 rows, got %d", count)
	}

	var price float64
	var empty int
	if err := rec.db.QueryRow(`SELECT latest_price, empty FROM refresh_history WHERE tick = 1`).Scan(&price, &empty); err != nil {
		t.Fatalf("query: %v", err)
	}
	if price != 99.75 || empty != 0 {
		t.Errorf("row 1: price=%.2f empty=%d", price, empty)
	}
}

func TestSQLiteRecorder_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	rec, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := rec.RecordRefresh(&RefreshEvent{Tick: 1, Symbol: "AAPL"}); err != nil {
		t.Fatalf("record: %v", err)
	}
	rec.Close()

	// Migrations must be idempotent across restarts.
	rec2, err := NewSQLiteRecorder(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer rec2.Close()

	var count int
	if err := rec2.db.QueryRow(`SELECT COUNT(*) FROM refresh_history`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("expected previous row to survive reopen, got %d", count)
	}
}
