package storage

import (
	"testing"

	"github.com/google/uuid"
)

func TestSaveRunGeneratesID(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{GameID: "maze", Seed: 7, Score: 1230, Level: 2, Ticks: 5400, Hash: 0xfeedface12345678})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("SaveRun() id = %q, expected a UUID: %v", id, err)
	}

	r, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r == nil {
		t.Fatal("RunByID() = nil, expected the saved run")
	}
	if r.GameID != "maze" || r.Seed != 7 || r.Score != 1230 || r.Level != 2 || r.Ticks != 5400 {
		t.Errorf("RunByID() = %+v, expected the saved values", r)
	}
	if r.Hash != 0xfeedface12345678 {
		t.Errorf("Hash = %x, expected feedface12345678", r.Hash)
	}
}

func TestSaveRunRejectsBadID(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.SaveRun(Run{RunID: "not-a-uuid", GameID: "maze"}); err == nil {
		t.Error("SaveRun() error = nil, expected an invalid id error")
	}
}

func TestSaveRunDuplicateID(t *testing.T) {
	store := openTestStore(t)
	id := uuid.NewString()
	if _, err := store.SaveRun(Run{RunID: id, GameID: "maze"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{RunID: id, GameID: "maze"}); err == nil {
		t.Error("SaveRun() error = nil, expected a unique constraint error")
	}
}

func TestRunByIDMissing(t *testing.T) {
	store := openTestStore(t)
	r, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if r != nil {
		t.Errorf("RunByID() = %+v, expected nil", r)
	}
}

func TestRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		store.SaveRun(Run{GameID: "shooter", Seed: int64(i), Score: i * 100})
	}
	store.SaveRun(Run{GameID: "slicer", Seed: 99, ReplayPath: "/tmp/run.replay"})

	runs, err := store.RecentRuns("shooter", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("len(RecentRuns()) = %d, expected 3", len(runs))
	}
	for i, expected := range []int64{4, 3, 2} {
		if runs[i].Seed != expected {
			t.Errorf("runs[%d].Seed = %d, expected %d", i, runs[i].Seed, expected)
		}
	}

	all, err := store.RecentRuns("", 0)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("len(RecentRuns(all)) = %d, expected 6", len(all))
	}
	if all[0].GameID != "slicer" || all[0].ReplayPath != "/tmp/run.replay" {
		t.Errorf("newest run = %+v, expected the slicer run with its replay", all[0])
	}
}
