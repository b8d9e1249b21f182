package session

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dpshade/srs-wizard/internal/editor"
	"github.com/dpshade/srs-wizard/internal/errors"
	"github.com/dpshade/srs-wizard/internal/models"
)

func TestCreateAndGet(t *testing.T) {
	store := NewStore()

	v := store.Create(nil)
	if v.ID == "" {
		t.Fatal("Expected a session ID")
	}
	if v.Snapshot.Current != 0 || len(v.Snapshot.Completed) != 0 {
		t.Errorf("Expected a fresh wizard, got %+v", v.Snapshot)
	}
	if v.Record.ProjectInfo.Version != models.DefaultVersion {
		t.Errorf("Expected a default record, got version %q", v.Record.ProjectInfo.Version)
	}

	initial := models.Record{}
	initial.ProjectInfo.Name = "Portal"
	seeded := store.Create(&initial)
	if seeded.Record.ProjectInfo.Name != "Portal" || len(seeded.Record.Constraints.Technical) != 1 {
		t.Errorf("Expected the initial record normalised, got %+v", seeded.Record)
	}

	got, err := store.Get(v.ID)
	if err != nil || got.ID != v.ID {
		t.Errorf("Expected to get session back, got %v", err)
	}
	if _, err := store.Get("missing"); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	store := NewStore()
	v := store.Create(nil)

	_, err := store.Update(v.ID, func(s *Session) error {
		s.Record = editor.SetText(s.Record, models.FieldCompanyName, "Acme")
		return s.Navigator.Next(s.Record)
	})
	if !errors.HasCode(err, errors.ErrCodeIncompleteSection) {
		t.Fatalf("Expected INCOMPLETE_SECTION, got %v", err)
	}

	got, _ := store.Get(v.ID)
	if got.Record.ProjectInfo.CompanyName != "" {
		t.Error("Expected the failed update to leave the record unchanged")
	}
	if got.Snapshot.Current != 0 {
		t.Errorf("Expected step 0, got %d", got.Snapshot.Current)
	}
}

func TestUpdateAdvances(t *testing.T) {
	store := NewStore()
	v := store.Create(nil)

	updated, err := store.Update(v.ID, func(s *Session) error {
		s.Record = editor.SetText(s.Record, models.FieldCompanyName, "Acme")
		s.Record = editor.SetText(s.Record, models.FieldProjectName, "Portal")
		s.Record = editor.SetText(s.Record, models.FieldDescription, "Self-service")
		s.Record = editor.SetText(s.Record, models.FieldScope, "Customer accounts")
		return s.Navigator.Next(s.Record)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if updated.Snapshot.Current != 1 || updated.Snapshot.Progress != 20 {
		t.Errorf("Expected step 1 at 20%%, got %+v", updated.Snapshot)
	}

	updated.Record.ProjectInfo.Name = "mutated copy"
	got, _ := store.Get(v.ID)
	if got.Record.ProjectInfo.Name != "Portal" {
		t.Error("Expected views to be independent copies")
	}
}

func TestConcurrentUpdatesAreSerialised(t *testing.T) {
	store := NewStore()
	v := store.Create(nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.Update(v.ID, func(s *Session) error {
				s.Record = editor.Append(s.Record, models.ListUserStories)
				return nil
			})
		}(i)
	}
	wg.Wait()

	got, _ := store.Get(v.ID)
	if n := len(got.Record.FunctionalRequirements.UserStories); n != 51 {
		t.Errorf("Expected 51 entries after 50 appends, got %d", n)
	}
}

func TestAcquireGuard(t *testing.T) {
	store := NewStore()
	v := store.Create(nil)

	if _, err := store.Acquire(v.ID); err != nil {
		t.Fatalf("Expected first claim to succeed, got %v", err)
	}
	if _, err := store.Acquire(v.ID); !errors.HasCode(err, errors.ErrCodeRenderInProgress) {
		t.Errorf("Expected RENDER_IN_PROGRESS, got %v", err)
	}

	other := store.Create(nil)
	if _, err := store.Acquire(other.ID); err != nil {
		t.Errorf("Expected sessions to render independently, got %v", err)
	}

	store.Release(v.ID)
	if _, err := store.Acquire(v.ID); err != nil {
		t.Errorf("Expected a claim after release, got %v", err)
	}
}

func TestDeleteAndPrune(t *testing.T) {
	store := NewStore()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	old := store.Create(nil)
	busy := store.Create(nil)
	store.Acquire(busy.ID)

	now = now.Add(3 * time.Hour)
	fresh := store.Create(nil)

	if removed := store.Prune(2 * time.Hour); removed != 1 {
		t.Errorf("Expected 1 pruned session, got %d", removed)
	}
	if _, err := store.Get(old.ID); err == nil {
		t.Error("Expected the idle session to be pruned")
	}
	if _, err := store.Get(busy.ID); err != nil {
		t.Error("Expected a rendering session to survive pruning")
	}

	if err := store.Delete(fresh.ID); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(fresh.ID); !errors.HasCode(err, errors.ErrCodeNotFound) {
		t.Errorf("Expected NOT_FOUND on second delete, got %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 session left, got %d: %s", store.Len(), fmt.Sprint(store.IDs()))
	}
}
