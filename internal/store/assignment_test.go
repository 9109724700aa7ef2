package store

import (
	"testing"

	"github.com/studydesk-app/studydesk/internal/database"
)

func setupAssignmentTestDB(t *testing.T) (*AssignmentStore, *UserStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewAssignmentStore(db), NewUserStore(db)
}

func testUser(t *testing.T, us *UserStore, email string) int64 {
	t.Helper()
	u, err := us.Create(email, "", "hash")
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return u.ID
}

func TestAssignmentCreateAndGet(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	a, err := as.Create(uid, "What is photosynthesis?", "The process by which plants convert light to energy.")
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}
	if a.Question != "What is photosynthesis?" {
		t.Errorf("question = %q", a.Question)
	}
	if a.UserID != uid {
		t.Errorf("user_id = %d, want %d", a.UserID, uid)
	}

	got, err := as.GetByID(a.ID, uid)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if got == nil {
		t.Fatal("expected assignment, got nil")
	}
	if got.Question != a.Question || got.Answer != a.Answer {
		t.Errorf("round trip mismatch: got %q/%q", got.Question, got.Answer)
	}
}

func TestAssignmentOwnerScoping(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	owner := testUser(t, us, "owner@example.com")
	other := testUser(t, us, "other@example.com")

	a, err := as.Create(owner, "Q", "A")
	if err != nil {
		t.Fatalf("create assignment: %v", err)
	}

	// A valid id with the wrong owner behaves exactly like a missing id.
	got, err := as.GetByID(a.ID, other)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if got != nil {
		t.Error("expected nil for non-owner fetch")
	}

	deleted, err := as.Delete(a.ID, other)
	if err != nil {
		t.Fatalf("delete assignment: %v", err)
	}
	if deleted {
		t.Error("non-owner delete should not remove the row")
	}

	got, err = as.GetByID(a.ID, owner)
	if err != nil {
		t.Fatalf("get assignment: %v", err)
	}
	if got == nil {
		t.Error("owner's row should survive a non-owner delete attempt")
	}
}

func TestAssignmentListNewestFirst(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	as.Create(uid, "first", "A")
	as.Create(uid, "second", "A")
	as.Create(uid, "third", "A")

	got, err := as.List(AssignmentFilter{OwnerID: uid}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 assignments, got %d", len(got))
	}
	expected := []string{"third", "second", "first"}
	for i, e := range expected {
		if got[i].Question != e {
			t.Errorf("got[%d].Question = %q, want %q", i, got[i].Question, e)
		}
	}
}

func TestAssignmentListScopedToOwner(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	alice := testUser(t, us, "alice@example.com")
	bob := testUser(t, us, "bob@example.com")

	as.Create(alice, "alice q1", "a")
	as.Create(alice, "alice q2", "a")
	as.Create(bob, "bob q1", "a")

	got, err := as.List(AssignmentFilter{OwnerID: bob}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 assignment, got %d", len(got))
	}
	if got[0].Question != "bob q1" {
		t.Errorf("question = %q, want %q", got[0].Question, "bob q1")
	}
}

func TestAssignmentSearchCaseInsensitive(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	as.Create(uid, "Explain the Krebs cycle", "A series of chemical reactions")
	as.Create(uid, "What is entropy?", "A measure of disorder, see KREBS notes")
	as.Create(uid, "Define osmosis", "Movement of water across a membrane")

	// Matches question on one record, answer on another.
	got, err := as.List(AssignmentFilter{OwnerID: uid, Search: "krebs"}, 1, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(got))
	}

	total, err := as.Count(AssignmentFilter{OwnerID: uid, Search: "krebs"})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 2 {
		t.Errorf("count = %d, want 2", total)
	}
}

func TestAssignmentCountMatchesListFilter(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	alice := testUser(t, us, "alice@example.com")
	bob := testUser(t, us, "bob@example.com")

	for i := 0; i < 5; i++ {
		as.Create(alice, "math question", "answer")
	}
	as.Create(alice, "history question", "answer")
	as.Create(bob, "math question", "answer")

	f := AssignmentFilter{OwnerID: alice, Search: "math"}
	total, err := as.Count(f)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	got, err := as.List(f, 1, 100)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != int64(len(got)) {
		t.Errorf("count = %d but list returned %d rows", total, len(got))
	}
	if total != 5 {
		t.Errorf("count = %d, want 5", total)
	}
}

func TestAssignmentPaginationCoversAllRows(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	created := make(map[int64]bool)
	for i := 0; i < 7; i++ {
		a, err := as.Create(uid, "q", "a")
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		created[a.ID] = true
	}

	f := AssignmentFilter{OwnerID: uid}
	seen := make(map[int64]bool)
	limit := 3
	for page := 1; page <= 3; page++ {
		rows, err := as.List(f, page, limit)
		if err != nil {
			t.Fatalf("list page %d: %v", page, err)
		}
		if len(rows) > limit {
			t.Errorf("page %d returned %d rows, limit %d", page, len(rows), limit)
		}
		for _, a := range rows {
			if seen[a.ID] {
				t.Errorf("id %d returned twice across pages", a.ID)
			}
			seen[a.ID] = true
		}
	}
	if len(seen) != len(created) {
		t.Errorf("pages covered %d ids, want %d", len(seen), len(created))
	}
	for id := range created {
		if !seen[id] {
			t.Errorf("id %d missing from paged results", id)
		}
	}
}

func TestAssignmentListEmptyPage(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	as.Create(uid, "q", "a")

	rows, err := as.List(AssignmentFilter{OwnerID: uid}, 5, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("expected empty page, got %d rows", len(rows))
	}
}

func TestAssignmentDelete(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	a, err := as.Create(uid, "q", "a")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	deleted, err := as.Delete(a.ID, uid)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !deleted {
		t.Fatal("expected delete to remove the row")
	}

	// Deleting again reports no row, never an error.
	deleted, err = as.Delete(a.ID, uid)
	if err != nil {
		t.Fatalf("second delete: %v", err)
	}
	if deleted {
		t.Error("second delete should report no row removed")
	}

	got, err := as.GetByID(a.ID, uid)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("expected nil after delete")
	}
}

func TestAssignmentDuplicatesAllowed(t *testing.T) {
	as, us := setupAssignmentTestDB(t)
	uid := testUser(t, us, "a@example.com")

	first, err := as.Create(uid, "same question", "same answer")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, err := as.Create(uid, "same question", "same answer")
	if err != nil {
		t.Fatalf("duplicate create: %v", err)
	}
	if first.ID == second.ID {
		t.Error("expected distinct records for duplicate content")
	}
}
