package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/shandysiswandi/gonote/internal/notes/entity"
	"github.com/shandysiswandi/gonote/internal/pkg/goerror"
	"github.com/shandysiswandi/gonote/internal/pkg/instrument"
	"github.com/shandysiswandi/gonote/internal/pkg/validator"
)

var testNow = time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

type fakeDB struct {
	notes map[int64]entity.Note

	createErr error
	updateErr error
}

func newFakeDB() *fakeDB {
	return &fakeDB{notes: map[int64]entity.Note{}}
}

func (f *fakeDB) GetNoteByID(_ context.Context, id, userID int64) (*entity.Note, error) {
	n, ok := f.notes[id]
	if !ok || n.UserID != userID {
		return nil, goerror.ErrNotFound
	}

	return &n, nil
}

func (f *fakeDB) GetNoteList(_ context.Context, userID int64, filter entity.NoteListFilter) ([]entity.Note, int64, error) {
	var owned []entity.Note
	for _, n := range f.notes {
		if n.UserID == userID {
			owned = append(owned, n)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		if !owned[i].CreatedAt.Equal(owned[j].CreatedAt) {
			return owned[i].CreatedAt.After(owned[j].CreatedAt)
		}

		return owned[i].ID > owned[j].ID
	})

	total := int64(len(owned))

	start := int(filter.Offset)
	if start > len(owned) {
		start = len(owned)
	}
	end := start + int(filter.Limit)
	if end > len(owned) {
		end = len(owned)
	}

	return owned[start:end], total, nil
}

func (f *fakeDB) CreateNote(_ context.Context, note entity.Note) error {
	if f.createErr != nil {
		return f.createErr
	}

	f.notes[note.ID] = note

	return nil
}

func (f *fakeDB) UpdateNote(_ context.Context, note entity.Note) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	if cur, ok := f.notes[note.ID]; !ok || cur.UserID != note.UserID {
		return goerror.ErrNotFound
	}

	f.notes[note.ID] = note

	return nil
}

func (f *fakeDB) DeleteNote(_ context.Context, id, userID int64) error {
	if n, ok := f.notes[id]; !ok || n.UserID != userID {
		return goerror.ErrNotFound
	}

	delete(f.notes, id)

	return nil
}

type fakeAuthn struct {
	userID int64
	err    error
}

func (f fakeAuthn) Authenticate(context.Context) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}

	return f.userID, nil
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type seqNumberID struct{ next int64 }

func (s *seqNumberID) Generate() int64 {
	s.next++

	return s.next
}

type fixture struct {
	uc *Usecase
	db *fakeDB
}

func newFixture(t *testing.T, userID int64) *fixture {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("init validator: %v", err)
	}

	db := newFakeDB()
	uc := New(Dependency{
		RepoDB:     db,
		Authn:      fakeAuthn{userID: userID},
		Validator:  v10,
		UID:        &seqNumberID{next: 1000},
		Clock:      fixedClock{now: testNow},
		Instrument: instrument.NewNoop(),
	})

	return &fixture{uc: uc, db: db}
}

func (f *fixture) seedNote(id, userID int64, title string, createdAt time.Time) entity.Note {
	n := entity.Note{
		ID:        id,
		UserID:    userID,
		Title:     title,
		Content:   "content of " + title,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	f.db.notes[id] = n

	return n
}

func assertBusinessCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	if err == nil {
		t.Fatal("expected an error, got nil")
	}

	var gerr *goerror.Error
	if !errors.As(err, &gerr) {
		t.Fatalf("expected a goerror, got %T: %v", err, err)
	}
	if gerr.Code() != want {
		t.Fatalf("expected code %v, got %v (message %q)", want, gerr.Code(), gerr.Msg())
	}
}

func TestNoteCreate(t *testing.T) {
	f := newFixture(t, 7)

	out, err := f.uc.NoteCreate(context.Background(), NoteCreateInput{
		Title:   "  Groceries ",
		Content: "milk, eggs",
	})

	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if out.Note.Title != "Groceries" {
		t.Fatalf("title not trimmed: %q", out.Note.Title)
	}
	if out.Note.UserID != 7 {
		t.Fatalf("note not scoped to caller: %d", out.Note.UserID)
	}
	if !out.Note.CreatedAt.Equal(testNow) || !out.Note.UpdatedAt.Equal(testNow) {
		t.Fatal("timestamps must come from the clock")
	}
	if _, ok := f.db.notes[out.Note.ID]; !ok {
		t.Fatal("note was not stored")
	}
}

func TestNoteCreateInvalidInput(t *testing.T) {
	f := newFixture(t, 7)

	cases := []struct {
		name string
		in   NoteCreateInput
	}{
		{"missing title", NoteCreateInput{Content: "body"}},
		{"missing content", NoteCreateInput{Title: "title"}},
		{"title too long", NoteCreateInput{Title: strings.Repeat("a", 201), Content: "body"}},
		{"content too long", NoteCreateInput{Title: "title", Content: strings.Repeat("a", 10001)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.uc.NoteCreate(context.Background(), tc.in); err == nil {
				t.Fatal("expected a validation error, got nil")
			}
		})
	}
}

func TestNoteCreateUnauthenticated(t *testing.T) {
	f := newFixture(t, 7)
	wantErr := goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	f.uc.authn = fakeAuthn{err: wantErr}

	_, err := f.uc.NoteCreate(context.Background(), NoteCreateInput{Title: "t", Content: "c"})

	assertBusinessCode(t, err, goerror.CodeUnauthorized)
}

func TestNoteDetail(t *testing.T) {
	f := newFixture(t, 7)
	seeded := f.seedNote(1, 7, "mine", testNow)

	out, err := f.uc.NoteDetail(context.Background(), NoteDetailInput{ID: 1})

	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if out.Note.ID != seeded.ID || out.Note.Title != seeded.Title {
		t.Fatalf("unexpected note: %+v", out.Note)
	}
}

func TestNoteDetailOtherOwner(t *testing.T) {
	f := newFixture(t, 7)
	f.seedNote(1, 99, "not mine", testNow)

	_, err := f.uc.NoteDetail(context.Background(), NoteDetailInput{ID: 1})

	assertBusinessCode(t, err, goerror.CodeNotFound)
}

func TestNoteDetailMissing(t *testing.T) {
	f := newFixture(t, 7)

	_, err := f.uc.NoteDetail(context.Background(), NoteDetailInput{ID: 404})

	assertBusinessCode(t, err, goerror.CodeNotFound)
}

func TestNoteUpdate(t *testing.T) {
	f := newFixture(t, 7)
	f.seedNote(1, 7, "old", testNow.Add(-time.Hour))

	out, err := f.uc.NoteUpdate(context.Background(), NoteUpdateInput{
		ID:      1,
		Title:   "new title",
		Content: "new content",
	})

	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if out.Note.Title != "new title" || out.Note.Content != "new content" {
		t.Fatalf("unexpected note after update: %+v", out.Note)
	}
	if !out.Note.UpdatedAt.Equal(testNow) {
		t.Fatal("update must refresh the updated_at timestamp")
	}
	if !out.Note.CreatedAt.Equal(testNow.Add(-time.Hour)) {
		t.Fatal("update must keep the created_at timestamp")
	}
}

func TestNoteUpdateOtherOwner(t *testing.T) {
	f := newFixture(t, 7)
	f.seedNote(1, 99, "not mine", testNow)

	_, err := f.uc.NoteUpdate(context.Background(), NoteUpdateInput{ID: 1, Title: "t", Content: "c"})

	assertBusinessCode(t, err, goerror.CodeNotFound)
}

func TestNoteDelete(t *testing.T) {
	f := newFixture(t, 7)
	f.seedNote(1, 7, "mine", testNow)

	if err := f.uc.NoteDelete(context.Background(), NoteDeleteInput{ID: 1}); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := f.db.notes[1]; ok {
		t.Fatal("note still present after delete")
	}
}

func TestNoteDeleteOtherOwner(t *testing.T) {
	f := newFixture(t, 7)
	f.seedNote(1, 99, "not mine", testNow)

	err := f.uc.NoteDelete(context.Background(), NoteDeleteInput{ID: 1})

	assertBusinessCode(t, err, goerror.CodeNotFound)
	if _, ok := f.db.notes[1]; !ok {
		t.Fatal("someone else's note must not be deleted")
	}
}

func TestNoteList(t *testing.T) {
	f := newFixture(t, 7)
	for i := int64(1); i <= 25; i++ {
		f.seedNote(i, 7, "note", testNow.Add(time.Duration(i)*time.Minute))
	}
	f.seedNote(100, 99, "not mine", testNow)

	out, err := f.uc.NoteList(context.Background(), NoteListInput{Page: 2, Limit: 10})

	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.Total != 25 {
		t.Fatalf("total mismatch: got %d want 25", out.Total)
	}
	if len(out.Notes) != 10 {
		t.Fatalf("page size mismatch: got %d want 10", len(out.Notes))
	}
	// Newest first, so page 2 starts at the 11th newest note.
	if out.Notes[0].ID != 15 {
		t.Fatalf("unexpected first note on page 2: %d", out.Notes[0].ID)
	}
	if out.TotalPages() != 3 {
		t.Fatalf("total pages mismatch: got %d want 3", out.TotalPages())
	}
	if !out.HasNext() || !out.HasPrev() {
		t.Fatalf("page 2 of 3 must have both neighbors: next=%v prev=%v", out.HasNext(), out.HasPrev())
	}
}

func TestNoteListDefaults(t *testing.T) {
	f := newFixture(t, 7)
	for i := int64(1); i <= 3; i++ {
		f.seedNote(i, 7, "note", testNow.Add(time.Duration(i)*time.Minute))
	}

	cases := []struct {
		name string
		in   NoteListInput
	}{
		{"zero values", NoteListInput{}},
		{"negative page", NoteListInput{Page: -3, Limit: -1}},
		{"limit above cap", NoteListInput{Page: 1, Limit: 1000}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := f.uc.NoteList(context.Background(), tc.in)
			if err != nil {
				t.Fatalf("list failed: %v", err)
			}
			if out.Page != 1 || out.Limit != 10 {
				t.Fatalf("defaults not applied: page=%d limit=%d", out.Page, out.Limit)
			}
			if len(out.Notes) != 3 {
				t.Fatalf("expected all 3 notes, got %d", len(out.Notes))
			}
		})
	}
}

func TestNoteListEmpty(t *testing.T) {
	f := newFixture(t, 7)

	out, err := f.uc.NoteList(context.Background(), NoteListInput{Page: 1, Limit: 10})

	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if out.Total != 0 || len(out.Notes) != 0 {
		t.Fatalf("expected an empty page, got total=%d len=%d", out.Total, len(out.Notes))
	}
	if out.TotalPages() != 0 || out.HasNext() || out.HasPrev() {
		t.Fatal("empty result must have no pages or neighbors")
	}
}
