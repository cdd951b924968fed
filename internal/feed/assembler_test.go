package feed_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/inkwell/inkwell/internal/db"
	"github.com/inkwell/inkwell/internal/feed"
	"github.com/inkwell/inkwell/internal/models"
	"github.com/inkwell/inkwell/internal/testsupport"
	"github.com/inkwell/inkwell/pkg/logging"
)

const perPage = 10

func newAssembler(store *testsupport.StoreFake) *feed.Assembler {
	return feed.NewAssembler(store, store, store, store, perPage)
}

func TestGlobalFeedPagination(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	for i := 0; i < 13; i++ {
		store.AddPost(author, nil, fmt.Sprintf("post %d", i))
	}
	assembler := newAssembler(store)

	page1, err := assembler.Global(context.Background(), 1)
	if err != nil {
		t.Fatalf("Global(1) failed: %v", err)
	}
	if len(page1.Items) != 10 {
		t.Errorf("page 1 has %d items, want 10", len(page1.Items))
	}
	if page1.TotalCount != 13 {
		t.Errorf("total count = %d, want 13", page1.TotalCount)
	}
	if page1.NumPages != 2 {
		t.Errorf("num pages = %d, want 2", page1.NumPages)
	}

	page2, err := assembler.Global(context.Background(), 2)
	if err != nil {
		t.Fatalf("Global(2) failed: %v", err)
	}
	if len(page2.Items) != 3 {
		t.Errorf("page 2 has %d items, want 3", len(page2.Items))
	}
}

func TestGlobalFeedNewestFirst(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	store.AddPost(author, nil, "older")
	newest := store.AddPost(author, nil, "newest")
	assembler := newAssembler(store)

	page, err := assembler.Global(context.Background(), 1)
	if err != nil {
		t.Fatalf("Global() failed: %v", err)
	}
	if len(page.Items) == 0 || page.Items[0].ID != newest.ID {
		t.Errorf("expected newest post first")
	}
}

func TestGlobalFeedClampsOutOfRangePage(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	for i := 0; i < 13; i++ {
		store.AddPost(author, nil, fmt.Sprintf("post %d", i))
	}
	assembler := newAssembler(store)

	page, err := assembler.Global(context.Background(), 99)
	if err != nil {
		t.Fatalf("Global(99) failed: %v", err)
	}
	if page.Number != 2 {
		t.Errorf("out-of-range page resolved to %d, want 2", page.Number)
	}
	if len(page.Items) != 3 {
		t.Errorf("last page has %d items, want 3", len(page.Items))
	}
}

func TestGroupFeed(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	group := store.AddGroup("Essays", "essays")
	other := store.AddGroup("Notes", "notes")
	store.AddPost(author, group, "in essays")
	store.AddPost(author, other, "in notes")
	store.AddPost(author, nil, "ungrouped")
	assembler := newAssembler(store)

	got, page, err := assembler.Group(context.Background(), "essays", 1)
	if err != nil {
		t.Fatalf("Group() failed: %v", err)
	}
	if got.ID != group.ID {
		t.Errorf("group = %d, want %d", got.ID, group.ID)
	}
	if len(page.Items) != 1 || page.Items[0].Text != "in essays" {
		t.Errorf("group feed items = %v, want the single essays post", page.Items)
	}
}

func TestGroupFeedUnknownSlug(t *testing.T) {
	store := testsupport.NewStoreFake()
	assembler := newAssembler(store)

	_, _, err := assembler.Group(context.Background(), "missing", 1)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown slug, got %v", err)
	}
}

func TestAuthorFeed(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	fan1 := store.AddUser("anna")
	fan2 := store.AddUser("boris")
	store.AddPost(author, nil, "one")
	store.AddPost(author, nil, "two")
	store.AddPost(fan1, nil, "someone else's")

	store.CreateIfAbsent(context.Background(), fan1.ID, author.ID)
	store.CreateIfAbsent(context.Background(), fan2.ID, author.ID)
	store.CreateIfAbsent(context.Background(), author.ID, fan1.ID)

	assembler := newAssembler(store)

	af, err := assembler.Author(context.Background(), "leo", 1)
	if err != nil {
		t.Fatalf("Author() failed: %v", err)
	}
	if af.TotalCount != 2 {
		t.Errorf("author post count = %d, want 2", af.TotalCount)
	}
	if len(af.Page.Items) != 2 {
		t.Errorf("author feed has %d items, want 2", len(af.Page.Items))
	}
	if af.Followers != 2 {
		t.Errorf("followers = %d, want 2", af.Followers)
	}
	if af.Followings != 1 {
		t.Errorf("followings = %d, want 1", af.Followings)
	}
}

func TestAuthorFeedUnknownUser(t *testing.T) {
	store := testsupport.NewStoreFake()
	assembler := newAssembler(store)

	_, err := assembler.Author(context.Background(), "ghost", 1)
	if !errors.Is(err, db.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown user, got %v", err)
	}
}

func TestFollowedFeed(t *testing.T) {
	store := testsupport.NewStoreFake()
	followed := store.AddUser("leo")
	stranger := store.AddUser("boris")
	reader := store.AddUser("anna")
	store.AddPost(followed, nil, "from leo")
	store.AddPost(stranger, nil, "from boris")

	store.CreateIfAbsent(context.Background(), reader.ID, followed.ID)

	assembler := newAssembler(store)

	page, err := assembler.Followed(context.Background(), reader.ID, 1)
	if err != nil {
		t.Fatalf("Followed() failed: %v", err)
	}
	if len(page.Items) != 1 {
		t.Fatalf("followed feed has %d items, want 1", len(page.Items))
	}
	if page.Items[0].AuthorID != followed.ID {
		t.Errorf("followed feed contains a post from an unfollowed author")
	}
}

func TestFollowedFeedEmptyWhenFollowingNobody(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	reader := store.AddUser("anna")
	store.AddPost(author, nil, "invisible to reader")

	assembler := newAssembler(store)

	page, err := assembler.Followed(context.Background(), reader.ID, 1)
	if err != nil {
		t.Fatalf("Followed() failed: %v", err)
	}
	if len(page.Items) != 0 {
		t.Errorf("followed feed should be empty, got %d items", len(page.Items))
	}
	if page.TotalCount != 0 {
		t.Errorf("total count = %d, want 0", page.TotalCount)
	}
}

func TestFollowedFeedPagination(t *testing.T) {
	store := testsupport.NewStoreFake()
	followed := store.AddUser("leo")
	reader := store.AddUser("anna")
	for i := 0; i < 13; i++ {
		store.AddPost(followed, nil, fmt.Sprintf("post %d", i))
	}
	store.CreateIfAbsent(context.Background(), reader.ID, followed.ID)

	assembler := newAssembler(store)

	page1, err := assembler.Followed(context.Background(), reader.ID, 1)
	if err != nil {
		t.Fatalf("Followed(1) failed: %v", err)
	}
	if len(page1.Items) != 10 {
		t.Errorf("page 1 has %d items, want 10", len(page1.Items))
	}

	page2, err := assembler.Followed(context.Background(), reader.ID, 2)
	if err != nil {
		t.Fatalf("Followed(2) failed: %v", err)
	}
	if len(page2.Items) != 3 {
		t.Errorf("page 2 has %d items, want 3", len(page2.Items))
	}
}

func TestFollowing(t *testing.T) {
	store := testsupport.NewStoreFake()
	author := store.AddUser("leo")
	reader := store.AddUser("anna")
	store.CreateIfAbsent(context.Background(), reader.ID, author.ID)

	assembler := newAssembler(store)

	following, err := assembler.Following(context.Background(), reader.ID, author.ID)
	if err != nil {
		t.Fatalf("Following() failed: %v", err)
	}
	if !following {
		t.Error("expected reader to be following author")
	}

	reverse, err := assembler.Following(context.Background(), author.ID, reader.ID)
	if err != nil {
		t.Fatalf("Following() failed: %v", err)
	}
	if reverse {
		t.Error("follow edges are directed; reverse should be false")
	}
}

type failingPosts struct{}

func (failingPosts) ListFeed(ctx context.Context, filter db.PostFilter, offset, limit int) ([]*models.Post, error) {
	return nil, errors.New("connection reset")
}

func (failingPosts) CountFeed(ctx context.Context, filter db.PostFilter) (int64, error) {
	return 0, errors.New("connection reset")
}

func TestGlobalFeedStorageErrorLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	prev := logging.Logger
	logging.Logger = zap.New(core)
	t.Cleanup(func() { logging.Logger = prev })

	store := testsupport.NewStoreFake()
	assembler := feed.NewAssembler(failingPosts{}, store, store, store, perPage)

	if _, err := assembler.Global(context.Background(), 1); err == nil {
		t.Fatal("Global() should surface the storage error")
	}
	if logs.FilterMessage("Feed count failed").Len() != 1 {
		t.Error("storage failure was not logged")
	}
}
