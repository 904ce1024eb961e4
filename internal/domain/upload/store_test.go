package upload_test

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"genhub/services/web-frontend/internal/domain/model"
	"genhub/services/web-frontend/internal/domain/upload"
)

// pngFile carries a real PNG signature so content sniffing classifies it
// as image/png regardless of the declared content type.
func pngFile(name string) upload.File {
	return upload.File{
		Name:        name,
		ContentType: "application/octet-stream",
		Data:        []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A},
	}
}

func textFile(name string) upload.File {
	return upload.File{Name: name, ContentType: "text/plain", Data: []byte("just words")}
}

func newStore(maxBytes int64, ttl time.Duration) *upload.Store {
	return upload.NewStore(maxBytes, ttl, zerolog.Nop())
}

func TestStore_Add_FiltersByAcceptedPrefix(t *testing.T) {
	store := newStore(0, time.Minute)

	result, err := store.Add("sess.img2img", model.IOTypeImage, 4, []upload.File{
		pngFile("fox.png"),
		textFile("notes.txt"),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Accepted != 1 || result.Rejected != 1 || result.Dropped != 0 {
		t.Errorf("Add result = %+v, want 1 accepted, 1 rejected", result)
	}
	if len(result.Previews) != 1 || result.Previews[0].Name != "fox.png" {
		t.Errorf("previews = %+v, want only the image", result.Previews)
	}
}

func TestStore_Add_SniffedTypeWinsOverDeclared(t *testing.T) {
	store := newStore(0, time.Minute)

	// Declared as an image but the bytes are plain text.
	mislabeled := upload.File{Name: "fake.png", ContentType: "image/png", Data: []byte("just words")}
	result, err := store.Add("sess.img2img", model.IOTypeImage, 4, []upload.File{mislabeled})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Rejected != 1 {
		t.Errorf("Add result = %+v, want the mislabeled file rejected", result)
	}
}

func TestStore_Add_WildcardAcceptsEverything(t *testing.T) {
	store := newStore(0, time.Minute)

	result, err := store.Add("sess.txt2img", model.IOTypeText, 4, []upload.File{
		pngFile("fox.png"),
		textFile("notes.txt"),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Accepted != 2 || result.Rejected != 0 {
		t.Errorf("Add result = %+v, want everything accepted", result)
	}
}

func TestStore_Add_TruncatesToLimit(t *testing.T) {
	store := newStore(0, time.Minute)

	result, err := store.Add("sess.img2img", model.IOTypeImage, 2, []upload.File{
		pngFile("a.png"), pngFile("b.png"), pngFile("c.png"),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Accepted != 2 || result.Dropped != 1 {
		t.Errorf("Add result = %+v, want 2 accepted, 1 dropped", result)
	}
	if len(result.Previews) != 2 {
		t.Fatalf("previews = %d, want 2", len(result.Previews))
	}
	// Earlier files survive; later overflow is dropped.
	if result.Previews[0].Name != "a.png" || result.Previews[1].Name != "b.png" {
		t.Errorf("retained previews = %+v, want a.png then b.png", result.Previews)
	}
}

func TestStore_Add_RejectsOversizedFiles(t *testing.T) {
	store := newStore(4, time.Minute)

	result, err := store.Add("sess.img2img", model.IOTypeImage, 4, []upload.File{pngFile("big.png")})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if result.Rejected != 1 || result.Accepted != 0 {
		t.Errorf("Add result = %+v, want the oversized file rejected", result)
	}
}

func TestStore_Remove(t *testing.T) {
	store := newStore(0, time.Minute)
	const sess = "sess.img2img"

	_, err := store.Add(sess, model.IOTypeImage, 4, []upload.File{
		pngFile("a.png"), pngFile("b.png"), pngFile("c.png"),
	})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	if err := store.Remove(sess, 1); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	previews := store.Previews(sess)
	if len(previews) != 2 || previews[0].Name != "a.png" || previews[1].Name != "c.png" {
		t.Errorf("previews after remove = %+v, want a.png then c.png", previews)
	}

	if err := store.Remove(sess, 5); !errors.Is(err, upload.ErrIndexOutOfRange) {
		t.Errorf("Remove out of range = %v, want ErrIndexOutOfRange", err)
	}
	if err := store.Remove("unknown", 0); !errors.Is(err, upload.ErrSessionNotFound) {
		t.Errorf("Remove on unknown session = %v, want ErrSessionNotFound", err)
	}
}

func TestStore_OpenAndTeardown(t *testing.T) {
	store := newStore(0, time.Minute)
	const sess = "sess.img2img"

	result, err := store.Add(sess, model.IOTypeImage, 4, []upload.File{pngFile("fox.png")})
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	previewID := result.Previews[0].ID

	f, ok := store.Open(sess, previewID)
	if !ok {
		t.Fatal("Open returned false for a live preview")
	}
	if f.Name != "fox.png" {
		t.Errorf("opened file = %q, want fox.png", f.Name)
	}

	store.Teardown(sess)
	if _, ok := store.Open(sess, previewID); ok {
		t.Error("Open returned true after teardown, want the handle released")
	}
	if got := store.Count(sess); got != 0 {
		t.Errorf("Count after teardown = %d, want 0", got)
	}
}

func TestStore_SweepExpired(t *testing.T) {
	store := newStore(0, time.Millisecond)

	if _, err := store.Add("sess.a", model.IOTypeImage, 1, []upload.File{pngFile("a.png")}); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if removed := store.SweepExpired(); removed != 1 {
		t.Errorf("SweepExpired() = %d, want 1", removed)
	}
	if got := store.Count("sess.a"); got != 0 {
		t.Errorf("Count after sweep = %d, want 0", got)
	}
}
