package fs

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"lodgecore/internal/blob/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return store
}

func TestPutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	info, err := store.Put(ctx, "receipts/RCP-2026-0001.png", strings.NewReader("png-bytes"), core.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"tenant": "t1"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.ETag == "" || info.Size != int64(len("png-bytes")) {
		t.Fatalf("unexpected info: %+v", info)
	}

	got, rc, err := store.Get(ctx, "receipts/RCP-2026-0001.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "png-bytes" {
		t.Fatalf("content mismatch: %q", body)
	}
	if got.ContentType != "image/png" || got.Metadata["tenant"] != "t1" {
		t.Fatalf("metadata mismatch: %+v", got)
	}
}

func TestPutOverwritesExisting(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Put(ctx, "receipts/r.png", strings.NewReader("old"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := store.Put(ctx, "receipts/r.png", strings.NewReader("new"), core.PutOptions{}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	_, rc, err := store.Get(ctx, "receipts/r.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "new" {
		t.Fatalf("overwrite not applied: %q", body)
	}
}

func TestSanitizeKeyRejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, key := range []string{"", "  ", "/abs.png", "../escape.png", "a/../../b.png"} {
		if _, err := store.Put(ctx, key, strings.NewReader("x"), core.PutOptions{}); err == nil {
			t.Fatalf("key %q accepted", key)
		}
	}
}

func TestHeadAndGetMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Head(ctx, "receipts/none.png"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("head: expected not found, got %v", err)
	}
	if _, _, err := store.Get(ctx, "receipts/none.png"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get: expected not found, got %v", err)
	}
}

func TestDeleteRemovesSidecar(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.Put(ctx, "receipts/r.png", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	ok, err := store.Delete(ctx, "receipts/r.png")
	if err != nil || !ok {
		t.Fatalf("delete: ok=%v err=%v", ok, err)
	}
	if _, err := os.Stat(filepath.Join(store.Root(), "receipts", "r.png.meta")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("sidecar survived delete: %v", err)
	}
	if ok, _ := store.Delete(ctx, "receipts/r.png"); ok {
		t.Fatalf("second delete reported existence")
	}
}

func TestListReturnsKeysInOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, key := range []string{"receipts/2026/b.png", "receipts/2026/a.png", "exports/summary.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "receipts/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "receipts/2026/a.png" || infos[1].Key != "receipts/2026/b.png" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestPresignURLLocal(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	url, err := store.PresignURL(ctx, "receipts/r.png", core.SignedURLOptions{})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if url != "http://local.artifacts/receipts/r.png" {
		t.Fatalf("unexpected url %q", url)
	}
	if _, err := store.PresignURL(ctx, "receipts/r.png", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported for PUT, got %v", err)
	}
}
