package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"lodgecore/internal/blob/core"
)

func TestPutOverwritesAndGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := New()

	if _, err := store.Put(ctx, "receipts/RCP-2026-0001.png", strings.NewReader("v1"), core.PutOptions{ContentType: "image/png"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	info, err := store.Put(ctx, "receipts/RCP-2026-0001.png", strings.NewReader("v2-longer"), core.PutOptions{
		ContentType: "image/png",
		Metadata:    map[string]string{"tenant": "t1"},
	})
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if info.Size != int64(len("v2-longer")) {
		t.Fatalf("size = %d", info.Size)
	}

	got, rc, err := store.Get(ctx, "receipts/RCP-2026-0001.png")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer rc.Close()
	body, _ := io.ReadAll(rc)
	if string(body) != "v2-longer" {
		t.Fatalf("stale content after overwrite: %q", body)
	}
	if got.Metadata["tenant"] != "t1" {
		t.Fatalf("metadata lost: %+v", got.Metadata)
	}
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store := New()
	if _, _, err := store.Get(context.Background(), "receipts/absent.png"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := store.Head(context.Background(), "receipts/absent.png"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found from head, got %v", err)
	}
}

func TestDeleteReportsExistence(t *testing.T) {
	ctx := context.Background()
	store := New()
	if _, err := store.Put(ctx, "receipts/a.png", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ok, err := store.Delete(ctx, "receipts/a.png"); err != nil || !ok {
		t.Fatalf("delete existing: ok=%v err=%v", ok, err)
	}
	if ok, err := store.Delete(ctx, "receipts/a.png"); err != nil || ok {
		t.Fatalf("delete missing: ok=%v err=%v", ok, err)
	}
}

func TestListFiltersByPrefix(t *testing.T) {
	ctx := context.Background()
	store := New()
	for _, key := range []string{"receipts/b.png", "receipts/a.png", "exports/x.csv"} {
		if _, err := store.Put(ctx, key, strings.NewReader(key), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", key, err)
		}
	}
	infos, err := store.List(ctx, "receipts/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(infos) != 2 || infos[0].Key != "receipts/a.png" || infos[1].Key != "receipts/b.png" {
		t.Fatalf("unexpected listing: %+v", infos)
	}
}

func TestPresignUnsupported(t *testing.T) {
	store := New()
	if _, err := store.PresignURL(context.Background(), "receipts/a.png", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported, got %v", err)
	}
}
