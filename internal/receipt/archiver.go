package receipt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"lodgecore/internal/blob"
)

// KeyPrefix is the artifact key namespace receipts are archived under.
const KeyPrefix = "receipts/"

// Archiver persists composed receipts into an artifact store so issued
// receipts survive beyond the session that printed them.
type Archiver struct {
	store blob.Store
}

// NewArchiver returns an Archiver over the given artifact store.
func NewArchiver(store blob.Store) *Archiver {
	return &Archiver{store: store}
}

// Archive stores the document JSON under receipts/<number>.json and, when a
// payment code was rendered, its PNG under receipts/<number>.png. It returns
// the info of the document artifact.
func (a *Archiver) Archive(ctx context.Context, doc Document) (blob.Info, error) {
	if doc.Number == "" {
		return blob.Info{}, fmt.Errorf("receipt number empty")
	}
	meta := map[string]string{
		"tenant": doc.TenantName,
		"room":   doc.RoomNumber,
		"date":   doc.Date,
	}
	if len(doc.QRImage) > 0 {
		_, err := a.store.Put(ctx, KeyPrefix+doc.Number+".png", bytes.NewReader(doc.QRImage), blob.PutOptions{
			ContentType: "image/png",
			Metadata:    meta,
		})
		if err != nil {
			return blob.Info{}, fmt.Errorf("archive payment code: %w", err)
		}
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return blob.Info{}, err
	}
	info, err := a.store.Put(ctx, KeyPrefix+doc.Number+".json", bytes.NewReader(raw), blob.PutOptions{
		ContentType: "application/json",
		Metadata:    meta,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive receipt: %w", err)
	}
	return info, nil
}

// List returns the archived receipt document artifacts in key order.
func (a *Archiver) List(ctx context.Context) ([]blob.Info, error) {
	return a.store.List(ctx, KeyPrefix)
}
