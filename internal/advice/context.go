package advice

import (
	"encoding/json"

	"lodgecore/internal/core"
	"lodgecore/pkg/domain"
)

// BuildContext serializes the current facility snapshot into the JSON blob
// the assistant prompt embeds. It is a read-only projection; nothing the
// assistant does can feed back into the aggregate.
func BuildContext(stats core.Statistics, floors []domain.Floor, rooms []domain.Room, tenants []domain.Tenant) string {
	raw, err := json.Marshal(map[string]any{
		"statistics": stats,
		"floors":     floors,
		"rooms":      rooms,
		"tenants":    tenants,
	})
	if err != nil {
		return "{}"
	}
	return string(raw)
}
