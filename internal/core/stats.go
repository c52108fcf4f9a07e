package core

import "math"

// Statistics are derived read-only projections over the aggregate. They are
// computed on demand and never stored.
type Statistics struct {
	TotalRooms    int   `json:"total_rooms"`
	TotalTenants  int   `json:"total_tenants"`
	TotalCapacity int   `json:"total_capacity"`
	TotalRevenue  int64 `json:"total_revenue"`
	// OccupancyRate is tenants over capacity as a rounded whole percentage,
	// zero when no capacity exists.
	OccupancyRate int `json:"occupancy_rate"`
	VacantBeds    int `json:"vacant_beds"`
}

// ComputeStatistics derives the dashboard figures from a consistent view.
func ComputeStatistics(view TransactionView) Statistics {
	stats := Statistics{}
	for _, room := range view.ListRooms() {
		stats.TotalRooms++
		stats.TotalCapacity += room.Capacity
	}
	for _, tenant := range view.ListTenants() {
		stats.TotalTenants++
		stats.TotalRevenue += tenant.Rent
	}
	if stats.TotalCapacity > 0 {
		stats.OccupancyRate = int(math.Round(float64(stats.TotalTenants) / float64(stats.TotalCapacity) * 100))
	}
	if vacant := stats.TotalCapacity - stats.TotalTenants; vacant > 0 {
		stats.VacantBeds = vacant
	}
	return stats
}
