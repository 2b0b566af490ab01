package rules

import (
	"sort"

	"rentdesk/internal/core/domain"
)

// OccupancyStats is the room-status board for a set of rooms
type OccupancyStats struct {
	Total         int     `json:"total"`
	Available     int     `json:"available"`
	Occupied      int     `json:"occupied"`
	NeedsCleaning int     `json:"needs_cleaning"`
	Maintenance   int     `json:"maintenance"`
	Other         int     `json:"other"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// BuildingOccupancy is OccupancyStats for one building
type BuildingOccupancy struct {
	BuildingID   uint   `json:"building_id"`
	BuildingName string `json:"building_name"`
	OccupancyStats
}

// CalculateOccupancy counts rooms by status. When buildingID is non-nil only
// rooms of that building are counted. Statuses outside the canonical set are
// counted under Other so the buckets always add up to Total.
func CalculateOccupancy(rooms []domain.Room, buildingID *uint) OccupancyStats {
	var stats OccupancyStats
	for _, room := range rooms {
		if buildingID != nil && room.BuildingID != *buildingID {
			continue
		}
		stats.Total++
		switch domain.NormalizeRoomStatus(string(room.Status)) {
		case domain.RoomAvailable:
			stats.Available++
		case domain.RoomOccupied:
			stats.Occupied++
		case domain.RoomNeedsCleaning:
			stats.NeedsCleaning++
		case domain.RoomMaintenance:
			stats.Maintenance++
		default:
			stats.Other++
		}
	}
	stats.OccupancyRate = percentOf(int64(stats.Occupied), int64(stats.Total))
	return stats
}

// OccupancyByBuilding returns one row per building, sorted by name.
// Buildings without rooms are included with zero counts.
func OccupancyByBuilding(buildings []domain.Building, rooms []domain.Room) []BuildingOccupancy {
	out := make([]BuildingOccupancy, 0, len(buildings))
	for _, b := range buildings {
		id := b.ID
		out = append(out, BuildingOccupancy{
			BuildingID:     b.ID,
			BuildingName:   b.Name,
			OccupancyStats: CalculateOccupancy(rooms, &id),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].BuildingName < out[j].BuildingName
	})
	return out
}
