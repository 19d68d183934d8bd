package dto

import (
	"time"

	"beacon-attendance/modules/beacon/entity"
)

type CreateBeaconRequest struct {
	ID       string  `json:"id"`
	Major    int     `json:"major"`
	Minor    int     `json:"minor"`
	Location string  `json:"location"`
	Name     *string `json:"name"`
}

// UpdateBeaconRequest only changes the fields that are present.
type UpdateBeaconRequest struct {
	Major    *int    `json:"major"`
	Minor    *int    `json:"minor"`
	Location *string `json:"location"`
	Name     *string `json:"name"`
}

type BeaconResponse struct {
	ID        string     `json:"id"`
	Major     int        `json:"major"`
	Minor     int        `json:"minor"`
	Location  string     `json:"location"`
	Name      *string    `json:"name,omitempty"`
	LastUsed  *time.Time `json:"last_used,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func ToBeaconResponse(b *entity.Beacon, loc *time.Location) *BeaconResponse {
	resp := &BeaconResponse{
		ID:        b.ID,
		Major:     b.Major,
		Minor:     b.Minor,
		Location:  b.Location,
		Name:      b.Name,
		CreatedAt: b.CreatedAt.In(loc),
	}
	if b.LastUsed != nil {
		lastUsed := b.LastUsed.In(loc)
		resp.LastUsed = &lastUsed
	}
	return resp
}

func ToBeaconResponses(beacons []entity.Beacon, loc *time.Location) []*BeaconResponse {
	out := make([]*BeaconResponse, 0, len(beacons))
	for i := range beacons {
		out = append(out, ToBeaconResponse(&beacons[i], loc))
	}
	return out
}
