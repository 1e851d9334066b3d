package model

import "time"

// Space type values stored in spaces.space_type.
const (
	SpaceTypeStudy   = "STUDY"
	SpaceTypeParty   = "PARTY"
	SpaceTypeMeeting = "MEETING"
)

// ValidSpaceType reports whether t is one of the known space types.
func ValidSpaceType(t string) bool {
	switch t {
	case SpaceTypeStudy, SpaceTypeParty, SpaceTypeMeeting:
		return true
	}
	return false
}

// Space status values stored in spaces.space_status. Only OPEN
// spaces accept new reservations.
const (
	SpaceStatusOpen   = "OPEN"
	SpaceStatusClosed = "CLOSED"
)

// Space mirrors the `spaces` table. A space is a bookable room with
// a flat hourly price and a hard capacity. Soft deletion works the
// same way as for users: DeletedAt is set and the catalog queries
// filter deleted rows out, while historical reservations keep
// pointing at the row.
//
// Fields:
//  ID           – primary key identifier.
//  Name         – display name of the space.
//  Description  – free-text description.
//  ImageURL     – reference to a presentation image.
//  SpaceType    – STUDY, PARTY or MEETING.
//  PricePerHour – positive price in the smallest currency unit.
//  Location     – free-text location.
//  Capacity     – maximum number of people.
//  SpaceStatus  – OPEN or CLOSED.
//  OwnerID      – user that registered the space.
//  DeletedAt    – soft-delete timestamp (nil while listed).
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type Space struct {
	ID           uint64     // spaces.id
	Name         string     // spaces.space_name
	Description  string     // spaces.description
	ImageURL     string     // spaces.image_url
	SpaceType    string     // spaces.space_type
	PricePerHour int        // spaces.price_per_hour
	Location     string     // spaces.location
	Capacity     int        // spaces.capacity
	SpaceStatus  string     // spaces.space_status
	OwnerID      uint64     // spaces.owner_id
	DeletedAt    *time.Time // spaces.deleted_at (nullable)
	CreatedAt    time.Time  // spaces.created_at
	UpdatedAt    time.Time  // spaces.updated_at
}

// Bookable reports whether a reservation may target this space:
// status OPEN and not soft-deleted.
func (s Space) Bookable() bool {
	return s.SpaceStatus == SpaceStatusOpen && s.DeletedAt == nil
}
