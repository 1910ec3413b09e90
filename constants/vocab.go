package constants

// Room is the top-level room type where a defect was found.
type Room string

const (
	RoomCorridor Room = "Коридор"
	RoomLiving   Room = "Комната"
	RoomBathroom Room = "Санузел"
)

var allRooms = []Room{RoomCorridor, RoomLiving, RoomBathroom}

// Location is the defect localization within a room, one per expertise
// document section (floors, ceilings, walls, doors, windows).
type Location string

const (
	LocationFloor        Location = "Пол"
	LocationCeiling      Location = "Потолок"
	LocationWall         Location = "Стена"
	LocationInteriorDoor Location = "Межкомнатная дверь"
	LocationEntranceDoor Location = "Входная дверь"
	LocationWindowBlock  Location = "Оконный блок"
)

var allLocations = []Location{
	LocationFloor,
	LocationCeiling,
	LocationWall,
	LocationInteriorDoor,
	LocationEntranceDoor,
	LocationWindowBlock,
}

// WorkType names the work performed when the defect appeared.
type WorkType string

const (
	WorkFinishing  WorkType = "Отделочные работы"
	WorkPlumbing   WorkType = "Сантехнические работы"
	WorkElectrical WorkType = "Электромонтажные работы"
	WorkTiling     WorkType = "Плиточные работы"
	WorkPainting   WorkType = "Малярные работы"
	WorkPlastering WorkType = "Штукатурные работы"
	WorkDemolition WorkType = "Демонтажные работы"
)

var allWorkTypes = []WorkType{
	WorkFinishing,
	WorkPlumbing,
	WorkElectrical,
	WorkTiling,
	WorkPainting,
	WorkPlastering,
	WorkDemolition,
}

func Rooms() []string     { return roomStrings(allRooms) }
func Locations() []string { return locationStrings(allLocations) }
func WorkTypes() []string { return workTypeStrings(allWorkTypes) }

func IsRoom(s string) bool {
	for _, r := range allRooms {
		if string(r) == s {
			return true
		}
	}
	return false
}

func IsLocation(s string) bool {
	for _, l := range allLocations {
		if string(l) == s {
			return true
		}
	}
	return false
}

func IsWorkType(s string) bool {
	for _, w := range allWorkTypes {
		if string(w) == s {
			return true
		}
	}
	return false
}

func roomStrings(in []Room) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func locationStrings(in []Location) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func workTypeStrings(in []WorkType) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
