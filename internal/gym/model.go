package gym

import "time"

type Gym struct {
	ID                 string     `db:"id" json:"id"`
	Name               string     `db:"name" json:"name"`
	Slug               string     `db:"slug" json:"slug"`
	LocationText       string     `db:"location_text" json:"locationText"`
	Address            string     `db:"address" json:"address"`
	CityID             string     `db:"city_id" json:"cityId"`
	MainImageURL       *string    `db:"main_image_url" json:"mainImageUrl"`
	ThumbnailURL       *string    `db:"thumbnail_url" json:"thumbnailUrl"`
	IsPopular          bool       `db:"is_popular" json:"isPopular"`
	OpeningStartTime   *string    `db:"opening_start_time" json:"openingStartTime"`
	OpeningEndTime     *string    `db:"opening_end_time" json:"openingEndTime"`
	ContactPersonName  *string    `db:"contact_person_name" json:"contactPersonName"`
	ContactPersonPhone *string    `db:"contact_person_phone" json:"contactPersonPhone"`
	Latitude           *float64   `db:"latitude" json:"latitude"`
	Longitude          *float64   `db:"longitude" json:"longitude"`
	CreatedAt          time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updatedAt"`
	City               *CityRef   `db:"-" json:"city"`
	Images             []Image    `db:"-" json:"images"`
	Facilities         []Facility `db:"-" json:"facilities"`
}

type CityRef struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
	Slug string `db:"slug" json:"slug"`
}

type Image struct {
	ID        string `db:"id" json:"id"`
	GymID     string `db:"gym_id" json:"-"`
	URL       string `db:"url" json:"url"`
	SortOrder int    `db:"sort_order" json:"sortOrder"`
}

type Facility struct {
	GymID       string  `db:"gym_id" json:"-"`
	ID          string  `db:"id" json:"id"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	IconURL     *string `db:"icon_url" json:"iconUrl"`
}

type ImageInput struct {
	URL       string `json:"url"`
	SortOrder *int   `json:"sortOrder"`
}

// GymRequest is shared by create and update. On update facilities are
// always replaced; images only when the field is present.
type GymRequest struct {
	Name               string       `json:"name"`
	Slug               string       `json:"slug"`
	LocationText       string       `json:"locationText"`
	Address            string       `json:"address"`
	CityID             string       `json:"cityId"`
	MainImageURL       string       `json:"mainImageUrl"`
	ThumbnailURL       string       `json:"thumbnailUrl"`
	IsPopular          bool         `json:"isPopular"`
	OpeningStartTime   string       `json:"openingStartTime"`
	OpeningEndTime     string       `json:"openingEndTime"`
	ContactPersonName  string       `json:"contactPersonName"`
	ContactPersonPhone string       `json:"contactPersonPhone"`
	Latitude           *float64     `json:"latitude"`
	Longitude          *float64     `json:"longitude"`
	FacilityIDs        []string     `json:"facilityIds"`
	Images             []ImageInput `json:"images"`
}

type Filter struct {
	CitySlug string
	Query    string
}

// Card is the storefront list item.
type Card struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Name         string   `json:"name"`
	Location     string   `json:"location"`
	Thumbnail    string   `json:"thumbnail"`
	MainImage    string   `json:"mainImage"`
	Address      string   `json:"address"`
	IsPopular    bool     `json:"isPopular"`
	City         *CityRef `json:"city"`
	OpeningHours *string  `json:"openingHours"`
}

// Detail is the storefront gym page.
type Detail struct {
	Card
	Images             []string         `json:"images"`
	Facilities         []PublicFacility `json:"facilities"`
	Latitude           *float64         `json:"latitude"`
	Longitude          *float64         `json:"longitude"`
	ContactPersonName  *string          `json:"contactPersonName"`
	ContactPersonPhone *string          `json:"contactPersonPhone"`
}

type PublicFacility struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	IconURL     *string `json:"iconUrl"`
}
