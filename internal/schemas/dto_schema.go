package schemas

// ErrorDTO is a struct that represents an error response
// Message is the mapped error message, internal detail never crosses the boundary
type ErrorDTO struct {
	Message string `json:"message"`
}

// MetadataDTO is a struct that represents the version response of the root route
type MetadataDTO struct {
	ApiVersion string `json:"apiVersion"`
	ApiName    string `json:"apiName"`
}

// LocationDTO is a struct that represents a coordinate pair
type LocationDTO struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lng"`
}

// UserDTO is a struct that represents a user response
// The password hash is never part of a response
type UserDTO struct {
	UserId string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// AuthDTO is a struct that represents a signup or login response
// Token is the bearer token binding subsequent requests to the user
type AuthDTO struct {
	UserId string `json:"userId"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// ActivityDTO is a struct that represents an activity response
// Creator is the ID of the owning user
type ActivityDTO struct {
	ActivityId  string      `json:"activityId"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Address     string      `json:"address"`
	Location    LocationDTO `json:"location"`
	ImageURL    string      `json:"imageUrl"`
	Creator     string      `json:"creator"`
}

// DeletionDTO is a struct that represents a delete confirmation response
type DeletionDTO struct {
	Message string `json:"message"`
}
