package schemas

// CustomError is the mapped form of every failure that reaches the boundary.
// Handlers pick one from the catalog below; the raw cause is only logged.
type CustomError struct {
	Message string `json:"message"`
}

var (
	// BadRequest is returned when the request payload fails validation. Maps to 422.
	BadRequest = &CustomError{Message: "Invalid inputs passed, please check your data."}

	// Unauthenticated is returned when the bearer token is missing, invalid or expired. Maps to 401.
	Unauthenticated = &CustomError{Message: "Authentication failed, please log in and try again."}

	// InvalidCredentials is returned on a failed login attempt. Maps to 401.
	InvalidCredentials = &CustomError{Message: "Invalid credentials, could not log you in."}

	// Forbidden is returned when a valid identity is not the owner of the resource. Maps to 403.
	Forbidden = &CustomError{Message: "You are not allowed to modify this activity."}

	// UserNotFound is returned when the referenced user does not exist. Maps to 404.
	UserNotFound = &CustomError{Message: "Could not find a user for the provided id."}

	// ActivityNotFound is returned when the referenced activity does not exist. Maps to 404.
	ActivityNotFound = &CustomError{Message: "Could not find an activity for the provided id."}

	// UserAlreadyExists is returned when the signup email is already registered. Maps to 422.
	UserAlreadyExists = &CustomError{Message: "User exists already, please login instead."}

	// DatabaseError is returned when the store is unreachable or a transaction aborted. Maps to 500.
	DatabaseError = &CustomError{Message: "Something went wrong, please try again later."}

	// UpstreamError is returned when the geocoding collaborator failed. Maps to 502.
	UpstreamError = &CustomError{Message: "Could not resolve the provided address, please try again later."}

	// InternalServerError covers failures outside the store and collaborators. Maps to 500.
	InternalServerError = &CustomError{Message: "An unknown error occurred, please try again later."}
)
