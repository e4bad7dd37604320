package utils

const (
	// ActivityIdParamKey is the key for activity ID used in routing parameters.
	ActivityIdParamKey = "activityId"

	// UserIdParamKey is the key for user ID used in routing parameters.
	UserIdParamKey = "userId"

	// ImageFormKey is the key for the uploaded image in multipart form data.
	ImageFormKey = "image"
)
