package api

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"ok"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database,omitempty" example:"up"`
}

// UploadResponse is returned by the image upload endpoints.
type UploadResponse struct {
	URL string `json:"url" example:"https://res.cloudinary.com/fitcamp/image/upload/proofs/abc.png"`
}

const (
	Unauthorized  = "Unauthorized"
	InternalError = "Internal server error"
)
