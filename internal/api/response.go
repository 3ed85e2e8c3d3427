package api

// ErrorResponse is the envelope returned on failure paths that carry a
// message beyond the bare HTTP status
type ErrorResponse struct {
	Status  string `json:"status"`  // Always "Error"
	Message string `json:"message"` // User-facing message, no internal detail
}

// Errorf builds the error envelope
func Errorf(message string) ErrorResponse {
	return ErrorResponse{Status: "Error", Message: message}
}

// Fixed user-facing messages. Internal failure detail is logged, never
// surfaced here.
const (
	MsgUserExists         = "User already exists"
	MsgRegistrationFailed = "User creation failed! Please check user details and try again."
)
