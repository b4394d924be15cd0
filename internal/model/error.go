package model

// Error codes returned in ErrorResponse.Code
const (
	CodeProviderUnavailable   = "PROVIDER_UNAVAILABLE"
	CodeNoAccounts            = "NO_ACCOUNTS"
	CodeAuthorizationRejected = "AUTHORIZATION_REJECTED"
	CodeUploadFailed          = "UPLOAD_FAILED"
	CodeBadRequest            = "BAD_REQUEST"
	CodeInternal              = "INTERNAL"
)

// ErrorResponse is the consistent JSON structure for all API error responses.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
