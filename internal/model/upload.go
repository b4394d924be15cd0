package model

// UploadFormField is the multipart field carrying the file for POST /nft/upload
const UploadFormField = "file"

// UploadResponse represents response for POST /nft/upload
type UploadResponse struct {
	URL string `json:"url"`
}
