package dto

// SuccessResponse is the acknowledgement returned by the public form endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// ResumeUploadResponse describes an uploaded resume
type ResumeUploadResponse struct {
	Message      string `json:"message"`
	URL          string `json:"url"`
	PublicID     string `json:"public_id"`
	ResourceType string `json:"resource_type"`
	Bytes        int64  `json:"bytes"`
	Format       string `json:"format"`
	OriginalName string `json:"originalname"`
}
