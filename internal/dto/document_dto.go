package dto

// PresignUploadRequest asks for a short-lived PUT URL for an invoice PDF.
type PresignUploadRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

// PresignUploadResponse carries the upload URL and the public URL that the
// invoice record will store as pdf_url once the upload completes.
type PresignUploadResponse struct {
	UploadURL string `json:"uploadURL"`
	ObjectKey string `json:"objectKey"`
	PublicURL string `json:"publicURL"`
}
