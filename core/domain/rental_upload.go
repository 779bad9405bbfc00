package domain

// UploadCategory namespaces stored files by owning entity type
type UploadCategory string

const (
	UploadCategoryCar           UploadCategory = "car"
	UploadCategoryAccommodation UploadCategory = "accommodation"
	UploadCategoryProfile       UploadCategory = "profile"
)

// UploadFile is an in-memory uploaded file taken from a multipart form
type UploadFile struct {
	Filename string
	MimeType string
	Data     []byte
}
