package models

// UploadedFile is a multipart part spooled to a local temp file.
// Whoever consumes it is responsible for removing Path.
type UploadedFile struct {
	Path        string
	Filename    string
	ContentType string
	Size        int64
}
