package models

type Attachment struct {
	BaseModel

	FileName string `json:"file_name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
	Origin   string `json:"origin"`
}
