package res

type FileResponse struct {
	ID               string `json:"id"`
	Filename         string `json:"filename"`
	OriginalFilename string `json:"originalFilename"`
	MimeType         string `json:"mimeType"`
	FileSize         int64  `json:"fileSize"`
	URL              string `json:"url"`
	CreatedAt        string `json:"createdAt"`
}
