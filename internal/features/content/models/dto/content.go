package dto

// ContentCreate is the submission payload.
// @Description New content submission
type ContentCreate struct {
	Text       string   `json:"text" binding:"required" example:"How to deploy a contract in five minutes."`
	Link       string   `json:"link" example:"https://example.com/post"`
	ImageURL   string   `json:"image_url" example:"https://example.com/cover.png"`
	Categories []string `json:"categories" binding:"required" example:"tutorial,analysis"`
}
