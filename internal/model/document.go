package model

// TextDocument is the persisted shape of the extracted text
type TextDocument struct {
	Text string `json:"text" bson:"text"`
}

// UploadResult is returned after a PDF has been saved and its text extracted
type UploadResult struct {
	Message  string `json:"message"`
	FilePath string `json:"filePath"`
	FileName string `json:"fileName"`
}

// SummaryResponse is the body returned by the summarize endpoint
type SummaryResponse struct {
	Message string `json:"message"`
	Summary string `json:"summary"`
}

// StoryResponse is the body returned by the story generation endpoint
type StoryResponse struct {
	Message string    `json:"message"`
	Story   []Chapter `json:"story"`
}

// CompoundResponse is the body returned by the parameterless generation endpoint
type CompoundResponse struct {
	Message string `json:"message"`
	Data    string `json:"data"`
}
