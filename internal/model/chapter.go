package model

// Chapter is one segment of a generated story together with its quiz questions
type Chapter struct {
	ChapterNumber int        `json:"chapter_number" bson:"chapter_number"` // 1-based, assigned by parse order
	Title         string     `json:"title" bson:"title"`
	Text          string     `json:"text" bson:"text"`
	Questions     []Question `json:"questions" bson:"questions"`
}
