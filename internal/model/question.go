package model

// OptionKeys returns the four answer keys every quiz question carries, in display order
func OptionKeys() []string {
	return []string{"a", "b", "c", "d"}
}

// Question is a multiple-choice quiz question attached to a chapter
type Question struct {
	Question      string            `json:"question" bson:"question"`
	Options       map[string]string `json:"options" bson:"options"`               // a, b, c, d -> option text
	CorrectAnswer string            `json:"correct_answer" bson:"correct_answer"` // single character, not validated
}
