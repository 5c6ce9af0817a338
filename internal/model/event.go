package model

// EventType names a pipeline event pushed to connected clients
type EventType string

const (
	EventTextExtracted  EventType = "text_extracted"
	EventSummaryReady   EventType = "summary_ready"
	EventStoryGenerated EventType = "story_generated"
	EventPDFReady       EventType = "pdf_ready"
	EventAudioReady     EventType = "audio_ready"
	EventCompoundSaved  EventType = "compound_saved"
)
