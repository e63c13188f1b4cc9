package enum

type MessageType string

const (
	MessageTypeText   MessageType = "text"
	MessageTypeImage  MessageType = "image"
	MessageTypeVideo  MessageType = "video"
	MessageTypeFile   MessageType = "file"
	MessageTypeSystem MessageType = "system"
)

// NeedsFileURL reports whether messages of this type carry an attachment
// URL instead of (or in addition to) text content.
func (t MessageType) NeedsFileURL() bool {
	switch t {
	case MessageTypeImage, MessageTypeVideo, MessageTypeFile:
		return true
	}
	return false
}
