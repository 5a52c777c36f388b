package models

// Message is the externally visible view of one stored message body. It is
// derived from a tab's sequence plus the positional index; nothing beyond
// the content string is persisted.
type Message struct {
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Content   string `json:"content"`
	Category  string `json:"category"`
	TabID     string `json:"tabId"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// DeletionReceipt describes a completed delete.
type DeletionReceipt struct {
	MessageID string `json:"messageId"`
	TabID     string `json:"tabId"`
	Category  string `json:"category"`
	DeletedAt string `json:"deletedAt"`
}

// Category is one configured tab identity.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
