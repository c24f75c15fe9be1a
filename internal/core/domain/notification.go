package domain

import (
	"regexp"
	"time"
)

// NotificationType enumerates the notice kinds.
type NotificationType string

const (
	NotifyAnswer  NotificationType = "answer"
	NotifyComment NotificationType = "comment"
	NotifyMention NotificationType = "mention"
	NotifyVote    NotificationType = "vote"
	NotifyAccept  NotificationType = "accept"
	NotifyAdmin   NotificationType = "admin"
)

const (
	MaxBroadcastTitleLen   = 100
	MaxBroadcastMessageLen = 500
)

// Notification is a per-recipient notice. Only IsRead changes after creation.
type Notification struct {
	ID          string           `json:"id" bson:"_id"`
	RecipientID string           `json:"recipientId" bson:"recipient_id"`
	SenderID    string           `json:"senderId,omitempty" bson:"sender_id,omitempty"`
	SenderName  string           `json:"senderName,omitempty" bson:"sender_name,omitempty"`
	Type        NotificationType `json:"type" bson:"type"`
	Title       string           `json:"title" bson:"title"`
	Message     string           `json:"message" bson:"message"`
	QuestionID  string           `json:"questionId,omitempty" bson:"question_id,omitempty"`
	AnswerID    string           `json:"answerId,omitempty" bson:"answer_id,omitempty"`
	IsRead      bool             `json:"isRead" bson:"is_read"`
	Data        map[string]any   `json:"data,omitempty" bson:"data,omitempty"`
	CreatedAt   time.Time        `json:"createdAt" bson:"created_at"`
}

// PushEvent is the payload handed to the real-time channel of a recipient.
type PushEvent struct {
	NotificationID string           `json:"notificationId,omitempty"`
	Type           NotificationType `json:"type"`
	Message        string           `json:"message"`
}

var mentionPattern = regexp.MustCompile(`@(\w+)`)

// ExtractMentions returns the distinct usernames mentioned in body, in order
// of first appearance.
func ExtractMentions(body string) []string {
	matches := mentionPattern.FindAllStringSubmatch(body, -1)
	seen := make(map[string]struct{}, len(matches))
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		name := m[1]
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
