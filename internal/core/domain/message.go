package domain

import "time"

// Message is one entry in the implicit conversation between a creator
// and a business, scoped by the campaign that authorised the
// relationship. Messages are immutable once created. A conversation is
// not stored as its own entity: it is the ordered sequence of messages
// sharing a campaign id and an unordered {creator, business} pair.
type Message struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	SenderID   string    `json:"sender_id"`
	ReceiverID string    `json:"receiver_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}
