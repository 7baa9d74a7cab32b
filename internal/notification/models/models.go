// Package models holds notifications and their per-user delivery rows.
package models

import (
	"time"

	"github.com/google/uuid"

	"registrar/pkg/platform/listing"
	"registrar/pkg/platform/patch"
)

// DefaultExpiry applies when a notification is created without an expiry.
const DefaultExpiry = 30 * 24 * time.Hour

type Notification struct {
	ID                uuid.UUID  `json:"id"`
	NotificationType  string     `json:"notificationType"`
	Title             string     `json:"title"`
	Message           string     `json:"message"`
	RelatedEntityType *string    `json:"relatedEntityType"`
	RelatedEntityID   *uuid.UUID `json:"relatedEntityId"`
	IsUrgent          bool       `json:"isUrgent"`
	CreatedAt         time.Time  `json:"createdAt"`
	ExpiryDate        *time.Time `json:"expiryDate"`
}

// Delivery is a notification as seen by one recipient.
type Delivery struct {
	Notification
	IsRead bool       `json:"isRead"`
	ReadAt *time.Time `json:"readAt"`
}

// Inbox is one page of a user's deliveries plus their unread total.
type Inbox struct {
	listing.Result[Delivery]
	UnreadCount int `json:"unreadCount"`
}

type Filter struct {
	IsRead   *bool
	IsUrgent *bool
}

// Broadcast is the result of fanning a notification out to its recipients.
type Broadcast struct {
	Notification *Notification `json:"notification"`
	UserCount    int           `json:"userCount"`
}

type NotificationRequest struct {
	NotificationType  patch.Field[string]   `json:"notificationType"`
	Title             patch.Field[string]   `json:"title"`
	Message           patch.Field[string]   `json:"message"`
	UserIDs           patch.Field[[]string] `json:"userIds"`
	RelatedEntityType patch.Field[string]   `json:"relatedEntityType"`
	RelatedEntityID   patch.Field[string]   `json:"relatedEntityId"`
	IsUrgent          patch.Field[bool]     `json:"isUrgent"`
	ExpiryDate        patch.Field[string]   `json:"expiryDate"`
}
