package models

import "time"

// ChatToken is what a client needs to connect to the chat service.
type ChatToken struct {
	APIKey              string `json:"apiKey"`
	UserID              string `json:"userId"`
	Token               string `json:"token"`
	PollIntervalSeconds int    `json:"pollIntervalSeconds"`
}

// ChatChannel is a channel as reported by the chat service.
type ChatChannel struct {
	ID            string
	MemberIDs     []string
	LastMessageAt time.Time
	CreatedAt     time.Time
}

// ChannelView is a channel reconciled with the appointment it belongs to.
type ChannelView struct {
	ChannelID         string            `json:"channelId"`
	AppointmentID     string            `json:"appointmentId"`
	PeerID            string            `json:"peerId"`
	PeerName          string            `json:"peerName"`
	AppointmentStatus AppointmentStatus `json:"appointmentStatus"`
	Date              string            `json:"date"`
	Time              string            `json:"time"`
	LastMessageAt     *time.Time        `json:"lastMessageAt,omitempty"`
}

// ChannelList is the reconciled channel feed polled by the messages page.
type ChannelList struct {
	Channels            []ChannelView `json:"channels"`
	Pending             []ChannelView `json:"pending"`
	PollIntervalSeconds int           `json:"pollIntervalSeconds"`
}

// ChannelRequest asks for the channel of an appointment.
type ChannelRequest struct {
	AppointmentID string `json:"appointmentId" binding:"required"`
}
