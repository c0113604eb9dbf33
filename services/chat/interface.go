package chat

import (
	"context"
	"time"

	appointmentRepo "clinichub/database/repository/appointment"
	userRepo "clinichub/database/repository/user"
	"clinichub/models"
)

// ChannelType is the Stream channel type used for appointment threads.
const ChannelType = "messaging"

// completedChatWindow is how long a completed appointment keeps its chat.
const completedChatWindow = 7 * 24 * time.Hour

// ChatService issues chat credentials and reconciles chat channels with appointments.
type ChatService interface {
	Token(ctx context.Context, actor models.Actor) (*models.ChatToken, error)
	EnsureChannel(ctx context.Context, actor models.Actor, appointmentID string) (*models.ChannelView, error)
	Channels(ctx context.Context, actor models.Actor) (*models.ChannelList, error)
}

// ChatUser is a user as registered with the chat provider.
type ChatUser struct {
	ID    string
	Name  string
	Image string
}

// ChatClient is the subset of the chat provider API the service needs.
type ChatClient interface {
	UpsertUsers(ctx context.Context, users ...ChatUser) error
	CreateToken(userID string, expire time.Time) (string, error)
	EnsureChannel(ctx context.Context, channelID, creatorID string, members []string) error
	QueryChannels(ctx context.Context, userID string) ([]models.ChatChannel, error)
}

// DefaultChatService is the production implementation.
type DefaultChatService struct {
	Client       ChatClient
	Appointments appointmentRepo.AppointmentRepository
	Users        userRepo.UserRepository
	APIKey       string
	PollSeconds  int
	TokenTTL     time.Duration
	Now          func() time.Time
}

func (s *DefaultChatService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// ChannelID returns the channel of an appointment.
func ChannelID(appointmentID string) string {
	return "appt-" + appointmentID
}
