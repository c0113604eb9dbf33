package chat

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"clinichub/models"
	"clinichub/utils"

	"go.uber.org/zap"
)

func (s *DefaultChatService) client() (ChatClient, error) {
	if s.Client == nil {
		return nil, fmt.Errorf("chat is not configured: %w", models.ErrUnavailable)
	}
	return s.Client, nil
}

// Token registers the caller with the chat provider and issues a user token.
func (s *DefaultChatService) Token(ctx context.Context, actor models.Actor) (*models.ChatToken, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	usr, err := s.Users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if err := c.UpsertUsers(ctx, ChatUser{ID: usr.ID, Name: usr.Name, Image: usr.Image}); err != nil {
		return nil, fmt.Errorf("failed to register chat user: %w", err)
	}
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	token, err := c.CreateToken(usr.ID, s.now().Add(ttl))
	if err != nil {
		return nil, fmt.Errorf("failed to create chat token: %w", err)
	}
	return &models.ChatToken{
		APIKey:              s.APIKey,
		UserID:              usr.ID,
		Token:               token,
		PollIntervalSeconds: s.PollSeconds,
	}, nil
}

// eligible reports whether appt may have an open chat. Completed appointments
// keep it for a week after their start time.
func (s *DefaultChatService) eligible(appt models.Appointment) bool {
	if appt.Status.IsActive() {
		return true
	}
	return appt.Status == models.StatusCompleted && s.now().Sub(appt.StartAt) <= completedChatWindow
}

func view(appt models.Appointment, actorID string) models.ChannelView {
	v := models.ChannelView{
		ChannelID:         ChannelID(appt.ID),
		AppointmentID:     appt.ID,
		AppointmentStatus: appt.Status,
		Date:              appt.Date,
		Time:              appt.Time,
	}
	if actorID == appt.DoctorID {
		v.PeerID, v.PeerName = appt.PatientID, appt.Patient.Name
	} else {
		v.PeerID, v.PeerName = appt.DoctorID, "Dr. "+appt.Doctor.Name
	}
	return v
}

// EnsureChannel creates the chat channel of an appointment the caller takes part in.
func (s *DefaultChatService) EnsureChannel(ctx context.Context, actor models.Actor, appointmentID string) (*models.ChannelView, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}
	appt, err := s.Appointments.GetByID(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !appt.InvolvesUser(actor.ID) {
		return nil, fmt.Errorf("appointment %s: %w", appointmentID, models.ErrForbidden)
	}
	if !s.eligible(*appt) {
		return nil, fmt.Errorf("chat is closed for %s appointments: %w", appt.Status, models.ErrConflict)
	}

	if err := c.UpsertUsers(ctx,
		ChatUser{ID: appt.PatientID, Name: appt.Patient.Name},
		ChatUser{ID: appt.DoctorID, Name: "Dr. " + appt.Doctor.Name, Image: appt.Doctor.Image},
	); err != nil {
		return nil, fmt.Errorf("failed to register chat users: %w", err)
	}
	channelID := ChannelID(appt.ID)
	if err := c.EnsureChannel(ctx, channelID, actor.ID, []string{appt.PatientID, appt.DoctorID}); err != nil {
		return nil, fmt.Errorf("failed to create channel: %w", err)
	}
	if appt.ChannelID != channelID {
		if err := s.Appointments.SetChannelID(ctx, appt.ID, channelID); err != nil {
			return nil, err
		}
	}
	v := view(*appt, actor.ID)
	return &v, nil
}

// Channels reconciles the caller's chat channels with their appointments.
// Channels of closed appointments are hidden; open appointments without a
// channel come back as pending.
func (s *DefaultChatService) Channels(ctx context.Context, actor models.Actor) (*models.ChannelList, error) {
	c, err := s.client()
	if err != nil {
		return nil, err
	}

	filter := models.AppointmentFilter{}
	switch actor.Role {
	case models.RolePatient:
		filter.PatientID = actor.ID
	case models.RoleDoctor:
		filter.DoctorID = actor.ID
	default:
		return nil, fmt.Errorf("chat is for patients and doctors: %w", models.ErrForbidden)
	}
	appts, err := s.Appointments.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	open := make(map[string]models.Appointment, len(appts))
	for _, a := range appts {
		if s.eligible(a) {
			open[a.ID] = a
		}
	}

	remote, err := c.QueryChannels(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	list := &models.ChannelList{
		Channels:            []models.ChannelView{},
		Pending:             []models.ChannelView{},
		PollIntervalSeconds: s.PollSeconds,
	}
	seen := map[string]bool{}
	for _, ch := range remote {
		apptID, ok := strings.CutPrefix(ch.ID, "appt-")
		if !ok {
			continue
		}
		appt, ok := open[apptID]
		if !ok {
			continue
		}
		seen[apptID] = true
		v := view(appt, actor.ID)
		last := ch.LastMessageAt
		if last.IsZero() {
			last = ch.CreatedAt
		}
		if !last.IsZero() {
			v.LastMessageAt = &last
		}
		list.Channels = append(list.Channels, v)

		if appt.ChannelID == "" {
			if err := s.Appointments.SetChannelID(ctx, appt.ID, ch.ID); err != nil {
				utils.GetLogger().Warn("Failed to backfill channel id", zap.String("appointmentID", appt.ID), zap.Error(err))
			}
		}
	}
	for id, appt := range open {
		if !seen[id] {
			list.Pending = append(list.Pending, view(appt, actor.ID))
		}
	}

	sort.SliceStable(list.Channels, func(i, j int) bool {
		a, b := list.Channels[i].LastMessageAt, list.Channels[j].LastMessageAt
		if a == nil || b == nil {
			return a != nil
		}
		return a.After(*b)
	})
	sort.Slice(list.Pending, func(i, j int) bool {
		if list.Pending[i].Date != list.Pending[j].Date {
			return list.Pending[i].Date < list.Pending[j].Date
		}
		return list.Pending[i].Time < list.Pending[j].Time
	})
	return list, nil
}
