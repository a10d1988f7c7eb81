package service

import (
	"context"
	"encoding/json"
	"time"

	"clinic-appointment-server/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// EventChannel is the Redis pub/sub channel the notification, medical-record
// and payment collaborators subscribe to.
const EventChannel = "appointments.events"

// Event type names
const (
	EventAppointmentCreated     = "appointment.created"
	EventAppointmentConfirmed   = "appointment.confirmed"
	EventAppointmentCancelled   = "appointment.cancelled"
	EventAppointmentCompleted   = "appointment.completed"
	EventAppointmentNoShow      = "appointment.no-show"
	EventAppointmentRescheduled = "appointment.rescheduled"
)

const publishTimeout = 5 * time.Second

// AppointmentEvent is the payload fanned out on every state change.
// Old/new slot fields are set only for reschedules.
type AppointmentEvent struct {
	ID                uuid.UUID `json:"id"`
	Type              string    `json:"type"`
	AppointmentID     uuid.UUID `json:"appointment_id"`
	AppointmentNumber string    `json:"appointment_number"`
	PatientID         uuid.UUID `json:"patient_id"`
	DoctorID          uuid.UUID `json:"doctor_id"`
	Actor             uuid.UUID `json:"actor"`
	OldDate           string    `json:"old_date,omitempty"`
	OldTime           string    `json:"old_time,omitempty"`
	NewDate           string    `json:"new_date,omitempty"`
	NewTime           string    `json:"new_time,omitempty"`
	OccurredAt        time.Time `json:"occurred_at"`
}

// NewAppointmentEvent builds an event from an appointment and the acting
// principal.
func NewAppointmentEvent(eventType string, appointment *entity.Appointment, actor uuid.UUID) *AppointmentEvent {
	return &AppointmentEvent{
		ID:                uuid.New(),
		Type:              eventType,
		AppointmentID:     appointment.ID,
		AppointmentNumber: appointment.AppointmentNumber,
		PatientID:         appointment.PatientID,
		DoctorID:          appointment.DoctorID,
		Actor:             actor,
		OccurredAt:        time.Now().UTC(),
	}
}

// WithSlotChange attaches the old and new slot of a reschedule.
func (e *AppointmentEvent) WithSlotChange(oldDate, oldTime, newDate, newTime string) *AppointmentEvent {
	e.OldDate = oldDate
	e.OldTime = oldTime
	e.NewDate = newDate
	e.NewTime = newTime
	return e
}

// EventPublisher fans out appointment events. Delivery is best-effort:
// failures are logged and never returned to the originating operation.
type EventPublisher interface {
	Publish(event *AppointmentEvent)
}

type redisEventPublisher struct {
	client *redis.Client
	log    *logrus.Logger
}

func NewEventPublisher(client *redis.Client, log *logrus.Logger) EventPublisher {
	return &redisEventPublisher{client: client, log: log}
}

// Publish serializes the event and publishes it on EventChannel. The
// publish runs against a detached context so a cancelled request cannot
// abort an already-committed write's event.
func (p *redisEventPublisher) Publish(event *AppointmentEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.log.Errorf("Failed to marshal event %s for appointment %s: %+v", event.Type, event.AppointmentID, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := p.client.Publish(ctx, EventChannel, payload).Err(); err != nil {
		p.log.Warnf("Failed to publish event %s for appointment %s (non-fatal): %+v", event.Type, event.AppointmentID, err)
		return
	}

	p.log.Infof("Event published: type=%s, appointment=%s", event.Type, event.AppointmentID)
}
