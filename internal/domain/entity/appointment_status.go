package entity

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled   AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed   AppointmentStatus = "confirmed"
	AppointmentStatusCompleted   AppointmentStatus = "completed"
	AppointmentStatusCancelled   AppointmentStatus = "cancelled"
	AppointmentStatusNoShow      AppointmentStatus = "no-show"
	AppointmentStatusRescheduled AppointmentStatus = "rescheduled"
)

// ParseAppointmentStatus validates a raw status string
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusCompleted,
		AppointmentStatusCancelled, AppointmentStatusNoShow, AppointmentStatusRescheduled:
		return AppointmentStatus(s), true
	}
	return "", false
}

type statusTransition struct {
	from AppointmentStatus
	to   AppointmentStatus
}

// statusTransitions maps each legal transition to the actor roles allowed
// to perform it. Transitions absent from the map are illegal for everyone.
var statusTransitions = map[statusTransition][]string{
	{AppointmentStatusScheduled, AppointmentStatusConfirmed}:   {RoleDoctor, RoleAdmin},
	{AppointmentStatusScheduled, AppointmentStatusCancelled}:   {RolePatient, RoleDoctor, RoleAdmin},
	{AppointmentStatusConfirmed, AppointmentStatusCompleted}:   {RoleDoctor, RoleAdmin},
	{AppointmentStatusConfirmed, AppointmentStatusCancelled}:   {RolePatient, RoleDoctor, RoleAdmin},
	{AppointmentStatusConfirmed, AppointmentStatusNoShow}:      {RoleDoctor, RoleAdmin},
	{AppointmentStatusNoShow, AppointmentStatusRescheduled}:    {RoleDoctor, RoleAdmin},
	{AppointmentStatusRescheduled, AppointmentStatusScheduled}: {RoleSystem},
	{AppointmentStatusRescheduled, AppointmentStatusConfirmed}: {RoleDoctor, RoleAdmin},
}

// TransitionExists reports whether from -> to is in the transition table,
// regardless of actor.
func TransitionExists(from, to AppointmentStatus) bool {
	_, ok := statusTransitions[statusTransition{from, to}]
	return ok
}

// CanTransition reports whether the given actor role may move an
// appointment from -> to.
func CanTransition(from, to AppointmentStatus, actorRole string) bool {
	roles, ok := statusTransitions[statusTransition{from, to}]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == actorRole {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether no transition leaves the given status.
func IsTerminalStatus(s AppointmentStatus) bool {
	return s == AppointmentStatusCompleted || s == AppointmentStatusCancelled
}

// CanRescheduleFrom reports whether the reschedule compound operation is
// allowed to start from the given status.
func CanRescheduleFrom(s AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusNoShow:
		return true
	}
	return false
}
