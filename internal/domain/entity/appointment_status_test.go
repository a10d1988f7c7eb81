package entity

import "testing"

func TestCanTransition_AllowedPaths(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		role string
	}{
		{"doctor confirms", AppointmentStatusScheduled, AppointmentStatusConfirmed, RoleDoctor},
		{"admin confirms", AppointmentStatusScheduled, AppointmentStatusConfirmed, RoleAdmin},
		{"patient cancels scheduled", AppointmentStatusScheduled, AppointmentStatusCancelled, RolePatient},
		{"doctor cancels confirmed", AppointmentStatusConfirmed, AppointmentStatusCancelled, RoleDoctor},
		{"doctor completes", AppointmentStatusConfirmed, AppointmentStatusCompleted, RoleDoctor},
		{"doctor marks no-show", AppointmentStatusConfirmed, AppointmentStatusNoShow, RoleDoctor},
		{"admin reschedules no-show", AppointmentStatusNoShow, AppointmentStatusRescheduled, RoleAdmin},
		{"system resolves reschedule", AppointmentStatusRescheduled, AppointmentStatusScheduled, RoleSystem},
		{"doctor confirms reschedule", AppointmentStatusRescheduled, AppointmentStatusConfirmed, RoleDoctor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !CanTransition(tt.from, tt.to, tt.role) {
				t.Fatalf("CanTransition(%s, %s, %s) = false, want true", tt.from, tt.to, tt.role)
			}
		})
	}
}

func TestCanTransition_RejectedPaths(t *testing.T) {
	tests := []struct {
		name string
		from AppointmentStatus
		to   AppointmentStatus
		role string
	}{
		{"patient confirms", AppointmentStatusScheduled, AppointmentStatusConfirmed, RolePatient},
		{"patient completes", AppointmentStatusConfirmed, AppointmentStatusCompleted, RolePatient},
		{"patient marks no-show", AppointmentStatusConfirmed, AppointmentStatusNoShow, RolePatient},
		{"scheduled to completed", AppointmentStatusScheduled, AppointmentStatusCompleted, RoleAdmin},
		{"cancel completed", AppointmentStatusCompleted, AppointmentStatusCancelled, RoleAdmin},
		{"revive cancelled", AppointmentStatusCancelled, AppointmentStatusScheduled, RoleAdmin},
		{"scheduled to no-show", AppointmentStatusScheduled, AppointmentStatusNoShow, RoleDoctor},
		{"patient resolves reschedule", AppointmentStatusRescheduled, AppointmentStatusScheduled, RolePatient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if CanTransition(tt.from, tt.to, tt.role) {
				t.Fatalf("CanTransition(%s, %s, %s) = true, want false", tt.from, tt.to, tt.role)
			}
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	terminal := []AppointmentStatus{AppointmentStatusCompleted, AppointmentStatusCancelled}
	for _, status := range terminal {
		if !IsTerminalStatus(status) {
			t.Fatalf("IsTerminalStatus(%s) = false, want true", status)
		}
	}

	open := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusNoShow,
		AppointmentStatusRescheduled,
	}
	for _, status := range open {
		if IsTerminalStatus(status) {
			t.Fatalf("IsTerminalStatus(%s) = true, want false", status)
		}
	}
}

func TestTerminalStatusesHaveNoOutgoingTransitions(t *testing.T) {
	for transition := range statusTransitions {
		if IsTerminalStatus(transition.from) {
			t.Fatalf("terminal status %s has outgoing transition to %s", transition.from, transition.to)
		}
	}
}

func TestCanRescheduleFrom(t *testing.T) {
	allowed := []AppointmentStatus{
		AppointmentStatusScheduled,
		AppointmentStatusConfirmed,
		AppointmentStatusNoShow,
	}
	for _, status := range allowed {
		if !CanRescheduleFrom(status) {
			t.Fatalf("CanRescheduleFrom(%s) = false, want true", status)
		}
	}

	blocked := []AppointmentStatus{
		AppointmentStatusCompleted,
		AppointmentStatusCancelled,
		AppointmentStatusRescheduled,
	}
	for _, status := range blocked {
		if CanRescheduleFrom(status) {
			t.Fatalf("CanRescheduleFrom(%s) = true, want false", status)
		}
	}
}

func TestParseAppointmentStatus(t *testing.T) {
	if _, ok := ParseAppointmentStatus("no-show"); !ok {
		t.Fatalf("expected no-show to parse")
	}
	if _, ok := ParseAppointmentStatus("noshow"); ok {
		t.Fatalf("expected noshow to be rejected")
	}
	if _, ok := ParseAppointmentStatus(""); ok {
		t.Fatalf("expected empty status to be rejected")
	}
}
