package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinic-appointment-server/internal/delivery/dto"
	"clinic-appointment-server/internal/service"
	"clinic-appointment-server/internal/usecase"
	"clinic-appointment-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type fakeUsecase struct {
	create           func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	get              func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	list             func(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	updateStatus     func(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.AppointmentResponse, error)
	reschedule       func(ctx context.Context, id uuid.UUID, req *dto.RescheduleRequest) (*dto.AppointmentResponse, error)
	addClinicalNotes func(ctx context.Context, id uuid.UUID, req *dto.ClinicalNotesRequest) (*dto.AppointmentResponse, error)
	getAvailability  func(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error)
	getStatistics    func(ctx context.Context, period string) (*dto.StatisticsResponse, error)
}

func (f *fakeUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return f.create(ctx, req)
}

func (f *fakeUsecase) Get(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	return f.get(ctx, id)
}

func (f *fakeUsecase) List(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	return f.list(ctx, query)
}

func (f *fakeUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateStatusRequest) (*dto.AppointmentResponse, error) {
	return f.updateStatus(ctx, id, req)
}

func (f *fakeUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleRequest) (*dto.AppointmentResponse, error) {
	return f.reschedule(ctx, id, req)
}

func (f *fakeUsecase) AddClinicalNotes(ctx context.Context, id uuid.UUID, req *dto.ClinicalNotesRequest) (*dto.AppointmentResponse, error) {
	return f.addClinicalNotes(ctx, id, req)
}

func (f *fakeUsecase) GetAvailability(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailabilityResponse, error) {
	return f.getAvailability(ctx, doctorID, date)
}

func (f *fakeUsecase) GetStatistics(ctx context.Context, period string) (*dto.StatisticsResponse, error) {
	return f.getStatistics(ctx, period)
}

func newTestHandler(uc usecase.AppointmentUsecase) *AppointmentHandler {
	return NewAppointmentHandler(uc, validator.NewValidator())
}

func TestGetAppointment_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", usecase.ErrAppointmentNotFound, http.StatusNotFound},
		{"forbidden", usecase.ErrForbidden, http.StatusForbidden},
		{"slot taken", service.ErrSlotTaken, http.StatusConflict},
		{"patient conflict", service.ErrPatientConflict, http.StatusConflict},
		{"invalid transition", usecase.ErrInvalidTransition, http.StatusBadRequest},
		{"cancel window", usecase.ErrCancelWindowExpired, http.StatusBadRequest},
		{"doctor inactive", service.ErrDoctorInactive, http.StatusBadRequest},
		{"doctor missing", service.ErrDoctorNotFound, http.StatusNotFound},
		{"opaque failure", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&fakeUsecase{
				get: func(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
					return nil, tt.err
				},
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/"+uuid.NewString(), nil)
			req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
			rec := httptest.NewRecorder()

			h.GetAppointment(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}

func TestGetAppointment_InvalidID(t *testing.T) {
	h := newTestHandler(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/not-a-uuid", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "not-a-uuid"})
	rec := httptest.NewRecorder()

	h.GetAppointment(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateAppointment(t *testing.T) {
	doctorID := uuid.New()
	var captured *dto.CreateAppointmentRequest
	h := newTestHandler(&fakeUsecase{
		create: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			captured = req
			return &dto.AppointmentResponse{ID: uuid.New(), AppointmentNumber: "APT-000042"}, nil
		},
	})

	body := `{
		"doctor_id": "` + doctorID.String() + `",
		"appointment_date": "2026-09-02",
		"appointment_time": "10:00",
		"type": "consultation",
		"reason": "persistent headaches"
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if captured == nil || captured.DoctorID != doctorID {
		t.Fatalf("usecase did not receive the decoded request")
	}
	if !strings.Contains(rec.Body.String(), "APT-000042") {
		t.Fatalf("response body missing appointment payload: %s", rec.Body.String())
	}
}

func TestCreateAppointment_ValidationFailure(t *testing.T) {
	h := newTestHandler(&fakeUsecase{
		create: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			t.Fatal("usecase must not be called on validation failure")
			return nil, nil
		},
	})

	// Missing doctor_id and reason, bad type.
	body := `{"appointment_date": "2026-09-02", "appointment_time": "10:00", "type": "walk-in"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCreateAppointment_MalformedBody(t *testing.T) {
	h := newTestHandler(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.CreateAppointment(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestListAppointments_ForwardsQuery(t *testing.T) {
	var captured *dto.ListAppointmentsQuery
	h := newTestHandler(&fakeUsecase{
		list: func(ctx context.Context, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
			captured = query
			return &dto.AppointmentListResponse{Page: query.Page, Limit: query.Limit}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments?status=confirmed&page=2&limit=5&date_from=2026-09-01", nil)
	rec := httptest.NewRecorder()

	h.ListAppointments(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if captured.Status != "confirmed" || captured.Page != 2 || captured.Limit != 5 || captured.DateFrom != "2026-09-01" {
		t.Fatalf("query not forwarded: %+v", captured)
	}
}

func TestGetAvailability_InvalidDoctorID(t *testing.T) {
	h := newTestHandler(&fakeUsecase{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/availability/nope", nil)
	req = mux.SetURLVars(req, map[string]string{"doctorId": "nope"})
	rec := httptest.NewRecorder()

	h.GetAvailability(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestGetStatistics_ForwardsPeriod(t *testing.T) {
	h := newTestHandler(&fakeUsecase{
		getStatistics: func(ctx context.Context, period string) (*dto.StatisticsResponse, error) {
			if period != "month" {
				t.Fatalf("period = %q, want month", period)
			}
			return &dto.StatisticsResponse{Period: period}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/statistics?period=month", nil)
	rec := httptest.NewRecorder()

	h.GetStatistics(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}
