package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Default weekly availability applied when a doctor has not configured one
const (
	DefaultWorkStart  = "09:00"
	DefaultWorkEnd    = "17:00"
	DefaultBreakStart = "13:00"
	DefaultBreakEnd   = "14:00"
)

// DoctorProfile holds doctor-specific data including the weekly availability
// profile the scheduler reads. The scheduler never writes this table.
type DoctorProfile struct {
	UserID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	LicenseNumber   string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"license_number"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:numeric(10,2)" json:"consultation_fee"`

	// Weekly availability profile
	Timezone          string     `gorm:"type:varchar(64);not null;default:'UTC'" json:"timezone"`
	WorkStart         string     `gorm:"type:varchar(5);not null;default:'09:00'" json:"work_start"`
	WorkEnd           string     `gorm:"type:varchar(5);not null;default:'17:00'" json:"work_end"`
	BreakStart        string     `gorm:"type:varchar(5);not null;default:'13:00'" json:"break_start"`
	BreakEnd          string     `gorm:"type:varchar(5);not null;default:'14:00'" json:"break_end"`
	AvailableDays     StringList `gorm:"type:jsonb" json:"available_days,omitempty"`
	UnavailableUntil  *time.Time `gorm:"type:date" json:"unavailable_until,omitempty"`
	UnavailableReason string     `gorm:"type:text" json:"unavailable_reason,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID;references:UserID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Location resolves the doctor's IANA timezone, falling back to UTC
func (d *DoctorProfile) Location() *time.Location {
	if d.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(d.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// WorksOn reports whether the doctor takes appointments on the given
// weekday. An empty AvailableDays means the Mon-Fri default.
func (d *DoctorProfile) WorksOn(day time.Weekday) bool {
	if len(d.AvailableDays) == 0 {
		return day != time.Saturday && day != time.Sunday
	}
	name := strings.ToLower(day.String())
	for _, available := range d.AvailableDays {
		if strings.ToLower(available) == name {
			return true
		}
	}
	return false
}

// UnavailableOn reports whether an unavailability window covers the given
// calendar date.
func (d *DoctorProfile) UnavailableOn(date time.Time) bool {
	if d.UnavailableUntil == nil {
		return false
	}
	return !date.After(*d.UnavailableUntil)
}

// WorkingHours returns the configured daily window, applying defaults for
// unset fields.
func (d *DoctorProfile) WorkingHours() (start, end, breakStart, breakEnd string) {
	start, end, breakStart, breakEnd = d.WorkStart, d.WorkEnd, d.BreakStart, d.BreakEnd
	if start == "" {
		start = DefaultWorkStart
	}
	if end == "" {
		end = DefaultWorkEnd
	}
	if breakStart == "" {
		breakStart = DefaultBreakStart
	}
	if breakEnd == "" {
		breakEnd = DefaultBreakEnd
	}
	return start, end, breakStart, breakEnd
}
