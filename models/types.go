package models

// Appointment status constants
const (
	StatusPending   = "pending"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// AppointmentStatuses lists every accepted appointment status.
var AppointmentStatuses = []string{
	StatusPending,
	StatusAccepted,
	StatusRejected,
	StatusCompleted,
	StatusCancelled,
}

// Domain types. Pointer fields map nullable columns; nil means absent.

type User struct {
	UserID             int64   `json:"user_id"`
	Email              string  `json:"email"`
	GivenName          string  `json:"given_name"`
	Surname            string  `json:"surname"`
	City               *string `json:"city"`
	PhoneNumber        *string `json:"phone_number"`
	ProfileDescription *string `json:"profile_description"`
	Password           string  `json:"password,omitempty"`
}

// Redacted returns a copy of u without the password, for API responses.
func (u User) Redacted() User {
	u.Password = ""
	return u
}

type Caregiver struct {
	CaregiverUserID int64   `json:"caregiver_user_id"`
	Photo           *string `json:"photo"`
	Gender          *string `json:"gender"`
	CaregivingType  string  `json:"caregiving_type"`
	HourlyRate      float64 `json:"hourly_rate"`
}

type Member struct {
	MemberUserID         int64   `json:"member_user_id"`
	HouseRules           *string `json:"house_rules"`
	DependentDescription *string `json:"dependent_description"`
}

type Address struct {
	MemberUserID int64   `json:"member_user_id"`
	HouseNumber  *string `json:"house_number"`
	Street       *string `json:"street"`
	Town         *string `json:"town"`
}

type Job struct {
	JobID                  int64   `json:"job_id"`
	MemberUserID           int64   `json:"member_user_id"`
	RequiredCaregivingType string  `json:"required_caregiving_type"`
	OtherRequirements      *string `json:"other_requirements"`
	DatePosted             Date    `json:"date_posted"`
}

type JobApplication struct {
	CaregiverUserID int64 `json:"caregiver_user_id"`
	JobID           int64 `json:"job_id"`
	DateApplied     Date  `json:"date_applied"`
}

type Appointment struct {
	AppointmentID   int64   `json:"appointment_id"`
	CaregiverUserID int64   `json:"caregiver_user_id"`
	MemberUserID    int64   `json:"member_user_id"`
	AppointmentDate Date    `json:"appointment_date"`
	AppointmentTime Clock   `json:"appointment_time"`
	WorkHours       float64 `json:"work_hours"`
	Status          string  `json:"status"`
}

// Joined listing types

type CaregiverListing struct {
	Caregiver
	GivenName   string  `json:"given_name"`
	Surname     string  `json:"surname"`
	Email       string  `json:"email"`
	City        *string `json:"city"`
	PhoneNumber *string `json:"phone_number"`
}

type MemberListing struct {
	Member
	GivenName   string  `json:"given_name"`
	Surname     string  `json:"surname"`
	Email       string  `json:"email"`
	City        *string `json:"city"`
	PhoneNumber *string `json:"phone_number"`
}

type AddressListing struct {
	Address
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
}

type JobListing struct {
	Job
	GivenName string `json:"given_name"`
	Surname   string `json:"surname"`
	Email     string `json:"email"`
}

type JobApplicationListing struct {
	JobApplication
	CaregiverName          string `json:"caregiver_name"`
	MemberName             string `json:"member_name"`
	RequiredCaregivingType string `json:"required_caregiving_type"`
}

type AppointmentListing struct {
	Appointment
	CaregiverName string `json:"caregiver_name"`
	MemberName    string `json:"member_name"`
}

// Report types

type JobApplicantCount struct {
	JobID                  int64  `json:"job_id"`
	MemberName             string `json:"member_name"`
	RequiredCaregivingType string `json:"required_caregiving_type"`
	ApplicantCount         int    `json:"applicant_count"`
}

type CaregiverHours struct {
	CaregiverUserID int64   `json:"caregiver_user_id"`
	CaregiverName   string  `json:"caregiver_name"`
	TotalHours      float64 `json:"total_hours"`
}

type CaregiverRate struct {
	CaregiverUserID int64   `json:"caregiver_user_id"`
	CaregiverName   string  `json:"caregiver_name"`
	HourlyRate      float64 `json:"hourly_rate"`
	AverageRate     float64 `json:"average_rate"`
}

// CaregiverCost carries the derived total_cost = sum(hourly_rate * work_hours).
type CaregiverCost struct {
	CaregiverUserID int64   `json:"caregiver_user_id"`
	CaregiverName   string  `json:"caregiver_name"`
	HourlyRate      float64 `json:"hourly_rate"`
	TotalHours      float64 `json:"total_hours"`
	TotalCost       float64 `json:"total_cost"`
}

type AppointmentHours struct {
	AppointmentID   int64   `json:"appointment_id"`
	WorkHours       float64 `json:"work_hours"`
	AppointmentDate Date    `json:"appointment_date"`
	AppointmentTime Clock   `json:"appointment_time"`
}

type MemberMatch struct {
	MemberUserID int64   `json:"member_user_id"`
	MemberName   string  `json:"member_name"`
	City         *string `json:"city"`
	HouseRules   *string `json:"house_rules"`
}

// JobApplicationView is one row of job_applications_view.
type JobApplicationView struct {
	CaregiverUserID        int64  `json:"caregiver_user_id"`
	JobID                  int64  `json:"job_id"`
	DateApplied            Date   `json:"date_applied"`
	ApplicantName          string `json:"applicant_name"`
	RequiredCaregivingType string `json:"required_caregiving_type"`
}

// Snapshot holds full table contents for export and import.
type Snapshot struct {
	Users           []User           `json:"users"`
	Caregivers      []Caregiver      `json:"caregivers"`
	Members         []Member         `json:"members"`
	Addresses       []Address        `json:"addresses"`
	Jobs            []Job            `json:"jobs"`
	JobApplications []JobApplication `json:"job_applications"`
	Appointments    []Appointment    `json:"appointments"`
}

// DeletedRows counts rows removed from one table by a delete.
type DeletedRows struct {
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
}

// Response types

type DeleteResponse struct {
	Deleted []DeletedRows `json:"deleted"`
}

type AverageRateResponse struct {
	Status            string   `json:"status"`
	AverageHourlyRate *float64 `json:"average_hourly_rate"`
}

type RowsAffectedResponse struct {
	RowsAffected int64 `json:"rows_affected"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
