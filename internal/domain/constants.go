package domain

// Entity names used in errors, logs and events
const (
	EntityJob         = "job"
	EntityApplication = "application"
	EntityResume      = "resume"
	EntityJobAlert    = "job_alert"
)

// ApplicationStatus is the lifecycle state of an application
type ApplicationStatus string

// Application status constants
const (
	StatusApplied      ApplicationStatus = "applied"
	StatusInterviewing ApplicationStatus = "interviewing"
	StatusOffered      ApplicationStatus = "offered"
	StatusRejected     ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status in display order
var ApplicationStatuses = []ApplicationStatus{
	StatusApplied,
	StatusInterviewing,
	StatusOffered,
	StatusRejected,
}

// Valid reports whether s is a known status
func (s ApplicationStatus) Valid() bool {
	for _, known := range ApplicationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AlertFrequency controls how often an alert would be delivered
type AlertFrequency string

const (
	FrequencyDaily   AlertFrequency = "daily"
	FrequencyWeekly  AlertFrequency = "weekly"
	FrequencyMonthly AlertFrequency = "monthly"
)

// Valid reports whether f is a known frequency
func (f AlertFrequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly:
		return true
	default:
		return false
	}
}

// DefaultNextStep is the next step recorded on a fresh application
const DefaultNextStep = "Wait for response"
