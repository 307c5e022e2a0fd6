package domain

import (
	"encoding/json"
	"time"
)

// Application tracks a candidate's application to a job.
// JobID is informational; the referenced job may no longer exist.
type Application struct {
	ID          int               `json:"Id" db:"id"`
	JobID       int               `json:"jobId" db:"job_id"`
	JobTitle    string            `json:"jobTitle" db:"job_title"`
	Company     string            `json:"company" db:"company"`
	Location    string            `json:"location" db:"location"`
	AppliedDate time.Time         `json:"appliedDate" db:"applied_date"`
	Status      ApplicationStatus `json:"status" db:"status"`
	Notes       string            `json:"notes" db:"notes"`
	NextStep    string            `json:"nextStep" db:"next_step"`
}

// UnmarshalJSON accepts appliedDate as an RFC3339 instant or a plain date
func (a *Application) UnmarshalJSON(data []byte) error {
	type plain Application
	aux := struct {
		*plain
		AppliedDate *timestamp `json:"appliedDate"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	aux.AppliedDate.assign(&a.AppliedDate)
	return nil
}

func (a Application) GetID() int { return a.ID }

func (a Application) Clone() Application { return a }

// ApplicationPatch holds the fields supplied to an update
type ApplicationPatch struct {
	JobID    *int               `json:"jobId"`
	JobTitle *string            `json:"jobTitle"`
	Company  *string            `json:"company"`
	Location *string            `json:"location"`
	Status   *ApplicationStatus `json:"status"`
	Notes    *string            `json:"notes"`
	NextStep *string            `json:"nextStep"`
}

func (p ApplicationPatch) Apply(a Application) Application {
	setIf(&a.JobID, p.JobID)
	setIf(&a.JobTitle, p.JobTitle)
	setIf(&a.Company, p.Company)
	setIf(&a.Location, p.Location)
	setIf(&a.Status, p.Status)
	setIf(&a.Notes, p.Notes)
	setIf(&a.NextStep, p.NextStep)
	return a
}

// NewApplicationFor builds the application recorded when applying to job
func NewApplicationFor(job Job) Application {
	return Application{
		JobID:    job.ID,
		JobTitle: job.Title,
		Company:  job.Company,
		Location: job.Location,
		Status:   StatusApplied,
		NextStep: DefaultNextStep,
	}
}
