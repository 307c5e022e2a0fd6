package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// Job is a posted job listing
type Job struct {
	ID           int       `json:"Id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Company      string    `json:"company" db:"company"`
	Location     string    `json:"location" db:"location"`
	Type         string    `json:"type" db:"type"`
	Industry     string    `json:"industry" db:"industry"`
	Salary       string    `json:"salary" db:"salary"`
	Description  string    `json:"description" db:"description"`
	Requirements []string  `json:"requirements" db:"-"`
	PostedDate   time.Time `json:"postedDate" db:"posted_date"`
}

// UnmarshalJSON accepts postedDate as an RFC3339 instant or a plain date
func (j *Job) UnmarshalJSON(data []byte) error {
	type plain Job
	aux := struct {
		*plain
		PostedDate *timestamp `json:"postedDate"`
	}{plain: (*plain)(j)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	aux.PostedDate.assign(&j.PostedDate)
	return nil
}

func (j Job) GetID() int { return j.ID }

// Clone returns a copy that shares no memory with j
func (j Job) Clone() Job {
	j.Requirements = slices.Clone(j.Requirements)
	return j
}

// JobPatch holds the fields supplied to an update; nil fields are left untouched
type JobPatch struct {
	Title        *string   `json:"title"`
	Company      *string   `json:"company"`
	Location     *string   `json:"location"`
	Type         *string   `json:"type"`
	Industry     *string   `json:"industry"`
	Salary       *string   `json:"salary"`
	Description  *string   `json:"description"`
	Requirements *[]string `json:"requirements"`
}

// Apply merges the patch over j
func (p JobPatch) Apply(j Job) Job {
	setIf(&j.Title, p.Title)
	setIf(&j.Company, p.Company)
	setIf(&j.Location, p.Location)
	setIf(&j.Type, p.Type)
	setIf(&j.Industry, p.Industry)
	setIf(&j.Salary, p.Salary)
	setIf(&j.Description, p.Description)
	if p.Requirements != nil {
		j.Requirements = slices.Clone(*p.Requirements)
	}
	return j
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
