package domain

import (
	"encoding/json"
	"slices"
	"time"
)

// JobAlert is a saved search. Alerts hold criteria only; delivery is not modelled.
type JobAlert struct {
	ID          int            `json:"Id" db:"id"`
	Keywords    []string       `json:"keywords" db:"-"`
	Locations   []string       `json:"locations" db:"-"`
	Industries  []string       `json:"industries" db:"-"`
	Frequency   AlertFrequency `json:"frequency" db:"frequency"`
	CreatedDate time.Time      `json:"createdDate" db:"created_date"`
	IsActive    bool           `json:"isActive" db:"is_active"`
}

// UnmarshalJSON accepts createdDate as an RFC3339 instant or a plain date
func (a *JobAlert) UnmarshalJSON(data []byte) error {
	type plain JobAlert
	aux := struct {
		*plain
		CreatedDate *timestamp `json:"createdDate"`
	}{plain: (*plain)(a)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	aux.CreatedDate.assign(&a.CreatedDate)
	return nil
}

func (a JobAlert) GetID() int { return a.ID }

func (a JobAlert) Clone() JobAlert {
	a.Keywords = slices.Clone(a.Keywords)
	a.Locations = slices.Clone(a.Locations)
	a.Industries = slices.Clone(a.Industries)
	return a
}

type JobAlertPatch struct {
	Keywords   *[]string       `json:"keywords"`
	Locations  *[]string       `json:"locations"`
	Industries *[]string       `json:"industries"`
	Frequency  *AlertFrequency `json:"frequency"`
	IsActive   *bool           `json:"isActive"`
}

func (p JobAlertPatch) Apply(a JobAlert) JobAlert {
	if p.Keywords != nil {
		a.Keywords = slices.Clone(*p.Keywords)
	}
	if p.Locations != nil {
		a.Locations = slices.Clone(*p.Locations)
	}
	if p.Industries != nil {
		a.Industries = slices.Clone(*p.Industries)
	}
	setIf(&a.Frequency, p.Frequency)
	setIf(&a.IsActive, p.IsActive)
	return a
}
