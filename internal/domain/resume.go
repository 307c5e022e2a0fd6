package domain

import (
	"encoding/json"
	"time"
)

// Resume is an uploaded resume file. FileURL is an opaque handle.
type Resume struct {
	ID         int       `json:"Id" db:"id"`
	FileName   string    `json:"fileName" db:"file_name"`
	UploadDate time.Time `json:"uploadDate" db:"upload_date"`
	FileURL    string    `json:"fileUrl" db:"file_url"`
	IsActive   bool      `json:"isActive" db:"is_active"`
}

// UnmarshalJSON accepts uploadDate as an RFC3339 instant or a plain date
func (r *Resume) UnmarshalJSON(data []byte) error {
	type plain Resume
	aux := struct {
		*plain
		UploadDate *timestamp `json:"uploadDate"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	aux.UploadDate.assign(&r.UploadDate)
	return nil
}

func (r Resume) GetID() int { return r.ID }

func (r Resume) Clone() Resume { return r }

type ResumePatch struct {
	FileName *string `json:"fileName"`
	FileURL  *string `json:"fileUrl"`
	IsActive *bool   `json:"isActive"`
}

func (p ResumePatch) Apply(r Resume) Resume {
	setIf(&r.FileName, p.FileName)
	setIf(&r.FileURL, p.FileURL)
	setIf(&r.IsActive, p.IsActive)
	return r
}
