package models

import "time"

// Status is the stage an application has reached.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusRejected  Status = "Rejected"
	StatusOffer     Status = "Offer"
)

// Valid reports whether s is one of the four known statuses. The match is exact.
func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterview, StatusRejected, StatusOffer:
		return true
	}
	return false
}

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`

	Applications []Application `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// Application is a single tracked job application. UserID is written once on
// insert and never included in updates.
type Application struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"<-:create;index;not null" json:"userId"`
	CompanyName string    `gorm:"not null" json:"companyName"`
	JobTitle    string    `gorm:"not null" json:"jobTitle"`
	Status      Status    `gorm:"type:varchar(16);not null;default:'Applied'" json:"status"`
	CreatedAt   time.Time `gorm:"<-:create;index" json:"createdAt"`
}

// ApplicationChanges is the change-set of an update. Nil fields are left alone.
type ApplicationChanges struct {
	CompanyName *string
	JobTitle    *string
	Status      *Status
}

func (c ApplicationChanges) Empty() bool {
	return c.CompanyName == nil && c.JobTitle == nil && c.Status == nil
}

// Columns returns the change-set keyed by column name.
func (c ApplicationChanges) Columns() map[string]interface{} {
	cols := make(map[string]interface{}, 3)
	if c.CompanyName != nil {
		cols["company_name"] = *c.CompanyName
	}
	if c.JobTitle != nil {
		cols["job_title"] = *c.JobTitle
	}
	if c.Status != nil {
		cols["status"] = string(*c.Status)
	}
	return cols
}

// ApplicationFilter narrows a listing of one user's applications.
type ApplicationFilter struct {
	Status Status
	// Search is lower-cased and matched against company name and job title.
	Search string
}
