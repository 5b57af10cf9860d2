package domain

import "time"

// CompanyStatus represents the approval state of a service company.
type CompanyStatus string

const (
	CompanyPending   CompanyStatus = "pending"
	CompanyApproved  CompanyStatus = "approved"
	CompanyRejected  CompanyStatus = "rejected"
	CompanySuspended CompanyStatus = "suspended"
)

// Company is a service company authorized to install and service devices.
type Company struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	Name      string        `json:"name" bson:"name"`
	Status    CompanyStatus `json:"status" bson:"status"`
	Phone     string        `json:"phone,omitempty" bson:"phone,omitempty"`
	Email     string        `json:"email,omitempty" bson:"email,omitempty"`
	Address   string        `json:"address,omitempty" bson:"address,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}
