package domain

import (
	"time"

	"github.com/google/uuid"
)

type Department struct {
	ID          uuid.UUID `json:"id" db:"department_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Faculty     *string   `json:"faculty,omitempty" db:"faculty"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type CreateDepartmentInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Faculty     *string `json:"faculty,omitempty" validate:"omitempty,max=120"`
}

type UpdateDepartmentInput struct {
	Name        string  `json:"name" validate:"required,min=2,max=120"`
	Description string  `json:"description" validate:"omitempty,max=1000"`
	Faculty     *string `json:"faculty,omitempty" validate:"omitempty,max=120"`
}

// DefaultDepartments seeds the portal when the departments table is empty
// and no grievances exist to derive names from.
var DefaultDepartments = []string{
	"Academic Administration",
	"Admissions Office",
	"Finance Department",
	"Student Housing",
	"Financial Aid",
	"Faculty of Accounting and Informatics",
	"Faculty of Applied Sciences",
	"Faculty of Arts and Design",
	"Faculty of Engineering and the Built Environment",
	"Faculty of Health Sciences",
	"Faculty of Management Sciences",
	"Library Services",
	"IT Services",
	"International Office",
	"Student Counselling",
	"Sports Department",
	"Student Representative Council (SRC)",
}
