package employee

import (
	"time"

	"github.com/google/uuid"
)

type Employee struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_employees_email"`
	ContactNumber string    `gorm:"type:varchar(10);not null"`
	DateOfBirth   time.Time `gorm:"not null"`
	DateOfJoining time.Time `gorm:"not null"`

	// Assigned exactly once at creation from the atomic counter, never
	// recomputed afterwards.
	EmployeeCode string `gorm:"type:varchar(20);not null;uniqueIndex:uq_employees_code"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
