package types

import "time"

type QuoteRequest struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Email         string    `db:"email" json:"email"`
	Phone         *string   `db:"phone" json:"phone,omitempty"`
	Subject       string    `db:"subject" json:"subject"`
	Service       string    `db:"service" json:"service"`
	Deadline      string    `db:"deadline" json:"deadline"`
	Pages         int       `db:"pages" json:"pages"`
	AcademicLevel string    `db:"academic_level" json:"academicLevel"`
	Message       *string   `db:"message" json:"message,omitempty"`
	FileNames     []string  `db:"file_names" json:"fileNames,omitempty"` // jsonb array
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
