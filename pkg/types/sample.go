package types

import "time"

type SamplePaper struct {
	ID            string    `db:"id" json:"id"`
	Title         string    `db:"title" json:"title"`
	Subject       string    `db:"subject" json:"subject"`
	AcademicLevel string    `db:"academic_level" json:"academicLevel"`
	Excerpt       string    `db:"excerpt" json:"excerpt"`
	FileURL       *string   `db:"file_url" json:"fileUrl,omitempty"`
	Published     bool      `db:"published" json:"published"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}
