package server

import (
	"net/http"
	"strings"

	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
)

func (s *Service) handleSamplesList(w http.ResponseWriter, r *http.Request) {
	samples, err := s.samples.PublishedSamples(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, samples)
}

type sampleCreateInput struct {
	Title         string  `json:"title" form:"title"`
	Subject       string  `json:"subject" form:"subject"`
	AcademicLevel string  `json:"academicLevel" form:"academic_level"`
	Excerpt       string  `json:"excerpt" form:"excerpt"`
	FileURL       *string `json:"fileUrl" form:"file_url"`
	Published     bool    `json:"published" form:"published"`
}

func (s *Service) handleAdminSampleCreate(w http.ResponseWriter, r *http.Request) {
	var input sampleCreateInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	fields := make(map[string]string)
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(input.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if strings.TrimSpace(input.AcademicLevel) == "" {
		fields["academicLevel"] = "academic level is required"
	}
	if len(fields) > 0 {
		s.respondFieldErrors(w, fields)
		return
	}

	sample := &types.SamplePaper{
		Title:         strings.TrimSpace(input.Title),
		Subject:       strings.TrimSpace(input.Subject),
		AcademicLevel: strings.TrimSpace(input.AcademicLevel),
		Excerpt:       input.Excerpt,
		FileURL:       input.FileURL,
		Published:     input.Published,
	}

	if err := s.samples.CreateSample(r.Context(), sample); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, sample)
}

func (s *Service) handleAdminSampleDelete(w http.ResponseWriter, r *http.Request) {
	id := flow.Param(r.Context(), "id")

	if err := s.samples.DeleteSample(r.Context(), id); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{"success": true})
}
