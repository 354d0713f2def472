package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"

	"quillworks/internal/mailer"
	"quillworks/internal/store"
	"quillworks/pkg/types"

	"github.com/sirupsen/logrus"
)

// PageCount accepts both a JSON number and the string form the marketing
// site's form submits ("5"). Anything that is not an integer fails decoding.
type PageCount int

func (p *PageCount) UnmarshalJSON(b []byte) error {
	parsed, err := parsePageCount(strings.Trim(string(b), `"`))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func parsePageCount(s string) (PageCount, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("pages must be an integer")
	}
	return PageCount(n), nil
}

type quoteSubmitInput struct {
	Name          string    `json:"name" form:"name"`
	Email         string    `json:"email" form:"email"`
	Phone         string    `json:"phone" form:"phone"`
	Subject       string    `json:"subject" form:"subject"`
	Service       string    `json:"service" form:"service"`
	Deadline      string    `json:"deadline" form:"deadline"`
	Pages         PageCount `json:"pages" form:"pages"`
	AcademicLevel string    `json:"academicLevel" form:"academic_level"`
	Message       string    `json:"message" form:"message"`
	FileNames     []string  `json:"fileNames" form:"file_names"`
}

func (in *quoteSubmitInput) validate() map[string]string {
	fields := make(map[string]string)

	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		fields["email"] = "a valid email address is required"
	}
	if strings.TrimSpace(in.Subject) == "" {
		fields["subject"] = "subject is required"
	}
	if strings.TrimSpace(in.Service) == "" {
		fields["service"] = "service is required"
	}
	if strings.TrimSpace(in.Deadline) == "" {
		fields["deadline"] = "deadline is required"
	}
	if in.Pages < 1 {
		fields["pages"] = "pages must be a positive integer"
	}
	if strings.TrimSpace(in.AcademicLevel) == "" {
		fields["academicLevel"] = "academic level is required"
	}

	return fields
}

// handleQuoteSubmit is the public quote intake. The row insert is the source
// of truth; confirmation emails after a successful insert are best effort and
// reported back through the emailSent flag.
func (s *Service) handleQuoteSubmit(w http.ResponseWriter, r *http.Request) {
	var input quoteSubmitInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	if fields := input.validate(); len(fields) > 0 {
		s.respondFieldErrors(w, fields)
		return
	}

	quote := &types.QuoteRequest{
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.TrimSpace(input.Email),
		Subject:       strings.TrimSpace(input.Subject),
		Service:       strings.TrimSpace(input.Service),
		Deadline:      strings.TrimSpace(input.Deadline),
		Pages:         int(input.Pages),
		AcademicLevel: strings.TrimSpace(input.AcademicLevel),
		FileNames:     input.FileNames,
	}
	if phone := strings.TrimSpace(input.Phone); phone != "" {
		quote.Phone = &phone
	}
	if message := strings.TrimSpace(input.Message); message != "" {
		quote.Message = &message
	}

	if err := s.quotes.CreateQuoteRequest(r.Context(), quote); err != nil {
		s.respondError(w, r, err)
		return
	}

	emailSent := s.sendQuoteEmails(r, quote)

	s.respondJSON(w, http.StatusCreated, map[string]any{
		"success":   true,
		"message":   "Quote request received. We'll be in touch shortly.",
		"requestId": quote.ID,
		"emailSent": emailSent,
	})
}

func (s *Service) sendQuoteEmails(r *http.Request, quote *types.QuoteRequest) bool {
	sent := true

	confirmation, err := mailer.QuoteConfirmation(quote)
	if err == nil {
		_, err = s.mail.Send(r.Context(), confirmation)
	}
	if err != nil {
		sent = false
		s.logger.WithError(err).WithField("request_id", quote.ID).Error("failed to send quote confirmation email")
	}

	alert, err := mailer.QuoteAlert(quote, s.config.OperationsEmail)
	if err == nil {
		_, err = s.mail.Send(r.Context(), alert)
	}
	if err != nil {
		sent = false
		s.logger.WithError(err).WithField("request_id", quote.ID).Error("failed to send quote alert email")
	}

	return sent
}

// handleAdminQuoteList returns every quote request. Bulk reads are recorded
// in the audit log first; an audit failure is logged loudly but never blocks
// the read.
func (s *Service) handleAdminQuoteList(w http.ResponseWriter, r *http.Request) {
	adminID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	entry := &types.AuditLog{
		RecordID:   store.BulkSelectRecordID,
		AccessedBy: adminID,
		AccessType: "BULK_SELECT",
		UserAgent:  r.UserAgent(),
		IPAddress:  clientIP(r),
	}
	if err := s.audits.RecordAccess(r.Context(), entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"audit_failed": true,
			"accessed_by":  adminID,
		}).Error("failed to write audit log for bulk quote read")
	}

	quotes, err := s.quotes.AllQuoteRequests(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, quotes)
}

// decodeRequest reads the body as JSON or, for form posts from the marketing
// site, as urlencoded form data.
func decodeRequest(r *http.Request, v any) error {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			return err
		}
		return decoder.Decode(v, r.PostForm)
	}

	return json.NewDecoder(r.Body).Decode(v)
}
