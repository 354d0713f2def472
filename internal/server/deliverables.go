package server

import (
	"fmt"
	"net/http"
	"strings"

	"quillworks/internal/mailer"
	"quillworks/internal/storage"
	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
)

// handleAdminDeliverableUpload stores the file first, then the row. A failed
// row insert leaves an orphan object behind, which is cheaper than a row
// pointing at nothing.
func (s *Service) handleAdminDeliverableUpload(w http.ResponseWriter, r *http.Request) {
	adminID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.config.MaxUploadSizeBytes)
	if err := r.ParseMultipartForm(s.config.MaxUploadSizeBytes); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid multipart payload", err))
		return
	}

	userID := strings.TrimSpace(r.FormValue("userId"))
	title := strings.TrimSpace(r.FormValue("title"))

	fields := make(map[string]string)
	if userID == "" {
		fields["userId"] = "userId is required"
	}
	if title == "" {
		fields["title"] = "title is required"
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		fields["file"] = "a file part is required"
	}
	if len(fields) > 0 {
		s.respondFieldErrors(w, fields)
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := storage.ObjectKey(userID, header.Filename)
	if err := s.objects.Put(r.Context(), key, file, contentType, header.Size); err != nil {
		s.respondError(w, r, err)
		return
	}

	deliverable := &types.Deliverable{
		UserID:     userID,
		Title:      title,
		FileURL:    key,
		FileName:   header.Filename,
		FileSize:   header.Size,
		UploadedBy: adminID,
		Status:     types.DeliverableStatusDelivered,
	}
	if orderID := strings.TrimSpace(r.FormValue("orderId")); orderID != "" {
		deliverable.OrderID = &orderID
	}
	if notes := strings.TrimSpace(r.FormValue("deliveryNotes")); notes != "" {
		deliverable.DeliveryNotes = &notes
	}

	if err := s.deliverables.CreateDeliverable(r.Context(), deliverable); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, deliverable)
}

func (s *Service) handleAdminDeliverablesList(w http.ResponseWriter, r *http.Request) {
	deliverables, err := s.deliverables.AllDeliverables(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, deliverables)
}

type deliverableNotifyInput struct {
	UserID        string `json:"userId" form:"user_id"`
	Title         string `json:"title" form:"title"`
	OrderNumber   string `json:"orderNumber" form:"order_number"`
	DeliveryNotes string `json:"deliveryNotes" form:"delivery_notes"`
}

// handleDeliverableNotify tells a customer their work is ready. The in-app
// notification row is written before the email goes out, so a mail-provider
// outage can never lose the notification.
func (s *Service) handleDeliverableNotify(w http.ResponseWriter, r *http.Request) {
	var input deliverableNotifyInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	fields := make(map[string]string)
	if strings.TrimSpace(input.UserID) == "" {
		fields["userId"] = "userId is required"
	}
	if strings.TrimSpace(input.Title) == "" {
		fields["title"] = "title is required"
	}
	if len(fields) > 0 {
		s.respondFieldErrors(w, fields)
		return
	}

	user, err := s.directory.FindByID(r.Context(), input.UserID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	if user.Email == "" {
		s.respondError(w, r, types.ErrUserEmailNotFound)
		return
	}

	// Best-effort display name; the email address is a fine fallback.
	displayName := user.Email
	if profile, err := s.profiles.Profile(r.Context(), input.UserID); err == nil && profile.DisplayName != "" {
		displayName = profile.DisplayName
	}

	notification := &types.Notification{
		UserID:  input.UserID,
		Title:   "Work Completed",
		Message: fmt.Sprintf("%q has been delivered and is ready to download.", input.Title),
		Type:    "info",
	}
	if err := s.notifications.CreateNotification(r.Context(), notification); err != nil {
		s.respondError(w, r, err)
		return
	}

	email, err := mailer.WorkReady(mailer.WorkReadyData{
		To:            user.Email,
		DisplayName:   displayName,
		Title:         input.Title,
		OrderNumber:   input.OrderNumber,
		DeliveryNotes: input.DeliveryNotes,
		DashboardURL:  s.config.DashboardURL,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	messageID, err := s.mail.Send(r.Context(), email)
	if err != nil {
		// the notification row stays; only the email needs a retry
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"messageId": messageID,
	})
}

func (s *Service) handleMyDeliverables(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	deliverables, err := s.deliverables.DeliverablesByUser(r.Context(), userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, deliverables)
}

// handleDeliverableDownload hands out a signed URL and marks the row
// downloaded. The status update is best effort once the URL exists.
func (s *Service) handleDeliverableDownload(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	id := flow.Param(r.Context(), "id")

	deliverable, err := s.deliverables.DeliverableForUser(r.Context(), id, userID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	url, err := s.objects.PresignDownload(r.Context(), deliverable.FileURL, deliverable.FileName)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	if deliverable.Status != types.DeliverableStatusDownloaded {
		if err := s.deliverables.UpdateDeliverableStatus(r.Context(), id, types.DeliverableStatusDownloaded, nil); err != nil {
			s.logger.WithError(err).WithField("deliverable_id", id).Warn("failed to mark deliverable downloaded")
		}
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"url":      url,
		"fileName": deliverable.FileName,
	})
}

type revisionInput struct {
	Note string `json:"note" form:"note"`
}

func (s *Service) handleDeliverableRevision(w http.ResponseWriter, r *http.Request) {
	userID, err := s.userIDFromContext(r.Context())
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	id := flow.Param(r.Context(), "id")

	var input revisionInput
	if err := decodeRequest(r, &input); err != nil {
		s.respondError(w, r, types.WrapError(types.KindValidation, "invalid request payload", err))
		return
	}

	// ownership check before mutating
	if _, err := s.deliverables.DeliverableForUser(r.Context(), id, userID); err != nil {
		s.respondError(w, r, err)
		return
	}

	var notes *string
	if note := strings.TrimSpace(input.Note); note != "" {
		notes = &note
	}

	if err := s.deliverables.UpdateDeliverableStatus(r.Context(), id, types.DeliverableStatusRevisionRequested, notes); err != nil {
		s.respondError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Revision requested",
	})
}
