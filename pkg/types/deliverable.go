package types

import "time"

type DeliverableStatus string

const (
	DeliverableStatusPending           DeliverableStatus = "pending"
	DeliverableStatusDelivered         DeliverableStatus = "delivered"
	DeliverableStatusDownloaded        DeliverableStatus = "downloaded"
	DeliverableStatusRevisionRequested DeliverableStatus = "revision_requested"
)

type Deliverable struct {
	ID            string            `db:"id" json:"id"`
	OrderID       *string           `db:"order_id" json:"orderId,omitempty"`
	UserID        string            `db:"user_id" json:"userId"`
	Title         string            `db:"title" json:"title"`
	FileURL       string            `db:"file_url" json:"fileUrl"`
	FileName      string            `db:"file_name" json:"fileName"`
	FileSize      int64             `db:"file_size" json:"fileSize"`
	UploadedBy    string            `db:"uploaded_by" json:"uploadedBy"`
	DeliveryNotes *string           `db:"delivery_notes" json:"deliveryNotes,omitempty"`
	Status        DeliverableStatus `db:"status" json:"status"`
	CreatedAt     time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time         `db:"updated_at" json:"updatedAt"`
}
