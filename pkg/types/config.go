package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Deliverable storage
	StorageBucketName  string `envconfig:"STORAGE_BUCKET_NAME" default:"quillworks-deliverables"`
	DownloadURLTTLSec  uint   `envconfig:"DOWNLOAD_URL_TTL_SEC" default:"900"`
	MaxUploadSizeBytes int64  `envconfig:"MAX_UPLOAD_SIZE_BYTES" default:"52428800"` // 50 MiB

	// Outbound email
	EmailFromAddress string `envconfig:"EMAIL_FROM_ADDRESS" default:"noreply@quillworks.io"`
	OperationsEmail  string `envconfig:"OPERATIONS_EMAIL" default:"orders@quillworks.io"`
	DashboardURL     string `envconfig:"DASHBOARD_URL" default:"https://quillworks.io/dashboard"`
}
