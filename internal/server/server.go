package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"quillworks/internal/identity"
	"quillworks/internal/mailer"
	"quillworks/internal/storage"
	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = newFormDecoder()

// Store interfaces are declared here, sized to what the handlers call, so
// tests can swap in-memory fakes for the pgx-backed repositories.

type quoteStore interface {
	CreateQuoteRequest(ctx context.Context, quote *types.QuoteRequest) error
	AllQuoteRequests(ctx context.Context) ([]*types.QuoteRequest, error)
}

type deliverableStore interface {
	CreateDeliverable(ctx context.Context, deliverable *types.Deliverable) error
	DeliverableForUser(ctx context.Context, id, userID string) (*types.Deliverable, error)
	DeliverablesByUser(ctx context.Context, userID string) ([]*types.Deliverable, error)
	AllDeliverables(ctx context.Context) ([]*types.Deliverable, error)
	UpdateDeliverableStatus(ctx context.Context, id string, status types.DeliverableStatus, notes *string) error
}

type notificationStore interface {
	CreateNotification(ctx context.Context, notification *types.Notification) error
	NotificationsByUser(ctx context.Context, userID string) ([]*types.Notification, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type roleStore interface {
	RoleOf(ctx context.Context, userID string) (types.Role, error)
	AssignRole(ctx context.Context, userID string, role types.Role) error
}

type profileStore interface {
	Profile(ctx context.Context, userID string) (*types.Profile, error)
	UpsertProfile(ctx context.Context, profile *types.Profile) error
}

type orderStore interface {
	OrdersByUser(ctx context.Context, userID string) ([]*types.Order, error)
	AllOrders(ctx context.Context) ([]*types.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status types.OrderStatus) error
}

type ticketStore interface {
	CreateTicket(ctx context.Context, ticket *types.SupportTicket) error
	TicketsByUser(ctx context.Context, userID string) ([]*types.SupportTicket, error)
	AllTickets(ctx context.Context) ([]*types.SupportTicket, error)
	UpdateTicket(ctx context.Context, id string, status types.TicketStatus, assignedTo *string) error
}

type sampleStore interface {
	PublishedSamples(ctx context.Context) ([]*types.SamplePaper, error)
	AllSamples(ctx context.Context) ([]*types.SamplePaper, error)
	CreateSample(ctx context.Context, sample *types.SamplePaper) error
	DeleteSample(ctx context.Context, id string) error
}

type auditStore interface {
	RecordAccess(ctx context.Context, entry *types.AuditLog) error
}

type pinger interface {
	Ping(ctx context.Context) error
}

type Service struct {
	logger *logrus.Logger
	config *types.Config

	directory identity.UserDirectory
	mail      mailer.Mailer
	objects   storage.ObjectStore

	quotes        quoteStore
	deliverables  deliverableStore
	notifications notificationStore
	roles         roleStore
	profiles      profileStore
	orders        orderStore
	tickets       ticketStore
	samples       sampleStore
	audits        auditStore

	db pinger

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

type Deps struct {
	Directory identity.UserDirectory
	Mailer    mailer.Mailer
	Objects   storage.ObjectStore

	Quotes        quoteStore
	Deliverables  deliverableStore
	Notifications notificationStore
	Roles         roleStore
	Profiles      profileStore
	Orders        orderStore
	Tickets       ticketStore
	Samples       sampleStore
	Audits        auditStore

	DB pinger

	JWKSCache *jwk.Cache
	JWKSURL   string
}

func New(config *types.Config, logger *logrus.Logger, deps Deps) *Service {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,

		directory: deps.Directory,
		mail:      deps.Mailer,
		objects:   deps.Objects,

		quotes:        deps.Quotes,
		deliverables:  deps.Deliverables,
		notifications: deps.Notifications,
		roles:         deps.Roles,
		profiles:      deps.Profiles,
		orders:        deps.Orders,
		tickets:       deps.Tickets,
		samples:       deps.Samples,
		audits:        deps.Audits,

		db: deps.DB,

		jwksCache: deps.JWKSCache,
		jwksURL:   deps.JWKSURL,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)
	s.server.Handler = s.CORSMiddleware(mux)

	return s
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the full middleware-wrapped handler for tests.
func (s *Service) Handler() http.Handler {
	return s.server.Handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/api/quotes", s.handleQuoteSubmit, http.MethodPost)
	r.HandleFunc("/api/samples", s.handleSamplesList, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/api/deliverables", s.handleMyDeliverables, http.MethodGet)
		r.HandleFunc("/api/deliverables/:id/download", s.handleDeliverableDownload, http.MethodPost)
		r.HandleFunc("/api/deliverables/:id/revision", s.handleDeliverableRevision, http.MethodPost)

		r.HandleFunc("/api/notifications", s.handleMyNotifications, http.MethodGet)
		r.HandleFunc("/api/notifications/read-all", s.handleNotificationsReadAll, http.MethodPost)
		r.HandleFunc("/api/notifications/:id/read", s.handleNotificationRead, http.MethodPost)

		r.HandleFunc("/api/orders", s.handleMyOrders, http.MethodGet)

		r.HandleFunc("/api/tickets", s.handleTicketSubmit, http.MethodPost)
		r.HandleFunc("/api/tickets", s.handleMyTickets, http.MethodGet)

		r.HandleFunc("/api/profile", s.handleGetProfile, http.MethodGet)
		r.HandleFunc("/api/profile", s.handlePutProfile, http.MethodPut)

		r.Group(func(r *flow.Mux) {
			r.Use(s.RequireAdmin)

			r.HandleFunc("/api/admin/quotes", s.handleAdminQuoteList, http.MethodGet)

			r.HandleFunc("/api/admin/users/lookup", s.handleUserLookupByEmail, http.MethodPost)
			r.HandleFunc("/api/admin/users/:id", s.handleUserLookupByID, http.MethodGet)
			r.HandleFunc("/api/admin/roles", s.handleRoleAssign, http.MethodPost)

			r.HandleFunc("/api/admin/deliverables", s.handleAdminDeliverableUpload, http.MethodPost)
			r.HandleFunc("/api/admin/deliverables", s.handleAdminDeliverablesList, http.MethodGet)
			r.HandleFunc("/api/admin/deliverables/notify", s.handleDeliverableNotify, http.MethodPost)

			r.HandleFunc("/api/admin/orders", s.handleAdminOrdersList, http.MethodGet)
			r.HandleFunc("/api/admin/orders/:id", s.handleAdminOrderUpdate, http.MethodPatch)

			r.HandleFunc("/api/admin/tickets", s.handleAdminTicketsList, http.MethodGet)
			r.HandleFunc("/api/admin/tickets/:id", s.handleAdminTicketUpdate, http.MethodPatch)

			r.HandleFunc("/api/admin/samples", s.handleAdminSampleCreate, http.MethodPost)
			r.HandleFunc("/api/admin/samples/:id", s.handleAdminSampleDelete, http.MethodDelete)
		})
	})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok || userID == "" {
		return "", types.NewError(types.KindAuthentication, "user id not found in context")
	}
	return userID, nil
}

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.RegisterCustomTypeFunc(func(vals []string) (any, error) {
		return parsePageCount(vals[0])
	}, PageCount(0))
	return d
}
