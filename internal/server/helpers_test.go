package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"quillworks/internal/mailer"
	"quillworks/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type fakeQuoteStore struct {
	created   []*types.QuoteRequest
	createErr error
	listErr   error
}

func (f *fakeQuoteStore) CreateQuoteRequest(_ context.Context, quote *types.QuoteRequest) error {
	if f.createErr != nil {
		return f.createErr
	}
	quote.ID = uuid.NewString()
	f.created = append(f.created, quote)
	return nil
}

func (f *fakeQuoteStore) AllQuoteRequests(_ context.Context) ([]*types.QuoteRequest, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.created, nil
}

type fakeDeliverableStore struct {
	rows          map[string]*types.Deliverable
	created       []*types.Deliverable
	statusUpdates []string
}

func newFakeDeliverableStore() *fakeDeliverableStore {
	return &fakeDeliverableStore{rows: make(map[string]*types.Deliverable)}
}

func (f *fakeDeliverableStore) CreateDeliverable(_ context.Context, d *types.Deliverable) error {
	d.ID = uuid.NewString()
	f.rows[d.ID] = d
	f.created = append(f.created, d)
	return nil
}

func (f *fakeDeliverableStore) DeliverableForUser(_ context.Context, id, userID string) (*types.Deliverable, error) {
	d, ok := f.rows[id]
	if !ok || d.UserID != userID {
		return nil, types.ErrDeliverableNotFound
	}
	return d, nil
}

func (f *fakeDeliverableStore) DeliverablesByUser(_ context.Context, userID string) ([]*types.Deliverable, error) {
	out := make([]*types.Deliverable, 0)
	for _, d := range f.rows {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDeliverableStore) AllDeliverables(_ context.Context) ([]*types.Deliverable, error) {
	out := make([]*types.Deliverable, 0, len(f.rows))
	for _, d := range f.rows {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeDeliverableStore) UpdateDeliverableStatus(_ context.Context, id string, status types.DeliverableStatus, notes *string) error {
	d, ok := f.rows[id]
	if !ok {
		return types.ErrDeliverableNotFound
	}
	d.Status = status
	if notes != nil {
		d.DeliveryNotes = notes
	}
	f.statusUpdates = append(f.statusUpdates, id)
	return nil
}

type fakeNotificationStore struct {
	created   []*types.Notification
	createErr error
	read      []string
	readAll   []string
}

func (f *fakeNotificationStore) CreateNotification(_ context.Context, n *types.Notification) error {
	if f.createErr != nil {
		return f.createErr
	}
	n.ID = uuid.NewString()
	f.created = append(f.created, n)
	return nil
}

func (f *fakeNotificationStore) NotificationsByUser(_ context.Context, userID string) ([]*types.Notification, error) {
	out := make([]*types.Notification, 0)
	for _, n := range f.created {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) MarkRead(_ context.Context, id, userID string) error {
	for _, n := range f.created {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			f.read = append(f.read, id)
			return nil
		}
	}
	return types.ErrNotificationNotFound
}

func (f *fakeNotificationStore) MarkAllRead(_ context.Context, userID string) error {
	f.readAll = append(f.readAll, userID)
	return nil
}

type fakeRoleStore struct {
	roles       map[string]types.Role
	assignments []types.UserRole
}

func newFakeRoleStore() *fakeRoleStore {
	return &fakeRoleStore{roles: make(map[string]types.Role)}
}

func (f *fakeRoleStore) RoleOf(_ context.Context, userID string) (types.Role, error) {
	role, ok := f.roles[userID]
	if !ok {
		return types.RoleUser, nil
	}
	return role, nil
}

func (f *fakeRoleStore) AssignRole(_ context.Context, userID string, role types.Role) error {
	f.roles[userID] = role
	f.assignments = append(f.assignments, types.UserRole{UserID: userID, Role: role})
	return nil
}

type fakeProfileStore struct {
	profiles map[string]*types.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[string]*types.Profile)}
}

func (f *fakeProfileStore) Profile(_ context.Context, userID string) (*types.Profile, error) {
	p, ok := f.profiles[userID]
	if !ok {
		return nil, types.ErrProfileNotFound
	}
	return p, nil
}

func (f *fakeProfileStore) UpsertProfile(_ context.Context, p *types.Profile) error {
	f.profiles[p.UserID] = p
	return nil
}

type fakeOrderStore struct {
	orders map[string]*types.Order
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[string]*types.Order)}
}

func (f *fakeOrderStore) OrdersByUser(_ context.Context, userID string) ([]*types.Order, error) {
	out := make([]*types.Order, 0)
	for _, o := range f.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) AllOrders(_ context.Context) ([]*types.Order, error) {
	out := make([]*types.Order, 0, len(f.orders))
	for _, o := range f.orders {
		out = append(out, o)
	}
	return out, nil
}

func (f *fakeOrderStore) UpdateOrderStatus(_ context.Context, id string, status types.OrderStatus) error {
	o, ok := f.orders[id]
	if !ok {
		return types.ErrOrderNotFound
	}
	o.Status = status
	return nil
}

type fakeTicketStore struct {
	tickets []*types.SupportTicket
}

func (f *fakeTicketStore) CreateTicket(_ context.Context, t *types.SupportTicket) error {
	t.ID = uuid.NewString()
	t.Reference = "QW-TEST" + uuid.NewString()[:4]
	t.Status = types.TicketStatusOpen
	f.tickets = append(f.tickets, t)
	return nil
}

func (f *fakeTicketStore) TicketsByUser(_ context.Context, userID string) ([]*types.SupportTicket, error) {
	out := make([]*types.SupportTicket, 0)
	for _, t := range f.tickets {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) AllTickets(_ context.Context) ([]*types.SupportTicket, error) {
	return f.tickets, nil
}

func (f *fakeTicketStore) UpdateTicket(_ context.Context, id string, status types.TicketStatus, assignedTo *string) error {
	for _, t := range f.tickets {
		if t.ID == id {
			t.Status = status
			if assignedTo != nil {
				t.AssignedTo = assignedTo
			}
			return nil
		}
	}
	return types.ErrTicketNotFound
}

type fakeSampleStore struct {
	samples []*types.SamplePaper
}

func (f *fakeSampleStore) PublishedSamples(_ context.Context) ([]*types.SamplePaper, error) {
	out := make([]*types.SamplePaper, 0)
	for _, s := range f.samples {
		if s.Published {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSampleStore) AllSamples(_ context.Context) ([]*types.SamplePaper, error) {
	return f.samples, nil
}

func (f *fakeSampleStore) CreateSample(_ context.Context, s *types.SamplePaper) error {
	s.ID = uuid.NewString()
	f.samples = append(f.samples, s)
	return nil
}

func (f *fakeSampleStore) DeleteSample(_ context.Context, id string) error {
	for i, s := range f.samples {
		if s.ID == id {
			f.samples = append(f.samples[:i], f.samples[i+1:]...)
			return nil
		}
	}
	return types.ErrSampleNotFound
}

type fakeAuditStore struct {
	entries   []*types.AuditLog
	recordErr error
}

func (f *fakeAuditStore) RecordAccess(_ context.Context, entry *types.AuditLog) error {
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries = append(f.entries, entry)
	return nil
}

type fakeDirectory struct {
	byEmail map[string]*types.DirectoryUser
	byID    map[string]*types.DirectoryUser
	calls   int
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		byEmail: make(map[string]*types.DirectoryUser),
		byID:    make(map[string]*types.DirectoryUser),
	}
}

func (f *fakeDirectory) add(user *types.DirectoryUser) {
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
}

func (f *fakeDirectory) FindByEmail(_ context.Context, email string) (*types.DirectoryUser, error) {
	f.calls++
	user, ok := f.byEmail[email]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeDirectory) FindByID(_ context.Context, userID string) (*types.DirectoryUser, error) {
	f.calls++
	user, ok := f.byID[userID]
	if !ok {
		return nil, types.ErrUserNotFound
	}
	return user, nil
}

type fakeMailer struct {
	sent    []mailer.Email
	sendErr error
}

func (f *fakeMailer) Send(_ context.Context, email mailer.Email) (string, error) {
	if f.sendErr != nil {
		return "", f.sendErr
	}
	f.sent = append(f.sent, email)
	return "msg-" + uuid.NewString()[:8], nil
}

type fakeObjectStore struct {
	puts       map[string][]byte
	presignErr error
}

func newFakeObjectStore() *fakeObjectStore {
	return &fakeObjectStore{puts: make(map[string][]byte)}
}

func (f *fakeObjectStore) Put(_ context.Context, key string, body io.Reader, contentType string, size int64) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	f.puts[key] = data
	return nil
}

func (f *fakeObjectStore) PresignDownload(_ context.Context, key, downloadName string) (string, error) {
	if f.presignErr != nil {
		return "", f.presignErr
	}
	return "https://objects.test/" + key, nil
}

func (f *fakeObjectStore) Delete(_ context.Context, key string) error {
	delete(f.puts, key)
	return nil
}

type fakePinger struct {
	err error
}

func (f *fakePinger) Ping(_ context.Context) error {
	return f.err
}

type testEnv struct {
	svc           *Service
	quotes        *fakeQuoteStore
	deliverables  *fakeDeliverableStore
	notifications *fakeNotificationStore
	roles         *fakeRoleStore
	profiles      *fakeProfileStore
	orders        *fakeOrderStore
	tickets       *fakeTicketStore
	samples       *fakeSampleStore
	audits        *fakeAuditStore
	directory     *fakeDirectory
	mailer        *fakeMailer
	objects       *fakeObjectStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		quotes:        &fakeQuoteStore{},
		deliverables:  newFakeDeliverableStore(),
		notifications: &fakeNotificationStore{},
		roles:         newFakeRoleStore(),
		profiles:      newFakeProfileStore(),
		orders:        newFakeOrderStore(),
		tickets:       &fakeTicketStore{},
		samples:       &fakeSampleStore{},
		audits:        &fakeAuditStore{},
		directory:     newFakeDirectory(),
		mailer:        &fakeMailer{},
		objects:       newFakeObjectStore(),
	}

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	config := &types.Config{
		ServerPort:         8080,
		OperationsEmail:    "ops@quillworks.test",
		EmailFromAddress:   "noreply@quillworks.test",
		DashboardURL:       "https://quillworks.test/dashboard",
		MaxUploadSizeBytes: 1 << 20,
	}

	env.svc = New(config, logger, Deps{
		Directory:     env.directory,
		Mailer:        env.mailer,
		Objects:       env.objects,
		Quotes:        env.quotes,
		Deliverables:  env.deliverables,
		Notifications: env.notifications,
		Roles:         env.roles,
		Profiles:      env.profiles,
		Orders:        env.orders,
		Tickets:       env.tickets,
		Samples:       env.samples,
		Audits:        env.audits,
		DB:            &fakePinger{},
	})

	return env
}

// authedRequest attaches a user id the way RequireAuth would.
func authedRequest(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), contextKeyUserID, userID)
	return req.WithContext(ctx)
}

func doHandler(handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

// doRoute serves the request through a one-route flow mux so :param values
// resolve the way they do in the real router.
func doRoute(pattern, method string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	mux := flow.New()
	mux.HandleFunc(pattern, handler, method)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}
