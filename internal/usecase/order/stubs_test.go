package order

import (
	"context"
	"sync"

	"github.com/google/uuid"

	domain "github.com/everestpress/printshop-api/internal/domain/order"
	"github.com/everestpress/printshop-api/internal/httperr"
	"github.com/everestpress/printshop-api/internal/models"
	"github.com/everestpress/printshop-api/internal/notify"
	"github.com/everestpress/printshop-api/internal/payment"
)

type stubOrderRepo struct {
	services map[string]*models.Service
	orders   map[string]*models.Order
}

func newStubOrderRepo() *stubOrderRepo {
	return &stubOrderRepo{
		services: make(map[string]*models.Service),
		orders:   make(map[string]*models.Order),
	}
}

func (r *stubOrderRepo) addService(svc models.Service) *models.Service {
	if svc.ID == "" {
		svc.ID = uuid.NewString()
	}
	r.services[svc.ID] = &svc
	return &svc
}

func (r *stubOrderRepo) addOrder(o models.Order) *models.Order {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	clone := o
	r.orders[o.ID] = &clone
	return &clone
}

func (r *stubOrderRepo) GetService(_ context.Context, serviceID string) (*models.Service, error) {
	svc, ok := r.services[serviceID]
	if !ok {
		return nil, httperr.NotFound("service_not_found", "Service not found.")
	}
	clone := *svc
	return &clone, nil
}

func (r *stubOrderRepo) Create(_ context.Context, o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) FindByID(_ context.Context, id string) (*models.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, httperr.NotFound("order_not_found", "Order not found.")
	}
	clone := *o
	if svc, ok := r.services[o.ServiceID]; ok {
		clone.Service = *svc
	}
	return &clone, nil
}

func (r *stubOrderRepo) List(_ context.Context, f domain.ListFilters) ([]models.Order, error) {
	var out []models.Order
	for _, o := range r.orders {
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.PaymentStatus != "" && o.PaymentStatus != f.PaymentStatus {
			continue
		}
		if f.OwnerID != nil {
			if o.UserID == nil || *o.UserID != *f.OwnerID {
				continue
			}
		}
		out = append(out, *o)
	}
	return out, nil
}

func (r *stubOrderRepo) Update(_ context.Context, o *models.Order) error {
	clone := *o
	r.orders[o.ID] = &clone
	return nil
}

func (r *stubOrderRepo) AttachPaymentIntent(_ context.Context, orderID, intentID string) error {
	o, ok := r.orders[orderID]
	if !ok {
		return httperr.NotFound("order_not_found", "Order not found.")
	}
	if o.PaymentIntentID != nil {
		return httperr.Conflict("payment_intent_exists", "A payment intent is already attached to this order.")
	}
	o.PaymentIntentID = &intentID
	return nil
}

type recordingNotifier struct {
	mu    sync.Mutex
	sent  []notify.Message
	admin []notify.Message
}

func (n *recordingNotifier) Send(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
	return nil
}

func (n *recordingNotifier) NotifyAdmins(_ context.Context, msg notify.Message) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.admin = append(n.admin, msg)
	return nil
}

type recordingRecorder struct {
	mu      sync.Mutex
	actions []string
}

func (r *recordingRecorder) Log(_ *string, action, _, _ string, _ any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, action)
	return nil
}

type stubProcessor struct {
	lastReq payment.AuthorizeRequest
	fail    bool
	calls   int
}

func (p *stubProcessor) Authorize(_ context.Context, req payment.AuthorizeRequest) (*payment.Intent, error) {
	p.calls++
	p.lastReq = req
	if p.fail {
		return nil, httperr.Upstream("payment_processor_failed", nil)
	}
	return &payment.Intent{ID: "pi_test_123", ClientSecret: "pi_test_123_secret"}, nil
}

func strptr(s string) *string { return &s }
