package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	agreementModel "renthub-backend/internal/domains/agreement/model"
	commissionModel "renthub-backend/internal/domains/commission/model"
	"renthub-backend/internal/domains/payment/model"
	propertyModel "renthub-backend/internal/domains/property/model"
	userModel "renthub-backend/internal/domains/user/model"
)

// =====================================================
// IN-MEMORY FAKES
// =====================================================

type fakePaymentRepo struct {
	payments map[uuid.UUID]*model.Payment
	byOrder  map[string]*model.Payment

	// failTransition forces TransitionStatus to report a lost race;
	// raceWinnerStatus is the state the winning delivery left behind
	failTransition   bool
	raceWinnerStatus string
	transitions      []string

	// completed records order ids inserted through CreateCompleted
	completed []string

	commissionByProperty []*model.PropertyCommissionSummary
	commissionByMonth    []*model.MonthlyCommissionSummary
	aggregationArgs      []string
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{
		payments: map[uuid.UUID]*model.Payment{},
		byOrder:  map[string]*model.Payment{},
	}
}

func (f *fakePaymentRepo) add(p *model.Payment) {
	f.payments[p.ID] = p
	f.byOrder[p.OrderID] = p
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *model.Payment) error {
	p.Status = model.PaymentStatusPending
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.add(p)
	return nil
}

func (f *fakePaymentRepo) CreateCompleted(ctx context.Context, p *model.Payment, paymentDate time.Time) error {
	p.Status = model.PaymentStatusCompleted
	p.PaymentDate = &paymentDate
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	f.add(p)
	f.completed = append(f.completed, p.OrderID)
	return nil
}

func (f *fakePaymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*model.Payment, error) {
	p, ok := f.byOrder[orderID]
	if !ok {
		return nil, model.ErrPaymentNotFound
	}
	return p, nil
}

func (f *fakePaymentRepo) TransitionStatus(ctx context.Context, id uuid.UUID, from, to string, paymentDate *time.Time) (bool, error) {
	f.transitions = append(f.transitions, from+"->"+to)
	if f.failTransition {
		if f.raceWinnerStatus != "" {
			if p, ok := f.payments[id]; ok {
				p.Status = f.raceWinnerStatus
			}
		}
		return false, nil
	}
	p, ok := f.payments[id]
	if !ok || p.Status != from {
		return false, nil
	}
	p.Status = to
	if paymentDate != nil {
		p.PaymentDate = paymentDate
	}
	return true, nil
}

func (f *fakePaymentRepo) ListByPayerID(ctx context.Context, payerID uuid.UUID, req *model.ListPaymentsRequest) ([]*model.Payment, int64, error) {
	var out []*model.Payment
	for _, p := range f.payments {
		if p.PayerID == payerID {
			out = append(out, p)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID, req *model.ListPaymentsRequest) ([]*model.Payment, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepo) AdminList(ctx context.Context, req *model.AdminListPaymentsRequest) ([]*model.AdminPaymentResponse, int64, error) {
	return nil, 0, nil
}

func (f *fakePaymentRepo) AdminGetStatistics(ctx context.Context) (*model.Statistics, error) {
	return &model.Statistics{}, nil
}

func (f *fakePaymentRepo) SumCommissionByProperty(ctx context.Context, from, to time.Time, rate, floor, ceiling string) ([]*model.PropertyCommissionSummary, error) {
	f.aggregationArgs = append(f.aggregationArgs, rate, floor, ceiling)
	return f.commissionByProperty, nil
}

func (f *fakePaymentRepo) SumCommissionByMonth(ctx context.Context, from, to time.Time, rate, floor, ceiling string) ([]*model.MonthlyCommissionSummary, error) {
	return f.commissionByMonth, nil
}

type fakeWebhookRepo struct {
	logs      []*model.WebhookLog
	processed []uuid.UUID
	invalid   map[uuid.UUID]string
}

func newFakeWebhookRepo() *fakeWebhookRepo {
	return &fakeWebhookRepo{invalid: map[uuid.UUID]string{}}
}

func (f *fakeWebhookRepo) Create(ctx context.Context, log *model.WebhookLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeWebhookRepo) MarkProcessed(ctx context.Context, id uuid.UUID) error {
	f.processed = append(f.processed, id)
	return nil
}

func (f *fakeWebhookRepo) MarkInvalid(ctx context.Context, id uuid.UUID, reason string) error {
	f.invalid[id] = reason
	return nil
}

func (f *fakeWebhookRepo) ListByOrderID(ctx context.Context, orderID string) ([]*model.WebhookLog, error) {
	return f.logs, nil
}

type fakeAgreementRepo struct {
	agreements map[uuid.UUID]*agreementModel.Agreement
}

func newFakeAgreementRepo(agreements ...*agreementModel.Agreement) *fakeAgreementRepo {
	f := &fakeAgreementRepo{agreements: map[uuid.UUID]*agreementModel.Agreement{}}
	for _, a := range agreements {
		f.agreements[a.ID] = a
	}
	return f
}

func (f *fakeAgreementRepo) GetByID(ctx context.Context, id uuid.UUID) (*agreementModel.Agreement, error) {
	a, ok := f.agreements[id]
	if !ok {
		return nil, agreementModel.ErrAgreementNotFound
	}
	return a, nil
}

func (f *fakeAgreementRepo) ListByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*agreementModel.Agreement, error) {
	return nil, nil
}

func (f *fakeAgreementRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

type fakePropertyRepo struct {
	properties map[uuid.UUID]*propertyModel.Property
}

func newFakePropertyRepo(properties ...*propertyModel.Property) *fakePropertyRepo {
	f := &fakePropertyRepo{properties: map[uuid.UUID]*propertyModel.Property{}}
	for _, p := range properties {
		f.properties[p.ID] = p
	}
	return f
}

func (f *fakePropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*propertyModel.Property, error) {
	p, ok := f.properties[id]
	if !ok {
		return nil, propertyModel.ErrPropertyNotFound
	}
	return p, nil
}

func (f *fakePropertyRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*userModel.User
}

func newFakeUserRepo(users ...*userModel.User) *fakeUserRepo {
	f := &fakeUserRepo{users: map[uuid.UUID]*userModel.User{}}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *userModel.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*userModel.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userModel.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*userModel.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, userModel.ErrUserNotFound
}

type notifierCall struct {
	payment       *model.Payment
	payer         *userModel.User
	owner         *userModel.User
	propertyTitle string
}

type fakeNotifier struct {
	calls []notifierCall
}

func (f *fakeNotifier) PaymentCompleted(ctx context.Context, payment *model.Payment, payer *userModel.User, owner *userModel.User, propertyTitle string) {
	f.calls = append(f.calls, notifierCall{payment, payer, owner, propertyTitle})
}

// fakeCommissionConfig serves a fixed configuration (5% in [500, 10000])
type fakeCommissionConfig struct {
	config commissionModel.Configuration
}

func newFakeCommissionConfig() *fakeCommissionConfig {
	return &fakeCommissionConfig{
		config: commissionModel.Configuration{
			ID:      uuid.New(),
			Rate:    decimal.RequireFromString("5"),
			Floor:   decimal.RequireFromString("500"),
			Ceiling: decimal.RequireFromString("10000"),
		},
	}
}

func (f *fakeCommissionConfig) GetConfiguration(ctx context.Context) (*commissionModel.Configuration, error) {
	cfg := f.config
	return &cfg, nil
}

func (f *fakeCommissionConfig) UpdateConfiguration(ctx context.Context, adminID uuid.UUID, req *commissionModel.UpdateConfigRequest) (*commissionModel.Configuration, error) {
	f.config.Rate = req.Rate
	f.config.Floor = req.Floor
	f.config.Ceiling = req.Ceiling
	cfg := f.config
	return &cfg, nil
}

func (f *fakeCommissionConfig) ComputeCommission(ctx context.Context, rent decimal.Decimal) (decimal.Decimal, *commissionModel.Configuration, error) {
	commission := rent.Mul(f.config.Rate).Div(decimal.NewFromInt(100))
	if commission.LessThan(f.config.Floor) {
		commission = f.config.Floor
	}
	if commission.GreaterThan(f.config.Ceiling) {
		commission = f.config.Ceiling
	}
	cfg := f.config
	return commission, &cfg, nil
}
