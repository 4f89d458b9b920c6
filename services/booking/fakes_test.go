package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	bookingRepo "rideconnect/database/repository/booking"
	"rideconnect/models"
	"rideconnect/services/pricing"
	"rideconnect/services/timeslot"
)

type fakeRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{bookings: map[string]models.Booking{}}
}

func (r *fakeRepo) Create(ctx context.Context, b models.Booking) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.bookings[b.ID] = b
	return &b, nil
}

func (r *fakeRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	return &b, nil
}

func (r *fakeRepo) filter(keep func(models.Booking) bool) []models.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Booking{}
	for _, b := range r.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeRepo) List(ctx context.Context) ([]models.Booking, error) {
	return r.filter(func(models.Booking) bool { return true }), nil
}

func (r *fakeRepo) ListByDate(ctx context.Context, date string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Date == date }), nil
}

func (r *fakeRepo) ListByDateRange(ctx context.Context, from, to string) ([]models.Booking, error) {
	return r.filter(func(b models.Booking) bool { return b.Date >= from && b.Date <= to }), nil
}

func (r *fakeRepo) CountByStatus(ctx context.Context, status models.BookingStatus) (int64, error) {
	return int64(len(r.filter(func(b models.Booking) bool { return b.Status == status }))), nil
}

func (r *fakeRepo) UpdateStatus(ctx context.Context, id string, status models.BookingStatus, paymentIntentID string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	b.Status = status
	if paymentIntentID != "" {
		b.PaymentIntentID = paymentIntentID
	}
	r.bookings[id] = b
	return &b, nil
}

func (r *fakeRepo) UpdateCalendarInfo(ctx context.Context, id string, info models.CalendarInfo) error {
	return nil
}

func (r *fakeRepo) EnsureIndexes(ctx context.Context) error { return nil }

// fakeSlots tracks availability per "date|key".
type fakeSlots struct {
	open     map[string]bool
	booked   []string
	released []string
}

func newFakeSlots(open ...string) *fakeSlots {
	f := &fakeSlots{open: map[string]bool{}}
	for _, k := range open {
		f.open[k] = true
	}
	return f
}

func (f *fakeSlots) EnsureSlotsForDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) ListAvailable(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) IsOpen(ctx context.Context, date string, key timeslot.SlotKey) (bool, error) {
	return f.open[date+"|"+key.String()], nil
}

func (f *fakeSlots) MarkBooked(ctx context.Context, date, key string) error {
	f.booked = append(f.booked, date+"|"+key)
	f.open[date+"|"+key] = false
	return nil
}

func (f *fakeSlots) ReleaseSlot(ctx context.Context, date, key string) error {
	f.released = append(f.released, date+"|"+key)
	f.open[date+"|"+key] = true
	return nil
}

func (f *fakeSlots) CreateSlot(ctx context.Context, req models.CreateSlotRequest) (*models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) UpdateSlot(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error) {
	return nil, nil
}

func (f *fakeSlots) DeleteSlot(ctx context.Context, id string) (bool, error) { return false, nil }

func (f *fakeSlots) GenerateDefaultSlots(date string) []models.TimeSlot { return nil }

type fakeQuoter struct {
	result pricing.QuoteResult
	last   models.QuoteRequest
}

func (q *fakeQuoter) Quote(ctx context.Context, req models.QuoteRequest) pricing.QuoteResult {
	q.last = req
	return q.result
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (e *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if e.err != nil {
		return nil, e.err
	}
	e.tasks = append(e.tasks, task)
	return &asynq.TaskInfo{ID: uuid.New().String(), Type: task.Type()}, nil
}

type fakeGateway struct {
	info    *IntentInfo
	created []float64
}

func (g *fakeGateway) CreateIntent(ctx context.Context, amount float64, bookingID string) (*models.PaymentIntent, error) {
	g.created = append(g.created, amount)
	return &models.PaymentIntent{ID: "pi_test", ClientSecret: "pi_test_secret"}, nil
}

func (g *fakeGateway) IntentStatus(ctx context.Context, intentID string) (*IntentInfo, error) {
	return g.info, nil
}

var fixedNow = time.Date(2025, 6, 10, 20, 0, 0, 0, time.UTC)

type testDeps struct {
	repo    *fakeRepo
	slots   *fakeSlots
	quoter  *fakeQuoter
	tasks   *fakeEnqueuer
	gateway *fakeGateway
}

func newTestService(open ...string) (*DefaultBookingService, *testDeps) {
	d := &testDeps{
		repo:  newFakeRepo(),
		slots: newFakeSlots(open...),
		quoter: &fakeQuoter{result: pricing.QuoteResult{
			Status: pricing.StatusOK,
			Quote: &models.FareQuote{
				TotalPrice: 42.5,
				RateType:   models.RateStandard,
				Breakdown:  models.FareBreakdown{TimeCharge: 42.5},
			},
		}},
		tasks:   &fakeEnqueuer{},
		gateway: &fakeGateway{},
	}
	svc := &DefaultBookingService{
		Repo:     d.repo,
		Slots:    d.slots,
		Pricing:  d.quoter,
		Payments: d.gateway,
		Tasks:    d.tasks,
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
	}
	return svc, d
}
