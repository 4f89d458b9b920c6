package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"rideconnect/models"
	"rideconnect/services/booking"
	"rideconnect/services/pricing"
	"rideconnect/services/timeslot"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSlots struct {
	timeslot.SlotAvailabilityManager
	slots     []models.TimeSlot
	err       error
	deleted   bool
	createReq models.CreateSlotRequest
}

func (s *stubSlots) EnsureSlotsForDate(ctx context.Context, date string) ([]models.TimeSlot, error) {
	return s.slots, s.err
}

func (s *stubSlots) ListAvailable(ctx context.Context, date string) ([]models.TimeSlot, error) {
	out := []models.TimeSlot{}
	for _, sl := range s.slots {
		if sl.IsAvailable {
			out = append(out, sl)
		}
	}
	return out, s.err
}

func (s *stubSlots) CreateSlot(ctx context.Context, req models.CreateSlotRequest) (*models.TimeSlot, error) {
	s.createReq = req
	if err := timeslot.ValidateSlot(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	return &models.TimeSlot{ID: "new", Date: req.Date, StartTime: req.StartTime, EndTime: req.EndTime, IsAvailable: true}, nil
}

func (s *stubSlots) UpdateSlot(ctx context.Context, id string, upd models.SlotUpdate) (*models.TimeSlot, error) {
	return nil, timeslot.ErrNotFound
}

func (s *stubSlots) DeleteSlot(ctx context.Context, id string) (bool, error) {
	return s.deleted, nil
}

type stubBookings struct {
	booking.BookingService
	created *models.Booking
	err     error
	stats   *models.DashboardStats
}

func (s *stubBookings) CreateBooking(ctx context.Context, in models.BookingInput) (*models.Booking, error) {
	return s.created, s.err
}

func (s *stubBookings) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	return s.created, s.err
}

func (s *stubBookings) CreatePaymentIntent(ctx context.Context, req models.PaymentIntentRequest) (*models.PaymentIntent, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.PaymentIntent{ID: "pi_1", ClientSecret: "secret"}, nil
}

func (s *stubBookings) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	return s.stats, s.err
}

func performJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestQuoteHandler_DegradedQuote(t *testing.T) {
	h := NewPricingHandler(pricing.NewFareEstimator(pricing.DefaultPolicy(), nil, nil, zap.NewNop()))
	r := gin.New()
	r.POST("/quote", h.QuoteHandler)

	w := performJSON(r, http.MethodPost, "/quote", gin.H{
		"pickupLocation":  "123 Main St",
		"dropoffLocation": "456 Oak Ave",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "degraded", body["status"])
	assert.Equal(t, 16.0, body["price"])
	display := body["display"].(map[string]any)
	assert.Equal(t, "$16.00", display["priceText"])
	quote := body["quote"].(map[string]any)
	assert.Equal(t, "standard", quote["rateType"])
}

func TestQuoteHandler_MissingFields(t *testing.T) {
	h := NewPricingHandler(pricing.NewFareEstimator(pricing.DefaultPolicy(), nil, nil, zap.NewNop()))
	r := gin.New()
	r.POST("/quote", h.QuoteHandler)

	w := performJSON(r, http.MethodPost, "/quote", gin.H{"pickupLocation": "Bellagio"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimeslotHandlers(t *testing.T) {
	slots := &stubSlots{slots: []models.TimeSlot{
		{ID: "1", Date: "2099-01-01", StartTime: "15:00", EndTime: "15:15", IsAvailable: false},
		{ID: "2", Date: "2099-01-01", StartTime: "15:15", EndTime: "15:30", IsAvailable: true},
	}}
	h := NewTimeslotHandler(slots)
	r := gin.New()
	r.GET("/timeslots/:date", h.GetTimeslotsHandler)
	r.GET("/timeslots/:date/available", h.GetAvailableTimeslotsHandler)
	r.POST("/timeslots", h.CreateTimeslotHandler)
	r.PATCH("/timeslots/:id", h.UpdateTimeslotHandler)
	r.DELETE("/timeslots/:id", h.DeleteTimeslotHandler)

	w := performJSON(r, http.MethodGet, "/timeslots/2099-01-01", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.TimeSlot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Len(t, all, 2)

	w = performJSON(r, http.MethodGet, "/timeslots/2099-01-01/available", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var open []models.TimeSlot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &open))
	require.Len(t, open, 1)
	assert.Equal(t, "2", open[0].ID)

	w = performJSON(r, http.MethodPost, "/timeslots", gin.H{"date": "2099-01-02", "startTime": "16:00", "endTime": "15:00"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = performJSON(r, http.MethodPost, "/timeslots", gin.H{"date": "2099-01-02", "startTime": "16:00", "endTime": "16:15"})
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "2099-01-02", slots.createReq.Date)

	w = performJSON(r, http.MethodPatch, "/timeslots/nope", gin.H{"isAvailable": false})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = performJSON(r, http.MethodDelete, "/timeslots/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	slots.deleted = true
	w = performJSON(r, http.MethodDelete, "/timeslots/1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeslotHandler_InvalidDate(t *testing.T) {
	h := NewTimeslotHandler(&stubSlots{err: &timeslot.ValidationError{Message: "invalid date"}})
	r := gin.New()
	r.GET("/timeslots/:date", h.GetTimeslotsHandler)

	w := performJSON(r, http.MethodGet, "/timeslots/tomorrow", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingHandler(t *testing.T) {
	svc := &stubBookings{created: &models.Booking{ID: "b-1", Status: models.BookingPending, EstimatedPrice: 16}}
	h := NewBookingHandler(svc)
	r := gin.New()
	r.POST("/bookings", h.CreateBookingHandler)

	input := gin.H{
		"customerName":    "Dana Reyes",
		"customerEmail":   "dana@example.com",
		"pickupLocation":  "Bellagio Hotel",
		"dropoffLocation": "Luxor Hotel",
		"date":            "2099-01-01",
		"timeSlot":        "15:00-15:15",
	}
	w := performJSON(r, http.MethodPost, "/bookings", input)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "b-1", decode(t, w)["id"])

	svc.err = &booking.BookingError{Code: booking.CodeSlotUnavailable, Message: "taken"}
	w = performJSON(r, http.MethodPost, "/bookings", input)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = performJSON(r, http.MethodPost, "/bookings", gin.H{"customerName": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBookingHandler_NotFound(t *testing.T) {
	svc := &stubBookings{err: &booking.BookingError{Code: booking.CodeNotFound, Message: "booking x not found"}}
	r := gin.New()
	r.GET("/bookings/:id", NewBookingHandler(svc).GetBookingHandler)

	w := performJSON(r, http.MethodGet, "/bookings/x", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreatePaymentIntentHandler(t *testing.T) {
	svc := &stubBookings{}
	r := gin.New()
	r.POST("/create-payment-intent", NewBookingHandler(svc).CreatePaymentIntentHandler)

	w := performJSON(r, http.MethodPost, "/create-payment-intent", gin.H{"amount": 26.5})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", decode(t, w)["clientSecret"])

	svc.err = booking.ErrPaymentsDisabled
	w = performJSON(r, http.MethodPost, "/create-payment-intent", gin.H{"amount": 26.5})
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, true, decode(t, w)["stripeDisabled"])
}

func TestDashboardStatsHandler(t *testing.T) {
	svc := &stubBookings{stats: &models.DashboardStats{TodayRides: 3, TodayRevenue: 120.5, PendingBookings: 1, MonthlyRides: 20}}
	r := gin.New()
	r.GET("/dashboard/stats", NewAdminHandler(svc).DashboardStatsHandler)

	w := performJSON(r, http.MethodGet, "/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"todayRides":3,"todayRevenue":120.5,"pendingBookings":1,"monthlyRides":20}`, w.Body.String())
}
