package models

// PaymentIntentRequest asks for a hosted payment for a booking.
type PaymentIntentRequest struct {
	Amount    float64 `json:"amount" binding:"required"`
	BookingID string  `json:"bookingId"`
}

// PaymentIntent is what the client needs to complete a hosted payment.
type PaymentIntent struct {
	ID           string `json:"id"`
	ClientSecret string `json:"clientSecret"`
}

// ConfirmPaymentRequest links a completed payment intent to a booking.
type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
}
