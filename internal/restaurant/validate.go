package restaurant

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid request")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

func ValidateReview(r Review) error {
	if strings.TrimSpace(r.ItemID) == "" || r.Rating == 0 || strings.TrimSpace(r.Text) == "" {
		return invalid("item_id, rating and text are required")
	}
	if r.Rating < 1 || r.Rating > 5 {
		return invalid("rating must be between 1 and 5")
	}
	return nil
}

func ValidateReservation(r Reservation) error {
	if strings.TrimSpace(r.Name) == "" || strings.TrimSpace(r.Phone) == "" || r.Guests == 0 ||
		strings.TrimSpace(r.Date) == "" || strings.TrimSpace(r.Time) == "" {
		return invalid("name, phone, guests, date and time are required for a reservation")
	}
	if r.Guests < 0 {
		return invalid("guests must be positive")
	}
	return nil
}

func ValidateStatus(status string) error {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return nil
	}
	return invalid("status must be pending, approved or rejected")
}

func ValidateMenuItem(f MenuItemFields) error {
	if f.Name == nil || strings.TrimSpace(*f.Name) == "" || f.Price == nil || *f.Price == 0 {
		return invalid("name and price are required")
	}
	if *f.Price < 0 {
		return invalid("price must not be negative")
	}
	return nil
}

func ValidateOrder(o Order) error {
	if len(o.Items) == 0 {
		return invalid("items array is required")
	}
	if o.Subtotal < 0 || o.Total < 0 || o.Tax < 0 {
		return invalid("subtotal, tax and total must not be negative")
	}
	return nil
}

func ValidateNotification(n Notification) error {
	if n.Type == "" || strings.TrimSpace(n.To) == "" {
		return invalid("type and to (email) are required")
	}
	switch n.Type {
	case NotifyReservationConfirmation, NotifyReservationStatusUpdate, NotifyOrderConfirmation, NotifyWelcome:
		return nil
	}
	return invalid("unknown notification type %q", n.Type)
}
