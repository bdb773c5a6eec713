package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/elitecars/rental-backend/internal/models"
)

func uintPtr(v uint) *uint { return &v }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestQuote(t *testing.T) {
	days, total, err := Quote(date("2025-01-01"), date("2025-01-04"), 50)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if days != 3 {
		t.Fatalf("expected 3 days, got %d", days)
	}
	if total != 150 {
		t.Fatalf("expected total 150, got %v", total)
	}
}

func TestQuoteRejectsBadDates(t *testing.T) {
	if _, _, err := Quote(date("2025-01-04"), date("2025-01-04"), 50); !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("expected ErrInvalidDates for equal dates, got %v", err)
	}
	if _, _, err := Quote(date("2025-01-04"), date("2025-01-01"), 50); !errors.Is(err, ErrInvalidDates) {
		t.Fatalf("expected ErrInvalidDates for inverted dates, got %v", err)
	}
}

func TestRentalDaysFloorsAtOne(t *testing.T) {
	pickup := date("2025-01-01")
	returnDate := pickup.Add(6 * time.Hour)
	if got := RentalDays(pickup, returnDate); got != 1 {
		t.Fatalf("expected 1 day for a partial day, got %d", got)
	}
}

func TestPlanTransitionConfirmOccupiesResources(t *testing.T) {
	b := &models.Booking{
		CarID:    7,
		DriverID: uintPtr(3),
		Status:   models.BookingStatusPending,
	}
	b.ID = 1

	p, err := PlanTransition(b, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("PlanTransition returned error: %v", err)
	}
	if p.CarAvailable == nil || *p.CarAvailable {
		t.Fatalf("expected car to become unavailable")
	}
	if len(p.OccupyDrivers) != 1 || p.OccupyDrivers[0] != 3 {
		t.Fatalf("expected driver 3 occupied, got %v", p.OccupyDrivers)
	}
	if len(p.ReleaseDrivers) != 0 {
		t.Fatalf("expected no driver releases, got %v", p.ReleaseDrivers)
	}
	if p.Reopen {
		t.Fatalf("pending -> confirmed must not be flagged as reopen")
	}
}

func TestPlanTransitionCompleteReleasesResources(t *testing.T) {
	b := &models.Booking{
		CarID:    7,
		DriverID: uintPtr(3),
		Status:   models.BookingStatusConfirmed,
	}
	b.ID = 1

	p, err := PlanTransition(b, models.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("PlanTransition returned error: %v", err)
	}
	if p.CarAvailable == nil || !*p.CarAvailable {
		t.Fatalf("expected car to become available")
	}
	if len(p.ReleaseDrivers) != 1 || p.ReleaseDrivers[0] != 3 {
		t.Fatalf("expected driver 3 released, got %v", p.ReleaseDrivers)
	}
}

func TestPlanTransitionCancelReleasesEvenFromPending(t *testing.T) {
	b := &models.Booking{CarID: 7, Status: models.BookingStatusPending}
	b.ID = 1

	p, err := PlanTransition(b, models.BookingStatusCancelled)
	if err != nil {
		t.Fatalf("PlanTransition returned error: %v", err)
	}
	if p.CarAvailable == nil || !*p.CarAvailable {
		t.Fatalf("cancelling must release the car")
	}
}

func TestPlanTransitionInvalidEdges(t *testing.T) {
	cases := []struct {
		from models.BookingStatus
		to   models.BookingStatus
	}{
		{models.BookingStatusPending, models.BookingStatusCompleted},
		{models.BookingStatusPending, models.BookingStatusPending},
		{models.BookingStatusCompleted, models.BookingStatusCancelled},
		{models.BookingStatusCancelled, models.BookingStatusCompleted},
		{models.BookingStatusConfirmed, models.BookingStatusPending},
	}
	for _, c := range cases {
		b := &models.Booking{CarID: 1, Status: c.from}
		b.ID = 1
		if _, err := PlanTransition(b, c.to); !errors.Is(err, ErrInvalidTransition) {
			t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", c.from, c.to, err)
		}
	}
}

func TestPlanTransitionReopenFlagged(t *testing.T) {
	b := &models.Booking{CarID: 7, DriverID: uintPtr(2), Status: models.BookingStatusCompleted}
	b.ID = 1

	p, err := PlanTransition(b, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("PlanTransition returned error: %v", err)
	}
	if !p.Reopen {
		t.Fatalf("completed -> confirmed must be flagged as reopen")
	}
	if p.CarAvailable == nil || *p.CarAvailable {
		t.Fatalf("reopen must re-occupy the car")
	}
	if len(p.OccupyDrivers) != 1 || p.OccupyDrivers[0] != 2 {
		t.Fatalf("reopen must re-occupy the driver, got %v", p.OccupyDrivers)
	}
}

func TestPlanDriverChangeReassignment(t *testing.T) {
	b := &models.Booking{
		CarID:    7,
		DriverID: uintPtr(1),
		Status:   models.BookingStatusConfirmed,
	}
	b.ID = 1

	p := PlanDriverChange(b, uintPtr(2))
	if len(p.ReleaseDrivers) != 1 || p.ReleaseDrivers[0] != 1 {
		t.Fatalf("expected driver 1 released, got %v", p.ReleaseDrivers)
	}
	if len(p.OccupyDrivers) != 1 || p.OccupyDrivers[0] != 2 {
		t.Fatalf("expected driver 2 occupied, got %v", p.OccupyDrivers)
	}
}

func TestPlanDriverChangeSameDriverNoops(t *testing.T) {
	b := &models.Booking{CarID: 7, DriverID: uintPtr(1), Status: models.BookingStatusConfirmed}
	b.ID = 1

	p := PlanDriverChange(b, uintPtr(1))
	if len(p.ReleaseDrivers) != 0 || len(p.OccupyDrivers) != 0 {
		t.Fatalf("same driver must not toggle availability, got release=%v occupy=%v",
			p.ReleaseDrivers, p.OccupyDrivers)
	}
}

func TestPlanDriverChangeOutsideConfirmedSkipsAvailability(t *testing.T) {
	b := &models.Booking{CarID: 7, DriverID: uintPtr(1), Status: models.BookingStatusPending}
	b.ID = 1

	p := PlanDriverChange(b, uintPtr(2))
	if len(p.ReleaseDrivers) != 0 || len(p.OccupyDrivers) != 0 {
		t.Fatalf("pending booking driver change must not touch availability")
	}
}

func TestPlanDriverChangeRemoval(t *testing.T) {
	b := &models.Booking{CarID: 7, DriverID: uintPtr(1), Status: models.BookingStatusConfirmed}
	b.ID = 1

	p := PlanDriverChange(b, nil)
	if len(p.ReleaseDrivers) != 1 || p.ReleaseDrivers[0] != 1 {
		t.Fatalf("removing the driver must release them, got %v", p.ReleaseDrivers)
	}
	if len(p.OccupyDrivers) != 0 {
		t.Fatalf("removal must not occupy anyone, got %v", p.OccupyDrivers)
	}
}

func TestPlanPaymentPaidPromotesPending(t *testing.T) {
	b := &models.Booking{CarID: 7, DriverID: uintPtr(4), Status: models.BookingStatusPending}
	b.ID = 1

	p := PlanPayment(b, models.PaymentStatusPaid)
	if p.ToStatus != models.BookingStatusConfirmed {
		t.Fatalf("paid must promote pending to confirmed, got %s", p.ToStatus)
	}
	if p.Updates["status"] != models.BookingStatusConfirmed {
		t.Fatalf("booking patch missing the promoted status")
	}
	if p.CarAvailable == nil || *p.CarAvailable {
		t.Fatalf("promotion must occupy the car")
	}
	if len(p.OccupyDrivers) != 1 || p.OccupyDrivers[0] != 4 {
		t.Fatalf("promotion must occupy the driver, got %v", p.OccupyDrivers)
	}
}

func TestPlanPaymentPaidNeverDemotes(t *testing.T) {
	for _, status := range []models.BookingStatus{
		models.BookingStatusConfirmed,
		models.BookingStatusCompleted,
	} {
		b := &models.Booking{CarID: 7, Status: status}
		b.ID = 1
		p := PlanPayment(b, models.PaymentStatusPaid)
		if p.ToStatus != status {
			t.Errorf("paid on %s booking must not change status, got %s", status, p.ToStatus)
		}
		if _, ok := p.Updates["status"]; ok {
			t.Errorf("paid on %s booking must not patch status", status)
		}
	}
}

func TestPlanPaymentFailedLeavesStatus(t *testing.T) {
	b := &models.Booking{CarID: 7, Status: models.BookingStatusPending}
	b.ID = 1

	p := PlanPayment(b, models.PaymentStatusFailed)
	if p.ToStatus != models.BookingStatusPending {
		t.Fatalf("failed payment must leave status alone, got %s", p.ToStatus)
	}
	if p.CarAvailable != nil {
		t.Fatalf("failed payment must not touch car availability")
	}
}

func TestRatingPatch(t *testing.T) {
	b := &models.Booking{Status: models.BookingStatusCompleted}
	b.ID = 1

	patch, err := RatingPatch(b, 4, "Great trip")
	if err != nil {
		t.Fatalf("RatingPatch returned error: %v", err)
	}
	if patch["rating"] != 4 {
		t.Fatalf("expected rating 4 in patch, got %v", patch["rating"])
	}
	if patch["review_text"] != "Great trip" {
		t.Fatalf("expected review text in patch, got %v", patch["review_text"])
	}
}

func TestRatingPatchGuards(t *testing.T) {
	confirmed := &models.Booking{Status: models.BookingStatusConfirmed}
	if _, err := RatingPatch(confirmed, 4, ""); !errors.Is(err, ErrNotCompleted) {
		t.Fatalf("expected ErrNotCompleted, got %v", err)
	}

	four := 4
	rated := &models.Booking{Status: models.BookingStatusCompleted, Rating: &four}
	if _, err := RatingPatch(rated, 5, "again"); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("expected ErrAlreadyRated, got %v", err)
	}
	if *rated.Rating != 4 {
		t.Fatalf("rejected rating must not alter the stored value")
	}

	fresh := &models.Booking{Status: models.BookingStatusCompleted}
	if _, err := RatingPatch(fresh, 0, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 0, got %v", err)
	}
	if _, err := RatingPatch(fresh, 6, ""); !errors.Is(err, ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating for 6, got %v", err)
	}
}

// TestBookingScenario walks the whole storefront flow: quote, payment
// promotion, completion, and the one-shot rating.
func TestBookingScenario(t *testing.T) {
	days, total, err := Quote(date("2025-01-01"), date("2025-01-04"), 50)
	if err != nil {
		t.Fatalf("Quote returned error: %v", err)
	}
	if days != 3 || total != 150 {
		t.Fatalf("expected 3 days for 150, got %d days for %v", days, total)
	}

	b := &models.Booking{
		CarID:         7,
		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		TotalPrice:    total,
	}
	b.ID = 1

	carAvailable := true

	paid := PlanPayment(b, models.PaymentStatusPaid)
	if paid.ToStatus != models.BookingStatusConfirmed {
		t.Fatalf("marking paid should confirm the booking, got %s", paid.ToStatus)
	}
	b.Status = paid.ToStatus
	b.PaymentStatus = models.PaymentStatusPaid
	carAvailable = *paid.CarAvailable
	if carAvailable {
		t.Fatalf("car should be unavailable after confirmation")
	}

	done, err := PlanTransition(b, models.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("completing confirmed booking failed: %v", err)
	}
	b.Status = done.ToStatus
	carAvailable = *done.CarAvailable
	if !carAvailable {
		t.Fatalf("car should be available after completion")
	}

	patch, err := RatingPatch(b, 4, "Great trip")
	if err != nil {
		t.Fatalf("rating a completed booking failed: %v", err)
	}
	rating := patch["rating"].(int)
	b.Rating = &rating

	if _, err := RatingPatch(b, 5, "changed my mind"); !errors.Is(err, ErrAlreadyRated) {
		t.Fatalf("second rating must be rejected, got %v", err)
	}
	if *b.Rating != 4 {
		t.Fatalf("stored rating must survive the second attempt, got %d", *b.Rating)
	}
}
