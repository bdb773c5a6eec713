package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm.Open: %v", err)
	}
	return db, mock
}

func performJSON(t *testing.T, handler gin.HandlerFunc, userID uint, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Set("userId", userID)
	c.Set("userRole", "customer")

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler(c)
	return w
}

func TestCreateBookingRejectsMalformedDates(t *testing.T) {
	db, _ := newMockDB(t)

	w := performJSON(t, CreateBooking(db), 1,
		`{"carId":1,"pickupDate":"01/01/2025","returnDate":"2025-01-04","pickupLocation":"Airport"}`)

	if w.Code != 400 {
		t.Fatalf("expected 400 for malformed pickup date, got %d", w.Code)
	}
}

func TestCreateBookingRejectsInvertedDates(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price_per_day", "available"}).
		AddRow(1, "Toyota Land Cruiser", 50.0, true)
	mock.ExpectQuery(`SELECT \* FROM "cars"`).WillReturnRows(rows)

	w := performJSON(t, CreateBooking(db), 1,
		`{"carId":1,"pickupDate":"2025-01-04","returnDate":"2025-01-01","pickupLocation":"Airport"}`)

	if w.Code != 400 {
		t.Fatalf("expected 400 for return before pickup, got %d", w.Code)
	}
}

func TestCreateBookingRejectsUnavailableCar(t *testing.T) {
	db, mock := newMockDB(t)

	rows := sqlmock.NewRows([]string{"id", "name", "price_per_day", "available"}).
		AddRow(1, "Toyota Land Cruiser", 50.0, false)
	mock.ExpectQuery(`SELECT \* FROM "cars"`).WillReturnRows(rows)

	w := performJSON(t, CreateBooking(db), 1,
		`{"carId":1,"pickupDate":"2025-01-01","returnDate":"2025-01-04","pickupLocation":"Airport"}`)

	if w.Code != 409 {
		t.Fatalf("expected 409 for unavailable car, got %d", w.Code)
	}
}

func TestSubmitBookingRejectsShortPhone(t *testing.T) {
	db, _ := newMockDB(t)

	w := performJSON(t, SubmitBooking(db), 1, `{"phone":"12345"}`)

	if w.Code != 400 {
		t.Fatalf("expected 400 for short phone, got %d", w.Code)
	}
}
