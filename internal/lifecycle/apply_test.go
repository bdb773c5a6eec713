package lifecycle

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elitecars/rental-backend/internal/models"
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

func TestApplyRunsAllWritesInOneTransaction(t *testing.T) {
	db, mock := newMockDB(t)

	b := &models.Booking{CarID: 7, DriverID: uintPtr(3), Status: models.BookingStatusConfirmed}
	b.ID = 1
	plan, err := PlanTransition(b, models.BookingStatusCompleted)
	if err != nil {
		t.Fatalf("PlanTransition: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cars" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "drivers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Apply(db, plan); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyStaleStatusRollsBack(t *testing.T) {
	db, mock := newMockDB(t)

	b := &models.Booking{CarID: 7, Status: models.BookingStatusPending}
	b.ID = 1
	plan, err := PlanTransition(b, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("PlanTransition: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := Apply(db, plan); !errors.Is(err, ErrStaleStatus) {
		t.Fatalf("expected ErrStaleStatus, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyReopenConflictRejected(t *testing.T) {
	db, mock := newMockDB(t)

	b := &models.Booking{CarID: 7, Status: models.BookingStatusCompleted}
	b.ID = 1
	plan, err := PlanTransition(b, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("PlanTransition: %v", err)
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	if err := Apply(db, plan); !errors.Is(err, ErrResourceConflict) {
		t.Fatalf("expected ErrResourceConflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestApplyForcedReopenSkipsConflictCheck(t *testing.T) {
	db, mock := newMockDB(t)

	b := &models.Booking{CarID: 7, Status: models.BookingStatusCancelled}
	b.ID = 1
	plan, err := PlanTransition(b, models.BookingStatusConfirmed)
	if err != nil {
		t.Fatalf("PlanTransition: %v", err)
	}
	plan.Force = true

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "cars" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := Apply(db, plan); err != nil {
		t.Fatalf("Apply returned error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
