package gormrepo

import (
	"context"
	"errors"
	"testing"
	"time"

	"lamf-backoffice/internal/domain/apperr"
	"lamf-backoffice/internal/domain/loan"
	"lamf-backoffice/internal/domain/uow"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// sqlite drops FOR UPDATE, so the lock itself is checked against the MySQL dialect.
func openMockMySQL(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		DisableAutomaticPing: true,
		TranslateError:       true,
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}
	return db, mock
}

var loanColumns = []string{
	"id", "application_id", "sanctioned_amount", "outstanding_amount", "status",
	"start_date", "next_emi_date", "disbursed_at", "closed_at", "created_at", "updated_at",
}

func TestWithinLoanTx_LocksRowForUpdate(t *testing.T) {
	db, mock := openMockMySQL(t)
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `loans` WHERE id = \\? .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(loanColumns).
			AddRow("L1", "A1", "500000", "500000", "ACTIVE", start, start.AddDate(0, 1, 0), start, nil, start, start))
	mock.ExpectExec("UPDATE `loans` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := NewGormUoW(db).WithinLoanTx(context.Background(), "L1", func(r uow.Repos, l *loan.Loan) error {
		if err := l.Repay(d("200000"), start); err != nil {
			return err
		}
		return r.Loans.Update(context.Background(), l)
	})
	if err != nil {
		t.Fatalf("WithinLoanTx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithinLoanTx_BusinessErrorRollsBack(t *testing.T) {
	db, mock := openMockMySQL(t)
	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	closed := start.AddDate(0, 2, 0)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `loans` .*FOR UPDATE").
		WillReturnRows(sqlmock.NewRows(loanColumns).
			AddRow("L1", "A1", "500000", "0", "CLOSED", start, start.AddDate(0, 1, 0), start, closed, start, closed))
	mock.ExpectRollback()

	err := NewGormUoW(db).WithinLoanTx(context.Background(), "L1", func(r uow.Repos, l *loan.Loan) error {
		if err := l.Repay(d("1"), closed); err != nil {
			return err
		}
		return r.Loans.Update(context.Background(), l)
	})
	if !errors.Is(err, apperr.ErrInvalidState) {
		t.Fatalf("want ErrInvalidState unchanged through the tx, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestWithinTx_CommitFailureIsPersistence(t *testing.T) {
	db, mock := openMockMySQL(t)

	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(errors.New("connection reset"))

	err := NewGormUoW(db).WithinTx(context.Background(), func(uow.Repos) error { return nil })
	if !errors.Is(err, apperr.ErrPersistence) {
		t.Fatalf("want ErrPersistence, got %v", err)
	}
}
