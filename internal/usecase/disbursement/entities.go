package disbursement

import (
	"lamf-backoffice/internal/domain/application"
	"lamf-backoffice/internal/domain/loan"
)

// Result carries both rows written by one disbursement.
type Result struct {
	Application *application.Application
	Loan        *loan.Loan
}
