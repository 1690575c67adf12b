package services

import (
	"github.com/SscSPs/shop_ledger/internal/core/domain"
	"github.com/SscSPs/shop_ledger/internal/core/ports"
	portsrepo "github.com/SscSPs/shop_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/shop_ledger/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(repos portsrepo.RepositoryProvider, publisher ports.ReminderPublisher, catalog []domain.CategoryTemplate) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Debt: NewDebtService(
			repos.DebtRepo,
			WithReminderPublisher(publisher),
		),
		Journal: NewJournalService(
			repos.TransactionRepo,
			repos.ReceiptRepo,
			WithCategoryCatalog(catalog),
		),
		Reporting: NewReportingService(repos.TransactionRepo, repos.ReceiptRepo, repos.DebtRepo),
	}
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.DebtSvcFacade    = (*debtService)(nil)
	_ portssvc.JournalSvcFacade = (*journalService)(nil)
	_ portssvc.ReportingService = (*reportingService)(nil)
)
