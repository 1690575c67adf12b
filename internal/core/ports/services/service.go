package services

// ServiceContainer holds instances of all the application services.
// Handlers and the scheduler reach the core exclusively through it.
type ServiceContainer struct {
	Debt      DebtSvcFacade
	Journal   JournalSvcFacade
	Reporting ReportingService
}
