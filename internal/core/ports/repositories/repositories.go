package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	DebtRepo        DebtAccountRepositoryFacade
	TransactionRepo TransactionRepositoryFacade
	ReceiptRepo     ReceiptRepositoryFacade
}
