package repositories

// RepositoryProvider bundles all repository facades for service construction.
type RepositoryProvider struct {
	InvoiceRepo InvoiceRepositoryFacade
	UserRepo    UserRepositoryFacade
}
