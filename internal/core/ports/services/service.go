package services

// ServiceContainer holds all service facades for handler construction.
// Chain and Documents may be nil when the corresponding backing settings are
// absent; consumers treat that as a first-class unavailable state.
type ServiceContainer struct {
	User               UserSvcFacade
	Invoice            InvoiceSvcFacade
	Chain              ChainClientSvc
	Reconciliation     ReconciliationSvcFacade
	Documents          DocumentSvcFacade
	GoogleOAuthHandler GoogleOAuthSvcFacade
}
