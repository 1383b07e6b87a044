package inventory

import (
	"context"
	"sync"

	"github.com/ims/backend/internal/domain/catalog"
	"github.com/ims/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to the repositories
// the stock ledger writes to. When a function is executed within a
// scope, the balance update and the movement append are part of the
// same database transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the ledger repositories
// within a transaction. All repositories returned share the same
// underlying database transaction.
type TransactionalRepositories interface {
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
	// MovementRepo returns the movement repository scoped to the current transaction
	MovementRepo() inventory.MovementRepository
}

// NoOpTransactionScope is a transaction scope that doesn't use database
// transactions. A mutex keeps concurrent Execute calls mutually
// exclusive so the scope still honors the atomic-commit contract: a
// balance save and a movement append inside one Execute can never
// interleave with another writer's. Useful for testing or when
// transaction support is not required.
type NoOpTransactionScope struct {
	mu           sync.Mutex
	productRepo  catalog.ProductRepository
	movementRepo inventory.MovementRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	productRepo catalog.ProductRepository,
	movementRepo inventory.MovementRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// Execute runs the function while holding the scope's lock.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s)
}

// ProductRepo returns the product repository.
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository {
	return s.productRepo
}

// MovementRepo returns the movement repository.
func (s *NoOpTransactionScope) MovementRepo() inventory.MovementRepository {
	return s.movementRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
