package hostfuncs

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/c123chain/cdk-go/domain/entities"
)

// ErrInsufficientFunds is returned by Ledger.Transfer when the sender's
// balance is below the amount.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ContractCaller executes a nested contract invocation for call_contract.
// The returned bytes are handed to the calling contract unchanged.
type ContractCaller interface {
	CallContract(ctx context.Context, from, to entities.Address, input []byte) ([]byte, error)
}

// ContractCallerFunc adapts a function to ContractCaller.
type ContractCallerFunc func(ctx context.Context, from, to entities.Address, input []byte) ([]byte, error)

func (f ContractCallerFunc) CallContract(ctx context.Context, from, to entities.Address, input []byte) ([]byte, error) {
	return f(ctx, from, to, input)
}

// Migrator deploys replacement code for migrate_contract and returns the
// address of the new contract.
type Migrator interface {
	Migrate(ctx context.Context, from entities.Address, meta entities.ContractMeta) (entities.Address, error)
}

// MigratorFunc adapts a function to Migrator.
type MigratorFunc func(ctx context.Context, from entities.Address, meta entities.ContractMeta) (entities.Address, error)

func (f MigratorFunc) Migrate(ctx context.Context, from entities.Address, meta entities.ContractMeta) (entities.Address, error) {
	return f(ctx, from, meta)
}

// Env is the chain state an invocation observes.
type Env struct {
	Creator   entities.Address
	Invoker   entities.Address
	PreCaller entities.Address
	Self      entities.Address
	Block     entities.BlockHeader

	// Ledger holds account balances for send. A nil Ledger rejects every
	// transfer.
	Ledger *Ledger

	// Validators maps validator addresses to their power. Unknown
	// validators have zero power.
	Validators map[entities.Address]entities.U128

	// Caller serves call_contract. Without one every call fails.
	Caller ContractCaller

	// Migrator serves migrate_contract. Without one every migration is
	// rejected.
	Migrator Migrator
}

// TotalPower sums the power of every validator. It fails when the sum does
// not fit in 128 bits.
func (e *Env) TotalPower() (entities.U128, error) {
	sum := entities.U128{}.Uint256()
	for _, p := range e.Validators {
		sum.Add(sum, p.Uint256())
	}
	total, ok := entities.U128FromUint256(sum)
	if !ok {
		return entities.U128{}, fmt.Errorf("total power overflows u128")
	}
	return total, nil
}

// Ledger tracks account balances. It is safe for concurrent use.
type Ledger struct {
	mu       sync.Mutex
	balances map[entities.Address]entities.U128
}

// NewLedger creates a ledger with the given opening balances.
func NewLedger(balances map[entities.Address]entities.U128) *Ledger {
	l := &Ledger{balances: make(map[entities.Address]entities.U128, len(balances))}
	for addr, amount := range balances {
		l.balances[addr] = amount
	}
	return l
}

// Balance returns the balance of addr.
func (l *Ledger) Balance(addr entities.Address) entities.U128 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balances[addr]
}

// SetBalance overwrites the balance of addr.
func (l *Ledger) SetBalance(addr entities.Address, amount entities.U128) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[addr] = amount
}

// Transfer moves amount from one account to another.
func (l *Ledger) Transfer(from, to entities.Address, amount entities.U128) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	have := l.balances[from]
	if have.Cmp(amount) < 0 {
		return fmt.Errorf("%w: %s has %s, need %s", ErrInsufficientFunds, from, have, amount)
	}
	if from == to {
		return nil
	}
	credited := l.balances[to].Uint256()
	credited.Add(credited, amount.Uint256())
	next, ok := entities.U128FromUint256(credited)
	if !ok {
		return fmt.Errorf("balance of %s overflows u128", to)
	}
	remaining := have.Uint256()
	remaining.Sub(remaining, amount.Uint256())
	left, _ := entities.U128FromUint256(remaining)

	l.balances[from] = left
	l.balances[to] = next
	return nil
}
