package parser

import "errors"

var (
	// ErrTransactionOpen is returned by Begin while a transaction is open.
	ErrTransactionOpen = errors.New("parser: transaction already open")
	// ErrNoTransaction is returned by Commit and Rollback without an open transaction.
	ErrNoTransaction = errors.New("parser: no open transaction")
)

// Begin records the cursor so that Rollback can return to it.
// Transactions do not nest.
func (p *Parser) Begin() error {
	if p.inTx {
		return ErrTransactionOpen
	}
	p.saved = p.cursor
	p.inTx = true
	return nil
}

// Commit keeps everything consumed since Begin.
func (p *Parser) Commit() error {
	if !p.inTx {
		return ErrNoTransaction
	}
	p.inTx = false
	return nil
}

// Rollback restores the cursor recorded by Begin.
func (p *Parser) Rollback() error {
	if !p.inTx {
		return ErrNoTransaction
	}
	p.cursor = p.saved
	p.inTx = false
	return nil
}

// Transactional runs fn inside a transaction. When fn fails with a parse
// error the cursor is rolled back, the error is dropped and ok is false.
// Any other error, including transaction misuse, is returned.
func (p *Parser) Transactional(fn func() error) (ok bool, err error) {
	if err := p.Begin(); err != nil {
		return false, err
	}
	if fnErr := fn(); fnErr != nil {
		if err := p.Rollback(); err != nil {
			return false, err
		}
		var parseErr *Error
		if errors.As(fnErr, &parseErr) {
			return false, nil
		}
		return false, fnErr
	}
	return true, p.Commit()
}
