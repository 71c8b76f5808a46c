package blockchain

import (
	"github.com/chainsearch/chainsearch/internal/apperr"
)

func schemaError(format string, args ...any) error {
	return apperr.New(apperr.ErrSchemaValidation, format, args...)
}

func validateTransactions(txs Transactions) error {
	if txs.Transactions == nil {
		return schemaError("transactions: this field is required")
	}
	for i, tx := range txs.Transactions {
		if err := validateTransaction(tx); err != nil {
			return schemaError("transactions[%d].%s", i, apperr.Message(err))
		}
	}
	return nil
}

func validateTransaction(tx Transaction) error {
	if tx.Inputs == nil {
		return schemaError("inputs: this field is required")
	}
	if tx.Outputs == nil {
		return schemaError("outputs: this field is required")
	}
	for i, e := range tx.Inputs {
		if err := validateEntry("inputs", i, e); err != nil {
			return err
		}
	}
	for i, e := range tx.Outputs {
		if err := validateEntry("outputs", i, e); err != nil {
			return err
		}
	}
	if tx.Timestamp.IsZero() {
		return schemaError("timestamp: this field is required")
	}
	return nil
}

func validateEntry(field string, i int, e Entry) error {
	if e.Value == nil {
		return schemaError("%s[%d].value: this field is required", field, i)
	}
	if e.Value.Sign() < 0 {
		return schemaError("%s[%d].value: must be a non-negative integer", field, i)
	}
	return nil
}

func validateBalance(b Balance) error {
	if _, err := ParseCurrency(string(b.Crypto)); err != nil {
		return schemaError("crypto: '%s' is not a valid choice", b.Crypto)
	}
	if b.Address == "" {
		return schemaError("address: this field may not be blank")
	}
	if b.Balance == nil {
		return schemaError("balance: this field is required")
	}
	if b.Balance.Sign() < 0 {
		return schemaError("balance: must be a non-negative integer")
	}
	return nil
}
