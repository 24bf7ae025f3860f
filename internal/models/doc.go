// Package models defines the core domain models for bahi.
//
// # Entry vs Transaction
//
// An Entry is a parsed, not-yet-posted transaction candidate produced by the
// shorthand parser. It is a closed sum type over Sale, Expense, Bill and
// Payment so that invalid field combinations are unrepresentable: a Sale
// cannot carry a bill number, an Expense cannot carry a payment mode.
//
// A Transaction is the durable record persisted by the store. Party and
// staff names on an Entry are free text; they are resolved to durable IDs
// only when a batch is applied.
//
// # Balances
//
// Party.CurrentBalance and Transaction.RunningBalance are signed: positive
// means the party owes the business. Both are derived values owned by the
// ledger balance engine and must never be hand-edited elsewhere.
package models
