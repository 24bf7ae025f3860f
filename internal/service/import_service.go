// Package service orchestrates the ingestion pipeline: parse, validate,
// duplicate-check and atomically apply a batch of shorthand entries.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bahi-ledger/bahi/internal/dedup"
	"github.com/bahi-ledger/bahi/internal/ledger"
	"github.com/bahi-ledger/bahi/internal/metrics"
	"github.com/bahi-ledger/bahi/internal/models"
	"github.com/bahi-ledger/bahi/internal/parser"
	"github.com/bahi-ledger/bahi/internal/storage"
	"github.com/bahi-ledger/bahi/internal/validate"
)

// ImportService runs batches of parsed entries through validation, duplicate
// detection and an all-or-nothing apply step.
type ImportService struct {
	store  storage.Store
	window time.Duration

	// mu is the advisory in-flight-apply lock: the store has no row-level
	// locking, so a second bulk submission must wait for the first's
	// commit or rollback.
	mu sync.Mutex
}

// New creates an ImportService. window is the duplicate-detection authoring
// window; non-positive falls back to dedup.DefaultWindow.
func New(store storage.Store, window time.Duration) *ImportService {
	return &ImportService{store: store, window: window}
}

// Preview is the side-effect-free view of a submission: per-line parse
// results, whole-batch validation errors, and duplicate warnings for the
// operator to decide on.
type Preview struct {
	Results []parser.Result

	// Entries are the successfully parsed entries, in input order.
	// Warning indexes refer to positions in this slice.
	Entries []models.Entry

	// ValidationErrors non-empty means the batch is not postable.
	// Warnings are not computed for an invalid batch.
	ValidationErrors []string

	Warnings []dedup.Warning
}

// Preview parses and validates text against defaultDate and, when the batch
// is structurally sound, checks it for probable duplicates. It never writes.
func (s *ImportService) Preview(ctx context.Context, text string, defaultDate time.Time) (*Preview, error) {
	results := parser.Parse(text, defaultDate)

	p := &Preview{Results: results}
	for _, r := range results {
		if r.Err != nil {
			metrics.ParseErrors.Inc()
			continue
		}
		metrics.LinesParsed.WithLabelValues(string(r.Entry.Kind())).Inc()
		p.Entries = append(p.Entries, r.Entry)
	}

	p.ValidationErrors = validate.Batch(p.Entries)
	if len(p.ValidationErrors) > 0 {
		return p, nil
	}

	detector := dedup.New(s.store.Reader(), s.window)
	warnings, err := detector.Check(ctx, p.Entries)
	if err != nil {
		return nil, fmt.Errorf("preview: %w", err)
	}
	p.Warnings = warnings
	return p, nil
}

// ApplyRequest is one batch to post.
type ApplyRequest struct {
	Entries []models.Entry

	// Force posts the entries at these batch indexes even when the
	// duplicate detector flags them (interactive "process anyway").
	Force map[int]bool

	// ForceAll posts every flagged entry (bulk import with -force).
	ForceAll bool
}

// ApplyResult reports what one committed batch did.
type ApplyResult struct {
	Posted  int
	Skipped []dedup.Warning

	// Balances maps party name to its recalculated current balance for
	// every party whose statement changed in this batch.
	Balances map[string]decimal.Decimal

	// ParseErrors is populated by BulkImport only.
	ParseErrors []models.ParseError
}

// Apply posts a validated batch inside one unit of work. Entries flagged as
// duplicates are skipped unless forced. On any store failure the whole batch
// rolls back and no transaction or balance change is observable.
func (s *ImportService) Apply(ctx context.Context, req ApplyRequest) (*ApplyResult, error) {
	if errs := validate.Batch(req.Entries); len(errs) > 0 {
		return nil, errors.New("validation failed: " + strings.Join(errs, "; "))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &ApplyResult{Balances: make(map[string]decimal.Decimal)}
	err := s.store.RunInTx(ctx, func(uow storage.UnitOfWork) error {
		return s.applyBatch(ctx, uow, req, res)
	})
	if err != nil {
		metrics.BatchesRolledBack.Inc()
		return nil, fmt.Errorf("apply rolled back: %w", err)
	}

	metrics.BatchesApplied.Inc()
	slog.Info("batch applied",
		"posted", res.Posted,
		"skipped", len(res.Skipped),
		"parties", len(res.Balances),
	)
	return res, nil
}

// indexedEntry keeps an entry paired with its original batch index through
// the chronological sort, so Force overrides keep meaning.
type indexedEntry struct {
	idx   int
	entry models.Entry
}

func (s *ImportService) applyBatch(ctx context.Context, uow storage.UnitOfWork, req ApplyRequest, res *ApplyResult) error {
	// Stable date sort makes the eventual recompute deterministic
	// regardless of the order the operator typed the lines in.
	sorted := make([]indexedEntry, len(req.Entries))
	for i, e := range req.Entries {
		sorted[i] = indexedEntry{idx: i, entry: e}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].entry.When().Before(sorted[j].entry.When())
	})

	detector := dedup.New(uow, s.window)
	parties := make(map[string]*models.Party) // lower name -> resolved
	staffByName := make(map[string]*models.Staff)
	recalc := make(map[string]string) // party ID -> name, bill/payment parties

	for _, it := range sorted {
		e := it.entry

		var party *models.Party
		if name := e.Party(); name != "" {
			var err error
			party, err = resolveParty(ctx, uow, parties, name)
			if err != nil {
				return err
			}
		}

		if party != nil {
			existing, err := detector.IsDuplicate(ctx, party.ID, e)
			if err != nil {
				return err
			}
			if existing != nil && !req.ForceAll && !req.Force[it.idx] {
				metrics.DuplicatesSkipped.Inc()
				slog.Info("skipping probable duplicate",
					"kind", e.Kind(),
					"party", party.Name,
					"amount", e.Value(),
					"date", e.When().Format(models.DateFormat),
				)
				res.Skipped = append(res.Skipped, dedup.Warning{
					Index: it.idx, Entry: e, Existing: existing,
					Reason: "already posted within the duplicate window",
				})
				continue
			}
		}

		tx, err := buildTransaction(ctx, uow, staffByName, e, party)
		if err != nil {
			return err
		}
		if err := uow.InsertTransaction(ctx, tx); err != nil {
			return err
		}
		res.Posted++
		metrics.TransactionsPosted.Inc()

		// Incremental balance adjustment; the recalculation below makes
		// bill/payment parties authoritative afterwards.
		if party != nil {
			switch {
			case e.Kind() == models.KindBill:
				party.CurrentBalance = party.CurrentBalance.Add(e.Value())
				recalc[party.ID] = party.Name
			case e.Kind() == models.KindPayment:
				party.CurrentBalance = party.CurrentBalance.Sub(e.Value())
				recalc[party.ID] = party.Name
			case e.Kind() == models.KindSale:
				party.CurrentBalance = party.CurrentBalance.Add(e.Value())
			}
			if err := uow.UpdatePartyBalance(ctx, party.ID, party.CurrentBalance); err != nil {
				return err
			}
			res.Balances[party.Name] = party.CurrentBalance
		}
	}

	for partyID, name := range recalc {
		balance, err := ledger.Recalculate(ctx, uow, partyID)
		if err != nil {
			return err
		}
		res.Balances[name] = balance

		if p := parties[strings.ToLower(name)]; p != nil {
			p.CurrentBalance = balance
			if p.CreditLimit.IsPositive() && balance.GreaterThan(p.CreditLimit) {
				slog.Warn("party over credit limit",
					"party", name,
					"balance", balance,
					"credit_limit", p.CreditLimit,
				)
			}
		}
	}
	return nil
}

// resolveParty finds the named party case-insensitively, creating it on
// first reference. The cache keeps one record per batch so repeated names
// share balance adjustments.
func resolveParty(ctx context.Context, uow storage.UnitOfWork, cache map[string]*models.Party, name string) (*models.Party, error) {
	key := strings.ToLower(name)
	if p, ok := cache[key]; ok {
		return p, nil
	}

	p, err := uow.FindPartyByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p, err = uow.CreateParty(ctx, name)
		if err != nil {
			return nil, err
		}
		slog.Info("created party", "name", name, "id", p.ID)
	}
	cache[key] = p
	return p, nil
}

func resolveStaff(ctx context.Context, uow storage.UnitOfWork, cache map[string]*models.Staff, name string) (*models.Staff, error) {
	key := strings.ToLower(name)
	if st, ok := cache[key]; ok {
		return st, nil
	}

	st, err := uow.FindStaffByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if st == nil {
		st, err = uow.CreateStaff(ctx, name)
		if err != nil {
			return nil, err
		}
		slog.Info("created staff", "name", name, "id", st.ID)
	}
	cache[key] = st
	return st, nil
}

// buildTransaction maps an entry variant onto a durable transaction row,
// resolving the staff reference for salary/advance expenses.
func buildTransaction(ctx context.Context, uow storage.UnitOfWork, staffCache map[string]*models.Staff, e models.Entry, party *models.Party) (*models.Transaction, error) {
	tx := &models.Transaction{
		Date:   e.When(),
		Type:   e.Kind(),
		Amount: e.Value(),
	}
	if party != nil {
		tx.PartyID = party.ID
	}

	switch v := e.(type) {
	case models.Sale:
		tx.Mode = v.Mode
	case models.Expense:
		tx.Category = v.Category
		tx.Description = v.Description
		tx.HasGST = v.HasGST
		if v.StaffName != "" {
			st, err := resolveStaff(ctx, uow, staffCache, v.StaffName)
			if err != nil {
				return nil, err
			}
			tx.StaffID = st.ID
		}
	case models.Bill:
		tx.BillNumber = v.BillNumber
		tx.Description = v.Description
		tx.HasGST = v.HasGST
	case models.Payment:
		tx.Category = models.CategoryPartyPayment
		tx.Description = v.Description
		tx.HasGST = v.HasGST
	}
	return tx, nil
}

// BulkImport is the non-interactive path: parse, validate, and apply in one
// call. Probable duplicates are skipped silently (logged, reported in the
// result) instead of blocking the batch; force posts them anyway.
func (s *ImportService) BulkImport(ctx context.Context, text string, defaultDate time.Time, force bool) (*ApplyResult, error) {
	results := parser.Parse(text, defaultDate)

	var entries []models.Entry
	var parseErrs []models.ParseError
	for _, r := range results {
		if r.Err != nil {
			metrics.ParseErrors.Inc()
			parseErrs = append(parseErrs, *r.Err)
			continue
		}
		metrics.LinesParsed.WithLabelValues(string(r.Entry.Kind())).Inc()
		entries = append(entries, r.Entry)
	}

	res, err := s.Apply(ctx, ApplyRequest{Entries: entries, ForceAll: force})
	if err != nil {
		return nil, err
	}
	res.ParseErrors = parseErrs
	return res, nil
}

// RecalculateParty re-runs the balance engine for one party by name.
// This is the repair path; recalculation is idempotent.
func (s *ImportService) RecalculateParty(ctx context.Context, name string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var balance decimal.Decimal
	err := s.store.RunInTx(ctx, func(uow storage.UnitOfWork) error {
		p, err := uow.FindPartyByName(ctx, name)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("party not found: %s", name)
		}
		balance, err = ledger.Recalculate(ctx, uow, p.ID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return balance, nil
}

// RecalculateAll re-runs the balance engine for every party, returning the
// new balances by party name.
func (s *ImportService) RecalculateAll(ctx context.Context) (map[string]decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	balances := make(map[string]decimal.Decimal)
	err := s.store.RunInTx(ctx, func(uow storage.UnitOfWork) error {
		parties, err := uow.ListParties(ctx)
		if err != nil {
			return err
		}
		for _, p := range parties {
			balance, err := ledger.Recalculate(ctx, uow, p.ID)
			if err != nil {
				return err
			}
			balances[p.Name] = balance
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return balances, nil
}
