package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bahi-ledger/bahi/internal/config"
	"github.com/bahi-ledger/bahi/internal/models"
	"github.com/bahi-ledger/bahi/internal/service"
	"github.com/bahi-ledger/bahi/internal/storage/sqlite"
	"github.com/bahi-ledger/bahi/pkg/logging"
)

// openService loads configuration, sets up logging, and opens the store.
// The returned cleanup closes the store.
func openService(configPath string) (*service.ImportService, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	logging.Setup(cfg.Log.Level)

	store, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}
	svc := service.New(store, cfg.DuplicateWindow())
	return svc, func() { store.Close() }, nil
}

// readInput reads the shorthand text from the named file, or stdin for "-".
func readInput(path string) (string, error) {
	if path == "" || path == "-" {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(b), nil
}

// parseDefaultDate parses the -date flag; empty means today.
func parseDefaultDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.ParseInLocation(models.DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -date %q (want YYYY-MM-DD)", s)
	}
	return d, nil
}

// describe renders one parsed entry for preview output.
func describe(e models.Entry) string {
	switch v := e.(type) {
	case models.Sale:
		s := fmt.Sprintf("sale %s %s", v.Amount, v.Mode)
		if v.PartyName != "" {
			s += " party=" + v.PartyName
		}
		return s
	case models.Expense:
		s := fmt.Sprintf("expense %s %s", v.Amount, v.Category)
		if v.StaffName != "" {
			s += " staff=" + v.StaffName
		}
		if v.HasGST {
			s += " gst"
		}
		return s
	case models.Bill:
		s := fmt.Sprintf("bill %s party=%s", v.Amount, v.PartyName)
		if v.BillNumber != "" {
			s += " no=" + v.BillNumber
		}
		if v.Description != "" {
			s += " " + v.Description
		}
		if v.HasGST {
			s += " gst"
		}
		return s
	case models.Payment:
		s := fmt.Sprintf("payment %s party=%s", v.Amount, v.PartyName)
		if v.HasGST {
			s += " gst"
		}
		return s
	}
	return string(e.Kind())
}
