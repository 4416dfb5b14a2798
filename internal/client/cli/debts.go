package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/services"
)

// Debts lists every debt with its sync status and the net balances.
func (a *App) Debts(ctx context.Context) error {
	a.debts.Fetch(ctx)
	if a.debts.ErrorMessage != "" {
		printlnFn("Error:", a.debts.ErrorMessage)
	}

	if len(a.debts.Items) == 0 {
		printlnFn("No debts")
		return nil
	}
	for _, item := range a.debts.Items {
		direction := "they owe me"
		if item.Debt.InDebt == models.InDebtYes {
			direction = "I owe them"
		}
		status := ""
		if item.Debt.Status == models.DebtStatusCompleted {
			status = " (settled)"
		}
		printlnFn(fmt.Sprintf("%s  contact %d  %s %.2f  %s%s  [%s]",
			item.Record.LocalID[:8], item.Record.ContactID,
			formatAmount(item.Debt), item.Debt.Amount, direction, status,
			syncLabel(item.Record)))
	}

	a.printBalances()
	return nil
}

// Balance prints only the per-currency net balances.
func (a *App) Balance(ctx context.Context) error {
	a.debts.Fetch(ctx)
	if a.debts.ErrorMessage != "" {
		printlnFn("Error:", a.debts.ErrorMessage)
	}
	a.printBalances()
	return nil
}

func (a *App) printBalances() {
	if len(a.debts.Balances) == 0 {
		printlnFn("No outstanding debts")
		return
	}
	printlnFn("Net balances:")
	for _, b := range a.debts.Balances {
		printlnFn(fmt.Sprintf("  %s: %+.2f (they owe me %.2f, I owe them %.2f)",
			b.Currency, b.Net(), b.TheyOweMe, b.IOweThem))
	}
}

func formatAmount(d models.Debt) string {
	if d.AmountWithCurrency != "" {
		return d.AmountWithCurrency
	}
	return fmt.Sprintf("%.2f", d.Amount)
}

// AddDebt prompts for the debt fields and stores a new debt.
func (a *App) AddDebt(ctx context.Context) error {
	contactID, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	iOwe, err := GetYesNo(a.reader, "Do you owe them?", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := GetFloat(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	formatted, err := getSimpleText(a.reader, "Enter formatted amount (e.g. $50.00, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	reason, err := getSimpleText(a.reader, "Enter reason (optional)", os.Stdout)
	if err != nil {
		return err
	}

	inDebt := models.InDebtNo
	if iOwe {
		inDebt = models.InDebtYes
	}
	ok := a.debts.Create(ctx, models.Debt{
		ContactID:          contactID,
		InDebt:             inDebt,
		Status:             models.DebtStatusInProgress,
		Amount:             amount,
		AmountWithCurrency: formatted,
		Reason:             reason,
	})
	if !ok {
		printlnFn("Error:", a.debts.ErrorMessage)
		return nil
	}
	printlnFn("Debt recorded")
	a.printBalances()
	return nil
}

// EditDebt rewrites the amount and reason of an existing debt.
func (a *App) EditDebt(ctx context.Context) error {
	item, ok := a.findDebt(ctx)
	if !ok {
		return nil
	}

	amount, err := GetFloat(a.reader, "Enter new amount", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	formatted, err := getSimpleText(a.reader, "Enter formatted amount (e.g. $50.00, empty to skip)", os.Stdout)
	if err != nil {
		return err
	}
	reason, err := getSimpleText(a.reader, "Enter reason (optional)", os.Stdout)
	if err != nil {
		return err
	}

	edited := item.Debt
	edited.Amount = amount
	edited.AmountWithCurrency = formatted
	edited.Reason = reason
	if !a.debts.Update(ctx, item.Record.LocalID, edited) {
		printlnFn("Error:", a.debts.ErrorMessage)
		return nil
	}
	printlnFn("Debt updated")
	a.printBalances()
	return nil
}

// SettleDebt marks a debt completed; it drops out of the net balances but
// stays in the list.
func (a *App) SettleDebt(ctx context.Context) error {
	item, ok := a.findDebt(ctx)
	if !ok {
		return nil
	}

	settled := item.Debt
	settled.Status = models.DebtStatusCompleted
	if !a.debts.Update(ctx, item.Record.LocalID, settled) {
		printlnFn("Error:", a.debts.ErrorMessage)
		return nil
	}
	printlnFn("Debt settled")
	a.printBalances()
	return nil
}

// DeleteDebt soft-deletes a debt by its local identifier prefix.
func (a *App) DeleteDebt(ctx context.Context) error {
	item, ok := a.findDebt(ctx)
	if !ok {
		return nil
	}

	if !a.debts.Delete(ctx, item.Record.LocalID) {
		printlnFn("Error:", a.debts.ErrorMessage)
		return nil
	}
	printlnFn("Debt deleted")
	return nil
}

// findDebt prompts for a local id prefix and resolves it against the
// currently loaded debt list.
func (a *App) findDebt(ctx context.Context) (services.DebtItem, bool) {
	if len(a.debts.Items) == 0 {
		a.debts.Fetch(ctx)
	}

	id, err := getSimpleText(a.reader, "Enter debt id (prefix shown in 'debts')", os.Stdout)
	if err != nil {
		return services.DebtItem{}, false
	}
	if id == "" {
		printlnFn("No debt id given")
		return services.DebtItem{}, false
	}

	for _, item := range a.debts.Items {
		if strings.HasPrefix(item.Record.LocalID, id) {
			return item, true
		}
	}
	printlnFn("No debt matches", id)
	return services.DebtItem{}, false
}

func syncLabel(rec *models.Record) string {
	if rec.SyncStatus == models.SyncStatusFailed && rec.SyncError != "" {
		return "failed: " + rec.SyncError
	}
	return string(rec.SyncStatus)
}
