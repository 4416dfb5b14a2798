package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/services"
)

// Calls lists the call log of one contact.
func (a *App) Calls(ctx context.Context) error {
	contactID, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.calls.Fetch(ctx, contactID)
	if a.calls.ErrorMessage != "" {
		printlnFn("Error:", a.calls.ErrorMessage)
	}

	if len(a.calls.Items) == 0 {
		printlnFn("No calls logged")
		return nil
	}
	for _, item := range a.calls.Items {
		who := "me"
		if item.Call.ContactCalled {
			who = "them"
		}
		printlnFn(fmt.Sprintf("%s  %s  called by %s  %s  [%s]",
			item.Record.LocalID[:8], item.Call.CalledAt, who, item.Call.Content,
			syncLabel(item.Record)))
	}
	return nil
}

// EditCall rewrites the notes of a call from the currently loaded list.
func (a *App) EditCall(ctx context.Context) error {
	item, ok := a.findCall()
	if !ok {
		return nil
	}

	content, err := GetMultiline(a.reader, "What was it about?", os.Stdout)
	if err != nil {
		return err
	}

	edited := item.Call
	edited.Content = content
	if !a.calls.Update(ctx, item.Record.LocalID, edited) {
		printlnFn("Error:", a.calls.ErrorMessage)
		return nil
	}
	printlnFn("Call updated")
	return nil
}

// findCall prompts for a local id prefix and resolves it against the
// currently loaded call list.
func (a *App) findCall() (services.CallItem, bool) {
	if len(a.calls.Items) == 0 {
		printlnFn("No calls loaded; run 'calls' first")
		return services.CallItem{}, false
	}

	id, err := getSimpleText(a.reader, "Enter call id (prefix shown in 'calls')", os.Stdout)
	if err != nil {
		return services.CallItem{}, false
	}
	if id == "" {
		printlnFn("No call id given")
		return services.CallItem{}, false
	}

	for _, item := range a.calls.Items {
		if strings.HasPrefix(item.Record.LocalID, id) {
			return item, true
		}
	}
	printlnFn("No call matches", id)
	return services.CallItem{}, false
}

// AddCall prompts for the call fields and logs a new call. An empty date
// defaults to now.
func (a *App) AddCall(ctx context.Context) error {
	contactID, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	calledAt, err := getSimpleText(a.reader, "When? (RFC3339, empty for now)", os.Stdout)
	if err != nil {
		return err
	}
	if calledAt == "" {
		calledAt = time.Now().UTC().Format(time.RFC3339)
	}
	contactCalled, err := GetYesNo(a.reader, "Did they call you?", os.Stdout)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "What was it about?", os.Stdout)
	if err != nil {
		return err
	}

	ok := a.calls.Create(ctx, models.CallLog{
		ContactID:     contactID,
		CalledAt:      calledAt,
		Content:       content,
		ContactCalled: contactCalled,
	})
	if !ok {
		printlnFn("Error:", a.calls.ErrorMessage)
		return nil
	}
	printlnFn("Call logged")
	return nil
}
