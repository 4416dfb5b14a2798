package cli

import (
	"context"
	"fmt"
	"os"
)

// Find prompts for a search query and lists matching contacts. An empty
// query lists everyone, first page.
func (a *App) Find(ctx context.Context) error {
	query, err := getSimpleText(a.reader, "Search contacts (empty for all)", os.Stdout)
	if err != nil {
		return err
	}

	a.contacts.Search(ctx, query)
	if a.contacts.ErrorMessage != "" {
		printlnFn("Error:", a.contacts.ErrorMessage)
		return nil
	}
	a.printContacts()
	return nil
}

// More appends the next page of the current contact search.
func (a *App) More(ctx context.Context) error {
	if !a.contacts.HasMore {
		printlnFn("No more pages")
		return nil
	}
	a.contacts.More(ctx)
	if a.contacts.ErrorMessage != "" {
		printlnFn("Error:", a.contacts.ErrorMessage)
		return nil
	}
	a.printContacts()
	return nil
}

func (a *App) printContacts() {
	if len(a.contacts.Items) == 0 {
		printlnFn("No contacts found")
		return
	}
	for _, c := range a.contacts.Items {
		printlnFn(fmt.Sprintf("%6d  %s", c.ID, c.DisplayName()))
	}
	if a.contacts.HasMore {
		printlnFn("(type 'more' for the next page)")
	}
}

// Show fetches one contact with its activities, notes and tasks and prints
// them. The three list fetches run concurrently; a failed section is
// reported without hiding the rest.
func (a *App) Show(ctx context.Context) error {
	id, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	detail, err := a.contacts.LoadDetail(ctx, id)
	if err != nil {
		printlnFn("Error:", a.contacts.ErrorMessage)
		return err
	}

	printlnFn(detail.Contact.DisplayName())
	if detail.Contact.Description != "" {
		printlnFn(detail.Contact.Description)
	}

	printlnFn("Activities:")
	if err := detail.Errors["activities"]; err != nil {
		printlnFn("  (failed to load:", err.Error()+")")
	}
	for _, act := range detail.Activities {
		printlnFn("  " + act.HappenedAt + "  " + act.Summary)
	}

	printlnFn("Notes:")
	if err := detail.Errors["notes"]; err != nil {
		printlnFn("  (failed to load:", err.Error()+")")
	}
	for _, n := range detail.Notes {
		printlnFn("  " + n.Body)
	}

	printlnFn("Tasks:")
	if err := detail.Errors["tasks"]; err != nil {
		printlnFn("  (failed to load:", err.Error()+")")
	}
	for _, task := range detail.Tasks {
		mark := " "
		if task.Completed {
			mark = "x"
		}
		printlnFn(fmt.Sprintf("  [%s] %s", mark, task.Title))
	}
	return nil
}
