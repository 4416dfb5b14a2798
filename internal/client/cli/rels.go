package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/monicli/internal/client/models"
	"github.com/dmitrijs2005/monicli/internal/client/services"
)

// Rels lists the relationships of one contact.
func (a *App) Rels(ctx context.Context) error {
	contactID, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.rels.Fetch(ctx, contactID)
	if a.rels.ErrorMessage != "" {
		printlnFn("Error:", a.rels.ErrorMessage)
	}

	if len(a.rels.Items) == 0 {
		printlnFn("No relationships")
		return nil
	}
	for _, item := range a.rels.Items {
		printlnFn(fmt.Sprintf("%s  contact %d is %s of contact %d  [%s]",
			item.Record.LocalID[:8], item.Relationship.ContactIs,
			a.rels.TypeName(ctx, item.Relationship.RelationshipTypeID),
			item.Relationship.OfContact, syncLabel(item.Record)))
	}
	return nil
}

// EditRel changes the type of a relationship from the currently loaded
// list. The two contacts stay the same.
func (a *App) EditRel(ctx context.Context) error {
	item, ok := a.findRel()
	if !ok {
		return nil
	}

	types, err := a.rels.Types(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(types) > 0 {
		printlnFn("Relationship types:")
		for _, t := range types {
			printlnFn(fmt.Sprintf("  %4d  %s (reverse: %s)", t.ID, t.Name, t.NameReverse))
		}
	}

	typeID, err := GetInt(a.reader, "Enter new relationship type id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	edited := item.Relationship
	edited.RelationshipTypeID = typeID
	if !a.rels.Update(ctx, item.Record.LocalID, edited) {
		printlnFn("Error:", a.rels.ErrorMessage)
		return nil
	}
	printlnFn("Relationship updated")
	return nil
}

// findRel prompts for a local id prefix and resolves it against the
// currently loaded relationship list.
func (a *App) findRel() (services.RelationshipItem, bool) {
	if len(a.rels.Items) == 0 {
		printlnFn("No relationships loaded; run 'rels' first")
		return services.RelationshipItem{}, false
	}

	id, err := getSimpleText(a.reader, "Enter relationship id (prefix shown in 'rels')", os.Stdout)
	if err != nil {
		return services.RelationshipItem{}, false
	}
	if id == "" {
		printlnFn("No relationship id given")
		return services.RelationshipItem{}, false
	}

	for _, item := range a.rels.Items {
		if strings.HasPrefix(item.Record.LocalID, id) {
			return item, true
		}
	}
	printlnFn("No relationship matches", id)
	return services.RelationshipItem{}, false
}

// AddRel links two contacts. The available relationship types are listed
// first so the user can pick one by id.
func (a *App) AddRel(ctx context.Context) error {
	types, err := a.rels.Types(ctx)
	if err != nil {
		printlnFn("Error:", err.Error())
		return err
	}
	if len(types) > 0 {
		printlnFn("Relationship types:")
		for _, t := range types {
			printlnFn(fmt.Sprintf("  %4d  %s (reverse: %s)", t.ID, t.Name, t.NameReverse))
		}
	}

	contactIs, err := GetInt(a.reader, "Enter the first contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	ofContact, err := GetInt(a.reader, "Enter the second contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	typeID, err := GetInt(a.reader, "Enter relationship type id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	ok := a.rels.Create(ctx, models.Relationship{
		ContactIs:          contactIs,
		OfContact:          ofContact,
		RelationshipTypeID: typeID,
	})
	if !ok {
		printlnFn("Error:", a.rels.ErrorMessage)
		return nil
	}
	printlnFn("Relationship added")
	return nil
}
