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

// Convos lists the conversations logged for one contact.
func (a *App) Convos(ctx context.Context) error {
	contactID, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	a.convos.Fetch(ctx, contactID)
	if a.convos.ErrorMessage != "" {
		printlnFn("Error:", a.convos.ErrorMessage)
	}

	if len(a.convos.Items) == 0 {
		printlnFn("No conversations logged")
		return nil
	}
	for _, item := range a.convos.Items {
		printlnFn(fmt.Sprintf("%s  %s  %s  [%s]",
			item.Record.LocalID[:8], item.Conversation.HappenedAt,
			item.Conversation.Content, syncLabel(item.Record)))
	}
	return nil
}

// EditConvo rewrites the notes of a conversation from the currently loaded
// list.
func (a *App) EditConvo(ctx context.Context) error {
	item, ok := a.findConvo()
	if !ok {
		return nil
	}

	content, err := GetMultiline(a.reader, "What was said?", os.Stdout)
	if err != nil {
		return err
	}

	edited := item.Conversation
	edited.Content = content
	if !a.convos.Update(ctx, item.Record.LocalID, edited) {
		printlnFn("Error:", a.convos.ErrorMessage)
		return nil
	}
	printlnFn("Conversation updated")
	return nil
}

// findConvo prompts for a local id prefix and resolves it against the
// currently loaded conversation list.
func (a *App) findConvo() (services.ConversationItem, bool) {
	if len(a.convos.Items) == 0 {
		printlnFn("No conversations loaded; run 'convos' first")
		return services.ConversationItem{}, false
	}

	id, err := getSimpleText(a.reader, "Enter conversation id (prefix shown in 'convos')", os.Stdout)
	if err != nil {
		return services.ConversationItem{}, false
	}
	if id == "" {
		printlnFn("No conversation id given")
		return services.ConversationItem{}, false
	}

	for _, item := range a.convos.Items {
		if strings.HasPrefix(item.Record.LocalID, id) {
			return item, true
		}
	}
	printlnFn("No conversation matches", id)
	return services.ConversationItem{}, false
}

// AddConvo prompts for the conversation fields and logs a new one.
func (a *App) AddConvo(ctx context.Context) error {
	contactID, err := GetInt(a.reader, "Enter contact id", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	happenedAt, err := getSimpleText(a.reader, "When? (YYYY-MM-DD, empty for today)", os.Stdout)
	if err != nil {
		return err
	}
	if happenedAt == "" {
		happenedAt = time.Now().UTC().Format("2006-01-02")
	}
	content, err := GetMultiline(a.reader, "What was said?", os.Stdout)
	if err != nil {
		return err
	}

	ok := a.convos.Create(ctx, models.Conversation{
		ContactID:  contactID,
		HappenedAt: happenedAt,
		Content:    content,
	})
	if !ok {
		printlnFn("Error:", a.convos.ErrorMessage)
		return nil
	}
	printlnFn("Conversation logged")
	return nil
}
