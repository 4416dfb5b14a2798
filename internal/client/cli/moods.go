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

// Moods lists the mood journal.
func (a *App) Moods(ctx context.Context) error {
	a.moods.Fetch(ctx)
	if a.moods.ErrorMessage != "" {
		printlnFn("Error:", a.moods.ErrorMessage)
	}

	if len(a.moods.Items) == 0 {
		printlnFn("No mood entries")
		return nil
	}
	for _, item := range a.moods.Items {
		printlnFn(fmt.Sprintf("%s  %s  %s  %s  [%s]",
			item.Record.LocalID[:8], item.Entry.Date,
			strings.Repeat("*", item.Entry.Rate), item.Entry.Comment,
			syncLabel(item.Record)))
	}
	return nil
}

// EditMood rewrites the rate and comment of a day entry; the date stays.
func (a *App) EditMood(ctx context.Context) error {
	item, ok := a.findMood(ctx)
	if !ok {
		return nil
	}

	rate, err := GetInt(a.reader, "How was that day? (1=awful .. 5=great)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	comment, err := getSimpleText(a.reader, "Comment (optional)", os.Stdout)
	if err != nil {
		return err
	}

	edited := item.Entry
	edited.Rate = int(rate)
	edited.Comment = comment
	if !a.moods.Update(ctx, item.Record.LocalID, edited) {
		printlnFn("Error:", a.moods.ErrorMessage)
		return nil
	}
	printlnFn("Mood updated")
	return nil
}

// findMood prompts for a local id prefix and resolves it against the mood
// journal, loading it first when empty.
func (a *App) findMood(ctx context.Context) (services.MoodItem, bool) {
	if len(a.moods.Items) == 0 {
		a.moods.Fetch(ctx)
	}

	id, err := getSimpleText(a.reader, "Enter mood id (prefix shown in 'moods')", os.Stdout)
	if err != nil {
		return services.MoodItem{}, false
	}
	if id == "" {
		printlnFn("No mood id given")
		return services.MoodItem{}, false
	}

	for _, item := range a.moods.Items {
		if strings.HasPrefix(item.Record.LocalID, id) {
			return item, true
		}
	}
	printlnFn("No mood entry matches", id)
	return services.MoodItem{}, false
}

// AddMood records how today went. The rate is a 1..5 mood code.
func (a *App) AddMood(ctx context.Context) error {
	rate, err := GetInt(a.reader, "How was your day? (1=awful .. 5=great)", os.Stdout)
	if err != nil {
		printlnFn(err.Error())
		return err
	}
	date, err := getSimpleText(a.reader, "Date (YYYY-MM-DD, empty for today)", os.Stdout)
	if err != nil {
		return err
	}
	if date == "" {
		date = time.Now().UTC().Format("2006-01-02")
	}
	comment, err := getSimpleText(a.reader, "Comment (optional)", os.Stdout)
	if err != nil {
		return err
	}

	ok := a.moods.Create(ctx, models.DayEntry{
		Rate:    int(rate),
		Comment: comment,
		Date:    date,
	})
	if !ok {
		printlnFn("Error:", a.moods.ErrorMessage)
		return nil
	}
	printlnFn("Mood recorded")
	return nil
}
