package insight

import (
	"fmt"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
)

// DailySuggestion returns the single best next-step for right now, from a
// first-match priority chain over today's log. Unlike Evaluate, only one
// suggestion is ever shown, and relevance is time-of-day-sensitive rather
// than historical.
func DailySuggestion(today model.DailyLog, goals model.GoalSettings, now time.Time) model.UserInsight {
	if now.IsZero() {
		now = time.Now()
	}
	if s := suggestPostWorkout(today, now); s != nil {
		return *s
	}
	if s := suggestEveningProtein(today, goals, now); s != nil {
		return *s
	}
	if s := suggestMissingMeal(today, "Lunch", 13, 17, now); s != nil {
		return *s
	}
	if s := suggestMissingMeal(today, "Dinner", 19, 23, now); s != nil {
		return *s
	}
	if today.HasFood() {
		return suggestion("Nice work today", "You're keeping your log up to date. Check back after your next meal.")
	}
	return suggestion("Start your day's log", "Nothing logged yet today. Adding your first meal takes under a minute.")
}

func suggestPostWorkout(today model.DailyLog, now time.Time) *model.UserInsight {
	for _, e := range today.Exercises {
		if e.CaloriesBurned <= refuelBurnThreshold {
			continue
		}
		end := e.EndedAt()
		if now.Before(end) || now.After(end.Add(refuelWindow)) {
			continue
		}
		if refueledWithin(today, end, end.Add(refuelWindow)) {
			continue
		}
		s := suggestion("Refuel your workout",
			fmt.Sprintf("You burned %d calories recently. A snack with protein and carbs in the next while helps recovery.", e.CaloriesBurned))
		return &s
	}
	return nil
}

func suggestEveningProtein(today model.DailyLog, goals model.GoalSettings, now time.Time) *model.UserInsight {
	if goals.ProteinG <= 0 || now.Hour() < 16 {
		return nil
	}
	totals := nutrition.LogTotals(today)
	if totals.ProteinG < 0.6*goals.ProteinG {
		s := suggestion("Protein gap before dinner",
			fmt.Sprintf("You're at %.0fg of your %.0fg protein goal with the day winding down. A protein-forward dinner closes most of that gap.", totals.ProteinG, goals.ProteinG))
		return &s
	}
	return nil
}

func suggestMissingMeal(today model.DailyLog, mealName string, fromHour, toHour int, now time.Time) *model.UserInsight {
	if now.Hour() < fromHour || now.Hour() >= toHour {
		return nil
	}
	m := today.Meal(mealName)
	if m != nil && len(m.Items) > 0 {
		return nil
	}
	s := suggestion(fmt.Sprintf("%s isn't logged yet", mealName),
		fmt.Sprintf("If you've already eaten %s, log it now while you still remember what was in it.", mealName))
	return &s
}

func suggestion(title, message string) model.UserInsight {
	return model.UserInsight{
		Title:    title,
		Message:  message,
		Category: model.CategorySmartSuggestion,
		Priority: 5,
	}
}
