package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/oms2304/nutra-cli/internal/model"
	"github.com/oms2304/nutra-cli/internal/nutrition"
)

// Rule thresholds. Heuristic constants carried over from the production
// tuning; tunable, not domain truths.
const (
	sodiumGoalFactor    = 1.15
	waterLowFactor      = 0.80
	deficitFactor       = 0.85
	surplusFactor       = 1.15
	deficitRunDays      = 3
	proteinLowFactor    = 0.80
	proteinHighFactor   = 1.50
	fiberReferenceG     = 28.0
	fiberLowFactor      = 0.50
	satFatCaloriesShare = 0.07
	weekendGoalFactor   = 1.20
	weekendWeekdayRatio = 1.15
	varietyPerDayFactor = 2
	exerciseActiveFrac  = 0.40
	synergyGoalFactor   = 0.70
	refuelWindow        = 2 * time.Hour
	refuelBurnThreshold = 200
	refuelProteinG      = 10.0
	refuelCarbsG        = 15.0
	goalHitTolerance    = 0.10
)

var sugaryKeywords = []string{
	"soda", "candy", "chocolate bar", "cake", "cookies", "donut",
	"ice cream", "pastry", "sweet tea", "syrup",
}

func ruleHighSodium(w *window) *model.UserInsight {
	if w.goals.SodiumMgGoal == nil || *w.goals.SodiumMgGoal <= 0 {
		return nil
	}
	goal := *w.goals.SodiumMgGoal

	total := 0.0
	count := 0
	for _, d := range w.days {
		if d.totals.SodiumMg > 0 {
			total += d.totals.SodiumMg
			count++
		}
	}
	if count < 2 || count*2 < len(w.days) {
		return nil
	}
	avg := total / float64(count)
	if avg > sodiumGoalFactor*goal {
		return &model.UserInsight{
			Title:    "Sodium is running high",
			Message:  fmt.Sprintf("You've averaged %.0fmg of sodium per day recently, above your %.0fmg goal. Watch out for processed and restaurant foods.", avg, goal),
			Category: model.CategoryMicroNutrient,
			Priority: 7,
			RelatedData: map[string]string{
				"avg_sodium_mg":  fmt.Sprintf("%.0f", avg),
				"goal_sodium_mg": fmt.Sprintf("%.0f", goal),
			},
		}
	}
	return nil
}

func ruleLowWater(w *window) *model.UserInsight {
	if w.goals.WaterOz <= 0 {
		return nil
	}
	tracked := 0
	low := 0
	for _, d := range w.days {
		if d.log.Water == nil {
			continue
		}
		tracked++
		if d.log.Water.Ounces < waterLowFactor*w.goals.WaterOz {
			low++
		}
	}
	if tracked < 3 {
		return nil
	}
	need := tracked / 2
	if need < 2 {
		need = 2
	}
	if low >= need {
		return &model.UserInsight{
			Title:    "Hydration has slipped",
			Message:  fmt.Sprintf("On %d of the last %d tracked days you drank less than 80%% of your %.0foz water goal.", low, tracked, w.goals.WaterOz),
			Category: model.CategoryHydration,
			Priority: 8,
		}
	}
	return nil
}

func ruleCalorieDeficit(w *window) *model.UserInsight {
	if w.goals.Calories == nil || w.goals.Primary == model.GoalLose {
		return nil
	}
	goal := float64(*w.goals.Calories)
	fd := w.foodDays()
	if len(fd) < deficitRunDays {
		return nil
	}
	recent := fd[len(fd)-deficitRunDays:]
	for _, d := range recent {
		if float64(d.totals.Calories) >= deficitFactor*goal {
			return nil
		}
	}
	return &model.UserInsight{
		Title:    "Consistent calorie deficit",
		Message:  fmt.Sprintf("Your last %d logged days all came in under 85%% of your %.0f calorie goal, but your stated goal isn't weight loss. Consider adding a snack or a larger meal.", deficitRunDays, goal),
		Category: model.CategoryNutritionGeneral,
		Priority: 9,
	}
}

func ruleCalorieSurplus(w *window) *model.UserInsight {
	if w.goals.Calories == nil || w.goals.Primary == model.GoalGain {
		return nil
	}
	goal := float64(*w.goals.Calories)
	fd := w.foodDays()
	if len(fd) < deficitRunDays {
		return nil
	}
	recent := fd[len(fd)-deficitRunDays:]
	for _, d := range recent {
		if float64(d.totals.Calories) <= surplusFactor*goal {
			return nil
		}
	}
	return &model.UserInsight{
		Title:    "Consistent calorie surplus",
		Message:  fmt.Sprintf("Your last %d logged days all exceeded 115%% of your %.0f calorie goal. Smaller portions or lighter snacks could help you get back on track.", deficitRunDays, goal),
		Category: model.CategoryNutritionGeneral,
		Priority: 9,
	}
}

func ruleProteinLow(w *window) *model.UserInsight {
	if w.goals.ProteinG <= 0 {
		return nil
	}
	fd := w.foodDays()
	if len(fd) < 3 {
		return nil
	}
	avg := avgOverDays(fd, func(t nutrition.Totals) float64 { return t.ProteinG })
	if avg < proteinLowFactor*w.goals.ProteinG {
		return &model.UserInsight{
			Title:    "Protein below target",
			Message:  fmt.Sprintf("You're averaging %.0fg of protein per day against a %.0fg goal. Eggs, Greek yogurt, and lean meats are easy ways to close the gap.", avg, w.goals.ProteinG),
			Category: model.CategoryMacroBalance,
			Priority: 7,
		}
	}
	return nil
}

func ruleProteinHigh(w *window) *model.UserInsight {
	if w.goals.ProteinG <= 0 {
		return nil
	}
	fd := w.foodDays()
	if len(fd) < 5 {
		return nil
	}
	avg := avgOverDays(fd, func(t nutrition.Totals) float64 { return t.ProteinG })
	if avg > proteinHighFactor*w.goals.ProteinG {
		return &model.UserInsight{
			Title:    "Protein well above target",
			Message:  fmt.Sprintf("You're averaging %.0fg of protein per day, more than 1.5x your %.0fg goal. That's rarely harmful, but those calories may crowd out other nutrients.", avg, w.goals.ProteinG),
			Category: model.CategoryMacroBalance,
			Priority: 4,
		}
	}
	return nil
}

func ruleFiberLow(w *window) *model.UserInsight {
	fd := w.foodDays()
	if len(fd) < 3 {
		return nil
	}
	avg := avgOverDays(fd, func(t nutrition.Totals) float64 { return t.FiberG })
	if avg < fiberLowFactor*fiberReferenceG {
		return &model.UserInsight{
			Title:    "Fiber intake is low",
			Message:  fmt.Sprintf("You're averaging %.0fg of fiber per day, under half the %.0fg reference intake. Beans, whole grains, and vegetables help.", avg, fiberReferenceG),
			Category: model.CategoryFiberIntake,
			Priority: 7,
		}
	}
	return nil
}

func ruleSaturatedFat(w *window) *model.UserInsight {
	fd := w.foodDays()
	if len(fd) < 3 {
		return nil
	}
	satCalories := 0.0
	totalCalories := 0
	for _, d := range fd {
		satCalories += d.totals.SaturatedFatG * 9
		totalCalories += d.totals.Calories
	}
	if totalCalories == 0 {
		return nil
	}
	share := satCalories / float64(totalCalories)
	if share > satFatCaloriesShare {
		return &model.UserInsight{
			Title:    "Saturated fat above 7% of calories",
			Message:  fmt.Sprintf("Saturated fat made up %.1f%% of your calories recently. Swapping butter or fatty cuts for olive oil and fish brings that down.", share*100),
			Category: model.CategorySaturatedFat,
			Priority: 8,
		}
	}
	return nil
}

func ruleSkippedBreakfast(w *window) *model.UserInsight {
	if len(w.days) < 4 {
		return nil
	}
	missing := 0
	for _, d := range w.days {
		m := d.log.Meal("Breakfast")
		if m == nil || len(m.Items) == 0 {
			missing++
		}
	}
	if missing >= 3 {
		return &model.UserInsight{
			Title:    "Breakfast keeps getting skipped",
			Message:  fmt.Sprintf("No breakfast was logged on %d of the last %d days. If that's intentional, fine; if not, a quick morning meal steadies energy and appetite.", missing, len(w.days)),
			Category: model.CategoryMealTiming,
			Priority: 5,
		}
	}
	return nil
}

func ruleMealTiming(w *window) *model.UserInsight {
	if len(w.days) < 5 {
		return nil
	}
	hours := make([]int, 0, len(w.days))
	for _, d := range w.days {
		m := d.log.Meal("Breakfast")
		if m == nil {
			continue
		}
		if first := firstLoggedItem(*m); first != nil {
			hours = append(hours, first.LoggedAt.Hour())
		}
	}
	if len(hours) < 3 {
		return nil
	}
	minH, maxH := hours[0], hours[0]
	for _, h := range hours[1:] {
		if h < minH {
			minH = h
		}
		if h > maxH {
			maxH = h
		}
	}
	if maxH-minH > 3 {
		return &model.UserInsight{
			Title:    "Breakfast timing varies a lot",
			Message:  fmt.Sprintf("Your first breakfast item has landed anywhere from %d:00 to %d:00 lately. A steadier meal schedule can help regulate hunger.", minH, maxH),
			Category: model.CategoryMealTiming,
			Priority: 5,
		}
	}
	return nil
}

func firstLoggedItem(m model.Meal) *model.FoodItem {
	var first *model.FoodItem
	for i := range m.Items {
		item := &m.Items[i]
		if item.LoggedAt == nil {
			continue
		}
		if first == nil || item.LoggedAt.Before(*first.LoggedAt) {
			first = item
		}
	}
	return first
}

func ruleWeekendVariation(w *window) *model.UserInsight {
	if w.goals.Calories == nil {
		return nil
	}
	goal := float64(*w.goals.Calories)

	var weekend, weekday []dayTotals
	for _, d := range w.foodDays() {
		switch d.log.Date.Weekday() {
		case time.Saturday, time.Sunday:
			weekend = append(weekend, d)
		default:
			weekday = append(weekday, d)
		}
	}
	if len(weekend) < 1 || len(weekday) < 2 {
		return nil
	}
	avgWeekend := avgOverDays(weekend, func(t nutrition.Totals) float64 { return float64(t.Calories) })
	avgWeekday := avgOverDays(weekday, func(t nutrition.Totals) float64 { return float64(t.Calories) })
	if avgWeekend > weekendGoalFactor*goal && avgWeekend > weekendWeekdayRatio*avgWeekday {
		return &model.UserInsight{
			Title:    "Weekends run heavier",
			Message:  fmt.Sprintf("Weekend days averaged %.0f calories versus %.0f on weekdays. One planned treat beats an unplanned weekend.", avgWeekend, avgWeekday),
			Category: model.CategoryNutritionGeneral,
			Priority: 6,
		}
	}
	return nil
}

func ruleFoodVariety(w *window) *model.UserInsight {
	fd := w.foodDays()
	min := len(w.days) / 2
	if min < 3 {
		min = 3
	}
	if len(fd) < min {
		return nil
	}
	names := map[string]struct{}{}
	for _, d := range fd {
		for _, m := range d.log.Meals {
			for _, item := range m.Items {
				names[strings.ToLower(strings.TrimSpace(item.Name))] = struct{}{}
			}
		}
	}
	if len(names) < varietyPerDayFactor*len(fd) {
		return &model.UserInsight{
			Title:    "Meals are getting repetitive",
			Message:  fmt.Sprintf("Only %d distinct foods showed up across %d logged days. Rotating in new foods broadens your nutrient coverage.", len(names), len(fd)),
			Category: model.CategoryFoodVariety,
			Priority: 4,
		}
	}
	return nil
}

func ruleExerciseConsistency(w *window) *model.UserInsight {
	fd := w.foodDays()
	min := len(w.days) / 2
	if min < 3 {
		min = 3
	}
	if len(fd) < min {
		return nil
	}
	active := 0
	for _, d := range w.days {
		if len(d.log.Exercises) > 0 {
			active++
		}
	}
	frac := float64(active) / float64(len(w.days))
	if frac < exerciseActiveFrac {
		return &model.UserInsight{
			Title:    "Movement has been sparse",
			Message:  fmt.Sprintf("Exercise was logged on %d of the last %d days. Even a short daily walk counts.", active, len(w.days)),
			Category: model.CategoryConsistency,
			Priority: 6,
		}
	}
	return nil
}

func mealBalanceRule(mealName string) func(*window) *model.UserInsight {
	return func(w *window) *model.UserInsight {
		var total nutrition.Totals
		qualifying := 0
		for _, d := range w.days {
			m := d.log.Meal(mealName)
			if m == nil {
				continue
			}
			t := nutrition.MealTotals(*m)
			if t.Calories <= 50 {
				continue
			}
			qualifying++
			total.Calories += t.Calories
			total.ProteinG += t.ProteinG
			total.CarbsG += t.CarbsG
			total.FatG += t.FatG
		}
		if qualifying < 2 || total.Calories == 0 {
			return nil
		}
		cal := float64(total.Calories)
		carbsPct := total.CarbsG * 4 / cal * 100
		proteinPct := total.ProteinG * 4 / cal * 100
		fatPct := total.FatG * 9 / cal * 100

		if (carbsPct > 70 && proteinPct < 10) || (fatPct > 60 && proteinPct < 10) {
			return &model.UserInsight{
				Title:    fmt.Sprintf("%s could use more protein", mealName),
				Message:  fmt.Sprintf("Your typical %s is %.0f%% carbs, %.0f%% fat, and only %.0f%% protein. Adding a protein source makes it more filling.", strings.ToLower(mealName), carbsPct, fatPct, proteinPct),
				Category: model.CategoryMacroBalance,
				Priority: 5,
			}
		}
		return nil
	}
}

func ruleIronVitaminC(w *window) *model.UserInsight {
	return nutrientSynergyRule(w, w.goals.IronMgGoal, w.goals.VitaminCMgGoal,
		func(t nutrition.Totals) float64 { return t.IronMg },
		func(t nutrition.Totals) float64 { return t.VitaminCMg },
		"iron", "vitamin C",
		"Vitamin C helps your body absorb iron, so pairing citrus or peppers with iron-rich foods works double duty.")
}

func ruleCalciumVitaminD(w *window) *model.UserInsight {
	return nutrientSynergyRule(w, w.goals.CalciumMgGoal, w.goals.VitaminDUgGoal,
		func(t nutrition.Totals) float64 { return t.CalciumMg },
		func(t nutrition.Totals) float64 { return t.VitaminDUg },
		"calcium", "vitamin D",
		"Vitamin D is what lets your body use calcium, so low levels of both compound each other.")
}

func nutrientSynergyRule(w *window, goalA, goalB *float64, selA, selB func(nutrition.Totals) float64, nameA, nameB, tip string) *model.UserInsight {
	if goalA == nil || *goalA <= 0 || goalB == nil || *goalB <= 0 {
		return nil
	}
	fd := w.foodDays()
	if len(fd) < 3 {
		return nil
	}
	avgA := avgOverDays(fd, selA)
	avgB := avgOverDays(fd, selB)
	if avgA < synergyGoalFactor**goalA && avgB < synergyGoalFactor**goalB {
		return &model.UserInsight{
			Title:    fmt.Sprintf("Both %s and %s are low", nameA, nameB),
			Message:  fmt.Sprintf("You're under 70%% of your goals for both %s and %s. %s", nameA, nameB, tip),
			Category: model.CategoryMicroNutrient,
			Priority: 7,
		}
	}
	return nil
}

func rulePostWorkoutRefuel(w *window) *model.UserInsight {
	for _, d := range w.days {
		for _, e := range d.log.Exercises {
			if e.CaloriesBurned <= refuelBurnThreshold {
				continue
			}
			start := e.EndedAt()
			end := start.Add(refuelWindow)
			if !refueledWithin(d.log, start, end) {
				return &model.UserInsight{
					Title:    "No post-workout refuel",
					Message:  fmt.Sprintf("After burning %d calories on %s, nothing with meaningful protein or carbs was logged within two hours. A recovery snack helps your muscles rebuild.", e.CaloriesBurned, d.log.Date.Format("Jan 2")),
					Category: model.CategoryPostWorkout,
					Priority: 8,
				}
			}
		}
	}
	return nil
}

func refueledWithin(log model.DailyLog, start, end time.Time) bool {
	for _, m := range log.Meals {
		for _, item := range m.Items {
			if item.LoggedAt == nil {
				continue
			}
			if item.LoggedAt.Before(start) || item.LoggedAt.After(end) {
				continue
			}
			if item.ProteinG > refuelProteinG || item.CarbsG > refuelCarbsG {
				return true
			}
		}
	}
	return false
}

func ruleSugaryFoods(w *window) *model.UserInsight {
	if len(w.days) < 3 {
		return nil
	}
	matched := 0
	matchedDays := map[string]struct{}{}
	for _, d := range w.days {
		dayKey := d.log.Date.Format("2006-01-02")
		for _, m := range d.log.Meals {
			for _, item := range m.Items {
				name := strings.ToLower(item.Name)
				for _, kw := range sugaryKeywords {
					if strings.Contains(name, kw) {
						matched++
						matchedDays[dayKey] = struct{}{}
						break
					}
				}
			}
		}
	}
	if len(matchedDays) >= 2 && len(matchedDays)*2 >= len(w.days) && matched >= len(w.days) {
		return &model.UserInsight{
			Title:    "Sugary foods keep showing up",
			Message:  fmt.Sprintf("Sweets appeared %d times across %d recent days. You don't have to cut them out, but spacing them further apart keeps cravings in check.", matched, len(matchedDays)),
			Category: model.CategorySugarAwareness,
			Priority: 6,
		}
	}
	return nil
}

func ruleCalorieGoalStreak(w *window) *model.UserInsight {
	if w.goals.Calories == nil {
		return nil
	}
	goal := float64(*w.goals.Calories)
	fd := w.foodDays()
	if len(fd) < deficitRunDays {
		return nil
	}
	recent := fd[len(fd)-deficitRunDays:]
	for _, d := range recent {
		cal := float64(d.totals.Calories)
		if cal < (1-goalHitTolerance)*goal || cal > (1+goalHitTolerance)*goal {
			return nil
		}
	}
	return &model.UserInsight{
		Title:    "Right on target",
		Message:  fmt.Sprintf("Your last %d logged days all landed within 10%% of your %.0f calorie goal. That kind of consistency is what moves the needle.", deficitRunDays, goal),
		Category: model.CategoryPositiveReinforcement,
		Priority: 10,
	}
}

func avgOverDays(days []dayTotals, sel func(nutrition.Totals) float64) float64 {
	if len(days) == 0 {
		return 0
	}
	sum := 0.0
	for _, d := range days {
		sum += sel(d.totals)
	}
	return sum / float64(len(days))
}
