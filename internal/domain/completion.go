package domain

import "slices"

// IsExerciseDone reports whether e counts as completed in p. Rows written
// by older clients may carry only the embedded flag or only the status
// set, so either one is enough.
func IsExerciseDone(p DailyPlan, e Exercise) bool {
	return e.Completed || slices.Contains(p.CompletedStatus.Exercises, e.ID)
}

// IsMealDone reports whether m counts as consumed in p.
func IsMealDone(p DailyPlan, m Meal) bool {
	return m.Consumed || slices.Contains(p.CompletedStatus.Meals, m.ID)
}

// ToggleExercise returns a reconciled copy of p with the completion of
// exercise id inverted in both the embedded flag and the status set. Other
// items keep their state and p itself is not modified. An unknown id yields
// a reconciled but otherwise unchanged copy.
func ToggleExercise(p DailyPlan, id string) DailyPlan {
	out := Reconcile(p)
	for i := range out.Exercises {
		if out.Exercises[i].ID != id {
			continue
		}
		done := !IsExerciseDone(out, out.Exercises[i])
		out.Exercises[i].Completed = done
		out.CompletedStatus.Exercises = setMember(out.CompletedStatus.Exercises, id, done)
		break
	}
	return out
}

// ToggleMeal is ToggleExercise for meals and their consumed flag.
func ToggleMeal(p DailyPlan, id string) DailyPlan {
	out := Reconcile(p)
	for i := range out.Meals {
		if out.Meals[i].ID != id {
			continue
		}
		done := !IsMealDone(out, out.Meals[i])
		out.Meals[i].Consumed = done
		out.CompletedStatus.Meals = setMember(out.CompletedStatus.Meals, id, done)
		break
	}
	return out
}

// Reconcile folds both completion representations into one consistent
// state: an item is done when either its flag or its status entry says so.
// Status ids that match no item are dropped.
func Reconcile(p DailyPlan) DailyPlan {
	out := p.Clone()
	status := NewCompletionStatus()
	for i, e := range out.Exercises {
		done := IsExerciseDone(p, e)
		out.Exercises[i].Completed = done
		if done {
			status.Exercises = setMember(status.Exercises, e.ID, true)
		}
	}
	for i, m := range out.Meals {
		done := IsMealDone(p, m)
		out.Meals[i].Consumed = done
		if done {
			status.Meals = setMember(status.Meals, m.ID, true)
		}
	}
	out.CompletedStatus = status
	return out
}

// SyncStatusFromFlags rebuilds the status set from the embedded flags.
// Used when a client replaces a plan's items wholesale, where the flags it
// sends are authoritative.
func SyncStatusFromFlags(p DailyPlan) DailyPlan {
	out := p.Clone()
	status := NewCompletionStatus()
	for _, e := range out.Exercises {
		if e.Completed {
			status.Exercises = setMember(status.Exercises, e.ID, true)
		}
	}
	for _, m := range out.Meals {
		if m.Consumed {
			status.Meals = setMember(status.Meals, m.ID, true)
		}
	}
	out.CompletedStatus = status
	return out
}

func setMember(ids []string, id string, member bool) []string {
	if member {
		if slices.Contains(ids, id) {
			return ids
		}
		return append(ids, id)
	}
	return slices.DeleteFunc(ids, func(s string) bool { return s == id })
}
