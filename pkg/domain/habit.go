package domain

import "strings"

// Description markers the contract UI writes into habitDescription.
const (
	MarkerReading = "阅读"
	MarkerRunning = "跑步"
	MarkerCoding  = "编程"
)

// HabitKind classifies a challenge for display.
type HabitKind struct {
	ID     string
	Marker string
	Icon   string
	Color  string
}

// HabitKinds is checked in order; the first marker found in a description wins.
var HabitKinds = []HabitKind{
	{ID: "reading", Marker: MarkerReading, Icon: "menu_book", Color: "blue"},
	{ID: "running", Marker: MarkerRunning, Icon: "directions_run", Color: "orange"},
	{ID: "coding", Marker: MarkerCoding, Icon: "code", Color: "purple"},
}

// OtherHabit is used when no marker matches.
var OtherHabit = HabitKind{ID: "other", Icon: "trending_up", Color: "emerald"}

// KindOf returns the display kind for a habit description.
func KindOf(description string) HabitKind {
	for _, k := range HabitKinds {
		if strings.Contains(description, k.Marker) {
			return k
		}
	}
	return OtherHabit
}
