package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultTitle is used when a task is saved with a blank title
	DefaultTitle = "Untitled"

	// DefaultColor is the title color preselected in the task form
	DefaultColor = "#7a66ff"

	// PlaceholderImage is the icon reference used when no image was supplied
	PlaceholderImage = "images/light-bulb.gif"
)

// Task represents one card on the board.
// Identity is positional: a task is addressed by its index in the board.
type Task struct {
	Title       string `json:"title"`
	Description string `json:"description"` // HTML fragment
	Start       string `json:"start"`       // "HH:MM" or empty
	End         string `json:"end"`         // "HH:MM" or empty
	Color       string `json:"color"`
	Image       string `json:"image"` // data URI or PlaceholderImage
	Completed   bool   `json:"completed,omitempty"`
}

// HasCustomImage returns true if the task carries a user supplied image
func (t *Task) HasCustomImage() bool {
	return strings.HasPrefix(t.Image, "data:")
}

// IconRef returns the image to display, falling back to the placeholder
// for records persisted without one
func (t *Task) IconRef() string {
	if t.Image == "" {
		return PlaceholderImage
	}
	return t.Image
}

// TimeRange returns the "start – end" label shown on the card
func (t *Task) TimeRange() string {
	return t.Start + " – " + t.End
}

// TimeSlots returns every selectable time of day, 00:00 to 23:30 in 30 minute steps
func TimeSlots() []string {
	slots := make([]string, 0, 48)
	for h := 0; h < 24; h++ {
		for _, m := range []string{"00", "30"} {
			slots = append(slots, fmt.Sprintf("%02d:%s", h, m))
		}
	}
	return slots
}

// SnapSlot normalizes a time of day to its 30 minute slot.
// Minutes are truncated, never rounded up. Empty or unparseable input yields "".
func SnapSlot(s string) string {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return ""
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 || len(hh) > 2 {
		return ""
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 || len(mm) != 2 {
		return ""
	}
	if m < 30 {
		return fmt.Sprintf("%02d:00", h)
	}
	return fmt.Sprintf("%02d:30", h)
}

// SlotIndex returns the index of s in TimeSlots, or -1 when s is not a slot
func SlotIndex(s string) int {
	snapped := SnapSlot(s)
	if snapped == "" || snapped != s {
		return -1
	}
	h, _ := strconv.Atoi(s[:2])
	idx := h * 2
	if s[3:] == "30" {
		idx++
	}
	return idx
}
