package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"travelrec/internal/model"
)

const (
	wrapWidth         = 60
	maxDescriptionLen = 200
)

// FormatItem renders a catalog item as the multi-line detail block shown by
// the interactive assistant. The first line is always the item's title.
func FormatItem(item model.Item) string {
	switch it := item.(type) {
	case *model.Restaurant:
		return formatRestaurant(it)
	case *model.Hotel:
		return formatHotel(it)
	case *model.Vehicle:
		return formatVehicle(it)
	}
	return ""
}

func formatRestaurant(r *model.Restaurant) string {
	reviews := ""
	if r.ReviewCount > 0 {
		reviews = fmt.Sprintf(" (%d reviews)", r.ReviewCount)
	}

	var price string
	switch {
	case r.PriceRangeFrom > 0 && r.PriceRangeTo > 0:
		price = fmt.Sprintf("%s - %s", rupees(r.PriceRangeFrom), rupees(r.PriceRangeTo))
	case r.PriceRangeTo > 0:
		price = "Up to " + rupees(r.PriceRangeTo)
	case r.PriceRangeFrom > 0:
		price = "From " + rupees(r.PriceRangeFrom)
	default:
		price = "Price not available"
	}

	lines := []string{
		r.Name,
		"Rating: " + Stars(r.Rating) + reviews,
		"Price: " + price,
		"Cuisines: " + orDefault(joinSet(r.Cuisines), "Cuisine not specified"),
		"Address: " + wrap(orDefault(r.Address, "Address not available")),
		"Phone: " + orDefault(r.Phone, "Phone not available"),
	}
	return strings.Join(lines, "\n")
}

func formatHotel(h *model.Hotel) string {
	price := "Price not available"
	if h.Price > 0 {
		price = rupees(h.Price)
	}

	description := h.Description
	if len(description) > maxDescriptionLen {
		description = strings.TrimSpace(description[:maxDescriptionLen]) + "..."
	}

	lines := []string{
		h.Name,
		"Rating: " + Stars(h.Rating),
		"Price: " + price,
		"Category: " + orDefault(h.Category, "Not specified"),
		"Location: " + wrap(orDefault(h.Location, "Location not available")),
		"Amenities: " + wrap(orDefault(joinSet(h.Amenities), "Not specified")),
		"Description: " + wrap(orDefault(description, "No description available")),
	}
	return strings.Join(lines, "\n")
}

func formatVehicle(v *model.Vehicle) string {
	title := v.Name
	if v.Type != "" {
		title = fmt.Sprintf("%s (%s)", v.Name, titleCase(v.Type))
	}

	daily, hourly := "Not available", "Not available"
	if v.PricePerDay > 0 {
		daily = rupees(v.PricePerDay)
	}
	if v.PricePerHour > 0 {
		hourly = rupees(v.PricePerHour)
	}

	capacity := "Not specified"
	if v.Capacity > 0 {
		capacity = fmt.Sprintf("%d", v.Capacity)
	}

	lines := []string{
		title,
		"Rating: " + Stars(v.Rating),
		fmt.Sprintf("Price: %s/day | %s/hour", daily, hourly),
		"Preference: " + orDefault(v.Preference, "Not specified"),
		"Passenger Capacity: " + capacity,
		"Pickup Locations: " + wrap(orDefault(strings.Join(v.PickupLocations, ", "), "Not specified")),
		"Drop-off Locations: " + wrap(orDefault(strings.Join(v.DropOffLocations, ", "), "Not specified")),
	}
	return strings.Join(lines, "\n")
}

// Stars renders a rating as full stars plus a half star for a fractional
// part of .5 or more. A zero or invalid rating reads "No ratings".
func Stars(rating float64) string {
	if rating <= 0 || math.IsNaN(rating) {
		return "No ratings"
	}
	full := int(rating)
	s := strings.Repeat("★", full)
	if rating-float64(full) >= 0.5 {
		s += "½"
	}
	return s
}

func rupees(v float64) string {
	return fmt.Sprintf("₹%d", int(v))
}

func joinSet(s model.StringSet) string {
	values := make([]string, 0, len(s))
	for v := range s {
		values = append(values, v)
	}
	sort.Strings(values)
	return strings.Join(values, ", ")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// wrap breaks s into lines of at most wrapWidth characters on word
// boundaries. Continuation lines are indented by two spaces.
func wrap(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if i > 0 {
			if lineLen+1+len(w) > wrapWidth {
				b.WriteString("\n  ")
				lineLen = 0
			} else {
				b.WriteByte(' ')
				lineLen++
			}
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
