package roommate

import (
	"strings"

	"interview-scheduler/apperr"

	"github.com/samber/mo"
)

const DefaultColor = "#3778C2"

type Roommate struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Roster is inserted once into an empty store.
var Roster = []Roommate{
	{Name: "Vatsal", Color: "#3778C2"},
	{Name: "Ganesh", Color: "#EF6C33"},
	{Name: "Jenil", Color: "#2BAF2B"},
	{Name: "Shibin", Color: "#8E44AD"},
	{Name: "Jeevan", Color: "#C0392B"},
	{Name: "Sarwesh", Color: "#16A085"},
	{Name: "Tushar", Color: "#D35400"},
	{Name: "Rajeev", Color: "#7F8C8D"},
	{Name: "Vineet", Color: "#F1C40F"},
	{Name: "Prakhar", Color: "#1ABC9C"},
	{Name: "Srinidhi", Color: "#9B59B6"},
}

// Validate trims the record and fills in the default color.
func (r *Roommate) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Color = strings.TrimSpace(r.Color)
	if r.Name == "" {
		return apperr.New(apperr.KindMissingField, "name is required")
	}
	if r.Color == "" {
		r.Color = DefaultColor
	}
	return nil
}

// Patch holds the fields supplied to an update. Absent options are left
// untouched.
type Patch struct {
	Name  mo.Option[string]
	Color mo.Option[string]
}

func (p *Patch) Validate() error {
	if name, ok := p.Name.Get(); ok {
		name = strings.TrimSpace(name)
		if name == "" {
			return apperr.New(apperr.KindMissingField, "name cannot be empty")
		}
		p.Name = mo.Some(name)
	}
	if color, ok := p.Color.Get(); ok {
		color = strings.TrimSpace(color)
		if color == "" {
			return apperr.New(apperr.KindMissingField, "color cannot be empty")
		}
		p.Color = mo.Some(color)
	}
	return nil
}
