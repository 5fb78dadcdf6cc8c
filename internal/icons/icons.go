// Package icons maps a closed set of icon names to inline SVG markup.
//
// Feature records name their icon by string. Names outside the set render
// no icon; callers show the label alone.
package icons

import (
	"fmt"
	"html/template"
	"sort"
	"strings"
)

// Name identifies an icon in the set.
type Name string

// Icons available to feature records and page chrome.
const (
	Award        Name = "Award"
	Bed          Name = "Bed"
	Check        Name = "Check"
	ChevronLeft  Name = "ChevronLeft"
	ChevronRight Name = "ChevronRight"
	Clock        Name = "Clock"
	Droplet      Name = "Droplet"
	Feather      Name = "Feather"
	Heart        Name = "Heart"
	Layers       Name = "Layers"
	Leaf         Name = "Leaf"
	Lock         Name = "Lock"
	Mail         Name = "Mail"
	MapPin       Name = "MapPin"
	Menu         Name = "Menu"
	Message      Name = "MessageCircle"
	Moon         Name = "Moon"
	Pencil       Name = "Pencil"
	Phone        Name = "Phone"
	Plus         Name = "Plus"
	Shield       Name = "Shield"
	Star         Name = "Star"
	Thermometer  Name = "Thermometer"
	Trash        Name = "Trash2"
	Wind         Name = "Wind"
	X            Name = "X"
	Zap          Name = "Zap"
)

// paths holds the inner SVG elements on a 24x24 stroked canvas.
var paths = map[Name]string{
	Award:        `<path d="m15.477 12.89 1.515 8.526a.5.5 0 0 1-.81.47l-3.58-2.687a1 1 0 0 0-1.197 0l-3.586 2.686a.5.5 0 0 1-.81-.469l1.514-8.526"/><circle cx="12" cy="8" r="6"/>`,
	Bed:          `<path d="M2 4v16"/><path d="M2 8h18a2 2 0 0 1 2 2v10"/><path d="M2 17h20"/><path d="M6 8v9"/>`,
	Check:        `<path d="M20 6 9 17l-5-5"/>`,
	ChevronLeft:  `<path d="m15 18-6-6 6-6"/>`,
	ChevronRight: `<path d="m9 18 6-6-6-6"/>`,
	Clock:        `<circle cx="12" cy="12" r="10"/><polyline points="12 6 12 12 16 14"/>`,
	Droplet:      `<path d="M12 22a7 7 0 0 0 7-7c0-2-1-3.9-3-5.5s-3.5-4-4-6.5c-.5 2.5-2 4.9-4 6.5C6 11.1 5 13 5 15a7 7 0 0 0 7 7z"/>`,
	Feather:      `<path d="M20.24 12.24a6 6 0 0 0-8.49-8.49L5 10.5V19h8.5z"/><path d="M16 8 2 22"/><path d="M17.5 15H9"/>`,
	Heart:        `<path d="M19 14c1.49-1.46 3-3.21 3-5.5A5.5 5.5 0 0 0 16.5 3c-1.76 0-3 .5-4.5 2-1.5-1.5-2.74-2-4.5-2A5.5 5.5 0 0 0 2 8.5c0 2.3 1.5 4.05 3 5.5l7 7Z"/>`,
	Layers:       `<path d="m12.83 2.18a2 2 0 0 0-1.66 0L2.6 6.08a1 1 0 0 0 0 1.83l8.58 3.91a2 2 0 0 0 1.66 0l8.58-3.9a1 1 0 0 0 0-1.83Z"/><path d="m22 17.65-9.17 4.16a2 2 0 0 1-1.66 0L2 17.65"/><path d="m22 12.65-9.17 4.16a2 2 0 0 1-1.66 0L2 12.65"/>`,
	Leaf:         `<path d="M11 20A7 7 0 0 1 9.8 6.1C15.5 5 17 4.48 19 2c1 2 2 4.18 2 8 0 5.5-4.78 10-10 10Z"/><path d="M2 21c0-3 1.85-5.36 5.08-6C9.5 14.52 12 13 13 12"/>`,
	Lock:         `<rect width="18" height="11" x="3" y="11" rx="2" ry="2"/><path d="M7 11V7a5 5 0 0 1 10 0v4"/>`,
	Mail:         `<rect width="20" height="16" x="2" y="4" rx="2"/><path d="m22 7-8.97 5.7a1.94 1.94 0 0 1-2.06 0L2 7"/>`,
	MapPin:       `<path d="M20 10c0 6-8 12-8 12s-8-6-8-12a8 8 0 0 1 16 0Z"/><circle cx="12" cy="10" r="3"/>`,
	Menu:         `<path d="M4 12h16"/><path d="M4 6h16"/><path d="M4 18h16"/>`,
	Message:      `<path d="M7.9 20A9 9 0 1 0 4 16.1L2 22Z"/>`,
	Moon:         `<path d="M12 3a6 6 0 0 0 9 9 9 9 0 1 1-9-9Z"/>`,
	Pencil:       `<path d="M17 3a2.85 2.83 0 1 1 4 4L7.5 20.5 2 22l1.5-5.5Z"/>`,
	Phone:        `<path d="M22 16.92v3a2 2 0 0 1-2.18 2 19.79 19.79 0 0 1-8.63-3.07 19.5 19.5 0 0 1-6-6 19.79 19.79 0 0 1-3.07-8.67A2 2 0 0 1 4.11 2h3a2 2 0 0 1 2 1.72 12.84 12.84 0 0 0 .7 2.81 2 2 0 0 1-.45 2.11L8.09 9.91a16 16 0 0 0 6 6l1.27-1.27a2 2 0 0 1 2.11-.45 12.84 12.84 0 0 0 2.81.7A2 2 0 0 1 22 16.92z"/>`,
	Plus:         `<path d="M5 12h14"/><path d="M12 5v14"/>`,
	Shield:       `<path d="M20 13c0 5-3.5 7.5-7.66 8.95a1 1 0 0 1-.67-.01C7.5 20.5 4 18 4 13V6a1 1 0 0 1 1-1c2 0 4.5-1.2 6.24-2.72a1.17 1.17 0 0 1 1.52 0C14.51 3.81 17 5 19 5a1 1 0 0 1 1 1z"/>`,
	Star:         `<polygon points="12 2 15.09 8.26 22 9.27 17 14.14 18.18 21.02 12 17.77 5.82 21.02 7 14.14 2 9.27 8.91 8.26 12 2"/>`,
	Thermometer:  `<path d="M14 4v10.54a4 4 0 1 1-4 0V4a2 2 0 0 1 4 0Z"/>`,
	Trash:        `<path d="M3 6h18"/><path d="M19 6v14c0 1-1 2-2 2H7c-1 0-2-1-2-2V6"/><path d="M8 6V4c0-1 1-2 2-2h4c1 0 2 1 2 2v2"/><path d="M10 11v6"/><path d="M14 11v6"/>`,
	Wind:         `<path d="M17.7 7.7a2.5 2.5 0 1 1 1.8 4.3H2"/><path d="M9.6 4.6A2 2 0 1 1 11 8H2"/><path d="M12.6 19.4A2 2 0 1 0 14 16H2"/>`,
	X:            `<path d="M18 6 6 18"/><path d="m6 6 12 12"/>`,
	Zap:          `<polygon points="13 2 3 14 12 14 11 22 21 10 12 10 13 2"/>`,
}

// folded indexes names by lowercase with separators removed, so
// "shield", "Shield" and "map-pin" resolve.
var folded = func() map[string]Name {
	m := make(map[string]Name, len(paths))
	for name := range paths {
		m[fold(string(name))] = name
	}
	return m
}()

func fold(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// Lookup resolves a record's icon string to a Name in the set.
func Lookup(s string) (Name, bool) {
	if _, ok := paths[Name(s)]; ok {
		return Name(s), true
	}
	name, ok := folded[fold(s)]
	return name, ok
}

// Known reports whether s names an icon in the set.
func Known(s string) bool {
	_, ok := Lookup(s)
	return ok
}

// SVG renders an icon as inline markup. Unknown names render nothing.
func SVG(s, class string) template.HTML {
	name, ok := Lookup(s)
	if !ok {
		return ""
	}
	//nolint:gosec // paths is a fixed table and class is escaped
	return template.HTML(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" class="%s" width="24" height="24" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true">%s</svg>`,
		template.HTMLEscapeString(class), paths[name]))
}

// Names lists the set in alphabetical order.
func Names() []Name {
	out := make([]Name, 0, len(paths))
	for name := range paths {
		out = append(out, name)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
