// Package holiday computes Austrian public holidays. Everything is derived
// per year from nine fixed-date rules plus four Easter-anchored ones; nothing
// is persisted or cached.
package holiday

import (
	"sort"
	"time"

	"liftec/internal/timeutil"
)

// Holiday is one public holiday with its localized label.
type Holiday struct {
	Date time.Time
	Name string
}

type names struct {
	de, en, hr string
}

func (n names) forLanguage(lang string) string {
	switch lang {
	case "en":
		return n.en
	case "hr":
		return n.hr
	default:
		return n.de
	}
}

type fixedRule struct {
	month time.Month
	day   int
	names names
}

var fixedRules = []fixedRule{
	{time.January, 1, names{"Neujahr", "New Year's Day", "Nova godina"}},
	{time.January, 6, names{"Heilige Drei Könige", "Epiphany", "Sveta tri kralja"}},
	{time.May, 1, names{"Staatsfeiertag", "Labour Day", "Praznik rada"}},
	{time.August, 15, names{"Mariä Himmelfahrt", "Assumption Day", "Velika Gospa"}},
	{time.October, 26, names{"Nationalfeiertag", "National Day", "Nacionalni praznik"}},
	{time.November, 1, names{"Allerheiligen", "All Saints' Day", "Svi sveti"}},
	{time.December, 8, names{"Mariä Empfängnis", "Immaculate Conception", "Bezgrešno začeće"}},
	{time.December, 25, names{"Christtag", "Christmas Day", "Božić"}},
	{time.December, 26, names{"Stefanitag", "St. Stephen's Day", "Štefanje"}},
}

type easterRule struct {
	offset int
	names  names
}

var easterRules = []easterRule{
	{1, names{"Ostermontag", "Easter Monday", "Uskrsni ponedjeljak"}},
	{39, names{"Christi Himmelfahrt", "Ascension Day", "Uzašašće"}},
	{50, names{"Pfingstmontag", "Whit Monday", "Duhovski ponedjeljak"}},
	{60, names{"Fronleichnam", "Corpus Christi", "Tijelovo"}},
}

// easterSunday computes Easter Sunday with the Meeus/Jones/Butcher algorithm,
// integer arithmetic only. The result is pinned to noon like every other
// calendar date here.
func easterSunday(year int) time.Time {
	a := year % 19
	b := year / 100
	c := year % 100
	d := b / 4
	e := b % 4
	f := (b + 8) / 25
	g := (b - f + 1) / 3
	h := (19*a + b - d - g + 15) % 30
	i := c / 4
	k := c % 4
	l := (32 + 2*e + 2*i - h - k) % 7
	m := (a + 11*h + 22*l) / 451
	month := (h + l - 7*m + 114) / 31
	day := ((h + l - 7*m + 114) % 31) + 1
	return timeutil.Date(year, time.Month(month), day)
}

// All returns every Austrian public holiday of the year, date-ordered, with
// names localized for the given language (de, en, or hr; de is the default).
// Years are not validated; out-of-range input yields correct but meaningless
// far-past or far-future dates.
func All(year int, lang string) []Holiday {
	holidays := make([]Holiday, 0, len(fixedRules)+len(easterRules))
	for _, rule := range fixedRules {
		holidays = append(holidays, Holiday{
			Date: timeutil.Date(year, rule.month, rule.day),
			Name: rule.names.forLanguage(lang),
		})
	}

	easter := easterSunday(year)
	for _, rule := range easterRules {
		holidays = append(holidays, Holiday{
			Date: easter.AddDate(0, 0, rule.offset),
			Name: rule.names.forLanguage(lang),
		})
	}

	sort.Slice(holidays, func(i, j int) bool {
		return holidays[i].Date.Before(holidays[j].Date)
	})
	return holidays
}

// Lookup reports whether the DD.MM.YYYY date is a public holiday and, if so,
// its localized name.
func Lookup(dateValue, lang string) (string, bool) {
	date, err := timeutil.ParseDate(dateValue)
	if err != nil {
		return "", false
	}
	for _, h := range All(date.Year(), lang) {
		if h.Date.Month() == date.Month() && h.Date.Day() == date.Day() {
			return h.Name, true
		}
	}
	return "", false
}

// InMonth returns the holidays falling in the given month, date-ordered.
func InMonth(year, month int, lang string) []Holiday {
	holidays := make([]Holiday, 0, 4)
	for _, h := range All(year, lang) {
		if h.Date.Month() == time.Month(month) {
			holidays = append(holidays, h)
		}
	}
	return holidays
}
