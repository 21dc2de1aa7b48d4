// Package input parses what the user types into the search dialog.
package input

import (
	"strconv"
	"strings"
)

// Query is a parsed search input. Text is matched fuzzily; Major and Grade
// come from "major:" and "grade:" terms.
type Query struct {
	Text  string
	Major string
	Grade int
}

// QueryKey describes a filter term the dialog understands.
type QueryKey struct {
	Name        string
	Description string
}

// QueryKeys lists the filter terms in the order they are suggested.
var QueryKeys = []QueryKey{
	{Name: "major:", Description: "Exact major, e.g. major:CS"},
	{Name: "grade:", Description: "Year, e.g. grade:2"},
}

// ParseQuery splits input into free text and filter terms. A term with an
// empty or invalid value is kept as text so nothing the user typed is lost.
func ParseQuery(input string) Query {
	var q Query
	var text []string
	for _, field := range strings.Fields(input) {
		key, value, ok := strings.Cut(field, ":")
		if !ok || value == "" {
			text = append(text, field)
			continue
		}
		switch strings.ToLower(key) {
		case "major", "m":
			q.Major = value
		case "grade", "g":
			grade, err := strconv.Atoi(value)
			if err != nil || grade <= 0 {
				text = append(text, field)
				continue
			}
			q.Grade = grade
		default:
			text = append(text, field)
		}
	}
	q.Text = strings.Join(text, " ")
	return q
}

// MatchingKeys returns the filter terms that complete the last word of input.
func MatchingKeys(input string) []QueryKey {
	if input == "" || strings.HasSuffix(input, " ") {
		return nil
	}
	fields := strings.Fields(input)
	last := strings.ToLower(fields[len(fields)-1])
	if strings.Contains(last, ":") {
		return nil
	}

	matches := make([]QueryKey, 0, len(QueryKeys))
	for _, k := range QueryKeys {
		if strings.HasPrefix(k.Name, last) {
			matches = append(matches, k)
		}
	}
	return matches
}

// Autocomplete replaces the last word of input with the first matching term.
func Autocomplete(input string) (string, bool) {
	matches := MatchingKeys(input)
	if len(matches) == 0 {
		return input, false
	}
	i := strings.LastIndexAny(input, " \t")
	return input[:i+1] + matches[0].Name, true
}
