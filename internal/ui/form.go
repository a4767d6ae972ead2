package ui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/wayfare/internal/flights"
	"github.com/five82/wayfare/internal/lookup"
	"github.com/five82/wayfare/internal/prefs"
)

type fieldID int

const (
	fieldOrigin fieldID = iota
	fieldDestination
	fieldDeparture
	fieldReturn
	fieldAdults
	fieldChildren
	fieldInfants
	fieldClass
	fieldCurrency
	fieldNonStop
	fieldMaxPrice
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldOrigin:      "From",
	fieldDestination: "To",
	fieldDeparture:   "Departure",
	fieldReturn:      "Return",
	fieldAdults:      "Adults",
	fieldChildren:    "Children",
	fieldInfants:     "Infants",
	fieldClass:       "Class",
	fieldCurrency:    "Currency",
	fieldNonStop:     "Non-stop",
	fieldMaxPrice:    "Max price",
}

// formAction tells the model what a key did to the form.
type formAction int

const (
	formNone formAction = iota
	formSubmit
)

// suggestState holds the autocomplete list of one airport field.
type suggestState struct {
	debouncer *lookup.Debouncer
	items     []flights.Location
	highlight int
	chosen    *flights.Location
	err       error
}

// form is the search form. It never talks to the backend itself; lookups
// and submissions are returned as commands and actions.
type form struct {
	inputs      [fieldCount]textinput.Model
	classIdx    int
	currencyIdx int
	nonStop     bool
	focus       fieldID
	suggest     [2]suggestState
	fieldErrs   []*flights.FieldError
	err         error
}

func newForm(p prefs.Prefs, debounce time.Duration) form {
	f := form{
		classIdx:    max(slices.Index(flights.TravelClasses, p.TravelClass), 0),
		currencyIdx: max(slices.Index(flights.Currencies, p.Currency), 0),
	}
	placeholders := map[fieldID]string{
		fieldOrigin:      "city or airport",
		fieldDestination: "city or airport",
		fieldDeparture:   "YYYY-MM-DD",
		fieldReturn:      "YYYY-MM-DD (optional)",
		fieldMaxPrice:    "no limit",
	}
	for id := fieldOrigin; id < fieldCount; id++ {
		if !isTextField(id) {
			continue
		}
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = placeholders[id]
		ti.CharLimit = 40
		f.inputs[id] = ti
	}
	f.inputs[fieldAdults].SetValue("1")
	f.inputs[fieldChildren].SetValue("0")
	f.inputs[fieldInfants].SetValue("0")
	for i := range f.suggest {
		f.suggest[i].debouncer = lookup.NewDebouncer(debounce)
	}
	f.focusField(fieldOrigin)
	return f
}

func isTextField(id fieldID) bool {
	return id != fieldClass && id != fieldCurrency && id != fieldNonStop
}

func isAirportField(id fieldID) bool {
	return id == fieldOrigin || id == fieldDestination
}

func (f *form) focusField(id fieldID) {
	for i := range f.inputs {
		if isTextField(fieldID(i)) {
			f.inputs[i].Blur()
		}
	}
	f.focus = id
	if isTextField(id) {
		f.inputs[id].Focus()
	}
}

func (f *form) move(delta int) {
	next := (int(f.focus) + delta + int(fieldCount)) % int(fieldCount)
	f.focusField(fieldID(next))
}

// suggestions returns the open autocomplete list of the focused field.
func (f *form) suggestions() *suggestState {
	if !isAirportField(f.focus) {
		return nil
	}
	return &f.suggest[f.focus]
}

// update applies a key to the form. Typing in an airport field returns a
// debounced suggestion tick.
func (f *form) update(msg tea.KeyMsg, keys keyMap) (tea.Cmd, formAction) {
	s := f.suggestions()
	open := s != nil && len(s.items) > 0

	switch {
	case key.Matches(msg, keys.Submit):
		return nil, formSubmit
	case open && key.Matches(msg, keys.NextSuggestion):
		s.highlight = (s.highlight + 1) % len(s.items)
		return nil, formNone
	case open && key.Matches(msg, keys.PrevSuggestion):
		s.highlight = (s.highlight - 1 + len(s.items)) % len(s.items)
		return nil, formNone
	case open && key.Matches(msg, keys.Accept):
		f.accept(f.focus, s.items[s.highlight])
		f.move(1)
		return nil, formNone
	case key.Matches(msg, keys.Accept):
		return nil, formSubmit
	case key.Matches(msg, keys.NextField):
		f.closeSuggestions()
		f.move(1)
		return nil, formNone
	case key.Matches(msg, keys.PrevField):
		f.closeSuggestions()
		f.move(-1)
		return nil, formNone
	}

	switch f.focus {
	case fieldClass:
		f.classIdx = cycle(f.classIdx, len(flights.TravelClasses), msg, keys)
		return nil, formNone
	case fieldCurrency:
		f.currencyIdx = cycle(f.currencyIdx, len(flights.Currencies), msg, keys)
		return nil, formNone
	case fieldNonStop:
		if key.Matches(msg, keys.Toggle, keys.ChoiceNext, keys.ChoicePrev) {
			f.nonStop = !f.nonStop
		}
		return nil, formNone
	}

	before := f.inputs[f.focus].Value()
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	if isAirportField(f.focus) && f.inputs[f.focus].Value() != before {
		return tea.Batch(cmd, f.scheduleLookup(f.focus)), formNone
	}
	return cmd, formNone
}

func cycle(idx, n int, msg tea.KeyMsg, keys keyMap) int {
	switch {
	case key.Matches(msg, keys.ChoiceNext, keys.Toggle):
		return (idx + 1) % n
	case key.Matches(msg, keys.ChoicePrev):
		return (idx - 1 + n) % n
	}
	return idx
}

// scheduleLookup starts a debounce window for the field's current text.
// Input shorter than the lookup minimum clears the list instead.
func (f *form) scheduleLookup(id fieldID) tea.Cmd {
	s := &f.suggest[id]
	s.chosen = nil
	s.err = nil
	input := strings.TrimSpace(f.inputs[id].Value())
	if len(input) < lookup.MinKeywordLength {
		s.debouncer.Cancel()
		s.items = nil
		return nil
	}
	tag := s.debouncer.Next()
	return tea.Tick(s.debouncer.Delay(), func(time.Time) tea.Msg {
		return suggestTickMsg{field: id, tag: tag, input: input}
	})
}

// setSuggestions stores a lookup answer unless a newer keystroke superseded
// it.
func (f *form) setSuggestions(msg suggestionsMsg) bool {
	s := &f.suggest[msg.field]
	if !s.debouncer.Settled(msg.tag) {
		return false
	}
	s.items = msg.items
	s.err = msg.err
	s.highlight = 0
	return true
}

func (f *form) accept(id fieldID, loc flights.Location) {
	s := &f.suggest[id]
	s.debouncer.Cancel()
	s.items = nil
	s.chosen = &loc
	f.inputs[id].SetValue(loc.IATACode)
	f.inputs[id].CursorEnd()
}

func (f *form) closeSuggestions() {
	if s := f.suggestions(); s != nil {
		s.debouncer.Cancel()
		s.items = nil
	}
}

// request builds the search request. Only non-numeric counts are reported
// here; everything else is left to SearchRequest.Validate.
func (f form) request() (flights.SearchRequest, error) {
	var errs []error
	number := func(id fieldID, name string) int {
		raw := strings.TrimSpace(f.inputs[id].Value())
		if raw == "" {
			return 0
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			errs = append(errs, &flights.FieldError{Field: name, Message: "must be a whole number"})
		}
		return n
	}
	req := flights.SearchRequest{
		Origin:        strings.ToUpper(strings.TrimSpace(f.inputs[fieldOrigin].Value())),
		Destination:   strings.ToUpper(strings.TrimSpace(f.inputs[fieldDestination].Value())),
		DepartureDate: strings.TrimSpace(f.inputs[fieldDeparture].Value()),
		ReturnDate:    strings.TrimSpace(f.inputs[fieldReturn].Value()),
		Adults:        number(fieldAdults, "adults"),
		Children:      number(fieldChildren, "children"),
		Infants:       number(fieldInfants, "infants"),
		TravelClass:   flights.TravelClasses[f.classIdx],
		CurrencyCode:  flights.Currencies[f.currencyIdx],
		NonStop:       f.nonStop,
		MaxPrice:      number(fieldMaxPrice, "maxPrice"),
	}
	return req, errors.Join(errs...)
}

// setErrors splits err into field errors shown per line and a general
// message. A nil err clears both.
func (f *form) setErrors(err error) {
	f.fieldErrs = nil
	f.err = nil
	if err == nil {
		return
	}
	parts := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		parts = joined.Unwrap()
	}
	for _, part := range parts {
		var fe *flights.FieldError
		if errors.As(part, &fe) {
			f.fieldErrs = append(f.fieldErrs, fe)
			continue
		}
		f.err = errors.Join(f.err, part)
	}
}

func (f form) hasErrors() bool {
	return len(f.fieldErrs) > 0 || f.err != nil
}

// view renders the form body for a pane of the given inner width.
func (f form) view(width int, t Theme, bgColor string) string {
	styles := t.Styles().WithBackground(bgColor)
	bg := NewBgStyle(bgColor)

	var lines []string
	for id := fieldOrigin; id < fieldCount; id++ {
		focused := id == f.focus
		marker := bg.Render("  ", styles.Text)
		if focused {
			marker = bg.Render("› ", styles.AccentText)
		}
		line := marker + bg.Render(fmt.Sprintf("%-12s", fieldLabels[id]), styles.MutedText) + f.fieldValue(id, styles, bg)
		lines = append(lines, bg.FillLine(line, width))

		if isAirportField(id) && focused {
			lines = append(lines, f.suggestionLines(id, width, t, styles, bg)...)
		}
	}

	if f.hasErrors() {
		lines = append(lines, "")
		for _, fe := range f.fieldErrs {
			lines = append(lines, bg.FillLine(bg.Render("• "+fe.Error(), styles.DangerText), width))
		}
		if f.err != nil {
			lines = append(lines, bg.FillLine(bg.Render("• "+f.err.Error(), styles.DangerText), width))
		}
	}
	return strings.Join(lines, "\n")
}

func (f form) fieldValue(id fieldID, styles Styles, bg BgStyle) string {
	choice := func(options []string, idx int) string {
		return bg.Render("‹ ", styles.FaintText) + bg.Render(options[idx], styles.Text) + bg.Render(" ›", styles.FaintText)
	}
	switch id {
	case fieldClass:
		return choice(flights.TravelClasses, f.classIdx)
	case fieldCurrency:
		return choice(flights.Currencies, f.currencyIdx)
	case fieldNonStop:
		if f.nonStop {
			return bg.Render("[x] only direct flights", styles.Text)
		}
		return bg.Render("[ ] any number of stops", styles.MutedText)
	}
	value := f.inputs[id].View()
	if isAirportField(id) {
		if chosen := f.suggest[id].chosen; chosen != nil && chosen.Name != "" {
			value += bg.Space() + bg.Render(chosen.Name, styles.FaintText)
		}
	}
	return value
}

func (f form) suggestionLines(id fieldID, width int, t Theme, styles Styles, bg BgStyle) []string {
	s := f.suggest[id]
	indent := bg.Spaces(14)
	if s.err != nil {
		return []string{bg.FillLine(indent+bg.Render("lookup failed: "+s.err.Error(), styles.WarningText), width)}
	}
	lines := make([]string, 0, len(s.items))
	selected := lipgloss.NewStyle().
		Background(lipgloss.Color(t.SelectionBg)).
		Foreground(lipgloss.Color(t.SelectionText))
	for i, loc := range s.items {
		label := truncate(loc.Label(), max(width-16, 10))
		if i == s.highlight {
			lines = append(lines, bg.FillLine(indent+selected.Render(label), width))
			continue
		}
		lines = append(lines, bg.FillLine(indent+bg.Render(label, styles.MutedText), width))
	}
	return lines
}

// routeLabel renders "MEX → CUN" using accepted suggestion names when known.
func (f form) routeLabel() string {
	name := func(id fieldID) string {
		code := strings.ToUpper(strings.TrimSpace(f.inputs[id].Value()))
		if chosen := f.suggest[id].chosen; chosen != nil && chosen.Address.CityName != "" {
			return fmt.Sprintf("%s (%s)", code, chosen.Address.CityName)
		}
		return code
	}
	return name(fieldOrigin) + " → " + name(fieldDestination)
}

type suggestTickMsg struct {
	field fieldID
	tag   uint64
	input string
}

type suggestionsMsg struct {
	field fieldID
	tag   uint64
	items []flights.Location
	err   error
}
