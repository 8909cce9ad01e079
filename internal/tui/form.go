package tui

import (
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rpggio/quotedesk/internal/domain/catalog"
)

// formField is a text input, or a choice cycled with left/right when
// choices is set.
type formField struct {
	key     string
	label   string
	input   textinput.Model
	choices func(f *formModel) []string
	value   string
}

func (f *formField) text() string {
	if f.choices != nil {
		return f.value
	}
	return strings.TrimSpace(f.input.Value())
}

// formModel is a create form for one resource.
type formModel struct {
	title    string
	resource catalog.Resource
	fields   []*formField
	focus    int
	busy     bool
	message  string
	failed   bool
	// onChange runs after a choice field changes.
	onChange func(f *formModel, key string)
}

func textField(key, label, placeholder string) *formField {
	return &formField{key: key, label: label, input: newInput(placeholder)}
}

func choiceField(key, label string, choices func(f *formModel) []string, initial string) *formField {
	return &formField{key: key, label: label, choices: choices, value: initial}
}

func newCustomerForm() *formModel {
	f := &formModel{
		title:    "Add Customer",
		resource: catalog.Customers,
		fields: []*formField{
			textField("name", "Company name", "Acme Inc."),
			textField("email", "Email", "billing@acme.com"),
			choiceField("currency", "Currency", func(*formModel) []string { return catalog.Currencies }, ""),
			textField("billingContact", "Billing contact", "Jane Doe"),
			textField("location", "Address", "1 Main St"),
			textField("city", "City", ""),
			textField("postalCode", "Postal code", ""),
			choiceField("country", "Country", func(*formModel) []string { return catalog.Countries() }, catalog.DefaultCountry),
			choiceField("state", "State/Province", func(f *formModel) []string { return catalog.CountryStates[f.value("country")] }, ""),
		},
		onChange: func(f *formModel, key string) {
			if key == "country" {
				f.field("state").value = ""
			}
		},
	}
	f.setFocus(0)
	return f
}

func newProductForm() *formModel {
	f := &formModel{
		title:    "Add Product",
		resource: catalog.Products,
		fields:   []*formField{textField("name", "Product name", "")},
	}
	f.setFocus(0)
	return f
}

func (f *formModel) field(key string) *formField {
	for _, fld := range f.fields {
		if fld.key == key {
			return fld
		}
	}
	return nil
}

func (f *formModel) value(key string) string {
	if fld := f.field(key); fld != nil {
		return fld.text()
	}
	return ""
}

func (f *formModel) customerInput() catalog.CustomerInput {
	return catalog.CustomerInput{
		Name:           f.value("name"),
		Email:          f.value("email"),
		Currency:       f.value("currency"),
		BillingContact: f.value("billingContact"),
		Location:       f.value("location"),
		City:           f.value("city"),
		PostalCode:     f.value("postalCode"),
		Country:        f.value("country"),
		State:          f.value("state"),
	}
}

func (f *formModel) productInput() catalog.ProductInput {
	return catalog.ProductInput{Name: f.value("name")}
}

func (f *formModel) setFocus(i int) tea.Cmd {
	f.focus = (i + len(f.fields)) % len(f.fields)
	var cmd tea.Cmd
	for j, fld := range f.fields {
		if fld.choices != nil {
			continue
		}
		if j == f.focus {
			cmd = fld.input.Focus()
		} else {
			fld.input.Blur()
		}
	}
	return cmd
}

// reset clears every field after a successful create.
func (f *formModel) reset() {
	for _, fld := range f.fields {
		fld.input.SetValue("")
		if fld.choices != nil && fld.key != "country" {
			fld.value = ""
		}
	}
	f.setFocus(0)
}

// update handles form keys. submit is true when the form should be posted.
func (f *formModel) update(msg tea.KeyMsg) (cmd tea.Cmd, submit bool) {
	if f.busy {
		return nil, false
	}
	cur := f.fields[f.focus]
	switch msg.String() {
	case "tab", "down":
		return f.setFocus(f.focus + 1), false
	case "shift+tab", "up":
		return f.setFocus(f.focus - 1), false
	case "ctrl+s":
		return nil, true
	case "enter":
		if f.focus == len(f.fields)-1 {
			return nil, true
		}
		return f.setFocus(f.focus + 1), false
	case "left", "right":
		if cur.choices != nil {
			cur.value = cycle(cur.choices(f), cur.value, msg.String() == "right")
			if f.onChange != nil {
				f.onChange(f, cur.key)
			}
			return nil, false
		}
	}
	if cur.choices != nil {
		return nil, false
	}
	cur.input, cmd = cur.input.Update(msg)
	return cmd, false
}

// cycle moves from current to the next or previous choice, wrapping.
func cycle(choices []string, current string, forward bool) string {
	if len(choices) == 0 {
		return ""
	}
	i := slices.Index(choices, current)
	switch {
	case i < 0 && forward:
		return choices[0]
	case i < 0:
		return choices[len(choices)-1]
	case forward:
		return choices[(i+1)%len(choices)]
	default:
		return choices[(i-1+len(choices))%len(choices)]
	}
}

func (f *formModel) render() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(f.title) + "\n\n")
	for i, fld := range f.fields {
		label := labelStyle.Render(fld.label)
		if i == f.focus {
			label = focusedLabel.Render(fld.label)
		}
		b.WriteString(label)
		if fld.choices != nil {
			v := fld.value
			if v == "" {
				v = mutedStyle.Render("select")
			}
			b.WriteString("< " + v + " >")
		} else {
			b.WriteString(fld.input.View())
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case f.busy:
		b.WriteString(mutedStyle.Render("Saving..."))
	case f.message != "":
		b.WriteString(feedback(f.message, f.failed))
	default:
		b.WriteString(mutedStyle.Render("tab: next  ←/→: choose  ctrl+s: save  esc: back"))
	}
	return boxStyle.Render(b.String())
}
