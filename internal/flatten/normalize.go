// Package flatten converts Notion pages and users into flat records:
// a recursive normalizer for type-tagged property values, plus the
// per-record flatteners that apply the date-handling policy.
package flatten

import (
	"fmt"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/sells-group/notion-export/internal/tabular"
)

// NormalizeProperty converts one Notion property value into its flat
// form: nil, string, float64, bool, time.Time, []string, *tabular.DateSpan,
// or []any for rollup arrays. The dispatch is exhaustive over the
// property types the exporter supports; anything else returns
// UnsupportedPropertyError rather than silently dropping data.
//
// The Notion SDK decodes JSON null string payloads as "" and null
// numbers as 0, so empty strings normalize to nil while numeric and
// boolean zero values pass through.
func NormalizeProperty(p notionapi.Property) (any, error) {
	switch v := p.(type) {
	case *notionapi.URLProperty:
		return nullableString(v.URL), nil
	case *notionapi.EmailProperty:
		return nullableString(v.Email), nil
	case *notionapi.PhoneNumberProperty:
		return nullableString(v.PhoneNumber), nil
	case *notionapi.NumberProperty:
		return v.Number, nil
	case *notionapi.CheckboxProperty:
		return v.Checkbox, nil
	case *notionapi.CreatedTimeProperty:
		return v.CreatedTime, nil
	case *notionapi.LastEditedTimeProperty:
		return v.LastEditedTime, nil
	case *notionapi.CreatedByProperty:
		return nullableString(v.CreatedBy.Name), nil
	case *notionapi.LastEditedByProperty:
		// Deleted or system actors may lack a name.
		return nullableString(v.LastEditedBy.Name), nil
	case *notionapi.RelationProperty:
		ids := make([]string, len(v.Relation))
		for i, r := range v.Relation {
			ids[i] = string(r.ID)
		}
		return ids, nil
	case *notionapi.DateProperty:
		return normalizeDate(v.Date), nil
	case *notionapi.SelectProperty:
		return nullableString(v.Select.Name), nil
	case *notionapi.MultiSelectProperty:
		names := make([]string, len(v.MultiSelect))
		for i, o := range v.MultiSelect {
			names[i] = o.Name
		}
		return names, nil
	case *notionapi.PeopleProperty:
		names := make([]string, 0, len(v.People))
		for _, u := range v.People {
			if u.Name == "" {
				continue // deleted or system actors have no name
			}
			names = append(names, u.Name)
		}
		return names, nil
	case *notionapi.FilesProperty:
		return normalizeFiles(v.Files)
	case *notionapi.TitleProperty:
		return joinPlainText(v.Title), nil
	case *notionapi.RichTextProperty:
		return joinPlainText(v.RichText), nil
	case *notionapi.FormulaProperty:
		return normalizeFormula(v.Formula)
	case *notionapi.RollupProperty:
		return normalizeRollup(v.Rollup)
	default:
		return nil, &UnsupportedPropertyError{Type: propertyTag(p)}
	}
}

// normalizeFormula unwraps a formula result. The result carries its own
// type tag and normalizes exactly as a direct property of that type
// would; the formula wrapper is transparent.
func normalizeFormula(f notionapi.Formula) (any, error) {
	switch f.Type {
	case notionapi.FormulaTypeString:
		return nullableString(f.String), nil
	case notionapi.FormulaTypeNumber:
		return f.Number, nil
	case notionapi.FormulaTypeBoolean:
		return f.Boolean, nil
	case notionapi.FormulaTypeDate:
		return normalizeDate(f.Date), nil
	default:
		return nil, &UnsupportedPropertyError{Type: "formula." + string(f.Type)}
	}
}

// normalizeRollup handles a rollup result. Array rollups normalize each
// element recursively with its own type tag; scalar rollups unwrap like
// formulas.
func normalizeRollup(r notionapi.Rollup) (any, error) {
	switch r.Type {
	case notionapi.RollupTypeArray:
		out := make([]any, len(r.Array))
		for i, elem := range r.Array {
			v, err := NormalizeProperty(elem)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case notionapi.RollupTypeNumber:
		return r.Number, nil
	case notionapi.RollupTypeDate:
		return normalizeDate(r.Date), nil
	default:
		return nil, &UnsupportedPropertyError{Type: "rollup." + string(r.Type)}
	}
}

// normalizeDate converts a Notion date object to a DateSpan, or nil for
// an absent payload. A missing end stays nil inside the span.
func normalizeDate(d *notionapi.DateObject) any {
	if d == nil {
		return nil
	}
	return &tabular.DateSpan{
		Start: dateTime(d.Start),
		End:   dateTime(d.End),
	}
}

func normalizeFiles(files []notionapi.File) ([]string, error) {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		switch {
		case f.File != nil:
			urls = append(urls, f.File.URL)
		case f.External != nil:
			urls = append(urls, f.External.URL)
		default:
			return nil, &UnsupportedPropertyError{Type: "files." + string(f.Type)}
		}
	}
	return urls, nil
}

// joinPlainText concatenates the trimmed plain-text runs of a title or
// rich_text value with single spaces.
func joinPlainText(runs []notionapi.RichText) string {
	parts := make([]string, len(runs))
	for i, r := range runs {
		parts[i] = strings.TrimSpace(r.PlainText)
	}
	return strings.Join(parts, " ")
}

// nullableString maps the SDK's empty-string rendering of a null payload
// back to nil.
func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dateTime(d *notionapi.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := time.Time(*d)
	return &t
}

// propertyTag names a property type for error reporting. Decoded
// properties carry their wire tag; anything else falls back to the Go
// type name.
func propertyTag(p notionapi.Property) string {
	if p == nil {
		return "<nil>"
	}
	if tag := string(p.GetType()); tag != "" {
		return tag
	}
	return fmt.Sprintf("%T", p)
}
