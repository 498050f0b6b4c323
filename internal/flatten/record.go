package flatten

import (
	"sort"
	"time"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"

	"github.com/sells-group/notion-export/internal/tabular"
)

// Reserved column names seeded into every flattened page. Notion
// property names cannot start with an underscore, so these never
// collide with user-defined properties.
const (
	KeyNotionID       = "_notion_id"
	KeyCreatedTime    = "_created_time"
	KeyLastEditedTime = "_last_edited_time"
	KeyNotionURL      = "_notion_url"
)

// FlattenPage converts one Notion page into a flat record. Date
// properties resolve their handling policy by name from overrides,
// falling back to def. Property iteration is in sorted-name order: the
// SDK decodes the property map into a Go map, so the page's declaration
// order is not recoverable.
func FlattenPage(page notionapi.Page, def DateHandling, overrides map[string]DateHandling) (*tabular.Record, error) {
	rec := tabular.NewRecord()
	rec.Set(tabular.Key(KeyNotionID), string(page.ID))
	rec.Set(tabular.Key(KeyCreatedTime), page.CreatedTime)
	rec.Set(tabular.Key(KeyLastEditedTime), page.LastEditedTime)
	rec.Set(tabular.Key(KeyNotionURL), page.URL)

	names := make([]string, 0, len(page.Properties))
	for name := range page.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		prop := page.Properties[name]

		value, err := NormalizeProperty(prop)
		if err != nil {
			return nil, eris.Wrapf(err, "flatten: property %q", name)
		}

		if _, isDate := prop.(*notionapi.DateProperty); !isDate {
			rec.Set(tabular.Key(name), value)
			continue
		}

		// A date with a null payload still expands to its policy keys,
		// with nil start and end.
		span, _ := value.(*tabular.DateSpan)
		if span == nil {
			span = &tabular.DateSpan{}
		}

		handling := def
		if h, ok := overrides[name]; ok {
			handling = h
		}

		switch handling {
		case IgnoreEnd:
			rec.Set(tabular.Key(name), timestamp(span.Start))
		case Mangle:
			rec.Set(tabular.Key(name+"_start"), timestamp(span.Start))
			rec.Set(tabular.Key(name+"_end"), timestamp(span.End))
		case MultiIndex:
			rec.Set(tabular.SubKey(name, "start"), timestamp(span.Start))
			rec.Set(tabular.SubKey(name, "end"), timestamp(span.End))
		default:
			return nil, &InvalidDateHandlingError{Value: string(handling)}
		}
	}

	return rec, nil
}

// timestamp unwraps an optional time into a cell value.
func timestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
