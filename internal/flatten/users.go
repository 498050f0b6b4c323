package flatten

import (
	"github.com/jomei/notionapi"

	"github.com/sells-group/notion-export/internal/tabular"
)

// FlattenUser converts one workspace user into a flat record. The email
// key is emitted only for person users; bots and integrations have none.
func FlattenUser(u notionapi.User) *tabular.Record {
	rec := tabular.NewRecord()
	rec.Set(tabular.Key("notion_id"), string(u.ID))
	rec.Set(tabular.Key("type"), string(u.Type))
	rec.Set(tabular.Key("name"), nullableString(u.Name))
	rec.Set(tabular.Key("avatar_url"), nullableString(u.AvatarURL))
	if u.Type == "person" && u.Person != nil {
		rec.Set(tabular.Key("email"), nullableString(u.Person.Email))
	}
	return rec
}
