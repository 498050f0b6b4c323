package notion

import (
	"context"

	"github.com/jomei/notionapi"
	"github.com/rotisserie/eris"
)

// PageFunc fetches one batch of items starting at cursor. It returns the
// items, the cursor for the next batch, and whether more batches exist.
type PageFunc[T any] func(ctx context.Context, cursor notionapi.Cursor) (items []T, next notionapi.Cursor, more bool, err error)

// CollectAll drives cursor-based pagination until the source is exhausted
// and returns all items in arrival order. Fetches are strictly sequential;
// request spacing is the Client's job (its rate limiter). Any fetch error
// is returned as-is and everything accumulated so far is discarded.
func CollectAll[T any](ctx context.Context, fetch PageFunc[T]) ([]T, error) {
	var all []T
	var cursor notionapi.Cursor
	for {
		items, next, more, err := fetch(ctx, cursor)
		if err != nil {
			return nil, eris.Wrap(err, "notion: fetch page")
		}
		all = append(all, items...)
		if !more {
			return all, nil
		}
		cursor = next
	}
}

// QueryAll fetches every page of a Notion database, handling pagination.
func QueryAll(ctx context.Context, c Client, dbID string, pageSize int) ([]notionapi.Page, error) {
	pages, err := CollectAll(ctx, func(ctx context.Context, cursor notionapi.Cursor) ([]notionapi.Page, notionapi.Cursor, bool, error) {
		req := &notionapi.DatabaseQueryRequest{
			StartCursor: cursor,
			PageSize:    pageSize,
		}
		resp, err := c.QueryDatabase(ctx, dbID, req)
		if err != nil {
			return nil, "", false, err
		}
		return resp.Results, resp.NextCursor, resp.HasMore, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "notion: query all")
	}
	return pages, nil
}

// ListAllUsers fetches every user in the workspace, handling pagination.
func ListAllUsers(ctx context.Context, c Client) ([]notionapi.User, error) {
	users, err := CollectAll(ctx, func(ctx context.Context, cursor notionapi.Cursor) ([]notionapi.User, notionapi.Cursor, bool, error) {
		resp, err := c.ListUsers(ctx, &notionapi.Pagination{StartCursor: cursor})
		if err != nil {
			return nil, "", false, err
		}
		return resp.Results, resp.NextCursor, resp.HasMore, nil
	})
	if err != nil {
		return nil, eris.Wrap(err, "notion: list all users")
	}
	return users, nil
}
