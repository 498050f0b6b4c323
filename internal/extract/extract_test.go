package extract

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/notion-export/internal/flatten"
	"github.com/sells-group/notion-export/internal/tabular"
)

// mockClient implements notion.Client for testing.
type mockClient struct {
	mock.Mock
}

func (m *mockClient) QueryDatabase(ctx context.Context, dbID string, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error) {
	args := m.Called(ctx, dbID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.DatabaseQueryResponse), args.Error(1)
}

func (m *mockClient) ListUsers(ctx context.Context, pagination *notionapi.Pagination) (*notionapi.UsersListResponse, error) {
	args := m.Called(ctx, pagination)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notionapi.UsersListResponse), args.Error(1)
}

func notionDate(t time.Time) *notionapi.Date {
	d := notionapi.Date(t)
	return &d
}

var (
	start = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	end   = time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)
)

// TestDatabase_InvalidPolicyFailsFast verifies a bad policy string is
// rejected before any API call is made.
func TestDatabase_InvalidPolicyFailsFast(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	_, err := Database(ctx, mc, "db-1", DatabaseOptions{DefaultDateHandling: "keep_both"})
	require.Error(t, err)

	var invalid *flatten.InvalidDateHandlingError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, "keep_both", invalid.Value)

	mc.AssertNotCalled(t, "QueryDatabase", mock.Anything, mock.Anything, mock.Anything)
}

func TestDatabase_InvalidOverrideFailsFast(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	_, err := Database(ctx, mc, "db-1", DatabaseOptions{
		DateHandling: map[string]string{"Due": "bogus"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"Due"`)
	mc.AssertNotCalled(t, "QueryDatabase", mock.Anything, mock.Anything, mock.Anything)
}

// TestDatabase_PromotionAcrossRecords runs the full flow: two pages on
// two API pages, one with a multiindex date the other without it. The
// resulting table must have uniformly promoted headers and a Missing
// marker for the absent property.
func TestDatabase_PromotionAcrossRecords(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	withDate := notionapi.Page{
		ID:  "p1",
		URL: "https://notion.so/p1",
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{{PlainText: "Acme"}},
			},
			"When": &notionapi.DateProperty{
				Type: notionapi.PropertyTypeDate,
				Date: &notionapi.DateObject{Start: notionDate(start), End: notionDate(end)},
			},
		},
	}
	plain := notionapi.Page{
		ID:  "p2",
		URL: "https://notion.so/p2",
		Properties: notionapi.Properties{
			"Name": &notionapi.TitleProperty{
				Type:  notionapi.PropertyTypeTitle,
				Title: []notionapi.RichText{{PlainText: "Beta"}},
			},
		},
	}

	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results:    []notionapi.Page{withDate},
		HasMore:    true,
		NextCursor: notionapi.Cursor("c1"),
	}, nil).Once()

	mc.On("QueryDatabase", ctx, "db-1", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == notionapi.Cursor("c1")
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{plain},
		HasMore: false,
	}, nil).Once()

	table, err := Database(ctx, mc, "db-1", DatabaseOptions{
		DefaultDateHandling: "multiindex",
	})
	require.NoError(t, err)
	mc.AssertExpectations(t)

	require.Len(t, table.Rows, 2)
	assert.True(t, table.Hierarchical)

	// All headers are promoted; plain columns carry an empty sub-label.
	names, subs := table.Headers()
	assert.Contains(t, names, "When")
	for i, name := range names {
		if name != "When" {
			assert.Empty(t, subs[i], "column %s should have empty sub-label", name)
		}
	}

	// Find the (When, start) column and check both rows.
	startIdx := -1
	for i, c := range table.Columns {
		if c == tabular.SubKey("When", "start") {
			startIdx = i
		}
	}
	require.GreaterOrEqual(t, startIdx, 0)
	assert.Equal(t, start, table.Rows[0][startIdx])
	assert.Equal(t, tabular.Missing, table.Rows[1][startIdx])
}

func TestDatabase_UpstreamErrorPropagates(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	mc.On("QueryDatabase", ctx, "db-err", mock.Anything).Return(nil, assert.AnError).Once()

	table, err := Database(ctx, mc, "db-err", DatabaseOptions{})
	assert.Nil(t, table)
	require.Error(t, err)
	assert.True(t, errors.Is(err, assert.AnError))
	mc.AssertExpectations(t)
}

func TestDatabase_RowCountAcrossPages(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	page := func(id string) notionapi.Page {
		return notionapi.Page{ID: notionapi.ObjectID(id), Properties: notionapi.Properties{}}
	}

	mc.On("QueryDatabase", ctx, "db-3p", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == ""
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{page("a"), page("b")}, HasMore: true, NextCursor: "c1",
	}, nil).Once()
	mc.On("QueryDatabase", ctx, "db-3p", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == "c1"
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{page("c")}, HasMore: true, NextCursor: "c2",
	}, nil).Once()
	mc.On("QueryDatabase", ctx, "db-3p", mock.MatchedBy(func(req *notionapi.DatabaseQueryRequest) bool {
		return req.StartCursor == "c2"
	})).Return(&notionapi.DatabaseQueryResponse{
		Results: []notionapi.Page{page("d")}, HasMore: false,
	}, nil).Once()

	table, err := Database(ctx, mc, "db-3p", DatabaseOptions{})
	require.NoError(t, err)
	assert.Len(t, table.Rows, 4) // 2 + 1 + 1 across the three pages
	mc.AssertExpectations(t)
}

func TestUsers_EmailOnlyForPersons(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	mc.On("ListUsers", ctx, mock.Anything).Return(&notionapi.UsersListResponse{
		Results: []notionapi.User{
			{ID: "u1", Type: "person", Name: "Alice", Person: &notionapi.Person{Email: "alice@acme.com"}},
			{ID: "u2", Type: "bot", Name: "Exporter"},
		},
		HasMore: false,
	}, nil).Once()

	table, err := Users(ctx, mc)
	require.NoError(t, err)
	mc.AssertExpectations(t)

	require.Len(t, table.Rows, 2)
	assert.False(t, table.Hierarchical)

	emailIdx := -1
	for i, c := range table.Columns {
		if c.Name == "email" {
			emailIdx = i
		}
	}
	require.GreaterOrEqual(t, emailIdx, 0)
	assert.Equal(t, "alice@acme.com", table.Rows[0][emailIdx])
	assert.Equal(t, tabular.Missing, table.Rows[1][emailIdx])
}

func TestUsers_UpstreamErrorPropagates(t *testing.T) {
	mc := new(mockClient)
	ctx := context.Background()

	mc.On("ListUsers", ctx, mock.Anything).Return(nil, assert.AnError).Once()

	table, err := Users(ctx, mc)
	assert.Nil(t, table)
	assert.True(t, errors.Is(err, assert.AnError))
	mc.AssertExpectations(t)
}
