package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

func (ts *ToolSet) queryDocumentsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("queryDocuments",
		mcp.WithDescription("Query documents in a Firestore collection with filters, ordering, and a limit"),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Description("Collection name"),
		),
		mcp.WithArray("filters",
			mcp.Description(`Filter clauses {field, operator, value}; operators: ==, !=, <, <=, >, >=, array-contains, array-contains-any, in, not-in`),
		),
		mcp.WithArray("orderBy",
			mcp.Description(`Order directives {field, direction}; direction "asc" (default) or "desc"`),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of documents to return"),
		),
		mcp.WithString("project",
			mcp.Description("Project ID (defaults to the first configured project)"),
		),
	)

	return tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		collection, errRes := stringArg(args, "collection")
		if errRes != nil {
			return errRes, nil
		}
		filters, errRes := parseFilters(args)
		if errRes != nil {
			return errRes, nil
		}
		orders, errRes := parseOrders(args)
		if errRes != nil {
			return errRes, nil
		}
		limit, errRes := limitArg(args, "limit")
		if errRes != nil {
			return errRes, nil
		}
		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		docs, err := st.Query(ctx, document.Query{
			Collection: collection,
			Filters:    filters,
			Orders:     orders,
			Limit:      limit,
		})
		if err != nil {
			return errorResult(err.Error()), nil
		}

		results := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			doc.Data = document.NormalizeMap(doc.Data)
			results = append(results, doc.WithID())
		}
		return textJSON(map[string]any{"count": len(results), "documents": results}), nil
	}
}

func (ts *ToolSet) listCollectionsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("listCollections",
		mcp.WithDescription("List root collections in a Firestore project"),
		mcp.WithString("project",
			mcp.Description("Project ID (defaults to the first configured project)"),
		),
	)

	return tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		names, err := st.Collections(ctx)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if names == nil {
			names = []string{}
		}
		return textJSON(map[string]any{"collections": names}), nil
	}
}
