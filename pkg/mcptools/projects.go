package mcptools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
)

func (ts *ToolSet) listProjectsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("listProjects",
		mcp.WithDescription("List the Firestore projects this server is connected to"),
	)

	return tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return textJSON(map[string]any{
			"projects":           ts.reg.Projects(),
			"defaultProject":     ts.reg.DefaultProject(),
			"configuredProjects": ts.reg.ConfiguredProjects(),
		}), nil
	}
}

const defaultPromptsCollection = "prompts"

func (ts *ToolSet) listPromptsTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("listPrompts",
		mcp.WithDescription("List prompt documents stored in Firestore"),
		mcp.WithString("collection",
			mcp.DefaultString(defaultPromptsCollection),
			mcp.Description(`Collection holding prompt documents (default "prompts")`),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(20),
			mcp.Description("Maximum number of prompts to return (default 20)"),
		),
		mcp.WithString("project",
			mcp.Description("Project ID (defaults to the first configured project)"),
		),
	)

	return tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()

		collection, errRes := optionalStringArg(args, "collection", defaultPromptsCollection)
		if errRes != nil {
			return errRes, nil
		}
		limit, errRes := limitArg(args, "limit")
		if errRes != nil {
			return errRes, nil
		}
		if limit == 0 {
			limit = 20
		}
		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		docs, err := st.Query(ctx, document.Query{Collection: collection, Limit: limit})
		if err != nil {
			return errorResult(err.Error()), nil
		}

		if len(docs) == 0 {
			return textJSON(map[string]any{
				"message": fmt.Sprintf("No prompt documents found in collection %q", collection),
				"prompts": []any{},
			}), nil
		}

		prompts := make([]map[string]any, 0, len(docs))
		for _, doc := range docs {
			doc.Data = document.NormalizeMap(doc.Data)
			prompts = append(prompts, doc.WithID())
		}
		return textJSON(map[string]any{
			"message": fmt.Sprintf("Found %d prompt documents in collection %q", len(prompts), collection),
			"prompts": prompts,
		}), nil
	}
}
