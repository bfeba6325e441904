package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
	"github.com/halcyonlabs/mcp-firestore/pkg/store"
)

const notFoundMessage = "Document not found"

func (ts *ToolSet) getDocumentTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("getDocument",
		mcp.WithDescription("Get a document from a Firestore collection by ID"),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Description("Collection name"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID"),
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
		id, errRes := stringArg(args, "id")
		if errRes != nil {
			return errRes, nil
		}
		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		doc, err := st.Get(ctx, collection, id)
		if err == store.ErrNotFound {
			return errorResult(notFoundMessage), nil
		}
		if err != nil {
			return errorResult(err.Error()), nil
		}

		doc.Data = document.NormalizeMap(doc.Data)
		return textJSON(doc.WithID()), nil
	}
}

func (ts *ToolSet) createDocumentTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("createDocument",
		mcp.WithDescription("Create a document in a Firestore collection"),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Description("Collection name"),
		),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("Document fields"),
		),
		mcp.WithString("id",
			mcp.Description("Explicit document ID; any existing document at this ID is overwritten"),
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
		data, errRes := mapArg(args, "data")
		if errRes != nil {
			return errRes, nil
		}
		id, errRes := optionalStringArg(args, "id", "")
		if errRes != nil {
			return errRes, nil
		}
		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		data = document.NormalizeMap(data)

		var doc document.Document
		if id != "" {
			if err := st.Set(ctx, collection, id, data, false); err != nil {
				return errorResult(err.Error()), nil
			}
			doc = document.Document{ID: id, Data: data}
		} else {
			var err error
			doc, err = st.Create(ctx, collection, data)
			if err != nil {
				return errorResult(err.Error()), nil
			}
		}

		log.WithFields(logrus.Fields{"collection": collection, "id": doc.ID}).Debug("Document created")
		return textJSON(doc.WithID()), nil
	}
}

func (ts *ToolSet) updateDocumentTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("updateDocument",
		mcp.WithDescription("Update an existing document in a Firestore collection"),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Description("Collection name"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID"),
		),
		mcp.WithObject("data",
			mcp.Required(),
			mcp.Description("Fields to write"),
		),
		mcp.WithBoolean("merge",
			mcp.DefaultBool(true),
			mcp.Description("Merge fields into the existing document (false replaces it wholesale)"),
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
		id, errRes := stringArg(args, "id")
		if errRes != nil {
			return errRes, nil
		}
		data, errRes := mapArg(args, "data")
		if errRes != nil {
			return errRes, nil
		}
		merge, errRes := boolArg(args, "merge", true)
		if errRes != nil {
			return errRes, nil
		}
		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		if _, err := st.Get(ctx, collection, id); err != nil {
			if err == store.ErrNotFound {
				return errorResult(notFoundMessage), nil
			}
			return errorResult(err.Error()), nil
		}

		if err := st.Set(ctx, collection, id, document.NormalizeMap(data), merge); err != nil {
			return errorResult(err.Error()), nil
		}

		// Re-fetch so the response reflects the stored document, not the
		// local merge result.
		updated, err := st.Get(ctx, collection, id)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		updated.Data = document.NormalizeMap(updated.Data)
		return textJSON(updated.WithID()), nil
	}
}

func (ts *ToolSet) deleteDocumentTool() (mcp.Tool, server.ToolHandlerFunc) {
	tool := mcp.NewTool("deleteDocument",
		mcp.WithDescription("Delete a document from a Firestore collection"),
		mcp.WithString("collection",
			mcp.Required(),
			mcp.Description("Collection name"),
		),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Document ID"),
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
		id, errRes := stringArg(args, "id")
		if errRes != nil {
			return errRes, nil
		}
		st, errRes := ts.resolveStore(args)
		if errRes != nil {
			return errRes, nil
		}

		if _, err := st.Get(ctx, collection, id); err != nil {
			if err == store.ErrNotFound {
				return errorResult(notFoundMessage), nil
			}
			return errorResult(err.Error()), nil
		}

		if err := st.Delete(ctx, collection, id); err != nil {
			return errorResult(err.Error()), nil
		}

		log.WithFields(logrus.Fields{"collection": collection, "id": id}).Debug("Document deleted")
		return textJSON(map[string]any{"success": true, "id": id}), nil
	}
}
