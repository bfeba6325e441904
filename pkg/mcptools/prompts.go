package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/halcyonlabs/mcp-firestore/pkg/document"
	"github.com/halcyonlabs/mcp-firestore/pkg/registry"
)

// promptRecord is the shape a prompt document is reshaped into for the MCP
// prompt surface.
type promptRecord struct {
	ID          string
	Name        string
	Description string
	Text        string
	Metadata    map[string]any
}

// RegisterPrompts loads the default project's prompts collection and
// registers each document as an MCP prompt. Any failure degrades to an
// empty prompt list with a warning; it never fails outward.
func RegisterPrompts(s *server.MCPServer, reg *registry.Registry) {
	st, err := reg.Resolve("")
	if err != nil {
		log.WithError(err).Warn("Prompt registration skipped")
		return
	}

	docs, err := st.Query(context.Background(), document.Query{
		Collection: defaultPromptsCollection,
		Limit:      100,
	})
	if err != nil {
		log.WithError(err).Warn("Prompt registration skipped")
		return
	}

	for _, rec := range promptRecords(docs) {
		text := rec.Text
		description := rec.Description
		prompt := mcp.NewPrompt(rec.Name, mcp.WithPromptDescription(description))
		s.AddPrompt(prompt, func(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
			return mcp.NewGetPromptResult(description, []mcp.PromptMessage{
				mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(text)),
			}), nil
		})
	}
	log.WithField("count", len(docs)).Info("Prompts registered")
}

func promptRecords(docs []document.Document) []promptRecord {
	records := make([]promptRecord, 0, len(docs))
	for _, doc := range docs {
		rec := promptRecord{
			ID:   doc.ID,
			Name: stringField(doc.Data, "name", doc.ID),
			Text: stringField(doc.Data, "text", ""),
		}
		rec.Description = stringField(doc.Data, "description", "")
		if meta, ok := doc.Data["metadata"].(map[string]any); ok {
			rec.Metadata = meta
		}
		records = append(records, rec)
	}
	return records
}

func stringField(data map[string]any, key, fallback string) string {
	if s, ok := data[key].(string); ok && s != "" {
		return s
	}
	return fallback
}
