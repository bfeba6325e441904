// Package mcptools defines the MCP tools exposed over the document store:
// CRUD and query operations routed per-call to a configured project.
//
// Tools live in a lookup table mapping name to (schema, handler), so adding
// a tool is a data addition. Registration and test dispatch both consult
// the same table.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/halcyonlabs/mcp-firestore/pkg/logger"
	"github.com/halcyonlabs/mcp-firestore/pkg/registry"
	"github.com/halcyonlabs/mcp-firestore/pkg/store"
)

var log *logrus.Entry

func init() {
	log = logger.WithName("tools")
}

type toolDef struct {
	tool    mcp.Tool
	handler server.ToolHandlerFunc
}

// ToolSet is the dispatch table for all document tools, bound to one
// connection registry.
type ToolSet struct {
	reg   *registry.Registry
	tools map[string]toolDef
	order []string
}

// New builds the tool set over a registry.
func New(reg *registry.Registry) *ToolSet {
	ts := &ToolSet{reg: reg, tools: make(map[string]toolDef)}

	ts.add(ts.getDocumentTool())
	ts.add(ts.createDocumentTool())
	ts.add(ts.updateDocumentTool())
	ts.add(ts.deleteDocumentTool())
	ts.add(ts.queryDocumentsTool())
	ts.add(ts.listCollectionsTool())
	ts.add(ts.listProjectsTool())
	ts.add(ts.listPromptsTool())

	return ts
}

func (ts *ToolSet) add(tool mcp.Tool, handler server.ToolHandlerFunc) {
	ts.tools[tool.Name] = toolDef{tool: tool, handler: handler}
	ts.order = append(ts.order, tool.Name)
}

// Register adds every tool to an MCP server.
func (ts *ToolSet) Register(s *server.MCPServer) {
	for _, name := range ts.order {
		def := ts.tools[name]
		s.AddTool(def.tool, def.handler)
	}
	log.WithField("count", len(ts.order)).Info("Tools registered")
}

// Names returns the tool names in registration order.
func (ts *ToolSet) Names() []string {
	out := make([]string, len(ts.order))
	copy(out, ts.order)
	return out
}

// Dispatch invokes a tool by name. Unknown names yield a structured error
// payload, never a failure. The MCP transport performs the equivalent
// lookup in production; Dispatch keeps the behavior testable without one.
func (ts *ToolSet) Dispatch(ctx context.Context, name string, args map[string]any) (*mcp.CallToolResult, error) {
	def, ok := ts.tools[name]
	if !ok {
		return errorResult(fmt.Sprintf("Unknown tool: %s", name)), nil
	}
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return def.handler(ctx, req)
}

// resolveStore picks the project handle for a call from its optional
// "project" argument. An unknown project is a structured error payload.
func (ts *ToolSet) resolveStore(args map[string]any) (store.Store, *mcp.CallToolResult) {
	projectID := ""
	if v, ok := args["project"]; ok && v != nil {
		s, ok := v.(string)
		if !ok {
			return nil, fieldError("project", "project must be a string")
		}
		projectID = s
	}
	s, err := ts.reg.Resolve(projectID)
	if err != nil {
		return nil, errorResult(err.Error())
	}
	return s, nil
}

// textJSON wraps any value as a single pretty-printed JSON text payload,
// the envelope every tool response uses.
func textJSON(v any) *mcp.CallToolResult {
	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize response: %v", err))
	}
	return mcp.NewToolResultText(string(raw))
}

func errorResult(msg string) *mcp.CallToolResult {
	return textJSON(map[string]any{"error": msg})
}

// fieldError is a validation failure naming the offending field path.
func fieldError(field, msg string) *mcp.CallToolResult {
	return textJSON(map[string]any{"error": msg, "field": field})
}
