// Package server wires the MCP tool set to its transports: stdio for
// editor/agent integration and streamable HTTP behind a gin router.
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sirupsen/logrus"

	"github.com/halcyonlabs/mcp-firestore/pkg/config"
	"github.com/halcyonlabs/mcp-firestore/pkg/logger"
	"github.com/halcyonlabs/mcp-firestore/pkg/mcptools"
	"github.com/halcyonlabs/mcp-firestore/pkg/registry"
)

var log *logrus.Entry

func init() {
	log = logger.WithName("server")
}

const (
	serverName    = "mcp-firestore"
	serverVersion = "0.1.0"
)

// newMCPServer assembles the MCP server: tools from the dispatch table,
// prompts from the default project's prompts collection, and an always-empty
// resource listing (the capability is advertised, nothing is registered).
func newMCPServer(reg *registry.Registry) *server.MCPServer {
	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
	)

	mcptools.New(reg).Register(s)
	mcptools.RegisterPrompts(s, reg)

	return s
}

// ServeStdio runs the MCP server over stdin/stdout until the transport
// closes.
func ServeStdio(reg *registry.Registry) error {
	log.Info("Starting MCP server on stdio")
	return server.ServeStdio(newMCPServer(reg))
}

// Start runs the MCP server over streamable HTTP at /mcp.
func Start(cfg *config.Config, reg *registry.Registry) error {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	mcpHTTP := server.NewStreamableHTTPServer(
		newMCPServer(reg),
		server.WithStateLess(true),
	)
	router.Any("/mcp", gin.WrapH(mcpHTTP))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":         "ok",
			"projects":       reg.Projects(),
			"defaultProject": reg.DefaultProject(),
		})
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.WithFields(logrus.Fields{
		"addr":         addr,
		"mcp_endpoint": "/mcp",
	}).Info("MCP HTTP server starting")

	return router.Run(addr)
}

// requestLogger logs one line per request with the original client IP when
// a proxy forwards the traffic.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		clientIP := c.Request.RemoteAddr
		if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
			clientIP = realIP
		} else if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
			clientIP = forwarded
			for i := 0; i < len(forwarded); i++ {
				if forwarded[i] == ',' {
					clientIP = forwarded[:i]
					break
				}
			}
		}

		c.Next()

		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Milliseconds(),
			"clientIP": clientIP,
		}).Info("Request completed")
	}
}
