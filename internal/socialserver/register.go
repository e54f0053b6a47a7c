package socialserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// RegisterTools registers all social media tools on the given MCP server:
// instagram_transcript.
func RegisterTools(server *mcp.Server) {
	registerInstagramTranscript(server)
}
