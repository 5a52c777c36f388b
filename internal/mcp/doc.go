// Package mcp implements a Model Context Protocol (MCP) server for the
// board. It exposes the message operations (list, fetch, create, update,
// move, delete, plus the category table) as MCP tools that AI agents can
// call against the same service the HTTP API uses.
//
// Message ids are positional, so the tool descriptions warn agents to
// re-list after mutations instead of reusing old ids.
//
// Transport: the server supports two transports selectable at runtime:
//   - stdio – standard MCP stdio transport (default); suitable for local
//     agent integration.
//   - http  – Streamable HTTP transport; suitable for remote agents or when
//     multiple concurrent clients are needed.
package mcp
