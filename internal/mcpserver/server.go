// Package mcpserver exposes XML export to MCP clients.
package mcpserver

import (
	"context"
	"fmt"
	"net/http"

	"github.com/learncss/Annotum/internal/app"
	"github.com/learncss/Annotum/internal/dto"
	pkgapp "github.com/learncss/Annotum/pkg/app"
	"github.com/learncss/Annotum/pkg/code"

	"github.com/bytedance/sonic"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// DefaultEndpoint is where the streamable HTTP transport listens.
const DefaultEndpoint = "/mcp"

// ExportArgs selects a published article by id or slug.
type ExportArgs struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
}

// DownloadURLArgs mirrors the download link options.
type DownloadURLArgs struct {
	ID       int64 `json:"id"`
	Preview  bool  `json:"preview"`
	Autosave bool  `json:"autosave"`
}

// ListArgs filters published articles.
type ListArgs struct {
	Keyword  string `json:"keyword"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
}

// NewServer registers the export tools. MCP sessions are anonymous, so only
// published articles can be exported.
func NewServer(a *app.App) *server.MCPServer {
	s := server.NewMCPServer(
		app.Name,
		a.Version().Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.AddTool(mcp.NewTool("export_article_xml",
		mcp.WithDescription("Render a published article as a JATS 3.0 XML document"),
		mcp.WithNumber("id", mcp.Description("Article id; ignored when slug is set")),
		mcp.WithString("slug", mcp.Description("Article slug")),
	), mcp.NewTypedToolHandler(exportHandler(a)))

	s.AddTool(mcp.NewTool("article_download_url",
		mcp.WithDescription("Build the XML download link of an article"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Article id")),
		mcp.WithBoolean("preview", mcp.Description("Link to the preview rendering")),
		mcp.WithBoolean("autosave", mcp.Description("Preview the latest autosave; only with preview")),
	), mcp.NewTypedToolHandler(downloadURLHandler(a)))

	s.AddTool(mcp.NewTool("list_published_articles",
		mcp.WithDescription("List published articles, newest first"),
		mcp.WithString("keyword", mcp.Description("Match in title or excerpt")),
		mcp.WithNumber("page", mcp.Description("Page number, from 1")),
		mcp.WithNumber("pageSize", mcp.Description("Page size, at most 100")),
	), mcp.NewTypedToolHandler(listHandler(a)))

	return s
}

// NewHTTPHandler serves s over the streamable HTTP transport at endpoint.
func NewHTTPHandler(s *server.MCPServer, endpoint string) *server.StreamableHTTPServer {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return server.NewStreamableHTTPServer(s, server.WithEndpointPath(endpoint))
}

// toolError turns service errors into tool results. Codes carry a message
// meant for users; anything else is logged and reported generically.
func toolError(a *app.App, tool string, err error) *mcp.CallToolResult {
	if c, ok := err.(*code.Code); ok {
		return mcp.NewToolResultError(c.Msg())
	}
	a.Logger().Error("mcp tool failed", zap.String("tool", tool), zap.Error(err))
	return mcp.NewToolResultError(fmt.Sprintf("%s failed", tool))
}

func jsonResult(v interface{}) (*mcp.CallToolResult, error) {
	b, err := sonic.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(b)), nil
}

func exportHandler(a *app.App) func(context.Context, mcp.CallToolRequest, ExportArgs) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args ExportArgs) (*mcp.CallToolResult, error) {
		if args.ID <= 0 && args.Slug == "" {
			return mcp.NewToolResultError("id or slug is required"), nil
		}
		res, err := a.ExportService.Export(ctx, &dto.ExportRequest{ID: args.ID, Slug: args.Slug}, 0)
		if err != nil {
			return toolError(a, "export_article_xml", err), nil
		}
		return mcp.NewToolResultText(string(res.Body)), nil
	}
}

func downloadURLHandler(a *app.App) func(context.Context, mcp.CallToolRequest, DownloadURLArgs) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args DownloadURLArgs) (*mcp.CallToolResult, error) {
		if args.ID <= 0 {
			return mcp.NewToolResultError("id is required"), nil
		}
		link, err := a.ExportService.DownloadURL(ctx, args.ID, args.Preview, args.Autosave)
		if err != nil {
			return toolError(a, "article_download_url", err), nil
		}
		return jsonResult(dto.DownloadURLDTO{URL: link})
	}
}

func listHandler(a *app.App) func(context.Context, mcp.CallToolRequest, ListArgs) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, _ mcp.CallToolRequest, args ListArgs) (*mcp.CallToolResult, error) {
		pager := &pkgapp.Pager{Page: args.Page, PageSize: args.PageSize}
		if pager.Page <= 0 {
			pager.Page = 1
		}
		if pager.PageSize <= 0 || pager.PageSize > pkgapp.DefaultPaginationConfig.MaxPageSize {
			pager.PageSize = pkgapp.DefaultPaginationConfig.DefaultPageSize
		}
		list, total, err := a.ArticleService.List(ctx, 0, &dto.ArticleListRequest{Keyword: args.Keyword}, pager)
		if err != nil {
			return toolError(a, "list_published_articles", err), nil
		}
		pager.TotalRows = int(total)
		return jsonResult(pkgapp.ListRes{List: list, Pager: *pager})
	}
}

// Handler is the http.Handler form used when the tools are mounted next to
// the private router.
func Handler(a *app.App, endpoint string) http.Handler {
	return NewHTTPHandler(NewServer(a), endpoint)
}
