package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"yashubustudio/answerfinder/finder"
)

// handleGetAnswer handles the get_answer tool invocation
func (s *Server) handleGetAnswer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, errResult := requireText(request)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(formatJSON(s.service.GetAnswer(text))), nil
}

// handleFindBestMatch handles the find_best_match tool invocation
func (s *Server) handleFindBestMatch(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, errResult := requireText(request)
	if errResult != nil {
		return errResult, nil
	}
	variant, found := s.service.FindBestMatch(text)
	response := map[string]interface{}{
		"found":   found,
		"variant": variant,
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleCorpusStatus handles the corpus_status tool invocation
func (s *Server) handleCorpusStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	corpus := s.service.Corpus()
	// Loaded first: a resolve in between must not report an empty loaded corpus.
	loaded := corpus.Loaded()
	idx := corpus.Index()
	response := map[string]interface{}{
		"loaded":  loaded,
		"entries": idx.Size(),
		"digest":  fmt.Sprintf("%016x", idx.Digest()),
	}
	return mcp.NewToolResultText(formatJSON(response)), nil
}

// requireText returns the flattened text argument. Any string is accepted,
// including blank ones, which simply match nothing.
func requireText(request mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return "", mcp.NewToolResultError("invalid arguments")
	}
	text, ok := args["text"].(string)
	if !ok {
		return "", mcp.NewToolResultError("text parameter is required and must be a string")
	}
	return finder.CleanText(text), nil
}

func formatJSON(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"error": %q}`, err.Error())
	}
	return string(data)
}
