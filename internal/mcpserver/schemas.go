package mcpserver

import "github.com/mark3labs/mcp-go/mcp"

func textInputSchema(description string) mcp.ToolInputSchema {
	return mcp.ToolInputSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"text": map[string]interface{}{
				"type":        "string",
				"description": description,
			},
		},
		Required: []string{"text"},
	}
}

// getAnswerTool returns the tool definition for get_answer
func getAnswerTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolGetAnswer,
		Description: "Return every answer variant whose question resembles the text, best first",
		InputSchema: textInputSchema("Free-form question text, e.g. copied from a page"),
	}
}

// findBestMatchTool returns the tool definition for find_best_match
func findBestMatchTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolFindBestMatch,
		Description: "Return the single best answer variant for the text, if any",
		InputSchema: textInputSchema("Free-form question text"),
	}
}

// corpusStatusTool returns the tool definition for corpus_status
func corpusStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        ToolCorpusStatus,
		Description: "Report whether the question corpus has loaded and how large it is",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}
}
