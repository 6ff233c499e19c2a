package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	mcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/mcp/stream", "MCP streamable HTTP endpoint")
	spreadsheetID := flag.String("spreadsheet", "", "if set, also exports the search to this Google Sheet")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "jobmatch-test-client",
		Version: "0.1.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.StreamableClientTransport{
		Endpoint: *endpoint,
	}, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer func() { _ = session.Close() }()

	log.Printf("Connected to server (session ID: %s)\n", session.ID())

	testListTools(ctx, session)
	testSearchJobs(ctx, session)
	testInvalidProfile(ctx, session)
	if *spreadsheetID != "" {
		testSheetsExport(ctx, session, *spreadsheetID)
	}

	fmt.Println("\nAll tests completed")
}

func driverProfile() map[string]any {
	return map[string]any{
		"role":                 "Delivery Driver",
		"skills":               []string{"scooter", "car", "GPS navigation"},
		"location":             "Mumbai",
		"experience_years":     2,
		"work_type_preference": "full-time",
		"languages":            []string{"Hindi", "Marathi"},
	}
}

func testListTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: list tools")

	res, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Printf("list tools failed: %v", err)
		return
	}
	for _, tool := range res.Tools {
		fmt.Printf("  %s: %s\n", tool.Name, tool.Description)
	}
}

func testSearchJobs(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: search_jobs")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_jobs",
		Arguments: map[string]any{"profile": driverProfile()},
	})
	if err != nil {
		log.Printf("search_jobs failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("search_jobs passed")
}

func testInvalidProfile(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("\nTEST: search_jobs with an empty profile")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "search_jobs",
		Arguments: map[string]any{"profile": map[string]any{"location": "Pune"}},
	})
	if err != nil {
		log.Printf("search_jobs (invalid) failed: %v", err)
		return
	}
	if !result.IsError {
		log.Printf("✗ expected a tool error for a profile without role and skills")
		return
	}
	printResult(result)
	fmt.Println("search_jobs (invalid) passed")
}

func testSheetsExport(ctx context.Context, session *mcp.ClientSession, spreadsheetID string) {
	fmt.Println("\nTEST: sheets_export")

	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name: "sheets_export",
		Arguments: map[string]any{
			"sheet":     map[string]any{"spreadsheet_id": spreadsheetID, "tab": "jobmatch"},
			"profile":   driverProfile(),
			"clear_tab": true,
			"header":    true,
			"upsert":    true,
		},
	})
	if err != nil {
		log.Printf("sheets_export failed: %v", err)
		return
	}

	printResult(result)
	fmt.Println("sheets_export passed")
}

func printResult(res *mcp.CallToolResult) {
	for _, c := range res.Content {
		if txt, ok := c.(*mcp.TextContent); ok {
			fmt.Println(txt.Text)
		}
	}
}
