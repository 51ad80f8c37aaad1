package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"bookmap/internal/activity"
	"bookmap/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type discoveryResponse struct {
	Count    int           `json:"count"`
	Items    []models.Book `json:"items"`
	Featured *struct {
		Heading string `json:"heading"`
		By      string `json:"by"`
	} `json:"featured"`
	Stale bool `json:"stale"`
}

type recentResponse struct {
	Items []activity.RecentBook `json:"items"`
}

func main() {
	global := flag.NewFlagSet("bookmap", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	client := &http.Client{Timeout: 15 * time.Second}

	switch args[0] {
	case "search":
		handleSearch(ctx, client, *baseURL, args[1:])
	case "latest":
		handleLatest(ctx, client, *baseURL, args[1:])
	case "mood":
		handleMood(ctx, client, *baseURL, args[1:])
	case "recent":
		handleRecent(ctx, client, *baseURL)
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleSearch(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	q := fs.String("q", "", "search query")
	max := fs.Int("max", 20, "result cap")
	_ = fs.Parse(args)

	u := baseURL + "/api/v1/search?q=" + url.QueryEscape(*q) + "&max=" + strconv.Itoa(*max)
	var resp discoveryResponse
	if err := getJSON(ctx, client, u, &resp); err != nil {
		log.Fatalf("search failed: %v", err)
	}
	printBooks(resp)
}

func handleLatest(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("latest", flag.ExitOnError)
	q := fs.String("q", "", "search query (optional)")
	year := fs.Int("year", 0, "publication year filter")
	max := fs.Int("max", 20, "result cap")
	_ = fs.Parse(args)

	u := baseURL + "/api/v1/latest?q=" + url.QueryEscape(*q) +
		"&max=" + strconv.Itoa(*max)
	if *year > 0 {
		u += "&year=" + strconv.Itoa(*year)
	}
	var resp discoveryResponse
	if err := getJSON(ctx, client, u, &resp); err != nil {
		log.Fatalf("latest failed: %v", err)
	}
	printBooks(resp)
}

func handleMood(ctx context.Context, client *http.Client, baseURL string, args []string) {
	if len(args) == 0 {
		log.Fatal("mood name required (happy, sad, adventurous, motivated, frustrated)")
	}
	u := baseURL + "/api/v1/moods/" + url.PathEscape(args[0])
	var resp discoveryResponse
	if err := getJSON(ctx, client, u, &resp); err != nil {
		log.Fatalf("mood failed: %v", err)
	}
	printBooks(resp)
}

func handleRecent(ctx context.Context, client *http.Client, baseURL string) {
	var resp recentResponse
	if err := getJSON(ctx, client, baseURL+"/api/v1/recent", &resp); err != nil {
		log.Fatalf("recent failed: %v", err)
	}
	if len(resp.Items) == 0 {
		fmt.Println("no recent activity yet")
		return
	}
	for _, r := range resp.Items {
		fmt.Printf("%s — %s (viewed %s)\n",
			r.Title, r.Authors, time.UnixMilli(r.Timestamp).Format("2006-01-02 15:04"))
	}
}

func printBooks(resp discoveryResponse) {
	if resp.Featured != nil {
		fmt.Printf("FEATURED: %s by %s\n\n", resp.Featured.Heading, resp.Featured.By)
	}
	if resp.Count == 0 {
		fmt.Println("no results")
		return
	}
	for i, b := range resp.Items {
		line := fmt.Sprintf("%2d. %s — %s", i+1, b.Title, b.Authors)
		if b.PublishedDate != "" {
			line += " (" + b.PublishedDate + ")"
		}
		if b.Rating != nil {
			line += fmt.Sprintf(" ★%.1f", *b.Rating)
		}
		fmt.Println(line)
	}
}

func getJSON(ctx context.Context, client *http.Client, u string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}

func printUsage() {
	fmt.Println(`usage: bookmap [-api URL] <command>

commands:
  search  -q <query> [-max N]        search the catalog
  latest  [-q <query>] [-year YYYY]  latest releases
  mood    <mood>                     books for a mood
  recent                             recently viewed books`)
}
