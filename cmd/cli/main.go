package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"streamhub/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type tokenData struct {
	Token string `json:"token"`
}

type authResponse struct {
	Token string `json:"token"`
}

type recResponse struct {
	Count int                     `json:"count"`
	Items []models.Recommendation `json:"items"`
}

type titleListResponse struct {
	Total  int            `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
	Items  []models.Title `json:"items"`
}

func main() {
	global := flag.NewFlagSet("streamhub", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "API base URL")
	tokenPath := global.String("token", defaultTokenPath(), "token file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 15 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "recommend":
		handleRecommend(ctx, client, *baseURL, sub, args[2:])
	case "popular":
		handlePopular(ctx, client, *baseURL, args[1:])
	case "search":
		handleSearch(ctx, client, *baseURL, args[1:])
	case "stats":
		handleStats(ctx, client, *baseURL)
	case "titles":
		handleTitles(ctx, client, *baseURL, sub, args[2:])
	case "watchlist":
		handleWatchlist(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "review":
		handleReview(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "watch":
		handleWatch(*baseURL, sub, args[2:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *email == "" || *password == "" {
			log.Fatal("email and password are required")
		}

		payload := map[string]string{"email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/login", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("logged in")
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{"username": *username, "email": *email, "password": *password}
		var resp authResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/register", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveToken(tokenPath, resp.Token); err != nil {
			log.Fatalf("save token: %v", err)
		}
		fmt.Println("registered and logged in")
	case "logout":
		if token, err := readToken(tokenPath); err == nil && token != "" {
			_ = doJSON(ctx, client, http.MethodPost, baseURL+"/auth/logout", token, nil, nil)
		}
		if err := clearToken(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("logged out")
	default:
		log.Fatal("usage: streamhub auth <login|register|logout>")
	}
}

func handleRecommend(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	fs := flag.NewFlagSet("recommend "+sub, flag.ExitOnError)
	query := fs.String("q", "", "query (title name, free-text description, or genre)")
	ctype := fs.String("type", "all", "content type: movie, tv show, or all")
	limit := fs.Int("limit", 10, "number of recommendations")
	_ = fs.Parse(args)

	if *query == "" {
		log.Fatal("-q is required")
	}

	var endpoint string
	switch sub {
	case "title":
		endpoint = "/recommend/title"
	case "description":
		endpoint = "/recommend/description"
	case "genre":
		endpoint = "/recommend/genre"
	default:
		log.Fatal("usage: streamhub recommend <title|description|genre> -q <query>")
	}

	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("q", *query)
	qv.Set("type", *ctype)
	qv.Set("limit", strconv.Itoa(*limit))
	u.RawQuery = qv.Encode()

	var resp recResponse
	if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
		log.Fatalf("recommend failed: %v", err)
	}
	printRecommendations(resp.Items, fmt.Sprintf("Recommendations for %q", *query))
}

func handlePopular(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("popular", flag.ExitOnError)
	ctype := fs.String("type", "all", "content type: movie, tv show, or all")
	limit := fs.Int("limit", 10, "number of results")
	_ = fs.Parse(args)

	u, err := url.Parse(baseURL + "/popular")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("type", *ctype)
	qv.Set("limit", strconv.Itoa(*limit))
	u.RawQuery = qv.Encode()

	var resp recResponse
	if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
		log.Fatalf("popular failed: %v", err)
	}
	printRecommendations(resp.Items, "Most recent releases")
}

func handleSearch(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query (title, cast, director, description)")
	limit := fs.Int("limit", 10, "number of results")
	_ = fs.Parse(args)

	if *query == "" {
		log.Fatal("-q is required")
	}

	u, err := url.Parse(baseURL + "/search")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("q", *query)
	qv.Set("limit", strconv.Itoa(*limit))
	u.RawQuery = qv.Encode()

	var resp recResponse
	if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
		log.Fatalf("search failed: %v", err)
	}
	printRecommendations(resp.Items, fmt.Sprintf("Search results for %q", *query))
}

func handleStats(ctx context.Context, client *http.Client, baseURL string) {
	var stats models.CatalogStats
	if err := doJSON(ctx, client, http.MethodGet, baseURL+"/stats", "", nil, &stats); err != nil {
		log.Fatalf("stats failed: %v", err)
	}

	fmt.Println("Catalog statistics")
	fmt.Printf("  total titles:   %d\n", stats.Total)
	fmt.Printf("  movies:         %d\n", stats.Movies)
	fmt.Printf("  tv shows:       %d\n", stats.TVShows)
	fmt.Printf("  distinct genres: %d\n", stats.GenreCount)
	if stats.YearRange != "" {
		fmt.Printf("  release years:  %s\n", stats.YearRange)
	}
}

func handleTitles(ctx context.Context, client *http.Client, baseURL, sub string, args []string) {
	switch sub {
	case "list":
		fs := flag.NewFlagSet("titles list", flag.ExitOnError)
		query := fs.String("q", "", "substring filter")
		ctype := fs.String("type", "all", "content type filter")
		genre := fs.String("genre", "", "genre filter")
		limit := fs.Int("limit", 20, "page size")
		offset := fs.Int("offset", 0, "offset")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/titles")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *query != "" {
			qv.Set("q", *query)
		}
		if *genre != "" {
			qv.Set("genre", *genre)
		}
		qv.Set("type", *ctype)
		qv.Set("limit", strconv.Itoa(*limit))
		qv.Set("offset", strconv.Itoa(*offset))
		u.RawQuery = qv.Encode()

		var resp titleListResponse
		if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
			log.Fatalf("list failed: %v", err)
		}
		printJSON(resp)
	case "show":
		fs := flag.NewFlagSet("titles show", flag.ExitOnError)
		id := fs.Int("id", -1, "title id")
		_ = fs.Parse(args)
		if *id < 0 {
			log.Fatal("title id is required")
		}

		var resp models.Title
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/titles/"+strconv.Itoa(*id), "", nil, &resp); err != nil {
			log.Fatalf("show failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: streamhub titles <list|show>")
	}
}

func handleWatchlist(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	token := mustToken(tokenPath)
	switch sub {
	case "add":
		fs := flag.NewFlagSet("watchlist add", flag.ExitOnError)
		id := fs.Int("id", -1, "title id")
		status := fs.String("status", "want_to_watch", "status")
		_ = fs.Parse(args)
		if *id < 0 {
			log.Fatal("title id is required")
		}

		payload := map[string]string{"status": *status}
		if err := doJSON(ctx, client, http.MethodPut, baseURL+"/users/watchlist/"+strconv.Itoa(*id), token, payload, nil); err != nil {
			log.Fatalf("watchlist add failed: %v", err)
		}
		fmt.Println("saved")
	case "remove":
		fs := flag.NewFlagSet("watchlist remove", flag.ExitOnError)
		id := fs.Int("id", -1, "title id")
		_ = fs.Parse(args)
		if *id < 0 {
			log.Fatal("title id is required")
		}

		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/watchlist/"+strconv.Itoa(*id), token, nil, nil); err != nil {
			log.Fatalf("watchlist remove failed: %v", err)
		}
		fmt.Println("removed")
	case "list":
		fs := flag.NewFlagSet("watchlist list", flag.ExitOnError)
		status := fs.String("status", "", "status filter")
		limit := fs.Int("limit", 20, "page size")
		_ = fs.Parse(args)

		u, err := url.Parse(baseURL + "/users/watchlist")
		if err != nil {
			log.Fatalf("invalid base url: %v", err)
		}
		qv := u.Query()
		if *status != "" {
			qv.Set("status", *status)
		}
		qv.Set("limit", strconv.Itoa(*limit))
		u.RawQuery = qv.Encode()

		var resp json.RawMessage
		if err := doJSON(ctx, client, http.MethodGet, u.String(), token, nil, &resp); err != nil {
			log.Fatalf("watchlist list failed: %v", err)
		}
		printJSON(resp)
	default:
		log.Fatal("usage: streamhub watchlist <add|remove|list>")
	}
}

func handleReview(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "add":
		token := mustToken(tokenPath)
		fs := flag.NewFlagSet("review add", flag.ExitOnError)
		id := fs.Int("id", -1, "title id")
		rating := fs.Int("rating", 0, "rating 1-10")
		text := fs.String("text", "", "review text")
		_ = fs.Parse(args)
		if *id < 0 || *rating < 1 || *rating > 10 {
			log.Fatal("title id and rating 1-10 are required")
		}

		payload := map[string]any{"title_id": *id, "rating": *rating, "text": *text}
		var resp models.Review
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/users/reviews", token, payload, &resp); err != nil {
			log.Fatalf("review add failed: %v", err)
		}
		printJSON(resp)
	case "list":
		fs := flag.NewFlagSet("review list", flag.ExitOnError)
		id := fs.Int("id", -1, "title id")
		_ = fs.Parse(args)
		if *id < 0 {
			log.Fatal("title id is required")
		}

		var resp json.RawMessage
		if err := doJSON(ctx, client, http.MethodGet, baseURL+"/titles/"+strconv.Itoa(*id)+"/reviews", "", nil, &resp); err != nil {
			log.Fatalf("review list failed: %v", err)
		}
		printJSON(resp)
	case "delete":
		token := mustToken(tokenPath)
		fs := flag.NewFlagSet("review delete", flag.ExitOnError)
		id := fs.Int64("id", -1, "review id")
		_ = fs.Parse(args)
		if *id < 0 {
			log.Fatal("review id is required")
		}

		if err := doJSON(ctx, client, http.MethodDelete, baseURL+"/users/reviews/"+strconv.FormatInt(*id, 10), token, nil, nil); err != nil {
			log.Fatalf("review delete failed: %v", err)
		}
		fmt.Println("deleted")
	default:
		log.Fatal("usage: streamhub review <add|list|delete>")
	}
}

func handleWatch(baseURL, sub string, args []string) {
	switch sub {
	case "", "ws":
		wsURL, err := websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("bad url: %v", err)
		}
		if err := runWebSocket(wsURL); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	case "tcp":
		fs := flag.NewFlagSet("watch tcp", flag.ExitOnError)
		addr := fs.String("addr", "localhost:7070", "tcp feed address")
		pretty := fs.Bool("pretty", false, "pretty-print events")
		_ = fs.Parse(args)

		if err := runTCPFeed(*addr, *pretty); err != nil {
			log.Fatalf("watch failed: %v", err)
		}
	default:
		log.Fatal("usage: streamhub watch [ws|tcp]")
	}
}

func runWebSocket(wsURL string) error {
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return err
	}
	defer conn.Close()
	log.Printf("[watch] connected to %s", wsURL)
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		fmt.Println(string(msg))
	}
}

func runTCPFeed(addr string, pretty bool) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	defer conn.Close()

	log.Printf("[watch] connected to %s", addr)
	reader := bufio.NewScanner(conn)
	for reader.Scan() {
		line := reader.Bytes()
		if !pretty {
			fmt.Println(string(line))
			continue
		}
		var obj map[string]any
		if err := json.Unmarshal(line, &obj); err != nil {
			fmt.Println(string(line))
			continue
		}
		b, _ := json.MarshalIndent(obj, "", "  ")
		fmt.Println(string(b))
	}
	if err := reader.Err(); err != nil {
		return err
	}
	log.Println("[watch] feed closed")
	return nil
}

// printRecommendations renders results the way the dashboard does: numbered,
// with the description truncated for terminal display.
func printRecommendations(items []models.Recommendation, heading string) {
	fmt.Println(heading)
	fmt.Println(strings.Repeat("-", len(heading)))

	if len(items) == 0 {
		fmt.Println("No recommendations found.")
		return
	}

	for i, rec := range items {
		year := "?"
		if rec.ReleaseYear != nil {
			year = strconv.Itoa(*rec.ReleaseYear)
		}
		fmt.Printf("\n%d. %s (%s, %s)\n", i+1, rec.Title, rec.Type, year)
		if rec.Rating != "" {
			fmt.Printf("   Rating: %s\n", rec.Rating)
		}
		if rec.Genres != "" {
			fmt.Printf("   Genres: %s\n", rec.Genres)
		}
		if rec.Score > 0 {
			fmt.Printf("   Score: %.3f\n", rec.Score)
		}
		desc := rec.Description
		if len(desc) > 150 {
			desc = desc[:150] + "..."
		}
		if desc != "" {
			fmt.Printf("   Description: %s\n", desc)
		}
	}
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return err
	}
	return nil
}

func printJSON(v any) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		log.Fatalf("json: %v", err)
	}
	fmt.Println(string(b))
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.streamhub-token.json"
	}
	return filepath.Join(home, ".streamhub", "token.json")
}

func saveToken(path, token string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(tokenData{Token: token}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func readToken(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	var td tokenData
	if err := json.Unmarshal(data, &td); err != nil {
		return "", err
	}
	return strings.TrimSpace(td.Token), nil
}

func mustToken(path string) string {
	token, err := readToken(path)
	if err != nil {
		log.Fatalf("token not found, please login: %v", err)
	}
	if token == "" {
		log.Fatal("token empty, please login")
	}
	return token
}

func clearToken(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("streamhub <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  recommend title|description|genre -q <query>")
	fmt.Println("  popular [-type movie|tv|all]")
	fmt.Println("  search -q <query>")
	fmt.Println("  stats")
	fmt.Println("  titles list|show")
	fmt.Println("  watchlist add|remove|list")
	fmt.Println("  review add|list|delete")
	fmt.Println("  watch [ws|tcp]")
}
