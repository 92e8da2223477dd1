// Quickstart for resourceful: registers two endpoints against a local demo
// server, materializes the registry, and exercises the default actions.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/tavish/resourceful"
	"github.com/tavish/resourceful/middleware"
)

func main() {
	server := demoServer()
	defer server.Close()

	reg := resourceful.NewRegistry().
		WithHTTPClient(server.Client()).
		WithLogger(slog.Default()).
		WithUnaryInterceptor(middleware.RequestID()).
		WithUnaryInterceptor(middleware.Logging(slog.Default())).
		WithStrictValidation()

	reg.SetBaseRoute(server.URL + "/v1")

	reg.Endpoint("songs").
		Route("/songs/:id").
		Model(func() any { return &Song{} }).
		EnableQuery().
		AddHTTPAction("GET", "top", resourceful.WithDefaultParams(map[string]string{"sort": "plays"}), resourceful.WithIsArray())

	reg.Endpoint("health").Route("/health")

	api, err := reg.Materialize()
	if err != nil {
		log.Fatalf("materialize: %v", err)
	}

	ctx := context.Background()
	songs, _ := api.Endpoint("songs")

	// Query returns one model instance per element, AfterLoad already run.
	res, err := songs.Query(ctx, nil)
	if err != nil {
		log.Fatalf("query: %v", err)
	}
	for _, item := range res.([]any) {
		fmt.Println(item.(*Song).Display)
	}

	// Save deep-copies the payload and runs BeforeSave on the copy.
	draft := &Song{Title: "  Holiday  ", Artist: "Bebel Gilberto"}
	if _, err := songs.Save(ctx, nil, draft); err != nil {
		log.Fatalf("save: %v", err)
	}
	fmt.Printf("local draft untouched: %q\n", draft.Title)

	// Plain endpoint with no model: raw decoded JSON.
	status, err := api.Call(ctx, "health", "get", nil, nil)
	if err != nil {
		log.Fatalf("health: %v", err)
	}
	fmt.Println("health:", status)
}

func demoServer() *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/songs", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			json.NewEncoder(w).Encode([]Song{
				{ID: 1, Title: "Samba de Verao", Artist: "Marcos Valle"},
				{ID: 2, Title: "Aguas de Marco", Artist: "Elis Regina"},
			})
		case http.MethodPost:
			var s Song
			json.NewDecoder(r.Body).Decode(&s)
			if strings.HasPrefix(s.Title, " ") {
				http.Error(w, "untrimmed title", http.StatusBadRequest)
				return
			}
			s.ID = 3
			json.NewEncoder(w).Encode(s)
		}
	})
	mux.HandleFunc("/v1/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})
	return httptest.NewServer(mux)
}
