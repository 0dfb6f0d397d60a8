package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/meridiancms/meridian/internal/api"
	"github.com/meridiancms/meridian/internal/columns"
	"github.com/meridiancms/meridian/internal/config"
	"github.com/meridiancms/meridian/internal/db"
	"github.com/meridiancms/meridian/internal/store"
)

func main() {
	cfg := config.Load()

	bunDB := db.NewBunPostgresClient(cfg.DatabaseURL, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns)
	defer bunDB.Close()

	st := store.New(bunDB, cfg.MediaBaseURL)
	if err := st.InitializeDatabase(context.Background()); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	declarations, err := loadDeclarations(cfg.ColumnsConfig)
	if err != nil {
		log.Fatalf("Failed to load column declarations: %v", err)
	}

	fields := store.NewFieldProvider()
	if err := fields.Register("permalink", func(ctx context.Context, itemID string) (any, error) {
		return "/content/" + itemID, nil
	}); err != nil {
		log.Fatalf("Failed to register field: %v", err)
	}

	views := make(map[string]*api.View, len(declarations))
	for contentType, decls := range declarations {
		registry, err := columns.Build(contentType, decls)
		if err != nil {
			log.Fatalf("Failed to build column registry: %v", err)
		}
		views[contentType] = api.NewView(registry, st.Attributes, fields, st.Attachments)
	}

	listHandler := api.NewListHandler(views, st.Content)
	itemHandler := api.NewItemHandler(views, st.Content, st.Attributes)
	router := api.SetupRoutes(listHandler, itemHandler)

	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()

	log.Printf("Server starting on %s (content types: %s)", cfg.ServerAddr, contentTypes(views))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Server failed to start: %v", err)
	}

	log.Println("Server stopped")
}

// loadDeclarations reads the column configuration file; a missing file is not
// fatal, the server just runs with the built-in defaults.
func loadDeclarations(path string) (map[string][]columns.RawDeclaration, error) {
	decls, err := columns.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("Columns config %s not found, using defaults", path)
		return defaultDeclarations(), nil
	}
	if err != nil {
		return nil, err
	}
	return decls, nil
}

// defaultDeclarations covers a basic page type so a fresh install has
// something to list.
func defaultDeclarations() map[string][]columns.RawDeclaration {
	return map[string][]columns.RawDeclaration{
		"page": {
			{Key: columns.ThumbnailKey, Value: map[string]any{}},
			{Key: "template", Value: map[string]any{
				"title": "Template",
			}},
			{Key: "permalink", Value: map[string]any{
				"title": "Permalink",
				"type":  string(columns.TypeField),
			}},
			{Key: "word_count", Value: map[string]any{
				"title":    "Words",
				"sortable": true,
				"orderby":  columns.OrderByNumeric,
				"transform": columns.Transform(func(value any, itemID string) any {
					s, _ := value.(string)
					if s == "" {
						return ""
					}
					return fmt.Sprintf("%s words", s)
				}),
			}},
		},
	}
}

func contentTypes(views map[string]*api.View) string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	return strings.Join(names, ", ")
}
