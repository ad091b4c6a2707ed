package main

import (
	"log"
	"net/http"

	"github.com/rs/cors"

	"taskboard-backend/internal/api"
	"taskboard-backend/internal/config"
	"taskboard-backend/internal/store"
	"taskboard-backend/internal/store/file"
	"taskboard-backend/internal/store/postgres"
)

func main() {
	cfg := config.Load()

	var st store.Interface
	if cfg.UsePostgres() {
		pg, err := postgres.New(cfg.ConnString())
		if err != nil {
			log.Fatal("❌ Failed to connect DB:", err)
		}
		log.Println("✅ Connected to PostgreSQL!")
		st = pg
	} else {
		st = file.New(cfg.DataFile)
	}
	defer st.Close()

	mux := api.NewRouter(st)

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})

	handler := c.Handler(mux)

	log.Println("🚀 API server is running on", cfg.Addr)
	log.Fatal(http.ListenAndServe(cfg.Addr, handler))
}
