package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"TaskBackend/config"
	"TaskBackend/engine"
	"TaskBackend/handlers"
	"TaskBackend/middleware"
	"TaskBackend/store"
)

func main() {
	godotenv.Load()

	// DB_DRIVER=memory runs task storage in process; auth still needs Mongo.
	var taskStore store.TaskStore
	if os.Getenv("DB_DRIVER") == "memory" {
		taskStore = store.NewMemoryStore()
	} else {
		client := config.ConnectDB()
		taskStore = store.NewMongoStore(client)
	}

	eng := engine.New(taskStore)

	schema, err := handlers.NewSchema(eng)
	if err != nil {
		log.Fatalf("schema error: %v", err)
	}

	http.HandleFunc("/check", check)
	http.HandleFunc("/register", handlers.Register)
	http.HandleFunc("/login", handlers.Login)
	http.HandleFunc("/graphql", middleware.AuthMiddleware(handlers.GraphQL(schema)))

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("server starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "healthy"}`))
}
