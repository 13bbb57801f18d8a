package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"

	"oppswipe_server/routes"
	"oppswipe_server/services"
	"oppswipe_server/socket"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func main() {
	// Initialize DynamoDB client and service
	log.Println("Initializing DynamoDB client...")
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient}
	log.Println("DynamoDB client initialized.")

	// Store-backed services
	opportunityService := &services.OpportunityService{Dynamo: dynamoService}
	interactionService := &services.InteractionService{Dynamo: dynamoService}
	metricsService := &services.MetricsService{Dynamo: dynamoService, Interactions: interactionService}

	// Feed pipeline
	historyService := &services.HistoryService{
		Interactions:  interactionService,
		Opportunities: opportunityService,
	}
	candidateService := services.NewCandidateService(opportunityService)
	guestFeedService := &services.GuestFeedService{
		Sessions:   services.NewInMemorySessionStore(),
		Candidates: candidateService,
	}
	feedService := &services.FeedService{
		History:    historyService,
		Candidates: candidateService,
		Guests:     guestFeedService,
	}

	// Write-back queue and deck registry
	writeQueue := services.NewWriteQueueService(interactionService, metricsService)
	defer writeQueue.Close()
	deckService := services.NewDeckService(feedService, writeQueue)

	// Socket.IO pushes deck snapshots to the deck's room
	socketServer := socket.NewSocketServer()
	deckService.OnSnapshot = func(snapshot services.DeckSnapshot) {
		socketServer.BroadcastToRoom("/", snapshot.DeckID, "deckState", snapshot)
	}
	go func() {
		if err := socketServer.Serve(); err != nil {
			log.Printf("Socket server error: %v", err)
		}
	}()
	defer socketServer.Close()

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Using server port: %s\n", port)

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to OppSwipe")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterFeedRoutes(r, feedService)
	routes.RegisterDeckRoutes(r, deckService)
	routes.RegisterSwipeRoutes(r, writeQueue)
	routes.RegisterMetricsRoutes(r, metricsService)
	routes.RegisterMediaRoutes(r)
	r.Handle("/socket.io/", socketServer)

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	log.Printf("Starting server on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, corsHandler))
}
