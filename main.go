package main

import (
	"net/http"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"travelguide/config"
	"travelguide/db"
	"travelguide/geocode"
	"travelguide/handlers"
	"travelguide/llm"
	"travelguide/middleware"
	"travelguide/session"
)

func main() {
	log.Logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	// Initialize MongoDB connection
	if err := db.Init(cfg.MongoURI, cfg.MongoDatabase); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer db.Close()

	prefs := db.NewPreferenceStore()

	completer := llm.New(llm.Config{
		BaseURL:      cfg.OpenRouterBaseURL,
		APIKey:       cfg.OpenRouterAPIKey,
		DefaultModel: cfg.DefaultModel,
		TokenBudget:  cfg.TokenBudget,
		Timeout:      cfg.CompletionTimeout,
		Referer:      cfg.AppReferer,
		Title:        cfg.AppTitle,
	})

	geocoder := geocode.New(cfg.GeocoderBaseURL, cfg.GeocoderAgent)

	sessions := session.NewManager(completer, geocoder, prefs)
	api := handlers.NewAPI(sessions, prefs, completer, geocoder)
	relay := handlers.NewRelay(
		cfg.OpenRouterBaseURL+"/chat/completions",
		cfg.OpenRouterAPIKey,
		cfg.AllowedOrigins,
		cfg.AppTitle,
	)

	// Set up HTTP handlers
	cors := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithCORS(cfg.AllowedOrigins, h)
	}
	http.HandleFunc("/session", cors(api.CreateSessionHandler))
	http.HandleFunc("/explore", cors(api.ExploreHandler))
	http.HandleFunc("/guess", cors(api.GuessHandler))
	http.HandleFunc("/navigate", cors(api.NavigateHandler))
	http.HandleFunc("/home", cors(api.HomeHandler))
	http.HandleFunc("/personas", cors(personasRoute(api)))
	http.HandleFunc("/preferences", cors(preferencesRoute(api)))
	http.HandleFunc("/suggestions", cors(api.SuggestionsHandler))
	http.HandleFunc("/whereis", cors(api.WhereIsHandler))
	http.Handle("/relay/completions", relay)

	log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
	if err := http.ListenAndServe(cfg.ListenAddr, nil); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

// personasRoute dispatches /personas by method: GET lists, POST creates
func personasRoute(api *handlers.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			api.CreatePersonaHandler(w, r)
			return
		}
		api.ListPersonasHandler(w, r)
	}
}

// preferencesRoute dispatches /preferences by method: GET reads, POST updates
func preferencesRoute(api *handlers.API) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			api.UpdatePreferencesHandler(w, r)
			return
		}
		api.GetPreferencesHandler(w, r)
	}
}
