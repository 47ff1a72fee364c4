package bot

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"gachabot/application"
	"gachabot/domain/entities"
	"gachabot/domain/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"
)

// DebugCommand represents an ops command sent via HTTP
type DebugCommand struct {
	Action string            `json:"action"`
	Params map[string]string `json:"params"`
}

// DebugResponse represents the response from an ops endpoint
type DebugResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Error   string      `json:"error,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// GuildInfo represents basic guild information
type GuildInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PoolEntry is one item of the pool as served by the ops API
type PoolEntry struct {
	Name        string `json:"name"`
	Rarity      string `json:"rarity"`
	Weight      int64  `json:"weight"`
	Percent     string `json:"percent"`
	Promotional bool   `json:"promotional"`
	Secret      bool   `json:"secret"`
}

// OpsDependencies is what the ops API reads from
type OpsDependencies struct {
	UnitOfWorkFactory application.UnitOfWorkFactory
	Confirmations     *application.ConfirmationGate
	Guilds            func() []GuildInfo
}

// NewOpsRouter builds the ops HTTP API
func NewOpsRouter(deps OpsDependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/debug", func(r chi.Router) {
		r.Get("/guilds", func(w http.ResponseWriter, r *http.Request) {
			var guilds []GuildInfo
			if deps.Guilds != nil {
				guilds = deps.Guilds()
			}
			respondWithData(w, guilds)
		})

		r.Get("/guilds/{guildID}/pool", func(w http.ResponseWriter, r *http.Request) {
			guildID, err := strconv.ParseInt(chi.URLParam(r, "guildID"), 10, 64)
			if err != nil {
				respondWithError(w, "Invalid guild id", http.StatusBadRequest)
				return
			}

			var pool []*entities.Item
			err = application.RunInTransaction(r.Context(), deps.UnitOfWorkFactory, guildID, func(uow application.UnitOfWork) error {
				var err error
				pool, err = uow.ItemRepository().GetPool(r.Context())
				return err
			})
			if err != nil {
				log.WithError(err).WithField("guildID", guildID).Error("Ops API failed to load pool")
				respondWithError(w, "Failed to load pool", http.StatusInternalServerError)
				return
			}
			respondWithData(w, poolEntries(pool))
		})

		r.Post("/command", func(w http.ResponseWriter, r *http.Request) {
			var cmd DebugCommand
			if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
				respondWithError(w, "Invalid request body", http.StatusBadRequest)
				return
			}

			switch cmd.Action {
			case "sweep-confirmations":
				removed := deps.Confirmations.Sweep()
				respondWithSuccess(w, fmt.Sprintf("Removed %d expired confirmation(s)", removed))
			case "pending-confirmations":
				respondWithData(w, map[string]int{"pending": deps.Confirmations.PendingCount()})
			default:
				respondWithError(w, fmt.Sprintf("Unknown action: %s", cmd.Action), http.StatusBadRequest)
			}
		})
	})

	return r
}

func poolEntries(pool []*entities.Item) []PoolEntry {
	entries := make([]PoolEntry, 0, len(pool))
	for _, item := range pool {
		entries = append(entries, PoolEntry{
			Name:        item.Name,
			Rarity:      item.Rarity.String(),
			Weight:      item.Weight,
			Percent:     services.ItemPercent(pool, item).StringFixed(2),
			Promotional: item.IsPromotional,
			Secret:      item.IsSecret,
		})
	}
	return entries
}

// StartOpsAPI serves the ops API on addr in the background
func StartOpsAPI(addr string, deps OpsDependencies) *http.Server {
	server := &http.Server{
		Addr:         addr,
		Handler:      NewOpsRouter(deps),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Infof("Ops API listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("Ops API server error: %v", err)
		}
	}()
	return server
}

func respondWithData(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(DebugResponse{
		Success: true,
		Data:    data,
	})
}

func respondWithSuccess(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(DebugResponse{
		Success: true,
		Message: message,
	})
}

func respondWithError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(DebugResponse{
		Success: false,
		Error:   message,
	})
}
