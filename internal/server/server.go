package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dukerupert/schompf/internal/backup"
	"github.com/dukerupert/schompf/internal/handler"
	"github.com/dukerupert/schompf/internal/middleware"
	"github.com/dukerupert/schompf/internal/shopping"
	"github.com/dukerupert/schompf/internal/store"
	ws "github.com/dukerupert/schompf/internal/websocket"
)

type Server struct {
	hub         *ws.Hub
	vendorH     *handler.VendorHandler
	categoryH   *handler.CategoryHandler
	productH    *handler.ProductHandler
	dishH       *handler.DishHandler
	mealH       *handler.MealHandler
	settingsH   *handler.SettingsHandler
	shoppingH   *handler.ShoppingHandler
	backupH     *handler.BackupHandler
	corsOrigins []string
	logger      *slog.Logger
}

// New wires handlers over docs. The hub is shared with the backup manager's
// status callback, which is why the caller creates it.
func New(docs *store.Store, hub *ws.Hub, backupMgr *backup.Manager, corsOrigins []string, logger *slog.Logger) *Server {
	deps := handler.Deps{
		Validate: handler.NewValidator(),
		Hub:      hub,
		Logger:   logger.With("component", "handler"),
	}

	shoppingSvc := shopping.NewService(docs, logger.With("component", "shopping"))

	return &Server{
		hub:         hub,
		vendorH:     handler.NewVendorHandler(deps, store.NewVendorStore(docs)),
		categoryH:   handler.NewCategoryHandler(deps, store.NewCategoryStore(docs)),
		productH:    handler.NewProductHandler(deps, store.NewProductStore(docs)),
		dishH:       handler.NewDishHandler(deps, store.NewDishStore(docs)),
		mealH:       handler.NewMealHandler(deps, store.NewMealStore(docs)),
		settingsH:   handler.NewSettingsHandler(deps, store.NewSettingsStore(docs)),
		shoppingH:   handler.NewShoppingHandler(deps, shoppingSvc),
		backupH:     handler.NewBackupHandler(deps, backupMgr),
		corsOrigins: corsOrigins,
		logger:      logger,
	}
}

// BackupStatusCallback broadcasts backup state changes to connected clients.
func BackupStatusCallback(hub *ws.Hub) backup.StatusCallback {
	return func(s backup.Status) {
		hub.Broadcast(ws.Message{
			Type:   "backup_status",
			Entity: "backup",
			Action: string(s.State),
			Extra: map[string]any{
				"inProgress": s.InProgress,
				"error":      s.Error,
			},
		})
	}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	// Vendors
	mux.HandleFunc("GET /api/vendors", s.vendorH.List)
	mux.HandleFunc("POST /api/vendors", s.vendorH.Create)
	mux.HandleFunc("GET /api/vendors/{id}", s.vendorH.Get)
	mux.HandleFunc("PUT /api/vendors/{id}", s.vendorH.Update)
	mux.HandleFunc("DELETE /api/vendors/{id}", s.vendorH.Delete)

	// Categories
	mux.HandleFunc("GET /api/categories", s.categoryH.List)
	mux.HandleFunc("POST /api/categories", s.categoryH.Create)
	mux.HandleFunc("PUT /api/categories/reorder", s.categoryH.Reorder)
	mux.HandleFunc("GET /api/categories/{id}", s.categoryH.Get)
	mux.HandleFunc("PUT /api/categories/{id}", s.categoryH.Update)
	mux.HandleFunc("DELETE /api/categories/{id}", s.categoryH.Delete)

	// Products
	mux.HandleFunc("GET /api/products", s.productH.List)
	mux.HandleFunc("POST /api/products", s.productH.Create)
	mux.HandleFunc("GET /api/products/{id}", s.productH.Get)
	mux.HandleFunc("PUT /api/products/{id}", s.productH.Update)
	mux.HandleFunc("DELETE /api/products/{id}", s.productH.Delete)

	// Dishes
	mux.HandleFunc("GET /api/dishes", s.dishH.List)
	mux.HandleFunc("POST /api/dishes", s.dishH.Create)
	mux.HandleFunc("GET /api/dishes/{id}", s.dishH.Get)
	mux.HandleFunc("PUT /api/dishes/{id}", s.dishH.Update)
	mux.HandleFunc("DELETE /api/dishes/{id}", s.dishH.Delete)

	// Meals
	mux.HandleFunc("GET /api/meals", s.mealH.List)
	mux.HandleFunc("POST /api/meals", s.mealH.Create)
	mux.HandleFunc("GET /api/meals/date/{date}", s.mealH.ListByDate)
	mux.HandleFunc("POST /api/meals/bulk", s.mealH.BulkCreate)
	mux.HandleFunc("POST /api/meals/commit", s.mealH.Commit)
	mux.HandleFunc("GET /api/meals/{id}", s.mealH.Get)
	mux.HandleFunc("PUT /api/meals/{id}", s.mealH.Update)
	mux.HandleFunc("DELETE /api/meals/{id}", s.mealH.Delete)
	mux.HandleFunc("POST /api/meals/{id}/mark-prepared", s.mealH.MarkPrepared)
	mux.HandleFunc("POST /api/meals/{id}/reset-to-committed", s.mealH.ResetToCommitted)

	// Settings
	mux.HandleFunc("GET /api/settings", s.settingsH.Get)
	mux.HandleFunc("PUT /api/settings", s.settingsH.Update)

	// Shopping list
	mux.HandleFunc("GET /api/shopping-list/current", s.shoppingH.Current)
	mux.HandleFunc("POST /api/shopping-list/generate", s.shoppingH.Generate)
	mux.HandleFunc("POST /api/shopping-list/add-item", s.shoppingH.AddItem)
	mux.HandleFunc("POST /api/shopping-list/toggle-item/{itemId}", s.shoppingH.ToggleItem)
	mux.HandleFunc("POST /api/shopping-list/remove-checked", s.shoppingH.RemoveChecked)
	mux.HandleFunc("PUT /api/shopping-list/item/{itemId}", s.shoppingH.UpdateItem)
	mux.HandleFunc("DELETE /api/shopping-list/item/{itemId}", s.shoppingH.DeleteItem)
	mux.HandleFunc("DELETE /api/shopping-list/clear", s.shoppingH.Clear)

	// Backups
	mux.HandleFunc("GET /api/backups", s.backupH.List)
	mux.HandleFunc("POST /api/backups", s.backupH.Create)
	mux.HandleFunc("GET /api/backups/status", s.backupH.Status)
	mux.HandleFunc("POST /api/backups/restore", s.backupH.Restore)

	// WebSocket
	mux.HandleFunc("GET /ws", ws.HandleWebSocket(s.hub, s.corsOrigins))

	mux.HandleFunc("/", s.notFound)

	var h http.Handler = mux
	h = middleware.CORS(s.corsOrigins)(h)
	h = middleware.RequestLogger(s.logger.With("component", "http"))(h)
	return h
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"error": "route not found"})
}
