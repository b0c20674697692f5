package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/bootstrap"
	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/internal/repository"
	"github.com/pranto48/lifeos-backend/internal/schema"
	"github.com/pranto48/lifeos-backend/pkg/config"
)

// SetupHandler drives first-run configuration: probing candidate databases,
// reporting setup state, and the full initialize sequence that swaps the
// process-wide handle.
type SetupHandler struct {
	cfg     *config.Config
	manager *database.Manager
	log     *zap.Logger
}

func NewSetupHandler(cfg *config.Config, manager *database.Manager, log *zap.Logger) *SetupHandler {
	return &SetupHandler{cfg: cfg, manager: manager, log: log}
}

func (h *SetupHandler) TestConnection(w http.ResponseWriter, r *http.Request) {
	var body database.ConnConfig
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeOpError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	conn := database.ResolveConfig(body, h.cfg)
	db, err := database.Connect(r.Context(), conn)
	if err != nil {
		writeOpError(w, http.StatusBadRequest, fmt.Sprintf("Connection failed: %v", err))
		return
	}
	_ = db.Close()

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": fmt.Sprintf("Successfully connected to %s database", conn.Type),
	})
}

// Status never errors to the caller: anything short of a readable completed
// setup row reads as "not set up yet".
func (h *SetupHandler) Status(w http.ResponseWriter, r *http.Request) {
	db := h.manager.Get()
	if db == nil {
		writeJSON(w, http.StatusOK, map[string]any{"isSetup": false})
		return
	}

	complete, dbType, err := repository.NewSettings(db).Setup(r.Context())
	if err != nil {
		h.log.Warn("setup status read failed", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{"isSetup": false})
		return
	}
	resp := map[string]any{"isSetup": complete}
	if dbType != "" {
		resp["dbType"] = dbType
	}
	writeJSON(w, http.StatusOK, resp)
}

type initializeRequest struct {
	database.ConnConfig
	AdminEmail    string `json:"adminEmail"`
	AdminPassword string `json:"adminPassword"`
	AdminName     string `json:"adminName"`
}

func (h *SetupHandler) Initialize(w http.ResponseWriter, r *http.Request) {
	var req initializeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeOpError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	conn := database.ResolveConfig(req.ConnConfig, h.cfg)
	db, err := database.Connect(r.Context(), conn)
	if err != nil {
		writeOpError(w, http.StatusInternalServerError, fmt.Sprintf("Connection failed: %v", err))
		return
	}

	if err := schema.Ensure(r.Context(), db); err != nil {
		_ = db.Close()
		writeOpError(w, http.StatusInternalServerError, fmt.Sprintf("Schema initialization failed: %v", err))
		return
	}

	email := req.AdminEmail
	if email == "" {
		email = bootstrap.DefaultAdminEmail
	}
	password := req.AdminPassword
	if password == "" {
		password = bootstrap.DefaultAdminPassword
	}
	name := req.AdminName
	if name == "" {
		name = bootstrap.DefaultAdminName
	}

	if err := bootstrap.Seed(r.Context(), repository.NewUsers(db), repository.NewSettings(db),
		conn.Type, email, password, name); err != nil {
		_ = db.Close()
		writeOpError(w, http.StatusInternalServerError, fmt.Sprintf("Setup failed: %v", err))
		return
	}

	// New handle goes live only after the full sequence succeeded.
	if old := h.manager.Swap(db); old != nil {
		_ = old.Close()
	}
	h.log.Info("setup initialized", zap.String("dialect", conn.Type))

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Database initialized successfully",
	})
}
