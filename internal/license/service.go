// Package license verifies the deployment's license against the hosted
// portal and decrypts its response.
package license

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/pranto48/lifeos-backend/internal/database"
	"github.com/pranto48/lifeos-backend/internal/repository"
	appErr "github.com/pranto48/lifeos-backend/pkg/errors"
)

const (
	portalURL = "https://portal.itsupport.com.bd/api/verify_license.php"

	// Shared secret with the portal. Changing it breaks decryption of every
	// deployed installation's license checks.
	portalPassphrase = "LifeOS-License-Encryption-Key-2024"

	portalTimeout   = 10 * time.Second
	maxResponseSize = 1 << 20
)

// StatusHint is the static message served by GET /api/license/status.
const StatusHint = "License verification is handled by the IT Support portal. Use POST /api/license/verify with your license key."

// Service is the outbound proxy to the licensing portal.
type Service struct {
	repos      repository.Provider
	client     *http.Client
	url        string
	passphrase string
	log        *zap.Logger
}

func NewService(repos repository.Provider, log *zap.Logger) *Service {
	return &Service{
		repos:      repos,
		client:     &http.Client{},
		url:        portalURL,
		passphrase: portalPassphrase,
		log:        log,
	}
}

type verifyRequest struct {
	AppLicenseKey      string `json:"app_license_key"`
	UserID             string `json:"user_id"`
	CurrentDeviceCount int    `json:"current_device_count"`
	InstallationID     string `json:"installation_id"`
}

// Verify checks the license key with the portal and returns the decrypted
// payload verbatim. The device count is the total user count, a coarse
// seat-counting heuristic the portal expects, not a true device census.
func (s *Service) Verify(ctx context.Context, licenseKey, userID string) (json.RawMessage, error) {
	users, err := s.repos.Users()
	if err != nil {
		return nil, availabilityErr(err)
	}
	settings, err := s.repos.Settings()
	if err != nil {
		return nil, availabilityErr(err)
	}

	installationID, err := settings.InstallationID(ctx)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "Could not resolve installation identity")
	}
	deviceCount, err := users.Count(ctx)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "Could not count users")
	}

	payload, err := json.Marshal(verifyRequest{
		AppLicenseKey:      licenseKey,
		UserID:             userID,
		CurrentDeviceCount: deviceCount,
		InstallationID:     installationID,
	})
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "License verification failed")
	}

	ctx, cancel := context.WithTimeout(ctx, portalTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "License verification failed")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, appErr.Wrap(err, appErr.CodeExternal, "License portal timed out")
		}
		return nil, appErr.Wrap(err, appErr.CodeExternal, "Could not reach license portal")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeExternal, "Could not read license portal response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, appErr.New(appErr.CodeExternal,
			fmt.Sprintf("License portal returned status %d", resp.StatusCode))
	}

	if plain, err := decryptPortalPayload(body, s.passphrase); err == nil {
		return plain, nil
	}

	// The portal has historically sometimes answered in plaintext.
	if json.Valid(body) {
		s.log.Debug("license portal answered in plaintext", zap.Int("bytes", len(body)))
		return body, nil
	}

	return nil, appErr.New(appErr.CodeExternal, "License verification failed: unreadable portal response")
}

func availabilityErr(err error) error {
	if errors.Is(err, database.ErrNotConfigured) {
		return appErr.New(appErr.CodeUnavailable, "Database not configured")
	}
	return appErr.Wrap(err, appErr.CodeInternal, "Database unavailable")
}
