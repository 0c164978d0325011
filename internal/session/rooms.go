package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/collabvis/syncroom/pkg/protocol"
)

var ErrRetriesExhausted = errors.New("auto-join retries exhausted")

type hostRequest struct {
	RoomName       string `json:"roomName"`
	LandscapeToken string `json:"landscapeToken"`
	Alias          string `json:"alias,omitempty"`
}

type hostResponse struct {
	RoomID string `json:"roomId"`
}

// Host allocates a room on the server and joins it as owner.
func (s *Session) Host(ctx context.Context, roomName, landscapeToken, alias string) (string, error) {
	body, err := json.Marshal(hostRequest{RoomName: roomName, LandscapeToken: landscapeToken, Alias: alias})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ServerURL+"/v1/rooms", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("host room: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("host room: unexpected status %d", resp.StatusCode)
	}

	var hr hostResponse
	if err := json.NewDecoder(resp.Body).Decode(&hr); err != nil {
		return "", fmt.Errorf("host room: %w", err)
	}

	if err := s.Join(ctx, hr.RoomID); err != nil {
		return "", err
	}
	return hr.RoomID, nil
}

// ListRooms is a side-effect-free query of the server's room listing.
// Callers filter the result against their authorized landscape tokens.
func (s *Session) ListRooms(ctx context.Context) ([]protocol.RoomListRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.ServerURL+"/v1/rooms", nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.cfg.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer resp.Body.Close()
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		s.cfg.Notify(Notification{Level: "error", Message: "not authorized to list rooms"})
		return nil, fmt.Errorf("list rooms: status %d", resp.StatusCode)
	default:
		return nil, fmt.Errorf("list rooms: unexpected status %d", resp.StatusCode)
	}

	var records []protocol.RoomListRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return records, nil
}

// FilterRooms keeps the rooms whose landscape token the user may access.
func FilterRooms(records []protocol.RoomListRecord, tokens map[string]bool) []protocol.RoomListRecord {
	out := make([]protocol.RoomListRecord, 0, len(records))
	for _, r := range records {
		if tokens[r.LandscapeToken] {
			out = append(out, r)
		}
	}
	return out
}

// AutoJoin retries Join with a fixed delay until it succeeds or the
// configured attempts are used up. Used when a room id arrives
// out-of-band (deep link) and the room may not be reachable yet.
func (s *Session) AutoJoin(ctx context.Context, roomID string) error {
	// Disconnect must stop the retry loop too, not only the caller's
	// context.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	s.mu.Lock()
	s.retryCancel = cancel
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.retryCancel = nil
		s.mu.Unlock()
	}()

	var lastErr error
	for attempt := 1; attempt <= s.cfg.RetryAttempts; attempt++ {
		if err := s.Join(ctx, roomID); err == nil {
			return nil
		} else {
			lastErr = err
			s.logger.Info("join attempt failed",
				zap.String("room", roomID), zap.Int("attempt", attempt), zap.Error(err))
		}

		if attempt == s.cfg.RetryAttempts {
			break
		}
		timer := time.NewTimer(s.cfg.RetryDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	s.cfg.Notify(Notification{
		Level:   "error",
		Message: fmt.Sprintf("could not join room %s after %d attempts", roomID, s.cfg.RetryAttempts),
	})
	return fmt.Errorf("%w: %v", ErrRetriesExhausted, lastErr)
}
