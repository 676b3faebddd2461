package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/nvillanueva/flightboard/session"
	"github.com/nvillanueva/flightboard/types"
)

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetSessionState reports the caller's authentication state.
func GetSessionState(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sessions.Get(sessionToken(r))
		writeJSON(w, http.StatusOK, struct {
			IsAdmin bool   `json:"isAdmin"`
			UserID  string `json:"userId,omitempty"`
		}{
			IsAdmin: sess.IsAdmin,
			UserID:  sess.UserID,
		})
	}
}

// AdminLogin elevates the session when the supplied password matches the
// configured admin secret.
func AdminLogin(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := sessions.LoginAdmin(sessionToken(r), req.Password); err != nil {
			writeError(w, http.StatusUnauthorized, "Invalid password")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"isAdmin": true,
		})
	}
}

// UserLogin associates a username with the session.
func UserLogin(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Username string `json:"username"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		userID, err := sessions.LoginUser(sessionToken(r), req.Username)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Username is required")
			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"userId":  userID,
		})
	}
}

// Logout destroys the session and clears the cookie.
func Logout(sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessions.Logout(sessionToken(r))
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// ListFlights returns the merged flight board: external records first (as
// received, tagged "external"), then local submissions in store order. An
// external outage is never surfaced to the client.
func ListFlights(store FlightStore, ext ExternalSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		merged := []types.FlightRecord{}

		external, err := ext.Fetch(r.Context())
		if err != nil {
			log.Printf("Error fetching external flights: %v", err)
		}
		for _, record := range external {
			record.SubmittedBy = "external"
			merged = append(merged, record)
		}

		local, err := store.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load flights")
			return
		}
		for _, flight := range local {
			merged = append(merged, flight.Record())
		}

		writeJSON(w, http.StatusOK, types.FlightFeed{
			Status:  "success",
			AllData: merged,
		})
	}
}

// requiredFlightFields lists the wire names checked on submission, in the
// order they are reported when missing.
var requiredFlightFields = []struct {
	name  string
	value func(types.FlightRecord) string
}{
	{"discorduser", func(f types.FlightRecord) string { return f.DiscordUser }},
	{"call", func(f types.FlightRecord) string { return f.Callsign }},
	{"plane", func(f types.FlightRecord) string { return f.Plane }},
	{"dep", func(f types.FlightRecord) string { return f.Departure }},
	{"ari", func(f types.FlightRecord) string { return f.Arrival }},
}

// AddFlight validates and stores a submission, then forwards it to the
// external API in the background. The local insert is the durable write;
// forwarding failures are logged and swallowed.
func AddFlight(store FlightStore, ext ExternalSource, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var record types.FlightRecord
		if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		for _, field := range requiredFlightFields {
			if strings.TrimSpace(field.value(record)) == "" {
				writeError(w, http.StatusBadRequest, "Missing required field: "+field.name)
				return
			}
		}

		submittedBy := "anonymous"
		if sess, ok := sessions.Get(sessionToken(r)); ok && sess.UserID != "" {
			submittedBy = sess.UserID
		}

		id, err := store.Insert(types.Submission{
			DiscordUser: record.DiscordUser,
			Callsign:    record.Callsign,
			Plane:       record.Plane,
			Departure:   record.Departure,
			Arrival:     record.Arrival,
			SubmittedBy: submittedBy,
		})
		if err != nil {
			log.Printf("Error saving flight: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to save flight")
			return
		}

		// Detached from the request context so a client disconnect cannot
		// abandon the forward; the client's own timeout bounds it.
		go func() {
			if err := ext.Forward(context.Background(), record); err != nil {
				log.Printf("Error forwarding flight to external API: %v", err)
			}
		}()

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"id":      id,
		})
	}
}

// DeleteFlight removes a local submission. Requires a logged-in session;
// only the submitter or an admin may delete. External records carry no id
// and are unreachable here.
func DeleteFlight(store FlightStore, sessions *session.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := sessions.Get(sessionToken(r))
		if !ok || sess.UserID == "" {
			writeError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		id := mux.Vars(r)["id"]
		flight, err := store.Get(id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Flight not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to load flight")
			return
		}

		if !sess.IsAdmin && flight.SubmittedBy != sess.UserID {
			writeError(w, http.StatusForbidden, "Can only delete your own flights")
			return
		}

		if err := store.Delete(id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Flight not found")
				return
			}
			writeError(w, http.StatusInternalServerError, "Failed to delete flight")
			return
		}

		writeJSON(w, http.StatusOK, map[string]bool{"success": true})
	}
}

// AdminListFlights returns the raw submission rows, including ids and
// submitter attribution. No merge with the external source.
func AdminListFlights(store FlightStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flights, err := store.List()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to load flights")
			return
		}
		if flights == nil {
			flights = []types.Submission{}
		}
		writeJSON(w, http.StatusOK, flights)
	}
}
