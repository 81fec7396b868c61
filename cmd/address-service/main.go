package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"
)

// Stand-in for the real address validation endpoint: checks shape, then
// "existence" with a deterministic rule so failure paths are easy to
// exercise (any zip starting with 99 does not exist).

var zipPattern = regexp.MustCompile(`^\d{5}$`)

type checkRequest struct {
	AddressLine1 string `json:"address_line1"`
	City         string `json:"city"`
	ZipCode      string `json:"zip_code"`
}

func main() {
	port := getenv("PORT", "8081")

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	mux.HandleFunc("/check", check)

	srv := &http.Server{Addr: ":" + port, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	log.Printf("address-service listening on :%s", port)
	log.Fatal(srv.ListenAndServe())
}

func check(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req checkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"status": "invalid_format"})
		return
	}
	if strings.TrimSpace(req.AddressLine1) == "" || strings.TrimSpace(req.City) == "" || !zipPattern.MatchString(req.ZipCode) {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"status": "invalid_format"})
		return
	}
	if strings.HasPrefix(req.ZipCode, "99") {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": "not_found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func getenv(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}
