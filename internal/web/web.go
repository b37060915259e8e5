package web

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"lfmeet/internal/config"
	"lfmeet/internal/ics"
	"lfmeet/internal/join"
	appLog "lfmeet/internal/log"
	"lfmeet/internal/model"
	"lfmeet/internal/occurrence"
	"lfmeet/internal/recurrence"
	"lfmeet/internal/schema"
)

// Server provides the HTTP API over the in-memory meeting records kept
// fresh by the cron-driven refresh in cmd/lfmeet.
//
// All time-dependent answers (card state, join eligibility) are computed
// per request against the server clock; the core packages receive that
// instant as an argument and hold no clocks of their own. Clients poll the
// card endpoint to drive countdowns.
type Server struct {
	cfg *config.Config
	mux *http.ServeMux

	// now is the clock used for card/join evaluation; replaceable in tests.
	now func() time.Time

	recordsMu    sync.RWMutex
	records      []schema.Record
	byIdentifier map[string]schema.Record
	refreshedAt  time.Time
}

// NewServer constructs a new Server.
func NewServer(cfg *config.Config) *Server {
	s := &Server{
		cfg: cfg,
		mux: http.NewServeMux(),
		now: time.Now,
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// SetRecords replaces the served meeting records. Called by the refresh
// loop after each upstream fetch; records keep upstream occurrence order.
func (s *Server) SetRecords(records []schema.Record) {
	index := make(map[string]schema.Record, len(records))
	for _, r := range records {
		if id := schema.Identifier(r); id != "" {
			index[id] = r
		}
	}

	s.recordsMu.Lock()
	s.records = records
	s.byIdentifier = index
	s.refreshedAt = s.now()
	s.recordsMu.Unlock()

	appLog.Info("meeting records updated", "count", len(records))
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	// An empty username or password is treated as disabled.
	if s.cfg.BasicAuth.Username == "" || s.cfg.BasicAuth.Password == "" {
		return false
	}
	return true
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// /health is always exposed unauthenticated.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="lfmeet", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/status", s.handleStatus)
	s.mux.HandleFunc("GET /api/meetings", s.handleMeetings)
	s.mux.HandleFunc("GET /api/meetings/{uid}/card", s.handleCard)
	s.mux.HandleFunc("GET /api/meetings/{uid}/join", s.handleJoin)
	s.mux.HandleFunc("GET /api/meetings/{uid}/meeting.ics", s.handleICS)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// statusDTO reports upstream data freshness for the UI's staleness banner.
type statusDTO struct {
	MeetingCount int       `json:"meeting_count"`
	RefreshedAt  time.Time `json:"refreshed_at,omitzero"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.recordsMu.RLock()
	status := statusDTO{
		MeetingCount: len(s.records),
		RefreshedAt:  s.refreshedAt,
	}
	s.recordsMu.RUnlock()
	writeJSON(w, http.StatusOK, status)
}

// meetingDTO is the JSON list view of a normalized meeting.
type meetingDTO struct {
	Identifier       string    `json:"identifier"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartTime        time.Time `json:"start_time"`
	Timezone         string    `json:"timezone,omitempty"`
	DurationMinutes  int       `json:"duration_minutes"`
	EarlyJoinMinutes int       `json:"early_join_minutes"`
	RecurrenceLabel  string    `json:"recurrence_label,omitempty"`
	AICompanion      bool      `json:"ai_companion"`
	Legacy           bool      `json:"legacy"`
}

// occurrenceDTO is the JSON view of the projected occurrence, with
// occurrence-level title/description overrides already resolved.
type occurrenceDTO struct {
	OccurrenceID    string    `json:"occurrence_id,omitempty"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
}

// cardDTO drives the meeting card: the projected occurrence plus the join
// verdict at evaluation time. Clients poll this endpoint as the clock
// advances; every response is a fresh evaluation.
type cardDTO struct {
	Meeting     meetingDTO     `json:"meeting"`
	Occurrence  *occurrenceDTO `json:"occurrence,omitempty"`
	Past        bool           `json:"past"`
	CanJoin     bool           `json:"can_join"`
	Message     string         `json:"message"`
	EvaluatedAt time.Time      `json:"evaluated_at"`
}

type joinDTO struct {
	URL string `json:"url"`
}

func (s *Server) handleMeetings(w http.ResponseWriter, _ *http.Request) {
	s.recordsMu.RLock()
	records := s.records
	s.recordsMu.RUnlock()

	dtos := make([]meetingDTO, 0, len(records))
	for _, rec := range records {
		dtos = append(dtos, toMeetingDTO(rec))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (s *Server) handleCard(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(r.PathValue("uid"))
	if !ok {
		writeError(w, http.StatusNotFound, "meeting not found")
		return
	}

	now := s.now()
	m := schema.Normalize(rec)
	occs := schema.Occurrences(rec)

	current := occurrence.SelectCurrentOrNext(m, occs, now)

	// A meeting whose listed occurrences have all ended is past; the card
	// falls back to the meeting's own start time for display only.
	past := current == nil && len(occs) > 0
	verdict := join.Evaluate(current, m.EarlyJoinMinutes, past, now)

	card := cardDTO{
		Meeting:     toMeetingDTO(rec),
		Occurrence:  toOccurrenceDTO(rec, m, current),
		Past:        past,
		CanJoin:     verdict.Eligible,
		Message:     verdict.Message,
		EvaluatedAt: now,
	}
	writeJSON(w, http.StatusOK, card)
}

func (s *Server) handleJoin(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(r.PathValue("uid"))
	if !ok {
		writeError(w, http.StatusNotFound, "meeting not found")
		return
	}

	now := s.now()
	m := schema.Normalize(rec)
	occs := schema.Occurrences(rec)

	current := occurrence.SelectCurrentOrNext(m, occs, now)
	past := current == nil && len(occs) > 0
	verdict := join.Evaluate(current, m.EarlyJoinMinutes, past, now)

	if !verdict.Eligible {
		writeError(w, http.StatusConflict, verdict.Message)
		return
	}
	if m.JoinURL == "" {
		writeError(w, http.StatusConflict, "meeting has no join link")
		return
	}

	q := r.URL.Query()
	identity := model.JoinIdentity{
		Name:  q.Get("name"),
		Email: q.Get("email"),
	}
	if identity.Email == "" {
		identity.Guest = true
		identity.Organization = q.Get("org")
	}

	// Exactly one decoration per rendered link: the builder is not
	// idempotent, so the URL is built here and nowhere else.
	writeJSON(w, http.StatusOK, joinDTO{URL: join.BuildURL(m.JoinURL, identity)})
}

func (s *Server) handleICS(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.lookup(r.PathValue("uid"))
	if !ok {
		writeError(w, http.StatusNotFound, "meeting not found")
		return
	}

	payload, err := ics.Export(rec, s.now())
	if err != nil {
		appLog.Error("ics export failed", err, "identifier", schema.Identifier(rec))
		writeError(w, http.StatusUnprocessableEntity, "meeting cannot be exported")
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="meeting.ics"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (s *Server) lookup(uid string) (schema.Record, bool) {
	s.recordsMu.RLock()
	defer s.recordsMu.RUnlock()
	rec, ok := s.byIdentifier[uid]
	return rec, ok
}

func toMeetingDTO(rec schema.Record) meetingDTO {
	m := schema.Normalize(rec)

	label := ""
	if m.Recurrence != nil {
		// The meeting's own start time is the anchor the rule was
		// generated against, so Describe is valid for this pair.
		_, label = recurrence.Describe(m.Recurrence, m.StartTime)
	}

	return meetingDTO{
		Identifier:       m.Identifier,
		Title:            m.Title,
		Description:      m.Description,
		StartTime:        m.StartTime,
		Timezone:         m.Timezone,
		DurationMinutes:  m.DurationMinutes,
		EarlyJoinMinutes: m.EarlyJoinMinutes,
		RecurrenceLabel:  label,
		AICompanion:      m.AICompanion,
		Legacy:           m.Legacy,
	}
}

// toOccurrenceDTO resolves the projected occurrence's display fields via
// the normalizer so occurrence-level overrides win over both generations.
func toOccurrenceDTO(rec schema.Record, m model.Meeting, occ *model.Occurrence) *occurrenceDTO {
	if occ == nil {
		return nil
	}

	duration := occ.DurationMinutes
	if duration <= 0 {
		duration = m.DurationMinutes
	}

	occRec := &schema.OccurrenceRecord{
		Title:       occ.Title,
		Description: occ.Description,
	}

	return &occurrenceDTO{
		OccurrenceID:    occ.OccurrenceID,
		StartTime:       occ.StartTime,
		DurationMinutes: duration,
		Title:           schema.Title(rec, occRec),
		Description:     schema.Description(rec, occRec),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
