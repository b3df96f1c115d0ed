package httpadapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"svw.info/pips/internal/domain"
	"svw.info/pips/internal/formulate"
	"svw.info/pips/internal/ports"
	"svw.info/pips/internal/program"
	"svw.info/pips/internal/usecase"
)

type Handler struct {
	UC *usecase.Service
}

func New(uc *usecase.Service) *Handler { return &Handler{UC: uc} }

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/parse", h.handleParse)
	mux.HandleFunc("/api/solve", h.handleSolve)
	mux.HandleFunc("/api/verify", h.handleVerify)
	mux.HandleFunc("/api/generate", h.handleGenerate)
	mux.HandleFunc("/api/hint", h.handleHint)
	mux.HandleFunc("/api/save", h.handleSave)
	mux.HandleFunc("/api/load", h.handleLoad)
	mux.HandleFunc("/api/list", h.handleList)
}

// ---- Parse ----

type parseReq struct {
	Text string `json:"text"`
}

type regionInfo struct {
	Spaces    []string `json:"spaces"`
	Condition string   `json:"condition"`
}

type parseResp struct {
	Spaces   []string     `json:"spaces,omitempty"`
	Regions  []regionInfo `json:"regions,omitempty"`
	Dominoes []string     `json:"dominoes,omitempty"`
	Error    string       `json:"error,omitempty"`
}

func (h *Handler) handleParse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req parseReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(parseResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	puz, err := domain.ParsePuzzle(req.Text)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(parseResp{Error: err.Error()})
		return
	}
	resp := parseResp{}
	for _, s := range puz.SortedSpaces() {
		resp.Spaces = append(resp.Spaces, s.String())
	}
	for _, reg := range puz.SortedRegions() {
		cond, _ := puz.Condition(reg)
		info := regionInfo{Condition: cond.String()}
		for _, s := range reg.Spaces() {
			info.Spaces = append(info.Spaces, s.String())
		}
		resp.Regions = append(resp.Regions, info)
	}
	for _, d := range puz.Dominoes() {
		resp.Dominoes = append(resp.Dominoes, d.String())
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ---- Solve ----

type solveReq struct {
	Text string `json:"text"`
}

type placementInfo struct {
	Domino   string `json:"domino"`
	Spot     string `json:"spot"`
	Reversed bool   `json:"reversed,omitempty"`
}

type solveResp struct {
	Feasible     bool            `json:"feasible"`
	Placements   []placementInfo `json:"placements,omitempty"`
	Instructions []string        `json:"instructions,omitempty"`
	Art          string          `json:"art,omitempty"`
	DurationMs   int64           `json:"durationMs,omitempty"`
	Nodes        int64           `json:"nodes,omitempty"`
	Error        string          `json:"error,omitempty"`
}

func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req solveReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(solveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	sol, st, err := h.UC.SolveText(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, ports.ErrInfeasible) {
			_ = json.NewEncoder(w).Encode(solveResp{Feasible: false, DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(solveResp{Error: err.Error(), DurationMs: st.Duration.Milliseconds(), Nodes: st.Nodes})
		return
	}
	resp := solveResp{
		Feasible:     true,
		Instructions: sol.Instructions,
		Art:          sol.Art,
		DurationMs:   st.Duration.Milliseconds(),
		Nodes:        st.Nodes,
	}
	for _, pl := range sol.Placements {
		resp.Placements = append(resp.Placements, placementInfo{
			Domino:   pl.Domino.String(),
			Spot:     pl.Spot.String(),
			Reversed: pl.Reversed,
		})
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ---- Verify ----

type verifyReq struct {
	Text       string          `json:"text"`
	Placements []placementInfo `json:"placements"`
}

type verifyResp struct {
	OK         bool     `json:"ok"`
	Violations []string `json:"violations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req verifyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(verifyResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	puz, err := domain.ParsePuzzle(req.Text)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(verifyResp{Error: err.Error()})
		return
	}
	f, err := formulate.Formulate(puz)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(verifyResp{Error: err.Error()})
		return
	}
	a, err := assignmentFor(f, req.Placements)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(verifyResp{Error: err.Error()})
		return
	}
	ok, violations, err := h.UC.Verify(r.Context(), f, a)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(verifyResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(verifyResp{OK: ok, Violations: violations})
}

// assignmentFor marks the submitted placements as chosen and everything
// else as unchosen.
func assignmentFor(f *formulate.Formulation, placements []placementInfo) (program.Assignment, error) {
	a := make(program.Assignment, f.Program.NumVars())
	for _, info := range placements {
		found := false
		for _, pl := range f.Placements {
			if pl.Domino.String() == info.Domino && pl.Spot.String() == info.Spot && pl.Reversed == info.Reversed {
				a[pl.Var.ID()] = 1
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("no such placement: %s at %s", info.Domino, info.Spot)
		}
	}
	return a, nil
}

// ---- Generate ----

type generateReq struct {
	Seed int64 `json:"seed,omitempty"`
	Rows int   `json:"rows,omitempty"`
	Cols int   `json:"cols,omitempty"`
}

type generateResp struct {
	Text       string `json:"text,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	DurationMs int64  `json:"durationMs,omitempty"`
	Nodes      int64  `json:"nodes,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req generateReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err.Error() != "EOF" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(generateResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rows, cols := req.Rows, req.Cols
	if rows == 0 {
		rows = 4
	}
	if cols == 0 {
		cols = 4
	}
	gp, st, err := h.UC.Generate(r.Context(), seed, rows, cols)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(generateResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(generateResp{
		Text:       gp.Text,
		Seed:       seed,
		DurationMs: st.Duration.Milliseconds(),
		Nodes:      st.Nodes,
	})
}

// ---- Hint ----

type hintReq struct {
	Text string `json:"text"`
}

type hintResp struct {
	Found   bool   `json:"found"`
	Message string `json:"message,omitempty"`
	Domino  string `json:"domino,omitempty"`
	Spot    string `json:"spot,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (h *Handler) handleHint(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req hintReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(hintResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	puz, err := domain.ParsePuzzle(req.Text)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(hintResp{Error: err.Error()})
		return
	}
	hh, ok, err := h.UC.Hint(r.Context(), puz)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(hintResp{Error: err.Error()})
		return
	}
	resp := hintResp{Found: ok}
	if ok {
		resp.Message = hh.Message
		resp.Domino = hh.Placement.Domino.String()
		resp.Spot = hh.Placement.Spot.String()
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// ---- Save / Load / List ----

type saveResp struct {
	ID    string `json:"id,omitempty"`
	Error string `json:"error,omitempty"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var rec ports.PuzzleRecord
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(saveResp{Error: "invalid JSON: " + err.Error()})
		return
	}
	if rec.ID == "" {
		rec.ID = strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixNano()
	}
	if err := h.UC.Save(r.Context(), &rec); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(saveResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(saveResp{ID: rec.ID})
}

type loadReq struct {
	ID string `json:"id"`
}
type loadResp struct {
	Puzzle *ports.PuzzleRecord `json:"puzzle,omitempty"`
	Error  string              `json:"error,omitempty"`
}

func (h *Handler) handleLoad(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodPost {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	var req loadReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ID == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(loadResp{Error: "invalid JSON or missing id"})
		return
	}
	rec, err := h.UC.Load(r.Context(), req.ID)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(loadResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(loadResp{Puzzle: rec})
}

type listResp struct {
	Puzzles []ports.PuzzleMeta `json:"puzzles"`
	Error   string             `json:"error,omitempty"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if r.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	ps, err := h.UC.List(r.Context())
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(listResp{Error: err.Error()})
		return
	}
	_ = json.NewEncoder(w).Encode(listResp{Puzzles: ps})
}
