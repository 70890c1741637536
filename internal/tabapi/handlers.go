package tabapi

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dekarrin/tableau/internal/tabauth"
	"github.com/dekarrin/tableau/internal/tabledb"
	"github.com/dekarrin/tableau/internal/tableau"
)

// TokenRequest is the body of POST /v1/token.
type TokenRequest struct {
	APIKey string `json:"api_key"`
}

// TokenResponse is the body of a successful POST /v1/token response.
type TokenResponse struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

func (api API) epCreateToken(req *http.Request) Result {
	var body TokenRequest
	if err := parseJSON(req, &body); err != nil {
		return BadRequest(err.Error(), err.Error())
	}
	if body.APIKey == "" {
		return BadRequest("api_key: property is empty or missing from request", "empty api_key")
	}

	name, err := tabauth.Authenticate(api.Keys, body.APIKey)
	if err != nil {
		return Unauthorized("the supplied API key is incorrect", err.Error())
	}

	tok, expires, err := tabauth.IssueToken(api.JWTSecret, name, api.TokenTTL)
	if err != nil {
		return InternalServerError("could not generate token: " + err.Error())
	}

	return Created(TokenResponse{Token: tok, Expires: expires}, "API key '"+name+"' exchanged for token")
}

// SolveRequest is the body of POST /v1/solve.
type SolveRequest struct {
	Formula    string   `json:"formula"`
	Directives []string `json:"directives"`
}

// SolveResponse is the body of a successful POST /v1/solve response.
type SolveResponse struct {
	Canonical      string `json:"canonical"`
	Classification string `json:"classification,omitempty"`
	Verdict        string `json:"verdict,omitempty"`
}

func (api API) epSolve(req *http.Request) Result {
	var body SolveRequest
	if err := parseJSON(req, &body); err != nil {
		return BadRequest(err.Error(), err.Error())
	}
	if body.Formula == "" {
		return BadRequest("formula: property is empty or missing from request", "empty formula")
	}

	wantParse, wantSAT := false, false
	for _, d := range body.Directives {
		switch strings.ToUpper(strings.TrimSpace(d)) {
		case "PARSE":
			wantParse = true
		case "SAT":
			wantSAT = true
		}
	}
	if !wantParse && !wantSAT {
		wantParse, wantSAT = true, true
	}

	res, err := tableau.Parse(body.Formula)
	if err != nil {
		msg := body.Formula + " is not a formula."
		return BadRequest(msg, err.Error())
	}

	canonical := tableau.Print(res.Formula)

	resp := SolveResponse{Canonical: canonical}
	if wantParse {
		resp.Classification = tableau.Classify(canonical, res)
	}
	if wantSAT {
		fp := fingerprint(canonical, "SAT")

		if cached, err := api.History.Get(req.Context(), fp); err == nil {
			resp.Verdict = cached.Verdict
			return OK(resp, "served cached verdict for "+canonical)
		} else if !errors.Is(err, tabledb.ErrNotFound) {
			return InternalServerError("history lookup failed: " + err.Error())
		}

		verdict := tableau.Solve(res.Formula)
		resp.Verdict = tableau.VerdictSentence(canonical, verdict)

		rec := tabledb.Record{
			Fingerprint:    fp,
			Canonical:      canonical,
			Directive:      "SAT",
			Verdict:        resp.Verdict,
			Classification: resp.Classification,
			Created:        time.Now(),
		}
		if _, err := api.History.Put(req.Context(), rec); err != nil {
			return InternalServerError("could not record solve history: " + err.Error())
		}
	}

	return OK(resp, "solved "+canonical)
}

// HistoryResponse is the body of a successful GET /v1/history response.
type HistoryResponse struct {
	Records []HistoryEntry `json:"records"`
}

// HistoryEntry is one record as exposed over the API; it deliberately
// carries no API-key or hash material, only the solved-formula fields.
type HistoryEntry struct {
	Fingerprint string    `json:"fingerprint"`
	Canonical   string    `json:"canonical"`
	Verdict     string    `json:"verdict"`
	Created     time.Time `json:"created"`
}

func (api API) epHistory(req *http.Request) Result {
	limit := 20
	if raw := req.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return BadRequest("limit: must be a non-negative integer", "bad limit param: "+raw)
		}
		limit = n
	}

	recs, err := api.History.Recent(req.Context(), limit)
	if err != nil {
		return InternalServerError("could not retrieve history: " + err.Error())
	}

	entries := make([]HistoryEntry, len(recs))
	for i, rec := range recs {
		entries[i] = HistoryEntry{
			Fingerprint: rec.Fingerprint,
			Canonical:   rec.Canonical,
			Verdict:     rec.Verdict,
			Created:     rec.Created,
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})

	return OK(HistoryResponse{Records: entries}, "returned "+strconv.Itoa(len(entries))+" history records")
}

// fingerprint derives the history/cache key for a canonical formula and the
// directive requested of it.
func fingerprint(canonical, directive string) string {
	sum := sha256.Sum256([]byte(canonical + "|" + directive))
	return hex.EncodeToString(sum[:])
}
