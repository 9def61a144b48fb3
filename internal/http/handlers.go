package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"finsight/internal/ingest"
	"finsight/internal/ledger"
	applog "finsight/internal/log"
)

// maxImportBytes caps the accepted CSV upload size.
const maxImportBytes = 10 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleAccounts returns the distinct account labels in the ledger.
func (s *Server) handleAccounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	accounts, err := s.analysis.Accounts(r.Context())
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Account listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "could not list accounts")
		return
	}
	if accounts == nil {
		accounts = []string{}
	}

	writeJSON(w, http.StatusOK, map[string][]string{"accounts": accounts})
}

// handleAnalysis runs the full analysis for one account. The account
// query parameter is required; start and end are optional dates that
// default to the account's full history.
func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	account := r.URL.Query().Get("account")
	if account == "" {
		writeError(w, http.StatusBadRequest, "account parameter is required")
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date")
		return
	}

	res, err := s.analysis.Analyze(r.Context(), account, start, end)
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Analysis failed",
			"account", account, "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, res)
}

// handleImport accepts CSV transaction rows, either as a multipart
// upload under the "file" field or as the raw request body.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := importBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "could not read upload")
		return
	}
	defer body.Close()

	summary, err := s.importer.ImportCSV(r.Context(), io.LimitReader(body, maxImportBytes))
	if err != nil {
		if errors.Is(err, ingest.ErrEmptyInput) || errors.Is(err, ingest.ErrMissingColumn) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if errors.Is(err, ledger.ErrReadOnly) {
			writeError(w, http.StatusConflict, "configured ledger backend is read-only")
			return
		}
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "import failed")
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// handleExport streams the ledger as CSV, optionally filtered to one
// account and a date range. The output round-trips through the import
// parser.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	start, err := parseDateParam(r, "start")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid start date")
		return
	}
	end, err := parseDateParam(r, "end")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid end date")
		return
	}

	ts, err := s.analysis.Transactions(r.Context(), r.URL.Query().Get("account"))
	if err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Export failed", "error", err)
		writeError(w, http.StatusInternalServerError, "export failed")
		return
	}
	ts = ts.InRange(start, end)

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	if err := ingest.WriteCSV(w, ts); err != nil {
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Export write failed", "error", err)
	}
}

func importBody(r *http.Request) (io.ReadCloser, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImportBytes); err != nil {
			return nil, err
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			return nil, err
		}
		return file, nil
	}
	return r.Body, nil
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return ingest.ParseDate(raw)
}
