package handlers

import (
	"net/http"
	"strconv"

	"github.com/pageatlas/page-atlas/internal/config"
	"github.com/pageatlas/page-atlas/internal/grid"
)

// Reference page size used when the caller does not supply one: A4 at the
// default 96 DPI density, rounded.
const (
	defaultRefWidth  = 794
	defaultRefHeight = 1123
)

// LookupHandler translates between page numbers and cell addresses.
type LookupHandler struct {
	config *config.Config
}

// NewLookupHandler creates a new lookup handler.
func NewLookupHandler(cfg *config.Config) *LookupHandler {
	return &LookupHandler{config: cfg}
}

type lookupResponse struct {
	Rows       int    `json:"rows"`
	Columns    int    `json:"columns"`
	CellWidth  int    `json:"cell_width"`
	CellHeight int    `json:"cell_height"`
	Page       int    `json:"page"`
	Address    string `json:"address"`
}

// queryInt parses an integer query parameter with a fallback default.
func queryInt(r *http.Request, name string, defaultVal int) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal, nil
	}
	return strconv.Atoi(s)
}

// Lookup handles GET /api/v1/lookup?pages=N&page=P or &cell=C2, with
// optional start, refw and refh parameters.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	pages, err := queryInt(r, "pages", 0)
	if err != nil || pages <= 0 {
		respondError(w, http.StatusBadRequest, "pages must be a positive integer")
		return
	}
	start, err := queryInt(r, "start", 1)
	if err != nil {
		respondError(w, http.StatusBadRequest, "start must be an integer")
		return
	}
	refWidth, err := queryInt(r, "refw", defaultRefWidth)
	if err != nil {
		respondError(w, http.StatusBadRequest, "refw must be an integer")
		return
	}
	refHeight, err := queryInt(r, "refh", defaultRefHeight)
	if err != nil {
		respondError(w, http.StatusBadRequest, "refh must be an integer")
		return
	}

	pageParam := r.URL.Query().Get("page")
	cellParam := r.URL.Query().Get("cell")
	if (pageParam == "") == (cellParam == "") {
		respondError(w, http.StatusBadRequest, "exactly one of page or cell is required")
		return
	}

	layout, err := grid.PlanLayout(pages, refWidth, refHeight, h.config.Layout.PlanOptions())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	pairs, err := grid.CellToPage(start, pages, layout.Rows, layout.Columns)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	response := lookupResponse{
		Rows:       layout.Rows,
		Columns:    layout.Columns,
		CellWidth:  layout.CellWidth,
		CellHeight: layout.CellHeight,
	}

	if pageParam != "" {
		page, err := strconv.Atoi(pageParam)
		if err != nil {
			respondError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		inverse, err := grid.InvertMap(pairs)
		if err != nil {
			// Unreachable for maps built by CellToPage; a hit means the
			// mapper itself is broken.
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		address, ok := inverse[page]
		if !ok {
			respondError(w, http.StatusNotFound, "page is not on the sheet")
			return
		}
		response.Page = page
		response.Address = address
	} else {
		page, found := 0, false
		for _, cp := range pairs {
			if cp.Address == cellParam {
				page, found = cp.Page, true
				break
			}
		}
		if !found {
			if _, _, err := grid.ParseCellName(cellParam); err != nil {
				respondError(w, http.StatusBadRequest, "cell address is malformed")
				return
			}
			respondError(w, http.StatusNotFound, "cell is unoccupied or outside the grid")
			return
		}
		response.Page = page
		response.Address = cellParam
	}

	respondJSON(w, http.StatusOK, response)
}
