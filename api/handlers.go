package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/TagStudioDev/TagStudio-sub002/liberr"
	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/logger"
	"github.com/TagStudioDev/TagStudio-sub002/model"
	"github.com/TagStudioDev/TagStudio-sub002/pathutil"
	"github.com/TagStudioDev/TagStudio-sub002/query"
	"github.com/TagStudioDev/TagStudio-sub002/refresh"
)

// Handlers wires HTTP endpoints to a Library.
type Handlers struct {
	lib           *library.Library
	scannerBinary string
}

// NewHandlers builds a Handlers bound to lib, preferring scannerBinary
// as the refresh tracker's external scanner.
func NewHandlers(lib *library.Library, scannerBinary string) *Handlers {
	return &Handlers{lib: lib, scannerBinary: scannerBinary}
}

// writeLibraryError maps a library/query error to an HTTP status and
// liberr kind, per the engine's error kind table.
func writeLibraryError(w http.ResponseWriter, err error) {
	var notFound *liberr.NotFound
	var conflict *liberr.ConflictingPath
	var reserved *liberr.ReservedNamespace
	var parseErr *liberr.ParseError
	var notImpl *liberr.NotImplemented
	var openFail *liberr.OpenFailure
	var ioFail *liberr.IOFailure

	switch {
	case errors.As(err, &notFound):
		RespondError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.As(err, &conflict):
		RespondError(w, http.StatusConflict, "conflicting_path", err.Error())
	case errors.As(err, &reserved):
		RespondError(w, http.StatusForbidden, "reserved_namespace", err.Error())
	case errors.As(err, &parseErr):
		RespondError(w, http.StatusBadRequest, "parse_error", err.Error())
	case errors.As(err, &notImpl):
		RespondError(w, http.StatusNotImplemented, "not_implemented", err.Error())
	case errors.As(err, &openFail):
		logger.Errorf("api: open failure: %v", err)
		RespondError(w, http.StatusInternalServerError, "open_failure", err.Error())
	case errors.As(err, &ioFail):
		logger.Errorf("api: io failure: %v", err)
		RespondError(w, http.StatusInternalServerError, "io_failure", err.Error())
	default:
		logger.Errorf("api: unhandled error: %v", err)
		RespondError(w, http.StatusInternalServerError, "internal", "internal error")
	}
}

// entryDTO is the wire form of model.Entry.
type entryDTO struct {
	ID           int64     `json:"id"`
	Path         string    `json:"path"`
	Suffix       string    `json:"suffix"`
	DateAdded    time.Time `json:"date_added"`
	DateCreated  time.Time `json:"date_created,omitempty"`
	DateModified time.Time `json:"date_modified,omitempty"`
}

func toEntryDTO(e model.Entry) entryDTO {
	return entryDTO{
		ID:           e.ID,
		Path:         e.Path,
		Suffix:       e.Suffix,
		DateAdded:    e.DateAdded,
		DateCreated:  e.DateCreated,
		DateModified: e.DateModified,
	}
}

// searchResponse is the wire form of model.SearchResult.
type searchResponse struct {
	TotalCount int        `json:"total_count"`
	Items      []entryDTO `json:"items"`
	Query      string     `json:"query"`
}

// Search handles GET /api/v1/search?q=&page=&page_size=&sort=&dir=
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.FilterState{
		Query:    q.Get("q"),
		Page:     atoiDefault(q.Get("page"), 0),
		PageSize: atoiDefault(q.Get("page_size"), 50),
		SortKey:  parseSortKey(q.Get("sort")),
		SortDir:  parseSortDir(q.Get("dir")),
	}

	result, err := h.lib.SearchLibrary(filter)
	if err != nil {
		writeLibraryError(w, err)
		return
	}

	ast, parseErr := query.Parse(filter.Query)
	normalized := filter.Query
	if parseErr == nil {
		normalized = query.Print(ast)
	}

	items := make([]entryDTO, len(result.Items))
	for i, e := range result.Items {
		items[i] = toEntryDTO(e)
	}
	RespondJSON(w, http.StatusOK, searchResponse{
		TotalCount: result.TotalCount,
		Items:      items,
		Query:      normalized,
	})
}

// tagRequest is the wire form accepted by create/update tag endpoints.
type tagRequest struct {
	Name          string   `json:"name"`
	Shorthand     string   `json:"shorthand"`
	IsCategory    bool     `json:"is_category"`
	ColorNamespace string  `json:"color_namespace"`
	ColorSlug     string   `json:"color_slug"`
	IconSlug      string   `json:"icon_slug"`
	ParentIDs     []int64  `json:"parent_ids"`
	AliasNames    []string `json:"alias_names"`
}

func (req tagRequest) toModel(id int64) model.Tag {
	t := model.Tag{
		ID:         id,
		Name:       req.Name,
		Shorthand:  req.Shorthand,
		IsCategory: req.IsCategory,
		IconSlug:   req.IconSlug,
		ParentIDs:  req.ParentIDs,
		AliasNames: req.AliasNames,
	}
	if req.ColorNamespace != "" || req.ColorSlug != "" {
		t.ColorGroup = &model.ColorGroupRef{Namespace: req.ColorNamespace, Slug: req.ColorSlug}
	}
	return t
}

// CreateTag handles POST /api/v1/tags.
func (h *Handlers) CreateTag(w http.ResponseWriter, r *http.Request) {
	var req tagRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, http.StatusBadRequest, "parse_error", "invalid request body")
		return
	}

	id, err := h.lib.AddTag(req.toModel(0))
	if err != nil {
		writeLibraryError(w, err)
		return
	}
	RespondJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

// UpdateTag handles PATCH /api/v1/tags/{id}.
func (h *Handlers) UpdateTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondError(w, http.StatusBadRequest, "parse_error", "invalid tag id")
		return
	}
	var req tagRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, http.StatusBadRequest, "parse_error", "invalid request body")
		return
	}

	if err := h.lib.UpdateTag(req.toModel(id)); err != nil {
		writeLibraryError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// DeleteTag handles DELETE /api/v1/tags/{id}.
func (h *Handlers) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(r, "id")
	if err != nil {
		RespondError(w, http.StatusBadRequest, "parse_error", "invalid tag id")
		return
	}
	if err := h.lib.RemoveTag(id); err != nil {
		writeLibraryError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// groupDTO is the wire form of model.Group.
type groupDTO struct {
	Key          string  `json:"key"`
	EntryIDs     []int64 `json:"entry_ids"`
	IsSpecial    bool    `json:"is_special"`
	SpecialLabel string  `json:"special_label,omitempty"`
}

// Groups handles GET /api/v1/groups?q=&by=tag|filetype&parent_tag=.
// The query string selects the entry set exactly as Search would, but
// unpaginated; by/parent_tag select the grouping criterion.
func (h *Handlers) Groups(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.FilterState{Query: q.Get("q")}
	result, err := h.lib.SearchLibrary(filter)
	if err != nil {
		writeLibraryError(w, err)
		return
	}
	ids := make([]int64, len(result.Items))
	for i, e := range result.Items {
		ids[i] = e.ID
	}

	var criterion model.GroupCriterion
	switch q.Get("by") {
	case "filetype":
		criterion.ByFiletype = true
	default:
		criterion.ByTag = true
		criterion.ParentTag = int64(atoiDefault(q.Get("parent_tag"), 0))
	}

	grouped, err := h.lib.Group(ids, criterion)
	if err != nil {
		writeLibraryError(w, err)
		return
	}

	groups := make([]groupDTO, len(grouped.Groups))
	for i, g := range grouped.Groups {
		groups[i] = groupDTO{Key: g.Key, EntryIDs: g.EntryIDs, IsSpecial: g.IsSpecial, SpecialLabel: g.SpecialLabel}
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"total_count": grouped.TotalCount,
		"groups":      groups,
	})
}

// refreshResponse reports one refresh cycle's outcome.
type refreshResponse struct {
	NewFilesSaved    int `json:"new_files_saved"`
	RelinkedCount    int `json:"relinked_count"`
	RemovedUnlinked  int `json:"removed_unlinked"`
}

// Refresh handles POST /api/v1/entries:refresh. It runs one full
// scan/relink/save/remove cycle synchronously against the library root.
func (h *Handlers) Refresh(w http.ResponseWriter, r *http.Request) {
	patterns, err := h.lib.IgnorePatterns()
	if err != nil {
		writeLibraryError(w, err)
		return
	}
	ignore, err := pathutil.CompilePatterns(patterns)
	if err != nil {
		RespondError(w, http.StatusBadRequest, "parse_error", "invalid stored ignore patterns: "+err.Error())
		return
	}

	tr := refresh.NewTracker(h.lib, refresh.NewRipgrepScanner(h.scannerBinary), refresh.WalkScanner{})
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Minute)
	defer cancel()

	if err := tr.Scan(ctx, h.lib.RootDir(), ignore, nil); err != nil {
		writeLibraryError(w, err)
		return
	}
	missingBefore := tr.MissingCount()
	if err := tr.Relink(); err != nil {
		writeLibraryError(w, err)
		return
	}
	relinked := missingBefore - tr.MissingCount()

	newCount := len(tr.NewPaths())
	if err := tr.SaveNewFiles(h.lib.RootFolderID(), nil); err != nil {
		writeLibraryError(w, err)
		return
	}
	removed := tr.MissingCount()
	if err := tr.RemoveUnlinkedEntries(); err != nil {
		writeLibraryError(w, err)
		return
	}

	RespondJSON(w, http.StatusOK, refreshResponse{
		NewFilesSaved:   newCount,
		RelinkedCount:   relinked,
		RemovedUnlinked: removed,
	})
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func pathInt64(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func parseSortKey(s string) model.SortKey {
	switch strings.ToLower(s) {
	case "date_added":
		return model.SortDateAdded
	case "date_created":
		return model.SortDateCreated
	case "date_modified":
		return model.SortDateModified
	case "name":
		return model.SortName
	default:
		return model.SortPath
	}
}

func parseSortDir(s string) model.SortDir {
	if strings.EqualFold(s, "desc") {
		return model.Desc
	}
	return model.Asc
}
