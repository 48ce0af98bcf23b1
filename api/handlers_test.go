package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/TagStudioDev/TagStudio-sub002/api"
	"github.com/TagStudioDev/TagStudio-sub002/library"
	"github.com/TagStudioDev/TagStudio-sub002/model"
)

func openTestLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { lib.Close() })
	return lib
}

func TestSearchHandlerReturnsEntries(t *testing.T) {
	lib := openTestLibrary(t)
	if _, errs := lib.AddEntries(lib.RootFolderID(), []model.Entry{{Path: "a.txt"}, {Path: "b.txt"}}); errs[0] != nil || errs[1] != nil {
		t.Fatalf("AddEntries: %v %v", errs[0], errs[1])
	}

	router := api.NewRouter(lib, "rg")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/search?page_size=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}
	var body struct {
		TotalCount int `json:"total_count"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.TotalCount != 2 {
		t.Fatalf("total_count = %d, want 2", body.TotalCount)
	}
}

func TestCreateAndDeleteTagHandlers(t *testing.T) {
	lib := openTestLibrary(t)
	router := api.NewRouter(lib, "rg")

	createBody, _ := json.Marshal(map[string]string{"name": "Starred"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tags", bytes.NewReader(createBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201, body: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("created.ID is zero")
	}

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/tags/"+strconv.FormatInt(created.ID, 10), nil)
	delRec := httptest.NewRecorder()
	router.ServeHTTP(delRec, delReq)
	if delRec.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200, body: %s", delRec.Code, delRec.Body.String())
	}

	// Deleting again should now report a not-found error.
	delRec2 := httptest.NewRecorder()
	router.ServeHTTP(delRec2, httptest.NewRequest(http.MethodDelete, "/api/v1/tags/"+strconv.FormatInt(created.ID, 10), nil))
	if delRec2.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404, body: %s", delRec2.Code, delRec2.Body.String())
	}
}

func TestGroupsHandlerByFiletype(t *testing.T) {
	lib := openTestLibrary(t)
	if _, errs := lib.AddEntries(lib.RootFolderID(), []model.Entry{{Path: "a.jpg"}, {Path: "b.png"}}); errs[0] != nil || errs[1] != nil {
		t.Fatalf("AddEntries: %v %v", errs[0], errs[1])
	}

	router := api.NewRouter(lib, "rg")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/groups?by=filetype", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body: %s", rec.Code, rec.Body.String())
	}

	var body struct {
		TotalCount int `json:"total_count"`
		Groups     []struct {
			Key string `json:"key"`
		} `json:"groups"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.TotalCount != 2 || len(body.Groups) != 2 {
		t.Fatalf("body = %+v, want 2 entries in 2 buckets", body)
	}
}
