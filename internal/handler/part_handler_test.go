package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bitforge/plm/internal/repository"
	"github.com/bitforge/plm/internal/service"
	"github.com/bitforge/plm/internal/testutil"
)

func setupPartTest(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)

	partRepo := repository.NewPartRepository(db)
	partSvc := service.NewPartService(partRepo)
	partHandler := NewPartHandler(partSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	parts := api.Group("/parts")
	parts.GET("", partHandler.List)
	parts.POST("", partHandler.Create)
	parts.GET("/:id", partHandler.Get)
	parts.PUT("/:id", partHandler.Update)
	parts.POST("/:id/release", partHandler.Release)
	parts.POST("/:id/revise", partHandler.Revise)
	parts.POST("/:id/obsolete", partHandler.Obsolete)
	parts.GET("/:id/revisions", partHandler.ListRevisions)

	return router
}

func createPart(t *testing.T, router *gin.Engine, token, number, name string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/parts", map[string]interface{}{
		"part_number":    number,
		"name":           name,
		"lead_time_days": 7,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("create part: status %d body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestPartCreateRequiresAuth(t *testing.T) {
	router := setupPartTest(t)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/parts", map[string]interface{}{
		"part_number": "P-1000",
		"name":        "Bracket",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestPartLifecycle(t *testing.T) {
	router := setupPartTest(t)
	token := testutil.DefaultTestToken()

	data := createPart(t, router, token, "P-1000", "Bracket")
	id := data["id"].(string)
	if data["status"] != "draft" {
		t.Fatalf("new part status = %v, want draft", data["status"])
	}
	if data["revision"] != "A" {
		t.Fatalf("new part revision = %v, want A", data["revision"])
	}

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/parts/"+id+"/release", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("release: status %d body %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	released := resp["data"].(map[string]interface{})
	if released["status"] != "released" {
		t.Fatalf("released part status = %v", released["status"])
	}

	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/parts/"+id+"/revise",
		map[string]interface{}{"change_note": "drawing update"}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("revise: status %d body %s", w.Code, w.Body.String())
	}
	resp = testutil.ParseResponse(w)
	revised := resp["data"].(map[string]interface{})
	if revised["revision"] != "B" {
		t.Fatalf("revision after revise = %v, want B", revised["revision"])
	}
	if revised["status"] != "draft" {
		t.Fatalf("status after revise = %v, want draft", revised["status"])
	}

	w = testutil.DoRequest(router, http.MethodGet, "/api/v1/parts/"+id+"/revisions", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("revisions: status %d", w.Code)
	}
	resp = testutil.ParseResponse(w)
	revisions := resp["data"].([]interface{})
	if len(revisions) != 2 {
		t.Fatalf("revision history length = %d, want 2", len(revisions))
	}
}

func TestPartReleaseOnlyFromDraft(t *testing.T) {
	router := setupPartTest(t)
	token := testutil.DefaultTestToken()

	data := createPart(t, router, token, "P-2000", "Housing")
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/parts/"+id+"/release", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("first release: status %d", w.Code)
	}
	w = testutil.DoRequest(router, http.MethodPost, "/api/v1/parts/"+id+"/release", nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second release: status %d, want 400", w.Code)
	}
}

func TestPartObsoleteBlocksUpdate(t *testing.T) {
	router := setupPartTest(t)
	token := testutil.DefaultTestToken()

	data := createPart(t, router, token, "P-3000", "Gasket")
	id := data["id"].(string)

	w := testutil.DoRequest(router, http.MethodPost, "/api/v1/parts/"+id+"/obsolete", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("obsolete: status %d", w.Code)
	}

	w = testutil.DoRequest(router, http.MethodPut, "/api/v1/parts/"+id,
		map[string]interface{}{"name": "Gasket v2"}, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("update obsolete part: status %d, want 400", w.Code)
	}
}

func TestPartListFilters(t *testing.T) {
	router := setupPartTest(t)
	token := testutil.DefaultTestToken()

	createPart(t, router, token, "P-4000", "Shaft")
	data := createPart(t, router, token, "P-4001", "Bearing")
	id := data["id"].(string)
	testutil.DoRequest(router, http.MethodPost, "/api/v1/parts/"+id+"/release", nil, token)

	w := testutil.DoRequest(router, http.MethodGet, "/api/v1/parts?status=released", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("list: status %d", w.Code)
	}
	resp := testutil.ParseResponse(w)
	listData := resp["data"].(map[string]interface{})
	if int(listData["total"].(float64)) != 1 {
		t.Fatalf("filtered total = %v, want 1", listData["total"])
	}
}
