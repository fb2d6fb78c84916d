package formclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestCheckTitle(t *testing.T) {
	var gotQuery string
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forms/check-title", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		jsonResponse(t, w, http.StatusOK, map[string]bool{"unique": true})
	}))
	defer srv.Close()

	c := New(srv.URL, "test-token", nil)
	unique, err := c.CheckTitle(context.Background(), "Anket 2026", 5)
	require.NoError(t, err)
	assert.True(t, unique)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.Contains(t, gotQuery, "title=Anket+2026")
	assert.Contains(t, gotQuery, "excludeId=5")
}

func TestCheckTitleOmitsZeroExcludeID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.URL.Query().Get("excludeId"))
		jsonResponse(t, w, http.StatusOK, map[string]bool{"unique": false})
	}))
	defer srv.Close()

	unique, err := New(srv.URL, "", nil).CheckTitle(context.Background(), "Anket", 0)
	require.NoError(t, err)
	assert.False(t, unique)
}

func TestSaveFormDecodesWrappedForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload FormPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "İletişim Formu", payload.Title)

		jsonResponse(t, w, http.StatusCreated, map[string]any{
			"form": Form{ID: 42, Key: "a1b2c3d4e5f", Title: payload.Title, Status: "draft"},
		})
	}))
	defer srv.Close()

	form, err := New(srv.URL, "tkn", nil).SaveForm(context.Background(), FormPayload{
		Title:  "İletişim Formu",
		Fields: []FieldPayload{{ID: "fld_abcdefghijkl", Type: "text", Label: "Ad", Name: "ad"}},
	})
	require.NoError(t, err)
	assert.Equal(t, uint(42), form.ID)
	assert.Equal(t, "a1b2c3d4e5f", form.Key)
}

func TestGetFormSendsNoCache(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forms/9", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		jsonResponse(t, w, http.StatusOK, map[string]any{"form": Form{ID: 9}})
	}))
	defer srv.Close()

	form, err := New(srv.URL, "tkn", nil).GetForm(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, uint(9), form.ID)
}

func TestAPIErrorDecoding(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusForbidden, map[string]string{"error": "bu form size ait değil"})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tkn", nil).GetForm(context.Background(), 1)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "bu form size ait değil", apiErr.Message)
	assert.Equal(t, "bu form size ait değil", apiErr.Error())
}

func TestAPIErrorWithoutJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tkn", nil).GetForm(context.Background(), 1)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
	assert.Contains(t, apiErr.Error(), "502")
}

func TestDecodeJSONRejectsNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("tamam"))
	}))
	defer srv.Close()

	// 200 ama JSON değil: çözme hatası dönmeli, sessizce geçilmemeli.
	_, err := New(srv.URL, "tkn", nil).GetForm(context.Background(), 1)
	require.Error(t, err)
	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
}

func TestReorderFieldsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forms/3/fields/reorder", r.URL.Path)
		var body map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 0, body["from"])
		assert.Equal(t, 2, body["to"])
		jsonResponse(t, w, http.StatusOK, map[string]any{"form": Form{ID: 3}})
	}))
	defer srv.Close()

	_, err := New(srv.URL, "tkn", nil).ReorderFields(context.Background(), 3, 0, 2)
	require.NoError(t, err)
}

func TestSaveDraft(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/drafts", r.URL.Path)
		var payload DraftPayload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.True(t, payload.IsAutoSave)
		jsonResponse(t, w, http.StatusCreated, map[string]any{
			"draft": Draft{ID: 11, FormID: payload.FormID, IsAutoSave: true},
		})
	}))
	defer srv.Close()

	fid := uint(4)
	draft, err := New(srv.URL, "tkn", nil).SaveDraft(context.Background(), DraftPayload{
		FormID:     &fid,
		Title:      "Taslak",
		IsAutoSave: true,
	})
	require.NoError(t, err)
	assert.Equal(t, uint(11), draft.ID)
	require.NotNil(t, draft.FormID)
	assert.Equal(t, uint(4), *draft.FormID)
}

func TestVersionLifecyclePaths(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		switch r.URL.Path {
		case "/api/forms/2/versions":
			if r.Method == http.MethodPost {
				jsonResponse(t, w, http.StatusCreated, map[string]any{
					"version": Version{ID: 8, FormID: 2, VersionNumber: 1},
				})
				return
			}
			jsonResponse(t, w, http.StatusOK, map[string]any{
				"versions": []Version{{ID: 8, FormID: 2, VersionNumber: 1}},
			})
		case "/api/versions/8/publish", "/api/versions/8/rollback":
			var body map[string]uint
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, uint(2), body["formId"])
			jsonResponse(t, w, http.StatusOK, map[string]any{
				"version": Version{ID: 8, FormID: 2, VersionNumber: 1, IsPublished: true},
			})
		default:
			t.Fatalf("beklenmeyen istek: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tkn", nil)
	ctx := context.Background()

	version, err := c.CreateVersion(ctx, 2, "ilk sürüm")
	require.NoError(t, err)
	assert.Equal(t, 1, version.VersionNumber)

	published, err := c.PublishVersion(ctx, 2, 8)
	require.NoError(t, err)
	assert.True(t, published.IsPublished)

	_, err = c.RollbackVersion(ctx, 2, 8)
	require.NoError(t, err)

	versions, err := c.ListVersions(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	assert.Equal(t, []string{
		"POST /api/forms/2/versions",
		"POST /api/versions/8/publish",
		"POST /api/versions/8/rollback",
		"GET /api/forms/2/versions",
	}, paths)
}

func TestListDrafts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forms/6/drafts", r.URL.Path)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		jsonResponse(t, w, http.StatusOK, map[string]any{
			"drafts": []Draft{{ID: 1}, {ID: 2, IsAutoSave: true}},
		})
	}))
	defer srv.Close()

	drafts, err := New(srv.URL, "tkn", nil).ListDrafts(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.True(t, drafts[1].IsAutoSave)
}

func TestDeleteForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/forms/13", r.URL.Path)
		jsonResponse(t, w, http.StatusOK, map[string]bool{"ok": true})
	}))
	defer srv.Close()

	require.NoError(t, New(srv.URL, "tkn", nil).DeleteForm(context.Background(), 13))
}

func TestBaseURLTrailingSlashTrimmed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/forms/1", r.URL.Path)
		jsonResponse(t, w, http.StatusOK, map[string]any{"form": Form{ID: 1}})
	}))
	defer srv.Close()

	_, err := New(srv.URL+"/", "tkn", nil).GetForm(context.Background(), 1)
	require.NoError(t, err)
}
