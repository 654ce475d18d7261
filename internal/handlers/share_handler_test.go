package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"DocKeeper/internal/model"

	"github.com/stretchr/testify/assert"
)

type shareResponse struct {
	ID            int64  `json:"id"`
	Token         string `json:"token"`
	Active        bool   `json:"active"`
	ExpiresAt     string `json:"expires_at"`
	ViewCount     int64  `json:"view_count"`
	DownloadCount int64  `json:"download_count"`
}

func createShare(t *testing.T, env *webEnv, cookies []*http.Cookie, docID int64, body string) shareResponse {
	t.Helper()
	rr := env.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/shares", docID),
		jsonBody(body), cookies, "application/json")
	assert.Equal(t, http.StatusCreated, rr.Code)
	var share shareResponse
	assert.NoError(t, json.Unmarshal(rr.Body.Bytes(), &share))
	return share
}

func TestShares_PublicViewAndDownloadWithoutAuth(t *testing.T) {
	env := newWebEnv(t)
	_, cookies := env.register(t, "owner", model.RoleMember)

	up := env.uploadDocument(t, cookies, "Shared", "shared.pdf", "shared body",
		map[string]string{"is_private": "true"})
	assert.Equal(t, http.StatusCreated, up.Code)
	var doc documentResponse
	assert.NoError(t, json.Unmarshal(up.Body.Bytes(), &doc))

	share := createShare(t, env, cookies, doc.ID, `{"expiry_days":7}`)
	assert.NotEmpty(t, share.Token)
	assert.NotEmpty(t, share.ExpiresAt)

	// просмотр и скачивание без какой-либо cookie
	view := env.do(t, http.MethodGet, "/shared/"+share.Token, nil, nil, "")
	assert.Equal(t, http.StatusOK, view.Code)
	var payload struct {
		Document documentResponse `json:"document"`
		Share    shareResponse    `json:"share"`
	}
	assert.NoError(t, json.Unmarshal(view.Body.Bytes(), &payload))
	assert.Equal(t, "Shared", payload.Document.Title)
	assert.Equal(t, int64(1), payload.Share.ViewCount)

	dl := env.do(t, http.MethodGet, "/shared/"+share.Token+"/download", nil, nil, "")
	assert.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "shared body", dl.Body.String())

	// счётчики видны владельцу в списке ссылок
	list := env.do(t, http.MethodGet, fmt.Sprintf("/api/documents/%d/shares", doc.ID), nil, cookies, "")
	assert.Equal(t, http.StatusOK, list.Code)
	var shares []shareResponse
	assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &shares))
	if assert.Len(t, shares, 1) {
		assert.Equal(t, int64(1), shares[0].ViewCount)
		assert.Equal(t, int64(1), shares[0].DownloadCount)
	}
}

// Невалидный токен отвечает 404 с одинаковым текстом, причина не раскрывается.
func TestShares_InvalidTokenIsGeneric404(t *testing.T) {
	env := newWebEnv(t)
	_, cookies := env.register(t, "owner", model.RoleMember)

	up := env.uploadDocument(t, cookies, "Doc", "doc.pdf", "data", nil)
	var doc documentResponse
	assert.NoError(t, json.Unmarshal(up.Body.Bytes(), &doc))
	share := createShare(t, env, cookies, doc.ID, `{}`)

	revoke := env.do(t, http.MethodPost, fmt.Sprintf("/api/shares/%d/revoke", share.ID), nil, cookies, "")
	assert.Equal(t, http.StatusNoContent, revoke.Code)

	for _, token := range []string{"missing-token", share.Token} {
		rr := env.do(t, http.MethodGet, "/shared/"+token, nil, nil, "")
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), "invalid or expired link")
	}
}

func TestShares_CreateForForeignDocumentForbidden(t *testing.T) {
	env := newWebEnv(t)
	_, ownerCookies := env.register(t, "owner", model.RoleMember)
	_, otherCookies := env.register(t, "other", model.RoleMember)

	up := env.uploadDocument(t, ownerCookies, "Doc", "doc.pdf", "data", nil)
	var doc documentResponse
	assert.NoError(t, json.Unmarshal(up.Body.Bytes(), &doc))

	rr := env.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/shares", doc.ID),
		jsonBody(`{"expiry_days":7}`), otherCookies, "application/json")
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
