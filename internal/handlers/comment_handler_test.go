package handlers_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"DocKeeper/internal/model"

	"github.com/stretchr/testify/assert"
)

type commentResponse struct {
	ID       int64  `json:"id"`
	AuthorID int64  `json:"author_id"`
	Author   string `json:"author"`
	Body     string `json:"body"`
}

func TestComments_AddListDelete(t *testing.T) {
	env := newWebEnv(t)
	_, ownerCookies := env.register(t, "owner", model.RoleMember)
	readerID, readerCookies := env.register(t, "reader", model.RoleViewer)

	up := env.uploadDocument(t, ownerCookies, "Doc", "doc.pdf", "data", nil)
	var doc documentResponse
	assert.NoError(t, json.Unmarshal(up.Body.Bytes(), &doc))

	add := env.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/comments", doc.ID),
		jsonBody(`{"body":"nice doc"}`), readerCookies, "application/json")
	assert.Equal(t, http.StatusCreated, add.Code)
	var c commentResponse
	assert.NoError(t, json.Unmarshal(add.Body.Bytes(), &c))
	assert.Equal(t, readerID, c.AuthorID)

	list := env.do(t, http.MethodGet, fmt.Sprintf("/api/documents/%d/comments", doc.ID), nil, ownerCookies, "")
	assert.Equal(t, http.StatusOK, list.Code)
	var comments []commentResponse
	assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &comments))
	if assert.Len(t, comments, 1) {
		assert.Equal(t, "nice doc", comments[0].Body)
		assert.Equal(t, "reader", comments[0].Author)
	}

	// владелец документа удаляет чужой комментарий
	del := env.do(t, http.MethodDelete, fmt.Sprintf("/api/comments/%d", c.ID), nil, ownerCookies, "")
	assert.Equal(t, http.StatusNoContent, del.Code)
}

func TestComments_ShareTokenGrantsAccessToPrivateDoc(t *testing.T) {
	env := newWebEnv(t)
	_, ownerCookies := env.register(t, "owner", model.RoleMember)
	_, otherCookies := env.register(t, "other", model.RoleMember)

	up := env.uploadDocument(t, ownerCookies, "Secret", "secret.pdf", "data",
		map[string]string{"is_private": "true"})
	var doc documentResponse
	assert.NoError(t, json.Unmarshal(up.Body.Bytes(), &doc))

	// без токена — 403
	rr := env.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/comments", doc.ID),
		jsonBody(`{"body":"hi"}`), otherCookies, "application/json")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	share := createShare(t, env, ownerCookies, doc.ID, `{}`)

	rr = env.do(t, http.MethodPost,
		fmt.Sprintf("/api/documents/%d/comments?token=%s", doc.ID, share.Token),
		jsonBody(`{"body":"via link"}`), otherCookies, "application/json")
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestNotifications_FeedAndReadAll(t *testing.T) {
	env := newWebEnv(t)
	_, ownerCookies := env.register(t, "owner", model.RoleMember)
	_, readerCookies := env.register(t, "reader", model.RoleMember)

	up := env.uploadDocument(t, ownerCookies, "Doc", "doc.pdf", "data", nil)
	var doc documentResponse
	assert.NoError(t, json.Unmarshal(up.Body.Bytes(), &doc))

	add := env.do(t, http.MethodPost, fmt.Sprintf("/api/documents/%d/comments", doc.ID),
		jsonBody(`{"body":"ping"}`), readerCookies, "application/json")
	assert.Equal(t, http.StatusCreated, add.Code)

	var feed struct {
		Notifications []struct {
			ID   int64  `json:"id"`
			Type string `json:"type"`
		} `json:"notifications"`
		UnreadCount int64 `json:"unread_count"`
	}

	list := env.do(t, http.MethodGet, "/api/notifications", nil, ownerCookies, "")
	assert.Equal(t, http.StatusOK, list.Code)
	assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &feed))
	assert.Len(t, feed.Notifications, 2) // upload + comment
	assert.Equal(t, int64(2), feed.UnreadCount)

	read := env.do(t, http.MethodPost,
		fmt.Sprintf("/api/notifications/%d/read", feed.Notifications[0].ID), nil, ownerCookies, "")
	assert.Equal(t, http.StatusNoContent, read.Code)

	all := env.do(t, http.MethodPost, "/api/notifications/read-all", nil, ownerCookies, "")
	assert.Equal(t, http.StatusNoContent, all.Code)

	list = env.do(t, http.MethodGet, "/api/notifications", nil, ownerCookies, "")
	assert.NoError(t, json.Unmarshal(list.Body.Bytes(), &feed))
	assert.Equal(t, int64(0), feed.UnreadCount)
}
