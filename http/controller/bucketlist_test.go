package controller_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tnqbao/gau-bucketlist-service/entity"
)

func TestCreateBucketlist_LowercasesName(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")

	createBucketlist(t, router, token, "Travel")

	w := doRequest(t, router, http.MethodGet, "/api/v1/bucketlist/bucketlists", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	list := body["Bucketlists"].([]interface{})
	require.Len(t, list, 1)

	entry := list[0].(map[string]interface{})
	assert.Equal(t, "travel", entry["name"])
	assert.Equal(t, "admin", entry["created_by"])
	assert.Equal(t, time.Now().Format("2006-01-02"), entry["date_created"])
	assert.Equal(t, "1 of 1", body["Page"])
}

func TestCreateBucketlist_DuplicateName(t *testing.T) {
	router, ctrl := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")

	createBucketlist(t, router, token, "Travel")

	// Same name again, differing only in case, still conflicts and
	// leaves the store unchanged.
	for _, name := range []string{"Travel", "travel", "TRAVEL"} {
		w := doRequest(t, router, http.MethodPost, "/api/v1/bucketlist/bucketlists", token, gin.H{"name": name})
		assert.Equal(t, http.StatusConflict, w.Code, name)
	}

	// Names are unique across the whole store, so another user collides too.
	otherToken := registerUser(t, router, "other", "pw")
	w := doRequest(t, router, http.MethodPost, "/api/v1/bucketlist/bucketlists", otherToken, gin.H{"name": "Travel"})
	assert.Equal(t, http.StatusConflict, w.Code)

	assert.EqualValues(t, 1, countRows(t, ctrl, &entity.Bucketlist{}, "name = ?", "travel"))
}

func TestCreateBucketlist_MissingName(t *testing.T) {
	router, ctrl := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")

	w := doRequest(t, router, http.MethodPost, "/api/v1/bucketlist/bucketlists", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.EqualValues(t, 0, countRows(t, ctrl, &entity.Bucketlist{}, ""))
}

func TestGetBucketlist_Detail(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")
	id := createBucketlist(t, router, token, "Travel")
	createItem(t, router, token, id, "Tokyo")

	w := doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/bucketlist/bucketlists/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.EqualValues(t, id, body["id"])
	assert.Equal(t, "travel", body["name"])
	assert.Equal(t, "admin", body["created_by"])

	today := time.Now().Format("2006-01-02")
	assert.Equal(t, today, body["date_created"])
	assert.Equal(t, today, body["date_modified"])

	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "tokyo", item["name"])
	assert.Equal(t, false, item["done"])
}

func TestGetBucketlist_NotFound(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")

	for _, path := range []string{
		"/api/v1/bucketlist/bucketlists/99",
		"/api/v1/bucketlist/bucketlists/abc",
	} {
		w := doRequest(t, router, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}

func TestBucketlist_OtherUsersResourcesAreInvisible(t *testing.T) {
	router, ctrl := newTestServer(t)
	ownerToken := registerUser(t, router, "owner", "pw")
	id := createBucketlist(t, router, ownerToken, "Travel")

	intruderToken := registerUser(t, router, "intruder", "pw")
	path := fmt.Sprintf("/api/v1/bucketlist/bucketlists/%d", id)

	// Not-owned and nonexistent must be indistinguishable: always 404.
	w := doRequest(t, router, http.MethodGet, path, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodPut, path, intruderToken, gin.H{"name": "stolen"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(t, router, http.MethodDelete, path, intruderToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.EqualValues(t, 1, countRows(t, ctrl, &entity.Bucketlist{}, "name = ?", "travel"))
}

func TestUpdateBucketlist(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")
	id := createBucketlist(t, router, token, "Travel")
	createBucketlist(t, router, token, "Books")
	path := fmt.Sprintf("/api/v1/bucketlist/bucketlists/%d", id)

	t.Run("rename succeeds", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, path, token, gin.H{"name": "Adventures"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doRequest(t, router, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "adventures", decodeBody(t, w)["name"])
	})

	t.Run("unchanged name is a conflict", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, path, token, gin.H{"name": "ADVENTURES"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("rename onto another bucketlist is a conflict", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, path, token, gin.H{"name": "books"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		w := doRequest(t, router, http.MethodPut, path, token, gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteBucketlist_CascadesToItems(t *testing.T) {
	router, ctrl := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")
	id := createBucketlist(t, router, token, "Travel")
	createItem(t, router, token, id, "Tokyo")
	createItem(t, router, token, id, "Nairobi")

	keptID := createBucketlist(t, router, token, "Books")
	createItem(t, router, token, keptID, "Dune")

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/bucketlist/bucketlists/%d", id), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	assert.EqualValues(t, 0, countRows(t, ctrl, &entity.Item{}, "bucketlist_id = ?", id))
	assert.EqualValues(t, 1, countRows(t, ctrl, &entity.Item{}, "bucketlist_id = ?", keptID))

	// The items collection of a deleted bucketlist is gone with it.
	w = doRequest(t, router, http.MethodGet, fmt.Sprintf("/api/v1/bucketlist/bucketlists/%d/items", id), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListBucketlists_PaginationClampsPastEnd(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")
	for i := 1; i <= 5; i++ {
		createBucketlist(t, router, token, fmt.Sprintf("list-%d", i))
	}

	w := doRequest(t, router, http.MethodGet, "/api/v1/bucketlist/bucketlists?limit=2&page=5", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "3 of 3", body["Page"])
	assert.Equal(t, false, body["has_next"])
	assert.Equal(t, true, body["has_prev"])

	// Newest-first ordering puts the oldest bucketlist alone on the
	// last page.
	list := body["Bucketlists"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "list-1", list[0].(map[string]interface{})["name"])
}

func TestListBucketlists_Search(t *testing.T) {
	router, _ := newTestServer(t)
	token := registerUser(t, router, "admin", "admin")
	createBucketlist(t, router, token, "Travel Plans")
	createBucketlist(t, router, token, "Books")

	w := doRequest(t, router, http.MethodGet, "/api/v1/bucketlist/bucketlists?q=TRAV", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["Bucketlists"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "travel plans", list[0].(map[string]interface{})["name"])

	// A filter with no matches short-circuits to an empty list.
	w = doRequest(t, router, http.MethodGet, "/api/v1/bucketlist/bucketlists?q=nomatch", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Empty(t, body["Bucketlists"])
	assert.NotContains(t, body, "Page")
}

func TestListBucketlists_OnlyOwn(t *testing.T) {
	router, _ := newTestServer(t)
	aliceToken := registerUser(t, router, "alice", "pw")
	bobToken := registerUser(t, router, "bob", "pw")
	createBucketlist(t, router, aliceToken, "alice-things")
	createBucketlist(t, router, bobToken, "bob-things")

	w := doRequest(t, router, http.MethodGet, "/api/v1/bucketlist/bucketlists", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decodeBody(t, w)["Bucketlists"].([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "alice-things", list[0].(map[string]interface{})["name"])
}
