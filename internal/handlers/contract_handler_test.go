package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/digitalagency-id/agency_be/internal/contracts"
	"github.com/digitalagency-id/agency_be/internal/repository"
)

func newContractApp(t *testing.T) *fiber.App {
	t.Helper()
	repo := repository.NewMemoryContractRepository()
	svc := contracts.NewService(repo, nil, zap.NewNop())
	h := NewContractHandler(svc)

	app := fiber.New()
	app.Get("/contracts", h.List)
	app.Get("/contracts/:id", h.Get)
	app.Post("/contracts", h.Create)
	app.Put("/contracts/:id", h.Update)
	app.Post("/contracts/:id/sign", h.Sign)
	app.Post("/contracts/:id/complete", h.Complete)
	app.Post("/contracts/:id/cancel", h.Cancel)
	app.Post("/contracts/:id/renew", h.Renew)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func createContract(t *testing.T, app *fiber.App) map[string]interface{} {
	t.Helper()
	code, out := doJSON(t, app, http.MethodPost, "/contracts", fiber.Map{
		"custom_client_name": "Acme",
		"body":               "services as agreed",
		"terms":              []string{"net 30"},
		"start_date":         "2024-01-01",
		"end_date":           "2024-12-31",
	})
	require.Equal(t, http.StatusCreated, code)
	require.Equal(t, true, out["success"])
	return out["data"].(map[string]interface{})
}

func actions(data map[string]interface{}) []string {
	var out []string
	for _, a := range data["actions"].([]interface{}) {
		out = append(out, a.(string))
	}
	return out
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	app := newContractApp(t)

	code, out := doJSON(t, app, http.MethodPost, "/contracts", fiber.Map{
		"custom_client_name": "Acme",
		"start_date":         "2024-01-01",
		"end_date":           "2023-12-31",
	})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, out["success"])
	assert.Equal(t, "End date must be after start date", out["message"])

	// nothing was created
	_, list := doJSON(t, app, http.MethodGet, "/contracts", nil)
	assert.Empty(t, list["data"])
}

func TestActionsFollowStatus(t *testing.T) {
	app := newContractApp(t)
	data := createContract(t, app)

	assert.Equal(t, "draft", data["status"])
	assert.ElementsMatch(t, []string{"sign", "cancel"}, actions(data))

	id := data["id"].(string)
	_, out := doJSON(t, app, http.MethodPost, "/contracts/"+id+"/sign", nil)
	require.Equal(t, true, out["success"])
	signed := out["data"].(map[string]interface{})
	assert.Equal(t, "active", signed["status"])
	assert.NotEmpty(t, signed["signed_date"])
	assert.ElementsMatch(t, []string{"complete", "cancel", "renew"}, actions(signed))

	// active no longer offers sign, and the endpoint refuses it too
	_, out = doJSON(t, app, http.MethodPost, "/contracts/"+id+"/sign", nil)
	assert.Equal(t, false, out["success"])
}

func TestRenewFlow(t *testing.T) {
	app := newContractApp(t)
	data := createContract(t, app)
	id := data["id"].(string)

	_, out := doJSON(t, app, http.MethodPost, "/contracts/"+id+"/sign", nil)
	require.Equal(t, true, out["success"])

	// invalid period is rejected locally
	_, out = doJSON(t, app, http.MethodPost, "/contracts/"+id+"/renew", fiber.Map{
		"start_date": "2025-01-01",
		"end_date":   "2024-12-31",
	})
	assert.Equal(t, false, out["success"])

	_, out = doJSON(t, app, http.MethodPost, "/contracts/"+id+"/renew", fiber.Map{
		"start_date": "2025-01-01",
		"end_date":   "2025-12-31",
	})
	require.Equal(t, true, out["success"])
	renewed := out["data"].(map[string]interface{})
	assert.Equal(t, "renewed", renewed["status"])
	assert.Contains(t, actions(renewed), "complete")

	_, out = doJSON(t, app, http.MethodPost, "/contracts/"+id+"/complete", nil)
	require.Equal(t, true, out["success"])
	completed := out["data"].(map[string]interface{})
	assert.Equal(t, "completed", completed["status"])
	assert.Empty(t, actions(completed))
}

func TestCancelWithReason(t *testing.T) {
	app := newContractApp(t)
	data := createContract(t, app)
	id := data["id"].(string)

	_, out := doJSON(t, app, http.MethodPost, "/contracts/"+id+"/cancel", fiber.Map{
		"reason": "client pulled out",
	})
	require.Equal(t, true, out["success"])
	cancelled := out["data"].(map[string]interface{})
	assert.Equal(t, "cancelled", cancelled["status"])
	assert.Contains(t, cancelled["note"], "client pulled out")
	assert.Empty(t, actions(cancelled))
}

func TestListFiltersByStatus(t *testing.T) {
	app := newContractApp(t)

	first := createContract(t, app)
	createContract(t, app)

	id := first["id"].(string)
	_, out := doJSON(t, app, http.MethodPost, "/contracts/"+id+"/sign", nil)
	require.Equal(t, true, out["success"])

	_, list := doJSON(t, app, http.MethodGet, "/contracts?status=active", nil)
	rows := list["data"].([]interface{})
	require.Len(t, rows, 1)
	assert.Equal(t, id, rows[0].(map[string]interface{})["id"])

	_, list = doJSON(t, app, http.MethodGet, "/contracts?status=draft", nil)
	assert.Len(t, list["data"].([]interface{}), 1)

	_, list = doJSON(t, app, http.MethodGet, "/contracts", nil)
	assert.Len(t, list["data"].([]interface{}), 2)
	meta := list["meta"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["total"])
}

func TestGetUnknownContract(t *testing.T) {
	app := newContractApp(t)

	code, out := doJSON(t, app, http.MethodGet,
		fmt.Sprintf("/contracts/%s", "1b4e28ba-2fa1-11d2-883f-0016d3cca427"), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, false, out["success"])
}
