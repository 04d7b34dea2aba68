package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexbolts/hunt-tracker/internal/classify"
	"github.com/vexbolts/hunt-tracker/internal/config"
	"github.com/vexbolts/hunt-tracker/internal/host"
	"github.com/vexbolts/hunt-tracker/internal/ledger"
	"github.com/vexbolts/hunt-tracker/internal/menu"
	"github.com/vexbolts/hunt-tracker/internal/stats"
	"github.com/vexbolts/hunt-tracker/internal/store"
)

// envelope mirrors StandardResponse with a raw payload so each test can
// decode Data into its own type.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T) (*httptest.Server, *store.Store, *API) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Config{
		DataDir:        dir,
		DBPath:         filepath.Join(dir, config.DBFileName),
		TemplatePath:   filepath.Join(dir, config.TemplateFileName),
		ExportTemplate: filepath.Join(dir, config.ExportTmplName),
		ExportOutput:   filepath.Join(dir, config.ExportOutName),
	}
	logger := log.New(io.Discard, "", 0)
	st, err := store.Open(cfg, logger)
	require.NoError(t, err)
	t.Cleanup(st.Close)

	err = st.Write(func(tx *sql.Tx) error {
		if _, err := tx.Exec(
			`INSERT INTO Items (Name, Description, Points, Balance)
			VALUES ("Fixture Idol", "f", 1, "bal.idol")`,
		); err != nil {
			return err
		}
		_, err := tx.Exec(
			`INSERT INTO Drops (ItemBalance, EnemyClass, ExtraItemPool)
			VALUES ("bal.idol", NULL, NULL)`,
		)
		return err
	})
	require.NoError(t, err)

	engine, err := stats.NewEngine(st, logger)
	require.NoError(t, err)
	exporter := stats.NewExporter(engine, logger, cfg.ExportTemplate, cfg.ExportOutput)
	refresher := stats.NewRefresher(func() { exporter.Refresh() })
	refresher.Start()
	t.Cleanup(refresher.Stop)

	a := &API{
		Log:        logger,
		Store:      st,
		Classifier: classify.New(st, logger),
		Engine:     engine,
		Ledger:     ledger.New(st, logger),
		Menu:       menu.New(st, logger),
		Refresher:  refresher,
	}
	mux := http.NewServeMux()
	a.Routes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, st, a
}

func doJSON(t *testing.T, ts *httptest.Server, method, path string, body any) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, ts.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func TestHealth(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := ts.Client().Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestPickupThenLookAt(t *testing.T) {
	ts, st, _ := newTestServer(t)

	status, env := doJSON(t, ts, "POST", "/api/v1/events/pickup", host.PickupCreated{
		InstanceID: "inst-1",
		Category:   "Artifact",
		Balance:    "bal.idol",
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var pickup PickupResponse
	require.NoError(t, json.Unmarshal(env.Data, &pickup))
	assert.True(t, pickup.Pending)

	status, env = doJSON(t, ts, "POST", "/api/v1/events/lookat", host.LookedAt{
		InstanceID: "inst-1",
		Distance:   100,
	})
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var looked LookAtResponse
	require.NoError(t, json.Unmarshal(env.Data, &looked))
	assert.True(t, looked.Collected)
	require.NotNil(t, looked.Notice)
	assert.Equal(t, "Fixture Idol", looked.Notice.Title)

	collected, err := st.AlreadyCollected("bal.idol")
	require.NoError(t, err)
	assert.True(t, collected)
}

func TestPickupBadJSON(t *testing.T) {
	ts, _, _ := newTestServer(t)

	resp, err := ts.Client().Post(
		ts.URL+"/api/v1/events/pickup", "application/json",
		bytes.NewBufferString("{nope"),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTokensEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	status, env := doJSON(t, ts, "GET", "/api/v1/tokens", nil)
	require.Equal(t, http.StatusOK, status)

	var tokens TokensResponse
	require.NoError(t, json.Unmarshal(env.Data, &tokens))
	assert.Equal(t, 1, tokens.Available)
}

func TestOverlayEndpoint(t *testing.T) {
	ts, _, _ := newTestServer(t)

	status, env := doJSON(t, ts, "GET", "/api/v1/overlay", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, env.Success)

	var overlay OverlayResponse
	require.NoError(t, json.Unmarshal(env.Data, &overlay))
	assert.Len(t, overlay.Lines, 2)
}

func TestStatToggle(t *testing.T) {
	ts, _, _ := newTestServer(t)

	status, _ := doJSON(t, ts, "POST", "/api/v1/stats/toggle",
		ToggleRequest{ID: "tokens", Enabled: true})
	require.Equal(t, http.StatusOK, status)

	_, env := doJSON(t, ts, "GET", "/api/v1/overlay", nil)
	var overlay OverlayResponse
	require.NoError(t, json.Unmarshal(env.Data, &overlay))
	assert.Contains(t, overlay.Lines, "Tokens: 1")

	status, _ = doJSON(t, ts, "POST", "/api/v1/stats/toggle",
		ToggleRequest{ID: "nonsense", Enabled: true})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestRedeemEndpoints(t *testing.T) {
	ts, st, _ := newTestServer(t)

	status, env := doJSON(t, ts, "POST", "/api/v1/redeem/begin",
		RedeemBeginRequest{Balance: "bal.idol"})
	require.Equal(t, http.StatusOK, status)

	var confirm ConfirmResponse
	require.NoError(t, json.Unmarshal(env.Data, &confirm))
	assert.Equal(t, "Available Tokens: 1", confirm.Prompt)

	status, env = doJSON(t, ts, "POST", "/api/v1/redeem/confirm",
		ConfirmRequest{Handle: confirm.Handle})
	require.Equal(t, http.StatusOK, status)

	var redeemed RedeemResponse
	require.NoError(t, json.Unmarshal(env.Data, &redeemed))
	assert.Equal(t, "Fixture Idol", redeemed.Notice.Title)

	collected, err := st.AlreadyCollected("bal.idol")
	require.NoError(t, err)
	assert.True(t, collected)

	// Replays and repeat redemptions are both conflicts
	status, _ = doJSON(t, ts, "POST", "/api/v1/redeem/confirm",
		ConfirmRequest{Handle: confirm.Handle})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = doJSON(t, ts, "POST", "/api/v1/redeem/begin",
		RedeemBeginRequest{Balance: "bal.idol"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestWorldChangeCancelsRedeem(t *testing.T) {
	ts, _, _ := newTestServer(t)

	_, env := doJSON(t, ts, "POST", "/api/v1/redeem/begin",
		RedeemBeginRequest{Balance: "bal.idol"})
	var confirm ConfirmResponse
	require.NoError(t, json.Unmarshal(env.Data, &confirm))

	status, _ := doJSON(t, ts, "POST", "/api/v1/events/world-change",
		host.WorldChanged{WorldName: "City_P"})
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, ts, "POST", "/api/v1/redeem/confirm",
		ConfirmRequest{Handle: confirm.Handle})
	assert.Equal(t, http.StatusConflict, status)
}

func TestResetFlow(t *testing.T) {
	ts, st, _ := newTestServer(t)

	_, err := st.RecordCollection("bal.idol")
	require.NoError(t, err)

	// A confirm with no begin does nothing
	status, _ := doJSON(t, ts, "POST", "/api/v1/reset/confirm",
		ConfirmRequest{Handle: "never-issued"})
	assert.Equal(t, http.StatusConflict, status)

	status, env := doJSON(t, ts, "POST", "/api/v1/reset/begin", nil)
	require.Equal(t, http.StatusOK, status)
	var confirm ConfirmResponse
	require.NoError(t, json.Unmarshal(env.Data, &confirm))
	assert.NotEmpty(t, confirm.Handle)

	status, env = doJSON(t, ts, "POST", "/api/v1/reset/confirm",
		ConfirmRequest{Handle: confirm.Handle})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	count, err := st.Scalar("SELECT COUNT(*) FROM Collected")
	require.NoError(t, err)
	assert.Equal(t, "0", count)
}

func TestMissionAndSaveQuitEvents(t *testing.T) {
	ts, st, _ := newTestServer(t)

	err := st.Write(func(tx *sql.Tx) error {
		_, err := tx.Exec(
			`INSERT INTO MissionTokens (MissionClass, InitialTokens, SubsequentTokens)
			VALUES ("mission.final", 2, 20)`,
		)
		return err
	})
	require.NoError(t, err)

	status, env := doJSON(t, ts, "POST", "/api/v1/events/mission-complete",
		host.MissionComplete{MissionClass: "mission.final"})
	require.Equal(t, http.StatusOK, status)
	var mission MissionResponse
	require.NoError(t, json.Unmarshal(env.Data, &mission))
	assert.Equal(t, 2, mission.TokensGranted)

	status, env = doJSON(t, ts, "POST", "/api/v1/events/save-quit",
		host.SaveQuit{Choice: "None", Map: "Sacrifice_P"})
	require.Equal(t, http.StatusOK, status)
	var quit SaveQuitResponse
	require.NoError(t, json.Unmarshal(env.Data, &quit))
	assert.False(t, quit.Recorded)
}
