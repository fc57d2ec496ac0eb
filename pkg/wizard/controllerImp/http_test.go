package controllerImp

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"smartcalda/entities"
	hsvc "smartcalda/pkg/history/service"
	"smartcalda/pkg/mailer"
	"smartcalda/pkg/session"
	"smartcalda/pkg/sheet"
	"smartcalda/pkg/stock"
)

type fixture struct {
	e    *echo.Echo
	mgr  *session.Manager
	mock *mailer.MockSender
	db   *gorm.DB
}

func setup(t *testing.T) *fixture {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.Report{}))

	mgr := session.NewManager()
	mgr.SetDataset([]sheet.Row{
		{"Setor": sheet.Text("12"), "Talhão": sheet.Text("T-01"), "Área (ha)": sheet.Number(2), "Fazenda": sheet.Text("Santa Fé")},
		{"Setor": sheet.Text("12"), "Talhão": sheet.Text("T-02"), "Área (ha)": sheet.Number(3.5), "Fazenda": sheet.Text("Santa Fé")},
	})
	mgr.SetLedger(stock.ParseLedger([]sheet.Row{{
		"Insumo": sheet.Text("Glifosato"),
		"Saldo":  sheet.Number(10),
	}}))

	mock := mailer.NewMock()
	e := echo.New()
	New(mgr, hsvc.New(db), mock, "padrao@fazenda.com").Register(e)
	return &fixture{e: e, mgr: mgr, mock: mock, db: db}
}

func (f *fixture) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	var m map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &m)
	return rec.Code, m
}

func (f *fixture) newSession(t *testing.T) string {
	t.Helper()
	code, m := f.do(t, http.MethodPost, "/sessions", "")
	require.Equal(t, http.StatusCreated, code)
	id, _ := m["id"].(string)
	require.NotEmpty(t, id)
	return id
}

func TestCreateWithoutDataset(t *testing.T) {
	f := setup(t)
	f.mgr.SetDataset(nil)
	code, m := f.do(t, http.MethodPost, "/sessions", "")
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, m["error"], "planilha")
}

func TestSearchErrors(t *testing.T) {
	f := setup(t)
	id := f.newSession(t)

	code, _ := f.do(t, http.MethodPost, "/sessions/"+id+"/search", `{"sector":"999"}`)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = f.do(t, http.MethodPost, "/sessions/"+id+"/search", `{"sector":"  "}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = f.do(t, http.MethodPost, "/sessions/unknown/search", `{"sector":"12"}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFullRun(t *testing.T) {
	f := setup(t)
	id := f.newSession(t)
	base := "/sessions/" + id

	code, m := f.do(t, http.MethodPost, base+"/search", `{"sector":"12"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "talhoes", m["step_name"])

	// advancing without a selection is refused
	code, _ = f.do(t, http.MethodPost, base+"/advance", "")
	assert.Equal(t, http.StatusConflict, code)

	code, m = f.do(t, http.MethodPost, base+"/plots/select-all", "")
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 5.5, m["total_area"].(float64), 1e-9)

	code, m = f.do(t, http.MethodPost, base+"/factor", `{"value":"2"}`)
	require.Equal(t, http.StatusOK, code)
	assert.InDelta(t, 11.0, m["total_area"].(float64), 1e-9)

	code, _ = f.do(t, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, code)

	// the known product comes back with its advisory stock check
	code, m = f.do(t, http.MethodPost, base+"/inputs", `{"name":"Glifosato","dose":2.5,"unit":"L/ha"}`)
	require.Equal(t, http.StatusCreated, code)
	st, ok := m["stock"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 27.5, st["required"].(float64), 1e-9)
	assert.Equal(t, false, st["sufficient"])

	// an unknown product is accepted without any stock note
	code, m = f.do(t, http.MethodPost, base+"/inputs", `{"name":"Desconhecido","dose":1,"unit":"L/ha"}`)
	require.Equal(t, http.StatusCreated, code)
	_, hasStock := m["stock"]
	assert.False(t, hasStock)

	code, _ = f.do(t, http.MethodPut, base+"/operational", `{"costCenter":"5121 – Soqueira","supervisor":"João"}`)
	require.Equal(t, http.StatusOK, code)

	// finalize only works from the review step
	code, _ = f.do(t, http.MethodPost, base+"/finalize", `{}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = f.do(t, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, code)

	code, m = f.do(t, http.MethodPost, base+"/finalize", `{}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, m["emailSent"])
	assert.Equal(t, "Recomendacao_Setor_12.pdf", m["fileName"])

	// the mail boundary got the defaults
	require.Len(t, f.mock.Sent, 1)
	sub := f.mock.Sent[0]
	assert.Equal(t, "padrao@fazenda.com", sub.EmailTo)
	assert.Contains(t, sub.EmailSubject, "Setor 12")
	require.Len(t, sub.Summaries, 1)
	assert.InDelta(t, 11.0, sub.Summaries[0].TotalArea, 1e-9)

	// the run is persisted and the session is gone
	var count int64
	f.db.Model(&entities.Report{}).Count(&count)
	assert.EqualValues(t, 1, count)
	code, _ = f.do(t, http.MethodGet, base, "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestFinalizeSurvivesMailFailure(t *testing.T) {
	f := setup(t)
	f.mock.Err = assert.AnError
	id := f.newSession(t)
	base := "/sessions/" + id

	code, _ := f.do(t, http.MethodPost, base+"/search", `{"sector":"12"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(t, http.MethodPost, base+"/plots/select-all", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(t, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, code)
	code, _ = f.do(t, http.MethodPost, base+"/advance", "")
	require.Equal(t, http.StatusOK, code)

	code, m := f.do(t, http.MethodPost, base+"/finalize", `{}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, m["emailSent"])
	assert.NotEmpty(t, m["emailError"])

	var count int64
	f.db.Model(&entities.Report{}).Count(&count)
	assert.EqualValues(t, 1, count, "a failed send still persists the report")
}

func TestQueueSameMixtureFlow(t *testing.T) {
	f := setup(t)
	id := f.newSession(t)
	base := "/sessions/" + id

	toReview := func() {
		code, _ := f.do(t, http.MethodPost, base+"/search", `{"sector":"12"}`)
		require.Equal(t, http.StatusOK, code)
		code, _ = f.do(t, http.MethodPost, base+"/plots/select-all", "")
		require.Equal(t, http.StatusOK, code)
		code, _ = f.do(t, http.MethodPost, base+"/advance", "")
		require.Equal(t, http.StatusOK, code)
		code, _ = f.do(t, http.MethodPost, base+"/advance", "")
		require.Equal(t, http.StatusOK, code)
	}

	toReview()
	code, _ := f.do(t, http.MethodPost, base+"/inputs", `{"name":"Glifosato","dose":1,"unit":"L/ha"}`)
	require.Equal(t, http.StatusCreated, code)

	code, m := f.do(t, http.MethodPost, base+"/queue/same-mixture", "")
	require.Equal(t, http.StatusOK, code)
	state := m["state"].(map[string]any)
	assert.Equal(t, "busca", state["step_name"])
	assert.Equal(t, true, state["same_mixture"])
	assert.Len(t, state["inputs"].([]any), 1)

	toReview()
	code, m = f.do(t, http.MethodPost, base+"/finalize", `{"skipEmail":true}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, m["emailSent"])
	assert.Equal(t, "Relatorio_Multiplos_Setores.pdf", m["fileName"])
	assert.Empty(t, f.mock.Sent)
}
