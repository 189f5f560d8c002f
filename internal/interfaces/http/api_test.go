package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tuskioscos/tuskioscos-api/internal/application/auth"
	"github.com/tuskioscos/tuskioscos-api/internal/application/ownership"
	"github.com/tuskioscos/tuskioscos-api/internal/application/usecase"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/memory"
	"github.com/tuskioscos/tuskioscos-api/internal/infrastructure/pdf"
	apphttp "github.com/tuskioscos/tuskioscos-api/internal/interfaces/http"
	"github.com/tuskioscos/tuskioscos-api/pkg/logger"
)

type apiOptions struct {
	policy    usecase.DuplicatePolicy
	rateLimit int
}

// newTestAPI arma la app completa sobre el store en memoria.
func newTestAPI(t *testing.T, opts apiOptions) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	checker := ownership.NewChecker(store.Kioscos(), store.Cierres())
	authUC := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret: testJWTSecret,
		Issuer: testIssuer,
	}).WithBcryptCost(bcrypt.MinCost)

	return apphttp.NewApp(apphttp.RouterDeps{
		AuthUC:         authUC,
		KioscoUC:       usecase.NewKioscoUseCase(store.Kioscos(), checker, store),
		CierreUC:       usecase.NewCierreCajaUseCase(store.Cierres(), checker, store, opts.policy),
		MetricsUC:      usecase.NewMetricsUseCase(store.Cierres(), checker, pdf.NewMarotoMetricsReport("Tus Kioscos")),
		Health:         store,
		Log:            logger.Nop(),
		AppName:        "tuskioscos-test",
		CORSOrigin:     "http://localhost:3000",
		LoginRateLimit: opts.rateLimit,
	})
}

type apiResponse struct {
	status  int
	header  http.Header
	cookies []*http.Cookie
	raw     []byte
}

func (r apiResponse) object(t *testing.T) map[string]any {
	t.Helper()
	out := map[string]any{}
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func (r apiResponse) list(t *testing.T) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(r.raw, &out), string(r.raw))
	return out
}

func (r apiResponse) code(t *testing.T) string {
	t.Helper()
	code, _ := r.object(t)["code"].(string)
	return code
}

func call(t *testing.T, app *fiber.App, method, path, token string, body any) apiResponse {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return apiResponse{status: resp.StatusCode, header: resp.Header, cookies: resp.Cookies(), raw: raw}
}

// signup registra y loguea un usuario; devuelve el token.
func signup(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	res := call(t, app, http.MethodPost, "/user/register", "", map[string]string{
		"email": email, "name": "Dueño", "password": "secreto123",
	})
	require.Equal(t, fiber.StatusCreated, res.status, string(res.raw))
	res = call(t, app, http.MethodPost, "/user/login", "", map[string]string{
		"email": email, "password": "secreto123",
	})
	require.Equal(t, fiber.StatusOK, res.status, string(res.raw))
	tok, _ := res.object(t)["token"].(string)
	require.NotEmpty(t, tok)
	return tok
}

func crearKiosco(t *testing.T, app *fiber.App, token, name string) int64 {
	t.Helper()
	res := call(t, app, http.MethodPost, "/kioscos", token, map[string]string{"name": name})
	require.Equal(t, fiber.StatusCreated, res.status, string(res.raw))
	return int64(res.object(t)["id"].(float64))
}

func crearCierre(t *testing.T, app *fiber.App, token string, kioscoID int64, monto, fecha string) apiResponse {
	t.Helper()
	return call(t, app, http.MethodPost, fmt.Sprintf("/cierreCaja/%d", kioscoID), token,
		fmt.Sprintf(`{"monto": %s, "fecha": %q}`, monto, fecha))
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// User
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroLoginPerfil(t *testing.T) {
	app := newTestAPI(t, apiOptions{})

	res := call(t, app, http.MethodPost, "/user/register", "", map[string]string{
		"email": "Ana@Example.com", "name": "Ana", "password": "secreto123",
	})
	require.Equal(t, fiber.StatusCreated, res.status)
	assert.Equal(t, "ana@example.com", res.object(t)["email"])
	assert.NotContains(t, string(res.raw), "password")

	res = call(t, app, http.MethodPost, "/user/login", "", map[string]string{
		"email": "ana@example.com", "password": "secreto123",
	})
	require.Equal(t, fiber.StatusOK, res.status)
	cookie := cookieByName(res.cookies, apphttp.TokenCookie)
	require.NotNil(t, cookie, "el login debe setear la cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, res.object(t)["token"], cookie.Value)

	// El perfil acepta la cookie sin header.
	req := httptest.NewRequest(http.MethodGet, "/user", nil)
	req.AddCookie(&http.Cookie{Name: apphttp.TokenCookie, Value: cookie.Value})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	var profile map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&profile))
	assert.Equal(t, "ana@example.com", profile["email"])
}

func TestAPI_RegistroDuplicadoYValidaciones(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	signup(t, app, "ana@example.com")

	res := call(t, app, http.MethodPost, "/user/register", "", map[string]string{
		"email": "ANA@example.com", "name": "Otra", "password": "secreto123",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, apphttp.CodeEmailExists, res.code(t))

	res = call(t, app, http.MethodPost, "/user/register", "", map[string]string{
		"email": "no-es-email", "name": "X", "password": "corta",
	})
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, apphttp.CodeValidation, res.code(t))
	msg, _ := res.object(t)["message"].(string)
	assert.Contains(t, msg, "email")
	assert.Contains(t, msg, "password")

	res = call(t, app, http.MethodPost, "/user/register", "", "{no json")
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, apphttp.CodeInvalidBody, res.code(t))
}

func TestAPI_Registro_PasswordMultibyteLarga(t *testing.T) {
	app := newTestAPI(t, apiOptions{})

	res := call(t, app, http.MethodPost, "/user/register", "", map[string]string{
		"email": "ana@example.com", "name": "Ana", "password": strings.Repeat("ñ", 40),
	})
	assert.Equal(t, fiber.StatusBadRequest, res.status, string(res.raw))
	assert.Equal(t, apphttp.CodeValidation, res.code(t))
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	signup(t, app, "ana@example.com")

	malPass := call(t, app, http.MethodPost, "/user/login", "", map[string]string{"email": "ana@example.com", "password": "incorrecta"})
	sinUser := call(t, app, http.MethodPost, "/user/login", "", map[string]string{"email": "nadie@example.com", "password": "incorrecta"})

	assert.Equal(t, fiber.StatusBadRequest, malPass.status)
	assert.Equal(t, apphttp.CodeInvalidCredentials, malPass.code(t))
	assert.Equal(t, malPass.raw, sinUser.raw, "no se distingue email inexistente de password incorrecta")
}

func TestAPI_Logout_BorraCookie(t *testing.T) {
	app := newTestAPI(t, apiOptions{})

	res := call(t, app, http.MethodPost, "/user/logout", "", nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, true, res.object(t)["success"])
	cookie := cookieByName(res.cookies, apphttp.TokenCookie)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
}

func TestAPI_LoginRateLimit(t *testing.T) {
	app := newTestAPI(t, apiOptions{rateLimit: 2})
	body := map[string]string{"email": "x@example.com", "password": "secreto123"}

	for i := 0; i < 2; i++ {
		res := call(t, app, http.MethodPost, "/user/login", "", body)
		assert.Equal(t, fiber.StatusBadRequest, res.status)
	}
	res := call(t, app, http.MethodPost, "/user/login", "", body)
	assert.Equal(t, fiber.StatusTooManyRequests, res.status)
	assert.Equal(t, apphttp.CodeRateLimited, res.code(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Kioscos y cierres
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_FlujoCompletoDeCierres(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	tok := signup(t, app, "ana@example.com")
	kID := crearKiosco(t, app, tok, "Kiosco Centro")

	res := call(t, app, http.MethodGet, "/kioscos", tok, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	require.Len(t, res.list(t), 1)

	res = call(t, app, http.MethodPut, fmt.Sprintf("/kioscos/%d", kID), tok, map[string]string{"name": "Kiosco Plaza"})
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "Kiosco Plaza", res.object(t)["name"])

	res = crearCierre(t, app, tok, kID, "100.50", "2024-03-01")
	require.Equal(t, fiber.StatusCreated, res.status, string(res.raw))
	cierre := res.object(t)
	cID := int64(cierre["id"].(float64))
	assert.Equal(t, "2024-03-01", cierre["fecha"])
	assert.Equal(t, 100.5, cierre["monto"])

	res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d", kID), tok, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	list := res.list(t)
	require.Len(t, list, 1)
	assert.EqualValues(t, cID, list[0]["id"])

	// Update solo cambia el monto.
	res = call(t, app, http.MethodPut, fmt.Sprintf("/cierreCaja/%d/%d", kID, cID), tok,
		`{"monto": 250, "fecha": "2030-01-01"}`)
	require.Equal(t, fiber.StatusOK, res.status, string(res.raw))
	updated := res.object(t)
	assert.Equal(t, 250.0, updated["monto"])
	assert.Equal(t, "2024-03-01", updated["fecha"])

	res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d/%d", kID, cID), tok, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, 250.0, res.object(t)["monto"])

	res = call(t, app, http.MethodDelete, fmt.Sprintf("/cierreCaja/%d/%d", kID, cID), tok, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d", kID), tok, nil)
	assert.Empty(t, res.list(t))
}

func TestAPI_MontoNegativo_NoPersiste(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	tok := signup(t, app, "ana@example.com")
	kID := crearKiosco(t, app, tok, "Kiosco")

	res := crearCierre(t, app, tok, kID, "-5", "2024-03-01")
	assert.Equal(t, fiber.StatusBadRequest, res.status)
	assert.Equal(t, apphttp.CodeValidation, res.code(t))

	res = crearCierre(t, app, tok, kID, "10", "01/03/2024")
	assert.Equal(t, fiber.StatusBadRequest, res.status)

	for _, monto := range []string{"1e13", "1e2000000", "1e-2000000"} {
		res = crearCierre(t, app, tok, kID, monto, "2024-03-01")
		assert.Equal(t, fiber.StatusBadRequest, res.status, monto)
		assert.Equal(t, apphttp.CodeValidation, res.code(t), monto)
	}

	res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d", kID), tok, nil)
	assert.Empty(t, res.list(t))
}

func TestAPI_CierreDuplicado(t *testing.T) {
	t.Run("reject", func(t *testing.T) {
		app := newTestAPI(t, apiOptions{policy: usecase.DuplicateReject})
		tok := signup(t, app, "ana@example.com")
		kID := crearKiosco(t, app, tok, "Kiosco")

		require.Equal(t, fiber.StatusCreated, crearCierre(t, app, tok, kID, "10", "2024-03-01").status)
		res := crearCierre(t, app, tok, kID, "20", "2024-03-01")
		assert.Equal(t, fiber.StatusConflict, res.status)
		assert.Equal(t, apphttp.CodeDuplicateCierre, res.code(t))
	})

	t.Run("overwrite", func(t *testing.T) {
		app := newTestAPI(t, apiOptions{policy: usecase.DuplicateOverwrite})
		tok := signup(t, app, "ana@example.com")
		kID := crearKiosco(t, app, tok, "Kiosco")

		require.Equal(t, fiber.StatusCreated, crearCierre(t, app, tok, kID, "10", "2024-03-01").status)
		res := crearCierre(t, app, tok, kID, "20", "2024-03-01")
		require.Equal(t, fiber.StatusOK, res.status)
		assert.Equal(t, 20.0, res.object(t)["monto"])

		res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d", kID), tok, nil)
		assert.Len(t, res.list(t), 1)
	})
}

func TestAPI_Pertenencia(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	ana := signup(t, app, "ana@example.com")
	beto := signup(t, app, "beto@example.com")
	kAna := crearKiosco(t, app, ana, "Kiosco Ana")
	kBeto := crearKiosco(t, app, beto, "Kiosco Beto")
	res := crearCierre(t, app, ana, kAna, "100", "2024-03-01")
	require.Equal(t, fiber.StatusCreated, res.status)
	cAna := int64(res.object(t)["id"].(float64))

	cases := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"ver kiosco ajeno", http.MethodGet, fmt.Sprintf("/kioscos/%d", kAna), nil, fiber.StatusForbidden},
		{"renombrar kiosco ajeno", http.MethodPut, fmt.Sprintf("/kioscos/%d", kAna), map[string]string{"name": "mío"}, fiber.StatusForbidden},
		{"borrar kiosco ajeno", http.MethodDelete, fmt.Sprintf("/kioscos/%d", kAna), nil, fiber.StatusForbidden},
		{"kiosco inexistente", http.MethodGet, "/kioscos/9999", nil, fiber.StatusNotFound},
		{"listar cierres ajenos", http.MethodGet, fmt.Sprintf("/cierreCaja/%d", kAna), nil, fiber.StatusForbidden},
		{"crear cierre en kiosco ajeno", http.MethodPost, fmt.Sprintf("/cierreCaja/%d", kAna), `{"monto": 1, "fecha": "2024-03-02"}`, fiber.StatusForbidden},
		{"cierre ajeno bajo kiosco propio", http.MethodGet, fmt.Sprintf("/cierreCaja/%d/%d", kBeto, cAna), nil, fiber.StatusForbidden},
		{"borrar cierre ajeno bajo kiosco propio", http.MethodDelete, fmt.Sprintf("/cierreCaja/%d/%d", kBeto, cAna), nil, fiber.StatusForbidden},
		{"cierre inexistente", http.MethodGet, fmt.Sprintf("/cierreCaja/%d/9999", kBeto), nil, fiber.StatusForbidden},
		{"id inválido", http.MethodGet, "/kioscos/abc", nil, fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := call(t, app, tc.method, tc.path, beto, tc.body)
			assert.Equal(t, tc.status, res.status, string(res.raw))
		})
	}

	res = call(t, app, http.MethodGet, "/kioscos/0", beto, nil)
	assert.Equal(t, apphttp.CodeInvalidID, res.code(t))

	// Nada de lo anterior modificó los datos de Ana.
	res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d/%d", kAna, cAna), ana, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, 100.0, res.object(t)["monto"])
}

func TestAPI_BorrarKiosco_EliminaCierres(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	tok := signup(t, app, "ana@example.com")
	kID := crearKiosco(t, app, tok, "Kiosco")
	for _, f := range []string{"2024-03-01", "2024-03-02"} {
		require.Equal(t, fiber.StatusCreated, crearCierre(t, app, tok, kID, "10", f).status)
	}

	res := call(t, app, http.MethodDelete, fmt.Sprintf("/kioscos/%d", kID), tok, nil)
	require.Equal(t, fiber.StatusOK, res.status, string(res.raw))

	res = call(t, app, http.MethodGet, fmt.Sprintf("/cierreCaja/%d", kID), tok, nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	res = call(t, app, http.MethodGet, "/kioscos", tok, nil)
	assert.Empty(t, res.list(t))
}

func TestAPI_SinToken(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	res := call(t, app, http.MethodGet, "/kioscos", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, res.status)
	assert.Equal(t, apphttp.CodeMissingToken, res.code(t))
}

// ──────────────────────────────────────────────────────────────────────────────
// Métricas
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_Metricas(t *testing.T) {
	app := newTestAPI(t, apiOptions{})
	tok := signup(t, app, "ana@example.com")
	kID := crearKiosco(t, app, tok, "Kiosco")
	require.Equal(t, fiber.StatusCreated, crearCierre(t, app, tok, kID, "100.25", "2024-03-01").status)
	require.Equal(t, fiber.StatusCreated, crearCierre(t, app, tok, kID, "200.25", "2024-03-05").status)
	require.Equal(t, fiber.StatusCreated, crearCierre(t, app, tok, kID, "999", "2024-04-10").status)

	path := fmt.Sprintf("/kioscos/%d/metricas?desde=2024-03-01&hasta=2024-03-31", kID)
	res := call(t, app, http.MethodGet, path, tok, nil)
	require.Equal(t, fiber.StatusOK, res.status, string(res.raw))
	m := res.object(t)
	assert.Equal(t, 300.5, m["total"])
	assert.EqualValues(t, 2, m["dias_laborales"])
	assert.Equal(t, 150.25, m["promedio_diario"])

	res = call(t, app, http.MethodGet, fmt.Sprintf("/kioscos/%d/metricas?desde=2024-04-01&hasta=2024-03-01", kID), tok, nil)
	assert.Equal(t, fiber.StatusBadRequest, res.status)

	res = call(t, app, http.MethodGet, fmt.Sprintf("/kioscos/%d/metricas/pdf?desde=2024-03-01&hasta=2024-03-31", kID), tok, nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "application/pdf", res.header.Get("Content-Type"))
	assert.Contains(t, res.header.Get("Content-Disposition"), fmt.Sprintf("cierres-%d-2024-03-01-2024-03-31.pdf", kID))
	assert.True(t, bytes.HasPrefix(res.raw, []byte("%PDF")))

	otro := signup(t, app, "beto@example.com")
	res = call(t, app, http.MethodGet, path, otro, nil)
	assert.Equal(t, fiber.StatusForbidden, res.status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Operación
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RutasDeOperacion(t *testing.T) {
	app := newTestAPI(t, apiOptions{})

	res := call(t, app, http.MethodGet, "/health", "", nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Equal(t, "ok", res.object(t)["status"])
	assert.NotEmpty(t, res.header.Get(fiber.HeaderXRequestID))

	res = call(t, app, http.MethodGet, "/no-existe", "", nil)
	assert.Equal(t, fiber.StatusNotFound, res.status)
	assert.Equal(t, apphttp.CodeNotFound, res.code(t))

	res = call(t, app, http.MethodGet, "/openapi.json", "", nil)
	require.Equal(t, fiber.StatusOK, res.status)
	doc := res.object(t)
	assert.Equal(t, "2.0", doc["swagger"])
	assert.Contains(t, doc["paths"], "/cierreCaja/{kioscoId}")

	res = call(t, app, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, fiber.StatusOK, res.status)
	assert.Contains(t, string(res.raw), "http_requests_total")
}
