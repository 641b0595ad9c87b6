package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-ti-api/internal/application/analytics"
	"github.com/jhoicas/gestion-ti-api/internal/application/auth"
	"github.com/jhoicas/gestion-ti-api/internal/application/report"
	"github.com/jhoicas/gestion-ti-api/internal/application/usecase"
	"github.com/jhoicas/gestion-ti-api/internal/domain/access"
	"github.com/jhoicas/gestion-ti-api/internal/domain/entity"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/backup"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/excel"
	"github.com/jhoicas/gestion-ti-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/gestion-ti-api/internal/interfaces/http"
	"github.com/jhoicas/gestion-ti-api/internal/testutil/memstore"
	pkgjwt "github.com/jhoicas/gestion-ti-api/pkg/jwt"
	"github.com/jhoicas/gestion-ti-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Servidor de prueba sobre el almacenamiento en memoria
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "clave-segura-1"

type testUser struct {
	id    int64
	email string
	role  string
}

var (
	rootUser  = testUser{1, "root@empresa.local", access.RoleSuperAdmin}
	adminUser = testUser{2, "admin@empresa.local", access.RoleAdmin}
	anaUser   = testUser{3, "ana@empresa.local", access.RoleUsuario}
	betoUser  = testUser{4, "beto@empresa.local", access.RoleUsuario}
)

type testServer struct {
	app *fiber.App
	t   *testing.T
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	s := memstore.New()
	hash, err := usecase.HashPassword(testPassword)
	require.NoError(t, err)
	now := time.Now()
	for _, u := range []testUser{rootUser, adminUser, anaUser, betoUser} {
		require.NoError(t, s.Users().Create(context.Background(), &entity.User{
			Email:        u.email,
			PasswordHash: hash,
			Name:         u.email,
			Role:         u.role,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}))
	}

	log := logger.Nop()
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(log)})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:          auth.NewAuthUseCase(s, s, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log),
		TaskUC:          usecase.NewTaskUseCase(s, s),
		TicketUC:        usecase.NewTicketUseCase(s, s, rootUser.id, log),
		CalendarUC:      usecase.NewCalendarUseCase(s, s),
		MatrixUC:        usecase.NewMatrixUseCase(s, s),
		JournalUC:       usecase.NewJournalUseCase(s, s),
		ReminderUC:      usecase.NewPaymentReminderUseCase(s, s),
		ServiceOrderUC:  usecase.NewServiceOrderUseCase(s, s),
		NotificationUC:  usecase.NewNotificationUseCase(s, s),
		UserUC:          usecase.NewUserUseCase(s, s, rootUser.id, log),
		DepartmentUC:    usecase.NewDepartmentUseCase(s, s),
		BackupUC:        usecase.NewBackupUseCase(s, s, backup.NewFileWriter(t.TempDir()), log),
		DashboardUC:     analytics.NewDashboardUseCase(s),
		ExportUC:        report.NewExportUseCase(s, pdf.NewTableRenderer("Gestión TI"), excel.NewTableRenderer()),
		JWTSecret:       testJWTSecret,
		MetricsRegistry: prometheus.NewRegistry(),
		Log:             log,
	})
	return &testServer{app: app, t: t}
}

func bearer(t *testing.T, u testUser) string {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Identity{
		UserID: u.id, Email: u.email, Name: u.email, Role: u.role,
	}, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

// do ejecuta la petición como el usuario indicado (nil = sin token).
func (ts *testServer) do(method, path string, as *testUser, body any) *http.Response {
	ts.t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = strings.NewReader(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(ts.t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != nil {
		req.Header.Set("Authorization", bearer(ts.t, *as))
	}
	resp, err := ts.app.Test(req, -1)
	require.NoError(ts.t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func assertError(t *testing.T, resp *http.Response, status int, code string) {
	t.Helper()
	assert.Equal(t, status, resp.StatusCode)
	body := decode[errorBody](t, resp)
	assert.Equal(t, code, body.Code)
	assert.NotEmpty(t, body.Error)
}

// ──────────────────────────────────────────────────────────────────────────────
// Salud, autenticación y errores genéricos
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_SinToken(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_DevuelveTokenUtilizable(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": anaUser.email, "password": testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Token string `json:"token"`
		User  struct {
			ID   int64  `json:"id"`
			Role string `json:"role"`
		} `json:"user"`
	}](t, resp)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, anaUser.id, out.User.ID)
	assert.Equal(t, access.RoleUsuario, out.User.Role)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/verify", nil)
	req.Header.Set("Authorization", "Bearer "+out.Token)
	vresp, err := ts.app.Test(req, -1)
	require.NoError(t, err)
	id := decode[struct {
		ID    int64  `json:"id"`
		Email string `json:"email"`
	}](t, vresp)
	assert.Equal(t, anaUser.id, id.ID)
	assert.Equal(t, anaUser.email, id.Email)
}

func TestLogin_Errores(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/api/auth/login", nil, map[string]string{
		"email": anaUser.email, "password": "incorrecta",
	})
	assertError(t, resp, http.StatusUnauthorized, apphttp.CodeUnauthorized)

	resp = ts.do(http.MethodPost, "/api/auth/login", nil, `{"email":`)
	assertError(t, resp, http.StatusBadRequest, apphttp.CodeInvalidBody)

	resp = ts.do(http.MethodPost, "/api/auth/login", nil, map[string]string{"email": anaUser.email})
	assertError(t, resp, http.StatusBadRequest, apphttp.CodeValidation)
}

func TestRutasProtegidas_SinToken401(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(http.MethodGet, "/api/tasks", nil, nil)
	assertError(t, resp, http.StatusUnauthorized, apphttp.CodeMissingToken)
}

func TestRutaInexistente_404(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(http.MethodGet, "/api/no-existe", &anaUser, nil)
	assertError(t, resp, http.StatusNotFound, apphttp.CodeNotFound)
}

func TestIDInvalido_400(t *testing.T) {
	ts := newTestServer(t)
	resp := ts.do(http.MethodGet, "/api/tasks/abc", &anaUser, nil)
	assertError(t, resp, http.StatusBadRequest, apphttp.CodeValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tickets: alcance, parche parcial, calificación y exportación
// ──────────────────────────────────────────────────────────────────────────────

type ticketBody struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Status     string     `json:"status"`
	Priority   string     `json:"priority"`
	ResolvedAt *time.Time `json:"resolved_at"`
	Rating     *int       `json:"rating"`
}

func TestTickets_FlujoCompleto(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/api/tickets", &anaUser, map[string]any{
		"title": "Impresora sin tóner", "priority": "high",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[ticketBody](t, resp)
	assert.Equal(t, "open", created.Status)
	path := "/api/tickets/" + itoa(created.ID)

	// Otro usuario no lo ve ni lo edita.
	assertError(t, ts.do(http.MethodGet, path, &betoUser, nil), http.StatusForbidden, apphttp.CodeForbidden)
	assertError(t, ts.do(http.MethodPut, path, &betoUser, map[string]any{"title": "x"}), http.StatusForbidden, apphttp.CodeForbidden)
	list := decode[[]ticketBody](t, ts.do(http.MethodGet, "/api/tickets", &betoUser, nil))
	assert.Empty(t, list)

	// El admin lo ve pero no lo edita.
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, path, &adminUser, nil).StatusCode)
	assertError(t, ts.do(http.MethodPut, path, &adminUser, map[string]any{"status": "resolved"}), http.StatusForbidden, apphttp.CodeForbidden)

	// Calificar antes de resolver es un conflicto.
	assertError(t, ts.do(http.MethodPost, path+"/rate", &anaUser, map[string]any{"rating": 5}), http.StatusConflict, apphttp.CodeConflict)

	// Parche parcial: solo cambia el estado.
	resp = ts.do(http.MethodPut, path, &rootUser, map[string]any{"status": "resolved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resolved := decode[ticketBody](t, resp)
	assert.Equal(t, "resolved", resolved.Status)
	assert.Equal(t, "high", resolved.Priority)
	assert.Equal(t, "Impresora sin tóner", resolved.Title)
	assert.NotNil(t, resolved.ResolvedAt)

	assertError(t, ts.do(http.MethodPost, path+"/rate", &anaUser, map[string]any{"rating": 6}), http.StatusBadRequest, apphttp.CodeValidation)

	resp = ts.do(http.MethodPost, path+"/rate", &anaUser, map[string]any{"rating": 5, "comment": "rápido"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rated := decode[ticketBody](t, resp)
	require.NotNil(t, rated.Rating)
	assert.Equal(t, 5, *rated.Rating)

	assertError(t, ts.do(http.MethodPost, path+"/rate", &anaUser, map[string]any{"rating": 4}), http.StatusConflict, apphttp.CodeConflict)

	// El administrador principal recibió el aviso.
	notes := decode[[]map[string]any](t, ts.do(http.MethodGet, "/api/notifications", &rootUser, nil))
	require.Len(t, notes, 1)
	assert.Equal(t, "success", notes[0]["type"])

	history := decode[[]map[string]any](t, ts.do(http.MethodGet, path+"/history", &anaUser, nil))
	assert.NotEmpty(t, history)

	resp = ts.do(http.MethodDelete, path, &anaUser, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertError(t, ts.do(http.MethodGet, path, &anaUser, nil), http.StatusNotFound, apphttp.CodeNotFound)
}

func TestTickets_ExportPDFyExcel(t *testing.T) {
	ts := newTestServer(t)
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/tickets", &anaUser, map[string]any{"title": "VPN caída"}).StatusCode)

	resp := ts.do(http.MethodGet, "/api/tickets/export/pdf", &anaUser, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Disposition"), `attachment; filename="tickets_export_`))
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp = ts.do(http.MethodGet, "/api/tickets/export/excel", &anaUser, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasSuffix(resp.Header.Get("Content-Disposition"), `.xlsx"`))
	resp.Body.Close()

	assertError(t, ts.do(http.MethodGet, "/api/tickets/export/csv", &anaUser, nil), http.StatusBadRequest, apphttp.CodeValidation)

	resp = ts.do(http.MethodGet, "/metrics", nil, nil)
	metrics, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	text := string(metrics)
	assert.Contains(t, text, `reports_generated_total{format="pdf",resource="tickets"} 1`)
	assert.Contains(t, text, `reports_generated_total{format="excel",resource="tickets"} 1`)
	assert.NotContains(t, text, `format="csv`)
	assert.Contains(t, text, `http_requests_total{method="POST",route="/api/tickets/",status="201"} 1`)
	assert.Contains(t, text, `http_requests_total{method="GET",route="/api/tickets/export/:format",status="200"} 2`)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tareas, agenda y rutas restringidas por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestTasks_ActualizacionParcialYBorrado(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/api/tasks", &anaUser, map[string]any{
		"title": "Renovar certificados", "description": "wildcard", "priority": "urgent",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[map[string]any](t, resp)
	path := "/api/tasks/" + itoa(int64(task["id"].(float64)))

	resp = ts.do(http.MethodPut, path, &anaUser, map[string]any{"status": "done", "description": nil})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[map[string]any](t, resp)
	assert.Equal(t, "done", updated["status"])
	assert.Equal(t, "urgent", updated["priority"])
	assert.Nil(t, updated["description"])
	assert.Contains(t, updated, "due_date", "los campos nulos se serializan como null")

	assertError(t, ts.do(http.MethodPut, path, &anaUser, map[string]any{"status": "archivada"}), http.StatusBadRequest, apphttp.CodeValidation)

	resp = ts.do(http.MethodDelete, path, &anaUser, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	msg := decode[map[string]string](t, resp)
	assert.NotEmpty(t, msg["message"])
}

func TestCalendar_DeleteRecurringPorQuery(t *testing.T) {
	ts := newTestServer(t)
	var firstID int64
	for i, day := range []string{"2025-03-03", "2025-03-10", "2025-03-17"} {
		resp := ts.do(http.MethodPost, "/api/calendar-events", &anaUser, map[string]any{
			"title": "Mantenimiento semanal", "start_date": day + "T09:00:00Z",
			"event_type": "maintenance", "is_recurring": true, "recurrence_id": "serie-http",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		ev := decode[map[string]any](t, resp)
		if i == 0 {
			firstID = int64(ev["id"].(float64))
		}
	}

	list := decode[[]map[string]any](t, ts.do(http.MethodGet, "/api/calendar-events?date_from=2025-03-08", &anaUser, nil))
	assert.Len(t, list, 2)
	assertError(t, ts.do(http.MethodGet, "/api/calendar-events?date_from=ayer", &anaUser, nil), http.StatusBadRequest, apphttp.CodeValidation)

	assertError(t, ts.do(http.MethodDelete, "/api/calendar-events/"+itoa(firstID)+"/delete-recurring?delete_all=true", &betoUser, nil),
		http.StatusForbidden, apphttp.CodeForbidden)

	resp := ts.do(http.MethodDelete, "/api/calendar-events/"+itoa(firstID)+"/delete-recurring?delete_all=true", &anaUser, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[struct {
		Count int `json:"count"`
	}](t, resp)
	assert.Equal(t, 3, out.Count)
}

func TestRequireRole_RutasDeSistema(t *testing.T) {
	ts := newTestServer(t)

	assertError(t, ts.do(http.MethodPost, "/api/system/backups", &adminUser, nil), http.StatusForbidden, apphttp.CodeForbidden)
	assertError(t, ts.do(http.MethodPost, "/api/notifications", &anaUser, map[string]any{
		"user_id": betoUser.id, "title": "hola", "message": "mundo",
	}), http.StatusForbidden, apphttp.CodeForbidden)

	resp := ts.do(http.MethodPost, "/api/system/backups", &rootUser, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	b := decode[map[string]any](t, resp)
	assert.Equal(t, "completed", b["status"])

	roles := decode[[]map[string]any](t, ts.do(http.MethodGet, "/api/roles", &anaUser, nil))
	assert.Len(t, roles, 3)
}

func TestUsers_CrearDevuelveContrasenaTemporal(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodPost, "/api/users", &adminUser, map[string]any{
		"email": "nuevo@empresa.local", "name": "Nuevo",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[map[string]any](t, resp)
	assert.NotEmpty(t, out["temporary_password"])
	assert.NotContains(t, out, "password_hash")

	assertError(t, ts.do(http.MethodPost, "/api/users", &adminUser, map[string]any{
		"email": "nuevo@empresa.local", "name": "Otro",
	}), http.StatusConflict, apphttp.CodeEmailExists)

	assertError(t, ts.do(http.MethodDelete, "/api/users/1", &rootUser, nil), http.StatusForbidden, apphttp.CodeProtectedUser)
}

func itoa(v int64) string { return strconv.FormatInt(v, 10) }
